package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kuisioner/internal/apperr"
	"kuisioner/internal/config"
	"kuisioner/internal/model"
	"kuisioner/internal/render"
)

type fixture struct {
	users          *fakeUserRepo
	questionnaires *fakeQuestionnaireRepo
	questions      *fakeQuestionRepo
	responses      *fakeResponseRepo
	cache          *fakeAnalyticsCache
}

func newFixture() *fixture {
	return &fixture{
		users:          newFakeUserRepo(),
		questionnaires: newFakeQuestionnaireRepo(),
		questions:      newFakeQuestionRepo(),
		responses:      newFakeResponseRepo(),
		cache:          newFakeAnalyticsCache(),
	}
}

// seedSurvey creates a public questionnaire with one free-text and one
// single-choice question.
func (f *fixture) seedSurvey(t *testing.T) (questionnaireID, textQID, choiceQID string) {
	t.Helper()
	ctx := context.Background()

	qnID, err := f.questionnaires.Create(ctx, &model.Questionnaire{
		OwnerID: "owner-1",
		Title:   "Layanan Kampus",
		Access:  model.AccessPublic,
	})
	if err != nil {
		t.Fatalf("create questionnaire: %v", err)
	}

	textQID, err = f.questions.Create(ctx, &model.Question{
		QuestionnaireID: qnID,
		Text:            "Apa pendapat Anda tentang layanan kami?",
		Type:            model.QuestionTypeParagraph,
		Required:        true,
		Position:        1,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	choiceQID, err = f.questions.Create(ctx, &model.Question{
		QuestionnaireID: qnID,
		Text:            "Seberapa puas Anda?",
		Type:            model.QuestionTypeSingleChoice,
		Options:         []string{"Puas", "Tidak Puas"},
		Position:        2,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return qnID, textQID, choiceQID
}

func TestSubmitStoresAnswersAndInvalidatesCache(t *testing.T) {
	f := newFixture()
	qnID, textQID, choiceQID := f.seedSurvey(t)
	svc := NewResponseService(f.responses, f.questions, f.questionnaires, f.users, f.cache)

	err := svc.Submit(context.Background(), qnID, "Budi", "budi@example.com", map[string]string{
		textQID:   "pelayanan sangat bagus dan ramah",
		choiceQID: "Puas",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, _ := f.responses.GetByQuestionnaireID(context.Background(), qnID)
	if len(stored) != 2 {
		t.Fatalf("stored %d responses, want 2", len(stored))
	}
	if f.cache.invalidated != 1 {
		t.Errorf("cache invalidated %d times, want 1", f.cache.invalidated)
	}

	respondent, _ := f.users.GetByEmail(context.Background(), "budi@example.com")
	if respondent == nil || respondent.Role != model.RoleRespondent {
		t.Fatalf("respondent not created: %+v", respondent)
	}
}

func TestSubmitOverwritesPreviousAnswer(t *testing.T) {
	f := newFixture()
	qnID, textQID, _ := f.seedSurvey(t)
	svc := NewResponseService(f.responses, f.questions, f.questionnaires, f.users, f.cache)
	ctx := context.Background()

	first := map[string]string{textQID: "biasa saja"}
	second := map[string]string{textQID: "sekarang jauh lebih baik"}
	if err := svc.Submit(ctx, qnID, "Budi", "budi@example.com", first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := svc.Submit(ctx, qnID, "Budi", "budi@example.com", second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	stored, _ := f.responses.GetByQuestionID(ctx, textQID)
	if len(stored) != 1 {
		t.Fatalf("stored %d responses for question, want 1", len(stored))
	}
	if stored[0].Answer != "sekarang jauh lebih baik" {
		t.Errorf("answer = %q, want the resubmitted text", stored[0].Answer)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture()
	qnID, _, choiceQID := f.seedSurvey(t)
	svc := NewResponseService(f.responses, f.questions, f.questionnaires, f.users, f.cache)
	ctx := context.Background()

	t.Run("missing email", func(t *testing.T) {
		err := svc.Submit(ctx, qnID, "Budi", "  ", map[string]string{choiceQID: "Puas"})
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("missing required answer", func(t *testing.T) {
		err := svc.Submit(ctx, qnID, "Budi", "budi@example.com", map[string]string{choiceQID: "Puas"})
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("unknown questionnaire", func(t *testing.T) {
		err := svc.Submit(ctx, "missing", "Budi", "budi@example.com", map[string]string{choiceQID: "Puas"})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("closed questionnaire", func(t *testing.T) {
		closedID, _ := f.questionnaires.Create(ctx, &model.Questionnaire{
			OwnerID: "owner-1",
			Title:   "Internal",
			Access:  model.AccessClosed,
		})
		err := svc.Submit(ctx, closedID, "Budi", "budi@example.com", map[string]string{"any": "x"})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestQuestionnaireOwnership(t *testing.T) {
	f := newFixture()
	qnID, _, _ := f.seedSurvey(t)
	svc := NewQuestionnaireService(f.questionnaires, f.questions)
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, "owner-1", model.RoleCreator, qnID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, _, err := svc.Get(ctx, "someone-else", model.RoleCreator, qnID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("stranger get err = %v, want ErrForbidden", err)
	}
	if _, _, err := svc.Get(ctx, "someone-else", model.RoleAdmin, qnID); err != nil {
		t.Errorf("admin get err = %v, want nil", err)
	}
}

func TestAddQuestionAssignsPositionAndValidates(t *testing.T) {
	f := newFixture()
	qnID, _, _ := f.seedSurvey(t)
	svc := NewQuestionnaireService(f.questionnaires, f.questions)
	ctx := context.Background()

	id, err := svc.AddQuestion(ctx, "owner-1", model.RoleCreator, &model.Question{
		QuestionnaireID: qnID,
		Text:            "Saran perbaikan?",
		Type:            model.QuestionTypeShortText,
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	q, _ := f.questions.GetByID(ctx, id)
	if q.Position != 3 {
		t.Errorf("position = %d, want 3", q.Position)
	}

	_, err = svc.AddQuestion(ctx, "owner-1", model.RoleCreator, &model.Question{
		QuestionnaireID: qnID,
		Text:            "Pilih satu",
		Type:            model.QuestionTypeSingleChoice,
		Options:         []string{"hanya satu"},
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("one-option choice err = %v, want ErrInvalidInput", err)
	}

	_, err = svc.AddQuestion(ctx, "owner-1", model.RoleCreator, &model.Question{
		QuestionnaireID: qnID,
		Text:            "Tipe aneh",
		Type:            "slider",
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("unknown type err = %v, want ErrInvalidInput", err)
	}
}

func TestPublicFormHidesClosedQuestionnaires(t *testing.T) {
	f := newFixture()
	svc := NewQuestionnaireService(f.questionnaires, f.questions)
	ctx := context.Background()

	closedID, _ := f.questionnaires.Create(ctx, &model.Questionnaire{
		OwnerID: "owner-1",
		Title:   "Internal",
		Access:  model.AccessClosed,
	})
	if _, _, err := svc.PublicForm(ctx, closedID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("closed form err = %v, want ErrNotFound", err)
	}
}

func TestAnalyticsComputeCachesDefaultParamsOnly(t *testing.T) {
	f := newFixture()
	qnID, textQID, _ := f.seedSurvey(t)
	ctx := context.Background()

	answers := []string{
		"pelayanan sangat bagus dan ramah",
		"fasilitas kampus lengkap dan nyaman",
		"dosen mengajar dengan baik sekali",
	}
	for i, answer := range answers {
		f.responses.Upsert(ctx, &model.Response{
			QuestionnaireID: qnID,
			QuestionID:      textQID,
			RespondentID:    "user-" + string(rune('a'+i)),
			Answer:          answer,
		})
	}

	svc := NewAnalyticsService(f.responses, f.questions, f.cache)

	bundle, err := svc.Compute(ctx, qnID, DefaultParams())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if bundle.TextStats.Count != len(answers) {
		t.Errorf("stats count = %d, want %d", bundle.TextStats.Count, len(answers))
	}
	if f.cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", f.cache.sets)
	}

	// Second default-params call must be served from cache.
	if _, err := svc.Compute(ctx, qnID, DefaultParams()); err != nil {
		t.Fatalf("cached compute: %v", err)
	}
	if f.cache.sets != 1 {
		t.Errorf("cache sets after warm hit = %d, want 1", f.cache.sets)
	}

	// Custom parameters bypass the cache entirely.
	custom := AnalyticsParams{TopN: 5, NTopics: 2, NTopicWords: 3}
	gets := f.cache.gets
	if _, err := svc.Compute(ctx, qnID, custom); err != nil {
		t.Fatalf("custom compute: %v", err)
	}
	if f.cache.gets != gets || f.cache.sets != 1 {
		t.Errorf("custom params touched the cache (gets %d->%d, sets %d)", gets, f.cache.gets, f.cache.sets)
	}
}

func TestFreeTextCorpusExcludesChoiceAnswers(t *testing.T) {
	f := newFixture()
	qnID, textQID, choiceQID := f.seedSurvey(t)
	ctx := context.Background()

	f.responses.Upsert(ctx, &model.Response{
		QuestionnaireID: qnID, QuestionID: textQID, RespondentID: "u1", Answer: "sangat membantu",
	})
	f.responses.Upsert(ctx, &model.Response{
		QuestionnaireID: qnID, QuestionID: choiceQID, RespondentID: "u1", Answer: "Puas",
	})

	svc := NewAnalyticsService(f.responses, f.questions, f.cache)
	corpus, err := svc.FreeTextCorpus(ctx, qnID)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	if len(corpus) != 1 || corpus[0] != "sangat membantu" {
		t.Errorf("corpus = %q, want only the free-text answer", corpus)
	}
}

func TestExportCSVLayout(t *testing.T) {
	f := newFixture()
	qnID, textQID, choiceQID := f.seedSurvey(t)
	ctx := context.Background()

	rsvc := NewResponseService(f.responses, f.questions, f.questionnaires, f.users, f.cache)
	if err := rsvc.Submit(ctx, qnID, "Budi", "budi@example.com", map[string]string{
		textQID:   "sangat bagus",
		choiceQID: "Puas",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := rsvc.Submit(ctx, qnID, "Siti", "siti@example.com", map[string]string{
		textQID: "perlu perbaikan",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var buf bytes.Buffer
	esvc := NewExportService(f.responses, f.questions, f.users)
	if err := esvc.WriteCSV(ctx, &buf, qnID); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 respondents", len(rows))
	}
	if rows[0][0] != "Nama" || rows[0][1] != "Email" || len(rows[0]) != 4 {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Budi" || rows[1][2] != "sangat bagus" || rows[1][3] != "Puas" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][1] != "siti@example.com" || rows[2][3] != "" {
		t.Errorf("second row = %v", rows[2])
	}
}

func TestQuestionBreakdown(t *testing.T) {
	f := newFixture()
	qnID, _, choiceQID := f.seedSurvey(t)
	ctx := context.Background()

	for i, answer := range []string{"Puas", "Puas", "Tidak Puas"} {
		f.responses.Upsert(ctx, &model.Response{
			QuestionnaireID: qnID,
			QuestionID:      choiceQID,
			RespondentID:    "u" + string(rune('1'+i)),
			Answer:          answer,
		})
	}

	esvc := NewExportService(f.responses, f.questions, f.users)
	counts, err := esvc.QuestionBreakdown(ctx, choiceQID)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	want := []model.AnswerCount{{Answer: "Puas", Count: 2}, {Answer: "Tidak Puas", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}

func TestReportGenerateRendersAllArtifacts(t *testing.T) {
	f := newFixture()
	qnID, _, _ := f.seedSurvey(t)
	ctx := context.Background()

	staticDir := t.TempDir()
	asvc := NewAnalyticsService(f.responses, f.questions, f.cache)
	rsvc := NewReportService(
		f.responses, f.questions, f.users,
		asvc, render.New(render.DefaultStyle()),
		staticDir, "http://localhost:8080",
	)

	// No responses at all: every kind still renders, as a placeholder.
	report, err := rsvc.Generate(ctx, qnID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wantKinds := []string{
		"distribution", "pie", "wordcloud", "sentiment_bar", "sentiment_donut",
		"word_frequency", "response_length", "top_contributors", "keywords", "dashboard",
	}
	if len(report.Artifacts) != len(wantKinds) {
		t.Fatalf("artifacts = %d, want %d", len(report.Artifacts), len(wantKinds))
	}
	for i, a := range report.Artifacts {
		if a.Kind != wantKinds[i] {
			t.Errorf("artifact[%d].Kind = %q, want %q", i, a.Kind, wantKinds[i])
		}
		if !strings.HasPrefix(a.URL, "/static/charts/") {
			t.Errorf("artifact URL %q lacks /static/charts/ prefix", a.URL)
		}
		file := filepath.Join(staticDir, "charts", strings.TrimPrefix(a.URL, "/static/charts/"))
		if fi, err := os.Stat(file); err != nil || fi.Size() == 0 {
			t.Errorf("artifact file %s missing or empty (err %v)", file, err)
		}
	}
}

func TestShareQRProducesPNG(t *testing.T) {
	f := newFixture()
	rsvc := NewReportService(
		f.responses, f.questions, f.users,
		NewAnalyticsService(f.responses, f.questions, f.cache),
		render.New(render.DefaultStyle()),
		t.TempDir(), "http://localhost:8080",
	)

	png, err := rsvc.ShareQR("qn-1")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestAuthLoginAndValidate(t *testing.T) {
	f := newFixture()
	cfg := &config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "rahasia",
		JWTSecret:     "test-secret",
	}
	svc := NewAuthService(cfg, f.users)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin@example.com", "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}

	resp, err := svc.Login(ctx, "admin@example.com", "rahasia")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != model.RoleAdmin || resp.Token == "" {
		t.Fatalf("login response = %+v", resp)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != resp.UserID || claims.Role != model.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.ValidateToken(resp.Token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token err = %v, want ErrInvalidToken", err)
	}
}
