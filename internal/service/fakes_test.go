package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kuisioner/internal/model"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[string]*model.User // by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetOrCreate(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
	if u, _ := f.GetByEmail(ctx, email); u != nil {
		if name != "" {
			u.Name = name
		}
		return u, nil
	}
	f.nextID++
	u := &model.User{
		ID:    fmt.Sprintf("user-%d", f.nextID),
		Email: email,
		Name:  name,
		Role:  role,
	}
	f.users[u.ID] = u
	return u, nil
}

type fakeQuestionnaireRepo struct {
	items  map[string]*model.Questionnaire
	nextID int
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{items: make(map[string]*model.Questionnaire)}
}

func (f *fakeQuestionnaireRepo) Create(ctx context.Context, q *model.Questionnaire) (string, error) {
	f.nextID++
	id := fmt.Sprintf("qn-%d", f.nextID)
	stored := *q
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.items[id] = &stored
	return id, nil
}

func (f *fakeQuestionnaireRepo) GetByID(ctx context.Context, id string) (*model.Questionnaire, error) {
	if q, ok := f.items[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeQuestionnaireRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Questionnaire, error) {
	var out []*model.Questionnaire
	for _, q := range f.items {
		if q.OwnerID == ownerID {
			copied := *q
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeQuestionnaireRepo) Update(ctx context.Context, q *model.Questionnaire) error {
	stored := *q
	stored.UpdatedAt = time.Now()
	f.items[q.ID] = &stored
	return nil
}

func (f *fakeQuestionnaireRepo) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeQuestionRepo struct {
	items  map[string]*model.Question
	nextID int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{items: make(map[string]*model.Question)}
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) (string, error) {
	f.nextID++
	id := fmt.Sprintf("q-%d", f.nextID)
	stored := *q
	stored.ID = id
	f.items[id] = &stored
	return id, nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	if q, ok := f.items[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeQuestionRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range f.items {
		if q.QuestionnaireID == questionnaireID {
			copied := *q
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeResponseRepo struct {
	items  map[string]*model.Response // by (respondentID, questionID)
	nextID int
	order  []string // insertion order of keys
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{items: make(map[string]*model.Response)}
}

func responseKey(respondentID, questionID string) string {
	return respondentID + "/" + questionID
}

func (f *fakeResponseRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeResponseRepo) Upsert(ctx context.Context, resp *model.Response) error {
	key := responseKey(resp.RespondentID, resp.QuestionID)
	if existing, ok := f.items[key]; ok {
		existing.Answer = resp.Answer
		existing.SubmittedAt = time.Now()
		return nil
	}
	f.nextID++
	stored := *resp
	stored.ID = fmt.Sprintf("r-%d", f.nextID)
	stored.SubmittedAt = time.Now()
	f.items[key] = &stored
	f.order = append(f.order, key)
	return nil
}

func (f *fakeResponseRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, key := range f.order {
		r := f.items[key]
		if r.QuestionnaireID == questionnaireID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.Response, error) {
	var out []*model.Response
	for _, key := range f.order {
		r := f.items[key]
		if r.QuestionID == questionID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int64, error) {
	rs, _ := f.GetByQuestionnaireID(ctx, questionnaireID)
	return int64(len(rs)), nil
}

type fakeAnalyticsCache struct {
	bundles     map[string]*model.AnalyticsBundle
	invalidated int
	sets        int
	gets        int
}

func newFakeAnalyticsCache() *fakeAnalyticsCache {
	return &fakeAnalyticsCache{bundles: make(map[string]*model.AnalyticsBundle)}
}

func (f *fakeAnalyticsCache) GetBundle(ctx context.Context, questionnaireID string) (*model.AnalyticsBundle, error) {
	f.gets++
	return f.bundles[questionnaireID], nil
}

func (f *fakeAnalyticsCache) SetBundle(ctx context.Context, bundle *model.AnalyticsBundle) error {
	f.sets++
	f.bundles[bundle.QuestionnaireID] = bundle
	return nil
}

func (f *fakeAnalyticsCache) Invalidate(ctx context.Context, questionnaireID string) error {
	f.invalidated++
	delete(f.bundles, questionnaireID)
	return nil
}
