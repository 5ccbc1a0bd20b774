package analytics

import (
	"errors"
	"testing"

	"kuisioner/internal/analytics/textproc"
	"kuisioner/internal/apperr"
	"kuisioner/internal/model"
)

var sampleCorpus = []string{
	"saya suka produk ini karena mudah digunakan",
	"produk ini buruk sekali dan sering error",
	"pelayanan cepat dan ramah sekali",
	"aplikasi sering lambat ketika dibuka pagi hari",
	"fitur ekspor data sangat membantu pekerjaan saya",
	"tampilan aplikasi membingungkan untuk pengguna baru",
}

func TestStatistics(t *testing.T) {
	got := Statistics([]string{"satu dua tiga", "satu dua", "satu"})
	if got.Status != model.StatusOK {
		t.Fatalf("status = %s, want ok", got.Status)
	}
	if got.Count != 3 {
		t.Errorf("count = %d, want 3", got.Count)
	}
	if got.AvgWords != 2 {
		t.Errorf("avgWords = %v, want 2", got.AvgWords)
	}
	if got.MedianWords != 2 {
		t.Errorf("medianWords = %v, want 2", got.MedianWords)
	}
	if got.MinWords != 1 || got.MaxWords != 3 {
		t.Errorf("min/max = %d/%d, want 1/3", got.MinWords, got.MaxWords)
	}
}

func TestStatisticsEmptyCorpus(t *testing.T) {
	for _, corpus := range [][]string{nil, {}, {"", "   "}} {
		got := Statistics(corpus)
		if got.Status != model.StatusNoData {
			t.Errorf("Statistics(%q).Status = %s, want no_data", corpus, got.Status)
		}
		if got.Count != 0 {
			t.Errorf("Statistics(%q).Count = %d, want 0", corpus, got.Count)
		}
	}
}

func TestStatisticsSkipsBlankAnswers(t *testing.T) {
	got := Statistics([]string{"satu dua", "", "  ", "tiga empat"})
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}
}

func TestKeywords(t *testing.T) {
	res, err := Keywords(sampleCorpus, 5)
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if res.Status != model.StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if len(res.Keywords) == 0 || len(res.Keywords) > 5 {
		t.Fatalf("got %d keywords, want 1..5", len(res.Keywords))
	}
	for _, kw := range res.Keywords {
		if textproc.IsStopword(kw.Word) {
			t.Errorf("stopword %q in keyword result", kw.Word)
		}
		if kw.Score <= 0 {
			t.Errorf("keyword %q has non-positive score %v", kw.Word, kw.Score)
		}
	}
	for i := 1; i < len(res.Keywords); i++ {
		if res.Keywords[i].Score > res.Keywords[i-1].Score {
			t.Errorf("keywords not sorted by descending score at %d", i)
		}
	}
}

func TestKeywordsEmptyCorpus(t *testing.T) {
	res, err := Keywords(nil, 10)
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if res.Status != model.StatusOK || len(res.Keywords) != 0 {
		t.Errorf("empty corpus should give ok status and empty list, got %s / %d", res.Status, len(res.Keywords))
	}
}

func TestKeywordsStopwordOnlyCorpus(t *testing.T) {
	res, err := Keywords([]string{"yang dan untuk", "the and of"}, 10)
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if len(res.Keywords) != 0 {
		t.Errorf("stopword-only corpus should give empty list, got %v", res.Keywords)
	}
}

func TestKeywordsInvalidTopN(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := Keywords(sampleCorpus, n)
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("Keywords(topN=%d) error = %v, want ErrInvalidInput", n, err)
		}
	}
}

func TestKeywordsDeterministic(t *testing.T) {
	a, err := Keywords(sampleCorpus, DefaultTopN)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Keywords(sampleCorpus, DefaultTopN)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Keywords) != len(b.Keywords) {
		t.Fatalf("length mismatch: %d vs %d", len(a.Keywords), len(b.Keywords))
	}
	for i := range a.Keywords {
		if a.Keywords[i] != b.Keywords[i] {
			t.Errorf("keyword %d differs across runs: %v vs %v", i, a.Keywords[i], b.Keywords[i])
		}
	}
}

func TestTopics(t *testing.T) {
	res, err := Topics(sampleCorpus, 3, 2)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if res.Status != model.StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if len(res.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(res.Topics))
	}
	for _, topic := range res.Topics {
		if len(topic.Words) != 2 || len(topic.Weights) != 2 {
			t.Errorf("topic %d has %d words / %d weights, want 2/2", topic.ID, len(topic.Words), len(topic.Weights))
		}
		for i := 1; i < len(topic.Weights); i++ {
			if topic.Weights[i] > topic.Weights[i-1] {
				t.Errorf("topic %d weights not descending", topic.ID)
			}
		}
		for _, w := range topic.Words {
			if textproc.IsStopword(w) {
				t.Errorf("stopword %q in topic %d", w, topic.ID)
			}
		}
	}
}

func TestTopicsInsufficientData(t *testing.T) {
	res, err := Topics([]string{"hanya satu jawaban"}, 3, 5)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if res.Status != model.StatusInsufficientData {
		t.Errorf("status = %s, want insufficient_data", res.Status)
	}
	if len(res.Topics) != 0 {
		t.Errorf("expected no topics, got %d", len(res.Topics))
	}
}

func TestTopicsEmptyCorpus(t *testing.T) {
	res, err := Topics(nil, 3, 5)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if res.Status != model.StatusInsufficientData {
		t.Errorf("status = %s, want insufficient_data", res.Status)
	}
}

func TestTopicsInvalidParams(t *testing.T) {
	if _, err := Topics(sampleCorpus, 0, 5); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("n_topics=0 error = %v, want ErrInvalidInput", err)
	}
	if _, err := Topics(sampleCorpus, 3, 0); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("n_words=0 error = %v, want ErrInvalidInput", err)
	}
}

func TestSentimentAggregate(t *testing.T) {
	corpus := []string{"saya suka produk ini", "produk ini buruk sekali", "lumayan biasa saja"}
	res := Sentiment(corpus)
	if res.Status != model.StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
	if res.Summary.Positive != 1 || res.Summary.Negative != 1 || res.Summary.Neutral != 1 {
		t.Errorf("summary = %+v, want one of each", res.Summary)
	}
	if len(res.Details) != 3 {
		t.Fatalf("details = %d, want 3", len(res.Details))
	}
	for _, d := range res.Details {
		if d.Polarity < -1 || d.Polarity > 1 {
			t.Errorf("polarity %v out of range for %q", d.Polarity, d.Text)
		}
	}
}

func TestSentimentSkipsBlankAnswers(t *testing.T) {
	res := Sentiment([]string{"", "   ", "saya suka produk ini"})
	if res.Total != 1 {
		t.Errorf("total = %d, want 1 (blanks skipped)", res.Total)
	}
}

func TestSentimentEmptyCorpus(t *testing.T) {
	res := Sentiment(nil)
	if res.Status != model.StatusNoData {
		t.Errorf("status = %s, want no_data", res.Status)
	}
	if res.Total != 0 {
		t.Errorf("total = %d, want 0", res.Total)
	}
}
