package analytics

import (
	"fmt"
	"sort"

	"github.com/james-bowman/nlp"

	"kuisioner/internal/analytics/textproc"
	"kuisioner/internal/apperr"
	"kuisioner/internal/model"
)

// Keywords ranks terms across the corpus by their summed TF-IDF weight.
// The vectoriser subtracts the fixed stoplist before scoring, so stopwords
// never appear in the result. Ties are broken by vocabulary index, which is
// stable within a run. An empty corpus yields an empty list, not an error.
func Keywords(corpus []string, topN int) (model.KeywordsResult, error) {
	if topN <= 0 {
		return model.KeywordsResult{}, fmt.Errorf("top_n must be positive, got %d: %w", topN, apperr.ErrInvalidInput)
	}

	cleaned := textproc.CleanAll(corpus)
	if !hasContent(cleaned) {
		return model.KeywordsResult{Status: model.StatusOK, Keywords: []model.Keyword{}}, nil
	}

	vectoriser := nlp.NewCountVectoriser(textproc.Stopwords()...)
	pipeline := nlp.NewPipeline(vectoriser, nlp.NewTfidfTransformer())

	// Term-document matrix: rows are terms, columns are answers.
	tfidf, err := pipeline.FitTransform(cleaned...)
	if err != nil {
		return model.KeywordsResult{}, fmt.Errorf("tfidf fit: %w", err)
	}

	terms, docs := tfidf.Dims()
	scores := make([]float64, terms)
	for i := 0; i < terms; i++ {
		for j := 0; j < docs; j++ {
			scores[i] += tfidf.At(i, j)
		}
	}

	vocab := invertVocabulary(vectoriser.Vocabulary)

	idx := make([]int, terms)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return idx[a] < idx[b]
	})

	if topN > terms {
		topN = terms
	}
	keywords := make([]model.Keyword, 0, topN)
	for _, i := range idx[:topN] {
		keywords = append(keywords, model.Keyword{Word: vocab[i], Score: round3(scores[i])})
	}

	return model.KeywordsResult{Status: model.StatusOK, Keywords: keywords}, nil
}

// hasContent reports whether any cleaned document still carries a
// non-stopword token. Feeding an all-stopword corpus to the vectoriser
// would produce an empty vocabulary.
func hasContent(cleaned []string) bool {
	for _, doc := range cleaned {
		if len(textproc.ContentTokens(doc)) > 0 {
			return true
		}
	}
	return false
}

func invertVocabulary(vocabulary map[string]int) []string {
	vocab := make([]string, len(vocabulary))
	for word, i := range vocabulary {
		vocab[i] = word
	}
	return vocab
}
