package analytics

import (
	"fmt"
	"sort"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"kuisioner/internal/analytics/textproc"
	"kuisioner/internal/apperr"
	"kuisioner/internal/model"
)

const (
	ldaSeed       = 42
	ldaIterations = 100
)

// Topics decomposes the corpus into nTopics latent topics via LDA, each
// reported as its nWords top-weighted terms with raw component weights.
// The solver is seeded so identical input yields identical output; topic
// indices still carry no stable identity once the data changes. A corpus
// smaller than nTopics yields an insufficient-data result, never a
// silently reduced K.
func Topics(corpus []string, nTopics, nWords int) (model.TopicsResult, error) {
	if nTopics <= 0 {
		return model.TopicsResult{}, fmt.Errorf("n_topics must be positive, got %d: %w", nTopics, apperr.ErrInvalidInput)
	}
	if nWords <= 0 {
		return model.TopicsResult{}, fmt.Errorf("n_words must be positive, got %d: %w", nWords, apperr.ErrInvalidInput)
	}

	cleaned := textproc.CleanAll(corpus)
	if len(cleaned) < nTopics || !hasContent(cleaned) {
		return model.TopicsResult{Status: model.StatusInsufficientData}, nil
	}

	vectoriser := nlp.NewCountVectoriser(textproc.Stopwords()...)
	lda := nlp.NewLatentDirichletAllocation(nTopics)
	lda.Iterations = ldaIterations
	lda.Processes = 1
	lda.Rnd = rand.New(rand.NewSource(ldaSeed))

	pipeline := nlp.NewPipeline(vectoriser, lda)

	// docsOverTopics: rows are topics, columns are answers.
	docsOverTopics, err := pipeline.FitTransform(cleaned...)
	if err != nil {
		return model.TopicsResult{}, fmt.Errorf("lda fit: %w", err)
	}

	// topicsOverWords: rows are topics, columns are vocabulary terms.
	topicsOverWords := lda.Components()
	vocab := invertVocabulary(vectoriser.Vocabulary)

	_, vocabSize := topicsOverWords.Dims()
	top := nWords
	if top > vocabSize {
		top = vocabSize
	}

	shares := dominantShares(nTopics, docsOverTopics)

	topics := make([]model.Topic, nTopics)
	for t := 0; t < nTopics; t++ {
		idx := make([]int, vocabSize)
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			wa, wb := topicsOverWords.At(t, idx[a]), topicsOverWords.At(t, idx[b])
			if wa != wb {
				return wa > wb
			}
			return idx[a] < idx[b]
		})

		words := make([]string, top)
		weights := make([]float64, top)
		for i := 0; i < top; i++ {
			words[i] = vocab[idx[i]]
			weights[i] = topicsOverWords.At(t, idx[i])
		}
		topics[t] = model.Topic{ID: t, Words: words, Weights: weights, Share: shares[t]}
	}

	return model.TopicsResult{Status: model.StatusOK, Topics: topics}, nil
}

// dominantShares counts, per topic, the fraction of answers for which that
// topic holds the highest probability.
func dominantShares(nTopics int, docsOverTopics mat.Matrix) []float64 {
	rows, cols := docsOverTopics.Dims()
	counts := make([]int, nTopics)
	for doc := 0; doc < cols; doc++ {
		winner := 0
		max := docsOverTopics.At(0, doc)
		for topic := 1; topic < rows; topic++ {
			if p := docsOverTopics.At(topic, doc); p > max {
				winner = topic
				max = p
			}
		}
		counts[winner]++
	}

	shares := make([]float64, nTopics)
	if cols == 0 {
		return shares
	}
	for t := range counts {
		shares[t] = round3(float64(counts[t]) / float64(cols))
	}
	return shares
}
