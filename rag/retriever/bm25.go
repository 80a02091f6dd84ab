package retriever

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// BM25 Okapi parameters.
const (
	defaultK1 = 1.5
	defaultB  = 0.75
)

// BM25Scorer scores documents against query tokens with the Okapi BM25
// weighting scheme. Corpus statistics (document frequency, average length)
// are computed per call over the supplied pool, matching the engine's
// pool-only sparse stage.
type BM25Scorer struct {
	K1 float64
	B  float64
}

var _ rag.LexicalScorer = (*BM25Scorer)(nil)

// NewBM25Scorer creates a scorer with standard parameters.
func NewBM25Scorer() *BM25Scorer {
	return &BM25Scorer{K1: defaultK1, B: defaultB}
}

// Score returns one BM25 score per document, aligned by position.
func (s *BM25Scorer) Score(queryTokens []string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if len(queryTokens) == 0 {
		return nil, fmt.Errorf("empty query token list")
	}

	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)
	var totalLen float64

	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		totalLen += float64(len(tokens))

		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}
	avgDocLen := totalLen / float64(len(docs))
	n := float64(len(docs))

	// Okapi idf with the +1 shift keeps scores non-negative on small pools.
	idf := func(term string) float64 {
		df := float64(docFreq[term])
		return math.Log((n-df+0.5)/(df+0.5) + 1)
	}

	scores := make([]float64, len(docs))
	for i, tokens := range tokenized {
		if len(tokens) == 0 {
			continue
		}
		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		docLen := float64(len(tokens))

		var score float64
		for _, term := range queryTokens {
			f := tf[term]
			if f == 0 {
				continue
			}
			score += idf(term) * (f * (s.K1 + 1)) / (f + s.K1*(1-s.B+s.B*docLen/avgDocLen))
		}
		scores[i] = score
	}

	return scores, nil
}

// Tokenize lower-cases and whitespace-splits text for lexical scoring.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// sortByScore sorts results by score descending, preserving input order on ties.
func sortByScore(results []rag.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
