package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

// NoEvidenceAnswer is returned when retrieval finds nothing. Having no
// retrievable evidence is not an error condition.
const NoEvidenceAnswer = "I could not find relevant information to answer your question."

// DefaultRerankTopK is the number of candidates kept after reranking.
const DefaultRerankTopK = 5

const answerPrompt = `You are a knowledgeable research assistant. Answer the question based *only* on the provided context. If the context does not contain enough information, say so clearly.

Question: %s

Context:
%s

Answer:`

// Source is one normalized citation in a query answer.
type Source struct {
	Content string  `json:"content"`
	Label   string  `json:"source"`
	Score   float64 `json:"score"`
}

// Answer is the result of one end-to-end RAG query.
type Answer struct {
	Answer  string
	Sources []Source

	// Candidates are the reranked results the answer was grounded on.
	Candidates []FusedResult
}

// QueryEngine runs the full retrieval pipeline: hybrid retrieval, reranking,
// context assembly and grounded answer generation.
type QueryEngine struct {
	retriever  Retriever
	reranker   Reranker
	generator  llm.Client
	rerankTopK int
	logger     log.Logger
}

// QueryEngineOption customizes a QueryEngine.
type QueryEngineOption func(*QueryEngine)

// WithRerankTopK overrides the post-rerank candidate count.
func WithRerankTopK(k int) QueryEngineOption {
	return func(e *QueryEngine) {
		if k > 0 {
			e.rerankTopK = k
		}
	}
}

// WithEngineLogger overrides the engine logger.
func WithEngineLogger(logger log.Logger) QueryEngineOption {
	return func(e *QueryEngine) { e.logger = logger }
}

// NewQueryEngine wires a retriever, a reranker and a generation backend.
func NewQueryEngine(retriever Retriever, reranker Reranker, generator llm.Client, opts ...QueryEngineOption) *QueryEngine {
	e := &QueryEngine{
		retriever:  retriever,
		reranker:   reranker,
		generator:  generator,
		rerankTopK: DefaultRerankTopK,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query answers a question over the whole corpus.
func (e *QueryEngine) Query(ctx context.Context, question string) (*Answer, error) {
	return e.query(ctx, question, "")
}

// QueryFiltered answers a question restricted to one parent document.
func (e *QueryEngine) QueryFiltered(ctx context.Context, question, docID string) (*Answer, error) {
	return e.query(ctx, question, docID)
}

func (e *QueryEngine) query(ctx context.Context, question, docID string) (*Answer, error) {
	var candidates []FusedResult
	var err error
	if docID != "" {
		candidates, err = e.retriever.RetrieveFiltered(ctx, question, docID)
	} else {
		candidates, err = e.retriever.Retrieve(ctx, question)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(candidates) == 0 {
		return &Answer{Answer: NoEvidenceAnswer, Sources: []Source{}}, nil
	}

	ranked, err := e.reranker.Rerank(ctx, question, candidates, e.rerankTopK)
	if err != nil {
		// The reranker contract degrades internally; an error here means a
		// programming defect, but the candidates are still usable.
		e.logger.Warn("reranker returned error, using fused order: %v", err)
		ranked = candidates
		if len(ranked) > e.rerankTopK {
			ranked = ranked[:e.rerankTopK]
		}
	}

	answer := e.generate(ctx, question, ranked)

	return &Answer{
		Answer:     answer,
		Sources:    NormalizeSources(ranked, 400),
		Candidates: ranked,
	}, nil
}

// generate produces the grounded answer; a generation failure yields an
// explanatory degraded answer rather than an error.
func (e *QueryEngine) generate(ctx context.Context, question string, ranked []FusedResult) string {
	prompt := fmt.Sprintf(answerPrompt, question, buildContextBlock(ranked))
	answer, err := e.generator.Generate(ctx, prompt, 0)
	if err != nil {
		e.logger.Error("answer generation failed: %v", err)
		return fmt.Sprintf("Retrieved context was found but answer generation failed: %v", err)
	}
	return answer
}

// buildContextBlock renders ranked candidates as a numbered context section.
func buildContextBlock(ranked []FusedResult) string {
	parts := make([]string, len(ranked))
	for i, item := range ranked {
		parts[i] = fmt.Sprintf("[%d] (source: %s)\n%s", i+1, item.Document.SourceLabel(), item.Document.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// NormalizeSources converts candidates to the public citation form, keeping
// at most maxExcerpt bytes of each chunk. The rerank score wins over the
// fused score when present.
func NormalizeSources(candidates []FusedResult, maxExcerpt int) []Source {
	sources := make([]Source, len(candidates))
	for i, item := range candidates {
		score := item.Score
		if item.RerankScore != 0 {
			score = item.RerankScore
		}
		sources[i] = Source{
			Content: Truncate(item.Document.Content, maxExcerpt),
			Label:   item.Document.SourceLabel(),
			Score:   score,
		}
	}
	return sources
}

// Truncate cuts s to at most n bytes without splitting a rune.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
