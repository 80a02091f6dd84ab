package retriever

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

const rerankPrompt = `Rate how relevant the passage is to the query on a scale from 0 to 10.
Respond with ONLY the number.

Query: %s

Passage:
%s

Score:`

// Passages longer than this are cut before being sent to the scoring model.
const rerankPassageLimit = 1500

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// LLMReranker rescores each (query, candidate) pair with the generation
// backend. When the backend is unavailable or fails mid-pass it degrades to
// returning the first topK candidates in the caller's order, so downstream
// context assembly is never starved.
type LLMReranker struct {
	client llm.Client
	logger log.Logger
}

var _ rag.Reranker = (*LLMReranker)(nil)

// NewLLMReranker creates a reranker over the given generation backend.
func NewLLMReranker(client llm.Client) *LLMReranker {
	return &LLMReranker{client: client, logger: log.Default()}
}

// Rerank rescores candidates and keeps the top topK, annotated with their
// rerank scores. The result is always a subsequence of the input.
func (r *LLMReranker) Rerank(ctx context.Context, query string, candidates []rag.FusedResult, topK int) ([]rag.FusedResult, error) {
	if len(candidates) == 0 {
		return []rag.FusedResult{}, nil
	}
	if topK <= 0 {
		topK = rag.DefaultRerankTopK
	}

	if !r.client.IsAvailable() {
		r.logger.Warn("rerank model unavailable, returning top-%d unranked", topK)
		return head(candidates, topK), nil
	}

	scored := make([]rag.FusedResult, len(candidates))
	for i, candidate := range candidates {
		score, err := r.scorePair(ctx, query, candidate.Document.Content)
		if err != nil {
			r.logger.Warn("rerank scoring failed (%v), returning top-%d unranked", err, topK)
			return head(candidates, topK), nil
		}
		candidate.RerankScore = score
		scored[i] = candidate
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RerankScore > scored[j].RerankScore
	})

	result := head(scored, topK)
	r.logger.Info("reranked %d -> %d candidates", len(candidates), len(result))
	return result, nil
}

// scorePair asks the model for a numeric relevance judgment. A response with
// no parsable number counts as zero relevance rather than a failure.
func (r *LLMReranker) scorePair(ctx context.Context, query, passage string) (float64, error) {
	prompt := fmt.Sprintf(rerankPrompt, query, rag.Truncate(passage, rerankPassageLimit))
	response, err := r.client.Generate(ctx, prompt, 8)
	if err != nil {
		return 0, err
	}

	match := numberPattern.FindString(response)
	if match == "" {
		r.logger.Debug("no numeric score in rerank response: %q", rag.Truncate(response, 60))
		return 0, nil
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, nil
	}
	return score, nil
}

func head(candidates []rag.FusedResult, k int) []rag.FusedResult {
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]rag.FusedResult, len(candidates))
	copy(out, candidates)
	return out
}
