package agents

import (
	"context"
	"fmt"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// InsufficientInfoAnswer is returned when no agent produced anything usable.
const InsufficientInfoAnswer = "I could not find sufficient information to answer your question."

const sourceExcerptLimit = 300

const finalPrompt = `Based on the research and analysis below, provide a clear and comprehensive answer to the user's question.

Question: %s

Research Findings: %s

Analysis: %s

Knowledge Graph Insights: %s

Provide a well-structured, accurate answer with appropriate citations where relevant.

Answer:`

// synthesiserNode merges agent outputs into the final answer. Preference
// order is analysis, then the retrieval answer, then the insufficient
// information fallback. When both an analysis and a retrieval answer exist
// they are merged with one more LLM call; if that call fails the pre-merge
// candidate stands.
func (o *Orchestrator) synthesiserNode(ctx context.Context, state State) (State, error) {
	candidate := InsufficientInfoAnswer
	switch {
	case state.Analysis != "":
		candidate = state.Analysis
	case state.RAGAnswer != "":
		candidate = state.RAGAnswer
	}

	if state.RAGAnswer != "" && state.Analysis != "" {
		kgContext := state.KGContext
		if kgContext == "" {
			kgContext = "None"
		}
		prompt := fmt.Sprintf(finalPrompt,
			state.Query,
			rag.Truncate(state.RAGAnswer, 1500),
			rag.Truncate(state.Analysis, 1500),
			rag.Truncate(kgContext, 500))
		merged, err := o.generator.Generate(ctx, prompt, llm.DefaultMaxTokens)
		if err != nil {
			o.logger.Warn("final synthesis call failed: %v", err)
		} else {
			candidate = merged
		}
	}

	sources := make([]rag.Source, 0, len(state.RetrievedDocs))
	for _, doc := range state.RetrievedDocs {
		sources = append(sources, rag.Source{
			Content: rag.Truncate(doc.Content, sourceExcerptLimit),
			Label:   doc.Label,
			Score:   doc.Score,
		})
	}

	o.logger.Info("synthesiser produced final answer (%d chars)", len(candidate))
	state.FinalAnswer = candidate
	state.Sources = sources
	return state.withStep("synthesiser"), nil
}
