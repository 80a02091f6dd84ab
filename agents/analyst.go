package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

const analystMaxDocs = 5

const analysisPrompt = `You are an expert research analyst. Based on the following information, provide a comprehensive analysis.

User Query: %s

Retrieved Documents:
%s

Knowledge Graph Context:
%s

Initial RAG Answer:
%s

Please provide:
1. A thorough analysis addressing the query
2. Key insights and patterns identified
3. Supporting evidence from the sources
4. Any limitations or caveats

Analysis:`

// analystNode produces a structured analysis over retrieval output and any
// available graph context. It retrieves on its own when the researcher has
// not run before it.
func (o *Orchestrator) analystNode(ctx context.Context, state State) (State, error) {
	o.logger.Info("analyst handling query: %s", rag.Truncate(state.Query, 120))

	docs := state.RetrievedDocs
	answer := state.RAGAnswer
	if len(docs) == 0 {
		result, err := o.engine.Query(ctx, state.Query)
		if err != nil {
			o.logger.Error("analyst failed: %v", err)
			state.Analysis = ""
			state.Citations = nil
			return state.withError("analyst", err), nil
		}
		docs = result.Sources
		answer = result.Answer
	}

	kgContext := state.KGContext
	if kgContext == "" {
		kgContext = "No knowledge graph context available."
	}

	limit := analystMaxDocs
	if len(docs) < limit {
		limit = len(docs)
	}
	var docLines []string
	for i, doc := range docs[:limit] {
		docLines = append(docLines, fmt.Sprintf("[Source %d] %s", i+1, rag.Truncate(doc.Content, 600)))
	}
	docsText := strings.Join(docLines, "\n\n")
	if docsText == "" {
		docsText = "No documents retrieved."
	}
	promptAnswer := answer
	if promptAnswer == "" {
		promptAnswer = "No initial answer."
	}

	prompt := fmt.Sprintf(analysisPrompt, state.Query, docsText, kgContext, promptAnswer)
	analysis, err := o.generator.Generate(ctx, prompt, llm.DefaultMaxTokens)
	if err != nil {
		o.logger.Error("analyst generation failed: %v", err)
		state.Analysis = ""
		state.Citations = nil
		return state.withError("analyst", err), nil
	}

	citations := make([]Citation, 0, limit)
	for i, doc := range docs[:limit] {
		citations = append(citations, Citation{Index: i + 1, Source: doc.Label, Score: doc.Score})
	}

	o.logger.Info("analyst produced analysis (%d chars)", len(analysis))
	state.RetrievedDocs = docs
	state.RAGAnswer = answer
	state.Analysis = analysis
	state.Citations = citations
	return state.withStep("analyst"), nil
}
