package agents

import (
	"context"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// researcherNode runs hybrid retrieval and answer generation. Failures are
// captured on the state so the synthesiser still runs.
func (o *Orchestrator) researcherNode(ctx context.Context, state State) (State, error) {
	o.logger.Info("researcher handling query: %s", rag.Truncate(state.Query, 120))

	result, err := o.engine.Query(ctx, state.Query)
	if err != nil {
		o.logger.Error("researcher failed: %v", err)
		state.RetrievedDocs = nil
		state.RAGAnswer = ""
		return state.withError("researcher", err), nil
	}

	o.logger.Info("researcher retrieved %d documents", len(result.Sources))
	state.RetrievedDocs = result.Sources
	state.RAGAnswer = result.Answer
	return state.withStep("researcher"), nil
}
