package agents

import (
	"context"
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// kgBuilderNode retrieves documents, extracts entities and relationships
// from them, persists both to the knowledge graph, and attaches graph
// context for the synthesiser.
func (o *Orchestrator) kgBuilderNode(ctx context.Context, state State) (State, error) {
	o.logger.Info("kg builder handling query: %s", rag.Truncate(state.Query, 120))

	result, err := o.engine.Query(ctx, state.Query)
	if err != nil {
		o.logger.Error("kg builder failed: %v", err)
		state.Entities = nil
		state.Relationships = nil
		state.KGContext = ""
		return state.withError("kg_builder", err), nil
	}

	var contents []string
	for _, doc := range result.Sources {
		contents = append(contents, doc.Content)
	}
	combined := strings.Join(contents, " ")

	entities := o.extractor.Extract(ctx, combined)
	relationships := o.extractor.ExtractRelationships(ctx, combined, entities)

	// Best effort: graph outages must not abort the run.
	o.persister.Persist(ctx, entities, relationships)

	o.logger.Info("kg builder extracted %d entities, %d relationships", len(entities), len(relationships))

	state.RetrievedDocs = result.Sources
	state.RAGAnswer = result.Answer
	state.Entities = entities
	state.Relationships = relationships
	state.KGContext = o.graphCtx.BuildContext(ctx, entities)
	return state.withStep("kg_builder"), nil
}
