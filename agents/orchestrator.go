package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nimishaaaaaw/AgentGraph-Intel/graph"
	"github.com/nimishaaaaaw/AgentGraph-Intel/kg"
	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// DefaultRunTimeout bounds a single pipeline run.
const DefaultRunTimeout = 2 * time.Minute

// QueryRunner answers a query with retrieval-backed generation.
type QueryRunner interface {
	Query(ctx context.Context, query string) (*rag.Answer, error)
}

// EntityExtractor pulls entities and relationships out of text.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) []kg.Entity
	ExtractRelationships(ctx context.Context, text string, entities []kg.Entity) []kg.Relationship
}

// GraphPersister stores extraction output, best effort.
type GraphPersister interface {
	Persist(ctx context.Context, entities []kg.Entity, relationships []kg.Relationship)
}

// ContextProvider summarises graph neighbourhoods for a set of entities.
type ContextProvider interface {
	BuildContext(ctx context.Context, entities []kg.Entity) string
}

// Orchestrator wires the agents into a compiled pipeline graph.
type Orchestrator struct {
	engine    QueryRunner
	extractor EntityExtractor
	persister GraphPersister
	graphCtx  ContextProvider
	generator llm.Client

	runTimeout time.Duration
	logger     log.Logger

	runnable *graph.Runnable[State]
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithRunTimeout bounds each pipeline run.
func WithRunTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.runTimeout = d
		}
	}
}

// WithLogger overrides the package default logger.
func WithLogger(logger log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// NewOrchestrator assembles the pipeline graph over the given collaborators.
func NewOrchestrator(engine QueryRunner, extractor EntityExtractor, persister GraphPersister, graphCtx ContextProvider, generator llm.Client, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		engine:     engine,
		extractor:  extractor,
		persister:  persister,
		graphCtx:   graphCtx,
		generator:  generator,
		runTimeout: DefaultRunTimeout,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	runnable, err := o.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("compiling pipeline graph: %w", err)
	}
	o.runnable = runnable
	return o, nil
}

func (o *Orchestrator) buildGraph() (*graph.Runnable[State], error) {
	workflow := graph.NewStateGraph[State]()

	workflow.AddNode("router", "classify the query intent", o.routeNode)
	workflow.AddNode("researcher", "hybrid retrieval and answer generation", o.researcherNode)
	workflow.AddNode("kg_builder", "entity extraction and graph enrichment", o.kgBuilderNode)
	workflow.AddNode("analyst", "structured analytical reasoning", o.analystNode)
	workflow.AddNode("synthesiser", "merge agent outputs into the final answer", o.synthesiserNode)

	workflow.SetEntryPoint("router")

	workflow.AddConditionalEdge("router", func(ctx context.Context, state State) string {
		switch state.Route {
		case RouteKGBuilder:
			return "kg_builder"
		case RouteAnalyst:
			return "analyst"
		case RouteResearcher:
			return "researcher"
		default:
			return "researcher"
		}
	})

	workflow.AddEdge("researcher", "synthesiser")
	workflow.AddEdge("kg_builder", "synthesiser")
	workflow.AddEdge("analyst", "synthesiser")
	workflow.AddEdge("synthesiser", graph.END)

	return workflow.Compile()
}

// Run executes the pipeline for a single query and returns the final state.
func (o *Orchestrator) Run(ctx context.Context, query, sessionID string) (State, error) {
	if sessionID == "" {
		sessionID = "default"
	}
	runID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, o.runTimeout)
	defer cancel()

	o.logger.Info("run %s: starting pipeline for session=%s", runID, sessionID)
	final, err := o.runnable.Invoke(ctx, NewState(query, sessionID))
	if err != nil {
		return final, fmt.Errorf("pipeline run %s failed: %w", runID, err)
	}
	o.logger.Info("run %s: complete, steps=%v", runID, final.Steps)
	return final, nil
}
