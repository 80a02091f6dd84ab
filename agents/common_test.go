package agents

import (
	"context"
	"errors"

	"github.com/nimishaaaaaw/AgentGraph-Intel/kg"
	"github.com/nimishaaaaaw/AgentGraph-Intel/llm"
	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

var errEngine = errors.New("retrieval backend down")

type stubEngine struct {
	answer  *rag.Answer
	err     error
	queries []string
}

func (s *stubEngine) Query(ctx context.Context, query string) (*rag.Answer, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	if s.answer != nil {
		return s.answer, nil
	}
	return &rag.Answer{Answer: "", Sources: []rag.Source{}}, nil
}

type stubExtractor struct {
	entities      []kg.Entity
	relationships []kg.Relationship
	texts         []string
}

func (s *stubExtractor) Extract(ctx context.Context, text string) []kg.Entity {
	s.texts = append(s.texts, text)
	return s.entities
}

func (s *stubExtractor) ExtractRelationships(ctx context.Context, text string, entities []kg.Entity) []kg.Relationship {
	return s.relationships
}

type stubPersister struct {
	entities      []kg.Entity
	relationships []kg.Relationship
	calls         int
}

func (s *stubPersister) Persist(ctx context.Context, entities []kg.Entity, relationships []kg.Relationship) {
	s.calls++
	s.entities = entities
	s.relationships = relationships
}

type stubContextProvider struct {
	context string
}

func (s *stubContextProvider) BuildContext(ctx context.Context, entities []kg.Entity) string {
	if s.context != "" {
		return s.context
	}
	return kg.ContextUnavailable
}

func ragAnswer(answer string, sources ...rag.Source) *rag.Answer {
	return &rag.Answer{Answer: answer, Sources: sources}
}

func newTestOrchestrator(engine QueryRunner, extractor EntityExtractor, persister GraphPersister, graphCtx ContextProvider, client llm.Client) (*Orchestrator, error) {
	if engine == nil {
		engine = &stubEngine{}
	}
	if extractor == nil {
		extractor = &stubExtractor{}
	}
	if persister == nil {
		persister = &stubPersister{}
	}
	if graphCtx == nil {
		graphCtx = &stubContextProvider{}
	}
	if client == nil {
		client = &llm.MockClient{}
	}
	return NewOrchestrator(engine, extractor, persister, graphCtx, client, WithLogger(log.NopLogger{}))
}
