package kg

import (
	"context"
	"fmt"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

const upsertEntitiesQuery = `
UNWIND $entities AS ent
MERGE (e:Entity {name: ent.name})
SET e.type = ent.type,
    e.description = ent.description,
    e.updated_at = timestamp()`

// Persister upserts extracted entities and relationships into the graph.
type Persister struct {
	client GraphClient
	logger log.Logger
}

// NewPersister creates a persister over the given graph client.
func NewPersister(client GraphClient, opts ...PersisterOption) *Persister {
	p := &Persister{client: client, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PersisterOption customises a Persister.
type PersisterOption func(*Persister)

// WithPersisterLogger overrides the package default logger.
func WithPersisterLogger(logger log.Logger) PersisterOption {
	return func(p *Persister) { p.logger = logger }
}

// Persist upserts entities and relationships. The operation is best effort:
// failures are logged, never returned, so graph outages cannot abort a
// pipeline run.
func (p *Persister) Persist(ctx context.Context, entities []Entity, relationships []Relationship) {
	if p.client == nil {
		p.logger.Warn("graph persist skipped: no client configured")
		return
	}
	if err := p.upsertEntities(ctx, entities); err != nil {
		p.logger.Warn("graph persist failed: %v", err)
		return
	}
	p.upsertRelationships(ctx, relationships)
	p.logger.Info("persisted %d entities and %d relationships", len(entities), len(relationships))
}

func (p *Persister) upsertEntities(ctx context.Context, entities []Entity) error {
	if len(entities) == 0 {
		return nil
	}
	rows := make([]map[string]any, len(entities))
	for i, ent := range entities {
		rows[i] = map[string]any{
			"name":        ent.Name,
			"type":        ent.Type,
			"description": ent.Description,
		}
	}
	return p.client.RunWriteQuery(ctx, upsertEntitiesQuery, map[string]any{"entities": rows})
}

func (p *Persister) upsertRelationships(ctx context.Context, relationships []Relationship) {
	for _, rel := range relationships {
		// The relationship type is part of the Cypher pattern, so each
		// type needs its own query.
		query := fmt.Sprintf(`
MATCH (a:Entity {name: $source})
MATCH (b:Entity {name: $target})
MERGE (a)-[r:%s]->(b)
SET r.description = $description,
    r.updated_at = timestamp()`, rel.Type)
		params := map[string]any{
			"source":      rel.Source,
			"target":      rel.Target,
			"description": rel.Description,
		}
		if err := p.client.RunWriteQuery(ctx, query, params); err != nil {
			p.logger.Debug("skipping relationship upsert %s-[%s]->%s: %v", rel.Source, rel.Type, rel.Target, err)
		}
	}
}
