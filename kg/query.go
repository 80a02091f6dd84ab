package kg

import (
	"context"
)

// GraphStats summarises node and edge counts by type.
type GraphStats struct {
	Available          bool             `json:"available"`
	TotalEntities      int64            `json:"total_entities"`
	TotalRelationships int64            `json:"total_relationships"`
	EntityTypes        map[string]int64 `json:"entity_types"`
}

// Query provides named read helpers over the knowledge graph.
type Query struct {
	client GraphClient
}

// NewQuery creates a query helper over the given graph client.
func NewQuery(client GraphClient) *Query {
	return &Query{client: client}
}

// ListEntities returns entities, optionally filtered by type.
func (q *Query) ListEntities(ctx context.Context, entityType string, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = 100
	}
	var typeParam any
	if entityType != "" {
		typeParam = NormalizeType(entityType)
	}
	rows, err := q.client.RunQuery(ctx,
		`MATCH (e:Entity) WHERE $type IS NULL OR e.type = $type `+
			`RETURN e.name AS name, e.type AS type, e.description AS description `+
			`LIMIT $limit`,
		map[string]any{"type": typeParam, "limit": limit})
	if err != nil {
		return nil, err
	}
	return entitiesFromRows(rows), nil
}

// SearchEntities finds entities whose name contains the term,
// case-insensitively.
func (q *Query) SearchEntities(ctx context.Context, term string, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := q.client.RunQuery(ctx,
		`MATCH (e:Entity) `+
			`WHERE toLower(e.name) CONTAINS toLower($term) `+
			`RETURN e.name AS name, e.type AS type, e.description AS description `+
			`LIMIT $limit`,
		map[string]any{"term": term, "limit": limit})
	if err != nil {
		return nil, err
	}
	return entitiesFromRows(rows), nil
}

// ListRelationships returns relationships as source, type, target triples.
func (q *Query) ListRelationships(ctx context.Context, limit int) ([]Relationship, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.client.RunQuery(ctx,
		`MATCH (a:Entity)-[r]->(b:Entity) `+
			`RETURN a.name AS source, type(r) AS relationship, b.name AS target, `+
			`r.description AS description `+
			`LIMIT $limit`,
		map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	rels := make([]Relationship, 0, len(rows))
	for _, row := range rows {
		rels = append(rels, Relationship{
			Source:      stringValue(row["source"], ""),
			Target:      stringValue(row["target"], ""),
			Type:        stringValue(row["relationship"], ""),
			Description: stringValue(row["description"], ""),
		})
	}
	return rels, nil
}

// Stats returns basic graph statistics. An unreachable graph yields
// Available false rather than an error.
func (q *Query) Stats(ctx context.Context) GraphStats {
	stats := GraphStats{EntityTypes: make(map[string]int64)}
	if q.client == nil || !q.client.HealthCheck(ctx) {
		return stats
	}
	stats.Available = true

	if rows, err := q.client.RunQuery(ctx,
		`MATCH (e:Entity) RETURN count(e) AS total`, nil); err == nil && len(rows) > 0 {
		stats.TotalEntities = intValue(rows[0]["total"])
	}
	if rows, err := q.client.RunQuery(ctx,
		`MATCH ()-[r]->() RETURN count(r) AS total`, nil); err == nil && len(rows) > 0 {
		stats.TotalRelationships = intValue(rows[0]["total"])
	}
	if rows, err := q.client.RunQuery(ctx,
		`MATCH (e:Entity) RETURN e.type AS type, count(e) AS count ORDER BY count DESC`, nil); err == nil {
		for _, row := range rows {
			stats.EntityTypes[stringValue(row["type"], "UNKNOWN")] = intValue(row["count"])
		}
	}
	return stats
}

func entitiesFromRows(rows []map[string]any) []Entity {
	entities := make([]Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, Entity{
			Name:        stringValue(row["name"], ""),
			Type:        stringValue(row["type"], ""),
			Description: stringValue(row["description"], ""),
		})
	}
	return entities
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
