package kg

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

// Sentinel context strings returned when the graph cannot contribute.
const (
	ContextUnavailable = "Knowledge graph context unavailable."
	ContextEmpty       = "No relevant graph context found."
)

const (
	// DefaultMaxEntities caps how many entities a context lookup expands.
	DefaultMaxEntities = 5

	neighbourLimit = 10
)

const neighboursQuery = `MATCH (e:Entity {name: $name})-[r]-(neighbour:Entity) ` +
	`RETURN e.name AS entity, type(r) AS relation, ` +
	`neighbour.name AS neighbour, neighbour.type AS neighbour_type ` +
	`LIMIT $limit`

// ContextBuilder formats knowledge graph neighbourhoods as prompt context.
type ContextBuilder struct {
	client      GraphClient
	maxEntities int
	logger      log.Logger
}

// NewContextBuilder creates a builder over the given graph client. A nil
// client yields the unavailable sentinel on every call.
func NewContextBuilder(client GraphClient, opts ...ContextOption) *ContextBuilder {
	b := &ContextBuilder{
		client:      client,
		maxEntities: DefaultMaxEntities,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ContextOption customises a ContextBuilder.
type ContextOption func(*ContextBuilder)

// WithMaxEntities caps entity expansion per lookup.
func WithMaxEntities(n int) ContextOption {
	return func(b *ContextBuilder) {
		if n > 0 {
			b.maxEntities = n
		}
	}
}

// WithContextLogger overrides the package default logger.
func WithContextLogger(logger log.Logger) ContextOption {
	return func(b *ContextBuilder) { b.logger = logger }
}

// BuildContext summarises the graph neighbourhood of the given entities as
// text for inclusion in an LLM prompt. It never returns an error: when the
// graph is unreachable or holds nothing relevant, a sentinel string is
// returned instead.
func (b *ContextBuilder) BuildContext(ctx context.Context, entities []Entity) string {
	if b.client == nil || len(entities) == 0 || !b.client.HealthCheck(ctx) {
		return ContextUnavailable
	}

	limit := b.maxEntities
	if len(entities) < limit {
		limit = len(entities)
	}

	var parts []string
	for _, entity := range entities[:limit] {
		if entity.Name == "" {
			continue
		}
		neighbours, err := b.client.RunQuery(ctx, neighboursQuery, map[string]any{
			"name":  entity.Name,
			"limit": neighbourLimit,
		})
		if err != nil {
			b.logger.Debug("graph context fetch failed for %q: %v", entity.Name, err)
			continue
		}
		if len(neighbours) > 0 {
			parts = append(parts, formatEntityContext(entity.Name, neighbours))
		}
	}

	if len(parts) == 0 {
		return ContextEmpty
	}
	return "Knowledge Graph Context:\n\n" + strings.Join(parts, "\n\n")
}

func formatEntityContext(name string, neighbours []map[string]any) string {
	lines := []string{"Entity: " + name}
	for _, row := range neighbours {
		relation := stringValue(row["relation"], "RELATED_TO")
		lines = append(lines, fmt.Sprintf("  - [%s] -> %s (%s)",
			relation, stringValue(row["neighbour"], ""), stringValue(row["neighbour_type"], "")))
	}
	return strings.Join(lines, "\n")
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
