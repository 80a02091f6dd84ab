package kg

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/nimishaaaaaw/AgentGraph-Intel/log"
)

// GraphClient is the minimal Cypher surface the package needs from Neo4j.
type GraphClient interface {
	RunQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	RunWriteQuery(ctx context.Context, query string, params map[string]any) error
	HealthCheck(ctx context.Context) bool
	Close(ctx context.Context) error
}

// Neo4jClient wraps the Bolt driver behind GraphClient.
type Neo4jClient struct {
	driver neo4j.DriverWithContext
	logger log.Logger
}

var _ GraphClient = (*Neo4jClient)(nil)

// NewNeo4jClient connects to Neo4j and verifies connectivity.
func NewNeo4jClient(ctx context.Context, uri, username, password string) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}
	return &Neo4jClient{driver: driver, logger: log.Default()}, nil
}

// RunQuery executes a read Cypher query and returns each record as a map.
func (c *Neo4jClient) RunQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting records: %w", err)
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = record.AsMap()
	}
	return rows, nil
}

// RunWriteQuery executes a write Cypher query inside a managed transaction.
func (c *Neo4jClient) RunWriteQuery(ctx context.Context, query string, params map[string]any) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("running write query: %w", err)
	}
	return nil
}

// HealthCheck reports whether the database answers a trivial query.
func (c *Neo4jClient) HealthCheck(ctx context.Context) bool {
	if _, err := c.RunQuery(ctx, "RETURN 1 AS ok", nil); err != nil {
		c.logger.Warn("neo4j health check failed: %v", err)
		return false
	}
	return true
}

// Close shuts down the underlying driver.
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// CreateIndexes creates recommended indexes if they do not already exist.
// Failures are logged and skipped.
func (c *Neo4jClient) CreateIndexes(ctx context.Context) {
	queries := []string{
		"CREATE INDEX entity_name IF NOT EXISTS FOR (e:Entity) ON (e.name)",
		"CREATE INDEX entity_type IF NOT EXISTS FOR (e:Entity) ON (e.type)",
		"CREATE INDEX doc_id IF NOT EXISTS FOR (d:Document) ON (d.doc_id)",
	}
	for _, query := range queries {
		if err := c.RunWriteQuery(ctx, query, nil); err != nil {
			c.logger.Debug("index creation skipped: %v", err)
		}
	}
}
