package kg

import (
	"context"
	"errors"
	"strings"
)

var errGraphDown = errors.New("graph unreachable")

// mockGraphClient records queries and serves canned rows keyed by a query
// substring.
type mockGraphClient struct {
	healthy  bool
	rows     map[string][]map[string]any
	queryErr error

	reads    []string
	writes   []string
	params   []map[string]any
	writeErr error
}

func (m *mockGraphClient) RunQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	m.reads = append(m.reads, query)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	for key, rows := range m.rows {
		if strings.Contains(query, key) {
			return rows, nil
		}
	}
	return nil, nil
}

func (m *mockGraphClient) RunWriteQuery(ctx context.Context, query string, params map[string]any) error {
	m.writes = append(m.writes, query)
	m.params = append(m.params, params)
	return m.writeErr
}

func (m *mockGraphClient) HealthCheck(ctx context.Context) bool { return m.healthy }

func (m *mockGraphClient) Close(ctx context.Context) error { return nil }
