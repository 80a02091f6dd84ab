package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuery(t *testing.T) {
	cases := []struct {
		query string
		want  Route
	}{
		{"What is hybrid retrieval?", RouteResearcher},
		{"Tell me about Go generics", RouteResearcher},
		{"Extract entities from the onboarding docs", RouteKGBuilder},
		{"Build graph from the architecture notes", RouteKGBuilder},
		{"Show the connections between these services", RouteKGBuilder},
		{"What relationships exist in this corpus?", RouteKGBuilder},
		{"Compare Postgres and Neo4j for this workload", RouteAnalyst},
		{"Summarize the incident report", RouteAnalyst},
		{"summarise the incident report", RouteAnalyst},
		{"What is the difference between RRF and BM25?", RouteAnalyst},
		{"", RouteResearcher},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyQuery(tc.query), "query: %q", tc.query)
	}
}

func TestClassifyQueryKGBeatsAnalyst(t *testing.T) {
	// Graph-construction intent wins even when analytical keywords appear.
	assert.Equal(t, RouteKGBuilder, ClassifyQuery("compare the entities in both documents"))
}

func TestClassifyQueryCaseInsensitive(t *testing.T) {
	assert.Equal(t, RouteKGBuilder, ClassifyQuery("KNOWLEDGE GRAPH of the team"))
	assert.Equal(t, RouteAnalyst, ClassifyQuery("EVALUATE this proposal"))
}
