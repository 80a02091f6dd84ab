package agents

import (
	"context"
	"strings"
)

// Keyword groups that signal intent, checked in priority order: graph
// construction first, then analytical reasoning, with plain research as the
// default.
var kgKeywords = []string{
	"extract entities",
	"build graph",
	"create graph",
	"knowledge graph",
	"entities",
	"relationships",
	"map out",
	"connections between",
}

var analystKeywords = []string{
	"compare",
	"contrast",
	"analyze",
	"analyse",
	"summarize",
	"summarise",
	"evaluate",
	"assessment",
	"pros and cons",
	"difference between",
	"similarities",
}

// ClassifyQuery picks the route for a query by keyword matching.
func ClassifyQuery(query string) Route {
	lower := strings.ToLower(query)
	if containsAny(lower, kgKeywords) {
		return RouteKGBuilder
	}
	if containsAny(lower, analystKeywords) {
		return RouteAnalyst
	}
	return RouteResearcher
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) routeNode(ctx context.Context, state State) (State, error) {
	route := ClassifyQuery(state.Query)
	o.logger.Info("routing query to: %s", route)
	state.Route = route
	return state.withStep("router:" + string(route)), nil
}
