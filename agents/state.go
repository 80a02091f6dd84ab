// Package agents implements the multi-agent query pipeline: a router
// classifies each query, one of three specialist agents handles it, and a
// synthesiser merges their outputs into the final answer.
package agents

import (
	"github.com/nimishaaaaaw/AgentGraph-Intel/kg"
	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// Route identifies which specialist agent handles a query.
type Route string

const (
	RouteResearcher Route = "researcher"
	RouteKGBuilder  Route = "kg_builder"
	RouteAnalyst    Route = "analyst"
)

// Citation points a reader at one of the passages behind an analysis.
type Citation struct {
	Index  int     `json:"index"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// State is the value threaded through the pipeline. Nodes never mutate the
// snapshot they receive; each returns a fresh copy with its own fields set.
type State struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`

	Route Route `json:"route"`

	RetrievedDocs []rag.Source `json:"retrieved_docs"`
	RAGAnswer     string       `json:"rag_answer"`

	Entities      []kg.Entity       `json:"extracted_entities"`
	Relationships []kg.Relationship `json:"extracted_relationships"`
	KGContext     string            `json:"kg_context"`

	Analysis  string     `json:"analysis"`
	Citations []Citation `json:"citations"`

	FinalAnswer string       `json:"final_answer"`
	Sources     []rag.Source `json:"sources"`

	Error string   `json:"error,omitempty"`
	Steps []string `json:"steps_taken"`
}

// NewState creates the initial pipeline state for a query.
func NewState(query, sessionID string) State {
	return State{Query: query, SessionID: sessionID}
}

// withStep returns a copy of the state with the step appended to a fresh
// trace slice, so snapshots held by earlier nodes stay untouched.
func (s State) withStep(step string) State {
	steps := make([]string, 0, len(s.Steps)+1)
	steps = append(steps, s.Steps...)
	s.Steps = append(steps, step)
	return s
}

// withError records a stage failure without aborting the pipeline.
func (s State) withError(stage string, err error) State {
	s.Error = err.Error()
	return s.withStep(stage + ":error")
}
