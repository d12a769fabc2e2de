package frameql

import (
	"fmt"

	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/schema"
)

// Planner is the boundary to the external parser/validator/optimizer.
// The core depends on nothing beyond this contract.
type Planner interface {
	// Plan parses, validates and optimizes the query against the given
	// schema, returning the optimized plan tree. A parse or validation
	// failure is returned as an error carrying a human-readable message.
	Plan(s *schema.Schema, query string) (*PlanResult, error)
}

// PlanResult is what the external planner hands back.
type PlanResult struct {
	// Root is the optimized relational-algebra tree.
	Root plan.Node
	// OutputNames carries the ordered user-intended output names from
	// the original projection list when the top-level query is a plain
	// SELECT. It is nil for any other top-level query shape.
	OutputNames []string
}

// StaticPlanner is an in-process Planner mapping exact query text to
// prebuilt plans. It stands in for the external parser/optimizer in
// tests and demos; unknown text fails the way a parser would.
type StaticPlanner struct {
	plans map[string]*PlanResult
}

// NewStaticPlanner creates an empty static planner.
func NewStaticPlanner() *StaticPlanner {
	return &StaticPlanner{plans: make(map[string]*PlanResult)}
}

// Add registers a plan for an exact query text.
func (p *StaticPlanner) Add(query string, root plan.Node, outputNames ...string) {
	p.plans[query] = &PlanResult{Root: root, OutputNames: outputNames}
}

// Plan implements Planner.
func (p *StaticPlanner) Plan(_ *schema.Schema, query string) (*PlanResult, error) {
	res, ok := p.plans[query]
	if !ok {
		return nil, fmt.Errorf("encountered an error while parsing: no plan known for query %q", query)
	}
	return res, nil
}
