// Package plan defines the relational-algebra tree handed over by the
// external parser/optimizer, plus the scalar expression nodes embedded in
// it. Nodes are immutable once built; the conversion pass is their only
// consumer.
package plan

import "fmt"

// Node represents a node in a relational-algebra plan.
type Node interface {
	// Kind returns the tag used for plugin dispatch.
	Kind() string
	// Children returns the child plans.
	Children() []Node
	// String returns a string representation for debugging.
	String() string
}

// Node kind tags.
const (
	KindTableScan = "TableScan"
	KindFilter    = "Filter"
	KindProject   = "Project"
	KindJoin      = "Join"
	KindAggregate = "Aggregate"
	KindSort      = "Sort"
	KindUnion     = "Union"
	KindValues    = "Values"
)

// JoinType represents the type of join.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
)

func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "INNER"
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case FullJoin:
		return "FULL"
	default:
		return fmt.Sprintf("Unknown(%d)", j)
	}
}

// SortOrder represents the sort order.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (s SortOrder) String() string {
	if s == Descending {
		return "DESC"
	}
	return "ASC"
}

// NullOrdering controls where NULL keys sort relative to non-NULL keys.
type NullOrdering int

const (
	// NullsDefault defers to the converter's configured policy.
	NullsDefault NullOrdering = iota
	NullsFirst
	NullsLast
)

func (n NullOrdering) String() string {
	switch n {
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	default:
		return ""
	}
}

// SortKey represents one ORDER BY key.
type SortKey struct {
	Expr  Rex
	Order SortOrder
	Nulls NullOrdering
}

func (k SortKey) String() string {
	s := fmt.Sprintf("%s %s", k.Expr.String(), k.Order.String())
	if k.Nulls != NullsDefault {
		s += " " + k.Nulls.String()
	}
	return s
}

// AggregateCall represents one (function, input column) aggregation pair.
type AggregateCall struct {
	Function string // case-insensitive function name
	Arg      int    // child column index; -1 for COUNT(*)
	Alias    string // output name; synthetic when empty
}

func (a AggregateCall) String() string {
	arg := "*"
	if a.Arg >= 0 {
		arg = fmt.Sprintf("$%d", a.Arg)
	}
	s := fmt.Sprintf("%s(%s)", a.Function, arg)
	if a.Alias != "" {
		s += " AS " + a.Alias
	}
	return s
}

// baseNode provides common functionality for plan nodes.
type baseNode struct {
	children []Node
}

func (n *baseNode) Children() []Node {
	return n.children
}
