package plan

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/sql/types"
)

// TableScan reads a registered table by name.
type TableScan struct {
	baseNode
	Table string
}

func (s *TableScan) Kind() string { return KindTableScan }

func (s *TableScan) String() string {
	return fmt.Sprintf("Scan(%s)", s.Table)
}

// Filter keeps the child rows for which the predicate holds.
type Filter struct {
	baseNode
	Condition Rex
}

func (f *Filter) Kind() string { return KindFilter }

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)", f.Condition.String())
}

// Project computes the output expressions over the child, dropping every
// column not re-projected. Names supplies per-expression output names; an
// empty name yields a synthetic one.
type Project struct {
	baseNode
	Exprs []Rex
	Names []string
}

func (p *Project) Kind() string { return KindProject }

func (p *Project) String() string {
	var projStrs []string
	for i, e := range p.Exprs {
		str := e.String()
		if i < len(p.Names) && p.Names[i] != "" {
			str += " AS " + p.Names[i]
		}
		projStrs = append(projStrs, str)
	}
	return fmt.Sprintf("Project(%s)", strings.Join(projStrs, ", "))
}

// Join combines two children on a condition evaluated over the combined
// schema (left columns followed by right columns).
type Join struct {
	baseNode
	JoinType  JoinType
	Condition Rex
}

func (j *Join) Kind() string { return KindJoin }

func (j *Join) String() string {
	return fmt.Sprintf("%sJoin(%s)", j.JoinType.String(), j.Condition.String())
}

// Aggregate partitions the child rows by the group-key columns and
// computes one aggregate value per group and call.
type Aggregate struct {
	baseNode
	GroupBy []int // child column indices
	Calls   []AggregateCall
}

func (a *Aggregate) Kind() string { return KindAggregate }

func (a *Aggregate) String() string {
	var parts []string
	if len(a.GroupBy) > 0 {
		var groupStrs []string
		for _, g := range a.GroupBy {
			groupStrs = append(groupStrs, fmt.Sprintf("$%d", g))
		}
		parts = append(parts, "GROUP BY "+strings.Join(groupStrs, ", "))
	}
	for _, c := range a.Calls {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("Aggregate(%s)", strings.Join(parts, " "))
}

// Sort orders the child rows by the given keys, stable on input order.
type Sort struct {
	baseNode
	Keys []SortKey
}

func (s *Sort) Kind() string { return KindSort }

func (s *Sort) String() string {
	var keyStrs []string
	for _, k := range s.Keys {
		keyStrs = append(keyStrs, k.String())
	}
	return fmt.Sprintf("Sort(%s)", strings.Join(keyStrs, ", "))
}

// Union concatenates the rows of all children. All preserves duplicates;
// otherwise the result is deduplicated on the full row tuple.
type Union struct {
	baseNode
	All bool
}

func (u *Union) Kind() string { return KindUnion }

func (u *Union) String() string {
	if u.All {
		return "UnionAll"
	}
	return "Union"
}

// Values constructs rows directly from literals, with no child input.
type Values struct {
	baseNode
	Names []string // output names; synthetic when empty
	Types []types.DataType
	Rows  [][]types.Value
}

func (v *Values) Kind() string { return KindValues }

func (v *Values) String() string {
	return fmt.Sprintf("Values(%d rows)", len(v.Rows))
}

// NewTableScan creates a new table scan node.
func NewTableScan(table string) *TableScan {
	return &TableScan{Table: table}
}

// NewFilter creates a new filter node.
func NewFilter(child Node, condition Rex) *Filter {
	return &Filter{
		baseNode:  baseNode{children: []Node{child}},
		Condition: condition,
	}
}

// NewProject creates a new projection node.
func NewProject(child Node, exprs []Rex, names []string) *Project {
	return &Project{
		baseNode: baseNode{children: []Node{child}},
		Exprs:    exprs,
		Names:    names,
	}
}

// NewJoin creates a new join node.
func NewJoin(left, right Node, joinType JoinType, condition Rex) *Join {
	return &Join{
		baseNode:  baseNode{children: []Node{left, right}},
		JoinType:  joinType,
		Condition: condition,
	}
}

// NewAggregate creates a new aggregate node.
func NewAggregate(child Node, groupBy []int, calls []AggregateCall) *Aggregate {
	return &Aggregate{
		baseNode: baseNode{children: []Node{child}},
		GroupBy:  groupBy,
		Calls:    calls,
	}
}

// NewSort creates a new sort node.
func NewSort(child Node, keys []SortKey) *Sort {
	return &Sort{
		baseNode: baseNode{children: []Node{child}},
		Keys:     keys,
	}
}

// NewUnion creates a new union node over two or more children.
func NewUnion(all bool, children ...Node) *Union {
	return &Union{
		baseNode: baseNode{children: children},
		All:      all,
	}
}

// NewValues creates a new values node.
func NewValues(names []string, colTypes []types.DataType, rows [][]types.Value) *Values {
	return &Values{Names: names, Types: colTypes, Rows: rows}
}
