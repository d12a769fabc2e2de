// Package container implements the column-name virtualization layer: a
// query's user-facing (logical) column names stay decoupled from the
// physical labels the dataframe actually carries, so plan conversion can
// regenerate physical labels freely without disturbing what the caller
// sees. Containers are values; every transformation returns a new one.
package container

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/FrameQL/sqlerr"
)

// ColumnContainer is an ordered, name-unique mapping from logical column
// name to physical dataframe label.
type ColumnContainer struct {
	order   []string
	mapping map[string]string // logical -> physical
}

// NewColumnContainer creates a container with an identity mapping: each
// name is both the logical name and the physical label.
func NewColumnContainer(columns []string) ColumnContainer {
	cc := ColumnContainer{
		order:   append([]string(nil), columns...),
		mapping: make(map[string]string, len(columns)),
	}
	for _, c := range columns {
		cc.mapping[c] = c
	}
	return cc
}

// Columns returns the logical column names in output order.
func (cc ColumnContainer) Columns() []string {
	return append([]string(nil), cc.order...)
}

// Len returns the number of columns.
func (cc ColumnContainer) Len() int {
	return len(cc.order)
}

// PhysicalLabel resolves a logical name to its physical label.
func (cc ColumnContainer) PhysicalLabel(logical string) (string, error) {
	p, ok := cc.mapping[logical]
	if !ok {
		return "", sqlerr.UndefinedColumnError(logical)
	}
	return p, nil
}

// PhysicalLabelAt resolves the logical column at the given position.
func (cc ColumnContainer) PhysicalLabelAt(index int) (string, error) {
	if index < 0 || index >= len(cc.order) {
		return "", sqlerr.ColumnResolutionError(index, len(cc.order))
	}
	return cc.mapping[cc.order[index]], nil
}

// Rename returns a new container with logical names substituted per
// mapping. Names not present in the mapping are kept. Physical labels
// and column order are unchanged.
func (cc ColumnContainer) Rename(mapping map[string]string) ColumnContainer {
	out := ColumnContainer{
		order:   make([]string, len(cc.order)),
		mapping: make(map[string]string, len(cc.order)),
	}
	for i, logical := range cc.order {
		renamed := logical
		if to, ok := mapping[logical]; ok {
			renamed = to
		}
		out.order[i] = renamed
		out.mapping[renamed] = cc.mapping[logical]
	}
	return out
}

// LimitTo returns a new container restricted to the given logical names,
// reordered to match.
func (cc ColumnContainer) LimitTo(columns ...string) (ColumnContainer, error) {
	out := ColumnContainer{
		order:   make([]string, 0, len(columns)),
		mapping: make(map[string]string, len(columns)),
	}
	for _, logical := range columns {
		p, ok := cc.mapping[logical]
		if !ok {
			return ColumnContainer{}, sqlerr.UndefinedColumnError(logical)
		}
		out.order = append(out.order, logical)
		out.mapping[logical] = p
	}
	return out, nil
}

// Add returns a new container with one more column appended.
func (cc ColumnContainer) Add(logical, physical string) (ColumnContainer, error) {
	if _, ok := cc.mapping[logical]; ok {
		return ColumnContainer{}, fmt.Errorf("logical column %q already present", logical)
	}
	out := ColumnContainer{
		order:   append(append([]string(nil), cc.order...), logical),
		mapping: make(map[string]string, len(cc.order)+1),
	}
	for k, v := range cc.mapping {
		out.mapping[k] = v
	}
	out.mapping[logical] = physical
	return out, nil
}

// TemporaryLabel generates a fresh physical column label. Labels are
// unique for the process lifetime and never collide with user columns.
func TemporaryLabel() string {
	return "col_" + uuid.NewString()
}
