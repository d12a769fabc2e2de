package rel

import (
	"fmt"
	"sort"

	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/rex"
	"github.com/dshills/FrameQL/sql/types"
)

// SortPlugin orders the child rows by the converted sort keys. Equal
// keys keep their original relative order. NULL keys follow the key's
// null ordering, or the converter's default (NULLS LAST) when the plan
// leaves it open; the placement is absolute, independent of ASC/DESC.
type SortPlugin struct{}

func (SortPlugin) Kind() string { return plan.KindSort }

func (SortPlugin) Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	sortNode, ok := node.(*plan.Sort)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Sort, got %T", node)
	}
	child := children[0]
	n := child.DF.Len()

	keys := make([]rex.Datum, len(sortNode.Keys))
	for i, k := range sortNode.Keys {
		d, err := ctx.Rex(k.Expr, child)
		if err != nil {
			return container.DataContainer{}, err
		}
		// Mixed-type cells within a key would blow up the comparator
		// mid-sort; reject them up front instead.
		var first types.Value
		seen := false
		for row := 0; row < n; row++ {
			v := d.At(row)
			if v.IsNull() {
				continue
			}
			if !seen {
				first, seen = v, true
				continue
			}
			if _, err := types.Compare(first, v); err != nil {
				return container.DataContainer{}, err
			}
		}
		keys[i] = d
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for ki, key := range sortNode.Keys {
			va, vb := keys[ki].At(perm[a]), keys[ki].At(perm[b])
			if va.IsNull() || vb.IsNull() {
				if va.IsNull() && vb.IsNull() {
					continue
				}
				nullsFirst := ctx.NullOrdering(key.Nulls) == plan.NullsFirst
				return va.IsNull() == nullsFirst
			}
			c := types.CompareValues(va, vb)
			if key.Order == plan.Descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	return container.New(child.DF.Take(perm), child.Columns), nil
}
