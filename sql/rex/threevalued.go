package rex

import (
	"fmt"

	"github.com/dshills/FrameQL/sql/types"
)

// tri is SQL's three-valued logic. Unknown arises from NULL operands and
// collapses to "exclude the row" only at the filter boundary, never
// inside an expression.
type tri int8

const (
	triFalse tri = iota
	triTrue
	triUnknown
)

func triFromValue(v types.Value) (tri, error) {
	if v.IsNull() {
		return triUnknown, nil
	}
	b, err := v.AsBool()
	if err != nil {
		return triUnknown, fmt.Errorf("boolean operand required: %w", err)
	}
	if b {
		return triTrue, nil
	}
	return triFalse, nil
}

func (t tri) value() types.Value {
	switch t {
	case triTrue:
		return types.NewValue(true)
	case triFalse:
		return types.NewValue(false)
	default:
		return types.NewNullValue()
	}
}

// triAnd: FALSE AND anything = FALSE, even when the other side is NULL.
func triAnd(a, b tri) tri {
	if a == triFalse || b == triFalse {
		return triFalse
	}
	if a == triUnknown || b == triUnknown {
		return triUnknown
	}
	return triTrue
}

// triOr: TRUE OR anything = TRUE, even when the other side is NULL.
func triOr(a, b tri) tri {
	if a == triTrue || b == triTrue {
		return triTrue
	}
	if a == triUnknown || b == triUnknown {
		return triUnknown
	}
	return triFalse
}

func triNot(a tri) tri {
	switch a {
	case triTrue:
		return triFalse
	case triFalse:
		return triTrue
	default:
		return triUnknown
	}
}
