package plan

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/sql/types"
)

// Rex represents a scalar expression node within a plan node.
type Rex interface {
	// RexKind returns the tag used for plugin dispatch.
	RexKind() string
	// String returns a string representation for debugging.
	String() string
}

// Rex kind tags.
const (
	RexKindInputRef = "InputRef"
	RexKindLiteral  = "Literal"
	RexKindCall     = "Call"
)

// InputRef references a column of the input row context by position.
type InputRef struct {
	Index int
}

func (r *InputRef) RexKind() string { return RexKindInputRef }

func (r *InputRef) String() string {
	return fmt.Sprintf("$%d", r.Index)
}

// Literal is a typed constant.
type Literal struct {
	Value types.Value
	Type  types.DataType
}

func (l *Literal) RexKind() string { return RexKindLiteral }

func (l *Literal) String() string {
	if l.Value.IsNull() {
		return "NULL"
	}
	switch v := l.Value.Data.(type) {
	case string:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "''"))
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", l.Value.Data)
	}
}

// Call applies an operator or function to an ordered argument list.
type Call struct {
	Operator string
	Operands []Rex
}

func (c *Call) RexKind() string { return RexKindCall }

func (c *Call) String() string {
	var argStrs []string
	for _, arg := range c.Operands {
		argStrs = append(argStrs, arg.String())
	}
	return fmt.Sprintf("%s(%s)", c.Operator, strings.Join(argStrs, ", "))
}

// NewInputRef creates a column reference.
func NewInputRef(index int) *InputRef {
	return &InputRef{Index: index}
}

// NewLiteral creates a typed literal.
func NewLiteral(value types.Value, typ types.DataType) *Literal {
	return &Literal{Value: value, Type: typ}
}

// NewCall creates an operator call.
func NewCall(operator string, operands ...Rex) *Call {
	return &Call{Operator: operator, Operands: operands}
}
