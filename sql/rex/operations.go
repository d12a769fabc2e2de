package rex

import (
	"fmt"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// operation is a built-in operator implementation over converted
// operands. n is the row count of the input context, needed when every
// operand is a broadcast scalar.
type operation func(args []Datum, n int) (Datum, error)

// operations maps case-folded operator names to implementations. The
// table is consulted before the user function registry, so built-ins
// cannot be shadowed.
var operations = map[string]operation{
	"and": opAnd,
	"or":  opOr,
	"not": opNot,

	"=":  compareOp("=", func(c int) bool { return c == 0 }),
	"<>": compareOp("<>", func(c int) bool { return c != 0 }),
	"!=": compareOp("!=", func(c int) bool { return c != 0 }),
	"<":  compareOp("<", func(c int) bool { return c < 0 }),
	"<=": compareOp("<=", func(c int) bool { return c <= 0 }),
	">":  compareOp(">", func(c int) bool { return c > 0 }),
	">=": compareOp(">=", func(c int) bool { return c >= 0 }),

	"+": arithOp("+"),
	"-": opMinus,
	"*": arithOp("*"),
	"/": arithOp("/"),
	"%": arithOp("%"),

	"||": opConcat,

	"is null":     opIsNull,
	"is not null": opIsNotNull,
}

// elementwise applies fn row by row across the operands, broadcasting
// scalars. When every operand is a scalar the result stays scalar.
func elementwise(args []Datum, n int, typ dataframe.ColumnType, fn func(vals []types.Value) (types.Value, error)) (Datum, error) {
	allScalar := true
	for _, a := range args {
		if !a.IsScalar() {
			allScalar = false
			break
		}
	}
	vals := make([]types.Value, len(args))
	if allScalar {
		for i, a := range args {
			vals[i] = a.At(0)
		}
		v, err := fn(vals)
		if err != nil {
			return Datum{}, err
		}
		return Scalar(v, typ), nil
	}
	data := make([]any, n)
	for row := 0; row < n; row++ {
		for i, a := range args {
			vals[i] = a.At(row)
		}
		v, err := fn(vals)
		if err != nil {
			return Datum{}, err
		}
		data[row] = types.NativeFromValue(v)
	}
	return Column(dataframe.NewSeries("", typ, data)), nil
}

func wantArgs(op string, args []Datum, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d operands, got %d", op, n, len(args))
	}
	return nil
}

// opAnd folds two or more boolean operands under three-valued logic.
func opAnd(args []Datum, n int) (Datum, error) {
	if len(args) < 2 {
		return Datum{}, fmt.Errorf("AND expects at least 2 operands, got %d", len(args))
	}
	return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
		acc := triTrue
		for _, v := range vals {
			t, err := triFromValue(v)
			if err != nil {
				return types.Value{}, err
			}
			acc = triAnd(acc, t)
		}
		return acc.value(), nil
	})
}

// opOr folds two or more boolean operands under three-valued logic.
func opOr(args []Datum, n int) (Datum, error) {
	if len(args) < 2 {
		return Datum{}, fmt.Errorf("OR expects at least 2 operands, got %d", len(args))
	}
	return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
		acc := triFalse
		for _, v := range vals {
			t, err := triFromValue(v)
			if err != nil {
				return types.Value{}, err
			}
			acc = triOr(acc, t)
		}
		return acc.value(), nil
	})
}

func opNot(args []Datum, n int) (Datum, error) {
	if err := wantArgs("NOT", args, 1); err != nil {
		return Datum{}, err
	}
	return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
		t, err := triFromValue(vals[0])
		if err != nil {
			return types.Value{}, err
		}
		return triNot(t).value(), nil
	})
}

// compareOp builds a NULL-propagating comparison: a NULL operand yields
// Unknown (NULL), never false.
func compareOp(name string, match func(c int) bool) operation {
	return func(args []Datum, n int) (Datum, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return Datum{}, err
		}
		return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
			if vals[0].IsNull() || vals[1].IsNull() {
				return types.NewNullValue(), nil
			}
			c, err := types.Compare(vals[0], vals[1])
			if err != nil {
				return types.Value{}, err
			}
			return types.NewValue(match(c)), nil
		})
	}
}

// numericResultType picks the arithmetic result type: float64 wins over
// int64.
func numericResultType(args []Datum) dataframe.ColumnType {
	for _, a := range args {
		if a.Type() == dataframe.Float64 {
			return dataframe.Float64
		}
	}
	return dataframe.Int64
}

// arithOp builds a NULL-propagating binary arithmetic operation with
// int64/float64 promotion. Integer division truncates; division and
// modulo by zero fail.
func arithOp(name string) operation {
	return func(args []Datum, n int) (Datum, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return Datum{}, err
		}
		typ := numericResultType(args)
		return elementwise(args, n, typ, func(vals []types.Value) (types.Value, error) {
			if vals[0].IsNull() || vals[1].IsNull() {
				return types.NewNullValue(), nil
			}
			if typ == dataframe.Float64 {
				a, err := vals[0].AsDouble()
				if err != nil {
					return types.Value{}, err
				}
				b, err := vals[1].AsDouble()
				if err != nil {
					return types.Value{}, err
				}
				return applyFloat(name, a, b)
			}
			a, err := vals[0].AsInt()
			if err != nil {
				return types.Value{}, err
			}
			b, err := vals[1].AsInt()
			if err != nil {
				return types.Value{}, err
			}
			return applyInt(name, a, b)
		})
	}
}

func applyFloat(name string, a, b float64) (types.Value, error) {
	switch name {
	case "+":
		return types.NewValue(a + b), nil
	case "-":
		return types.NewValue(a - b), nil
	case "*":
		return types.NewValue(a * b), nil
	case "/":
		if b == 0 {
			return types.Value{}, sqlerr.New(sqlerr.DivisionByZero, "division by zero")
		}
		return types.NewValue(a / b), nil
	case "%":
		return types.Value{}, fmt.Errorf("%% requires integer operands")
	default:
		return types.Value{}, sqlerr.UnsupportedOperationError(name)
	}
}

func applyInt(name string, a, b int64) (types.Value, error) {
	switch name {
	case "+":
		return types.NewValue(a + b), nil
	case "-":
		return types.NewValue(a - b), nil
	case "*":
		return types.NewValue(a * b), nil
	case "/":
		if b == 0 {
			return types.Value{}, sqlerr.New(sqlerr.DivisionByZero, "division by zero")
		}
		return types.NewValue(a / b), nil
	case "%":
		if b == 0 {
			return types.Value{}, sqlerr.New(sqlerr.DivisionByZero, "division by zero")
		}
		return types.NewValue(a % b), nil
	default:
		return types.Value{}, sqlerr.UnsupportedOperationError(name)
	}
}

// opMinus is binary subtraction or unary negation depending on arity.
func opMinus(args []Datum, n int) (Datum, error) {
	if len(args) == 2 {
		return arithOp("-")(args, n)
	}
	if err := wantArgs("-", args, 1); err != nil {
		return Datum{}, err
	}
	typ := numericResultType(args)
	return elementwise(args, n, typ, func(vals []types.Value) (types.Value, error) {
		if vals[0].IsNull() {
			return types.NewNullValue(), nil
		}
		if typ == dataframe.Float64 {
			f, err := vals[0].AsDouble()
			if err != nil {
				return types.Value{}, err
			}
			return types.NewValue(-f), nil
		}
		i, err := vals[0].AsInt()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewValue(-i), nil
	})
}

// opConcat is NULL-propagating string concatenation.
func opConcat(args []Datum, n int) (Datum, error) {
	if err := wantArgs("||", args, 2); err != nil {
		return Datum{}, err
	}
	return elementwise(args, n, dataframe.String, func(vals []types.Value) (types.Value, error) {
		if vals[0].IsNull() || vals[1].IsNull() {
			return types.NewNullValue(), nil
		}
		a, err := vals[0].AsString()
		if err != nil {
			return types.Value{}, err
		}
		b, err := vals[1].AsString()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewValue(a + b), nil
	})
}

// opIsNull never yields Unknown: the result is two-valued by definition.
func opIsNull(args []Datum, n int) (Datum, error) {
	if err := wantArgs("IS NULL", args, 1); err != nil {
		return Datum{}, err
	}
	return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
		return types.NewValue(vals[0].IsNull()), nil
	})
}

func opIsNotNull(args []Datum, n int) (Datum, error) {
	if err := wantArgs("IS NOT NULL", args, 1); err != nil {
		return Datum{}, err
	}
	return elementwise(args, n, dataframe.Bool, func(vals []types.Value) (types.Value, error) {
		return types.NewValue(!vals[0].IsNull()), nil
	})
}
