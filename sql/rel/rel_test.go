package rel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/rex"
	"github.com/dshills/FrameQL/sql/types"
	"github.com/dshills/FrameQL/sqlerr"
)

// stubCatalog is a minimal table and function registry for tests.
type stubCatalog struct {
	tables map[string]container.DataContainer
	aggs   map[string]struct {
		fn  AggregateFunc
		ret dataframe.ColumnType
	}
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		tables: make(map[string]container.DataContainer),
		aggs: make(map[string]struct {
			fn  AggregateFunc
			ret dataframe.ColumnType
		}),
	}
}

func (c *stubCatalog) addTable(t *testing.T, name string, series ...dataframe.Series) {
	t.Helper()
	df, err := dataframe.New(series...)
	require.NoError(t, err)
	c.tables[name] = container.New(df, container.NewColumnContainer(df.Columns()))
}

func (c *stubCatalog) Table(name string) (container.DataContainer, bool) {
	dc, ok := c.tables[name]
	return dc, ok
}

func (c *stubCatalog) ScalarFunction(string) (rex.ScalarFunc, dataframe.ColumnType, bool) {
	return nil, dataframe.Any, false
}

func (c *stubCatalog) AggregateFunction(name string) (AggregateFunc, dataframe.ColumnType, bool) {
	e, ok := c.aggs[name]
	return e.fn, e.ret, ok
}

// numbersCatalog registers table t(x BIGINT, y BIGINT) = {(1,10),(2,20),(3,NULL)}.
func numbersCatalog(t *testing.T) *stubCatalog {
	cat := newStubCatalog()
	cat.addTable(t, "t",
		dataframe.NewSeries("x", dataframe.Int64, []any{int64(1), int64(2), int64(3)}),
		dataframe.NewSeries("y", dataframe.Int64, []any{int64(10), int64(20), nil}),
	)
	return cat
}

func materialize(t *testing.T, node plan.Node, cat Catalog) *dataframe.DataFrame {
	t.Helper()
	dc, err := NewConverter(rex.NewConverter()).Convert(node, cat)
	require.NoError(t, err)
	df, err := dc.Assign()
	require.NoError(t, err)
	return df
}

func column(t *testing.T, df *dataframe.DataFrame, name string) []any {
	t.Helper()
	s, err := df.Column(name)
	require.NoError(t, err)
	return s.Data
}

func intLit(v int64) plan.Rex {
	return plan.NewLiteral(types.NewValue(v), types.BigInt)
}

func TestTableScan(t *testing.T) {
	cat := numbersCatalog(t)

	t.Run("round trip", func(t *testing.T) {
		df := materialize(t, plan.NewTableScan("t"), cat)
		assert.Equal(t, []string{"x", "y"}, df.Columns())
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, column(t, df, "x"))
		assert.Equal(t, []any{int64(10), int64(20), nil}, column(t, df, "y"))
	})

	t.Run("case folded", func(t *testing.T) {
		df := materialize(t, plan.NewTableScan("T"), cat)
		assert.Equal(t, 3, df.Len())
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := NewConverter(rex.NewConverter()).Convert(plan.NewTableScan("nope"), cat)
		require.Error(t, err)
		assert.True(t, sqlerr.IsError(err, sqlerr.UndefinedTable))
		assert.Equal(t, "nope", sqlerr.GetError(err).Table)
	})
}

func TestFilter(t *testing.T) {
	cat := numbersCatalog(t)

	t.Run("keeps matching rows", func(t *testing.T) {
		node := plan.NewFilter(plan.NewTableScan("t"),
			plan.NewCall(">", plan.NewInputRef(0), intLit(1)))
		df := materialize(t, node, cat)
		assert.Equal(t, []any{int64(2), int64(3)}, column(t, df, "x"))
	})

	t.Run("unknown predicate excludes the row", func(t *testing.T) {
		// y > 15 is Unknown for the NULL row, which must not survive.
		node := plan.NewFilter(plan.NewTableScan("t"),
			plan.NewCall(">", plan.NewInputRef(1), intLit(15)))
		df := materialize(t, node, cat)
		assert.Equal(t, []any{int64(2)}, column(t, df, "x"))
	})

	t.Run("schema unchanged", func(t *testing.T) {
		node := plan.NewFilter(plan.NewTableScan("t"),
			plan.NewCall("=", intLit(0), intLit(1)))
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"x", "y"}, df.Columns())
		assert.Equal(t, 0, df.Len())
	})
}

func TestProject(t *testing.T) {
	cat := numbersCatalog(t)

	t.Run("named outputs", func(t *testing.T) {
		node := plan.NewProject(plan.NewTableScan("t"),
			[]plan.Rex{plan.NewInputRef(1), plan.NewCall("+", plan.NewInputRef(0), intLit(100))},
			[]string{"y", "shifted"})
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"y", "shifted"}, df.Columns())
		assert.Equal(t, []any{int64(101), int64(102), int64(103)}, column(t, df, "shifted"))
	})

	t.Run("synthetic names for unnamed outputs", func(t *testing.T) {
		node := plan.NewProject(plan.NewTableScan("t"),
			[]plan.Rex{plan.NewInputRef(0), intLit(7)},
			nil)
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"EXPR$0", "EXPR$1"}, df.Columns())
		assert.Equal(t, []any{int64(7), int64(7), int64(7)}, column(t, df, "EXPR$1"))
	})

	t.Run("non-projected columns dropped", func(t *testing.T) {
		node := plan.NewProject(plan.NewTableScan("t"),
			[]plan.Rex{plan.NewInputRef(1)}, []string{"y"})
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"y"}, df.Columns())
	})
}

func TestSyntheticNames(t *testing.T) {
	assert.Equal(t, "EXPR$3", SyntheticName(3))
	assert.True(t, IsSyntheticName("EXPR$0"))
	assert.False(t, IsSyntheticName("total"))
}

func joinCatalog(t *testing.T) *stubCatalog {
	cat := newStubCatalog()
	cat.addTable(t, "l",
		dataframe.NewSeries("id", dataframe.Int64, []any{int64(1), int64(2), int64(3)}),
		dataframe.NewSeries("v", dataframe.String, []any{"a", "b", "c"}),
	)
	cat.addTable(t, "r",
		dataframe.NewSeries("id", dataframe.Int64, []any{int64(2), int64(3), int64(4)}),
		dataframe.NewSeries("w", dataframe.String, []any{"B", "C", "D"}),
	)
	return cat
}

func TestJoin(t *testing.T) {
	cat := joinCatalog(t)
	// Condition references the combined schema: left columns then right.
	onID := plan.NewCall("=", plan.NewInputRef(0), plan.NewInputRef(2))

	t.Run("inner", func(t *testing.T) {
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("r"), plan.InnerJoin, onID), cat)
		// The colliding right-side name gets a numeric suffix.
		assert.Equal(t, []string{"id", "v", "id0", "w"}, df.Columns())
		assert.Equal(t, []any{int64(2), int64(3)}, column(t, df, "id"))
		assert.Equal(t, []any{"B", "C"}, column(t, df, "w"))
	})

	t.Run("left outer", func(t *testing.T) {
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("r"), plan.LeftJoin, onID), cat)
		require.Equal(t, 3, df.Len())
		assert.Equal(t, []any{int64(2), int64(3), int64(1)}, column(t, df, "id"))
		assert.Equal(t, []any{"B", "C", nil}, column(t, df, "w"))
	})

	t.Run("right outer", func(t *testing.T) {
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("r"), plan.RightJoin, onID), cat)
		require.Equal(t, 3, df.Len())
		assert.Equal(t, []any{"b", "c", nil}, column(t, df, "v"))
		assert.Equal(t, []any{int64(2), int64(3), int64(4)}, column(t, df, "id0"))
	})

	t.Run("full outer", func(t *testing.T) {
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("r"), plan.FullJoin, onID), cat)
		require.Equal(t, 4, df.Len())
		assert.Equal(t, []any{int64(2), int64(3), int64(1), nil}, column(t, df, "id"))
		assert.Equal(t, []any{"B", "C", nil, "D"}, column(t, df, "w"))
	})

	t.Run("null keys never match", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "l", dataframe.NewSeries("id", dataframe.Int64, []any{nil}))
		cat.addTable(t, "r", dataframe.NewSeries("rid", dataframe.Int64, []any{nil}))
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("r"), plan.InnerJoin,
			plan.NewCall("=", plan.NewInputRef(0), plan.NewInputRef(1))), cat)
		assert.Equal(t, 0, df.Len())
	})

	t.Run("self join keeps sides independent", func(t *testing.T) {
		df := materialize(t, plan.NewJoin(plan.NewTableScan("l"), plan.NewTableScan("l"), plan.InnerJoin, onID), cat)
		assert.Equal(t, []string{"id", "v", "id0", "v0"}, df.Columns())
		assert.Equal(t, 3, df.Len())
	})
}

func TestAggregate(t *testing.T) {
	cat := newStubCatalog()
	cat.addTable(t, "t",
		dataframe.NewSeries("x", dataframe.Int64, []any{int64(1), int64(1), int64(2)}),
		dataframe.NewSeries("y", dataframe.Int64, []any{int64(1), int64(2), int64(3)}),
	)

	t.Run("grouped sum", func(t *testing.T) {
		node := plan.NewAggregate(plan.NewTableScan("t"), []int{0},
			[]plan.AggregateCall{{Function: "sum", Arg: 1, Alias: "total"}})
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"x", "total"}, df.Columns())
		assert.Equal(t, []any{int64(1), int64(2)}, column(t, df, "x"))
		assert.Equal(t, []any{int64(3), int64(3)}, column(t, df, "total"))
	})

	t.Run("count star includes missing values", func(t *testing.T) {
		cat := numbersCatalog(t)
		node := plan.NewAggregate(plan.NewTableScan("t"), nil,
			[]plan.AggregateCall{{Function: "count", Arg: -1}})
		df := materialize(t, node, cat)
		require.Equal(t, 1, df.Len())
		assert.Equal(t, []any{int64(3)}, column(t, df, "EXPR$0"))
	})

	t.Run("count column skips missing values", func(t *testing.T) {
		cat := numbersCatalog(t)
		node := plan.NewAggregate(plan.NewTableScan("t"), nil,
			[]plan.AggregateCall{{Function: "count", Arg: 1, Alias: "n"}})
		df := materialize(t, node, cat)
		assert.Equal(t, []any{int64(2)}, column(t, df, "n"))
	})

	t.Run("sum skips missing values", func(t *testing.T) {
		cat := numbersCatalog(t)
		node := plan.NewAggregate(plan.NewTableScan("t"), nil,
			[]plan.AggregateCall{{Function: "sum", Arg: 1, Alias: "s"}})
		df := materialize(t, node, cat)
		assert.Equal(t, []any{int64(30)}, column(t, df, "s"))
	})

	t.Run("avg min max", func(t *testing.T) {
		node := plan.NewAggregate(plan.NewTableScan("t"), nil,
			[]plan.AggregateCall{
				{Function: "avg", Arg: 1, Alias: "a"},
				{Function: "min", Arg: 1, Alias: "lo"},
				{Function: "max", Arg: 1, Alias: "hi"},
			})
		df := materialize(t, node, cat)
		assert.Equal(t, []any{2.0}, column(t, df, "a"))
		assert.Equal(t, []any{int64(1)}, column(t, df, "lo"))
		assert.Equal(t, []any{int64(3)}, column(t, df, "hi"))
	})

	t.Run("custom aggregate", func(t *testing.T) {
		cat.aggs["fagg"] = struct {
			fn  AggregateFunc
			ret dataframe.ColumnType
		}{
			fn: func(vals []types.Value) (types.Value, error) {
				var sum int64
				for _, v := range vals {
					if v.IsNull() {
						continue
					}
					i, err := v.AsInt()
					if err != nil {
						return types.Value{}, err
					}
					sum += i
				}
				return types.NewValue(sum), nil
			},
			ret: dataframe.Int64,
		}
		node := plan.NewAggregate(plan.NewTableScan("t"), []int{0},
			[]plan.AggregateCall{{Function: "FAGG", Arg: 1, Alias: "total"}})
		df := materialize(t, node, cat)
		assert.Equal(t, []any{int64(1), int64(2)}, column(t, df, "x"))
		assert.Equal(t, []any{int64(3), int64(3)}, column(t, df, "total"))
	})

	t.Run("delimiter-like key text keeps groups distinct", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "g",
			dataframe.NewSeries("a", dataframe.String, []any{"p;string:q", "p"}),
			dataframe.NewSeries("b", dataframe.String, []any{"r", "q;string:r"}),
			dataframe.NewSeries("v", dataframe.Int64, []any{int64(1), int64(1)}),
		)
		node := plan.NewAggregate(plan.NewTableScan("g"), []int{0, 1},
			[]plan.AggregateCall{{Function: "count", Arg: 2, Alias: "n"}})
		df := materialize(t, node, cat)
		require.Equal(t, 2, df.Len())
		assert.Equal(t, []any{int64(1), int64(1)}, column(t, df, "n"))
	})

	t.Run("null group keys group together", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "g",
			dataframe.NewSeries("k", dataframe.Int64, []any{nil, int64(1), nil}),
			dataframe.NewSeries("v", dataframe.Int64, []any{int64(5), int64(6), int64(7)}),
		)
		node := plan.NewAggregate(plan.NewTableScan("g"), []int{0},
			[]plan.AggregateCall{{Function: "sum", Arg: 1, Alias: "s"}})
		df := materialize(t, node, cat)
		assert.Equal(t, []any{nil, int64(1)}, column(t, df, "k"))
		assert.Equal(t, []any{int64(12), int64(6)}, column(t, df, "s"))
	})

	t.Run("unknown aggregate", func(t *testing.T) {
		node := plan.NewAggregate(plan.NewTableScan("t"), nil,
			[]plan.AggregateCall{{Function: "median", Arg: 1}})
		_, err := NewConverter(rex.NewConverter()).Convert(node, cat)
		require.Error(t, err)
		assert.True(t, sqlerr.IsError(err, sqlerr.UndefinedFunction))
		assert.Equal(t, "median", sqlerr.GetError(err).Function)
	})
}

func TestSort(t *testing.T) {
	cat := numbersCatalog(t)
	keyY := func(order plan.SortOrder, nulls plan.NullOrdering) []plan.SortKey {
		return []plan.SortKey{{Expr: plan.NewInputRef(1), Order: order, Nulls: nulls}}
	}

	t.Run("ascending nulls last by default", func(t *testing.T) {
		df := materialize(t, plan.NewSort(plan.NewTableScan("t"), keyY(plan.Ascending, plan.NullsDefault)), cat)
		assert.Equal(t, []any{int64(10), int64(20), nil}, column(t, df, "y"))
	})

	t.Run("descending keeps nulls last", func(t *testing.T) {
		df := materialize(t, plan.NewSort(plan.NewTableScan("t"), keyY(plan.Descending, plan.NullsDefault)), cat)
		assert.Equal(t, []any{int64(20), int64(10), nil}, column(t, df, "y"))
	})

	t.Run("explicit nulls first", func(t *testing.T) {
		df := materialize(t, plan.NewSort(plan.NewTableScan("t"), keyY(plan.Ascending, plan.NullsFirst)), cat)
		assert.Equal(t, []any{nil, int64(10), int64(20)}, column(t, df, "y"))
	})

	t.Run("converter default override", func(t *testing.T) {
		conv := NewConverter(rex.NewConverter(), WithNullOrdering(plan.NullsFirst))
		dc, err := conv.Convert(plan.NewSort(plan.NewTableScan("t"), keyY(plan.Ascending, plan.NullsDefault)), cat)
		require.NoError(t, err)
		df, err := dc.Assign()
		require.NoError(t, err)
		assert.Equal(t, []any{nil, int64(10), int64(20)}, column(t, df, "y"))
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "s",
			dataframe.NewSeries("k", dataframe.Int64, []any{int64(1), int64(1), int64(0)}),
			dataframe.NewSeries("tag", dataframe.String, []any{"first", "second", "third"}),
		)
		df := materialize(t, plan.NewSort(plan.NewTableScan("s"),
			[]plan.SortKey{{Expr: plan.NewInputRef(0), Order: plan.Ascending}}), cat)
		assert.Equal(t, []any{"third", "first", "second"}, column(t, df, "tag"))
	})

	t.Run("mixed-type key cells rejected", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "m",
			dataframe.NewSeries("k", dataframe.Int64, []any{int64(1), "oops"}))
		_, err := NewConverter(rex.NewConverter()).Convert(
			plan.NewSort(plan.NewTableScan("m"),
				[]plan.SortKey{{Expr: plan.NewInputRef(0), Order: plan.Ascending}}), cat)
		require.Error(t, err)
		assert.True(t, sqlerr.IsError(err, sqlerr.DatatypeMismatch))
	})

	t.Run("secondary key breaks ties", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "s",
			dataframe.NewSeries("k", dataframe.Int64, []any{int64(1), int64(1), int64(0)}),
			dataframe.NewSeries("v", dataframe.Int64, []any{int64(9), int64(3), int64(5)}),
		)
		df := materialize(t, plan.NewSort(plan.NewTableScan("s"),
			[]plan.SortKey{
				{Expr: plan.NewInputRef(0), Order: plan.Ascending},
				{Expr: plan.NewInputRef(1), Order: plan.Descending},
			}), cat)
		assert.Equal(t, []any{int64(5), int64(9), int64(3)}, column(t, df, "v"))
	})
}

func TestUnion(t *testing.T) {
	cat := newStubCatalog()
	cat.addTable(t, "a",
		dataframe.NewSeries("x", dataframe.Int64, []any{int64(1), int64(2), int64(2)}))
	cat.addTable(t, "b",
		dataframe.NewSeries("z", dataframe.Int64, []any{int64(2), int64(3)}))

	t.Run("all preserves duplicates", func(t *testing.T) {
		df := materialize(t, plan.NewUnion(true, plan.NewTableScan("a"), plan.NewTableScan("b")), cat)
		// First child supplies the output names.
		assert.Equal(t, []string{"x"}, df.Columns())
		assert.Equal(t, []any{int64(1), int64(2), int64(2), int64(2), int64(3)}, column(t, df, "x"))
	})

	t.Run("distinct dedups across children", func(t *testing.T) {
		df := materialize(t, plan.NewUnion(false, plan.NewTableScan("a"), plan.NewTableScan("b")), cat)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, column(t, df, "x"))
	})

	t.Run("numeric columns widen to float", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "i", dataframe.NewSeries("v", dataframe.Int64, []any{int64(1)}))
		cat.addTable(t, "f", dataframe.NewSeries("v", dataframe.Float64, []any{2.5}))
		df := materialize(t, plan.NewUnion(true, plan.NewTableScan("i"), plan.NewTableScan("f")), cat)
		assert.Equal(t, []any{1.0, 2.5}, column(t, df, "v"))
	})

	t.Run("null rows compare equal under distinct", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "n1", dataframe.NewSeries("v", dataframe.Int64, []any{nil, int64(1)}))
		cat.addTable(t, "n2", dataframe.NewSeries("v", dataframe.Int64, []any{nil}))
		df := materialize(t, plan.NewUnion(false, plan.NewTableScan("n1"), plan.NewTableScan("n2")), cat)
		assert.Equal(t, []any{nil, int64(1)}, column(t, df, "v"))
	})

	t.Run("delimiter-like cell text is not a duplicate", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "n1",
			dataframe.NewSeries("a", dataframe.String, []any{"p;string:q"}),
			dataframe.NewSeries("b", dataframe.String, []any{"r"}))
		cat.addTable(t, "n2",
			dataframe.NewSeries("a", dataframe.String, []any{"p"}),
			dataframe.NewSeries("b", dataframe.String, []any{"q;string:r"}))
		df := materialize(t, plan.NewUnion(false, plan.NewTableScan("n1"), plan.NewTableScan("n2")), cat)
		assert.Equal(t, 2, df.Len())
	})

	t.Run("width mismatch", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "one", dataframe.NewSeries("v", dataframe.Int64, []any{int64(1)}))
		cat.addTable(t, "two",
			dataframe.NewSeries("v", dataframe.Int64, []any{int64(1)}),
			dataframe.NewSeries("w", dataframe.Int64, []any{int64(1)}))
		_, err := NewConverter(rex.NewConverter()).Convert(
			plan.NewUnion(true, plan.NewTableScan("one"), plan.NewTableScan("two")), cat)
		assert.True(t, sqlerr.IsError(err, sqlerr.DatatypeMismatch))
	})

	t.Run("incompatible types", func(t *testing.T) {
		cat := newStubCatalog()
		cat.addTable(t, "one", dataframe.NewSeries("v", dataframe.Int64, []any{int64(1)}))
		cat.addTable(t, "two", dataframe.NewSeries("v", dataframe.String, []any{"x"}))
		_, err := NewConverter(rex.NewConverter()).Convert(
			plan.NewUnion(true, plan.NewTableScan("one"), plan.NewTableScan("two")), cat)
		assert.True(t, sqlerr.IsError(err, sqlerr.DatatypeMismatch))
	})
}

func TestValues(t *testing.T) {
	cat := newStubCatalog()

	t.Run("rows materialize", func(t *testing.T) {
		node := plan.NewValues(
			[]string{"id", "label"},
			[]types.DataType{types.BigInt, types.Text},
			[][]types.Value{
				{types.NewValue(int64(1)), types.NewValue("a")},
				{types.NewValue(int64(2)), types.NewNullValue()},
			})
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"id", "label"}, df.Columns())
		assert.Equal(t, []any{int64(1), int64(2)}, column(t, df, "id"))
		assert.Equal(t, []any{"a", nil}, column(t, df, "label"))
	})

	t.Run("synthetic names when unnamed", func(t *testing.T) {
		node := plan.NewValues(nil, []types.DataType{types.BigInt},
			[][]types.Value{{types.NewValue(int64(1))}})
		df := materialize(t, node, cat)
		assert.Equal(t, []string{"EXPR$0"}, df.Columns())
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		node := plan.NewValues(nil, []types.DataType{types.BigInt, types.BigInt},
			[][]types.Value{{types.NewValue(int64(1))}})
		_, err := NewConverter(rex.NewConverter()).Convert(node, cat)
		assert.Error(t, err)
	})
}

type bogusNode struct{}

func (bogusNode) Kind() string          { return "Bogus" }
func (bogusNode) Children() []plan.Node { return nil }
func (bogusNode) String() string        { return "Bogus" }

func TestUnknownNodeKind(t *testing.T) {
	_, err := NewConverter(rex.NewConverter()).Convert(bogusNode{}, newStubCatalog())
	require.Error(t, err)
	assert.True(t, sqlerr.IsError(err, sqlerr.UndefinedFunction))
}

func TestRegisterReplaceContract(t *testing.T) {
	c := NewConverter(rex.NewConverter())
	err := c.Register(FilterPlugin{}, false)
	assert.Error(t, err)
	assert.NoError(t, c.Register(FilterPlugin{}, true))
}

func TestErrorNamesNodeKind(t *testing.T) {
	_, err := NewConverter(rex.NewConverter()).Convert(plan.NewTableScan("nope"), newStubCatalog())
	require.Error(t, err)
	assert.Equal(t, plan.KindTableScan, sqlerr.GetError(err).Node)
}
