package dataframe

import (
	"fmt"
	"strings"
)

// Filter returns a frame keeping only the rows for which mask is true.
// The mask must have one entry per row.
func (df *DataFrame) Filter(mask []bool) (*DataFrame, error) {
	if len(mask) != df.Len() {
		return nil, fmt.Errorf("mask has %d entries, frame has %d rows", len(mask), df.Len())
	}
	indices := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return df.Take(indices), nil
}

// Take returns a frame containing the rows at the given indices, in the
// given order. Indices may repeat.
func (df *DataFrame) Take(indices []int) *DataFrame {
	series := make([]Series, len(df.series))
	for i, s := range df.series {
		data := make([]any, len(indices))
		for j, idx := range indices {
			data[j] = s.Data[idx]
		}
		series[i] = Series{Name: s.Name, Type: s.Type, Data: data}
	}
	out, err := New(series...)
	if err != nil {
		// Column names and lengths come from a valid frame.
		panic(fmt.Sprintf("dataframe: Take produced invalid frame: %v", err))
	}
	return out
}

// Concat concatenates the rows of the given frames. Columns are matched
// by position; the first frame supplies the column names and types, so
// all frames must have the same width.
func Concat(frames ...*DataFrame) (*DataFrame, error) {
	if len(frames) == 0 {
		return New()
	}
	first := frames[0]
	total := 0
	for i, f := range frames {
		if f.Width() != first.Width() {
			return nil, fmt.Errorf("frame %d has %d columns, expected %d", i, f.Width(), first.Width())
		}
		total += f.Len()
	}
	series := make([]Series, first.Width())
	for c := range series {
		data := make([]any, 0, total)
		for _, f := range frames {
			data = append(data, f.series[c].Data...)
		}
		series[c] = Series{Name: first.series[c].Name, Type: first.series[c].Type, Data: data}
	}
	return New(series...)
}

// CrossJoin returns the cartesian product of two frames in left-major row
// order: combined row k pairs left row k/other.Len() with right row
// k%other.Len(). Column names must be disjoint.
func (df *DataFrame) CrossJoin(other *DataFrame) (*DataFrame, error) {
	nl, nr := df.Len(), other.Len()
	series := make([]Series, 0, df.Width()+other.Width())
	for _, s := range df.series {
		data := make([]any, 0, nl*nr)
		for i := 0; i < nl; i++ {
			for j := 0; j < nr; j++ {
				data = append(data, s.Data[i])
			}
		}
		series = append(series, Series{Name: s.Name, Type: s.Type, Data: data})
	}
	for _, s := range other.series {
		data := make([]any, 0, nl*nr)
		for i := 0; i < nl; i++ {
			data = append(data, s.Data...)
		}
		series = append(series, Series{Name: s.Name, Type: s.Type, Data: data})
	}
	return New(series...)
}

// DropDuplicates returns a frame keeping the first occurrence of every
// distinct row tuple. Missing values compare equal to each other.
func (df *DataFrame) DropDuplicates() *DataFrame {
	seen := make(map[string]struct{}, df.Len())
	indices := make([]int, 0, df.Len())
	for i := 0; i < df.Len(); i++ {
		key := df.rowKey(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		indices = append(indices, i)
	}
	return df.Take(indices)
}

// rowKey builds a comparison key for a row tuple.
func (df *DataFrame) rowKey(i int) string {
	var b strings.Builder
	for _, s := range df.series {
		WriteCellKey(&b, s.Data[i])
	}
	return b.String()
}

// WriteCellKey appends an unforgeable encoding of one cell to a tuple
// key. The value text is length-prefixed, so cell content containing
// the delimiter cannot imitate another tuple's boundaries. A nil cell
// encodes as a marker no non-nil cell can produce.
func WriteCellKey(b *strings.Builder, cell any) {
	if cell == nil {
		b.WriteString("\x00;")
		return
	}
	text := fmt.Sprint(cell)
	fmt.Fprintf(b, "%T:%d:%s;", cell, len(text), text)
}
