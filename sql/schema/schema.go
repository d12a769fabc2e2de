// Package schema defines the read-only projection of the table and
// function registries handed to the external parser/optimizer. A schema
// is synthesized fresh for every query and never cached, since the
// registries may have changed in between.
package schema

import (
	"github.com/dshills/FrameQL/sql/types"
)

// Schema is the catalog view the external planner validates queries
// against.
type Schema struct {
	Name       string
	Tables     []Table
	Scalars    []Function
	Aggregates []Function
}

// Table describes one registered table.
type Table struct {
	Name    string
	Columns []Column
}

// Column describes one table column.
type Column struct {
	Name string
	Type types.DataType
}

// Function describes one registered scalar or aggregate function.
type Function struct {
	Name       string
	Parameters []Parameter
	ReturnType types.DataType
}

// Parameter describes one function parameter.
type Parameter struct {
	Name string
	Type types.DataType
}

// New creates an empty schema with the given name.
func New(name string) *Schema {
	return &Schema{Name: name}
}

// AddTable appends a table to the schema.
func (s *Schema) AddTable(t Table) {
	s.Tables = append(s.Tables, t)
}

// AddScalar appends a scalar function to the schema.
func (s *Schema) AddScalar(f Function) {
	s.Scalars = append(s.Scalars, f)
}

// AddAggregate appends an aggregate function to the schema.
func (s *Schema) AddAggregate(f Function) {
	s.Aggregates = append(s.Aggregates, f)
}

// Table looks up a table by name.
func (s *Schema) Table(name string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
