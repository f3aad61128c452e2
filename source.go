package grid

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrUnknownColumn is returned when a column name does not resolve.
	ErrUnknownColumn = errors.New("grid: unknown column")
	// ErrRowOutOfRange is returned when a row index does not resolve.
	ErrRowOutOfRange = errors.New("grid: row out of range")
	// ErrDuplicateColumn is returned when adding a column whose name is taken.
	ErrDuplicateColumn = errors.New("grid: duplicate column")
)

// SourceColumn describes one typed column of a DataSource.
type SourceColumn struct {
	Name  string
	Kind  ValueKind
	Index int
}

// Record is one source row keyed by column name.
type Record map[string]any

// DataSource is the tabular data a Grid projects. The grid reads it once on
// assignment and afterwards writes cell edits back by source row index and
// column name.
type DataSource interface {
	Columns() []SourceColumn
	Rows() iter.Seq2[int, Record]
	SetCell(row int, column string, v any) error
}

// MemoryTable is an in-memory DataSource.
type MemoryTable struct {
	columns []SourceColumn
	rows    []Record
}

// NewMemoryTable creates a table with the given columns; indexes follow
// argument order.
func NewMemoryTable(columns ...SourceColumn) *MemoryTable {
	t := &MemoryTable{}
	for i, c := range columns {
		c.Index = i
		t.columns = append(t.columns, c)
	}
	return t
}

// AddRow appends a row whose values follow column order. Missing trailing
// values are nil.
func (t *MemoryTable) AddRow(values ...any) int {
	rec := make(Record, len(t.columns))
	for i, c := range t.columns {
		if i < len(values) {
			rec[c.Name] = values[i]
		} else {
			rec[c.Name] = nil
		}
	}
	t.rows = append(t.rows, rec)
	return len(t.rows) - 1
}

// Columns implements DataSource.
func (t *MemoryTable) Columns() []SourceColumn {
	return slices.Clone(t.columns)
}

// Rows implements DataSource.
func (t *MemoryTable) Rows() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Len returns the number of rows.
func (t *MemoryTable) Len() int { return len(t.rows) }

// Cell returns a stored value.
func (t *MemoryTable) Cell(row int, column string) (any, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	name, ok := t.columnName(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return t.rows[row][name], nil
}

// SetCell implements DataSource.
func (t *MemoryTable) SetCell(row int, column string, v any) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	name, ok := t.columnName(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	t.rows[row][name] = v
	return nil
}

func (t *MemoryTable) columnName(name string) (string, bool) {
	for _, c := range t.columns {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}

// recordValue looks a column up in rec, falling back to a case-insensitive match.
func recordValue(rec Record, column string) any {
	if v, ok := rec[column]; ok {
		return v
	}
	for k, v := range rec {
		if strings.EqualFold(k, column) {
			return v
		}
	}
	return nil
}
