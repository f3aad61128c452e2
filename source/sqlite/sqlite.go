// Package sqlite exposes a SQLite table as a grid.DataSource. Rows are read
// once by rowid; cell edits are written back with UPDATE statements.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"image/png"
	"iter"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/go-theft-auto/grid"
)

// ErrNoTable is returned by Open when the table does not exist.
var ErrNoTable = errors.New("sqlite: no such table")

// Table is a loaded SQLite table.
type Table struct {
	db      *sql.DB
	name    string
	columns []grid.SourceColumn
	rowids  []int64
	records []grid.Record
}

// OpenDB opens a database file. ":memory:" opens a private in-memory database.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}
	// An in-memory database lives as long as its connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Tables lists the user tables of db in name order.
func Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Open reads the schema and every row of table.
func Open(ctx context.Context, db *sql.DB, table string) (*Table, error) {
	t := &Table{db: db, name: table}
	if err := t.loadColumns(ctx); err != nil {
		return nil, err
	}
	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of loaded rows.
func (t *Table) Len() int { return len(t.records) }

func (t *Table) loadColumns(ctx context.Context) error {
	rows, err := t.db.QueryContext(ctx, "PRAGMA table_info("+quote(t.name)+")")
	if err != nil {
		return fmt.Errorf("table info %s: %w", t.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			decl    string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &decl, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("table info %s: %w", t.name, err)
		}
		t.columns = append(t.columns, grid.SourceColumn{Name: name, Kind: kindOf(decl), Index: cid})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("table info %s: %w", t.name, err)
	}
	if len(t.columns) == 0 {
		return fmt.Errorf("%w: %s", ErrNoTable, t.name)
	}
	return nil
}

// kindOf maps a declared column type to a value kind, falling back to the
// SQLite affinity rules for names the grid does not know.
func kindOf(decl string) grid.ValueKind {
	base, _, _ := strings.Cut(decl, "(")
	if k := grid.ParseKind(base); k != grid.KindUnknown {
		return k
	}
	d := strings.ToUpper(decl)
	switch {
	case strings.Contains(d, "INT"):
		return grid.KindInt
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return grid.KindFloat
	case strings.Contains(d, "BOOL"):
		return grid.KindBool
	case strings.Contains(d, "DATE"), strings.Contains(d, "TIME"):
		return grid.KindDate
	case strings.Contains(d, "BLOB"):
		return grid.KindImage
	default:
		return grid.KindString
	}
}

// Reload rereads every row. A grid showing the table must be reassigned to
// pick the new rows up.
func (t *Table) Reload(ctx context.Context) error {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = quote(c.Name)
	}
	q := fmt.Sprintf("SELECT rowid, %s FROM %s ORDER BY rowid", strings.Join(names, ", "), quote(t.name))
	rows, err := t.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.name, err)
	}
	defer rows.Close()

	t.rowids = t.rowids[:0]
	t.records = t.records[:0]
	dest := make([]any, len(t.columns)+1)
	for rows.Next() {
		var rowid int64
		vals := make([]any, len(t.columns))
		dest[0] = &rowid
		for i := range vals {
			dest[i+1] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("read %s: %w", t.name, err)
		}
		rec := make(grid.Record, len(t.columns))
		for i, c := range t.columns {
			rec[c.Name] = fromSQL(c.Kind, vals[i])
		}
		t.rowids = append(t.rowids, rowid)
		t.records = append(t.records, rec)
	}
	return rows.Err()
}

// fromSQL converts a scanned value to the form the grid parses for kind.
func fromSQL(kind grid.ValueKind, v any) any {
	switch kind {
	case grid.KindBool:
		switch n := v.(type) {
		case int64:
			return n != 0
		case float64:
			return n != 0
		}
	case grid.KindString:
		if b, ok := v.([]byte); ok {
			return string(b)
		}
	}
	return v
}

// toSQL converts a grid cell value for storage.
func toSQL(v any) (any, error) {
	switch t := v.(type) {
	case image.Image:
		var buf bytes.Buffer
		if err := png.Encode(&buf, t); err != nil {
			return nil, fmt.Errorf("encode image: %w", err)
		}
		return buf.Bytes(), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return v, nil
	}
}

// Columns implements grid.DataSource.
func (t *Table) Columns() []grid.SourceColumn {
	return append([]grid.SourceColumn(nil), t.columns...)
}

// Rows implements grid.DataSource.
func (t *Table) Rows() iter.Seq2[int, grid.Record] {
	return func(yield func(int, grid.Record) bool) {
		for i, rec := range t.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// Cell returns a loaded value.
func (t *Table) Cell(row int, column string) (any, error) {
	if row < 0 || row >= len(t.records) {
		return nil, fmt.Errorf("%w: %d", grid.ErrRowOutOfRange, row)
	}
	c, ok := t.column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", grid.ErrUnknownColumn, column)
	}
	return t.records[row][c.Name], nil
}

// SetCell implements grid.DataSource by updating the row in place.
func (t *Table) SetCell(row int, column string, v any) error {
	return t.SetCellContext(context.Background(), row, column, v)
}

// SetCellContext is SetCell with a context for the UPDATE.
func (t *Table) SetCellContext(ctx context.Context, row int, column string, v any) error {
	if row < 0 || row >= len(t.records) {
		return fmt.Errorf("%w: %d", grid.ErrRowOutOfRange, row)
	}
	c, ok := t.column(column)
	if !ok {
		return fmt.Errorf("%w: %s", grid.ErrUnknownColumn, column)
	}
	arg, err := toSQL(v)
	if err != nil {
		return err
	}
	q := fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?", quote(t.name), quote(c.Name))
	if _, err := t.db.ExecContext(ctx, q, arg, t.rowids[row]); err != nil {
		return fmt.Errorf("update %s.%s: %w", t.name, c.Name, err)
	}
	t.records[row][c.Name] = v
	return nil
}

func (t *Table) column(name string) (grid.SourceColumn, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range t.columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return grid.SourceColumn{}, false
}

// quote returns an SQL identifier in double quotes.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
