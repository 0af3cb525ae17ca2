package status

import "fmt"

// Status is a ticket state written by the transformer.
type Status string

const (
	Pending Status = "PENDING"
	Open    Status = "OPEN"
	Closed  Status = "CLOSED"
)

// DefaultColumn is the status column used when none is configured.
const DefaultColumn = "status"

// Row holds one record's cells in schema order.
type Row []string

// Document is a parsed CSV payload: a schema and its rows, in input order.
// Every row has exactly len(Schema) cells.
type Document struct {
	Schema []string
	Rows   []Row
}

// NewDocument validates the schema and the row widths and returns a
// Document that owns copies of both.
func NewDocument(schema []string, rows []Row) (*Document, error) {
	if len(schema) == 0 || (len(schema) == 1 && schema[0] == "") {
		return nil, fmt.Errorf("%w: empty header", ErrMalformedInput)
	}
	seen := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedInput, name)
		}
		seen[name] = struct{}{}
	}
	d := &Document{Schema: append([]string(nil), schema...), Rows: make([]Row, 0, len(rows))}
	for i, r := range rows {
		if len(r) != len(schema) {
			return nil, &SchemaMismatchError{Line: i + 2, Want: len(schema), Got: len(r)}
		}
		d.Rows = append(d.Rows, append(Row(nil), r...))
	}
	return d, nil
}

// Len reports the number of data rows.
func (d *Document) Len() int { return len(d.Rows) }

// Column returns the index of name in the schema, or -1.
func (d *Document) Column(name string) int {
	for i, c := range d.Schema {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell of row i under column name.
func (d *Document) Value(i int, name string) (string, bool) {
	col := d.Column(name)
	if col < 0 || i < 0 || i >= len(d.Rows) {
		return "", false
	}
	return d.Rows[i][col], true
}

// Clone returns a deep copy; policies work on clones so the input is never
// modified.
func (d *Document) Clone() *Document {
	out := &Document{
		Schema: append([]string(nil), d.Schema...),
		Rows:   make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// Counts tallies the values found in column name.
func (d *Document) Counts(name string) map[string]int {
	col := d.Column(name)
	out := map[string]int{}
	if col < 0 {
		return out
	}
	for _, r := range d.Rows {
		out[r[col]]++
	}
	return out
}
