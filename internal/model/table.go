package model

const (
	ColumnTimestamp = "Timestamp"
	ColumnMessage   = "Message"
	ColumnSource    = "Source"
)

// Columns is the fixed column layout of every result table
var Columns = []string{ColumnTimestamp, ColumnMessage, ColumnSource}

// Table is the ordered result of a merge. An empty table still carries the
// three column names.
type Table struct {
	Columns []string
	Rows    []LogRecord
}

// NewTable creates a table over rows
func NewTable(rows []LogRecord) *Table {
	if rows == nil {
		rows = make([]LogRecord, 0)
	}
	columns := make([]string, len(Columns))
	copy(columns, Columns)
	return &Table{
		Columns: columns,
		Rows:    rows,
	}
}

// EmptyTable returns a table with the column headers and zero rows
func EmptyTable() *Table {
	return NewTable(nil)
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Head returns a new table holding at most n rows. A non-positive n returns
// every row. The receiver is not modified.
func (t *Table) Head(n int) *Table {
	if t == nil {
		return EmptyTable()
	}
	if n <= 0 || n >= len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([]LogRecord, n)
	copy(rows, t.Rows[:n])
	return NewTable(rows)
}
