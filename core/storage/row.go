package storage

// Row is one result row with column order preserved.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Map returns the row keyed by column name.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

// Result reports the effect of a statement run with DB.Run.
type Result struct {
	RowsAffected int64
	// LastInsertID is zero for drivers that do not report it.
	LastInsertID int64
}
