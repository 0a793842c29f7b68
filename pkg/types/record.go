package types

// NullValue is the reserved cell string representing SQL NULL in a
// RecordSet. It is chosen to never collide with legitimate escaped data.
const NullValue = "__LINEAGE_NULL__"

// Record is a single result row. Values align positionally with the
// ColumnNames of the owning RecordSet.
type Record struct {
	Values []string
}

// RecordSet is the backend-independent result shape returned by every
// query: an ordered list of column names plus an ordered list of rows of
// string-encoded cells.
type RecordSet struct {
	ColumnNames []string
	Records     []Record
}

// IsNull reports whether a cell holds the SQL NULL sentinel.
func IsNull(cell string) bool {
	return cell == NullValue
}

// ColumnIndex returns the position of the named column, or -1 if the
// column is not present. Column order varies across backends, so callers
// locate columns by name rather than position.
func (rs *RecordSet) ColumnIndex(name string) int {
	for i, c := range rs.ColumnNames {
		if c == name {
			return i
		}
	}
	return -1
}
