package easydb

import "sort"

// Entry is an insertion-ordered set of column/value pairs for AddEntry.
// Column order determines placeholder order in the generated INSERT.
type Entry struct {
	columns []string
	values  []interface{}
	index   map[string]int
}

// NewEntry returns an empty entry.
func NewEntry() *Entry {
	return &Entry{index: make(map[string]int)}
}

// Set adds a column value, keeping first-set order. Setting a column twice
// replaces its value in place.
func (e *Entry) Set(column string, value interface{}) *Entry {
	if i, ok := e.index[column]; ok {
		e.values[i] = value
		return e
	}

	e.index[column] = len(e.columns)
	e.columns = append(e.columns, column)
	e.values = append(e.values, value)

	return e
}

// Len reports the number of columns set.
func (e *Entry) Len() int {
	return len(e.columns)
}

// Columns returns the column names in insertion order.
func (e *Entry) Columns() []string {
	out := make([]string, len(e.columns))
	copy(out, e.columns)

	return out
}

// EntryFromMap builds an entry with columns in sorted order, so the
// generated SQL is deterministic regardless of map iteration.
func EntryFromMap(m map[string]interface{}) *Entry {
	columns := make([]string, 0, len(m))
	for c := range m {
		columns = append(columns, c)
	}

	sort.Strings(columns)

	e := NewEntry()
	for _, c := range columns {
		e.Set(c, m[c])
	}

	return e
}
