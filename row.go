package easydb

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by GetSingle when no row matches.
var ErrNotFound = errors.New("row not found")

// Kind tags the variant held by a Value.
type Kind int

// The kinds cover everything a database driver can produce.
const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindBytes
	KindTime
)

var kindNames = [...]string{"null", "int", "float", "bool", "string", "bytes", "time"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Value is a tagged variant holding one column value.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	raw  []byte
	t    time.Time
}

// newValue converts a raw driver value. Byte slices are copied because the
// driver may reuse the buffer on the next scan.
func newValue(src interface{}) Value {
	switch v := src.(type) {
	case nil:
		return Value{kind: KindNull}
	case int64:
		return Value{kind: KindInt, i: v}
	case float64:
		return Value{kind: KindFloat, f: v}
	case bool:
		return Value{kind: KindBool, b: v}
	case string:
		return Value{kind: KindString, s: v}
	case []byte:
		raw := make([]byte, len(v))
		copy(raw, v)

		return Value{kind: KindBytes, raw: raw}
	case time.Time:
		return Value{kind: KindTime, t: v}
	default:
		return Value{kind: KindString, s: fmt.Sprint(v)}
	}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the column was NULL.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int returns the value as an int64.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, kindError("int", v.kind)
	}

	return v.i, nil
}

// Float returns the value as a float64. Integer values convert.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	}

	return 0, kindError("float", v.kind)
}

// Bool returns the value as a bool.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, kindError("bool", v.kind)
	}

	return v.b, nil
}

// Bytes returns a copy of the value as raw bytes.
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		raw := make([]byte, len(v.raw))
		copy(raw, v.raw)

		return raw, nil
	case KindString:
		return []byte(v.s), nil
	}

	return nil, kindError("bytes", v.kind)
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	if v.kind != KindTime {
		return time.Time{}, kindError("time", v.kind)
	}

	return v.t, nil
}

// Decimal returns the value as an exact decimal. Numeric columns arrive from
// the driver as text, which is the main use for this accessor.
func (v Value) Decimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindInt:
		return decimal.NewFromInt(v.i), nil
	case KindFloat:
		return decimal.NewFromFloat(v.f), nil
	case KindString:
		return decimal.NewFromString(v.s)
	case KindBytes:
		return decimal.NewFromString(string(v.raw))
	}

	return decimal.Decimal{}, kindError("decimal", v.kind)
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindBytes:
		return string(v.raw)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	}

	return "NULL"
}

func kindError(want string, got Kind) error {
	return fmt.Errorf("value holds %s, not %s", got, want)
}

// Row is an immutable mapping from column name to value, in result order.
type Row struct {
	columns []string
	values  []Value
	index   map[string]int
}

func newRow(columns []string, values []Value) Row {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	return Row{columns: columns, values: values, index: index}
}

// Columns returns the column names in result order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)

	return out
}

// Get returns the value for the given column.
func (r Row) Get(column string) (Value, bool) {
	i, ok := r.index[column]
	if !ok {
		return Value{}, false
	}

	return r.values[i], true
}

// Len reports the number of columns.
func (r Row) Len() int {
	return len(r.columns)
}

// Map returns the row as a plain map of display strings, handy for logging
// and test assertions. NULL columns map to empty strings.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.columns))

	for i, c := range r.columns {
		if r.values[i].IsNull() {
			out[c] = ""
			continue
		}

		out[c] = r.values[i].String()
	}

	return out
}
