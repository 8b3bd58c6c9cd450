package easydb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	now := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	testCases := []struct {
		name string
		src  interface{}
		kind Kind
	}{
		{"Null", nil, KindNull},
		{"Int", int64(42), KindInt},
		{"Float", 1.5, KindFloat},
		{"Bool", true, KindBool},
		{"String", "hello", KindString},
		{"Bytes", []byte("raw"), KindBytes},
		{"Time", now, KindTime},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			v := newValue(tc.src)
			require.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	n, err := newValue(int64(42)).Int()
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	f, err := newValue(1.5).Float()
	require.NoError(t, err)
	require.Equal(t, 1.5, f)

	// Integers convert to float, not the other way around.
	f, err = newValue(int64(2)).Float()
	require.NoError(t, err)
	require.Equal(t, 2.0, f)

	_, err = newValue(1.5).Int()
	require.Error(t, err)

	b, err := newValue(true).Bool()
	require.NoError(t, err)
	require.True(t, b)

	raw, err := newValue([]byte("raw")).Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), raw)

	raw, err = newValue("text").Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("text"), raw)

	now := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	ts, err := newValue(now).Time()
	require.NoError(t, err)
	require.True(t, ts.Equal(now))

	require.True(t, newValue(nil).IsNull())
	_, err = newValue(nil).Int()
	require.Error(t, err)
}

func TestValueBytesCopied(t *testing.T) {
	src := []byte("original")
	v := newValue(src)

	// The driver may reuse its buffer after the scan.
	src[0] = 'X'

	raw, err := v.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("original"), raw)
}

func TestValueDecimal(t *testing.T) {
	want := decimal.RequireFromString("1234.5678")

	// Numeric columns arrive as text from the driver.
	d, err := newValue("1234.5678").Decimal()
	require.NoError(t, err)
	require.True(t, want.Equal(d))

	d, err = newValue([]byte("1234.5678")).Decimal()
	require.NoError(t, err)
	require.True(t, want.Equal(d))

	d, err = newValue(int64(7)).Decimal()
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(7).Equal(d))

	_, err = newValue("not a number").Decimal()
	require.Error(t, err)

	_, err = newValue(nil).Decimal()
	require.Error(t, err)
}

func TestValueString(t *testing.T) {
	require.Equal(t, "42", newValue(int64(42)).String())
	require.Equal(t, "1.5", newValue(1.5).String())
	require.Equal(t, "true", newValue(true).String())
	require.Equal(t, "hello", newValue("hello").String())
	require.Equal(t, "raw", newValue([]byte("raw")).String())
	require.Equal(t, "NULL", newValue(nil).String())
}

func TestRow(t *testing.T) {
	row := newRow(
		[]string{"name", "email", "age"},
		[]Value{newValue("Donny B"), newValue("don@don.com"), newValue(int64(36))},
	)

	require.Equal(t, 3, row.Len())
	require.Equal(t, []string{"name", "email", "age"}, row.Columns())

	name, ok := row.Get("name")
	require.True(t, ok)
	require.Equal(t, "Donny B", name.String())

	_, ok = row.Get("missing")
	require.False(t, ok)

	// Mutating the returned slice must not leak into the row.
	columns := row.Columns()
	columns[0] = "mutated"
	require.Equal(t, []string{"name", "email", "age"}, row.Columns())
}
