package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token   string
		isInt   bool
		intVal  int64
		fltVal  float64
		wantErr bool
	}{
		{token: "0", isInt: true, intVal: 0, fltVal: 0},
		{token: "42", isInt: true, intVal: 42, fltVal: 42},
		{token: "-17", isInt: true, intVal: -17, fltVal: -17},
		{token: "1.5", isInt: false, intVal: 1, fltVal: 1.5},
		{token: "1.0", isInt: false, intVal: 1, fltVal: 1},
		{token: "-4.5267755879e-17", isInt: false, intVal: 0, fltVal: -4.5267755879e-17},
		{token: "2E3", isInt: false, intVal: 2000, fltVal: 2000},
		{token: "abc", wantErr: true},
		{token: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			n, err := ParseNumber(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnexpectedFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.isInt, n.IsInt())
			assert.Equal(t, tt.intVal, n.Int())
			assert.InDelta(t, tt.fltVal, n.Float64(), 1e-24)
		})
	}
}

func TestNumberString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", NewIntNumber(42).String())
	assert.Equal(t, "1.5", NewFloatNumber(1.5).String())
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	v := ParseValue("8")
	assert.Equal(t, KindInt, v.Kind())
	assert.True(t, v.IsNumeric())
	assert.Equal(t, int64(8), v.Int())

	v = ParseValue("35.2")
	assert.Equal(t, KindFloat, v.Kind())
	assert.InDelta(t, 35.2, v.Float64(), 1e-9)

	v = ParseValue("jdoe")
	assert.Equal(t, KindString, v.Kind())
	assert.False(t, v.IsNumeric())
	assert.Equal(t, "jdoe", v.String())
	assert.Equal(t, int64(0), v.Int())

	v = ParseValue("")
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "", v.String())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "path", KindPath.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
