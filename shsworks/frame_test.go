package shsworks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame_NoArgs(t *testing.T) {
	t.Parallel()

	frame := buildFrame(0, 0, nil)
	assert.Equal(t, "Start|000|00|\r\n", frame)

	// Zero-argument frames always carry the empty argument field slot.
	assert.True(t, strings.HasSuffix(frame, "|\r\n"))
}

func TestBuildFrame_WithArgs(t *testing.T) {
	t.Parallel()

	frame := buildFrame(1, 16, []string{"42"})
	assert.Equal(t, "Start|001|16|42\r\n", frame)

	frame = buildFrame(435, 31, []string{"c:\\temp\\collimator.bix", "REF"})
	assert.Equal(t, "Start|435|31|c:\\temp\\collimator.bix|REF\r\n", frame)
}

func TestBuildFrame_ZeroPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Start|007|05|test\r\n", buildFrame(7, 5, []string{"test"}))
	assert.Equal(t, "Start|099|45|\r\n", buildFrame(99, 45, nil))

	// Job IDs beyond three digits widen the field instead of wrapping.
	assert.Equal(t, "Start|1000|08|\r\n", buildFrame(1000, 8, nil))
}

func TestFormatArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"string", "setup", "setup"},
		{"int", 42, "42"},
		{"int64", int64(-3), "-3"},
		{"uint16", uint16(8), "8"},
		{"float", 1.5, "1.5"},
		{"float exponent", 1e-9, "1e-09"},
		{"bool true", true, "1"},
		{"bool false", false, "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := formatArg(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatArg_Invalid(t *testing.T) {
	t.Parallel()

	_, err := formatArg(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = formatArg(struct{}{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCommandName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Test", CommandName(MIDTest))
	assert.Equal(t, "CloseLive", CommandName(MIDCloseLive))
	assert.Equal(t, "SetImprocCfgPath", CommandName(MIDSetImprocCfgPath))
	assert.Equal(t, "command77", CommandName(77))
}
