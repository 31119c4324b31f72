package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_Numeric(t *testing.T) {
	t.Parallel()

	v, err := Parameter("dWavelength", header+"|dWavelength=632.8\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())
	assert.InDelta(t, 632.8, v.Float64(), 1e-9)

	// The bare-value form without the echo decodes the same way.
	v, err = Parameter("bPassFail", header+"|1\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind())
	assert.Equal(t, int64(1), v.Int())

	_, err = Parameter("dWavelength", header+"|dWavelength=red\r\n")
	require.ErrorIs(t, err, ErrUnexpectedFormat)
}

func TestParameter_String(t *testing.T) {
	t.Parallel()

	v, err := Parameter("cpOperator", header+"|cpOperator=jdoe\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "jdoe", v.String())

	// A numeric-looking operator name stays a string.
	v, err = Parameter("cpSampleSerialNumber", header+"|cpSampleSerialNumber=12345\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "12345", v.String())
}

func TestParameter_Path(t *testing.T) {
	t.Parallel()

	v, err := Parameter("cpRAYFile", header+"|cpRAYFile=C:\\SHSWorks\\config\\sample.ray\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindPath, v.Kind())
	assert.Equal(t, "C:\\SHSWorks\\config\\sample.ray", v.String())
}

func TestParameter_EchoMismatch(t *testing.T) {
	t.Parallel()

	_, err := Parameter("dWavelength", header+"|dFocal=1.5\r\n")
	require.ErrorIs(t, err, ErrUnexpectedFormat)
	assert.Contains(t, err.Error(), "dFocal")
}

func TestParameter_Empty(t *testing.T) {
	t.Parallel()

	v, err := Parameter("cpOperator", header+"|cpOperator=\r\n")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "", v.String())

	v, err = Parameter("dWavelength", header+"\r\n")
	require.NoError(t, err)
	assert.Equal(t, "", v.String())
}
