package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	t.Parallel()

	fields := Fields("Stop|JID=001|OP=;ST=;SN=|1=Ok|12.000.1\r\n")
	assert.Equal(t, []string{"Stop", "JID=001", "OP=;ST=;SN=", "1=Ok", "12.000.1"}, fields)

	// Without a trailing CRLF the split is unchanged.
	fields = Fields("Stop|JID=001|OP=;ST=;SN=|1=Ok")
	assert.Equal(t, []string{"Stop", "JID=001", "OP=;ST=;SN=", "1=Ok"}, fields)
}

func TestPayload(t *testing.T) {
	t.Parallel()

	payload, err := Payload("Stop|JID=001|OP=;ST=;SN=|1=Ok|a|b\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, payload)

	payload, err = Payload("Stop|JID=001|OP=;ST=;SN=|1=Ok\r\n")
	require.NoError(t, err)
	assert.Empty(t, payload)

	_, err = Payload("Stop|JID=001\r\n")
	require.ErrorIs(t, err, ErrUnexpectedFormat)
}

func TestResult(t *testing.T) {
	t.Parallel()

	res, err := Result("Stop|JID=001|OP=;ST=;SN=|1=Ok|12.000.1 (SVN1178)\r\n")
	require.NoError(t, err)
	assert.Equal(t, "12.000.1 (SVN1178)", res)

	_, err = Result("Stop|JID=001|OP=;ST=;SN=|1=Ok\r\n")
	require.ErrorIs(t, err, ErrUnexpectedFormat)
}
