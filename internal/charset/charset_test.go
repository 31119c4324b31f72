package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	data, err := Encode("Start|001|05|Messplatz µm\r\n")
	require.NoError(t, err)

	// "µ" is a single byte in Windows-1252.
	assert.Equal(t, byte(0xB5), data[23])
	assert.Len(t, data, len("Start|001|05|Messplatz ?m\r\n"))
}

func TestEncode_ASCIIPassThrough(t *testing.T) {
	t.Parallel()

	data, err := Encode("Start|000|00|\r\n")
	require.NoError(t, err)
	assert.Equal(t, []byte("Start|000|00|\r\n"), data)
}

func TestEncode_Unmappable(t *testing.T) {
	t.Parallel()

	_, err := Encode("Start|001|05|日本語\r\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not representable")
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	const s = "Stop|JID=001|OP=;ST=;SN=|1=Ok|Größe 5 µm\r\n"
	data, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, s, Decode(data))
}

func TestDecode_HighBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "µ", Decode([]byte{0xB5}))
	assert.Equal(t, "€", Decode([]byte{0x80}))
}
