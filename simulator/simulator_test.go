package simulator

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawSession speaks the wire grammar directly, without the client package.
type rawSession struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func dialRaw(t *testing.T, s *Simulator) *rawSession {
	t.Helper()

	conn, err := net.DialTimeout("tcp", s.Addr().String(), 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &rawSession{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

func (rs *rawSession) exchange(frame string) string {
	rs.t.Helper()

	_, err := rs.conn.Write([]byte(frame))
	require.NoError(rs.t, err)

	require.NoError(rs.t, rs.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := rs.reader.ReadString('\n')
	require.NoError(rs.t, err)

	return line
}

func startSim(t *testing.T, opts ...Option) *Simulator {
	t.Helper()

	s := New(opts...)
	require.NoError(t, s.Start("127.0.0.1:0"))
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestAckAnswer(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|00|\r\n")
	assert.Equal(t, "Stop|JID=000|OP=;ST=;SN=|1=Ok|1\r\n", ans)
}

func TestJobIDEcho(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	ans := rs.exchange("Start|017|00|\r\n")
	assert.Contains(t, ans, "JID=017")
}

func TestVersionAnswer(t *testing.T) {
	t.Parallel()

	s := startSim(t, WithVersion("9.876.5 (test)"))
	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|21|\r\n")
	assert.Equal(t, "Stop|JID=000|OP=;ST=;SN=|1=Ok|9.876.5 (test)\r\n", ans)
}

func TestMalformedFrame(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	ans := rs.exchange("Hello|000|00|\r\n")
	assert.Contains(t, ans, "2=Error")
	assert.Contains(t, ans, "malformed command")

	ans = rs.exchange("Start|000|zz|\r\n")
	assert.Contains(t, ans, "malformed opcode")
}

func TestUnknownOpcode(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|77|\r\n")
	assert.Contains(t, ans, "2=Error")
	assert.Contains(t, ans, "Unknown command")
}

func TestLiveModeBlocksCommands(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	rs.exchange("Start|000|01|\r\n")
	assert.True(t, s.LiveMode())

	ans := rs.exchange("Start|001|00|\r\n")
	assert.Contains(t, ans, "SHSWorks blocked (live or static mode)!")

	// Stop-live is the one command the busy state lets through.
	ans = rs.exchange("Start|002|08|\r\n")
	assert.Contains(t, ans, "1=Ok")
	assert.False(t, s.LiveMode())

	ans = rs.exchange("Start|003|00|\r\n")
	assert.Contains(t, ans, "1=Ok")
}

func TestForceBusyAnswers(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	s.ForceBusyAnswers(2)

	ans := rs.exchange("Start|000|00|\r\n")
	assert.Contains(t, ans, "SHSWorks blocked")
	ans = rs.exchange("Start|001|00|\r\n")
	assert.Contains(t, ans, "SHSWorks blocked")
	ans = rs.exchange("Start|002|00|\r\n")
	assert.Contains(t, ans, "1=Ok")
}

func TestParamStore(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|27|dWavelength=632.8\r\n")
	assert.Contains(t, ans, "1=Ok|dWavelength=632.8")

	value, ok := s.Param("dWavelength")
	require.True(t, ok)
	assert.Equal(t, "632.8", value)

	ans = rs.exchange("Start|001|26|dWavelength\r\n")
	assert.Contains(t, ans, "1=Ok|dWavelength=632.8")

	ans = rs.exchange("Start|002|26|dNope\r\n")
	assert.Contains(t, ans, "3=Error|unknown parameter dNope")
}

func TestPassFailAnswers(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	s.SetPFItem(0, PFItem{Name: "Piston", Value: 1.5, Use: true})
	s.SetPFItem(2, PFItem{Name: "Power", Value: -0.5, Use: true})
	s.SetPFItem(4, PFItem{Name: "Astig", Value: 9, Use: false})

	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|07|\r\n")
	assert.Contains(t, ans, "1=Ok|0 2")

	ans = rs.exchange("Start|001|20|\r\n")
	assert.Contains(t, ans, "1=Ok|Piston Power")

	ans = rs.exchange("Start|002|24|\r\n")
	assert.Contains(t, ans, "1=Ok|1.5 -0.5")
}

func TestPassFailDisabledAnswersEmpty(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	s.SetParam("bPassFail", "0")
	s.SetPFItem(0, PFItem{Name: "Piston", Value: 1.5, Use: true})

	rs := dialRaw(t, s)

	ans := rs.exchange("Start|000|07|\r\n")
	assert.Equal(t, "Stop|JID=000|OP=;ST=;SN=|1=Ok|\r\n", ans)
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	s := startSim(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
