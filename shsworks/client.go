package shsworks

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/internal/charset"
	"github.com/ArcetriAdaptiveOptics/go-shsworks/logger"
)

const (
	// recvChunkSize is the read buffer size of the answer accumulation loop.
	recvChunkSize = 512

	// busyMarker is the answer substring SHSWorks emits while a live or
	// static acquisition mode blocks command execution.
	busyMarker = "SHSWorks blocked (live or static mode)!"

	// successPrefix marks the error-code token of a successful answer.
	successPrefix = "1="
)

// unknownCommandMarkers are the case variants SHSWorks uses to report an
// unrecognized opcode.
var unknownCommandMarkers = [...]string{"Unknown Command", "Unknown command"}

// Client is a session with the SHSWorks TCP/IP remote interface.
//
// A Client owns exactly one socket, recreated on each connect, and issues one
// command at a time: SendCommand blocks until the full CRLF-terminated answer
// has been read or the connection fails. The job ID counter, the socket and
// the last-sent-frame diagnostic state are not safe for concurrent mutation;
// a Client must not be shared across goroutines without external
// serialization.
type Client struct {
	cfg    *ConnectionConfig
	logger logger.Logger

	conn   net.Conn
	isOpen bool

	// jid is the job ID of the next frame. It never decreases and advances
	// exactly once per physical transmission, including recovery
	// retransmissions and frames rejected for exceeding the length bound.
	jid int

	// sentLast is the exact wire text of the last transmitted frame, kept for
	// diagnostic attribution of failing exchanges.
	sentLast string

	metrics ClientMetrics
}

// NewClient creates a new SHSWorks client from cfg.
//
// The client does not connect yet; the connection is established by Connect or
// transparently by the first command.
func NewClient(cfg *ConnectionConfig) *Client {
	return &Client{
		cfg:    cfg,
		logger: cfg.logger,
	}
}

// Connect establishes the TCP connection to SHSWorks.
//
// It is idempotent: a no-op when the connection is already open. A refused
// connection yields ErrConnectionFailed.
func (c *Client) Connect() error {
	if c.isOpen {
		return nil
	}

	conn, err := net.DialTimeout("tcp", c.cfg.Addr(), c.cfg.connectTimeout)
	if err != nil {
		return fmt.Errorf("%w: check that SHSWorks is running, TCP/IP remote control is enabled and the port is %d: %w",
			ErrConnectionFailed, c.cfg.port, err)
	}

	c.conn = conn
	c.isOpen = true
	c.metrics.incConnectCount()

	if !c.cfg.quiet {
		c.logger.Info("TCP/IP connection to SHSWorks established", "addr", c.cfg.Addr())
	}

	return nil
}

// Close closes the connection.
//
// It is idempotent and safe to defer right after NewClient: closing an
// already-closed or never-opened client is a no-op. The next command
// reconnects transparently.
func (c *Client) Close() error {
	c.isOpen = false
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil

	if !c.cfg.quiet {
		c.logger.Info("connection to SHSWorks closed", "addr", c.cfg.Addr())
	}

	return err
}

// IsOpen reports whether the connection is currently open.
func (c *Client) IsOpen() bool {
	return c.isOpen
}

// JobID returns the job ID the next frame will carry.
func (c *Client) JobID() int {
	return c.jid
}

// LastSent returns the exact wire text of the last transmitted frame.
func (c *Client) LastSent() string {
	return c.sentLast
}

// Metrics returns the client metrics.
func (c *Client) Metrics() *ClientMetrics {
	return &c.metrics
}

// SendCommand frames and transmits one command and returns the raw validated
// answer string for operation-specific decoding by package answer.
//
// The job ID is incremented once per physical transmission. When SHSWorks
// answers that a live or static acquisition mode blocks the command, the
// client runs one stop-live exchange as an independent command cycle, discards
// its answer and retransmits the original command, up to the configured busy
// retry limit; exhaustion yields ErrStillBusy.
func (c *Client) SendCommand(mid int, args ...any) (string, error) {
	return c.sendCommand(mid, args, c.cfg.busyRetryLimit)
}

func (c *Client) sendCommand(mid int, args []any, busyBudget int) (string, error) {
	if mid < 0 || mid > MaxMID {
		return "", fmt.Errorf("%w: opcode %d out of range [0, %d]", ErrInvalidArgument, mid, MaxMID)
	}

	argStrs := make([]string, 0, len(args))
	for _, arg := range args {
		s, err := formatArg(arg)
		if err != nil {
			return "", err
		}
		argStrs = append(argStrs, s)
	}

	frame := buildFrame(c.jid, mid, argStrs)

	// The counter advances even for a frame that is rejected below; every
	// framed command consumes its job ID.
	c.jid++

	data, err := charset.Encode(frame)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if len(data) > MaxCommandLength {
		return "", fmt.Errorf("%w: the maximum command length is %d bytes, the command %q is too long",
			ErrInvalidArgument, MaxCommandLength, strings.TrimSuffix(frame, frameTerminator))
	}

	if !c.isOpen {
		if err := c.Connect(); err != nil {
			return "", err
		}
	}

	ans, err := c.exchange(frame, data)
	if err != nil {
		c.metrics.incCommandErrCount()
		return "", fmt.Errorf("%w during %s: %w", ErrConnectionLost, c.lastCommand(), err)
	}

	for _, marker := range unknownCommandMarkers {
		if strings.Contains(ans, marker) {
			c.metrics.incCommandErrCount()
			return "", fmt.Errorf("%w: %s", ErrUnknownCommand, c.lastCommand())
		}
	}

	if strings.Contains(ans, busyMarker) {
		if busyBudget <= 0 {
			c.metrics.incCommandErrCount()
			return "", fmt.Errorf("%w: %s", ErrStillBusy, c.lastCommand())
		}

		c.metrics.incBusyRetryCount()
		c.logger.Warn("SHSWorks blocked by live or static mode, issuing stop-live", "mid", mid)

		// Stop-live runs as a fully independent command cycle with its own
		// job ID; its answer is discarded.
		if _, err := c.sendCommand(MIDCloseLive, nil, 0); err != nil {
			return "", err
		}

		return c.sendCommand(mid, args, busyBudget-1)
	}

	fields := strings.Split(strings.TrimSuffix(ans, frameTerminator), "|")
	if len(fields) < 4 {
		c.metrics.incCommandErrCount()
		return "", fmt.Errorf("%w during %s: truncated answer %q", ErrCommandFailed, c.lastCommand(), ans)
	}

	errCode := fields[3]
	if !strings.HasPrefix(errCode, successPrefix) {
		msg := errCode
		if len(fields) > 4 {
			msg += " " + fields[4]
		}
		c.metrics.incCommandErrCount()

		return "", fmt.Errorf("%w during %s: %s", ErrCommandFailed, c.lastCommand(), msg)
	}

	c.metrics.incAnswerRecvCount()

	return ans, nil
}

// exchange transmits one encoded frame and accumulates the answer until its
// trailing two bytes are CRLF.
func (c *Client) exchange(frame string, data []byte) (string, error) {
	c.sentLast = frame
	c.metrics.incCommandSendCount()

	if c.cfg.sendTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.sendTimeout)); err != nil {
			return "", err
		}
	}
	if _, err := c.conn.Write(data); err != nil {
		c.dropConn()
		return "", err
	}

	if c.cfg.recvTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.recvTimeout)); err != nil {
			return "", err
		}
	}

	var acc []byte
	buf := make([]byte, recvChunkSize)
	for !bytes.HasSuffix(acc, []byte(frameTerminator)) {
		n, err := c.conn.Read(buf)
		if n > 0 {
			acc = append(acc, buf[:n]...)
		}
		if err != nil {
			c.dropConn()
			return "", err
		}
	}

	return charset.Decode(acc), nil
}

// dropConn releases the socket after a mid-transaction failure. Reconnection
// is the caller's decision; the next command connects transparently.
func (c *Client) dropConn() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.isOpen = false
}

// lastCommand renders the last transmitted frame for diagnostics as
// "<name>(): <exact wire text>", with the CRLF stripped. The opcode is
// re-parsed from the frame itself so the attribution always matches what was
// actually sent.
func (c *Client) lastCommand() string {
	sent := strings.TrimSuffix(c.sentLast, frameTerminator)
	fields := strings.Split(sent, "|")
	if len(fields) < 3 {
		return sent
	}

	mid, err := strconv.Atoi(fields[2])
	if err != nil {
		return sent
	}

	return fmt.Sprintf("%s(): %s", CommandName(mid), sent)
}
