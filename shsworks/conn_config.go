package shsworks

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/logger"
)

// Defaults for the SHSWorks TCP/IP connection.
const (
	// DefaultPort is the TCP port the SHSWorks remote interface listens on.
	DefaultPort = 29800

	DefaultConnectTimeout = 3 * time.Second
	DefaultSendTimeout    = 3 * time.Second

	// DefaultRecvTimeout of zero leaves the receive loop without a deadline;
	// a command then blocks until the full answer arrives or the connection
	// fails. Timeouts are imposed only at the socket layer, matching the
	// receive-with-deadline model of the protocol.
	DefaultRecvTimeout = 0 * time.Second

	// DefaultBusyRetryLimit is the number of stop-live recovery cycles the
	// client attempts before reporting ErrStillBusy.
	DefaultBusyRetryLimit = 3

	MaxBusyRetryLimit = 31
)

// ConnectionConfig holds all configuration for an SHSWorks TCP/IP connection.
type ConnectionConfig struct {
	host string
	port int

	connectTimeout time.Duration
	sendTimeout    time.Duration
	recvTimeout    time.Duration

	// busyRetryLimit bounds the stop-live recovery cycles per command.
	busyRetryLimit int

	// quiet suppresses the connect/close notices.
	quiet bool

	logger logger.Logger
}

// NewConnectionConfig creates a new SHSWorks connection configuration.
//
// host is the remote address, port the TCP port of the SHSWorks remote
// interface. opts are functional options applied in order; see With* functions.
func NewConnectionConfig(host string, port int, opts ...ConnOption) (*ConnectionConfig, error) {
	cfg := &ConnectionConfig{
		connectTimeout: DefaultConnectTimeout,
		sendTimeout:    DefaultSendTimeout,
		recvTimeout:    DefaultRecvTimeout,
		busyRetryLimit: DefaultBusyRetryLimit,
		logger:         logger.GetLogger(),
	}

	if err := cfg.setHost(host); err != nil {
		return nil, err
	}
	if err := cfg.setPort(port); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (cfg *ConnectionConfig) setHost(host string) error {
	if host == "" {
		return errors.New("shsworks: host must not be empty")
	}
	if ip := net.ParseIP(host); ip != nil {
		cfg.host = host
		return nil
	}

	host = strings.TrimPrefix(host, ".")
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return errors.New("shsworks: host must not be empty")
	}
	cfg.host = host

	return nil
}

func (cfg *ConnectionConfig) setPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("shsworks: port %d out of range [1, 65535]", port)
	}
	cfg.port = port

	return nil
}

// Host returns the configured host address.
func (cfg *ConnectionConfig) Host() string { return cfg.host }

// Port returns the configured TCP port.
func (cfg *ConnectionConfig) Port() int { return cfg.port }

// Addr returns "host:port".
func (cfg *ConnectionConfig) Addr() string { return fmt.Sprintf("%s:%d", cfg.host, cfg.port) }

// ConnectTimeout returns the TCP dial timeout.
func (cfg *ConnectionConfig) ConnectTimeout() time.Duration { return cfg.connectTimeout }

// SendTimeout returns the TCP write timeout.
func (cfg *ConnectionConfig) SendTimeout() time.Duration { return cfg.sendTimeout }

// RecvTimeout returns the receive deadline per command, zero meaning none.
func (cfg *ConnectionConfig) RecvTimeout() time.Duration { return cfg.recvTimeout }

// BusyRetryLimit returns the maximum stop-live recovery cycles per command.
func (cfg *ConnectionConfig) BusyRetryLimit() int { return cfg.busyRetryLimit }

// Quiet returns true when connect/close notices are suppressed.
func (cfg *ConnectionConfig) Quiet() bool { return cfg.quiet }

// Logger returns the configured logger.
func (cfg *ConnectionConfig) Logger() logger.Logger { return cfg.logger }

// ConnOption configures a ConnectionConfig.
type ConnOption interface {
	apply(cfg *ConnectionConfig) error
}

type connOptFunc func(cfg *ConnectionConfig) error

func (f connOptFunc) apply(cfg *ConnectionConfig) error {
	return f(cfg)
}

// WithConnectTimeout sets the TCP dial timeout.
func WithConnectTimeout(d time.Duration) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if d <= 0 {
			return errors.New("shsworks: connect timeout must be positive")
		}
		cfg.connectTimeout = d

		return nil
	})
}

// WithSendTimeout sets the TCP write timeout for a command frame.
func WithSendTimeout(d time.Duration) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if d <= 0 {
			return errors.New("shsworks: send timeout must be positive")
		}
		cfg.sendTimeout = d

		return nil
	})
}

// WithRecvTimeout sets the receive deadline applied around the blocking answer
// read loop. Zero disables the deadline; the client then blocks until the full
// answer arrives or the connection fails.
func WithRecvTimeout(d time.Duration) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if d < 0 {
			return errors.New("shsworks: receive timeout must not be negative")
		}
		cfg.recvTimeout = d

		return nil
	})
}

// WithBusyRetryLimit sets the maximum number of stop-live recovery cycles the
// client attempts per command before reporting ErrStillBusy. Zero disables the
// recovery entirely.
func WithBusyRetryLimit(n int) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if n < 0 || n > MaxBusyRetryLimit {
			return fmt.Errorf("shsworks: busy retry limit %d out of range [0, %d]", n, MaxBusyRetryLimit)
		}
		cfg.busyRetryLimit = n

		return nil
	})
}

// WithQuiet suppresses the informational connect/close notices.
func WithQuiet(quiet bool) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		cfg.quiet = quiet

		return nil
	})
}

// WithLogger sets the logger for the connection.
func WithLogger(l logger.Logger) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if l == nil {
			return errors.New("shsworks: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
