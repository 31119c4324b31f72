// Package simulator provides an in-memory SHSWorks emulator speaking the
// TCP/IP remote-control wire grammar.
//
// The emulator accepts the pipe-delimited, CRLF-terminated Windows-1252
// command frames of package shsworks and answers with the same grammar,
// including job ID echoing, the live/static busy state, pass/fail item
// bookkeeping and a parameter store. It backs the package tests, the runnable
// example and the "shsctl sim" subcommand; it is not a substitute for the real
// instrument software.
package simulator

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/internal/charset"
	"github.com/ArcetriAdaptiveOptics/go-shsworks/logger"
	"github.com/ArcetriAdaptiveOptics/go-shsworks/shsworks"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultVersion is the version string the emulator reports.
const DefaultVersion = "12.000.1 (SVN1178) (September 8 2020)"

const busyAnswer = "SHSWorks blocked (live or static mode)!"

// defaultCamSettings is the camera-settings answer payload: one group block
// per camera, pipe-separated.
const defaultCamSettings = "SHS:BUS=0;CAM=0;TRI=0;ASH=0;AVE=8;SHU=20000;BRI=0;GAI=1;TEM=35.2" +
	"|VCC:BUS=0;CAM=1;TRI=0;ASH=0;AVE=1;SHU=10000;BRI=0;GAI=1.0"

// defaultStats is the statistics answer payload, in the protocol-fixed order
// XMIN XMAX YMIN YMAX MIN MAX MEAN PV RMS.
const defaultStats = "0.89784889997 6.5842252665 1.0474903833 6.8835082331" +
	" -9.9467697737 3.3661278366 -4.5267755879e-17 13.31289761 3.1642929445"

// PFItem is one pass/fail item of the emulator.
type PFItem struct {
	Name  string
	Value float64
	Use   bool
}

// Simulator is an SHSWorks emulator listening on a TCP socket.
//
// All stores are safe for concurrent use; the emulator serves any number of
// client connections, each strictly request/response.
type Simulator struct {
	logger  logger.Logger
	version string

	camSettings string
	stats       string

	listener net.Listener
	conns    *xsync.MapOf[net.Conn, struct{}]
	wg       sync.WaitGroup
	shutdown atomic.Bool

	params  *xsync.MapOf[string, string]
	pfItems *xsync.MapOf[int, PFItem]

	liveMode   atomic.Bool
	forcedBusy atomic.Int32
}

// Option configures a Simulator.
type Option func(s *Simulator)

// WithLogger sets the logger for the emulator.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		s.logger = l
	}
}

// WithVersion sets the version string the emulator reports.
func WithVersion(version string) Option {
	return func(s *Simulator) {
		s.version = version
	}
}

// WithCamSettings overrides the camera-settings answer payload.
func WithCamSettings(payload string) Option {
	return func(s *Simulator) {
		s.camSettings = payload
	}
}

// WithStats overrides the statistics answer payload.
func WithStats(payload string) Option {
	return func(s *Simulator) {
		s.stats = payload
	}
}

// New creates a Simulator with the pass/fail evaluation enabled and an empty
// item selection. Call Start to begin serving.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		logger:      logger.GetLogger(),
		version:     DefaultVersion,
		camSettings: defaultCamSettings,
		stats:       defaultStats,
		conns:       xsync.NewMapOf[net.Conn, struct{}](),
		params:      xsync.NewMapOf[string, string](),
		pfItems:     xsync.NewMapOf[int, PFItem](),
	}

	s.params.Store("bPassFail", "1")

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start listens on addr ("host:port"; port 0 picks a free port) and serves
// connections in the background until Close.
func (s *Simulator) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("simulator: listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.wg.Add(1)
	go s.acceptLoop()

	s.logger.Info("SHSWorks simulator listening", "addr", listener.Addr())

	return nil
}

// Addr returns the listen address, or nil before Start.
func (s *Simulator) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Close stops the emulator and closes every client connection.
func (s *Simulator) Close() error {
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}

	s.conns.Range(func(conn net.Conn, _ struct{}) bool {
		_ = conn.Close()
		return true
	})

	s.wg.Wait()

	return err
}

// SetParam stores a parameter value.
func (s *Simulator) SetParam(name string, value string) {
	s.params.Store(name, value)
}

// Param returns a stored parameter value.
func (s *Simulator) Param(name string) (string, bool) {
	return s.params.Load(name)
}

// SetPFItem configures one pass/fail item.
func (s *Simulator) SetPFItem(index int, item PFItem) {
	s.pfItems.Store(index, item)
}

// ForceBusyAnswers makes the emulator answer the next n commands (other than
// stop-live) with the busy marker, regardless of the live-mode state.
func (s *Simulator) ForceBusyAnswers(n int) {
	s.forcedBusy.Store(int32(n))
}

// LiveMode reports whether the emulated live video is running.
func (s *Simulator) LiveMode() bool {
	return s.liveMode.Load()
}

func (s *Simulator) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.shutdown.Load() {
				s.logger.Error("simulator: accept failed", "error", err)
			}

			return
		}

		s.conns.Store(conn, struct{}{})
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Simulator) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer s.conns.Delete(conn)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if !s.shutdown.Load() && !errors.Is(err, net.ErrClosed) {
				s.logger.Debug("simulator: connection closed", "error", err)
			}

			return
		}

		reply := s.handleFrame(charset.Decode(line))
		data, err := charset.Encode(reply)
		if err != nil {
			s.logger.Error("simulator: answer not encodable", "error", err)

			return
		}
		if _, err := conn.Write(data); err != nil {
			return
		}
	}
}

// handleFrame parses one command frame and renders the answer line.
func (s *Simulator) handleFrame(frame string) string {
	fields := strings.Split(strings.TrimRight(frame, "\r\n"), "|")
	if len(fields) < 3 || fields[0] != "Start" {
		return buildAnswer("000", "2=Error", "malformed command")
	}

	jid := fields[1]
	mid, err := strconv.Atoi(fields[2])
	if err != nil {
		return buildAnswer(jid, "2=Error", "malformed opcode")
	}

	args := fields[3:]

	s.logger.Debug("simulator: command", "jid", jid, "mid", mid, "args", args)

	code, payload := s.execute(mid, args)

	return buildAnswer(jid, code, payload...)
}

// buildAnswer renders an answer line: the fixed header with the echoed job
// ID, the error-code token and the payload fields.
func buildAnswer(jid string, code string, payload ...string) string {
	var b strings.Builder
	b.WriteString("Stop|JID=")
	b.WriteString(jid)
	b.WriteString("|OP=;ST=;SN=|")
	b.WriteString(code)
	for _, field := range payload {
		b.WriteString("|")
		b.WriteString(field)
	}
	b.WriteString("\r\n")

	return b.String()
}

func (s *Simulator) execute(mid int, args []string) (string, []string) {
	// The busy state blocks everything except the stop-live command.
	if mid != shsworks.MIDCloseLive {
		if s.forcedBusy.Load() > 0 {
			s.forcedBusy.Add(-1)
			return "9=Error", []string{busyAnswer}
		}
		if s.liveMode.Load() {
			return "9=Error", []string{busyAnswer}
		}
	}

	switch mid {
	case shsworks.MIDOpenLive:
		s.liveMode.Store(true)
		return ack()

	case shsworks.MIDCloseLive:
		s.liveMode.Store(false)
		return ack()

	case shsworks.MIDGetVersion:
		return "1=Ok", []string{s.version}

	case shsworks.MIDGetPFIndices:
		return "1=Ok", []string{s.pfList(func(index int, _ PFItem) string {
			return strconv.Itoa(index)
		})}

	case shsworks.MIDGetPFNames:
		return "1=Ok", []string{s.pfList(func(_ int, item PFItem) string {
			return item.Name
		})}

	case shsworks.MIDGetPFValues, shsworks.MIDEvaluation, shsworks.MIDEvalSpotData:
		return "1=Ok", []string{s.pfList(func(_ int, item PFItem) string {
			return strconv.FormatFloat(item.Value, 'g', -1, 64)
		})}

	case shsworks.MIDGetTotalPFResult:
		return "1=Ok", []string{"1"}

	case shsworks.MIDGetPar:
		if len(args) == 0 || args[0] == "" {
			return "2=Error", []string{"missing parameter name"}
		}
		name := args[0]
		value, ok := s.params.Load(name)
		if !ok {
			return "3=Error", []string{"unknown parameter " + name}
		}

		return "1=Ok", []string{name + "=" + value}

	case shsworks.MIDSetPar:
		if len(args) == 0 {
			return "2=Error", []string{"missing parameter assignment"}
		}
		name, value, found := strings.Cut(args[0], "=")
		if !found || name == "" {
			return "2=Error", []string{"malformed parameter assignment"}
		}
		s.params.Store(name, value)

		return "1=Ok", []string{name + "=" + value}

	case shsworks.MIDGetCamSettings:
		return "1=Ok", strings.Split(s.camSettings, "|")

	case shsworks.MIDGetPFItemValue:
		item, ok := s.pfItemArg(args)
		if !ok {
			return "4=Error", []string{"unknown pass/fail item"}
		}

		return "1=Ok", []string{strconv.FormatFloat(item.Value, 'g', -1, 64)}

	case shsworks.MIDGetPFItemResult:
		_, ok := s.pfItemArg(args)
		if !ok {
			return "4=Error", []string{"unknown pass/fail item"}
		}

		return "1=Ok", []string{"1"}

	case shsworks.MIDGetPFItemUse:
		item, ok := s.pfItemArg(args)
		if !ok {
			return "4=Error", []string{"unknown pass/fail item"}
		}
		if item.Use {
			return "1=Ok", []string{"1"}
		}

		return "1=Ok", []string{"0"}

	case shsworks.MIDSetPFItemUse:
		if len(args) < 2 {
			return "2=Error", []string{"missing pass/fail item arguments"}
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return "2=Error", []string{"malformed pass/fail index"}
		}
		item, _ := s.pfItems.Load(index)
		item.Use = args[1] == "1"
		s.pfItems.Store(index, item)

		return ack()

	case shsworks.MIDGetFieldStats, shsworks.MIDGetRadialPowerMapStats:
		return "1=Ok", []string{s.stats}

	case shsworks.MIDFreerunState:
		if len(args) > 0 && args[0] != "" {
			s.params.Store("bSHSFreerun", args[0])
			return ack()
		}
		state, ok := s.params.Load("bSHSFreerun")
		if !ok {
			state = "0"
		}

		return "1=Ok", []string{state}

	default:
		if mid > shsworks.MIDSetImprocCfgPath {
			return "2=Error", []string{"Unknown command"}
		}

		// Every remaining operation is a plain action with the standard
		// acknowledge answer.
		return ack()
	}
}

func ack() (string, []string) {
	return "1=Ok", []string{"1"}
}

// pfItemArg resolves the pass/fail item addressed by the first argument.
func (s *Simulator) pfItemArg(args []string) (PFItem, bool) {
	if len(args) == 0 {
		return PFItem{}, false
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return PFItem{}, false
	}

	return s.pfItems.Load(index)
}

// pfList renders a pass/fail answer payload: one token per item in use, in
// index order. It answers empty when the pass/fail evaluation is disabled.
func (s *Simulator) pfList(render func(index int, item PFItem) string) string {
	if enabled, ok := s.params.Load("bPassFail"); ok && enabled == "0" {
		return ""
	}

	var indices []int
	s.pfItems.Range(func(index int, item PFItem) bool {
		if item.Use {
			indices = append(indices, index)
		}
		return true
	})
	sort.Ints(indices)

	tokens := make([]string, 0, len(indices))
	for _, index := range indices {
		item, _ := s.pfItems.Load(index)
		tokens = append(tokens, render(index, item))
	}

	return strings.Join(tokens, " ")
}
