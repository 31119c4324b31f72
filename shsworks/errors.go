package shsworks

import "errors"

var (
	// ErrInvalidArgument indicates that a command was rejected locally before
	// transmission: an out-of-range opcode, an argument of the wrong shape, or
	// a frame exceeding the maximum command length.
	ErrInvalidArgument = errors.New("shsworks: invalid argument")

	// ErrConnectionFailed indicates that the remote endpoint refused the TCP
	// connection.
	ErrConnectionFailed = errors.New("shsworks: connection failed")

	// ErrConnectionLost indicates that the connection was reset while a
	// command exchange was in flight.
	ErrConnectionLost = errors.New("shsworks: connection lost")

	// ErrUnknownCommand indicates that SHSWorks does not recognize the opcode.
	ErrUnknownCommand = errors.New("shsworks: unknown command")

	// ErrCommandFailed indicates that SHSWorks executed the command and
	// reported a non-success error code in the answer header.
	ErrCommandFailed = errors.New("shsworks: command failed")

	// ErrStillBusy indicates that SHSWorks stayed blocked in live or static
	// mode after the configured number of stop-live recovery attempts.
	ErrStillBusy = errors.New("shsworks: still blocked in live or static mode")
)

var (
	// ErrPassFailDisabled indicates that a pass/fail query answered empty
	// because the pass/fail evaluation is switched off.
	ErrPassFailDisabled = errors.New("shsworks: pass/fail evaluation is turned off")

	// ErrNoPFItemsSelected indicates that a pass/fail query answered empty
	// because no pass/fail items are selected, even though the evaluation is
	// switched on.
	ErrNoPFItemsSelected = errors.New("shsworks: no pass/fail items are selected")
)
