// Package shsworks implements a client for the SHSWorks TCP/IP remote-control
// interface of Optocraft SHSInspect wavefront sensors.
//
// The remote interface is a strictly half-duplex, line-oriented protocol: the
// client frames one command as a pipe-delimited, CRLF-terminated Windows-1252
// line, blocks until the CRLF-terminated answer arrives, and validates the
// answer header before handing the payload to package answer for
// operation-specific decoding.
//
// Key features:
//   - Command framing with monotonically increasing job IDs for correlation.
//   - Lazy connection management: the client connects on the first command and
//     reconnects after an explicit Close.
//   - Automatic, bounded recovery from the busy state a live or static
//     acquisition mode causes, by issuing the stop-live command and
//     retransmitting the original command.
//   - A typed convenience method per remote operation (opcodes 0 to 45), each
//     validating its arguments locally before transmission.
//
// Usage Example:
//
//	cfg, err := shsworks.NewConnectionConfig("localhost", shsworks.DefaultPort)
//	if err != nil {
//	    ...
//	}
//	client := shsworks.NewClient(cfg)
//	defer client.Close()
//
//	version, err := client.GetVersion()
//	...
//
// A Client owns its socket exclusively and is not safe for concurrent use;
// callers issuing commands from multiple goroutines must serialize the whole
// send/receive cycle externally.
package shsworks
