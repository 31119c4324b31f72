// Package answer decodes SHSWorks TCP/IP answer strings into typed values.
//
// An SHSWorks answer is a single CRLF-terminated, pipe-delimited line. The
// first four fields form the protocol header (start token, echoed job ID,
// echoed operation metadata, error-code token); the remaining fields carry the
// operation-specific payload. The session engine in package shsworks validates
// the header before any function in this package runs, so every decoder here
// assumes a successful answer and only interprets the payload.
//
// Which decoder applies is determined entirely by which operation was issued,
// not by sniffing the payload:
//
//   - Result: one opaque token (e.g. a version string)
//   - ResultNumber / Numbers: numeric literals with integer/float inference
//   - Strings: an ordered list of string tokens
//   - Bool: a "0"/"1" token
//   - KeyValues / CamSettings: KEY=VALUE;KEY=VALUE blocks, optionally grouped
//     by a leading camera label ("SHS:" or "VCC:")
//   - Evaluation: pass/fail values keyed by item index, in response order
//   - Parameter: a single parameter value classified by parameter name
//   - Stats: the fixed-order field statistics block
//
// Several "get" operations legitimately answer with an empty payload when the
// feature they report on is disabled. List decoders therefore return an empty
// slice for an empty payload instead of an error; distinguishing "feature
// disabled" from "nothing selected" requires a second round trip and is
// handled by the client in package shsworks.
package answer
