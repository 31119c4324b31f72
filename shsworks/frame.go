package shsworks

import (
	"fmt"
	"strconv"
)

// MaxCommandLength is the maximum encoded length of a command frame in bytes,
// including the CRLF terminator.
const MaxCommandLength = 4096

const frameTerminator = "\r\n"

// buildFrame assembles the wire frame for one command:
//
//	Start|{jid:03d}|{mid:02d}[|{arg}]*
//
// followed by CRLF. When there are no arguments a single trailing pipe is
// appended anyway; the header always carries a field slot for arguments.
func buildFrame(jid int, mid int, args []string) string {
	frame := fmt.Sprintf("Start|%03d|%02d", jid, mid)
	for _, arg := range args {
		frame += "|" + arg
	}
	if len(args) == 0 {
		frame += "|"
	}

	return frame + frameTerminator
}

// formatArg coerces a command argument to its wire string form.
func formatArg(arg any) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		if v {
			return "1", nil
		}

		return "0", nil
	case fmt.Stringer:
		return v.String(), nil
	case nil:
		return "", fmt.Errorf("%w: nil command argument", ErrInvalidArgument)
	default:
		return "", fmt.Errorf("%w: unsupported argument type %T", ErrInvalidArgument, arg)
	}
}
