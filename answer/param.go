package answer

import (
	"fmt"
	"strings"
)

// paramKind classifies how a named SHSWorks parameter decodes.
type paramKind int

const (
	paramNumeric paramKind = iota
	paramString
	paramPath
)

// paramKinds is the fixed classification table for parameter decoding.
// A handful of parameters are opaque strings or filesystem paths; every
// parameter not listed here is numeric.
var paramKinds = map[string]paramKind{
	"cpOperator":            paramString,
	"cpSampleSerialNumber":  paramString,
	"cpSampleType":          paramString,
	"cpAPP_ImgProc_DXFFile": paramPath,
	"cpRAYFile":             paramPath,
}

// Parameter decodes the answer to a parameter query for the named parameter.
//
// The payload is either the bare value or a NAME=VALUE echo; the echoed name,
// when present, must match. The result is classified by the parameter name:
// a fixed set of names decode as strings or paths, all others as numbers.
// An empty payload decodes as an empty string value regardless of
// classification, matching an unset parameter.
func Parameter(name, raw string) (Value, error) {
	res, err := resultOrEmpty(raw)
	if err != nil {
		return Value{}, err
	}

	if prefix, val, found := strings.Cut(res, "="); found {
		if prefix != name {
			return Value{}, fmt.Errorf("%w: answer echoes parameter %q, queried %q", ErrUnexpectedFormat, prefix, name)
		}
		res = val
	}

	if res == "" {
		return StringValue(""), nil
	}

	switch paramKinds[name] {
	case paramString:
		return StringValue(res), nil
	case paramPath:
		return PathValue(res), nil
	default:
		n, err := ParseNumber(res)
		if err != nil {
			return Value{}, fmt.Errorf("parameter %q: %w", name, err)
		}
		if n.IsInt() {
			return Value{kind: KindInt, str: res, num: n}, nil
		}

		return Value{kind: KindFloat, str: res, num: n}, nil
	}
}
