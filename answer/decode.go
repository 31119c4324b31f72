package answer

import (
	"fmt"
	"strings"
)

// listSeparator matches the token separators the list grammar admits;
// SHSWorks emits space-separated lists, older firmware comma-separated ones.
func listSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '\t'
}

// ResultNumber decodes an answer whose payload is a single numeric token.
func ResultNumber(raw string) (Number, error) {
	res, err := Result(raw)
	if err != nil {
		return Number{}, err
	}

	return ParseNumber(res)
}

// Numbers decodes an answer whose payload is a separated list of numeric
// tokens. An empty payload yields an empty slice, not an error: several "get"
// operations answer empty when the feature they report on is disabled.
func Numbers(raw string) ([]Number, error) {
	res, err := resultOrEmpty(raw)
	if err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(res, listSeparator)
	nums := make([]Number, 0, len(tokens))
	for _, tok := range tokens {
		n, err := ParseNumber(tok)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}

	return nums, nil
}

// Strings decodes an answer whose payload is a separated list of string
// tokens. The empty-payload convention of Numbers applies.
func Strings(raw string) ([]string, error) {
	res, err := resultOrEmpty(raw)
	if err != nil {
		return nil, err
	}

	return strings.FieldsFunc(res, listSeparator), nil
}

// Bool decodes an answer whose payload is a "0" or "1" token.
func Bool(raw string) (bool, error) {
	res, err := Result(raw)
	if err != nil {
		return false, err
	}

	switch res {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean token", ErrUnexpectedFormat, res)
	}
}

// KeyValues decodes a KEY=VALUE;KEY=VALUE block into a map with numeric-type
// inference on each value. Empty pairs produced by trailing semicolons are
// skipped.
func KeyValues(block string) (map[string]Value, error) {
	kv := make(map[string]Value)
	for _, pair := range strings.Split(block, ";") {
		if pair == "" {
			continue
		}

		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: malformed key/value pair %q", ErrUnexpectedFormat, pair)
		}
		kv[key] = ParseValue(val)
	}

	return kv, nil
}

// CamSettings decodes the camera-settings answer. Each payload field is a
// group block of the form "SHS:BUS=0;CAM=0;...", one per camera; the result
// maps the group label to its setting map.
func CamSettings(raw string) (map[string]map[string]Value, error) {
	payload, err := Payload(raw)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]map[string]Value)
	for _, field := range payload {
		if field == "" {
			continue
		}

		label, block, found := strings.Cut(field, ":")
		if !found || label == "" {
			return nil, fmt.Errorf("%w: camera group %q has no label", ErrUnexpectedFormat, field)
		}

		settings, err := KeyValues(block)
		if err != nil {
			return nil, err
		}
		groups[label] = settings
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: camera-settings answer carries no groups", ErrUnexpectedFormat)
	}

	return groups, nil
}

// PassFailValue is one pass/fail evaluation result: the item index and its
// numeric value.
type PassFailValue struct {
	Index int
	Value Number
}

// PassFailValues holds pass/fail results in response order.
type PassFailValues []PassFailValue

// Map returns the results keyed by item index. Response order is lost; use the
// slice form when order matters.
func (vals PassFailValues) Map() map[int]Number {
	m := make(map[int]Number, len(vals))
	for _, v := range vals {
		m[v.Index] = v.Value
	}

	return m
}

// Evaluation decodes an evaluation answer by pairing its numeric payload with
// the pass/fail item indices currently in use. The indices come from a
// separate round trip (operation 07) and must match the payload length.
func Evaluation(raw string, indices []int) (PassFailValues, error) {
	nums, err := Numbers(raw)
	if err != nil {
		return nil, err
	}
	if len(nums) != len(indices) {
		return nil, fmt.Errorf("%w: %d pass/fail values for %d item indices", ErrUnexpectedFormat, len(nums), len(indices))
	}

	vals := make(PassFailValues, 0, len(nums))
	for i, n := range nums {
		vals = append(vals, PassFailValue{Index: indices[i], Value: n})
	}

	return vals, nil
}
