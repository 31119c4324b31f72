package answer

import (
	"fmt"
	"strings"
)

// FieldStats holds the statistics block of a data field: the bounding
// rectangle of valid data, the extrema, the mean, the peak-to-valley span and
// the RMS. The wire order is protocol-fixed and not self-describing.
type FieldStats struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
	Min  float64
	Max  float64
	Mean float64
	PV   float64
	RMS  float64
}

// statsFieldCount is the number of numeric fields in a statistics block.
const statsFieldCount = 9

// Stats decodes a statistics answer. The payload carries exactly nine numeric
// tokens in the order XMIN, XMAX, YMIN, YMAX, MIN, MAX, MEAN, PV, RMS.
func Stats(raw string) (FieldStats, error) {
	payload, err := Payload(raw)
	if err != nil {
		return FieldStats{}, err
	}

	var tokens []string
	for _, field := range payload {
		tokens = append(tokens, strings.FieldsFunc(field, listSeparator)...)
	}
	if len(tokens) != statsFieldCount {
		return FieldStats{}, fmt.Errorf("%w: statistics block has %d fields, want %d", ErrUnexpectedFormat, len(tokens), statsFieldCount)
	}

	vals := make([]float64, statsFieldCount)
	for i, tok := range tokens {
		n, err := ParseNumber(tok)
		if err != nil {
			return FieldStats{}, err
		}
		vals[i] = n.Float64()
	}

	return FieldStats{
		XMin: vals[0],
		XMax: vals[1],
		YMin: vals[2],
		YMax: vals[3],
		Min:  vals[4],
		Max:  vals[5],
		Mean: vals[6],
		PV:   vals[7],
		RMS:  vals[8],
	}, nil
}
