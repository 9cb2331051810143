package exif

import (
	"errors"
	"strings"
)

// ErrZeroDenominator is returned when decoding a rational with denominator 0.
var ErrZeroDenominator = errors.New("rational has zero denominator")

// Rational is an EXIF rational number: a numerator/denominator pair.
type Rational struct {
	Num int64
	Den int64
}

// Float decodes the rational into a float64. A zero denominator is a decode
// failure, never a division.
func (r Rational) Float() (float64, error) {
	if r.Den == 0 {
		return 0, ErrZeroDenominator
	}
	return float64(r.Num) / float64(r.Den), nil
}

// DMSToDegrees converts a degrees/minutes/seconds triple plus a hemisphere
// reference into signed decimal degrees. The reference is case-insensitive;
// S and W yield negative values. The second return value is false when any
// rational fails to decode or the reference is not one of N, S, E, W.
func DMSToDegrees(deg, min, sec Rational, ref string) (float64, bool) {
	d, err := deg.Float()
	if err != nil {
		return 0, false
	}
	m, err := min.Float()
	if err != nil {
		return 0, false
	}
	s, err := sec.Float()
	if err != nil {
		return 0, false
	}

	decimal := d + m/60.0 + s/3600.0

	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "N", "E":
		return decimal, true
	case "S", "W":
		return -decimal, true
	default:
		return 0, false
	}
}
