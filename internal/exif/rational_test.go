package exif

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRational_Float(t *testing.T) {
	cases := []struct {
		name string
		r    Rational
		want float64
	}{
		{"whole", Rational{Num: 50, Den: 1}, 50},
		{"fraction", Rational{Num: 1, Den: 250}, 1.0 / 250.0},
		{"negative", Rational{Num: -3, Den: 4}, -0.75},
		{"zero numerator", Rational{Num: 0, Den: 7}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.r.Float()
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRational_Float_ZeroDenominator(t *testing.T) {
	_, err := Rational{Num: 1, Den: 0}.Float()
	assert.ErrorIs(t, err, ErrZeroDenominator)
}

func TestDMSToDegrees(t *testing.T) {
	deg := Rational{Num: 40, Den: 1}
	min := Rational{Num: 42, Den: 1}
	sec := Rational{Num: 46, Den: 1}

	got, ok := DMSToDegrees(deg, min, sec, "N")
	assert.True(t, ok)
	assert.InDelta(t, 40.7128, got, 0.001)

	got, ok = DMSToDegrees(deg, min, sec, "S")
	assert.True(t, ok)
	assert.InDelta(t, -40.7128, got, 0.001)
}

func TestDMSToDegrees_West(t *testing.T) {
	deg := Rational{Num: 74, Den: 1}
	min := Rational{Num: 0, Den: 1}
	sec := Rational{Num: 21, Den: 1}

	got, ok := DMSToDegrees(deg, min, sec, "W")
	assert.True(t, ok)
	assert.InDelta(t, -74.0058, got, 0.001)
}

func TestDMSToDegrees_CaseInsensitiveRef(t *testing.T) {
	deg := Rational{Num: 10, Den: 1}
	min := Rational{Num: 30, Den: 1}
	sec := Rational{Num: 0, Den: 1}

	upper, ok := DMSToDegrees(deg, min, sec, "W")
	assert.True(t, ok)

	lower, ok := DMSToDegrees(deg, min, sec, "w")
	assert.True(t, ok)
	assert.Equal(t, upper, lower)
}

func TestDMSToDegrees_BadRational(t *testing.T) {
	good := Rational{Num: 1, Den: 1}
	bad := Rational{Num: 1, Den: 0}

	for _, tc := range [][3]Rational{
		{bad, good, good},
		{good, bad, good},
		{good, good, bad},
	} {
		_, ok := DMSToDegrees(tc[0], tc[1], tc[2], "N")
		assert.False(t, ok)
	}
}

func TestDMSToDegrees_UnknownRef(t *testing.T) {
	r := Rational{Num: 1, Den: 1}
	_, ok := DMSToDegrees(r, r, r, "Q")
	assert.False(t, ok)

	_, ok = DMSToDegrees(r, r, r, "")
	assert.False(t, ok)
}

func TestDMSToDegrees_RoundTrip(t *testing.T) {
	// Decompose a known decimal degree into DMS and convert back
	original := 40.7128

	deg := math.Floor(original)
	minFloat := (original - deg) * 60
	min := math.Floor(minFloat)
	sec := (minFloat - min) * 60

	// Express seconds as a rational with a large denominator
	const denom = 1000000
	got, ok := DMSToDegrees(
		Rational{Num: int64(deg), Den: 1},
		Rational{Num: int64(min), Den: 1},
		Rational{Num: int64(sec * denom), Den: denom},
		"N",
	)
	assert.True(t, ok)
	assert.InDelta(t, original, got, 0.0001)

	got, ok = DMSToDegrees(
		Rational{Num: int64(deg), Den: 1},
		Rational{Num: int64(min), Den: 1},
		Rational{Num: int64(sec * denom), Den: denom},
		"S",
	)
	assert.True(t, ok)
	assert.InDelta(t, -original, got, 0.0001)
}
