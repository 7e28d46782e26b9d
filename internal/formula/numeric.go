package formula

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Float is a float64 that tolerates malformed JSON input.  Upstream rows
// frequently arrive with nulls, quoted numbers or garbage in numeric
// fields; any value that cannot be read as a number decodes to 0 instead
// of failing the whole row.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.  It never returns an error.
func (f *Float) UnmarshalJSON(data []byte) error {
	*f = Float(coerceFloat(data))
	return nil
}

// Count is an int64 with the same tolerant decoding as Float.  Fractional
// values are truncated toward zero.
type Count int64

// UnmarshalJSON implements json.Unmarshaler.  It never returns an error.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(coerceFloat(data))
	return nil
}

func coerceFloat(data []byte) float64 {
	s := string(bytes.TrimSpace(data))
	if s == "" || s == "null" {
		return 0
	}
	// Quoted numbers show up when the source serializes decimals as strings.
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SafeDiv returns num/den, or 0 when the denominator is zero or negative.
// Ratio fields are defined as 0 on a missing denominator by contract, so
// callers never need their own guard.
func SafeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// Pct returns num/den expressed as a percentage, or 0 when den is zero.
func Pct(num, den float64) float64 {
	return SafeDiv(num, den) * 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
