package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// decimalRe matches plain decimal degrees, the common case.
	decimalRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	// dmsRe matches degrees-minutes-seconds with arbitrary separators,
	// e.g. `120°17′4.9″` or `120d 17m 4.9s`. The dot is excluded from the
	// separator classes so decimal minutes fall through to dmRe instead of
	// being split into minutes and seconds.
	dmsRe = regexp.MustCompile(`(-?\d+)[^\d.]+(\d+)[^\d.]+(\d+(?:\.\d+)?)`)

	// dmRe matches degrees with decimal minutes, e.g. `120°17.08′`.
	dmRe = regexp.MustCompile(`(-?\d+)[^\d.]+(\d+(?:\.\d+)?)`)
)

// ParseCoordinate normalizes coordinate cell text to decimal degrees.
// It accepts plain decimals, degrees-minutes-seconds, and degrees-minutes.
// The second return value is false when the text carries no usable value;
// such records are skipped and never reach the conversion core.
func ParseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if decimalRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	if m := dmsRe.FindStringSubmatch(s); m != nil {
		d, errD := strconv.ParseFloat(m[1], 64)
		mm, errM := strconv.ParseFloat(m[2], 64)
		ss, errS := strconv.ParseFloat(m[3], 64)
		if errD != nil || errM != nil || errS != nil {
			return 0, false
		}
		return applySign(d, mm/60.0+ss/3600.0), true
	}

	if m := dmRe.FindStringSubmatch(s); m != nil {
		d, errD := strconv.ParseFloat(m[1], 64)
		mm, errM := strconv.ParseFloat(m[2], 64)
		if errD != nil || errM != nil {
			return 0, false
		}
		return applySign(d, mm/60.0), true
	}

	return 0, false
}

// applySign folds the fractional part into the degree value, preserving the
// sign of the degrees for southern/western coordinates.
func applySign(deg, frac float64) float64 {
	if deg < 0 {
		return -(-deg + frac)
	}
	return deg + frac
}
