package x32

import (
	"fmt"
	"strconv"
	"strings"
)

// Pan is carried on the wire as a linear float: 0.0 is hard left, 0.5 is
// center, 1.0 is hard right. Callers usually think in percentages
// (-100..+100) or in L/C/R notation ("L50", "C", "R75"); all three forms
// convert through the linear representation.

// PanFromLinear validates a wire-format pan value in [0.0, 1.0].
func PanFromLinear(v float64) (float32, error) {
	if v < 0 || v > 1 {
		return 0, &ValidationError{What: "pan linear value", Input: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return float32(v), nil
}

// PanFromPercent converts a percentage in [-100, +100] (negative is left)
// to the linear wire value.
func PanFromPercent(pct float64) (float32, error) {
	if pct < -100 || pct > 100 {
		return 0, &ValidationError{What: "pan percentage", Input: strconv.FormatFloat(pct, 'g', -1, 64)}
	}
	return float32((pct + 100) / 200), nil
}

// PanFromNotation converts L/C/R notation to the linear wire value. "C" is
// center; "L" and "R" take an optional magnitude 0-100, e.g. "L50" or "R75".
// A bare "L" or "R" means hard left or right.
func PanFromNotation(s string) (float32, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	if n == "" {
		return 0, &ValidationError{What: "pan notation", Input: s}
	}
	if n == "C" {
		return 0.5, nil
	}

	side := n[0]
	if side != 'L' && side != 'R' {
		return 0, &ValidationError{What: "pan notation", Input: s}
	}

	mag := 100.0
	if len(n) > 1 {
		v, err := strconv.ParseFloat(n[1:], 64)
		if err != nil || v < 0 || v > 100 {
			return 0, &ValidationError{What: "pan notation", Input: s}
		}
		mag = v
	}

	if side == 'L' {
		return PanFromPercent(-mag)
	}
	return PanFromPercent(mag)
}

// ParsePan accepts any of the three pan forms: L/C/R notation, a percentage
// with a trailing '%', or a bare linear value in [0.0, 1.0].
func ParsePan(s string) (float32, error) {
	n := strings.TrimSpace(s)
	if n == "" {
		return 0, &ValidationError{What: "pan", Input: s}
	}

	switch n[0] {
	case 'L', 'l', 'C', 'c', 'R', 'r':
		return PanFromNotation(n)
	}

	if strings.HasSuffix(n, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(n, "%"), 64)
		if err != nil {
			return 0, &ValidationError{What: "pan", Input: s}
		}
		return PanFromPercent(pct)
	}

	v, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0, &ValidationError{What: "pan", Input: s}
	}
	return PanFromLinear(v)
}

// PanToPercent converts the linear wire value back to a percentage.
func PanToPercent(lin float32) float64 {
	return float64(lin)*200 - 100
}

// PanToNotation formats the linear wire value as L/C/R notation.
func PanToNotation(lin float32) string {
	pct := PanToPercent(lin)
	switch {
	case pct == 0:
		return "C"
	case pct < 0:
		return fmt.Sprintf("L%.0f", -pct)
	default:
		return fmt.Sprintf("R%.0f", pct)
	}
}
