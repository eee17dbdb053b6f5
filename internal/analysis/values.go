package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	yearRe     = regexp.MustCompile(`\d{4}`)
	percentHdr = regexp.MustCompile(`(?i)percent|%`)
)

// maxLadder lists assumed paper totals, ascending.
var maxLadder = []float64{50, 60, 75, 80, 100, 150, 200, 500, 600, 800, 1000, 1050, 1100, 1200}

// ParseNumber extracts a number from free-form cell text such as "1,234", " 45 " or "78%".
// It returns false if the text has no digit or does not parse to a finite value.
func ParseNumber(s string) (float64, bool) {
	raw := strings.ReplaceAll(s, ",", "")
	raw = strings.Join(strings.Fields(raw), "")
	if !hasDigit.MatchString(raw) {
		return 0, false
	}
	raw = nonNumeric.ReplaceAllString(raw, "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsPercent reports whether a score cell should be read as a percentage,
// either because its column header says so or because the cell carries a '%'.
func IsPercent(header, cell string) bool {
	return percentHdr.MatchString(header) || strings.Contains(cell, "%")
}

// PercentOf converts a value already known to be a percentage. Values <= 1 are
// treated as fractions.
func PercentOf(x float64) float64 {
	if x <= 1 {
		return x * 100
	}
	return x
}

// GuessMaxForScore picks an assumed maximum for a bare score: the smallest
// ladder value that is >= score, else score rounded up to the next hundred.
// A 95 out of 1000 reads as 95/100; that approximation is accepted.
func GuessMaxForScore(score float64) float64 {
	for _, m := range maxLadder {
		if m >= score {
			return m
		}
	}
	return math.Ceil(score/100) * 100
}

// ExtractYear returns the first 4-digit run in s.
func ExtractYear(s string) (int, bool) {
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// PassState is the tri-state outcome of a result cell.
type PassState int

const (
	Undetermined PassState = iota
	Passed
	Failed
)

func (p PassState) String() string {
	switch p {
	case Passed:
		return "pass"
	case Failed:
		return "fail"
	default:
		return "undetermined"
	}
}

// ParsePassFail maps result tokens like "Passed" or "0" to a PassState.
func ParsePassFail(s string) PassState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass", "passed", "p", "1", "true", "yes":
		return Passed
	case "fail", "failed", "f", "0", "false", "no":
		return Failed
	}
	return Undetermined
}

// round1 rounds to one decimal place, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// rate returns pass/total as a one-decimal percentage.
func rate(pass, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(pass)/float64(total)*1000) / 10
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
