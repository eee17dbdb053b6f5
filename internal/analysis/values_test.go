package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"45", 45, true},
		{" 1,234.5 ", 1234.5, true},
		{"78%", 78, true},
		{"-3", -3, true},
		{"12 34", 1234, true},
		{"absent", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, c.in)
		}
	}
}

func TestPercentDetection(t *testing.T) {
	assert.True(t, IsPercent("Percentage", "72"))
	assert.True(t, IsPercent("Score (%)", "72"))
	assert.True(t, IsPercent("Marks", "72%"))
	assert.False(t, IsPercent("Marks", "72"))

	assert.Equal(t, 85.0, PercentOf(0.85))
	assert.Equal(t, 100.0, PercentOf(1))
	assert.Equal(t, 72.0, PercentOf(72))
}

func TestGuessMaxForScore(t *testing.T) {
	cases := map[float64]float64{
		0:    50,
		45:   50,
		50:   50,
		55:   60,
		76:   80,
		95:   100,
		140:  150,
		450:  500,
		1001: 1050,
		1200: 1200,
		1250: 1300,
		2001: 2100,
	}
	for score, want := range cases {
		assert.Equal(t, want, GuessMaxForScore(score), "score %v", score)
	}
}

func TestExtractYear(t *testing.T) {
	y, ok := ExtractYear("Session 2023-24")
	assert.True(t, ok)
	assert.Equal(t, 2023, y)

	y, ok = ExtractYear("FY2021")
	assert.True(t, ok)
	assert.Equal(t, 2021, y)

	_, ok = ExtractYear("23")
	assert.False(t, ok)
	_, ok = ExtractYear("")
	assert.False(t, ok)
}

func TestParsePassFail(t *testing.T) {
	for _, s := range []string{"pass", "Passed", " P ", "1", "TRUE", "yes"} {
		assert.Equal(t, Passed, ParsePassFail(s), s)
	}
	for _, s := range []string{"fail", "FAILED", "f", "0", "false", "No"} {
		assert.Equal(t, Failed, ParsePassFail(s), s)
	}
	for _, s := range []string{"", "absent", "compartment", "2"} {
		assert.Equal(t, Undetermined, ParsePassFail(s), s)
	}
}
