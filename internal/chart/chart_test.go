package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/resultscope/internal/analysis"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sample(t *testing.T) *analysis.Analysis {
	t.Helper()
	a, err := analysis.Analyze(analysis.Grid{
		{"Subject", "Year", "Result"},
		{"Math", "2023", "Pass"},
		{"Math", "2024", "Fail"},
		{"Urdu", "2024", "Pass"},
		{"Physics", "2022", "Fail"},
	}, analysis.DefaultOptions())
	require.NoError(t, err)
	return a
}

func TestPassRates(t *testing.T) {
	b, err := PassRates(sample(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestPassRatesEmpty(t *testing.T) {
	_, err := PassRates(&analysis.Analysis{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = PassRates(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTrend(t *testing.T) {
	a := sample(t)
	var math analysis.SubjectSummary
	for _, s := range a.Subjects {
		if s.Subject == "Math" {
			math = s
		}
	}
	require.NotNil(t, math.PredictedNextYear)

	b, err := Trend(math)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = Trend(analysis.SubjectSummary{Subject: "Art"})
	assert.ErrorIs(t, err, ErrNoData)
}
