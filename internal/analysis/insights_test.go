package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	grid := Grid{
		{"Name", "Subject Name", "Marks"},
		{"Ali", "Math", "40"},
		{"Sara", "", "55"},
		{"Zain", "Physics", ""},
		{"Hina", "Math", "70"},
		{"Omar", "Urdu", "61"},
		{"Amna", "English", "88"},
		{"Bilal", "Chemistry", "90"},
	}
	in := Preview(grid, 0)
	assert.Equal(t, 7, in.Rows)
	assert.Equal(t, 7, in.TotalRows)
	assert.Equal(t, 3, in.Columns)
	assert.Equal(t, 2, in.EmptyCells)
	assert.Equal(t, []string{"Math", "Physics", "Urdu", "English"}, in.SampleSubjects)

	in = Preview(grid, 2)
	assert.Equal(t, 2, in.Rows)
	assert.Equal(t, 7, in.TotalRows)
	assert.Equal(t, 1, in.EmptyCells)
	assert.Equal(t, []string{"Math"}, in.SampleSubjects)
	assert.Len(t, in.Head, 2)
}

func TestPreviewWithoutSubject(t *testing.T) {
	in := Preview(Grid{{"Course", "Marks"}, {"Math", "40"}}, 50)
	assert.NotNil(t, in.SampleSubjects)
	assert.Empty(t, in.SampleSubjects)
	assert.Contains(t, in.Markdown("x.csv"), "No subject column detected")

	in = Preview(nil, 50)
	assert.Equal(t, 0, in.Rows)
	assert.Equal(t, 0, in.Columns)
}

func TestBand(t *testing.T) {
	assert.Equal(t, "high", Band(80))
	assert.Equal(t, "high", Band(100))
	assert.Equal(t, "medium", Band(79.9))
	assert.Equal(t, "medium", Band(70))
	assert.Equal(t, "low", Band(69.9))
	assert.Equal(t, "low", Band(0))
}

func TestFilterBandAndBest(t *testing.T) {
	a := Aggregate([]Record{
		{Subject: "Math", Pass: Passed},
		{Subject: "Math", Pass: Failed},
		{Subject: "Urdu", Pass: Passed},
	})
	best, ok := a.Best()
	require.True(t, ok)
	assert.Equal(t, "Urdu", best.Subject)

	low := a.FilterBand("LOW")
	require.Len(t, low.Subjects, 1)
	assert.Equal(t, "Math", low.Subjects[0].Subject)
	assert.Len(t, a.Subjects, 2)
	assert.Len(t, a.FilterBand("all").Subjects, 2)
	assert.Empty(t, a.FilterBand("medium").Subjects)

	_, ok = (&Analysis{}).Best()
	assert.False(t, ok)
}
