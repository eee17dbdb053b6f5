package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSubject(t *testing.T, a *Analysis, name string) SubjectSummary {
	t.Helper()
	for _, s := range a.Subjects {
		if s.Subject == name {
			return s
		}
	}
	t.Fatalf("subject %q not found", name)
	return SubjectSummary{}
}

func TestAnalyzeTrendWithMaxColumn(t *testing.T) {
	grid := Grid{
		{"Subject", "Year", "Marks", "Max Marks", "Result"},
		{"Math", "2023", "45", "100", "Fail"},
		{"Math", "2023", "55", "100", "Pass"},
		{"Math", "2024", "80", "100", "Pass"},
		{"Math", "2024", "90", "100", "Pass"},
	}
	a, err := Analyze(grid, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, a.Subjects, 1)

	m := a.Subjects[0]
	assert.Equal(t, "Math", m.Subject)
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 3, m.Pass)
	assert.Equal(t, 1, m.Fail)
	assert.Equal(t, 75.0, m.PassRate)
	require.Len(t, m.Years, 2)
	assert.Equal(t, YearStat{Year: 2023, Total: 2, Pass: 1, PassRate: 50}, m.Years[0])
	assert.Equal(t, YearStat{Year: 2024, Total: 2, Pass: 2, PassRate: 100}, m.Years[1])
	require.NotNil(t, m.PredictedNextYear)
	assert.Equal(t, 100.0, *m.PredictedNextYear)

	require.NotNil(t, a.OverallPassRate)
	assert.Equal(t, 75.0, *a.OverallPassRate)
	assert.Equal(t, 4, a.RowCount)
	assert.Equal(t, "Max Marks", a.Columns["max"])
}

func TestAnalyzeTrendWithInlineScores(t *testing.T) {
	grid := Grid{
		{"Subject", "Year", "Marks"},
		{"Math", "2023", "25/100"},
		{"Math", "2023", "55/100"},
		{"Math", "2024", "80/100"},
		{"Math", "2024", "90/100"},
	}
	a, err := Analyze(grid, DefaultOptions())
	require.NoError(t, err)
	m := findSubject(t, a, "Math")
	assert.Equal(t, 75.0, m.PassRate)
	require.NotNil(t, m.PredictedNextYear)
	assert.Equal(t, 100.0, *m.PredictedNextYear)
}

func TestAggregateOrdering(t *testing.T) {
	var recs []Record
	add := func(subject string, pass, fail int) {
		for i := 0; i < pass; i++ {
			recs = append(recs, Record{Subject: subject, Pass: Passed})
		}
		for i := 0; i < fail; i++ {
			recs = append(recs, Record{Subject: subject, Pass: Failed})
		}
	}
	add("Math", 3, 2)
	add("Science", 9, 1)
	add("English", 9, 1)

	a := Aggregate(recs)
	var names []string
	for _, s := range a.Subjects {
		names = append(names, s.Subject)
	}
	assert.Equal(t, []string{"Science", "English", "Math"}, names)
	assert.Equal(t, 60.0, findSubject(t, a, "Math").PassRate)
}

func TestAnalyzeDropsRowsWithoutSubject(t *testing.T) {
	grid := Grid{
		{"Subject", "Result"},
		{"Math", "Pass"},
		{"", "Fail"},
		{"   ", "Fail"},
	}
	a, err := Analyze(grid, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, a.Subjects, 1)
	assert.Equal(t, 1, a.Subjects[0].Total)
	assert.Equal(t, 2, a.Dropped)
	assert.Equal(t, 3, a.RowCount)
	assert.Equal(t, 100.0, *a.OverallPassRate)
}

func TestAnalyzeNoSubjectColumn(t *testing.T) {
	a, err := Analyze(Grid{{"Course", "Result"}, {"Math", "Pass"}}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, a.Subjects)
	assert.Nil(t, a.OverallPassRate)
	assert.NotEmpty(t, a.Warnings)
}

func TestAnalyzeEmptyGrid(t *testing.T) {
	_, err := Analyze(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoRows)

	a, err := Analyze(Grid{{"Subject", "Result"}}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, a.Subjects)
	assert.Nil(t, a.OverallPassRate)
}

func TestAnalyzeMaxRows(t *testing.T) {
	grid := Grid{{"Subject", "Result"}, {"Math", "Pass"}, {"Math", "Fail"}, {"Math", "Fail"}}
	opt := DefaultOptions()
	opt.MaxRows = 1
	a, err := Analyze(grid, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Subjects[0].Total)
	assert.Contains(t, a.Warnings, "processed only 1/3 rows due to MaxRows")
}

func TestAggregateUndeterminedCountsInTotal(t *testing.T) {
	a := Aggregate([]Record{
		{Subject: "Math", Pass: Passed, Gender: GenderMale},
		{Subject: "Math", Pass: Failed, Gender: GenderFemale},
		{Subject: "Math", Pass: Undetermined, Gender: GenderMale},
	})
	m := a.Subjects[0]
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 1, m.Pass)
	assert.Equal(t, 1, m.Fail)
	assert.Equal(t, 33.3, m.PassRate)
	assert.Equal(t, 1, m.MalePass)
	assert.Equal(t, 0, m.MaleFail)
	assert.Equal(t, 1, m.FemaleFail)
	assert.Equal(t, GenderTotals{Male: PassFail{Pass: 1}, Female: PassFail{Fail: 1}}, a.TotalsByGender)
}

func TestAggregateSingleYearHasNoPrediction(t *testing.T) {
	a := Aggregate([]Record{
		{Subject: "Math", Pass: Passed, Year: 2024, HasYear: true},
		{Subject: "Math", Pass: Failed},
	})
	m := a.Subjects[0]
	require.Len(t, m.Years, 1)
	assert.Nil(t, m.PredictedNextYear)
}

func TestPredictNextYear(t *testing.T) {
	cases := []struct {
		name  string
		years []YearStat
		want  *float64
	}{
		{"none", nil, nil},
		{"one", []YearStat{{Year: 2024, PassRate: 80}}, nil},
		{"rising", []YearStat{{Year: 2022, PassRate: 60}, {Year: 2023, PassRate: 70}}, ptr(80)},
		{"unsorted", []YearStat{{Year: 2023, PassRate: 70}, {Year: 2021, PassRate: 10}, {Year: 2022, PassRate: 60}}, ptr(80)},
		{"clamped low", []YearStat{{Year: 2022, PassRate: 80}, {Year: 2023, PassRate: 20}}, ptr(0)},
		{"clamped high", []YearStat{{Year: 2022, PassRate: 50}, {Year: 2023, PassRate: 90}}, ptr(100)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PredictNextYear(c.years)
			if c.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *c.want, *got, 1e-9)
		})
	}
}

func TestAggregateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	subjects := []string{"Math", "Physics", "Urdu", "English"}
	for iter := 0; iter < 50; iter++ {
		n := rng.Intn(200)
		recs := make([]Record, 0, n)
		for i := 0; i < n; i++ {
			r := Record{
				Subject: subjects[rng.Intn(len(subjects))],
				Pass:    PassState(rng.Intn(3)),
				Gender:  Gender(rng.Intn(3)),
			}
			if rng.Intn(4) > 0 {
				r.Year, r.HasYear = 2018+rng.Intn(6), true
			}
			recs = append(recs, r)
		}
		a := Aggregate(recs)
		total := 0
		for i, s := range a.Subjects {
			total += s.Total
			assert.LessOrEqual(t, s.Pass+s.Fail, s.Total)
			assert.GreaterOrEqual(t, s.PassRate, 0.0)
			assert.LessOrEqual(t, s.PassRate, 100.0)
			assert.Equal(t, rate(s.Pass, s.Total), s.PassRate)
			assert.LessOrEqual(t, s.MalePass+s.MaleFail+s.FemalePass+s.FemaleFail, s.Pass+s.Fail)
			if i > 0 {
				assert.GreaterOrEqual(t, a.Subjects[i-1].PassRate, s.PassRate)
			}
			if s.PredictedNextYear != nil {
				assert.GreaterOrEqual(t, *s.PredictedNextYear, 0.0)
				assert.LessOrEqual(t, *s.PredictedNextYear, 100.0)
			}
			for j := 1; j < len(s.Years); j++ {
				assert.Less(t, s.Years[j-1].Year, s.Years[j].Year)
			}
		}
		assert.Equal(t, n, total)
		if n == 0 {
			assert.Nil(t, a.OverallPassRate)
		}
	}
}

func ptr(f float64) *float64 { return &f }
