package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// ErrNoRows is returned when a grid has no rows at all.
var ErrNoRows = errors.New("no rows detected")

// Grid is a header row followed by data rows of raw cell text.
// Data rows may be shorter or longer than the header.
type Grid [][]string

// Header returns the first row, or nil.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// Data returns every row after the header.
func (g Grid) Data() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// PassFail is a pass/fail pair.
type PassFail struct {
	Pass int `json:"pass" yaml:"pass"`
	Fail int `json:"fail" yaml:"fail"`
}

// GenderTotals aggregates pass/fail by gender across subjects.
type GenderTotals struct {
	Male   PassFail `json:"male" yaml:"male"`
	Female PassFail `json:"female" yaml:"female"`
}

// YearStat is the per-year slice of one subject.
type YearStat struct {
	Year     int     `json:"year" yaml:"year"`
	Total    int     `json:"total" yaml:"total"`
	Pass     int     `json:"pass" yaml:"pass"`
	PassRate float64 `json:"passRate" yaml:"passRate"`
}

// SubjectSummary is the finalized statistics for one subject.
type SubjectSummary struct {
	Subject           string     `json:"subject" yaml:"subject"`
	PassRate          float64    `json:"passRate" yaml:"passRate"`
	Total             int        `json:"total" yaml:"total"`
	Pass              int        `json:"pass" yaml:"pass"`
	Fail              int        `json:"fail" yaml:"fail"`
	MalePass          int        `json:"malePass" yaml:"malePass"`
	MaleFail          int        `json:"maleFail" yaml:"maleFail"`
	FemalePass        int        `json:"femalePass" yaml:"femalePass"`
	FemaleFail        int        `json:"femaleFail" yaml:"femaleFail"`
	PredictedNextYear *float64   `json:"predictedNextYear" yaml:"predictedNextYear"`
	Years             []YearStat `json:"years,omitempty" yaml:"years,omitempty"`
}

// Analysis is the result of one pipeline run.
type Analysis struct {
	Subjects        []SubjectSummary `json:"subjects" yaml:"subjects"`
	OverallPassRate *float64         `json:"overallPassRate" yaml:"overallPassRate"`
	TotalsByGender  GenderTotals     `json:"totalsByGender" yaml:"totalsByGender"`
	// RowCount is the number of data rows read, including dropped ones.
	RowCount int `json:"rowCount" yaml:"rowCount"`
	// Dropped counts rows discarded for lacking a subject.
	Dropped int `json:"dropped" yaml:"dropped"`
	// Columns maps detected roles to their header text.
	Columns map[string]string `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Warnings carries non-fatal notes about the input.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Analyze runs the full pipeline over a grid: column inference, row
// normalization, aggregation and trend prediction.
func Analyze(grid Grid, opt Options) (*Analysis, error) {
	if len(grid) == 0 {
		return nil, ErrNoRows
	}
	header := grid.Header()
	cols := InferColumns(header)
	log.Debug().Interface("columns", cols.Detected(header)).Msg("inferred column roles")

	data := grid.Data()
	limit := len(data)
	if opt.MaxRows > 0 && opt.MaxRows < limit {
		limit = opt.MaxRows
	}
	records := make([]Record, 0, limit)
	dropped := 0
	for _, row := range data[:limit] {
		rec, ok := NormalizeRow(row, cols, header, opt)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	log.Debug().Int("rows", limit).Int("dropped", dropped).Msg("normalized rows")

	a := Aggregate(records)
	a.RowCount = len(data)
	a.Dropped = dropped
	a.Columns = cols.Detected(header)
	if !cols.Has(RoleSubject) {
		a.Warnings = append(a.Warnings, "no subject column detected; every row was dropped")
	}
	if limit < len(data) {
		a.Warnings = append(a.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", limit, len(data)))
	}
	return a, nil
}

type yearAcc struct {
	total, pass int
}

type subjectAcc struct {
	name                   string
	total, pass, fail      int
	malePass, maleFail     int
	femalePass, femaleFail int
	years                  map[int]*yearAcc
}

// Aggregate folds records into per-subject statistics. The accumulator map
// lives only for the duration of the call.
func Aggregate(records []Record) *Analysis {
	accs := map[string]*subjectAcc{}
	var order []*subjectAcc
	for _, r := range records {
		acc := accs[r.Subject]
		if acc == nil {
			acc = &subjectAcc{name: r.Subject, years: map[int]*yearAcc{}}
			accs[r.Subject] = acc
			order = append(order, acc)
		}
		acc.total++
		switch r.Pass {
		case Passed:
			acc.pass++
		case Failed:
			acc.fail++
		}
		if r.Pass != Undetermined {
			switch r.Gender {
			case GenderMale:
				if r.Pass == Passed {
					acc.malePass++
				} else {
					acc.maleFail++
				}
			case GenderFemale:
				if r.Pass == Passed {
					acc.femalePass++
				} else {
					acc.femaleFail++
				}
			}
		}
		if r.HasYear {
			y := acc.years[r.Year]
			if y == nil {
				y = &yearAcc{}
				acc.years[r.Year] = y
			}
			y.total++
			if r.Pass == Passed {
				y.pass++
			}
		}
	}

	a := &Analysis{Subjects: make([]SubjectSummary, 0, len(order))}
	var pass, total int
	for _, acc := range order {
		s := acc.finalize()
		a.Subjects = append(a.Subjects, s)
		pass += s.Pass
		total += s.Total
		a.TotalsByGender.Male.Pass += s.MalePass
		a.TotalsByGender.Male.Fail += s.MaleFail
		a.TotalsByGender.Female.Pass += s.FemalePass
		a.TotalsByGender.Female.Fail += s.FemaleFail
	}
	sort.SliceStable(a.Subjects, func(i, j int) bool {
		return a.Subjects[i].PassRate > a.Subjects[j].PassRate
	})
	if total > 0 {
		r := rate(pass, total)
		a.OverallPassRate = &r
	}
	return a
}

func (acc *subjectAcc) finalize() SubjectSummary {
	s := SubjectSummary{
		Subject:    acc.name,
		PassRate:   rate(acc.pass, acc.total),
		Total:      acc.total,
		Pass:       acc.pass,
		Fail:       acc.fail,
		MalePass:   acc.malePass,
		MaleFail:   acc.maleFail,
		FemalePass: acc.femalePass,
		FemaleFail: acc.femaleFail,
	}
	for y, ya := range acc.years {
		s.Years = append(s.Years, YearStat{Year: y, Total: ya.total, Pass: ya.pass, PassRate: rate(ya.pass, ya.total)})
	}
	sort.Slice(s.Years, func(i, j int) bool { return s.Years[i].Year < s.Years[j].Year })
	s.PredictedNextYear = PredictNextYear(s.Years)
	return s
}

// PredictNextYear extrapolates the pass rate one year past the latest two
// years in the series. It returns nil with fewer than two distinct years.
func PredictNextYear(years []YearStat) *float64 {
	if len(years) < 2 {
		return nil
	}
	sorted := make([]YearStat, len(years))
	copy(sorted, years)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
	prev, last := sorted[len(sorted)-2], sorted[len(sorted)-1]
	if prev.Year == last.Year {
		return nil
	}
	lastRate := round1(last.PassRate)
	slope := lastRate - round1(prev.PassRate)
	p := clamp(round1(lastRate+slope), 0, 100)
	return &p
}
