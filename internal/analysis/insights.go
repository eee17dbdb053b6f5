package analysis

import (
	"regexp"
	"strings"
)

var subjectHdr = regexp.MustCompile(`(?i)subject`)

const maxSampleSubjects = 4

// Insights is a quick data-quality look at the top of a grid.
type Insights struct {
	Rows           int        `json:"rows" yaml:"rows"`
	TotalRows      int        `json:"totalRows" yaml:"totalRows"`
	Columns        int        `json:"columns" yaml:"columns"`
	EmptyCells     int        `json:"emptyCells" yaml:"emptyCells"`
	SampleSubjects []string   `json:"sampleSubjects" yaml:"sampleSubjects"`
	Header         []string   `json:"header" yaml:"header"`
	Head           [][]string `json:"head,omitempty" yaml:"head,omitempty"`
}

// Preview inspects the header and the first limit data rows. A limit <= 0
// inspects every row.
func Preview(grid Grid, limit int) Insights {
	header := grid.Header()
	data := grid.Data()
	if limit > 0 && limit < len(data) {
		data = data[:limit]
	}
	in := Insights{
		Rows:           len(data),
		TotalRows:      len(grid.Data()),
		Columns:        len(header),
		SampleSubjects: []string{},
		Header:         header,
		Head:           data,
	}
	sIdx := -1
	for i, h := range header {
		if subjectHdr.MatchString(h) {
			sIdx = i
			break
		}
	}
	seen := map[string]bool{}
	for _, row := range data {
		for _, c := range row {
			if c == "" {
				in.EmptyCells++
			}
		}
		if sIdx < 0 || sIdx >= len(row) || len(in.SampleSubjects) >= maxSampleSubjects {
			continue
		}
		if s := row[sIdx]; strings.TrimSpace(s) != "" && !seen[s] {
			seen[s] = true
			in.SampleSubjects = append(in.SampleSubjects, s)
		}
	}
	return in
}

// Band classifies a pass rate as high (>= 80), medium (70-80) or low (< 70).
func Band(rate float64) string {
	switch {
	case rate >= 80:
		return "high"
	case rate >= 70:
		return "medium"
	default:
		return "low"
	}
}

// FilterBand returns a copy of the analysis restricted to subjects in band.
// Overall and gender totals are left as computed over every subject.
func (a *Analysis) FilterBand(band string) *Analysis {
	band = strings.ToLower(strings.TrimSpace(band))
	out := *a
	if band == "" || band == "all" {
		return &out
	}
	out.Subjects = nil
	for _, s := range a.Subjects {
		if Band(s.PassRate) == band {
			out.Subjects = append(out.Subjects, s)
		}
	}
	return &out
}

// Best returns the subject with the highest pass rate, or false if there are none.
func (a *Analysis) Best() (SubjectSummary, bool) {
	if len(a.Subjects) == 0 {
		return SubjectSummary{}, false
	}
	return a.Subjects[0], true
}
