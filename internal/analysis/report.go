package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Markdown renders a compact report of the analysis.
func (a *Analysis) Markdown(name string) string {
	var b strings.Builder
	b.WriteString("[RESULTS SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d", a.RowCount))
	if a.Dropped > 0 {
		b.WriteString(fmt.Sprintf(" (%d without subject dropped)", a.Dropped))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Subjects: %d\n", len(a.Subjects)))
	b.WriteString(fmt.Sprintf("Overall pass rate: %s\n", fmtRate(a.OverallPassRate)))
	if best, ok := a.Best(); ok {
		b.WriteString(fmt.Sprintf("Best subject: %s (%.1f%%)\n", best.Subject, best.PassRate))
	}

	if len(a.Columns) > 0 {
		b.WriteString("\n[DETECTED COLUMNS]\n")
		for _, r := range Roles() {
			if h, ok := a.Columns[r.String()]; ok {
				b.WriteString(fmt.Sprintf("- %s: %s\n", r, safeVal(h)))
			}
		}
	}

	if len(a.Subjects) > 0 {
		b.WriteString("\n[SUBJECTS]\n")
		for _, s := range a.Subjects {
			b.WriteString(fmt.Sprintf("- %s: %.1f%% (%s) — total %d, pass %d, fail %d; next year %s\n",
				safeVal(s.Subject), s.PassRate, Band(s.PassRate), s.Total, s.Pass, s.Fail, fmtRate(s.PredictedNextYear)))
			for _, y := range s.Years {
				b.WriteString(fmt.Sprintf("  • %d: %.1f%% (%d/%d)\n", y.Year, y.PassRate, y.Pass, y.Total))
			}
		}
	}

	g := a.TotalsByGender
	if g.Male.Pass+g.Male.Fail+g.Female.Pass+g.Female.Fail > 0 {
		b.WriteString("\n[GENDER]\n")
		b.WriteString(fmt.Sprintf("- male: pass %d, fail %d\n", g.Male.Pass, g.Male.Fail))
		b.WriteString(fmt.Sprintf("- female: pass %d, fail %d\n", g.Female.Pass, g.Female.Fail))
	}

	if len(a.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range a.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Table renders the subject summaries as a terminal table.
func (a *Analysis) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Subject", "Pass %", "Band", "Total", "Pass", "Fail", "M pass", "M fail", "F pass", "F fail", "Next year"})
	for _, s := range a.Subjects {
		t.AppendRow(table.Row{
			s.Subject, fmt.Sprintf("%.1f", s.PassRate), Band(s.PassRate), s.Total, s.Pass, s.Fail,
			s.MalePass, s.MaleFail, s.FemalePass, s.FemaleFail, fmtRate(s.PredictedNextYear),
		})
	}
	t.AppendFooter(table.Row{"Overall", fmtRate(a.OverallPassRate)})
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	return t.Render()
}

// WriteCSV writes one line per subject.
func (a *Analysis) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"subject", "passRate", "total", "pass", "fail", "malePass", "maleFail", "femalePass", "femaleFail", "predictedNextYear"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range a.Subjects {
		pred := ""
		if s.PredictedNextYear != nil {
			pred = strconv.FormatFloat(*s.PredictedNextYear, 'f', 1, 64)
		}
		rec := []string{
			s.Subject, strconv.FormatFloat(s.PassRate, 'f', 1, 64),
			strconv.Itoa(s.Total), strconv.Itoa(s.Pass), strconv.Itoa(s.Fail),
			strconv.Itoa(s.MalePass), strconv.Itoa(s.MaleFail),
			strconv.Itoa(s.FemalePass), strconv.Itoa(s.FemaleFail), pred,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Markdown renders preview insights with a head table.
func (in Insights) Markdown(name string) string {
	var b strings.Builder
	b.WriteString("[DATA QUALITY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	if in.TotalRows > in.Rows {
		b.WriteString(fmt.Sprintf("Rows: %d (previewing %d)\n", in.TotalRows, in.Rows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", in.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n", in.Columns))
	b.WriteString(fmt.Sprintf("Empty cells detected: %d\n", in.EmptyCells))

	b.WriteString("\n[DETECTED SUBJECTS]\n")
	if len(in.SampleSubjects) == 0 {
		b.WriteString("No subject column detected\n")
	} else {
		b.WriteString(strings.Join(in.SampleSubjects, ", "))
		b.WriteString("\n")
	}

	if len(in.Head) > 0 {
		b.WriteString("\n[HEAD]\n")
		t := table.NewWriter()
		hdr := table.Row{}
		for i, h := range in.Header {
			if strings.TrimSpace(h) == "" {
				h = fmt.Sprintf("Col %d", i+1)
			}
			hdr = append(hdr, h)
		}
		t.AppendHeader(hdr)
		for _, row := range in.Head {
			r := table.Row{}
			for _, c := range row {
				if len(c) > 40 {
					c = c[:37] + "..."
				}
				r = append(r, c)
			}
			t.AppendRow(r)
		}
		t.SetStyle(table.StyleLight)
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}

func fmtRate(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *r)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
