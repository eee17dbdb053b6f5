package analysis

import (
	"strings"
)

// Options controls the ingestion pipeline.
type Options struct {
	// MaxRows limits data rows processed; 0 means unlimited.
	MaxRows int
	// PreviewRows is how many data rows preview insights inspect.
	PreviewRows int
	// PassThreshold is the percentage at or above which an ungraded row passes.
	PassThreshold float64
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		MaxRows:       0,
		PreviewRows:   50,
		PassThreshold: 33,
	}
}

// Record is one canonical student row.
type Record struct {
	Subject  string
	Year     int
	HasYear  bool
	Gender   Gender
	Pass     PassState
	Score    float64 // percentage, 0-100
	HasScore bool
}

// NormalizeRow turns a raw data row into a Record. It returns false when the
// row has no subject; nothing else causes a row to be dropped.
func NormalizeRow(row []string, cols ColumnMap, header []string, opt Options) (Record, bool) {
	subject := strings.TrimSpace(cols.cell(row, RoleSubject))
	if subject == "" {
		return Record{}, false
	}
	rec := Record{Subject: subject}

	if y, ok := ExtractYear(cols.cell(row, RoleYear)); ok {
		rec.Year, rec.HasYear = y, true
	}

	rec.Gender = ParseGender(cols.cell(row, RoleGender))
	if rec.Gender == GenderUnknown && cols.Has(RoleName) {
		rec.Gender = InferGender(cols.cell(row, RoleName))
	}

	rec.Pass = ParsePassFail(cols.cell(row, RoleResult))

	if cols.Has(RoleScore) {
		scoreHeader := ""
		if i := cols.Index(RoleScore); i < len(header) {
			scoreHeader = header[i]
		}
		if pct, ok := scorePercent(cols.cell(row, RoleScore), scoreHeader, cols.cell(row, RoleMax)); ok {
			rec.Score, rec.HasScore = pct, true
		}
	}

	if rec.Pass == Undetermined && rec.HasScore {
		if rec.Score >= opt.PassThreshold {
			rec.Pass = Passed
		} else {
			rec.Pass = Failed
		}
	}
	return rec, true
}

// scorePercent derives a 0-100 percentage from a score cell. The maximum comes
// from, in order: an inline "obtained/max" cell, the max column, a guess.
func scorePercent(cell, header, maxCell string) (float64, bool) {
	if IsPercent(header, cell) {
		x, ok := ParseNumber(cell)
		if !ok {
			return 0, false
		}
		return clamp(PercentOf(x), 0, 100), true
	}

	obtained, inlineMax := cell, ""
	if i := strings.Index(cell, "/"); i >= 0 {
		obtained, inlineMax = cell[:i], cell[i+1:]
	}
	x, ok := ParseNumber(obtained)
	if !ok {
		return 0, false
	}
	var outOf float64
	if m, ok := ParseNumber(inlineMax); ok && m > 0 {
		outOf = m
	} else if m, ok := ParseNumber(maxCell); ok && m > 0 {
		outOf = m
	} else {
		outOf = GuessMaxForScore(x)
	}
	if outOf <= 0 {
		return 0, false
	}
	return clamp(x/outOf*100, 0, 100), true
}
