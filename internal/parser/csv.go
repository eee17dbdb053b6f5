package parser

import (
	"strings"

	"github.com/KaramelBytes/resultscope/internal/analysis"
)

// csvParser also accepts .txt, which is how text extracted from PDFs arrives.
type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

func (csvParser) Parse(content []byte, _ Options) (analysis.Grid, error) {
	return Tokenize(string(content)), nil
}

// Tokenize splits CSV text into rows of cells in a single pass.
// Quoted fields may hold commas and newlines, "" inside quotes is a literal
// quote, and '\r' outside quotes is dropped. A last row without a trailing
// newline is kept if it has any content.
func Tokenize(text string) analysis.Grid {
	var (
		rows     analysis.Grid
		row      []string
		field    strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		case '\r':
		default:
			field.WriteByte(c)
		}
	}
	if len(row) > 0 || field.Len() > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}
	return rows
}
