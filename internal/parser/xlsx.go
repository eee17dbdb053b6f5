package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/xuri/excelize/v2"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Parse reads one sheet of the workbook. Trailing empty cells are trimmed by
// excelize; downstream code treats missing cells as empty.
func (xlsxParser) Parse(content []byte, opt Options) (analysis.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open xlsx: %w: no sheets found", ErrDecode)
	}
	sheet, err := pickSheet(sheets, opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return analysis.Grid(rows), nil
}

func pickSheet(sheets []string, opt Options) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("%w: '%s'.\nAvailable sheets: %s", ErrSheet, opt.SheetName, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("%w: index %d out of range (workbook has %d sheets)", ErrSheet, idx, len(sheets))
	}
	return sheets[idx-1], nil
}
