package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/resultscope/internal/analysis"
)

// Options selects what to read from multi-part containers.
type Options struct {
	// SheetName picks an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet used when SheetName is empty.
	SheetIndex int
}

// Parser turns a file's bytes into a grid of text cells.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte, opt Options) (analysis.Grid, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile reads path and decodes it with the first parser that accepts its name.
func ParseFile(path string, opt Options) (analysis.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseBytes(filepath.Base(path), data, opt)
}

// ParseBytes decodes content using the parser registered for name's extension.
func ParseBytes(name string, content []byte, opt Options) (analysis.Grid, error) {
	for _, p := range registry {
		if p.CanParse(name) {
			return p.Parse(content, opt)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

func init() {
	Register(csvParser{})
	Register(xlsxParser{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported file type; upload a CSV or Excel (.xlsx) file")

// ErrSheet indicates the requested worksheet does not exist.
var ErrSheet = errors.New("sheet not found")

// ErrDecode indicates the file content could not be decoded as its format.
var ErrDecode = errors.New("malformed file")
