package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/KaramelBytes/resultscope/internal/history"
	"github.com/KaramelBytes/resultscope/internal/parser"
	"github.com/KaramelBytes/resultscope/internal/utils"
)

var (
	anaOutputPath    string
	anaFormat        string
	anaMaxRows       int
	anaPassThreshold float64
	anaSheetName     string
	anaSheetIndex    int
	anaBand          string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV/XLSX result sheet and report pass rates per subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := pipelineOptions()
		if anaMaxRows > 0 {
			opt.MaxRows = anaMaxRows
		}
		if anaPassThreshold > 0 {
			opt.PassThreshold = anaPassThreshold
		}
		format, err := resolveFormat(anaFormat)
		if err != nil {
			return err
		}

		a, err := analyzeFile(path, opt, parser.Options{SheetName: anaSheetName, SheetIndex: anaSheetIndex})
		if err != nil {
			return err
		}
		if err := recordUpload(cmd.Context(), filepath.Base(path), a.RowCount); err != nil {
			fmt.Printf("⚠ Warning: history not recorded: %v\n", err)
		}

		out, err := render(a.FilterBand(anaBand), format, filepath.Base(path))
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: markdown|table|json|yaml|csv (default from config)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum data rows to process (0 = unlimited)")
	analyzeCmd.Flags().Float64Var(&anaPassThreshold, "pass-threshold", 0, "percentage at or above which an ungraded row passes (default from config)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().StringVar(&anaBand, "band", "", "only report subjects in this band: high|medium|low")
}

// analyzeFile parses path and runs the pipeline over it.
func analyzeFile(path string, opt analysis.Options, popt parser.Options) (*analysis.Analysis, error) {
	grid, err := parser.ParseFile(path, popt)
	if err != nil {
		return nil, err
	}
	a, err := analysis.Analyze(grid, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return a, nil
}

// recordUpload appends an upload to history. Files without data rows are not recorded.
func recordUpload(ctx context.Context, name string, rows int) error {
	if rows == 0 {
		return nil
	}
	store, err := openHistory()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := store.Append(ctx, history.Entry{FileName: name, RowCount: rows})
	if err != nil {
		return err
	}
	log.Debug().Str("id", e.ID).Str("file", name).Msg("upload recorded")
	return nil
}

var formats = []string{"markdown", "table", "json", "yaml", "csv"}

func resolveFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" && cfg != nil {
		f = strings.ToLower(cfg.DefaultFormat)
	}
	switch f {
	case "", "md":
		return "markdown", nil
	case "markdown", "table", "json", "yaml", "csv":
		return f, nil
	case "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use %s)", f, strings.Join(formats, "|"))
}

func formatExt(format string) string {
	switch format {
	case "markdown":
		return ".md"
	case "table":
		return ".txt"
	default:
		return "." + format
	}
}

// render serializes an analysis in the requested format.
func render(a *analysis.Analysis, format, name string) ([]byte, error) {
	switch format {
	case "markdown":
		return []byte(a.Markdown(name)), nil
	case "table":
		return []byte(a.Table()), nil
	case "json":
		return utils.PrettyJSON(a)
	case "yaml":
		b, err := yaml.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	case "csv":
		var buf bytes.Buffer
		if err := a.WriteCSV(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
