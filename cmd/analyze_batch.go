package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/resultscope/internal/parser"
	"github.com/KaramelBytes/resultscope/internal/utils"
)

var (
	abOutputDir     string
	abFormat        string
	abMaxRows       int
	abPassThreshold float64
	abSheetName     string
	abSheetIndex    int
	abBand          string
	abKeepGoing     bool
	abQuiet         bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/XLSX result sheets with progress",
	Long: `Analyze each matched file independently. Globs are expanded and duplicates
removed. With --output-dir every report is written next to the others; a name
collision gets a numeric suffix instead of overwriting.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}

		opt := pipelineOptions()
		if abMaxRows > 0 {
			opt.MaxRows = abMaxRows
		}
		if abPassThreshold > 0 {
			opt.PassThreshold = abPassThreshold
		}
		format, err := resolveFormat(abFormat)
		if err != nil {
			return err
		}
		popt := parser.Options{SheetName: abSheetName, SheetIndex: abSheetIndex}

		total := len(files)
		failed := 0
		for i, path := range files {
			if !abQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			a, err := analyzeFile(path, opt, popt)
			if err != nil {
				if !abKeepGoing {
					return err
				}
				failed++
				fmt.Printf("⚠ Skipped %s: %v\n", filepath.Base(path), err)
				continue
			}
			if err := recordUpload(cmd.Context(), filepath.Base(path), a.RowCount); err != nil && !abQuiet {
				fmt.Printf("⚠ Warning: history not recorded: %v\n", err)
			}
			out, err := render(a.FilterBand(abBand), format, filepath.Base(path))
			if err != nil {
				return err
			}

			if abOutputDir == "" {
				if !abQuiet {
					fmt.Fprintln(cmd.OutOrStdout(), string(out))
				}
				continue
			}
			outFile := batchOutputPath(abOutputDir, path, abSheetName, formatExt(format))
			if err := utils.SafeWriteFile(outFile, out); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !abQuiet {
				fmt.Printf("✓ Wrote %s\n", outFile)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abOutputDir, "output-dir", "d", "", "directory to write one report per file (default: print)")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "report format: markdown|table|json|yaml|csv (default from config)")
	analyzeBatchCmd.Flags().IntVar(&abMaxRows, "max-rows", 0, "maximum data rows to process per file (0 = unlimited)")
	analyzeBatchCmd.Flags().Float64Var(&abPassThreshold, "pass-threshold", 0, "percentage at or above which an ungraded row passes (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().StringVar(&abBand, "band", "", "only report subjects in this band: high|medium|low")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "continue with the next file when one fails")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}

// expandInputs resolves globs and literal paths, dropping duplicates.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// batchOutputPath picks <dir>/<base>[__sheet-<name>]<ext>, adding __2, __3...
// when the file already exists.
func batchOutputPath(dir, input, sheet, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if sheet != "" {
		stem += "__sheet-" + slug(sheet)
	}
	out := filepath.Join(dir, stem+ext)
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", stem, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	if out := strings.Trim(b.String(), "-"); out != "" {
		return out
	}
	return "sheet"
}
