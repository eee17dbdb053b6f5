package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/KaramelBytes/resultscope/internal/chart"
	"github.com/KaramelBytes/resultscope/internal/parser"
	"github.com/KaramelBytes/resultscope/internal/utils"
)

var (
	chOutputPath string
	chSubject    string
	chBand       string
	chSheetName  string
	chSheetIndex int
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Render pass rates (or one subject's year trend) as a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		a, err := analyzeFile(path, pipelineOptions(), parser.Options{SheetName: chSheetName, SheetIndex: chSheetIndex})
		if err != nil {
			return err
		}

		var png []byte
		if chSubject != "" {
			s, ok := findSubject(a.Subjects, chSubject)
			if !ok {
				return fmt.Errorf("subject '%s' not found in %s", chSubject, filepath.Base(path))
			}
			png, err = chart.Trend(s)
		} else {
			png, err = chart.PassRates(a.FilterBand(chBand))
		}
		if err != nil {
			return err
		}

		out := chOutputPath
		if out == "" {
			base := filepath.Base(path)
			out = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
		}
		if err := utils.SafeWriteFile(out, png); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Printf("✓ Wrote chart to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chOutputPath, "output", "o", "", "PNG path (default: <file>.png in the working directory)")
	chartCmd.Flags().StringVar(&chSubject, "subject", "", "plot this subject's pass rate by year instead")
	chartCmd.Flags().StringVar(&chBand, "band", "", "only chart subjects in this band: high|medium|low")
	chartCmd.Flags().StringVar(&chSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	chartCmd.Flags().IntVar(&chSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// findSubject prefers an exact match; subjects are case-sensitive, so the
// case-insensitive match is only a fallback.
func findSubject(subjects []analysis.SubjectSummary, name string) (analysis.SubjectSummary, bool) {
	for _, s := range subjects {
		if s.Subject == name {
			return s, true
		}
	}
	for _, s := range subjects {
		if strings.EqualFold(s.Subject, name) {
			return s, true
		}
	}
	return analysis.SubjectSummary{}, false
}
