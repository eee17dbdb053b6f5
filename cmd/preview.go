package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/KaramelBytes/resultscope/internal/parser"
	"github.com/KaramelBytes/resultscope/internal/utils"
)

var (
	pvRows       int
	pvJSON       bool
	pvSheetName  string
	pvSheetIndex int
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show row/column counts, empty cells and sample subjects for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		grid, err := parser.ParseFile(path, parser.Options{SheetName: pvSheetName, SheetIndex: pvSheetIndex})
		if err != nil {
			return err
		}
		limit := pipelineOptions().PreviewRows
		if pvRows > 0 {
			limit = pvRows
		}
		in := analysis.Preview(grid, limit)
		if pvJSON {
			b, err := utils.PrettyJSON(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), in.Markdown(filepath.Base(path)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&pvRows, "rows", 0, "data rows to inspect (default from config)")
	previewCmd.Flags().BoolVar(&pvJSON, "json", false, "print insights as JSON")
	previewCmd.Flags().StringVar(&pvSheetName, "sheet-name", "", "XLSX: sheet name to preview")
	previewCmd.Flags().IntVar(&pvSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
