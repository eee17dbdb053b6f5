package cmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/resultscope/internal/utils"
)

var (
	histLimit int
	histJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently analyzed uploads",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			fmt.Println("(history disabled)")
			return nil
		}
		defer store.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		entries, err := store.List(ctx, histLimit)
		if err != nil {
			return err
		}
		if histJSON {
			b, err := utils.PrettyJSON(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no uploads)")
			return nil
		}
		t := table.NewWriter()
		t.AppendHeader(table.Row{"ID", "File", "Rows", "Uploaded"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.ID, e.FileName, e.RowCount, e.UploadedAt.Local().Format("2006-01-02 15:04")})
		}
		t.SetStyle(table.StyleLight)
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&histLimit, "limit", "n", 20, "maximum entries to show (0 = all)")
	historyCmd.Flags().BoolVar(&histJSON, "json", false, "print entries as JSON")
}
