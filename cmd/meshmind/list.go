package main

import (
	"fmt"
	"text/tabwriter"

	"meshmind/internal/artifacts"
	"meshmind/internal/config"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored worksheet PDFs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.Load().PDFStorageDir
		if d, _ := cmd.Flags().GetString("storage-dir"); d != "" {
			dir = d
		}
		store, err := artifacts.New(dir)
		if err != nil {
			return err
		}
		recs, err := store.List()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSIZE\tCREATED")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Title, r.SizeBytes, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
