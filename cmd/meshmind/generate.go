package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Run the full pipeline and store the worksheet PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		req, err := requestFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		ws, err := a.Service.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d pages\t%d bytes\n", ws.Artifact.ID, ws.Path, ws.Artifact.Pages, ws.Artifact.SizeBytes)
		return nil
	},
}

func init() {
	addRequestFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}
