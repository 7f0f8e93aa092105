package main

import (
	"fmt"
	"os"
	"time"

	"meshmind/internal/content"

	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose <content.json>",
	Short: "Render a content JSON file into a worksheet PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		c, err := content.Parse(string(raw))
		if err != nil {
			return err
		}
		req, err := requestFromFlags(cmd, "")
		if err != nil {
			return err
		}

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ws, err := a.Service.ComposeAndSave(req, c, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d pages\n", ws.Artifact.ID, ws.Path, ws.Artifact.Pages)
		return nil
	},
}

func init() {
	addRequestFlags(composeCmd)
	rootCmd.AddCommand(composeCmd)
}
