package main

import (
	"fmt"

	"meshmind/internal/curriculum"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context <subject> [grade]",
	Short: "Print the curriculum context assembled for a request",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("curriculum-dir")
		prompt, _ := cmd.Flags().GetString("prompt")
		list, _ := cmd.Flags().GetBool("list")
		snap, err := curriculum.NewStore(curriculum.Source(dir), curriculum.DefaultSubjects...).Snapshot()
		if err != nil {
			return err
		}
		if list {
			grades := snap.Grades(args[0])
			if len(grades) == 0 {
				return fmt.Errorf("no curriculum for subject %q", args[0])
			}
			for _, g := range grades {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		}
		if len(args) < 2 {
			return fmt.Errorf("a grade is required unless --list is set")
		}
		text := snap.Assemble(prompt, args[0], args[1])
		if text == "" {
			return fmt.Errorf("no curriculum for subject %q", args[0])
		}
		if kw := curriculum.ExtractKeywords(prompt); len(kw) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "keywords: %v\n", kw)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	contextCmd.Flags().String("prompt", "", "request text used to filter topics")
	contextCmd.Flags().Bool("list", false, "list the grades known for the subject")
	contextCmd.Flags().String("curriculum-dir", "", "curriculum directory (default: built-in data)")
	rootCmd.AddCommand(contextCmd)
}
