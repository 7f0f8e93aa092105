package main

import (
	"fmt"

	"meshmind/internal/generation"
	"meshmind/internal/models"
	"meshmind/internal/util"
	"meshmind/internal/worksheet"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft <prompt>",
	Short: "Generate worksheet content as JSON without composing a PDF",
	Long: `draft runs curriculum grounding and the language model call, then writes
the structured content to a JSON file. The file can be edited and rendered
later with "meshmind compose".`,
	Args: cobra.ExactArgs(1),
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
		req, err = a.Service.Prepare(req)
		if err != nil {
			return err
		}
		grounding, err := a.Service.AssembleContext(req.Prompt, req.Subject, req.Grade)
		if err != nil {
			return err
		}
		c, err := a.Generator.Generate(cmd.Context(), generation.Input{
			Prompt:    req.Prompt,
			Subject:   req.Subject,
			Grade:     req.Grade,
			Language:  req.Language,
			Grounding: grounding,
		}).Unwrap()
		if err != nil {
			return fmt.Errorf("%w: %v", worksheet.ErrGenerationFailed, err)
		}

		out, _ := cmd.Flags().GetString("out")
		if err := util.WriteJSONAtomic(out, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d questions, %d answers)\n", out, len(c.PracticeQuestions), len(c.AnswerKey))
		return nil
	},
}

func requestFromFlags(cmd *cobra.Command, prompt string) (models.GenerationRequest, error) {
	subject, _ := cmd.Flags().GetString("subject")
	grade, _ := cmd.Flags().GetString("grade")
	language, _ := cmd.Flags().GetString("language")
	answers, err := cmd.Flags().GetBool("answers")
	if err != nil {
		return models.GenerationRequest{}, err
	}
	return models.GenerationRequest{
		Prompt:         prompt,
		Subject:        subject,
		Grade:          grade,
		Language:       language,
		IncludeAnswers: answers,
	}, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject", "math", "math or science")
	cmd.Flags().String("grade", "", "grade level, e.g. K, 3, 4th")
	cmd.Flags().String("language", "", "worksheet language (default: MESHMIND_DEFAULT_LANGUAGE)")
	cmd.Flags().Bool("answers", true, "include the answer key")
	_ = cmd.MarkFlagRequired("grade")
}

func init() {
	addRequestFlags(draftCmd)
	draftCmd.Flags().String("out", "worksheet.json", "content JSON output path")
	rootCmd.AddCommand(draftCmd)
}
