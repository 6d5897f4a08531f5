package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Rewrite a resume for a job description and report the match score",
	Run: func(cmd *cobra.Command, _ []string) {
		tailorResume(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tailorCmd)
	addInputFlags(tailorCmd, true)
	tailorCmd.Flags().StringP("output", "o", "", "write the tailored resume markdown to this file instead of printing the full result")
}

func tailorResume(cmd *cobra.Command) {
	env, err := setup(cmd)
	if err != nil {
		log.Fatal(err)
	}

	resume, job, err := readResumeAndJob(cmd)
	if err != nil {
		env.logger.Fatal("reading inputs", zap.Error(err))
	}

	ctx, cancel := env.operation()
	defer cancel()

	result, err := env.service.GenerateTailoredResume(ctx, resume, job)
	if err != nil {
		env.logger.Fatal("tailoring resume", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if err := printJSON(cmd.OutOrStdout(), result); err != nil {
			env.logger.Fatal("printing result", zap.Error(err))
		}
		return
	}

	if err := os.WriteFile(output, []byte(result.TailoredContent), 0o644); err != nil {
		env.logger.Fatal("writing tailored resume", zap.String("filename", output), zap.Error(err))
	}

	env.logger.Info("tailored resume written",
		zap.String("filename", output),
		zap.Int("original_score", result.OriginalScore),
		zap.Int("score", result.Score),
		zap.Strings("missing_keywords", result.MissingKeywords),
	)
}
