package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Generate likely interview questions with suggested answers",
	Run: func(cmd *cobra.Command, _ []string) {
		interview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
	addInputFlags(interviewCmd, true)
}

func interview(cmd *cobra.Command) {
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

	questions, err := env.service.GenerateInterviewQuestions(ctx, resume, job)
	if err != nil {
		env.logger.Fatal("generating interview questions", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), questions); err != nil {
		env.logger.Fatal("printing result", zap.Error(err))
	}
}
