package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract company, position, location and salary from a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addInputFlags(extractCmd, false)
}

func extract(cmd *cobra.Command) {
	env, err := setup(cmd)
	if err != nil {
		log.Fatal(err)
	}

	jobPath, _ := cmd.Flags().GetString("job")
	job, err := readInput(jobPath, cmd.InOrStdin())
	if err != nil {
		env.logger.Fatal("reading job description", zap.Error(err))
	}

	ctx, cancel := env.operation()
	defer cancel()

	details, err := env.service.ExtractJobDetails(ctx, job)
	if err != nil {
		env.logger.Fatal("extracting job details", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), details); err != nil {
		env.logger.Fatal("printing result", zap.Error(err))
	}
}
