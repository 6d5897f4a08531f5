package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Calculate the embedding match score between a resume and a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	addInputFlags(scoreCmd, true)
}

func score(cmd *cobra.Command) {
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

	result := env.service.CalculateMatchScore(ctx, resume, job)
	env.logger.Info("match score calculated", zap.Int("score", result))

	if err := printJSON(cmd.OutOrStdout(), map[string]int{"score": result}); err != nil {
		env.logger.Fatal("printing result", zap.Error(err))
	}
}

// addInputFlags registers --job and, when withResume is set, --resume.
func addInputFlags(cmd *cobra.Command, withResume bool) {
	if withResume {
		cmd.Flags().StringP("resume", "r", "", "path to the resume text file ('-' for stdin)")
		cmd.MarkFlagRequired("resume")
	}
	cmd.Flags().String("job", "", "path to the job description text file ('-' for stdin)")
	cmd.MarkFlagRequired("job")
}

func readResumeAndJob(cmd *cobra.Command) (string, string, error) {
	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")

	if resumePath == "-" && jobPath == "-" {
		return "", "", errBothStdin
	}

	resume, err := readInput(resumePath, cmd.InOrStdin())
	if err != nil {
		return "", "", err
	}

	job, err := readInput(jobPath, cmd.InOrStdin())
	if err != nil {
		return "", "", err
	}

	return resume, job, nil
}
