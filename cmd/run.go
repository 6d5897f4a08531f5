package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptScore     = "Calculate match score"
	PromptTailor    = "Tailor resume"
	PromptInterview = "Generate interview questions"
	PromptExtract   = "Extract job details"
	PromptInputs    = "Change resume and job description"
	PromptExit      = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Choose an action",
	Items: []string{PromptScore, PromptTailor, PromptInterview, PromptExtract, PromptInputs, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run resume-tailor interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

type session struct {
	resume string
	job    string
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	runCmd.Flags().String("job", "", "path to the job description text file")
}

// run is the interactive mode: inputs are loaded once and actions are chosen from a menu.
func run(cmd *cobra.Command) {
	env, err := setup(cmd)
	if err != nil {
		log.Fatal(err)
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")

	s, err := loadSession(resumePath, jobPath)
	if err != nil {
		env.logger.Fatal("loading inputs", zap.Error(err))
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			env.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd, env, s, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			env.logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(cmd *cobra.Command, env *environment, s *session, action string) error {
	ctx, cancel := env.operation()
	defer cancel()

	switch action {
	case PromptScore:
		match := env.service.CalculateMatchScore(ctx, s.resume, s.job)
		return printJSON(cmd.OutOrStdout(), map[string]int{"score": match})
	case PromptTailor:
		result, err := env.service.GenerateTailoredResume(ctx, s.resume, s.job)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	case PromptInterview:
		questions, err := env.service.GenerateInterviewQuestions(ctx, s.resume, s.job)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), questions)
	case PromptExtract:
		details, err := env.service.ExtractJobDetails(ctx, s.job)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), details)
	case PromptInputs:
		updated, err := loadSession("", "")
		if err != nil {
			return err
		}
		*s = *updated
		env.logger.Info("inputs reloaded")
		return nil
	case PromptExit:
		env.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadSession reads both inputs, asking for the paths that were not provided.
func loadSession(resumePath, jobPath string) (*session, error) {
	var err error

	if strings.TrimSpace(resumePath) == "" {
		if resumePath, err = askPath("Resume file"); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(jobPath) == "" {
		if jobPath, err = askPath("Job description file"); err != nil {
			return nil, err
		}
	}

	resume, err := readInput(resumePath, os.Stdin)
	if err != nil {
		return nil, err
	}
	job, err := readInput(jobPath, os.Stdin)
	if err != nil {
		return nil, err
	}

	return &session{resume: resume, job: job}, nil
}

func askPath(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			info, err := os.Stat(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", input)
			}
			return nil
		},
	}

	path, err := p.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}
