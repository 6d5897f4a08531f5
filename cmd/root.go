package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-tailor"
)

type Config struct {
	AI              *AIConfig     `mapstructure:"ai"`
	Limits          *LimitsConfig `mapstructure:"limits"`
	MissingKeywords int           `mapstructure:"missing-keywords"`
	MaxLogLength    int           `mapstructure:"max-log-length"`
}

type AIConfig struct {
	Gemini      *GeminiConfig      `mapstructure:"gemini"`
	HuggingFace *HuggingFaceConfig `mapstructure:"huggingface"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key" json:"-"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

type HuggingFaceConfig struct {
	APIKey         string        `mapstructure:"api-key" json:"-"`
	APIKeyFile     string        `mapstructure:"api-key-file"`
	BaseURL        string        `mapstructure:"base-url"`
	TextModel      string        `mapstructure:"text-model"`
	EmbeddingModel string        `mapstructure:"embedding-model"`
	MaxNewTokens   int           `mapstructure:"max-new-tokens"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type LimitsConfig struct {
	MatchChars     int `mapstructure:"match-chars"`
	InterviewChars int `mapstructure:"interview-chars"`
	ExtractChars   int `mapstructure:"extract-chars"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-tailor scores, tailors and prepares resumes for job descriptions using AI providers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-tailor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Duration("timeout", 0, "deadline for a single operation, e.g. 90s (default is no deadline)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("missing-keywords", 10)
	viper.SetDefault("max-log-length", 200)
	viper.SetDefault("ai.huggingface.timeout", 60*time.Second)

	// The same variable names are used by the web frontend deployment.
	if err := viper.BindEnv("ai.gemini.api-key", "GOOGLE_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding gemini api key environment variables: %v", err)
	}
	if err := viper.BindEnv("ai.huggingface.api-key", "HUGGINGFACE_API_KEY", "HF_TOKEN"); err != nil {
		log.Fatalf("binding huggingface api key environment variables: %v", err)
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional: credentials may come from the environment only.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.AI.HuggingFace == nil {
		config.AI.HuggingFace = &HuggingFaceConfig{}
	}
	if config.Limits == nil {
		config.Limits = &LimitsConfig{}
	}

	return config, nil
}
