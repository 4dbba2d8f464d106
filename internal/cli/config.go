package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/avernik/doctrina/internal/llm"
)

// Config collects every tunable the commands read.
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
}

// CompareConfig controls the comparison run.
type CompareConfig struct {
	Workers int `yaml:"workers"`
}

// HTTPConfig controls how legislative documents are fetched.
type HTTPConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxBytes          int64         `yaml:"max_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	CacheDir          string        `yaml:"cache_dir"`
	RespectRobots     bool          `yaml:"respect_robots"`
}

// LLMConfig controls the optional report summary.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Compare: CompareConfig{Workers: 4},
		HTTP: HTTPConfig{
			UserAgent:         "Doctrina/0.1 (+https://github.com/avernik/doctrina)",
			Timeout:           30 * time.Second,
			MaxBytes:          10 << 20,
			RequestsPerSecond: 1,
			CacheTTL:          24 * time.Hour,
			RespectRobots:     true,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 1000,
			Timeout:   30,
		},
	}
}

// llmConfig converts the CLI settings into the provider's config,
// pulling the API key from the environment.
func (c Config) llmConfig(provider, model string) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model
	if cfg.Model == "" {
		cfg.Model = c.LLM.Model
	}
	cfg.MaxTokens = c.LLM.MaxTokens
	cfg.Timeout = c.LLM.Timeout
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	return cfg
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage doctrina configuration",
	Long: `Manage doctrina configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (DOCTRINA_*)
3. Config file (~/.doctrina/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.doctrina/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.doctrina"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		yamlData, err := yaml.Marshal(DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		if _, err := fmt.Fprintf(f, "# Doctrina configuration file\n\n%s", yamlData); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := fmt.Fprintf(f, "\n# API keys come from the environment:\n#   export OPENAI_API_KEY=sk-...\n"); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
