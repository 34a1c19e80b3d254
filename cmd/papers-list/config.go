// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/papers-list/internal/secrets"
	"github.com/pdiddy/papers-list/pkg/types"
)

const (
	defaultConfigPath = "papers-list.yaml"
	redacted          = "********"
)

// setDefaults registers every config key with viper so that environment
// variables (PAPERS_LIST_SEARCH_EMAIL, ...) are seen by Unmarshal.
func setDefaults() {
	d := types.DefaultConfig()

	viper.SetDefault("search.timeout", d.Search.Timeout)
	viper.SetDefault("search.user_agent", d.Search.UserAgent)
	viper.SetDefault("search.source", d.Search.Source)
	viper.SetDefault("search.max_results", d.Search.MaxResults)
	viper.SetDefault("search.email", d.Search.Email)
	viper.SetDefault("search.tool", d.Search.Tool)
	viper.SetDefault("search.api_key", d.Search.APIKey)
	viper.SetDefault("search.requests_per_second", d.Search.RequestsPerSecond)
	viper.SetDefault("search.fetch_batch_size", d.Search.FetchBatchSize)
	viper.SetDefault("search.max_retries", d.Search.MaxRetries)

	viper.SetDefault("translation.enabled", d.Translation.Enabled)
	viper.SetDefault("translation.endpoint", d.Translation.Endpoint)
	viper.SetDefault("translation.api_key", d.Translation.APIKey)
	viper.SetDefault("translation.timeout", d.Translation.Timeout)
	viper.SetDefault("translation.cache_ttl", d.Translation.CacheTTL)

	viper.SetDefault("classifier.strategy", d.Classifier.Strategy)
	viper.SetDefault("classifier.vocabulary_file", d.Classifier.VocabularyFile)

	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", d.LLM.APIKey)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.batch_size", d.LLM.BatchSize)
	viper.SetDefault("llm.max_retries", d.LLM.MaxRetries)

	viper.SetDefault("output.file", d.Output.File)
	viper.SetDefault("output.format", d.Output.Format)

	viper.SetDefault("debug", d.Debug)
}

// loadConfig returns the effective configuration: flags over environment
// over config file over defaults, with API keys filled from .secrets/ or
// the conventional environment variables when unset.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Search.APIKey = secretDefault(secrets.NCBIAPIKey, cfg.Search.APIKey)
	cfg.Translation.APIKey = secretDefault(secrets.LibreTranslateAPIKey, cfg.Translation.APIKey)
	if key := llmSecretKey(cfg.LLM.Provider); key != "" {
		cfg.LLM.APIKey = secretDefault(key, cfg.LLM.APIKey)
	}
	return cfg, nil
}

// llmSecretKey names the secret holding the provider's API key. Ollama
// needs none.
func llmSecretKey(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return secrets.OpenAIAPIKey
	case "anthropic", "claude":
		return secrets.AnthropicAPIKey
	}
	return ""
}

// redact hides API keys before a config is printed.
func redact(cfg types.Config) types.Config {
	for _, key := range []*string{&cfg.Search.APIKey, &cfg.Translation.APIKey, &cfg.LLM.APIKey} {
		if *key != "" {
			*key = redacted
		}
	}
	return cfg
}

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (PAPERS_LIST_*, e.g. PAPERS_LIST_SEARCH_EMAIL)
  3. Config file (./papers-list.yaml or ~/.config/papers-list/config.yaml)
  4. Built-in defaults

API keys are also read from .secrets/ (ncbi-api-key, openai-api-key,
anthropic-api-key, libretranslate-api-key) and from NCBI_API_KEY,
OPENAI_API_KEY, ANTHROPIC_API_KEY, LIBRETRANSLATE_API_KEY.
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	Long:  "Manage papers-list configuration.\n\n" + configHierarchy,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", f)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		data, err := yaml.Marshal(redact(cfg))
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		fmt.Fprintf(os.Stderr, "\n%s", configHierarchy)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if err := writeDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Created default configuration: %s\n", path)
		return nil
	},
}

func writeDefaultConfig(path string) error {
	data, err := yaml.Marshal(types.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	var b strings.Builder
	b.WriteString("# papers-list configuration\n#\n")
	for _, line := range strings.Split(strings.TrimRight(configHierarchy, "\n"), "\n") {
		b.WriteString(strings.TrimRight("# "+line, " ") + "\n")
	}
	b.WriteString("\n")
	b.Write(data)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func init() {
	configInitCmd.Flags().String("path", defaultConfigPath, "where to write the configuration file")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
