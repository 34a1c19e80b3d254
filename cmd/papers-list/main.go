// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the papers-list CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/logging"
	"github.com/pdiddy/papers-list/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// envReplacer maps nested keys to variable names: search.email is read
// from PAPERS_LIST_SEARCH_EMAIL.
var envReplacer = strings.NewReplacer(".", "_")

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets *secrets.Store

	logger = zap.NewNop()
)

// secretDefault returns fallback when set, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if loadedSecrets == nil {
		return ""
	}
	return loadedSecrets.Get(key)
}

var rootCmd = &cobra.Command{
	Use:   "papers-list",
	Short: "List PubMed papers with non-academic authors",
	Long: `papers-list searches PubMed for a query and reports, per paper, the authors
whose affiliation is outside academia (companies, biotech, pharma), their
affiliations, and a corresponding email.

Authors are classified by an academic keyword vocabulary by default, or by a
language model with --llm. Results are written as CSV, XLSX, or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if s.Len() > 0 {
			logger.Debug("loaded secrets", zap.Int("count", s.Len()))
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./papers-list.yaml or ~/.config/papers-list/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "print debug information during execution")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "papers-list"))
		}
	}

	viper.SetEnvPrefix("PAPERS_LIST")
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Error reading config file:", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
