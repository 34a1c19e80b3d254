// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/affiliation"
	"github.com/pdiddy/papers-list/internal/export"
	"github.com/pdiddy/papers-list/internal/llm"
	"github.com/pdiddy/papers-list/internal/pipeline"
	"github.com/pdiddy/papers-list/internal/search"
	"github.com/pdiddy/papers-list/internal/translate"
	"github.com/pdiddy/papers-list/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search PubMed and list papers with non-academic authors",
	Long: `Search runs a PubMed query (full PubMed syntax is supported), classifies
every author's affiliation, and writes one row per paper with the
non-academic authors, their company affiliations, and a corresponding email.

Rows go to stdout as CSV unless --file is given. The format follows
--format or the file extension (.csv, .xlsx, .json).`,
	Example: `  papers-list search "cancer immunotherapy" --max-results 20
  papers-list search 'crispr AND 2024[dp]' -f results.xlsx
  papers-list search "gene therapy" --llm --llm-provider openai -f llm.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// searchBindings maps search flags to config keys.
var searchBindings = map[string]string{
	"max-results":  "search.max_results",
	"source":       "search.source",
	"email":        "search.email",
	"timeout":      "search.timeout",
	"file":         "output.file",
	"format":       "output.format",
	"translate":    "translation.enabled",
	"vocabulary":   "classifier.vocabulary_file",
	"llm-provider": "llm.provider",
	"llm-model":    "llm.model",
	"batch-size":   "llm.batch_size",
}

func init() {
	d := types.DefaultConfig()

	searchCmd.Flags().Int("max-results", d.Search.MaxResults, "maximum number of papers to fetch")
	searchCmd.Flags().StringP("file", "f", "", "output file (default: stdout)")
	searchCmd.Flags().String("format", "", "output format: csv, xlsx, or json (default: from file extension)")
	searchCmd.Flags().Bool("translate", false, "translate non-English affiliations before classifying")
	searchCmd.Flags().Bool("llm", false, "classify affiliations with a language model instead of keywords")
	searchCmd.Flags().String("llm-provider", d.LLM.Provider, "language model provider: ollama, openai, or anthropic")
	searchCmd.Flags().String("llm-model", "", "language model (default: provider default)")
	searchCmd.Flags().Int("batch-size", d.LLM.BatchSize, "affiliations per language model prompt")
	searchCmd.Flags().String("source", d.Search.Source, "metadata source: pubmed or openalex")
	searchCmd.Flags().String("email", "", "contact email sent to NCBI and OpenAlex")
	searchCmd.Flags().String("vocabulary", "", "YAML file replacing the built-in academic vocabulary")
	searchCmd.Flags().String("save-xml", "", "write the raw PubMed XML to this file")
	searchCmd.Flags().Duration("timeout", d.Search.Timeout, "HTTP request timeout")

	for flag, key := range searchBindings {
		_ = viper.BindPFlag(key, searchCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if useLLM, _ := cmd.Flags().GetBool("llm"); useLLM {
		cfg.Classifier.Strategy = types.StrategyLLM
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := search.NewBackend(cfg.Search, logger)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save-xml"); path != "" {
		pm, ok := backend.(*search.PubMedBackend)
		if !ok {
			return fmt.Errorf("--save-xml requires the %s source", search.SourcePubMed)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating XML dump: %w", err)
		}
		defer f.Close()
		pm.XMLDump = f
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	sink, err := export.Open(cfg.Output.File, cfg.Output.Format, os.Stdout)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Source:     backend,
		Classifier: classifier,
		Sink:       sink,
		Progress:   os.Stderr,
		Logger:     logger,
	}

	query := search.Query{
		Text:       strings.Join(args, " "),
		MaxResults: cfg.Search.MaxResults,
	}
	res, runErr := p.Run(ctx, query)
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("writing results: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	dest := cfg.Output.File
	if dest == "" {
		dest = "stdout"
	}
	fmt.Fprintf(os.Stderr, "%d papers fetched, %d with non-academic authors, written to %s\n",
		res.Fetched, res.Flagged, dest)
	return nil
}

// buildClassifier assembles the strategy named in cfg.Classifier.
func buildClassifier(cfg types.Config) (affiliation.Classifier, error) {
	switch cfg.Classifier.Strategy {
	case types.StrategyLLM:
		provider, err := llm.NewProvider(llm.ConfigFromTypes(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("configuring language model: %w", err)
		}
		if cfg.Translation.Enabled {
			logger.Warn("translation is ignored by the language model classifier")
		}
		logger.Debug("using language model classifier",
			zap.String("provider", provider.Name()),
			zap.String("model", cfg.LLM.Model),
			zap.Int("batch_size", cfg.LLM.BatchSize))
		return affiliation.NewBatchClassifier(provider, affiliation.BatchOptions{
			BatchSize:  cfg.LLM.BatchSize,
			MaxRetries: cfg.LLM.MaxRetries,
		}, logger), nil

	case types.StrategyKeyword, "":
		vocab := affiliation.DefaultVocabulary()
		if path := cfg.Classifier.VocabularyFile; path != "" {
			v, err := affiliation.LoadVocabulary(path)
			if err != nil {
				return nil, err
			}
			vocab = v
		}

		var translator affiliation.Translator
		if cfg.Translation.Enabled {
			translator = translate.NewCached(
				translate.NewLibreTranslator(cfg.Translation, logger),
				cfg.Translation.CacheTTL,
			)
		}
		return affiliation.NewKeywordClassifier(affiliation.NewDetector(vocab), translator, logger), nil

	default:
		return nil, fmt.Errorf("unknown classifier strategy %q (supported: %s, %s)",
			cfg.Classifier.Strategy, types.StrategyKeyword, types.StrategyLLM)
	}
}
