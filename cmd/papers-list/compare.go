// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/papers-list/internal/compare"
)

var compareCmd = &cobra.Command{
	Use:   "compare <keyword.csv> <llm.csv>",
	Short: "Compare the non-academic authors of two result files",
	Long: `Compare joins two CSV result files on PubmedID, typically one produced by
the keyword classifier and one by --llm for the same query, and writes the
papers whose non-academic author sets differ.

The command fails when the number of mismatches exceeds --max-mismatches.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringP("output", "o", "llm_vs_regex_diff.csv", "where to write the mismatches")
	compareCmd.Flags().Int("max-mismatches", 5, "fail when more papers than this disagree")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	maxMismatches, _ := cmd.Flags().GetInt("max-mismatches")

	left, err := compare.LoadFile(args[0])
	if err != nil {
		return err
	}
	right, err := compare.LoadFile(args[1])
	if err != nil {
		return err
	}

	rep := compare.Compare(left, right)
	if rep.Missing > 0 {
		logger.Warn("papers missing from second file",
			zap.String("file", args[1]), zap.Int("count", rep.Missing))
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	leftLabel, rightLabel := columnLabels(args[0], args[1])
	if err := compare.WriteMismatches(f, rep.Mismatches, leftLabel, rightLabel); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stderr, "%d papers compared, %d mismatches written to %s\n",
		rep.Compared, len(rep.Mismatches), output)

	if len(rep.Mismatches) > maxMismatches {
		return fmt.Errorf("%d mismatches exceed the limit of %d", len(rep.Mismatches), maxMismatches)
	}
	return nil
}

// columnLabels names the two author columns after their files. Equal base
// names fall back to the paths, and identical paths get left/right suffixes.
func columnLabels(left, right string) (string, string) {
	l, r := fileLabel(left), fileLabel(right)
	if l != r {
		return l, r
	}
	l, r = filepath.Clean(left), filepath.Clean(right)
	if l != r {
		return l, r
	}
	return l + " (left)", r + " (right)"
}

// fileLabel names a mismatch column after its source file.
func fileLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
