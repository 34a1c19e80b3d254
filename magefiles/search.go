//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search runs the built CLI for query and writes results/keyword.csv.
func Search(query string) error {
	mg.Deps(Build)
	return runSearch(query, "keyword.csv")
}

// Crosscheck runs query through the keyword and language model classifiers
// and compares the two result files.
func Crosscheck(query string) error {
	mg.Deps(Build)
	if err := runSearch(query, "keyword.csv"); err != nil {
		return err
	}
	if err := runSearch(query, "llm.csv", "--llm"); err != nil {
		return err
	}
	return sh.RunV(binPath(), "compare",
		filepath.Join("results", "keyword.csv"),
		filepath.Join("results", "llm.csv"),
		"-o", filepath.Join("results", "llm_vs_regex_diff.csv"))
}

func runSearch(query, file string, extra ...string) error {
	if err := os.MkdirAll("results", 0o755); err != nil {
		return fmt.Errorf("creating results: %w", err)
	}
	args := append([]string{"search", query, "-f", filepath.Join("results", file)}, extra...)
	return sh.RunV(binPath(), args...)
}

func binPath() string {
	return filepath.Join(binDir, binName)
}
