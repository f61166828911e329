// Package main is the humansearch CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/query"
	"github.com/hyperjump/humansearch/internal/search"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/humansearch/config.yaml"

type rootOptions struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "humansearch",
		Short:        "Natural-language search engine with fuzzy and semantic matching",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newIndexCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "humansearch version %s\n", version)
		},
	}
}

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if present, and a missing default file yields the built-in
// defaults. It returns the path actually loaded, or "" for defaults.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				cfg, err := config.Load(fallback)
				if err != nil {
					return nil, "", err
				}
				return cfg, fallback, nil
			}
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newEngine builds the engine with the configured dictionary extensions.
func newEngine(cfg *config.Config, logger *zap.Logger) (*search.Engine, error) {
	opts := []search.Option{search.WithLogger(logger)}
	if p := cfg.Dictionaries.SynonymsPath; p != "" {
		groups, err := query.LoadSynonymFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load synonyms: %w", err)
		}
		opts = append(opts, search.WithSynonymGroups(groups))
	}
	if p := cfg.Dictionaries.WordsPath; p != "" {
		words, err := query.LoadWordFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load words: %w", err)
		}
		opts = append(opts, search.WithWords(words))
	}
	return search.NewEngine(cfg.Engine, opts...)
}
