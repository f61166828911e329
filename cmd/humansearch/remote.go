package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperjump/humansearch/internal/indexer"
)

const defaultServerURL = "http://localhost:8080"

func newIndexCmd() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "index <file|dir>...",
		Short: "Send document files to a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := indexer.NewIndexer(newAPIClient(serverURL))
			total := 0
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				var n int
				if info.IsDir() {
					n, err = idx.IndexDirectory(cmd.Context(), path)
				} else {
					n, err = idx.IndexFile(cmd.Context(), path)
				}
				total += n
				if err != nil {
					return fmt.Errorf("indexed %d documents before failing: %w", total, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents\n", total)
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", defaultServerURL, "server URL")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var serverURL, output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newAPIClient(serverURL).Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats failed: %w", err)
			}
			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			case "text":
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "documents:          %d\n", stats.Documents)
				fmt.Fprintf(w, "vocabulary:         %d\n", stats.Vocabulary)
				fmt.Fprintf(w, "ngrams:             %d\n", stats.NGrams)
				fmt.Fprintf(w, "embeddings:         %d\n", stats.Embeddings)
				fmt.Fprintf(w, "autocomplete_terms: %d\n", stats.AutocompleteTerms)
				fmt.Fprintf(w, "synonym_words:      %d\n", stats.SynonymWords)
				fmt.Fprintf(w, "dictionary_words:   %d\n", stats.DictionaryWords)
				fmt.Fprintf(w, "profiles:           %d\n", stats.Profiles)
				return nil
			default:
				return fmt.Errorf("unknown output format %q; use text or json", output)
			}
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", defaultServerURL, "server URL")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}
