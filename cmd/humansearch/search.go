package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/cli"
	"github.com/hyperjump/humansearch/internal/indexer"
	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/pkg/utils"
)

type searchOptions struct {
	docs      []string
	serverURL string
	output    string
	limit     int
	offset    int
	language  string
	userID    string
	typo      int
	fuzzy     bool
	semantic  bool
	synonyms  bool
	filters   []string
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search [flags] <query>",
		Short: "Search documents in a running server or in local files",
		Long: `Search runs a query against a running server (--server) or against an in-memory
engine loaded from --docs files. The query is all remaining arguments joined by spaces.

Filters take the form field=value or field:operator=value, for example
  --filter category=books --filter price:lt=20 --filter tags:in='["a","b"]'
Values are parsed as JSON when possible and used as strings otherwise.`,
		Example: `  humansearch search --docs products.json running shoes
  humansearch search --server http://localhost:8080 --output json "quick fox"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&opts.docs, "docs", nil, "JSON or JSON Lines files to index before searching")
	f.StringVar(&opts.serverURL, "server", "", "server URL; when set the query is sent over HTTP")
	f.StringVarP(&opts.output, "output", "o", "text", "output format: text, compact or json")
	f.IntVarP(&opts.limit, "limit", "n", 0, "page size (0 uses the engine default)")
	f.IntVar(&opts.offset, "offset", 0, "page offset")
	f.StringVar(&opts.language, "lang", "", "query language")
	f.StringVar(&opts.userID, "user", "", "user id for personalization and history")
	f.IntVar(&opts.typo, "typo", 0, "typo tolerance 0-5 for query correction and fuzzy matching")
	f.BoolVar(&opts.fuzzy, "fuzzy", true, "run the fuzzy pass")
	f.BoolVar(&opts.semantic, "semantic", true, "run the semantic pass")
	f.BoolVar(&opts.synonyms, "synonyms", true, "expand the query with synonyms")
	f.StringArrayVar(&opts.filters, "filter", nil, "metadata filter (repeatable)")
	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, args []string) error {
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	q, err := buildSearchQuery(cmd, opts, args)
	if err != nil {
		return err
	}

	var resp *models.SearchResponse
	if opts.serverURL != "" {
		resp, err = newAPIClient(opts.serverURL).Search(cmd.Context(), q)
	} else {
		resp, err = searchLocal(cmd.Context(), root, opts.docs, q)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return cli.WriteSearchResults(cmd.OutOrStdout(), resp, format)
}

// buildSearchQuery leaves optional flags unset unless they were given, so the engine
// defaults apply.
func buildSearchQuery(cmd *cobra.Command, opts *searchOptions, args []string) (models.SearchQuery, error) {
	q := models.SearchQuery{
		Query:    strings.TrimSpace(strings.Join(args, " ")),
		Limit:    opts.limit,
		Offset:   opts.offset,
		Language: opts.language,
	}
	flags := cmd.Flags()
	if flags.Changed("fuzzy") {
		q.Fuzzy = models.Bool(opts.fuzzy)
	}
	if flags.Changed("semantic") {
		q.Semantic = models.Bool(opts.semantic)
	}
	if flags.Changed("synonyms") {
		q.Synonyms = models.Bool(opts.synonyms)
	}
	if flags.Changed("typo") {
		q.TypoTolerance = models.Int(opts.typo)
	}
	if opts.userID != "" {
		q.Context = &models.SearchContext{UserID: opts.userID}
	}
	for _, raw := range opts.filters {
		f, err := parseFilter(raw)
		if err != nil {
			return q, err
		}
		q.Filters = append(q.Filters, f)
	}
	return q, nil
}

// parseFilter reads field=value or field:operator=value.
func parseFilter(raw string) (models.SearchFilter, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return models.SearchFilter{}, fmt.Errorf("invalid filter %q: want field=value or field:operator=value", raw)
	}
	field, op, hasOp := strings.Cut(key, ":")
	f := models.SearchFilter{Field: field, Operator: models.OpEquals}
	if hasOp {
		f.Operator = models.FilterOperator(op)
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		f.Value = decoded
	} else {
		f.Value = value
	}
	return f, nil
}

func searchLocal(ctx context.Context, root *rootOptions, docs []string, q models.SearchQuery) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(root.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || root.debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	idx := indexer.NewIndexer(engine, indexer.WithLogger(logger))
	for _, path := range docs {
		if _, err := idx.IndexFile(ctx, path); err != nil {
			return nil, err
		}
	}
	logger.Debug("local engine ready", zap.Int("documents", engine.DocumentCount()))
	return engine.Search(ctx, q)
}
