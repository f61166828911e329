package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	e := &cfg.Engine
	if e.EmbeddingDimensions == 0 {
		e.EmbeddingDimensions = 384
	}
	if e.DefaultLimit == 0 {
		e.DefaultLimit = 10
	}
	if e.DefaultTypoTolerance == 0 {
		e.DefaultTypoTolerance = 2
	}
	if e.FuzzyWeight == 0 {
		e.FuzzyWeight = 0.8
	}
	if len(e.FuzzyAlgorithms) == 0 {
		e.FuzzyAlgorithms = []string{"levenshtein", "jaro_winkler"}
	}
	if e.PersonalizationBoost == 0 {
		e.PersonalizationBoost = 1.1
	}
	if e.HistoryCapacity == 0 {
		e.HistoryCapacity = 100
	}
	if e.SuggestionLimit == 0 {
		e.SuggestionLimit = 10
	}
	if e.SnippetWindow == 0 {
		e.SnippetWindow = 50
	}
	if e.IndexWorkers == 0 {
		e.IndexWorkers = 4
	}
	if e.QueryCacheSize == 0 {
		e.QueryCacheSize = 1000
	}
	if e.ShardCount == 0 {
		e.ShardCount = 32
	}

	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".json", ".jsonl"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
