// Package query rewrites and interprets search queries: typo correction against a
// word list, synonym expansion and a light structural analysis.
package query

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Synonym groups every engine starts with. Each word in a group is a synonym of the others.
var defaultSynonymGroups = [][]string{
	{"quick", "fast", "rapid", "speedy"},
	{"big", "large", "huge", "enormous"},
	{"small", "little", "tiny"},
	{"buy", "purchase", "acquire"},
	{"car", "automobile", "vehicle"},
	{"phone", "telephone", "mobile"},
	{"laptop", "notebook"},
	{"tv", "television"},
	{"cheap", "inexpensive", "affordable"},
	{"start", "begin", "launch"},
	{"end", "finish", "stop"},
	{"error", "bug", "fault"},
	{"help", "assist", "support"},
	{"happy", "glad", "joyful"},
	{"sad", "unhappy", "sorrowful"},
	{"smart", "intelligent", "clever"},
	{"photo", "picture", "image"},
	{"movie", "film"},
	{"doctor", "physician"},
	{"shop", "store"},
}

// Words every typo corrector starts with.
var defaultWords = []string{
	"about", "account", "address", "after", "again", "animal", "answer", "apple", "area", "article",
	"back", "bank", "basic", "beautiful", "because", "before", "best", "better", "between", "black",
	"blue", "board", "book", "brown", "build", "business", "call", "camera", "card", "care",
	"case", "cat", "change", "cheap", "check", "city", "class", "clean", "clear", "close",
	"code", "color", "company", "computer", "contact", "content", "country", "course", "create", "customer",
	"data", "date", "design", "development", "different", "document", "dog", "download", "early", "easy",
	"education", "email", "engine", "error", "event", "example", "experience", "family", "fast", "file",
	"find", "first", "food", "form", "fox", "free", "friend", "full", "game", "garden",
	"general", "good", "great", "green", "group", "guide", "happy", "health", "help", "history",
	"home", "hotel", "house", "image", "important", "index", "information", "international", "issue", "item",
	"job", "jump", "keep", "key", "kind", "know", "language", "large", "last", "lazy",
	"learn", "level", "library", "life", "light", "line", "list", "little", "local", "long",
	"machine", "make", "management", "market", "media", "medical", "member", "message", "model", "money",
	"month", "movie", "music", "name", "national", "network", "news", "night", "number", "office",
	"online", "open", "order", "page", "paper", "part", "party", "people", "person", "phone",
	"photo", "picture", "place", "plan", "play", "point", "policy", "power", "price", "print",
	"privacy", "problem", "process", "product", "program", "project", "public", "quality", "question", "quick",
	"rate", "read", "real", "record", "red", "report", "research", "result", "review", "right",
	"room", "run", "sale", "school", "science", "search", "security", "service", "shop", "show",
	"simple", "site", "small", "social", "software", "sound", "special", "sport", "start", "state",
	"store", "story", "student", "study", "support", "system", "table", "team", "technology", "test",
	"text", "thing", "time", "today", "tool", "top", "travel", "tree", "type", "university",
	"update", "user", "value", "video", "view", "water", "website", "week", "white", "window",
	"woman", "word", "work", "world", "write", "year", "young",
}

// DefaultSynonymGroups returns a copy of the built-in synonym groups.
func DefaultSynonymGroups() [][]string {
	out := make([][]string, len(defaultSynonymGroups))
	for i, g := range defaultSynonymGroups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

// DefaultWords returns a copy of the built-in word list.
func DefaultWords() []string {
	return append([]string(nil), defaultWords...)
}

// SynonymFile is the YAML layout of a synonyms dictionary.
//
//	groups:
//	  - [couch, sofa, settee]
type SynonymFile struct {
	Groups [][]string `yaml:"groups"`
}

// WordFile is the YAML layout of a word list.
//
//	words: [kubernetes, golang]
type WordFile struct {
	Words []string `yaml:"words"`
}

// LoadSynonymFile reads synonym groups from a YAML file.
func LoadSynonymFile(path string) ([][]string, error) {
	var f SynonymFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	return f.Groups, nil
}

// LoadWordFile reads a word list from a YAML file.
func LoadWordFile(path string) ([]string, error) {
	var f WordFile
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	return f.Words, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dictionary: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	return nil
}
