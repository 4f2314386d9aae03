package trie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is a single key-value pair of an entries file.
type Entry struct {
	Key   uint32 `yaml:"key"`
	Value string `yaml:"value"`
}

// ReadEntries reads the list of entries from a YAML file. Entries are
// returned in file order, repeated keys are kept since the last one wins
// on insertion.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read entries: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("can't parse entries file %s: %w", path, err)
	}
	return entries, nil
}
