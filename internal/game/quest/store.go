package quest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// SaveVersion is written to every save file.
const SaveVersion = 1

// ErrUnsupportedVersion is returned for save files from a newer format.
var ErrUnsupportedVersion = errors.New("quest: unsupported save version")

type snapshot struct {
	Version     int                 `yaml:"version"`
	XP          int                 `yaml:"xp"`
	Distance    float64             `yaml:"distance"`
	Visited     []string            `yaml:"visited"`
	Categories  map[string][]string `yaml:"categories,omitempty"`
	OnlyOnMonad []string            `yaml:"only_on_monad,omitempty"`
	Completed   []string            `yaml:"completed,omitempty"`
	Claimed     []string            `yaml:"claimed,omitempty"`
}

// Save writes progress to path as YAML, creating parent directories.
func (t *Tracker) Save(path string) error {
	s := snapshot{
		Version:     SaveVersion,
		XP:          t.xp,
		Distance:    t.distance,
		Visited:     slices.Clone(t.visited),
		Categories:  t.categories,
		OnlyOnMonad: slices.Clone(t.onlyOnMonad),
		Completed:   sortedKeys(t.completed),
		Claimed:     sortedKeys(t.claimed),
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load replaces the tracker's progress with the contents of path. A missing
// file leaves the tracker empty and returns an error wrapping os.ErrNotExist.
func (t *Tracker) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var s snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing quest save %s: %w", path, err)
	}
	if s.Version > SaveVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	t.Reset()
	for _, id := range s.Visited {
		if id == "" || t.seen[id] {
			continue
		}
		t.seen[id] = true
		t.visited = append(t.visited, id)
	}
	for cat, ids := range s.Categories {
		t.categories[cat] = t.known(ids)
	}
	t.onlyOnMonad = t.known(s.OnlyOnMonad)
	for _, id := range s.Completed {
		t.completed[id] = true
	}
	for _, id := range s.Claimed {
		if t.completed[id] {
			t.claimed[id] = true
		}
	}
	t.xp = max(s.XP, 0)
	t.AddDistance(s.Distance)
	t.evaluate()
	return nil
}

// known filters ids to those already visited, dropping duplicates.
func (t *Tracker) known(ids []string) []string {
	var out []string
	for _, id := range ids {
		if t.seen[id] && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
