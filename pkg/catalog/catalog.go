package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog is the complete static content of one game: items, chapters,
// and scenes, plus the opening position. It is loaded once at startup
// and immutable at runtime.
type Catalog struct {
	Name           string             `json:"name"`
	FileName       string             `json:"file_name,omitempty"` // Set by the loader
	Items          map[string]Item    `json:"items"`
	Chapters       map[string]Chapter `json:"chapters"`
	Scenes         map[string]Scene   `json:"scenes"`
	OpeningChapter string             `json:"opening_chapter"`
	OpeningScene   string             `json:"opening_scene"`
}

// Scene returns the scene with the given ID.
func (c *Catalog) Scene(id string) (*Scene, bool) {
	s, ok := c.Scenes[id]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Chapter returns the chapter with the given ID.
func (c *Catalog) Chapter(id string) (*Chapter, bool) {
	ch, ok := c.Chapters[id]
	if !ok {
		return nil, false
	}
	return &ch, true
}

// Item returns the item with the given ID.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.Items[id]
	return it, ok
}

// Parse decodes catalog JSON strictly: unknown fields are rejected so
// author typos fail at load time instead of silently dropping content.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	c.FileName = filepath.Base(path)
	return c, nil
}

// Load reads, parses, and validates a catalog file against the given
// predicate registry. This is the entry point sessions should use;
// a catalog that fails validation never reaches an engine.
func Load(path string, preds Predicates) (*Catalog, error) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(preds); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// List returns the catalog names available in a directory, keyed by
// display name with the file name as value. Only .json files are
// considered. Two files sharing a display name would shadow each other
// in the map, so the collision is an error.
func List(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	catalogs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		c, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if prev, ok := catalogs[c.Name]; ok {
			return nil, fmt.Errorf("catalog name %q is used by both %s and %s", c.Name, prev, entry.Name())
		}
		catalogs[c.Name] = entry.Name()
	}
	return catalogs, nil
}

// SortedSceneIDs returns all scene IDs in sorted order, for stable
// iteration in validation and display code.
func (c *Catalog) SortedSceneIDs() []string {
	ids := make([]string, 0, len(c.Scenes))
	for id := range c.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
