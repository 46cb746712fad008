package languages

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sahilm/fuzzy"
)

// ErrNotFound is returned when a language id is not part of the catalog
var ErrNotFound = errors.New("language not found")

// LanguageDescriptor describes one runnable language
type LanguageDescriptor struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Extension string `json:"extension" yaml:"extension"`
	Mode      string `json:"mode" yaml:"mode"` // highlighter lexer name
	Snippet   string `json:"-" yaml:"-"`
}

// Catalog is an immutable, ordered registry of languages.
// The first descriptor is the primary language.
type Catalog struct {
	order []string
	byID  map[string]LanguageDescriptor
}

// NewCatalog builds a catalog from descriptors in the given order
func NewCatalog(descs ...LanguageDescriptor) (*Catalog, error) {
	if len(descs) == 0 {
		return nil, errors.New("catalog needs at least one language")
	}

	c := &Catalog{
		order: make([]string, 0, len(descs)),
		byID:  make(map[string]LanguageDescriptor, len(descs)),
	}
	for _, d := range descs {
		if d.ID == "" {
			return nil, errors.New("language id cannot be empty")
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate language id: %s", d.ID)
		}
		c.order = append(c.order, d.ID)
		c.byID[d.ID] = d
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is constructed once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(builtin...)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in language catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup returns the descriptor for id or ErrNotFound
func (c *Catalog) Lookup(id string) (LanguageDescriptor, error) {
	d, ok := c.byID[id]
	if !ok {
		return LanguageDescriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return d, nil
}

// Has reports whether id is a catalog language
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// DefaultSnippetFor returns the starter snippet for id, or "" if unknown
func (c *Catalog) DefaultSnippetFor(id string) string {
	return c.byID[id].Snippet
}

// DisplayName returns the language name, falling back to the raw id
func (c *Catalog) DisplayName(id string) string {
	if d, ok := c.byID[id]; ok {
		return d.Name
	}
	return id
}

// Primary returns the first language in the catalog
func (c *Catalog) Primary() LanguageDescriptor {
	return c.byID[c.order[0]]
}

// IDs returns language ids in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// All returns every descriptor in catalog order
func (c *Catalog) All() []LanguageDescriptor {
	all := make([]LanguageDescriptor, 0, len(c.order))
	for _, id := range c.order {
		all = append(all, c.byID[id])
	}
	return all
}

// Suggest returns ids whose id or name fuzzily matches query, best first
func (c *Catalog) Suggest(query string) []string {
	if query == "" {
		return nil
	}

	// Each language contributes its id and its display name as candidates
	candidates := make([]string, 0, len(c.order)*2)
	owners := make([]string, 0, len(c.order)*2)
	for _, id := range c.order {
		candidates = append(candidates, id, c.byID[id].Name)
		owners = append(owners, id, id)
	}

	seen := make(map[string]bool)
	var out []string
	for _, match := range fuzzy.Find(query, candidates) {
		id := owners[match.Index]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ByExtension finds the language whose file extension is ext (".py")
func (c *Catalog) ByExtension(ext string) (LanguageDescriptor, error) {
	for _, id := range c.order {
		if d := c.byID[id]; d.Extension == ext {
			return d, nil
		}
	}
	return LanguageDescriptor{}, fmt.Errorf("%w: no language for extension %q", ErrNotFound, ext)
}
