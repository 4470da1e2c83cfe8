// Package catalog loads the dApp listings that become gift boxes in the world.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed dapps.csv
var defaultCSV string

const (
	// DefaultCategory is used when a row has none.
	DefaultCategory = "General"
	// FallbackDescription is used when a row has no description.
	FallbackDescription = "Explore the Monad ecosystem with Chog."
)

var (
	// ErrDuplicateID is returned when two rows share an explicit id.
	ErrDuplicateID = errors.New("catalog: duplicate id")
	// ErrMissingName is returned for a row with neither id nor name.
	ErrMissingName = errors.New("catalog: row has no id or name")
	// ErrEmpty is returned when a source has no rows.
	ErrEmpty = errors.New("catalog: no entries")
)

// Dapp is one normalized listing.
type Dapp struct {
	ID          string
	Name        string
	Category    string
	Description string
	Website     string
	Tags        []string
	OnlyOnMonad bool
}

// row is the CSV shape.
type row struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Website     string `csv:"website"`
	Tags        string `csv:"tags"`
	OnlyOnMonad string `csv:"only_on_monad"`
}

// Catalog is an ordered, id-indexed set of listings.
type Catalog struct {
	dapps []Dapp
	byID  map[string]int
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultCSV))
}

// LoadFile reads a catalog from a CSV file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Load parses CSV rows with a header line. Rows are normalized; ids missing
// from the source are derived from name and category.
func Load(r io.Reader) (*Catalog, error) {
	var rows []*row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return build(rows)
}

func build(rows []*row) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(rows))}
	derived := make(map[string]int)

	for n, r := range rows {
		d, explicit, err := normalize(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}

		if _, taken := c.byID[d.ID]; taken {
			if explicit {
				return nil, fmt.Errorf("row %d: %w: %q", n+1, ErrDuplicateID, d.ID)
			}
			base := d.ID
			for taken {
				derived[base]++
				d.ID = fmt.Sprintf("%s-%d", base, derived[base])
				_, taken = c.byID[d.ID]
			}
		}

		c.byID[d.ID] = len(c.dapps)
		c.dapps = append(c.dapps, d)
	}

	if len(c.dapps) == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// normalize cleans a row. explicit reports whether the id came from the source.
func normalize(r *row) (d Dapp, explicit bool, err error) {
	d = Dapp{
		ID:          clean(r.ID),
		Name:        clean(r.Name),
		Category:    clean(r.Category),
		Description: clean(r.Description),
		Website:     clean(r.Website),
		Tags:        splitTags(r.Tags),
		OnlyOnMonad: parseYes(r.OnlyOnMonad),
	}

	if d.Category == "" {
		d.Category = DefaultCategory
	}
	if d.Description == "" {
		d.Description = FallbackDescription
	}

	explicit = d.ID != ""
	if !explicit {
		if d.Name == "" {
			return d, false, ErrMissingName
		}
		d.ID = Slug(d.Name + " " + d.Category)
	}
	if d.Name == "" {
		d.Name = d.ID
	}
	return d, explicit, nil
}

// clean trims a field and clears placeholder values.
func clean(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "NONE", "-", "N/A", "NULL":
		return ""
	}
	return s
}

func splitTags(s string) []string {
	s = clean(s)
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true
	}
	return false
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins alphanumeric runs with dashes.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.dapps)
}

// All returns the listings in source order.
func (c *Catalog) All() []Dapp {
	return c.dapps
}

// At returns the listing at index i.
func (c *Catalog) At(i int) Dapp {
	return c.dapps[i]
}

// Get looks up a listing by id.
func (c *Catalog) Get(id string) (Dapp, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Dapp{}, false
	}
	return c.dapps[i], true
}

// Limit returns a catalog with at most n listings. n <= 0 keeps everything.
func (c *Catalog) Limit(n int) *Catalog {
	if n <= 0 || n >= len(c.dapps) {
		return c
	}
	out := &Catalog{dapps: c.dapps[:n:n], byID: make(map[string]int, n)}
	for i, d := range out.dapps {
		out.byID[d.ID] = i
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	var cats []string
	for _, d := range c.dapps {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	slices.Sort(cats)
	return cats
}
