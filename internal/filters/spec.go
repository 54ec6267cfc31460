package filters

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
)

// ErrUnknownFilter is returned for filter names that are not recognised.
var ErrUnknownFilter = errors.New("unknown filter")

// Spec identifies a filter and knows how to apply it.
type Spec interface {
	// Name is the filter identifier, e.g. "vintage", "neon" or "custom".
	Name() string

	// Params is the canonical serialisation of the filter parameters, empty
	// for filters that take none.
	Params() string

	// Apply runs the filter on src and returns a new buffer.
	Apply(src image.Image) (*image.NRGBA, error)

	isSpec()
}

// Basic selects a legacy preset.
type Basic struct {
	Kind BasicKind
}

// Name implements Spec.
func (b Basic) Name() string { return string(b.Kind) }

// Params implements Spec.
func (b Basic) Params() string { return "" }

// Apply implements Spec.
func (b Basic) Apply(src image.Image) (*image.NRGBA, error) { return ApplyBasic(src, b.Kind) }

func (Basic) isSpec() {}

// Artistic selects a named artistic style.
type Artistic struct {
	Kind ArtisticKind
}

// Name implements Spec.
func (a Artistic) Name() string { return string(a.Kind) }

// Params implements Spec.
func (a Artistic) Params() string { return "" }

// Apply implements Spec.
func (a Artistic) Apply(src image.Image) (*image.NRGBA, error) { return ApplyArtistic(src, a.Kind) }

func (Artistic) isSpec() {}

// Custom applies a fully parameterised filter.
type Custom struct {
	Settings CustomParams
}

// CustomName is the Name of every Custom spec.
const CustomName = "custom"

// Name implements Spec.
func (c Custom) Name() string { return CustomName }

// Params implements Spec.
func (c Custom) Params() string { return c.Settings.Key() }

// Apply implements Spec.
func (c Custom) Apply(src image.Image) (*image.NRGBA, error) { return ApplyCustom(src, c.Settings) }

func (Custom) isSpec() {}

// Key returns the combined name and parameter key of s.
func Key(s Spec) string {
	if p := s.Params(); p != "" {
		return s.Name() + ":" + p
	}
	return s.Name()
}

// Parse resolves a basic or artistic filter by name, ignoring case and
// surrounding space. Custom filters carry parameters and are built directly.
func Parse(name string) (Spec, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Basic{Kind: None}, nil
	}
	if k := BasicKind(n); k.Valid() {
		return Basic{Kind: k}, nil
	}
	if k := ArtisticKind(n); k.Valid() {
		return Artistic{Kind: k}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// CatalogEntry describes one named filter.
type CatalogEntry struct {
	Name        string `json:"name"`
	Family      string `json:"family"`
	Description string `json:"description"`
}

// Catalog lists every named filter: basic presets first, then artistic styles,
// each group in alphabetical order.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(basicDescriptions)+len(artisticSteps))
	for _, k := range sortedKeys(basicDescriptions) {
		entries = append(entries, CatalogEntry{Name: k, Family: "basic", Description: basicDescriptions[BasicKind(k)]})
	}
	for _, k := range sortedKeys(artisticDescriptions) {
		entries = append(entries, CatalogEntry{Name: k, Family: "artistic", Description: artisticDescriptions[ArtisticKind(k)]})
	}
	return entries
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
