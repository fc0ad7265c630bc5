package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"
)

var (
	ErrDuplicateType = errors.New("prefabs: duplicate type")
	ErrUnknownKind   = errors.New("prefabs: unknown kind")
	ErrInvalidType   = errors.New("prefabs: invalid type")
)

// Kind is the style classification of a placeable type.
type Kind uint8

const (
	KindTerrain Kind = iota + 1
	KindWater
	KindCoin
	KindEnemy
	KindObject
)

var kindNames = map[Kind]string{
	KindTerrain: "terrain",
	KindWater:   "water",
	KindCoin:    "coin",
	KindEnemy:   "enemy",
	KindObject:  "object",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsTile reports whether the kind is grid-snapped (everything except free objects).
func (k Kind) IsTile() bool {
	return k != KindObject
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Type is a resolved catalog entry.
type Type struct {
	ID         int
	Name       string
	Kind       Kind
	Style      string
	Background bool
	Deletable  bool
	Menu       bool
	Width      float64
	Height     float64
	Color      color.Color
}

// Catalog is the id-indexed lookup table built once from catalog.yaml.
type Catalog struct {
	types    []*Type
	byName   map[string]*Type
	variants map[string]struct{}
	fallback string
	menuMin  int
	menuMax  int
}

func LoadCatalog() (*Catalog, error) {
	spec, err := LoadSpec[CatalogSpec]("catalog.yaml")
	if err != nil {
		return nil, err
	}
	return NewCatalog(spec)
}

func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	c := &Catalog{
		byName:   make(map[string]*Type, len(spec.Types)),
		variants: make(map[string]struct{}, len(spec.AutotileVariants)),
		fallback: spec.FallbackVariant,
		menuMin:  -1,
		menuMax:  -1,
	}
	if c.fallback == "" {
		c.fallback = "X"
	}

	maxID := -1
	for _, ts := range spec.Types {
		if ts.ID < 0 {
			return nil, fmt.Errorf("%w: negative id %d", ErrInvalidType, ts.ID)
		}
		if ts.ID > maxID {
			maxID = ts.ID
		}
	}
	c.types = make([]*Type, maxID+1)

	for _, ts := range spec.Types {
		kind, err := ParseKind(ts.Kind)
		if err != nil {
			return nil, fmt.Errorf("prefabs: type %d: %w", ts.ID, err)
		}
		if c.types[ts.ID] != nil {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateType, ts.ID)
		}
		if ts.Background && kind != KindObject {
			return nil, fmt.Errorf("%w: %d is %s and cannot be a background decoration", ErrInvalidType, ts.ID, kind)
		}
		t := &Type{
			ID:         ts.ID,
			Name:       ts.Name,
			Kind:       kind,
			Style:      ts.Style,
			Background: ts.Background,
			Deletable:  true,
			Menu:       ts.Menu,
			Width:      ts.Width,
			Height:     ts.Height,
			Color:      color.White,
		}
		if ts.Deletable != nil {
			t.Deletable = *ts.Deletable
		}
		if ts.Color != nil && ts.Color.Color != nil {
			t.Color = ts.Color.Color
		}
		if t.Name != "" {
			if _, dup := c.byName[t.Name]; dup {
				return nil, fmt.Errorf("%w: name %q", ErrDuplicateType, t.Name)
			}
			c.byName[t.Name] = t
		}
		c.types[t.ID] = t
	}

	for _, t := range c.types {
		if t == nil || !t.Menu {
			continue
		}
		if c.menuMin < 0 || t.ID < c.menuMin {
			c.menuMin = t.ID
		}
		if t.ID > c.menuMax {
			c.menuMax = t.ID
		}
	}
	for id := c.menuMin; id >= 0 && id <= c.menuMax; id++ {
		if t := c.types[id]; t == nil || !t.Menu {
			return nil, fmt.Errorf("%w: menu ids must be contiguous, %d is missing", ErrInvalidType, id)
		}
	}

	for _, v := range spec.AutotileVariants {
		c.variants[v] = struct{}{}
	}
	return c, nil
}

func (c *Catalog) Type(id int) (*Type, bool) {
	if c == nil || id < 0 || id >= len(c.types) || c.types[id] == nil {
		return nil, false
	}
	return c.types[id], true
}

func (c *Catalog) Kind(id int) (Kind, bool) {
	t, ok := c.Type(id)
	if !ok {
		return 0, false
	}
	return t.Kind, true
}

// MustKind classifies id and panics when it is not in the catalog. An
// unknown id means the static data and the caller disagree.
func (c *Catalog) MustKind(id int) Kind {
	k, ok := c.Kind(id)
	if !ok {
		panic(fmt.Sprintf("prefabs: unclassified type id %d", id))
	}
	return k
}

func (c *Catalog) Lookup(name string) (*Type, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.byName[name]
	return t, ok
}

// WithStyle returns the first type carrying style, in id order.
func (c *Catalog) WithStyle(style string) (*Type, bool) {
	if c == nil {
		return nil, false
	}
	for _, t := range c.types {
		if t != nil && t.Style == style {
			return t, true
		}
	}
	return nil, false
}

func (c *Catalog) IsBackground(id int) bool {
	t, ok := c.Type(id)
	return ok && t.Background
}

// Variant returns key when it names a known terrain sprite, otherwise the
// fallback key.
func (c *Catalog) Variant(key string) string {
	if _, ok := c.variants[key]; ok {
		return key
	}
	return c.fallback
}

func (c *Catalog) Fallback() string { return c.fallback }

// Variants returns the known autotile keys in sorted order.
func (c *Catalog) Variants() []string {
	out := make([]string, 0, len(c.variants))
	for v := range c.variants {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MenuRange returns the inclusive id range reachable from the palette.
func (c *Catalog) MenuRange() (int, int) {
	return c.menuMin, c.menuMax
}

func (c *Catalog) ClampSelection(id int) int {
	if c.menuMin < 0 {
		return id
	}
	return max(c.menuMin, min(id, c.menuMax))
}

// Types returns every type in id order.
func (c *Catalog) Types() []*Type {
	var out []*Type
	for _, t := range c.types {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (c *Catalog) MenuTypes() []*Type {
	var out []*Type
	for _, t := range c.types {
		if t != nil && t.Menu {
			out = append(out, t)
		}
	}
	return out
}

// IDsWithKind returns every id classified as kind, in id order.
func (c *Catalog) IDsWithKind(kind Kind) []int {
	var out []int
	for _, t := range c.types {
		if t != nil && t.Kind == kind {
			out = append(out, t.ID)
		}
	}
	return out
}
