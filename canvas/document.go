package canvas

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Document is the JSON form of a Snapshot, used for the clipboard export and
// the published schema.
type Document struct {
	TileSize int                `json:"tile_size" jsonschema:"required,minimum=1,description=Edge length of one cell in pixels"`
	Cols     int                `json:"cols" jsonschema:"required,minimum=0,description=Width of the normalized level in cells"`
	Rows     int                `json:"rows" jsonschema:"required,minimum=0,description=Height of the normalized level in cells"`
	Layers   map[string][]Entry `json:"layers" jsonschema:"required,description=Entries per layer name (water / bg palms / terrain / enemies / coin / fg objects)"`
}

// Entry is one layer point. Coin entries are anchored on the cell center,
// every other layer on the top-left corner.
type Entry struct {
	X       int    `json:"x" jsonschema:"required,minimum=0"`
	Y       int    `json:"y" jsonschema:"required,minimum=0"`
	TypeID  int    `json:"type_id" jsonschema:"required,description=Catalog id of the placed type"`
	Variant string `json:"variant,omitempty" jsonschema:"description=Terrain autotile key or water surface (top/bottom)"`
}

// Document converts s into its JSON form. Entries are sorted by y, then x,
// so equal snapshots encode to identical bytes.
func (s Snapshot) Document() Document {
	doc := Document{
		TileSize: s.TileSize,
		Cols:     s.Cols,
		Rows:     s.Rows,
		Layers:   make(map[string][]Entry, len(s.Layers)),
	}
	for name, layer := range s.Layers {
		entries := make([]Entry, 0, len(layer))
		for p, v := range layer {
			entries = append(entries, Entry{X: p.X, Y: p.Y, TypeID: v.TypeID, Variant: v.Variant})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Y != entries[j].Y {
				return entries[i].Y < entries[j].Y
			}
			return entries[i].X < entries[j].X
		})
		doc.Layers[string(name)] = entries
	}
	return doc
}

// Snapshot rebuilds the layered form. Unknown layer names are rejected.
func (d Document) Snapshot() (Snapshot, error) {
	snap := emptySnapshot(d.TileSize)
	snap.Cols, snap.Rows = d.Cols, d.Rows
	for name, entries := range d.Layers {
		layer, ok := snap.Layers[LayerName(name)]
		if !ok {
			return Snapshot{}, fmt.Errorf("canvas: document: unknown layer %q", name)
		}
		for _, e := range entries {
			layer[Point{e.X, e.Y}] = Payload{TypeID: e.TypeID, Variant: e.Variant}
		}
	}
	return snap, nil
}

// MarshalIndent encodes the snapshot document for humans.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("canvas: marshal snapshot: %w", err)
	}
	return data, nil
}
