// Package levels stores exported snapshots as JSON documents. A few sample
// levels are embedded; saved levels live on disk next to them.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/levelmaker/canvas"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is checked before the embedded levels and is where Save writes.
var Dir = "levels"

func fileName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

// Load reads a level document by name (".json" optional) and rebuilds its
// snapshot.
func Load(name string) (canvas.Snapshot, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join(Dir, file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return canvas.Snapshot{}, fmt.Errorf("levels: read %s: %w", file, err)
	}
	return Decode(data)
}

func Decode(data []byte) (canvas.Snapshot, error) {
	var doc canvas.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return canvas.Snapshot{}, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if doc.TileSize <= 0 {
		return canvas.Snapshot{}, fmt.Errorf("levels: tile_size must be positive, got %d", doc.TileSize)
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return canvas.Snapshot{}, fmt.Errorf("levels: %w", err)
	}
	return snap, nil
}

// Save writes snap under Dir and returns the path written.
func Save(name string, snap canvas.Snapshot) (string, error) {
	data, err := snap.MarshalIndent()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return "", fmt.Errorf("levels: create %s: %w", Dir, err)
	}
	path := filepath.Join(Dir, fileName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("levels: write %s: %w", path, err)
	}
	return path, nil
}

// Names lists embedded and on-disk levels without their extension.
func Names() ([]string, error) {
	seen := map[string]struct{}{}
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: list embedded: %w", err)
	}
	if disk, err := os.ReadDir(Dir); err == nil {
		entries = append(entries, disk...)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		seen[strings.TrimSuffix(e.Name(), ".json")] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}
