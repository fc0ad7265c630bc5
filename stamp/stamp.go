// Package stamp runs tengo scripts that lay down a batch of tiles and
// objects relative to an anchor cell.
package stamp

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/levelmaker/prefabs"
)

// MaxEdits bounds the number of placements one stamp may emit.
const MaxEdits = 4096

var (
	ErrUnknownType  = errors.New("stamp: unknown type")
	ErrTooManyEdits = errors.New("stamp: too many edits")
	ErrBadArgument  = errors.New("stamp: bad argument")
)

// Edit is one placement relative to the anchor cell.
type Edit struct {
	Col    int
	Row    int
	TypeID int
}

// Result is the output of one stamp run. Offset shifts every edit and comes
// from the script's optional `initial_offset = [col, row]`.
type Result struct {
	Edits     []Edit
	OffsetCol int
	OffsetRow int
}

type Params struct {
	Width  int
	Height int
}

// Types is the slice of the catalog a stamp needs.
type Types interface {
	Types() []*prefabs.Type
	Type(id int) (*prefabs.Type, bool)
}

// RunNamed loads a script through prefabs and runs it.
func RunNamed(ctx context.Context, name string, params Params, types Types) (Result, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return Result{}, fmt.Errorf("stamp: load %s: %w", name, err)
	}
	res, err := Run(ctx, src, params, types)
	if err != nil {
		return Result{}, fmt.Errorf("stamp: %s: %w", name, err)
	}
	return res, nil
}

// Run executes src. The script sees `width`, `height`, a `tile` map from type
// names to ids, and `place(col, row, name_or_id)`.
func Run(ctx context.Context, src []byte, params Params, types Types) (Result, error) {
	byName := map[string]int{}
	tileMap := map[string]any{}
	for _, t := range types.Types() {
		if t.Name == "" {
			continue
		}
		byName[t.Name] = t.ID
		tileMap[t.Name] = t.ID
	}

	var (
		edits    []Edit
		placeErr error
	)
	place := &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		col, ok := tengo.ToInt(args[0])
		if !ok {
			placeErr = fmt.Errorf("%w: col %s", ErrBadArgument, args[0].TypeName())
			return nil, placeErr
		}
		row, ok := tengo.ToInt(args[1])
		if !ok {
			placeErr = fmt.Errorf("%w: row %s", ErrBadArgument, args[1].TypeName())
			return nil, placeErr
		}
		id, err := resolveType(args[2], byName, types)
		if err != nil {
			placeErr = err
			return nil, err
		}
		if len(edits) >= MaxEdits {
			placeErr = ErrTooManyEdits
			return nil, placeErr
		}
		edits = append(edits, Edit{Col: col, Row: row, TypeID: id})
		return tengo.TrueValue, nil
	}}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, v := range map[string]any{
		"width":  params.Width,
		"height": params.Height,
		"tile":   tileMap,
		"place":  place,
	} {
		if err := script.Add(name, v); err != nil {
			return Result{}, fmt.Errorf("stamp: add %s: %w", name, err)
		}
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		if placeErr != nil {
			return Result{}, placeErr
		}
		return Result{}, fmt.Errorf("stamp: run: %w", err)
	}

	res := Result{Edits: edits}
	if compiled.IsDefined("initial_offset") {
		off := compiled.Get("initial_offset").Array()
		if len(off) != 2 {
			return Result{}, fmt.Errorf("%w: initial_offset wants [col, row]", ErrBadArgument)
		}
		col, okCol := toInt(off[0])
		row, okRow := toInt(off[1])
		if !okCol || !okRow {
			return Result{}, fmt.Errorf("%w: initial_offset wants integers", ErrBadArgument)
		}
		res.OffsetCol, res.OffsetRow = col, row
	}
	return res, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func resolveType(obj tengo.Object, byName map[string]int, types Types) (int, error) {
	switch v := obj.(type) {
	case *tengo.String:
		id, ok := byName[v.Value]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownType, v.Value)
		}
		return id, nil
	case *tengo.Int:
		id := int(v.Value)
		if _, ok := types.Type(id); !ok {
			return 0, fmt.Errorf("%w: id %d", ErrUnknownType, id)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: type %s", ErrBadArgument, obj.TypeName())
	}
}
