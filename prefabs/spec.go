package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CatalogSpec is the raw form of catalog.yaml.
type CatalogSpec struct {
	Types            []TypeSpec `yaml:"types"`
	FallbackVariant  string     `yaml:"fallback_variant"`
	AutotileVariants []string   `yaml:"autotile_variants"`
}

// TypeSpec describes one placeable type.
type TypeSpec struct {
	ID         int        `yaml:"id"`
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Style      string     `yaml:"style"`
	Background bool       `yaml:"background"`
	Deletable  *bool      `yaml:"deletable"`
	Menu       bool       `yaml:"menu"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Color      *YAMLColor `yaml:"color"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SettingsSpec holds editor-wide constants from settings.yaml.
type SettingsSpec struct {
	TileSize             int       `yaml:"tile_size"`
	WindowWidth          int       `yaml:"window_width"`
	WindowHeight         int       `yaml:"window_height"`
	WheelPanStep         float64   `yaml:"wheel_pan_step"`
	ObjectCooldownFrames int       `yaml:"object_cooldown_frames"`
	AnimationFPS         float64   `yaml:"animation_fps"`
	InitialSelection     int       `yaml:"initial_selection"`
	PlayerStart          PointSpec `yaml:"player_start"`
	HorizonStart         PointSpec `yaml:"horizon_start"`
}

func LoadSettings() (*SettingsSpec, error) {
	spec, err := LoadSpec[SettingsSpec]("settings.yaml")
	if err != nil {
		return nil, err
	}
	if spec.TileSize <= 0 {
		return nil, fmt.Errorf("prefabs: settings.yaml: tile_size must be positive, got %d", spec.TileSize)
	}
	if spec.ObjectCooldownFrames < 0 {
		spec.ObjectCooldownFrames = 0
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
