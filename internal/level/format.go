package level

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilequest/internal/core"
)

// yamlLevel is the on-disk structure of a level file.
type yamlLevel struct {
	Index  int         `yaml:"index"`
	Name   string      `yaml:"name"`
	Size   yamlSize    `yaml:"size"`
	Layers []yamlLayer `yaml:"layers"`
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlLayer struct {
	Name     string       `yaml:"name"`
	Entities []yamlEntity `yaml:"entities,omitempty"`
	Cells    []yamlCell   `yaml:"cells,omitempty"`
}

type yamlEntity struct {
	ID string `yaml:"id"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
}

type yamlCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.Index < 0 {
		return Level{}, fmt.Errorf("%w: negative level index %d", ErrInvariant, yl.Index)
	}
	if yl.Size.W < 0 || yl.Size.H < 0 {
		return Level{}, fmt.Errorf("%w: negative size %dx%d", ErrInvariant, yl.Size.W, yl.Size.H)
	}

	lvl := Level{
		Index:  yl.Index,
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
		Layers: make([]Layer, 0, len(yl.Layers)),
	}
	for _, yl := range yl.Layers {
		layer := Layer{Name: yl.Name}
		for _, e := range yl.Entities {
			layer.Instances = append(layer.Instances, Instance{
				Identifier: e.ID,
				Coord:      core.C(e.X, e.Y),
			})
		}
		for _, c := range yl.Cells {
			layer.Cells = append(layer.Cells, core.C(c.X, c.Y))
		}
		lvl.Layers = append(lvl.Layers, layer)
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
