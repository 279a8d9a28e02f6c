package world

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/cogworld/internal/game/inventory"
)

// yamlSeedFile is the top-level YAML structure for seed files.
type yamlSeedFile struct {
	Tiles []yamlTile `yaml:"tiles"`
}

// yamlTile is the YAML representation of a tile.
type yamlTile struct {
	Coords      Coord      `yaml:"coords"`
	Description string     `yaml:"description"`
	Exits       []string   `yaml:"exits"`
	Items       []yamlItem `yaml:"items"`
}

// yamlItem is the YAML representation of an item.
type yamlItem struct {
	Name     string     `yaml:"name"`
	Desc     string     `yaml:"desc"`
	Contains []yamlItem `yaml:"contains"`
}

// LoadSeedFromFile reads and validates a seed YAML file.
//
// Precondition: path must point to a valid YAML seed file.
// Postcondition: Returns validated tiles in file order or a non-nil error.
func LoadSeedFromFile(path string) ([]*Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return LoadSeedFromBytes(data)
}

// LoadSeedFromBytes parses and validates seed tiles from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the seed schema.
// Postcondition: Returns validated tiles in file order or a non-nil error.
func LoadSeedFromBytes(data []byte) ([]*Tile, error) {
	var file yamlSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	if len(file.Tiles) == 0 {
		return nil, fmt.Errorf("seed contains no tiles")
	}

	seen := make(map[Coord]bool, len(file.Tiles))
	tiles := make([]*Tile, 0, len(file.Tiles))
	for i, yt := range file.Tiles {
		if seen[yt.Coords] {
			return nil, fmt.Errorf("tile %d: duplicate coordinates %s", i, yt.Coords)
		}
		seen[yt.Coords] = true
		tile, err := convertYAMLTile(yt)
		if err != nil {
			return nil, fmt.Errorf("tile %d at %s: %w", i, yt.Coords, err)
		}
		tiles = append(tiles, tile)
	}
	return tiles, nil
}

// convertYAMLTile converts the parsed YAML structures into a Tile.
func convertYAMLTile(yt yamlTile) (*Tile, error) {
	tile := &Tile{
		Coord:       yt.Coords,
		Description: strings.TrimSpace(yt.Description),
	}
	for _, token := range yt.Exits {
		d, err := ParseDirection(token)
		if err != nil {
			return nil, err
		}
		tile.Exits.Set(d, true)
	}
	items, err := convertYAMLItems(yt.Items)
	if err != nil {
		return nil, err
	}
	tile.Items = inventory.NewTree(items)
	return tile, nil
}

func convertYAMLItems(yis []yamlItem) ([]inventory.Item, error) {
	var items []inventory.Item
	for _, yi := range yis {
		name := strings.TrimSpace(yi.Name)
		if name == "" {
			return nil, fmt.Errorf("item: %w", inventory.ErrEmptyName)
		}
		contains, err := convertYAMLItems(yi.Contains)
		if err != nil {
			return nil, fmt.Errorf("in %q: %w", name, err)
		}
		items = append(items, inventory.Item{
			Name:     name,
			Desc:     strings.TrimSpace(yi.Desc),
			Contains: contains,
		})
	}
	return items, nil
}
