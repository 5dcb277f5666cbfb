package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-vanguard/internal/core"
)

//go:embed defaults/*.yaml
var defaultLevelFS embed.FS

// yamlLevel is the on-disk structure of a level file.
type yamlLevel struct {
	Name  string   `yaml:"name"`
	Size  yamlSize `yaml:"size"`
	Spawn yamlPos  `yaml:"spawn"`

	Terrain []yamlBlock `yaml:"terrain"`
	Cages   []yamlRect  `yaml:"cages"`
	Roster  []yamlSpawn `yaml:"hostiles"`
	Boss    *yamlSpawn  `yaml:"boss,omitempty"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlPos struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlBlock struct {
	yamlRect     `yaml:",inline"`
	Destructible bool `yaml:"destructible,omitempty"`
	Health       int  `yaml:"health,omitempty"`
}

type yamlSpawn struct {
	yamlRect     `yaml:",inline"`
	Facing       int     `yaml:"facing"`
	Speed        float64 `yaml:"speed"`
	FireCooldown int     `yaml:"fire_cooldown"`
	Major        bool    `yaml:"major,omitempty"`
}

func (r yamlRect) rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}

func (s yamlSpawn) spawn() Spawn {
	facing := s.Facing
	if facing == 0 {
		facing = -1
	}
	return Spawn{
		Rect:         s.rect(),
		Facing:       facing,
		Speed:        s.Speed,
		FireCooldown: s.FireCooldown,
		Major:        s.Major,
	}
}

// Parse parses and validates a single YAML level.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}

	lvl := Level{
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
		SpawnX: yl.Spawn.X,
		SpawnY: yl.Spawn.Y,
	}

	for _, b := range yl.Terrain {
		lvl.Terrain = append(lvl.Terrain, Block{
			Rect:         b.rect(),
			Destructible: b.Destructible,
			Health:       b.Health,
		})
	}
	for _, c := range yl.Cages {
		lvl.Cages = append(lvl.Cages, c.rect())
	}
	for _, s := range yl.Roster {
		lvl.Roster = append(lvl.Roster, s.spawn())
	}
	if yl.Boss != nil {
		boss := yl.Boss.spawn()
		lvl.Boss = &boss
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// LoadCampaign returns the built-in campaign, sorted by file name for
// deterministic level order.
func LoadCampaign() ([]Level, error) {
	entries, err := defaultLevelFS.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded campaign: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	lvls := make([]Level, 0, len(names))
	for _, name := range names {
		data, err := defaultLevelFS.ReadFile("defaults/" + name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading embedded level %s: %w", name, err)
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		lvls = append(lvls, lvl)
	}

	if len(lvls) == 0 {
		return nil, fmt.Errorf("levels: embedded campaign is empty")
	}
	return lvls, nil
}

// LoadDir loads all *.yaml levels from a directory, sorted by file name.
// A broken file is an error: custom campaigns fail loudly at load time.
func LoadDir(dir string) ([]Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("levels: reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", dir)
	}

	lvls := make([]Level, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", path, err)
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", path, err)
		}
		lvls = append(lvls, lvl)
	}
	return lvls, nil
}
