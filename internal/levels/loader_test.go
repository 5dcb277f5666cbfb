package levels

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCampaign(t *testing.T) {
	lvls, err := LoadCampaign()
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if len(lvls) < 3 {
		t.Fatalf("expected at least 3 campaign levels, got %d", len(lvls))
	}
	if lvls[0].Name != "Outskirts" {
		t.Errorf("first level = %q, want Outskirts", lvls[0].Name)
	}
	last := lvls[len(lvls)-1]
	if last.Boss == nil {
		t.Error("final level should have a boss")
	}
	for _, lvl := range lvls {
		if err := lvl.Validate(); err != nil {
			t.Errorf("level %q invalid: %v", lvl.Name, err)
		}
		if len(lvl.Roster) == 0 {
			t.Errorf("level %q has no hostiles", lvl.Name)
		}
	}
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero size", `
name: broken
size: {w: 0, h: 30}
spawn: {x: 1, y: 1}
`},
		{"spawn out of bounds", `
name: broken
size: {w: 40, h: 30}
spawn: {x: 99, y: 1}
`},
		{"destructible without health", `
name: broken
size: {w: 40, h: 30}
spawn: {x: 1, y: 1}
terrain:
  - {x: 5, y: 5, w: 2, h: 2, destructible: true}
`},
		{"two majors", `
name: broken
size: {w: 40, h: 30}
spawn: {x: 1, y: 1}
hostiles:
  - {x: 5, y: 5, w: 2, h: 3, speed: 0.2, fire_cooldown: 60, major: true}
boss: {x: 10, y: 5, w: 4, h: 5, speed: 0.2, fire_cooldown: 60, major: true}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParseDefaultsFacingLeft(t *testing.T) {
	lvl, err := Parse([]byte(`
name: tiny
size: {w: 40, h: 30}
spawn: {x: 1, y: 1}
hostiles:
  - {x: 5, y: 5, w: 2, h: 3, speed: 0.2, fire_cooldown: 60}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := lvl.Roster[0].Facing; got != -1 {
		t.Errorf("default facing = %d, want -1", got)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	good := `
name: custom
size: {w: 60, h: 30}
spawn: {x: 2, y: 2}
hostiles:
  - {x: 10, y: 10, w: 2, h: 3, speed: 0.2, fire_cooldown: 60}
`
	if err := os.WriteFile(filepath.Join(dir, "01_custom.yaml"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	lvls, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(lvls) != 1 || lvls[0].Name != "custom" {
		t.Fatalf("unexpected levels: %+v", lvls)
	}

	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("empty directory should be an error")
	}
}
