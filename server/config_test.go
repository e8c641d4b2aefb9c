package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tactica/world"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != TicksPerSecond || cfg.Planner != "floodfill" || len(cfg.Actors) != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	p := writeTemp(t, `
tick_rate = 10
planner = "dijkstra"
map = ["...", ".#.", "..."]

[timings]
move_to = 0.1

[[actors]]
name = "Solo"
player = "alice"
x = 0
y = 0
`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 10 || cfg.Planner != "dijkstra" {
		t.Fatalf("tick_rate=%d planner=%s", cfg.TickRate, cfg.Planner)
	}
	if cfg.Timings.MoveToSec != 0.1 || cfg.Timings.NopSec != 0.5 {
		t.Fatalf("timings = %+v", cfg.Timings)
	}
	if cfg.StepCostFt != 5 || cfg.StatblockDir != "data/statblocks" {
		t.Fatal("keys absent from the file keep their defaults")
	}
	if len(cfg.Actors) != 1 || cfg.Actors[0].Name != "Solo" || len(cfg.Map) != 3 {
		t.Fatalf("actors=%v map=%v", cfg.Actors, cfg.Map)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"tick rate", "tick_rate = 0", "tick_rate"},
		{"planner", `planner = "astar"`, "unknown planner"},
		{"timings", "[timings]\nnop = -1", "timings.nop"},
		{"step cost", "step_cost_ft = 0", "step_cost_ft"},
		{"empty map", "map = []", "empty map"},
		{"syntax", "tick_rate = = 3", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeTemp(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestExampleConfigBuildsAnEncounter(t *testing.T) {
	cfg, err := LoadConfig("../config.example.toml")
	if err != nil {
		t.Fatal(err)
	}
	sb, err := world.LoadStatblocks("../data/statblocks")
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEncounter("example", cfg, sb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.Actors.Len() != 4 || e.Grid.Size() != 12 {
		t.Fatalf("actors=%d size=%d", e.Actors.Len(), e.Grid.Size())
	}
}
