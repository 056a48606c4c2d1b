package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/pistonsim"
	"github.com/oomph-ac/pistonsim/scenario"
	"github.com/oomph-ac/pistonsim/settings"
)

const extendingScenario = `
name: extending
ticks: 1
blocks:
  - pos: [0, 0, 0]
    name: minecraft:piston
    states: {facing_direction: 5, extended_bit: 0}
  - pos: [1, 0, 0]
    name: minecraft:stone
  - pos: [-1, 0, 0]
    name: minecraft:redstone_block
`

func TestSaveSnapshot(t *testing.T) {
	sc, err := scenario.Parse([]byte(extendingScenario))
	if err != nil {
		t.Fatalf("failed to parse scenario: %v", err)
	}
	res, err := scenario.Run(sc, settings.DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("failed to run scenario: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "snapshots")
	if err := saveSnapshot(dir, "scenarios/extending.yaml", res); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "extending.snapshot"))
	if err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}
	defer f.Close()

	sim := pistonsim.New(settings.DefaultSettings(), nil)
	if err := sim.Load(f); err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if sim.World.TickingBlocks() != res.Sim.World.TickingBlocks() {
		t.Fatalf("expected %v moving voxels, got %v", res.Sim.World.TickingBlocks(), sim.World.TickingBlocks())
	}
}

func TestSaveSnapshotError(t *testing.T) {
	sc, _ := scenario.Parse([]byte(extendingScenario))
	res, _ := scenario.Run(sc, settings.DefaultSettings(), nil)

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := saveSnapshot(file, "extending.yaml", res); err == nil {
		t.Fatalf("expected an error when the snapshot directory is a file")
	}
}

func TestScenarioPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	paths, err := scenarioPaths([]string{dir})
	if err != nil || len(paths) != 2 {
		t.Fatalf("expected two scenario files, got %v (%v)", paths, err)
	}
}
