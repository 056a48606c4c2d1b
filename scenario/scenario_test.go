package scenario

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/oomph-ac/pistonsim"
	"github.com/oomph-ac/pistonsim/game"
	"github.com/oomph-ac/pistonsim/settings"
)

func TestRunTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("expected scenario files in testdata: %v", err)
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := Load(path)
			if err != nil {
				t.Fatalf("failed to load scenario: %v", err)
			}
			res, err := Run(sc, settings.DefaultSettings(), nil)
			if err != nil {
				t.Fatalf("failed to run scenario: %v", err)
			}
			if !res.Passed() {
				t.Fatalf("scenario %q failed:\n%v", res.Name, strings.Join(res.Mismatches, "\n"))
			}
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "extend_retract.yaml"))
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}
	a, _ := Run(sc, settings.DefaultSettings(), nil)
	b, _ := Run(sc, settings.DefaultSettings(), nil)
	if a.Digest != b.Digest {
		t.Fatalf("expected equal digests for equal runs, got %x and %x", a.Digest, b.Digest)
	}
}

func TestRunReportsMismatches(t *testing.T) {
	sc, err := Parse([]byte(`
name: mismatch
ticks: 1
blocks:
  - pos: [0, 0, 0]
    name: minecraft:stone
entities:
  - pos: [0.5, 1, 0.5]
expect:
  blocks:
    - pos: [0, 0, 0]
      name: minecraft:dirt
  entities:
    - index: 0
      pos: [4, 1, 0.5]
  destroyed: 1
`))
	if err != nil {
		t.Fatalf("failed to parse scenario: %v", err)
	}
	res, err := Run(sc, settings.DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("failed to run scenario: %v", err)
	}
	if res.Passed() || len(res.Mismatches) != 3 {
		t.Fatalf("expected three mismatches, got %v", res.Mismatches)
	}
}

func TestParseInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"no ticks":      "name: a\nticks: 0\n",
		"unknown voxel": "name: a\nticks: 1\nblocks:\n  - pos: [0, 0, 0]\n    name: minecraft:unknown\n",
		"late action":   "name: a\nticks: 1\nactions:\n  - tick: 2\n",
		"early action":  "name: a\nticks: 1\nactions:\n  - tick: 0\n",
		"no entity":     "name: a\nticks: 1\nexpect:\n  entities:\n    - index: 0\n",
		"bad yaml":      "name: [a\n",
		"bad size":      "name: a\nticks: 1\nentities:\n  - pos: [0, 0, 0]\n    size: [0, 1]\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%v: expected an error", name)
		}
	}
}

func TestEntitySize(t *testing.T) {
	sc, err := Parse([]byte(`
name: size
ticks: 1
entities:
  - pos: [0.5, 0, 0.5]
    size: [0.4, 0.9]
  - pos: [4.5, 0, 0.5]
`))
	if err != nil {
		t.Fatalf("failed to parse scenario: %v", err)
	}
	res, err := Run(sc, settings.DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("failed to run scenario: %v", err)
	}
	small, _ := res.Sim.Entities.Entity(1)
	if small.AABB() != game.AABBFromDimensions(0.4, 0.9) {
		t.Fatalf("expected sized entity AABB, got %v", small.AABB())
	}
	def, _ := res.Sim.Entities.Entity(2)
	if def.AABB() != game.AABBFromDimensions(0.6, 1.8) {
		t.Fatalf("expected default entity AABB, got %v", def.AABB())
	}
}

func TestCompareUnknownState(t *testing.T) {
	sim := pistonsim.New(settings.DefaultSettings(), nil)
	exp := Expectation{Blocks: []BlockSpec{{Name: "minecraft:unknown"}}}
	if _, err := compare(exp, sim, nil, 0); err == nil {
		t.Fatalf("expected an error for an unknown expected state")
	}
}
