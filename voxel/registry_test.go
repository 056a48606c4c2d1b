package voxel

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
)

func TestByNameRoundTrip(t *testing.T) {
	for _, s := range []State{Air{}, Stone, Chest, Slime{}, Honey{}, PowerSource{}, Lever{On: true}} {
		name, props := Encode(s)
		got, ok := ByName(name, props)
		if !ok {
			t.Fatalf("expected %v to be registered", name)
		}
		if got != s {
			t.Fatalf("expected %#v, got %#v", s, got)
		}
	}
}

func TestByNameNormalisesPropertyTypes(t *testing.T) {
	s, ok := ByName("minecraft:lever", map[string]any{"open_bit": uint8(1)})
	if !ok {
		t.Fatalf("expected lever with byte property to resolve")
	}
	if s != (Lever{On: true}) {
		t.Fatalf("expected powered lever, got %#v", s)
	}
	if _, ok := ByName("minecraft:not_a_block", nil); ok {
		t.Fatalf("unknown state must not resolve")
	}
}

func TestBonds(t *testing.T) {
	cases := []struct {
		a, b Adhesion
		want bool
	}{
		{AdhesionSlime, AdhesionSlime, true},
		{AdhesionHoney, AdhesionHoney, true},
		{AdhesionSlime, AdhesionHoney, false},
		{AdhesionHoney, AdhesionSlime, false},
		{AdhesionSlime, AdhesionNone, true},
		{AdhesionNone, AdhesionHoney, true},
		{AdhesionNone, AdhesionNone, false},
	}
	for _, c := range cases {
		if got := Bonds(c.a, c.b); got != c.want {
			t.Fatalf("Bonds(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestFacets(t *testing.T) {
	if !Unbreakable(Bedrock) || Unbreakable(Stone) {
		t.Fatalf("unexpected unbreakable facet")
	}
	if !Immovable(Obsidian) || Immovable(Stone) {
		t.Fatalf("unexpected immovable facet")
	}
	if !HasStorage(Chest) || HasStorage(Glass) {
		t.Fatalf("unexpected storage facet")
	}
	if ReactionOf(Torch) != PushDestroy || ReactionOf(Slime{}) != PushNormal {
		t.Fatalf("unexpected push reaction")
	}
	if CollisionShape(Torch, cube.Pos{}, ShapeQuery{}) != nil {
		t.Fatalf("passable block must have no collision shape")
	}
	if !IsAir(nil) || !IsAir(Air{}) || IsAir(Stone) {
		t.Fatalf("unexpected air facet")
	}
}
