package game

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func TestBBClipCollide(t *testing.T) {
	wall := cube.Box(2, 0, 0, 3, 1, 1)
	box := cube.Box(1, 0, 0, 1.5, 1, 1)

	if vel := BBClipCollide(wall, box, mgl32.Vec3{0.25}, true, nil); vel != (mgl32.Vec3{0.25}) {
		t.Fatalf("expected movement short of the wall to be kept, got %v", vel)
	}
	if vel := BBClipCollide(wall, box, mgl32.Vec3{1}, true, nil); vel != (mgl32.Vec3{0.5}) {
		t.Fatalf("expected movement to be clipped at the wall, got %v", vel)
	}
	if vel := BBClipCollide(wall, box, mgl32.Vec3{-1}, true, nil); vel != (mgl32.Vec3{-1}) {
		t.Fatalf("expected movement away from the wall to be kept, got %v", vel)
	}

	var penetration float32
	inside := cube.Box(2.75, 0, 0, 3.5, 1, 1)
	if vel := BBClipCollide(wall, inside, mgl32.Vec3{}, false, &penetration); vel != (mgl32.Vec3{0.25}) || penetration != 0.25 {
		t.Fatalf("expected overlapping box to be pushed out, got %v with penetration %v", vel, penetration)
	}
}

func TestBoxConversion(t *testing.T) {
	box := cube.Box(-0.5, 0, -0.5, 0.5, 1.5, 0.5)
	if got := DFBoxToCubeBox(CubeBoxToDFBox(box)); got != box {
		t.Fatalf("expected conversion to be lossless, got %v", got)
	}
	if got := AABBFromDimensions(1, 1.5); got != box {
		t.Fatalf("unexpected box from dimensions: %v", got)
	}
}
