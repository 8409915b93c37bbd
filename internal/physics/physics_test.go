package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
)

func TestRoomBounds(t *testing.T) {
	b := RoomBounds(gallery.Room{Width: 30, Depth: 40}, DefaultPadding)
	want := Box{MinX: -13, MaxX: 13, MinZ: -18, MaxZ: 18}
	if b != want {
		t.Errorf("RoomBounds = %+v, want %+v", b, want)
	}
	if tiny := RoomBounds(gallery.Room{Width: 3, Depth: 3}, DefaultPadding); tiny.MinX != 0 || tiny.MaxX != 0 {
		t.Errorf("tiny room bounds = %+v, want collapsed X", tiny)
	}
}

func TestClamp(t *testing.T) {
	b := Box{MinX: -1, MaxX: 1, MinZ: -2, MaxZ: 2}
	p, hx, hz := b.Clamp(mgl32.Vec3{5, 1.7, 0})
	if p != (mgl32.Vec3{1, 1.7, 0}) || !hx || hz {
		t.Errorf("Clamp = %v %v %v", p, hx, hz)
	}
	p, hx, hz = b.Clamp(mgl32.Vec3{0, 3, -9})
	if p != (mgl32.Vec3{0, 3, -2}) || hx || !hz {
		t.Errorf("Clamp = %v %v %v", p, hx, hz)
	}
	if !b.Contains(p) {
		t.Errorf("Contains(%v) = false after Clamp", p)
	}
}

func backWallFrame(x float32) Frame {
	return Frame{Center: mgl32.Vec3{x, 1.6, -10}, Normal: mgl32.Vec3{0, 0, 1}, Width: 2, Height: 1.5}
}

func TestRayIntersectFrontFace(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 1.6, 0}, Dir: mgl32.Vec3{0, 0, -1}}
	d, ok := r.Intersect(backWallFrame(0))
	if !ok || d != 10 {
		t.Errorf("Intersect = %v, %v; want 10, true", d, ok)
	}
	if _, ok := r.Intersect(backWallFrame(3)); ok {
		t.Error("ray hit a frame it passes beside")
	}
	behind := Ray{Origin: mgl32.Vec3{0, 1.6, -20}, Dir: mgl32.Vec3{0, 0, 1}}
	if _, ok := behind.Intersect(backWallFrame(0)); ok {
		t.Error("ray hit the back of a frame")
	}
}

func TestPickNearestWithinRange(t *testing.T) {
	near := Frame{Center: mgl32.Vec3{0, 1.6, -4}, Normal: mgl32.Vec3{0, 0, 1}, Width: 1, Height: 1}
	frames := []Frame{backWallFrame(0), near}
	r := Ray{Origin: mgl32.Vec3{0, 1.6, 0}, Dir: mgl32.Vec3{0, 0, -1}}

	idx, d, ok := Pick(r, frames, DefaultPickDistance)
	if !ok || idx != 1 || d != 4 {
		t.Errorf("Pick = %d, %v, %v; want 1, 4, true", idx, d, ok)
	}
	if _, _, ok := Pick(r, frames[:1], 5); ok {
		t.Error("Pick reached past maxDist")
	}
}
