// Package physics holds the museum's spatial queries: the walkable area of a
// room and ray picking against artwork frames.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
)

// DefaultPadding keeps the camera this far from every wall.
const DefaultPadding float32 = 2

// Box is the walkable rectangle of a room on the XZ plane.
type Box struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// RoomBounds returns the walkable area of room shrunk by padding on every side.
// When the room is narrower than twice the padding, that axis collapses to its centre.
func RoomBounds(room gallery.Room, padding float32) Box {
	hw := max(room.Width*0.5-padding, 0)
	hd := max(room.Depth*0.5-padding, 0)
	return Box{MinX: -hw, MaxX: hw, MinZ: -hd, MaxZ: hd}
}

// Contains reports whether p lies inside the box on X and Z.
func (b Box) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.MinX && p.X() <= b.MaxX && p.Z() >= b.MinZ && p.Z() <= b.MaxZ
}

// Clamp moves p inside the box on X and Z. Y is untouched.
// hitX and hitZ report which axes were clamped.
func (b Box) Clamp(p mgl32.Vec3) (out mgl32.Vec3, hitX, hitZ bool) {
	out = p
	if x := mgl32.Clamp(p.X(), b.MinX, b.MaxX); x != p.X() {
		out[0] = x
		hitX = true
	}
	if z := mgl32.Clamp(p.Z(), b.MinZ, b.MaxZ); z != p.Z() {
		out[2] = z
		hitZ = true
	}
	return out, hitX, hitZ
}
