package museum

import (
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/scene"
)

// Marker is an artwork on the minimap.
type Marker struct {
	Pos      mgl32.Vec2
	ID       string
	Resolved bool
	Active   bool
}

// Minimap is the room seen from above, scaled to a Width x Height panel with
// the back wall at the top.
type Minimap struct {
	Width, Height float32
	Player        mgl32.Vec2
	Heading       mgl32.Vec2
	Markers       []Marker
}

// Minimap projects the player and artworks into a w x h panel.
func (m *Museum) Minimap(w, h float32) Minimap {
	room := m.room
	project := func(x, z float32) mgl32.Vec2 {
		if room.Width <= 0 || room.Depth <= 0 {
			return mgl32.Vec2{w / 2, h / 2}
		}
		return mgl32.Vec2{(x/room.Width + 0.5) * w, (z/room.Depth + 0.5) * h}
	}
	pose := m.cam.Pose()
	fwd := pose.Forward()
	heading := mgl32.Vec2{fwd.X(), fwd.Z()}
	if heading.Len() > 0 {
		heading = heading.Normalize()
	}
	out := Minimap{
		Width:   w,
		Height:  h,
		Player:  project(pose.Position.X(), pose.Position.Z()),
		Heading: heading,
	}
	hint := m.prox.Active()
	for i, p := range m.placements {
		out.Markers = append(out.Markers, Marker{
			Pos:      project(p.Position.X(), p.Position.Z()),
			ID:       p.Artwork.ID,
			Resolved: m.loaded[i] != nil,
			Active:   hint != nil && hint.Artwork.ID == p.Artwork.ID,
		})
	}
	return out
}

// Scene assembles the renderable room with every resolved artwork.
func (m *Museum) Scene() scene.Scene {
	return scene.Assemble(m.room, m.pieces)
}
