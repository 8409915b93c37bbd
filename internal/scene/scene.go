// Package scene assembles the renderable description of a gallery room:
// floor, ceiling and walls, a frame and canvas per resolved artwork, one
// spotlight per artwork and the frames the pointer can hit. It holds no GPU
// state; the renderer turns a Scene into draw calls.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/physics"
)

const (
	// CanvasHeight is the height of every artwork image; width follows its aspect.
	CanvasHeight float32 = 1.5
	// FrameBorder is the frame moulding around the canvas.
	FrameBorder float32 = 0.05
	// FrameDepth is how far a frame stands off its wall.
	FrameDepth float32 = 0.08
	// WallThickness is the depth of the wall slabs, built outside the room.
	WallThickness float32 = 0.2
	// FrameColor is the dark lacquer of every frame.
	FrameColor = "#1a1a1a"
)

// Kind names the role of a Geometry.
type Kind int

const (
	Floor Kind = iota
	Ceiling
	Wall
	FrameBox
	Canvas
)

// Geometry is an oriented box. Size is in the box's local axes: X along the
// face, Y up, Z out of the face. Rotation turns local +Z to world about +Y.
type Geometry struct {
	Kind      Kind
	Center    mgl32.Vec3
	Size      mgl32.Vec3
	Rotation  float32
	Color     string
	ArtworkID string
}

// Light is a spotlight aimed at one artwork.
type Light struct {
	ArtworkID string
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Color     string
	Intensity float32
	Angle     float32
	Range     float32
}

// Piece is a placed artwork whose image has resolved; Aspect is width/height.
type Piece struct {
	Placement gallery.PlacedArtwork
	Aspect    float32
}

// Scene is everything needed to draw and hit-test a room.
type Scene struct {
	Room     gallery.Room
	Static   []Geometry
	Artworks []Geometry
	Lights   []Light
	Frames   []physics.Frame
}

// CanvasSize returns the image size for an aspect ratio.
func CanvasSize(aspect float32) (w, h float32) {
	if aspect <= 0 {
		aspect = 1
	}
	return CanvasHeight * aspect, CanvasHeight
}

// FrameFor returns the hit-test rectangle of a piece. index is stored on the
// frame so picks map back to the caller's slice.
func FrameFor(p Piece, index int) physics.Frame {
	w, h := CanvasSize(p.Aspect)
	n := p.Placement.Normal()
	return physics.Frame{
		Index:  index,
		Center: p.Placement.Position.Add(n.Mul(FrameDepth * 0.5)),
		Normal: n,
		Width:  w + 2*FrameBorder,
		Height: h + 2*FrameBorder,
	}
}

// Spotlight returns the light for a placed artwork: three units above and two
// in front of it, aimed at its centre.
func Spotlight(p gallery.PlacedArtwork) Light {
	pos := p.Position.Add(p.Normal().Mul(2))
	pos[1] += 3
	return Light{
		ArtworkID: p.Artwork.ID,
		Position:  pos,
		Target:    p.Position,
		Color:     "#fff5e6",
		Intensity: 1.5,
		Angle:     math32.Pi / 8,
		Range:     15,
	}
}

// Assemble builds the scene for room with the given resolved pieces.
func Assemble(room gallery.Room, pieces []Piece) Scene {
	s := Scene{Room: room, Static: shell(room)}
	for i, p := range pieces {
		w, h := CanvasSize(p.Aspect)
		pl := p.Placement
		n := pl.Normal()
		s.Artworks = append(s.Artworks,
			Geometry{
				Kind:      FrameBox,
				Center:    pl.Position,
				Size:      mgl32.Vec3{w + 2*FrameBorder, h + 2*FrameBorder, FrameDepth},
				Rotation:  pl.Facing,
				Color:     FrameColor,
				ArtworkID: pl.Artwork.ID,
			},
			Geometry{
				Kind:      Canvas,
				Center:    pl.Position.Add(n.Mul(FrameDepth*0.5 + 0.001)),
				Size:      mgl32.Vec3{w, h, 0},
				Rotation:  pl.Facing,
				ArtworkID: pl.Artwork.ID,
			},
		)
		s.Lights = append(s.Lights, Spotlight(pl))
		s.Frames = append(s.Frames, FrameFor(p, i))
	}
	return s
}

// shell returns floor, ceiling and the four walls of room.
func shell(room gallery.Room) []Geometry {
	hw, hd, h := room.Width*0.5, room.Depth*0.5, room.Height
	t := WallThickness
	wall := func(center mgl32.Vec3, length, rot float32) Geometry {
		return Geometry{Kind: Wall, Center: center, Size: mgl32.Vec3{length, h, t}, Rotation: rot, Color: room.WallColor}
	}
	return []Geometry{
		{Kind: Floor, Center: mgl32.Vec3{0, -t * 0.5, 0}, Size: mgl32.Vec3{room.Width, t, room.Depth}, Color: room.FloorColor},
		{Kind: Ceiling, Center: mgl32.Vec3{0, h + t*0.5, 0}, Size: mgl32.Vec3{room.Width, t, room.Depth}, Color: room.WallColor},
		wall(mgl32.Vec3{0, h * 0.5, -hd - t*0.5}, room.Width, 0),
		wall(mgl32.Vec3{0, h * 0.5, hd + t*0.5}, room.Width, math32.Pi),
		wall(mgl32.Vec3{-hw - t*0.5, h * 0.5, 0}, room.Depth, math32.Pi/2),
		wall(mgl32.Vec3{hw + t*0.5, h * 0.5, 0}, room.Depth, -math32.Pi/2),
	}
}
