// Package layout places artworks on the walls of a gallery room.
package layout

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
)

// Options controls wall placement.
// Spacing is the distance between neighbouring artworks. The room's own
// spacing wins; Spacing only applies to rooms that set none, and
// gallery.DefaultSpacing applies when neither does.
// Height is the centre height of every artwork. Inset is the gap between an
// artwork and the wall surface it hangs on.
type Options struct {
	Spacing float32 `yaml:"spacing"`
	Height  float32 `yaml:"height"`
	Inset   float32 `yaml:"inset"`
}

// DefaultOptions returns the museum's standard hanging rules.
func DefaultOptions() Options {
	return Options{
		Height: gallery.ArtworkHeight,
		Inset:  0.1,
	}
}

// Result is the output of Place. Dropped counts artworks that did not fit.
// Spacing, BackCapacity and SideCapacity are the values Place laid out with.
type Result struct {
	Placements   []gallery.PlacedArtwork
	Dropped      int
	Spacing      float32
	BackCapacity int
	SideCapacity int
}

// Spacing resolves the artwork spacing for room.
func Spacing(room gallery.Room, opts Options) float32 {
	switch {
	case room.Spacing > 0:
		return room.Spacing
	case opts.Spacing > 0:
		return opts.Spacing
	}
	return gallery.DefaultSpacing
}

// Capacity returns how many artworks fit on the back wall and on each side wall.
// Negative capacities clamp to zero.
func Capacity(room gallery.Room, spacing float32) (back, side int) {
	if spacing <= 0 {
		return 0, 0
	}
	back = int(math32.Floor(room.Width/spacing)) - 1
	side = int(math32.Floor(room.Depth/spacing)) - 2
	return max(back, 0), max(side, 0)
}

// Place assigns artworks to wall slots in order: back wall left to right,
// then the left wall front to back from the far corner, then the right wall.
// Artworks beyond total capacity are dropped. Place is pure: identical inputs
// give identical output.
func Place(room gallery.Room, artworks []gallery.ArtworkRecord, opts Options) Result {
	spacing := Spacing(room, opts)
	if opts.Height <= 0 {
		opts.Height = gallery.ArtworkHeight
	}
	if opts.Inset < 0 {
		opts.Inset = 0
	}

	backCap, sideCap := Capacity(room, spacing)
	halfW := room.Width * 0.5
	halfD := room.Depth * 0.5

	placements := make([]gallery.PlacedArtwork, 0, min(len(artworks), backCap+2*sideCap))
	next := 0
	take := func(wall gallery.Wall, slots int, pos func(i int) mgl32.Vec3, facing float32) {
		for i := 0; i < slots && next < len(artworks); i++ {
			placements = append(placements, gallery.PlacedArtwork{
				Artwork:  artworks[next],
				Position: pos(i),
				Facing:   facing,
				Wall:     wall,
				Slot:     i,
			})
			next++
		}
	}

	take(gallery.WallBack, backCap, func(i int) mgl32.Vec3 {
		return mgl32.Vec3{-halfW + spacing*float32(i+1), opts.Height, -halfD + opts.Inset}
	}, 0)
	take(gallery.WallLeft, sideCap, func(i int) mgl32.Vec3 {
		return mgl32.Vec3{-halfW + opts.Inset, opts.Height, -halfD + spacing*float32(i+2)}
	}, math32.Pi/2)
	take(gallery.WallRight, sideCap, func(i int) mgl32.Vec3 {
		return mgl32.Vec3{halfW - opts.Inset, opts.Height, -halfD + spacing*float32(i+2)}
	}, -math32.Pi/2)

	return Result{
		Placements:   placements,
		Dropped:      len(artworks) - next,
		Spacing:      spacing,
		BackCapacity: backCap,
		SideCapacity: sideCap,
	}
}
