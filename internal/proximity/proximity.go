// Package proximity finds the artwork a visitor is standing near and looking at.
package proximity

import (
	"virtual-museum/internal/gallery"
)

// Tuning controls when an artwork becomes the active hint.
// An artwork qualifies when it is closer than Distance and the cosine between
// the view direction and the direction to the artwork exceeds Cone.
type Tuning struct {
	Distance float32 `yaml:"distance"`
	Cone     float32 `yaml:"cone"`
}

// DefaultTuning returns an 8-unit reach and a cone of about 60 degrees.
func DefaultTuning() Tuning {
	return Tuning{Distance: 8, Cone: 0.5}
}

// Detector tracks the single active hint target.
type Detector struct {
	tuning Tuning
	active *gallery.PlacedArtwork
}

// New returns a detector with no active target.
func New(tuning Tuning) *Detector {
	return &Detector{tuning: tuning}
}

// Active returns the current target, or nil.
func (d *Detector) Active() *gallery.PlacedArtwork {
	return d.active
}

// Clear drops the current target. It reports whether there was one.
func (d *Detector) Clear() bool {
	had := d.active != nil
	d.active = nil
	return had
}

// Nearest returns the index of the closest qualifying placement, or -1.
// Ties keep the earlier placement.
func (d *Detector) Nearest(pose gallery.Pose, placements []gallery.PlacedArtwork) int {
	forward := pose.Forward()
	best, bestDist := -1, d.tuning.Distance
	for i, p := range placements {
		to := p.Position.Sub(pose.Position)
		dist := to.Len()
		if dist >= bestDist {
			continue
		}
		if dist > 0 && forward.Dot(to.Mul(1/dist)) <= d.tuning.Cone {
			continue
		}
		best, bestDist = i, dist
	}
	return best
}

// Update re-evaluates the target for pose. changed reports whether the
// target differs from the previous tick's, by artwork ID.
func (d *Detector) Update(pose gallery.Pose, placements []gallery.PlacedArtwork) (active *gallery.PlacedArtwork, changed bool) {
	var next *gallery.PlacedArtwork
	if i := d.Nearest(pose, placements); i >= 0 {
		p := placements[i]
		next = &p
	}
	switch {
	case d.active == nil && next == nil:
		changed = false
	case d.active == nil || next == nil:
		changed = true
	default:
		changed = d.active.Artwork.ID != next.Artwork.ID
	}
	d.active = next
	return next, changed
}
