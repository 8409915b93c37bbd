// Package tour builds the guided tour route and plays it back leg by leg.
package tour

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/physics"
)

// Tuning controls waypoint placement and playback.
type Tuning struct {
	// Offset is how far in front of an artwork its viewing spot lies.
	Offset float32 `yaml:"offset"`
	// Dwell is how long the tour stops at each artwork.
	Dwell time.Duration `yaml:"dwell"`
	// Speed sets leg duration from leg length, in units per second.
	Speed float32 `yaml:"speed"`
	// MinLeg is the shortest leg duration in seconds.
	MinLeg float32 `yaml:"min_leg"`
}

// DefaultTuning returns a 3-unit viewing distance and a 3 second stop.
func DefaultTuning() Tuning {
	return Tuning{Offset: 3, Dwell: 3 * time.Second, Speed: 3, MinLeg: 0.75}
}

// Waypoint is one stop of the tour: where to stand and where to look.
type Waypoint struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Dwell    time.Duration
	Artwork  gallery.PlacedArtwork
}

// Pose returns the camera transform at the waypoint.
func (w Waypoint) Pose() gallery.Pose {
	return gallery.Pose{Position: w.Position, Yaw: w.Yaw, Pitch: w.Pitch}
}

// BuildWaypoints derives one waypoint per placement, in placement order,
// standing Offset in front of the artwork at eye height and looking at it.
// Waypoints are clamped into bounds.
func BuildWaypoints(placements []gallery.PlacedArtwork, tuning Tuning, eyeHeight float32, bounds physics.Box) []Waypoint {
	out := make([]Waypoint, 0, len(placements))
	for _, p := range placements {
		pos := p.Position.Add(p.Normal().Mul(tuning.Offset))
		pos[1] = eyeHeight
		pos, _, _ = bounds.Clamp(pos)
		yaw, pitch := gallery.LookAt(pos, p.Position)
		out = append(out, Waypoint{Position: pos, Yaw: yaw, Pitch: pitch, Dwell: tuning.Dwell, Artwork: p})
	}
	return out
}

// leg tweens every pose component from one waypoint to the next.
type leg struct {
	x, y, z    *gween.Tween
	yaw, pitch *gween.Tween
}

func (l *leg) update(dt float32) (gallery.Pose, bool) {
	x, dx := l.x.Update(dt)
	y, dy := l.y.Update(dt)
	z, dz := l.z.Update(dt)
	yaw, dyaw := l.yaw.Update(dt)
	pitch, dp := l.pitch.Update(dt)
	pose := gallery.Pose{Position: mgl32.Vec3{x, y, z}, Yaw: gallery.WrapAngle(yaw), Pitch: pitch}
	return pose, dx && dy && dz && dyaw && dp
}

// Sequencer plays a list of waypoints. It is driven by Step once per tick;
// dwell time is counted in ticks, so abandoning the sequencer cancels it.
type Sequencer struct {
	tuning    Tuning
	waypoints []Waypoint
	index     int
	leg       *leg
	dwelling  bool
	dwellLeft float32
	done      bool
}

// NewSequencer returns a sequencer at the start of waypoints.
func NewSequencer(waypoints []Waypoint, tuning Tuning) *Sequencer {
	return &Sequencer{tuning: tuning, waypoints: waypoints, done: len(waypoints) == 0}
}

// Index returns the waypoint currently being approached or dwelt at.
func (s *Sequencer) Index() int {
	return s.index
}

// Len returns the number of waypoints.
func (s *Sequencer) Len() int {
	return len(s.waypoints)
}

// Current returns the waypoint being approached or dwelt at.
func (s *Sequencer) Current() (Waypoint, bool) {
	if s.done || s.index >= len(s.waypoints) {
		return Waypoint{}, false
	}
	return s.waypoints[s.index], true
}

// Dwelling reports whether the tour is paused at an artwork.
func (s *Sequencer) Dwelling() bool {
	return s.dwelling
}

// Done reports whether the last dwell has finished.
func (s *Sequencer) Done() bool {
	return s.done
}

// Step advances the tour by dt from the current camera pose and returns the
// pose to apply. done is true once the final dwell ends.
func (s *Sequencer) Step(dt float32, current gallery.Pose) (gallery.Pose, bool) {
	if s.done {
		return current, true
	}
	if s.dwelling {
		s.dwellLeft -= dt
		if s.dwellLeft > 0 {
			return current, false
		}
		// only the time past the dwell moves the next leg
		dt = -s.dwellLeft
		s.dwelling = false
		s.index++
		if s.index >= len(s.waypoints) {
			s.done = true
			return current, true
		}
	}
	if s.leg == nil {
		s.leg = s.newLeg(current, s.waypoints[s.index])
	}
	pose, arrived := s.leg.update(dt)
	if arrived {
		wp := s.waypoints[s.index]
		pose = wp.Pose()
		s.leg = nil
		s.dwelling = true
		s.dwellLeft = float32(wp.Dwell.Seconds())
	}
	return pose, false
}

func (s *Sequencer) newLeg(from gallery.Pose, to Waypoint) *leg {
	d := to.Position.Sub(from.Position).Len()
	dur := s.tuning.MinLeg
	if s.tuning.Speed > 0 {
		dur = max(dur, d/s.tuning.Speed)
	}
	if dur <= 0 {
		dur = 1e-3
	}
	yawTo := from.Yaw + gallery.AngleDelta(from.Yaw, to.Yaw)
	return &leg{
		x:     gween.New(from.Position.X(), to.Position.X(), dur, ease.InOutQuad),
		y:     gween.New(from.Position.Y(), to.Position.Y(), dur, ease.InOutQuad),
		z:     gween.New(from.Position.Z(), to.Position.Z(), dur, ease.InOutQuad),
		yaw:   gween.New(from.Yaw, yawTo, dur, ease.InOutQuad),
		pitch: gween.New(from.Pitch, to.Pitch, dur, ease.InOutQuad),
	}
}
