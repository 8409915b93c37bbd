// Package camera arbitrates who owns the camera transform. Exactly one mode
// is active at a time: Explore hands the transform to the navigation
// controller, Focus animates toward a single artwork and back, and Tour
// plays a waypoint sequence.
package camera

import (
	"github.com/chewxy/math32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/navigation"
	"virtual-museum/internal/physics"
	"virtual-museum/internal/tour"
)

// Mode is the camera mode. The zero value is Explore.
type Mode int

const (
	Explore Mode = iota
	Focus
	Tour
)

func (m Mode) String() string {
	switch m {
	case Explore:
		return "explore"
	case Focus:
		return "focus"
	case Tour:
		return "tour"
	}
	return "unknown"
}

// Phase is the sub-state of Focus mode.
type Phase int

const (
	Approaching Phase = iota
	Holding
	Returning
)

// EventKind names a mode transition reported to the machine's listener.
type EventKind int

const (
	ArtworkSelected EventKind = iota
	InfoPanel
	ArtworkDeselected
	TourStarted
	TourEnded
)

func (k EventKind) String() string {
	switch k {
	case ArtworkSelected:
		return "artwork_selected"
	case InfoPanel:
		return "info_panel"
	case ArtworkDeselected:
		return "artwork_deselected"
	case TourStarted:
		return "tour_started"
	case TourEnded:
		return "tour_ended"
	}
	return "unknown"
}

// Event is emitted on mode transitions. Artwork is set for focus events and
// for the first stop of a tour.
type Event struct {
	Kind    EventKind
	Artwork gallery.PlacedArtwork
}

// Tuning controls the Focus animation. Rates are per second; the eased
// fraction per tick is 1-exp(-rate*dt). Once every pose component is within
// Epsilon of its goal the camera snaps onto it.
type Tuning struct {
	FocusDistance float32 `yaml:"focus_distance"`
	FocusRate     float32 `yaml:"focus_rate"`
	ReturnRate    float32 `yaml:"return_rate"`
	Epsilon       float32 `yaml:"epsilon"`
	EyeHeight     float32 `yaml:"eye_height"`
}

// DefaultTuning matches a 5% per-frame approach and an 8% per-frame return at 60 Hz.
func DefaultTuning() Tuning {
	return Tuning{
		FocusDistance: 2,
		FocusRate:     3.08,
		ReturnRate:    5.0,
		Epsilon:       1e-3,
		EyeHeight:     gallery.EyeHeight,
	}
}

// Machine is the camera state machine.
type Machine struct {
	tuning Tuning
	nav    *navigation.Controller
	emit   func(Event)

	mode   Mode
	writer Mode

	phase    Phase
	subject  gallery.PlacedArtwork
	target   gallery.Pose
	retained gallery.Pose

	seq *tour.Sequencer
}

// New returns a machine in Explore mode driving nav. emit may be nil.
func New(tuning Tuning, nav *navigation.Controller, emit func(Event)) *Machine {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Machine{tuning: tuning, nav: nav, emit: emit}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Writer returns the mode that wrote the transform during the last Tick.
func (m *Machine) Writer() Mode {
	return m.writer
}

// Pose returns the current camera transform.
func (m *Machine) Pose() gallery.Pose {
	return m.nav.Pose()
}

// Focused returns the artwork under focus and the focus phase.
func (m *Machine) Focused() (gallery.PlacedArtwork, Phase, bool) {
	if m.mode != Focus {
		return gallery.PlacedArtwork{}, 0, false
	}
	return m.subject, m.phase, true
}

// Sequencer returns the running tour, or nil.
func (m *Machine) Sequencer() *tour.Sequencer {
	if m.mode != Tour {
		return nil
	}
	return m.seq
}

// FocusPose returns where the camera settles when inspecting p.
func (m *Machine) FocusPose(p gallery.PlacedArtwork) gallery.Pose {
	pos := p.Position.Add(p.Normal().Mul(m.tuning.FocusDistance))
	pos[1] = m.tuning.EyeHeight
	yaw, pitch := gallery.LookAt(pos, p.Position)
	return gallery.Pose{Position: pos, Yaw: yaw, Pitch: pitch}
}

// Focus starts inspecting p. It is only honoured from Explore.
func (m *Machine) Focus(p gallery.PlacedArtwork) bool {
	if m.mode != Explore {
		return false
	}
	m.retained = m.nav.Pose()
	m.subject = p
	m.target = m.FocusPose(p)
	m.phase = Approaching
	m.mode = Focus
	m.emit(Event{Kind: ArtworkSelected, Artwork: p})
	return true
}

// Release ends an inspection: the camera eases back to where it was before
// Focus and Explore resumes on arrival.
func (m *Machine) Release() bool {
	if m.mode != Focus || m.phase == Returning {
		return false
	}
	m.phase = Returning
	m.emit(Event{Kind: ArtworkDeselected, Artwork: m.subject})
	return true
}

// StartTour begins a guided tour over waypoints. It is only honoured from
// Explore and with at least one waypoint.
func (m *Machine) StartTour(waypoints []tour.Waypoint, tuning tour.Tuning) bool {
	if m.mode != Explore || len(waypoints) == 0 {
		return false
	}
	m.seq = tour.NewSequencer(waypoints, tuning)
	m.mode = Tour
	m.emit(Event{Kind: TourStarted, Artwork: waypoints[0].Artwork})
	return true
}

// StopTour ends a running tour where the camera stands.
func (m *Machine) StopTour() bool {
	if m.mode != Tour {
		return false
	}
	m.endTour()
	return true
}

func (m *Machine) endTour() {
	m.seq = nil
	m.mode = Explore
	m.nav.Place(m.nav.Pose())
	m.emit(Event{Kind: TourEnded})
}

// Reset abandons any Focus or Tour, emitting the matching end event, and
// places the camera at pose in Explore mode.
func (m *Machine) Reset(pose gallery.Pose) {
	switch m.mode {
	case Focus:
		if m.phase != Returning {
			m.emit(Event{Kind: ArtworkDeselected, Artwork: m.subject})
		}
	case Tour:
		m.seq = nil
		m.emit(Event{Kind: TourEnded})
	}
	m.mode = Explore
	m.subject = gallery.PlacedArtwork{}
	m.nav.Place(pose)
}

// Tick advances whichever mode owns the transform. Only that mode writes.
// A non-positive dt leaves the transform untouched.
func (m *Machine) Tick(dt float32, in navigation.Input, bounds physics.Box) {
	if dt <= 0 {
		return
	}
	dt = min(dt, navigation.MaxStep)
	m.writer = m.mode
	switch m.mode {
	case Explore:
		m.nav.Update(dt, in, bounds)
	case Focus:
		m.tickFocus(dt)
	case Tour:
		pose, done := m.seq.Step(dt, m.nav.Pose())
		m.nav.Place(pose)
		if done {
			m.endTour()
		}
	}
}

func (m *Machine) tickFocus(dt float32) {
	switch m.phase {
	case Approaching:
		pose, arrived := ease(m.nav.Pose(), m.target, m.tuning.FocusRate, dt, m.tuning.Epsilon)
		m.nav.Place(pose)
		if arrived {
			m.phase = Holding
			m.emit(Event{Kind: InfoPanel, Artwork: m.subject})
		}
	case Holding:
	case Returning:
		pose, arrived := ease(m.nav.Pose(), m.retained, m.tuning.ReturnRate, dt, m.tuning.Epsilon)
		m.nav.Place(pose)
		if arrived {
			m.mode = Explore
			m.subject = gallery.PlacedArtwork{}
		}
	}
}

// ease moves cur a geometric fraction of the way to goal and snaps when close.
func ease(cur, goal gallery.Pose, rate, dt, eps float32) (gallery.Pose, bool) {
	alpha := 1 - math32.Exp(-rate*dt)
	next := gallery.Pose{
		Position: cur.Position.Add(goal.Position.Sub(cur.Position).Mul(alpha)),
		Yaw:      gallery.WrapAngle(cur.Yaw + gallery.AngleDelta(cur.Yaw, goal.Yaw)*alpha),
		Pitch:    cur.Pitch + (goal.Pitch-cur.Pitch)*alpha,
	}
	if next.Position.Sub(goal.Position).Len() < eps &&
		math32.Abs(gallery.AngleDelta(next.Yaw, goal.Yaw)) < eps &&
		math32.Abs(goal.Pitch-next.Pitch) < eps {
		return goal, true
	}
	return next, false
}
