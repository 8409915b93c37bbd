package museum

import (
	"virtual-museum/internal/assets"
	"virtual-museum/internal/gallery"
)

// EventKind names something external collaborators may react to.
type EventKind int

const (
	Opened EventKind = iota
	Closed
	RoomChanged
	FrameReady
	HintChanged
	ArtworkSelected
	InfoPanel
	ArtworkDeselected
	TourStarted
	TourEnded
)

var eventNames = [...]string{
	Opened:            "opened",
	Closed:            "closed",
	RoomChanged:       "room_changed",
	FrameReady:        "frame_ready",
	HintChanged:       "hint_changed",
	ArtworkSelected:   "artwork_selected",
	InfoPanel:         "info_panel",
	ArtworkDeselected: "artwork_deselected",
	TourStarted:       "tour_started",
	TourEnded:         "tour_ended",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is delivered to listeners on the tick goroutine.
// Artwork is nil when a HintChanged event clears the hint.
type Event struct {
	Kind    EventKind
	Room    gallery.Room
	Artwork *gallery.PlacedArtwork
	Asset   *assets.Asset
}

// Listener receives museum events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// On registers l and returns a function that removes it.
// Safe to call from any goroutine.
func (m *Museum) On(l Listener) (off func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscription{id: id, fn: l})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Museum) emit(e Event) {
	m.mu.Lock()
	subs := append([]subscription(nil), m.subs...)
	m.mu.Unlock()
	for _, s := range subs {
		s.fn(e)
	}
}

// CommandKind names a request queued from outside the tick goroutine.
type CommandKind int

const (
	SwitchRoomCommand CommandKind = iota
	StartTourCommand
	StopTourCommand
	ReleaseCommand
	SelectCommand
)

// Command is applied at the start of the next Tick.
type Command struct {
	Kind      CommandKind
	RoomID    string
	ArtworkID string
}

// Enqueue queues c for the next Tick. Safe to call from any goroutine.
func (m *Museum) Enqueue(c Command) {
	m.mu.Lock()
	m.queue = append(m.queue, c)
	m.mu.Unlock()
}

func (m *Museum) applyCommands() {
	m.mu.Lock()
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, c := range queue {
		switch c.Kind {
		case SwitchRoomCommand:
			_ = m.SwitchRoom(c.RoomID)
		case StartTourCommand:
			m.StartTour()
		case StopTourCommand:
			m.StopTour()
		case ReleaseCommand:
			m.Release()
		case SelectCommand:
			m.Select(c.ArtworkID)
		}
	}
}
