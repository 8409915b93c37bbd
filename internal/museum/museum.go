// Package museum ties the gallery core together behind one context object:
// the active room and its artworks, the camera modes, the proximity hint,
// background asset resolution and room switching. Everything except On and
// Enqueue runs on the caller's tick goroutine.
package museum

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"virtual-museum/internal/assets"
	"virtual-museum/internal/camera"
	"virtual-museum/internal/feed"
	"virtual-museum/internal/gallery"
	"virtual-museum/internal/layout"
	"virtual-museum/internal/logger"
	"virtual-museum/internal/navigation"
	"virtual-museum/internal/physics"
	"virtual-museum/internal/proximity"
	"virtual-museum/internal/scene"
	"virtual-museum/internal/tour"
)

var (
	// ErrUnknownRoom is returned by SwitchRoom for an ID not in the catalog.
	ErrUnknownRoom = errors.New("museum: unknown room")
	// ErrClosed is returned by operations that need an open museum.
	ErrClosed = errors.New("museum: not open")
)

// Options gathers the tuning of every component.
type Options struct {
	StartRoom    string
	Layout       layout.Options
	Navigation   navigation.Tuning
	Camera       camera.Tuning
	Proximity    proximity.Tuning
	Tour         tour.Tuning
	Padding      float32
	PickDistance float32
}

// DefaultOptions returns the museum's standard behaviour, opening in the main room.
func DefaultOptions() Options {
	return Options{
		StartRoom:    gallery.MainRoomID,
		Layout:       layout.DefaultOptions(),
		Navigation:   navigation.DefaultTuning(),
		Camera:       camera.DefaultTuning(),
		Proximity:    proximity.DefaultTuning(),
		Tour:         tour.DefaultTuning(),
		Padding:      physics.DefaultPadding,
		PickDistance: physics.DefaultPickDistance,
	}
}

// AssetLoader resolves artwork images in the background.
type AssetLoader interface {
	Load(ctx context.Context, req assets.Request)
	Results() <-chan assets.Result
}

// Museum is the explicit context of one running gallery.
type Museum struct {
	opts   Options
	rooms  *gallery.Catalog
	source feed.Source
	loader AssetLoader
	log    *logger.Logger

	mu      sync.Mutex
	subs    []subscription
	nextSub int
	queue   []Command

	open       bool
	ctx        context.Context
	cancel     context.CancelFunc
	roomCancel context.CancelFunc

	records  []gallery.ArtworkRecord
	fallback bool

	room       gallery.Room
	generation int
	bounds     physics.Box
	placements []gallery.PlacedArtwork
	loaded     []*assets.Asset
	pending    map[string]int
	pieces     []scene.Piece
	resolved   []gallery.PlacedArtwork
	frames     []physics.Frame

	nav     *navigation.Controller
	cam     *camera.Machine
	prox    *proximity.Detector
	pointer bool
}

// New builds a closed museum. The start room must exist in rooms.
func New(opts Options, rooms *gallery.Catalog, source feed.Source, loader AssetLoader, log *logger.Logger) (*Museum, error) {
	if opts.StartRoom == "" {
		opts.StartRoom = gallery.MainRoomID
	}
	start, ok := rooms.Lookup(opts.StartRoom)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, opts.StartRoom)
	}
	m := &Museum{
		opts:   opts,
		rooms:  rooms,
		source: source,
		loader: loader,
		log:    log,
		room:   start,
		prox:   proximity.New(opts.Proximity),
	}
	m.nav = navigation.New(opts.Navigation, start.Entry())
	m.cam = camera.New(opts.Camera, m.nav, m.onCamera)
	return m, nil
}

// Open reads the artwork feed, builds the start room and begins accepting
// ticks in Explore mode. A failing feed falls back to placeholder artworks.
// ctx bounds every background load; Close cancels them as well.
func (m *Museum) Open(ctx context.Context) error {
	if m.open {
		return nil
	}
	recs, err := m.source.Artworks(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("museum: open: %w", ctx.Err())
		}
		m.log.Logf("museum: artwork feed unavailable, hanging placeholders: %v", err)
		recs = feed.Placeholders()
	}
	m.records = recs
	m.fallback = err != nil
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.open = true
	m.pointer = false

	room, _ := m.rooms.Lookup(m.opts.StartRoom)
	m.emit(Event{Kind: Opened, Room: room})
	m.activate(room)
	return nil
}

// Close stops the museum: in-flight loads are cancelled, Focus and Tour are
// abandoned, pointer capture is released and every listener is detached.
// Ticks after Close are ignored.
func (m *Museum) Close() {
	if !m.open {
		return
	}
	m.cam.Reset(m.cam.Pose())
	if m.prox.Clear() {
		m.emit(Event{Kind: HintChanged, Room: m.room})
	}
	m.roomCancel()
	m.cancel()
	m.pointer = false
	m.open = false
	m.emit(Event{Kind: Closed, Room: m.room})

	m.mu.Lock()
	m.subs = nil
	m.queue = nil
	m.mu.Unlock()
}

// IsOpen reports whether the museum accepts ticks.
func (m *Museum) IsOpen() bool {
	return m.open
}

// SwitchRoom replaces the active room: placements are discarded, the layout
// runs again for the new room and the camera returns to its entry point.
// Switching to the current room does nothing.
func (m *Museum) SwitchRoom(id string) error {
	if !m.open {
		return ErrClosed
	}
	room, ok := m.rooms.Lookup(id)
	if !ok {
		m.log.Logf("museum: ignoring switch to unknown room %q", id)
		return fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	if id == m.room.ID {
		return nil
	}
	m.activate(room)
	return nil
}

func (m *Museum) activate(room gallery.Room) {
	if m.roomCancel != nil {
		m.roomCancel()
	}
	m.room = room
	m.generation++
	m.bounds = physics.RoomBounds(room, m.opts.Padding)

	recs := m.records
	if !m.fallback {
		recs = feed.ForRoom(recs, room)
	}
	res := layout.Place(room, recs, m.opts.Layout)
	if res.Dropped > 0 {
		m.log.Logf("museum: %s holds %d artworks, %d left in storage", room.ID, len(res.Placements), res.Dropped)
	}
	m.placements = res.Placements
	m.loaded = make([]*assets.Asset, len(m.placements))
	m.pending = make(map[string]int, len(m.placements))
	m.pieces, m.resolved, m.frames = nil, nil, nil

	entry := room.Entry()
	entry.Position, _, _ = m.bounds.Clamp(entry.Position)
	m.cam.Reset(entry)
	if m.prox.Clear() {
		m.emit(Event{Kind: HintChanged, Room: room})
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.roomCancel = cancel
	for i, p := range m.placements {
		key := fmt.Sprintf("%d:%d", m.generation, i)
		m.pending[key] = i
		m.loader.Load(ctx, assets.Request{Key: key, Artwork: p.Artwork})
	}
	m.log.Logf("museum: entered %s (%s), %d artworks requested", room.ID, room.Name, len(m.placements))
	m.emit(Event{Kind: RoomChanged, Room: room})
}

// Tick advances the museum by dt seconds: queued commands run, finished
// loads resolve their frames, then the active camera mode updates and the
// proximity hint is re-evaluated.
func (m *Museum) Tick(dt float32, in navigation.Input) {
	if !m.open {
		return
	}
	m.applyCommands()
	if !m.open {
		return
	}
	m.drainAssets()

	in.PointerCaptured = m.pointer
	m.cam.Tick(dt, in, m.bounds)

	if m.cam.Mode() != camera.Explore {
		if m.prox.Clear() {
			m.emit(Event{Kind: HintChanged, Room: m.room})
		}
		return
	}
	if active, changed := m.prox.Update(m.cam.Pose(), m.resolved); changed {
		m.emit(Event{Kind: HintChanged, Room: m.room, Artwork: active})
	}
}

func (m *Museum) drainAssets() {
	for {
		select {
		case r := <-m.loader.Results():
			m.resolve(r)
		default:
			return
		}
	}
}

func (m *Museum) resolve(r assets.Result) {
	i, ok := m.pending[r.Key]
	if !ok {
		return
	}
	delete(m.pending, r.Key)
	if r.Err != nil {
		m.log.Logf("museum: artwork %s will not be shown: %v", r.ArtworkID, r.Err)
		return
	}
	asset := r.Asset
	m.loaded[i] = &asset

	m.pieces, m.resolved, m.frames = m.pieces[:0], m.resolved[:0], m.frames[:0]
	for j, p := range m.placements {
		if m.loaded[j] == nil {
			continue
		}
		piece := scene.Piece{Placement: p, Aspect: m.loaded[j].Aspect()}
		m.frames = append(m.frames, scene.FrameFor(piece, len(m.pieces)))
		m.pieces = append(m.pieces, piece)
		m.resolved = append(m.resolved, p)
	}
	p := m.placements[i]
	m.emit(Event{Kind: FrameReady, Room: m.room, Artwork: &p, Asset: &asset})
}

func (m *Museum) onCamera(e camera.Event) {
	kinds := map[camera.EventKind]EventKind{
		camera.ArtworkSelected:   ArtworkSelected,
		camera.InfoPanel:         InfoPanel,
		camera.ArtworkDeselected: ArtworkDeselected,
		camera.TourStarted:       TourStarted,
		camera.TourEnded:         TourEnded,
	}
	out := Event{Kind: kinds[e.Kind], Room: m.room}
	if e.Artwork.Artwork.ID != "" {
		a := e.Artwork
		out.Artwork = &a
	}
	m.emit(out)
}
