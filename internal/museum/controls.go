package museum

import (
	"virtual-museum/internal/camera"
	"virtual-museum/internal/gallery"
	"virtual-museum/internal/physics"
	"virtual-museum/internal/tour"
)

// Select focuses the resolved artwork with the given ID.
func (m *Museum) Select(artworkID string) bool {
	if !m.open {
		return false
	}
	for _, p := range m.resolved {
		if p.Artwork.ID == artworkID {
			return m.cam.Focus(p)
		}
	}
	return false
}

// CenterRay is the ray through the middle of the view.
func (m *Museum) CenterRay() physics.Ray {
	pose := m.cam.Pose()
	return physics.Ray{Origin: pose.Position, Dir: pose.Forward()}
}

// PointerSelect focuses the nearest resolved artwork hit by r.
func (m *Museum) PointerSelect(r physics.Ray) bool {
	if !m.open || m.cam.Mode() != camera.Explore {
		return false
	}
	i, _, ok := physics.Pick(r, m.frames, m.opts.PickDistance)
	if !ok {
		return false
	}
	return m.cam.Focus(m.pieces[m.frames[i].Index].Placement)
}

// ConfirmHint focuses the artwork currently offered by the proximity hint.
func (m *Museum) ConfirmHint() bool {
	if !m.open {
		return false
	}
	active := m.prox.Active()
	if active == nil {
		return false
	}
	return m.cam.Focus(*active)
}

// Release closes the artwork under focus.
func (m *Museum) Release() bool {
	return m.open && m.cam.Release()
}

// StartTour starts a guided tour over the resolved artworks in placement order.
func (m *Museum) StartTour() bool {
	if !m.open {
		return false
	}
	wps := tour.BuildWaypoints(m.resolved, m.opts.Tour, m.opts.Navigation.EyeHeight, m.bounds)
	return m.cam.StartTour(wps, m.opts.Tour)
}

// StopTour ends a running tour.
func (m *Museum) StopTour() bool {
	return m.open && m.cam.StopTour()
}

// Escape backs out one level: it closes Focus, stops a Tour, or releases
// pointer capture while exploring.
func (m *Museum) Escape() {
	switch m.cam.Mode() {
	case camera.Focus:
		m.Release()
	case camera.Tour:
		m.StopTour()
	default:
		m.pointer = false
	}
}

// SetPointerCaptured records the outcome of a pointer capture request.
// Without capture, look input is ignored and movement keys still work.
func (m *Museum) SetPointerCaptured(captured bool) {
	m.pointer = captured && m.open
}

// PointerCaptured reports whether look input is active.
func (m *Museum) PointerCaptured() bool {
	return m.pointer
}

// Mode returns the camera mode.
func (m *Museum) Mode() camera.Mode {
	return m.cam.Mode()
}

// Pose returns the camera transform.
func (m *Museum) Pose() gallery.Pose {
	return m.cam.Pose()
}

// Sprinting reports whether the visitor is running.
func (m *Museum) Sprinting() bool {
	return m.cam.Mode() == camera.Explore && m.nav.State().Sprinting
}

// Room returns the active room.
func (m *Museum) Room() gallery.Room {
	return m.room
}

// Rooms returns the catalog.
func (m *Museum) Rooms() []gallery.Room {
	return m.rooms.Rooms()
}

// Bounds returns the walkable area of the active room.
func (m *Museum) Bounds() physics.Box {
	return m.bounds
}

// Placements returns every placed artwork of the active room, resolved or not.
func (m *Museum) Placements() []gallery.PlacedArtwork {
	return append([]gallery.PlacedArtwork(nil), m.placements...)
}

// Resolved returns the placements whose images have loaded, in placement order.
func (m *Museum) Resolved() []gallery.PlacedArtwork {
	return append([]gallery.PlacedArtwork(nil), m.resolved...)
}

// Hint returns the artwork the visitor is near and facing, or nil.
func (m *Museum) Hint() *gallery.PlacedArtwork {
	return m.prox.Active()
}

// Focused returns the artwork under focus.
func (m *Museum) Focused() (gallery.PlacedArtwork, bool) {
	p, _, ok := m.cam.Focused()
	return p, ok
}

// TourProgress returns the current stop and stop count of a running tour.
func (m *Museum) TourProgress() (index, total int, ok bool) {
	seq := m.cam.Sequencer()
	if seq == nil {
		return 0, 0, false
	}
	return seq.Index(), seq.Len(), true
}
