// Package gallery holds the domain types shared by the museum core: rooms,
// artwork records, placed artworks and camera poses.
package gallery

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// EyeHeight is the resting camera height above the floor.
	EyeHeight float32 = 1.7
	// ArtworkHeight is the height of an artwork's centre on its wall.
	ArtworkHeight float32 = 1.6
	// DefaultSpacing is the distance between neighbouring artworks on a wall.
	DefaultSpacing float32 = 4
	// EntryInset is how far in front of the front wall a visitor enters a room.
	EntryInset float32 = 5
)

// Wall identifies which wall of a room an artwork hangs on.
type Wall int

const (
	WallBack Wall = iota
	WallLeft
	WallRight
)

func (w Wall) String() string {
	switch w {
	case WallBack:
		return "back"
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	}
	return "unknown"
}

// Room describes one gallery room. The room is centred on the origin, the
// floor lies on Y=0 and visitors enter from the +Z side facing -Z.
// A Room is immutable once it has been activated.
type Room struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Width       float32  `yaml:"width" json:"width"`
	Depth       float32  `yaml:"depth" json:"depth"`
	Height      float32  `yaml:"height" json:"height"`
	WallColor   string   `yaml:"wall_color" json:"wallColor"`
	FloorColor  string   `yaml:"floor_color" json:"floorColor"`
	AccentColor string   `yaml:"accent_color" json:"accentColor"`
	Spacing     float32  `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Limit       int      `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Entry returns the pose a visitor starts at when the room becomes active:
// centred on X, EntryInset in front of the front wall, looking at the back wall.
func (r Room) Entry() Pose {
	z := r.Depth/2 - EntryInset
	if z < 0 {
		z = 0
	}
	return Pose{Position: mgl32.Vec3{0, EyeHeight, z}}
}

// ArtworkRecord is one entry of the artwork feed. The core never mutates it.
type ArtworkRecord struct {
	ID          string `json:"id"`
	ImageRef    string `json:"imageRef"`
	Title       string `json:"title"`
	Technique   string `json:"technique,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	Album       string `json:"album,omitempty"`
}

// Caption returns the info panel lines: title, then technique and year when
// known, then the description.
func (a ArtworkRecord) Caption() []string {
	title := a.Title
	if title == "" {
		title = "Sin título"
	}
	lines := []string{title}
	switch {
	case a.Technique != "" && a.Year != "":
		lines = append(lines, a.Technique+", "+a.Year)
	case a.Technique != "":
		lines = append(lines, a.Technique)
	case a.Year != "":
		lines = append(lines, a.Year)
	}
	if a.Description != "" {
		lines = append(lines, a.Description)
	}
	return lines
}

// PlacedArtwork is an artwork assigned to a wall slot. Facing is the
// rotation about +Y; the artwork looks along Normal().
type PlacedArtwork struct {
	Artwork  ArtworkRecord
	Position mgl32.Vec3
	Facing   float32
	Wall     Wall
	Slot     int
}

// Normal returns the unit vector the artwork faces, pointing into the room.
func (p PlacedArtwork) Normal() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(p.Facing), 0, math32.Cos(p.Facing)}
}

// Pose is a camera transform: position plus yaw and pitch in radians.
// Yaw 0 looks toward -Z; positive pitch looks up.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// Forward returns the unit view direction of the pose.
func (p Pose) Forward() mgl32.Vec3 {
	return Forward(p.Yaw, p.Pitch)
}

// Forward returns the unit view direction for yaw and pitch.
func Forward(yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{-math32.Sin(yaw) * cp, math32.Sin(pitch), -math32.Cos(yaw) * cp}
}

// Flat returns the horizontal forward and right unit vectors for yaw.
func Flat(yaw float32) (forward, right mgl32.Vec3) {
	s, c := math32.Sin(yaw), math32.Cos(yaw)
	return mgl32.Vec3{-s, 0, -c}, mgl32.Vec3{c, 0, -s}
}

// LookAt returns the yaw and pitch that point from one position toward another.
// A zero-length direction yields (0, 0).
func LookAt(from, to mgl32.Vec3) (yaw, pitch float32) {
	d := to.Sub(from)
	l := d.Len()
	if l == 0 {
		return 0, 0
	}
	yaw = math32.Atan2(-d.X(), -d.Z())
	pitch = math32.Asin(mgl32.Clamp(d.Y()/l, -1, 1))
	return yaw, pitch
}

// WrapAngle maps a to the range (-π, π].
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

// AngleDelta returns the shortest signed rotation from one angle to another.
func AngleDelta(from, to float32) float32 {
	return WrapAngle(to - from)
}
