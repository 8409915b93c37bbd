// Package anim holds small time-based animations for the overlay.
package anim

import (
	"github.com/charmbracelet/harmonica"
)

// Fade drives an opacity between 0 and 1 with a critically damped spring.
type Fade struct {
	Frequency float64
	Damping   float64

	value, velocity float64
	target          float64
}

// NewFade returns a hidden fade. A frequency around 8 settles in about half a second.
func NewFade(frequency float64) *Fade {
	return &Fade{Frequency: frequency, Damping: 1}
}

// Show starts fading in.
func (f *Fade) Show() { f.target = 1 }

// Hide starts fading out.
func (f *Fade) Hide() { f.target = 0 }

// Visible reports whether the fade is heading in or still shows anything.
func (f *Fade) Visible() bool {
	return f.target > 0 || f.value > 0.01
}

// Update advances the spring by dt seconds.
func (f *Fade) Update(dt float32) {
	if dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(float64(dt), f.Frequency, f.Damping)
	f.value, f.velocity = spring.Update(f.value, f.velocity, f.target)
	f.value = min(max(f.value, 0), 1)
}

// Alpha returns the current opacity in [0, 1].
func (f *Fade) Alpha() float32 {
	return float32(f.value)
}

// Alpha8 returns the opacity scaled to a colour channel.
func (f *Fade) Alpha8(full uint8) uint8 {
	return uint8(float32(full) * f.Alpha())
}
