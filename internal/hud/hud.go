// Package hud draws the 2D overlay on top of the gallery: crosshair, the
// proximity hint, the info panel, tour progress, the minimap and the FPS
// counter. It reacts to museum events and reads the rest from a View.
package hud

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/anim"
	"virtual-museum/internal/camera"
	"virtual-museum/internal/commands"
	"virtual-museum/internal/gallery"
	"virtual-museum/internal/museum"
	"virtual-museum/internal/scene"
)

const (
	fontSize    = 20
	titleSize   = 28
	padding     = 12
	lineHeight  = fontSize + 4
	minimapSize = 200
	// refresh the FPS text every N frames
	updateInterval = 30
)

var (
	panelBg   = rl.NewColor(10, 10, 10, 210)
	minimapBg = rl.NewColor(0, 0, 0, 150)
	markerDim = rl.NewColor(120, 120, 120, 255)
	playerDot = rl.NewColor(230, 230, 230, 255)
	// used when a room has no accent colour
	defaultAccent = color.RGBA{201, 169, 97, 255}
)

// View is the museum state the overlay reads each frame.
type View interface {
	Room() gallery.Room
	Mode() camera.Mode
	PointerCaptured() bool
	Sprinting() bool
	TourProgress() (index, total int, ok bool)
	Minimap(w, h float32) museum.Minimap
}

// HUD holds overlay state between frames.
type HUD struct {
	overlays *commands.Overlays
	font     rl.Font

	frameCount  uint32
	lastFpsText string

	hint      *anim.Fade
	hintTitle string
	panel     *anim.Fade
	caption   []string
}

// New returns an overlay whose optional layers follow ov.
func New(ov *commands.Overlays) *HUD {
	return &HUD{overlays: ov, hint: anim.NewFade(10), panel: anim.NewFade(8)}
}

// SetFont sets the overlay font. Zero texture ID uses the raylib default.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// OnEvent is a museum listener.
func (h *HUD) OnEvent(e museum.Event) {
	switch e.Kind {
	case museum.HintChanged:
		if e.Artwork == nil {
			h.hint.Hide()
			return
		}
		h.hintTitle = e.Artwork.Artwork.Caption()[0]
		h.hint.Show()
	case museum.InfoPanel:
		if e.Artwork != nil {
			h.caption = e.Artwork.Artwork.Caption()
			h.panel.Show()
		}
	case museum.ArtworkDeselected, museum.RoomChanged, museum.Closed:
		h.panel.Hide()
		h.hint.Hide()
	}
}

// Update advances the fades.
func (h *HUD) Update(dt float32) {
	h.hint.Update(dt)
	h.panel.Update(dt)
}

// Draw renders the overlay. Call after the 3D pass.
func (h *HUD) Draw(v View) {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	room := v.Room()
	accent := rgba(scene.ColorOr(room.AccentColor, defaultAccent))

	h.text(room.Name, padding, padding, titleSize, rl.White)
	if room.Description != "" {
		h.text(room.Description, padding, padding+titleSize+4, fontSize, rl.LightGray)
	}

	mode := v.Mode()
	if mode == camera.Explore {
		h.crosshair(sw/2, sh/2, h.hint.Visible(), accent)
	}
	if a := h.hint.Alpha8(255); a > 0 && mode == camera.Explore {
		line := fmt.Sprintf("E para ver \"%s\"", h.hintTitle)
		h.centered(line, sw/2, sh/2+40, fontSize, rl.NewColor(255, 255, 255, a))
	}
	if !v.PointerCaptured() && mode == camera.Explore {
		h.centered("Click para mirar alrededor", sw/2, sh-3*lineHeight, fontSize, rl.LightGray)
	}
	if index, total, ok := v.TourProgress(); ok {
		h.centered(fmt.Sprintf("Tour %d/%d  (Esc para salir)", index+1, total), sw/2, padding, fontSize, accent)
	}
	if v.Sprinting() {
		h.text(">>", padding, sh-lineHeight-padding, fontSize, accent)
	}
	h.drawPanel(sw, sh)

	right := sw - padding
	if h.overlays != nil && h.overlays.FPS {
		h.drawFPS(right)
	}
	if h.overlays != nil && h.overlays.Minimap {
		h.drawMinimap(v.Minimap(minimapSize, minimapSize), sw-minimapSize-padding, sh-minimapSize-padding, accent)
	}
}

func (h *HUD) drawPanel(sw, sh int32) {
	a := h.panel.Alpha8(255)
	if a == 0 || len(h.caption) == 0 {
		return
	}
	w := min(sw-4*padding, 520)
	ht := int32(titleSize+2*padding) + int32(len(h.caption)-1)*lineHeight
	x, y := sw-w-2*padding, sh/2-ht/2
	bg := panelBg
	bg.A = uint8(int(bg.A) * int(a) / 255)
	rl.DrawRectangle(x, y, w, ht, bg)
	h.text(h.caption[0], x+padding, y+padding, titleSize, rl.NewColor(255, 255, 255, a))
	for i, line := range h.caption[1:] {
		h.text(line, x+padding, y+padding+titleSize+4+int32(i)*lineHeight, fontSize, rl.NewColor(200, 200, 200, a))
	}
}

func (h *HUD) drawFPS(right int32) {
	h.frameCount++
	if h.lastFpsText == "" || h.frameCount%updateInterval == 0 {
		h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	w := h.measure(h.lastFpsText, fontSize)
	h.text(h.lastFpsText, right-w, padding, fontSize, rl.Green)
}

func (h *HUD) drawMinimap(mm museum.Minimap, x, y int32, accent rl.Color) {
	rl.DrawRectangle(x, y, int32(mm.Width), int32(mm.Height), minimapBg)
	rl.DrawRectangleLines(x, y, int32(mm.Width), int32(mm.Height), rl.Gray)
	fx, fy := float32(x), float32(y)
	for _, m := range mm.Markers {
		c := markerDim
		if m.Resolved {
			c = rl.White
		}
		if m.Active {
			c = accent
		}
		rl.DrawRectangle(int32(fx+m.Pos.X())-2, int32(fy+m.Pos.Y())-2, 5, 5, c)
	}
	p := rl.NewVector2(fx+mm.Player.X(), fy+mm.Player.Y())
	tip := rl.NewVector2(p.X+mm.Heading.X()*12, p.Y+mm.Heading.Y()*12)
	rl.DrawLineEx(p, tip, 2, accent)
	rl.DrawCircleV(p, 4, playerDot)
}

func (h *HUD) crosshair(cx, cy int32, active bool, accent rl.Color) {
	c := rl.NewColor(255, 255, 255, 180)
	r := float32(3)
	if active {
		c, r = accent, 5
	}
	rl.DrawCircle(cx, cy, r, c)
}

func (h *HUD) measure(s string, size int32) int32 {
	if h.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(h.font, s, float32(size), 1).X)
	}
	return rl.MeasureText(s, size)
}

func (h *HUD) centered(s string, cx, y, size int32, c rl.Color) {
	h.text(s, cx-h.measure(s, size)/2, y, size, c)
}

func (h *HUD) text(s string, x, y, size int32, c rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(s, x, y, size, c)
}

func rgba(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
