package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/camera"
	"virtual-museum/internal/commands"
	"virtual-museum/internal/fonts"
	"virtual-museum/internal/graphics"
	"virtual-museum/internal/hud"
	"virtual-museum/internal/input"
	"virtual-museum/internal/museum"
	"virtual-museum/internal/render"
	"virtual-museum/internal/scene"
	"virtual-museum/internal/server"
	"virtual-museum/internal/terminal"
)

func runViewer(ctx context.Context, s settings, bridge bool) error {
	m, closeSrc, err := s.newMuseum()
	if err != nil {
		return err
	}
	defer closeSrc()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	overlays := &commands.Overlays{Minimap: true}
	reg := commands.NewRegistry()
	commands.RegisterMuseum(reg, m, overlays, s.log.Log)
	term := terminal.New(s.log, reg)
	overlay := hud.New(overlays)
	rend := render.New()

	var sc scene.Scene
	m.On(overlay.OnEvent)
	m.On(func(e museum.Event) {
		switch e.Kind {
		case museum.RoomChanged:
			rend.Clear()
			sc = m.Scene()
		case museum.FrameReady:
			rend.Upload(e.Artwork.Artwork.ID, e.Asset.Image)
			sc = m.Scene()
		}
	})
	if bridge {
		srv := server.New(m, s.log)
		m.On(srv.OnEvent)
		go func() {
			if err := srv.ListenAndServe(ctx, s.env.Listen); err != nil {
				s.log.Log(err.Error())
			}
		}()
	}

	term.OnToggle = func(open bool) {
		if open {
			m.SetPointerCaptured(false)
			input.Release()
		}
	}

	setup := func() {
		if path, err := fonts.FindAny(fonts.BaseDirs(), fonts.DefaultFamily); err == nil {
			font := rl.LoadFontEx(path, 32, fonts.Glyphs())
			overlay.SetFont(font)
			term.SetFont(font)
		} else {
			s.log.Log("fonts: no overlay font found, `museum fonts` downloads " + fonts.DefaultFamily)
		}
		if err := m.Open(ctx); err != nil {
			s.log.Logf("museum: %v", err)
		}
	}

	update := func(dt float32) {
		term.Update()
		f := input.Idle()
		if !term.IsOpen() {
			f = input.Poll(m.PointerCaptured())
		}
		handle(m, f, overlays)
		m.Tick(dt, f.Move)
		overlay.Update(dt)
	}

	draw := func() {
		rend.Draw(sc, m.Pose())
		overlay.Draw(m)
		term.Draw()
	}

	graphics.Run(graphics.Options{
		Title:      "Museo Virtual",
		Width:      1280,
		Height:     720,
		Fullscreen: s.env.Fullscreen,
		TargetFPS:  60,
	}, graphics.Hooks{
		Init:   setup,
		Update: update,
		Draw:   draw,
		Close: func() {
			m.Close()
			rend.Close()
		},
	})
	return nil
}

// handle applies one frame's discrete actions before the tick.
func handle(m *museum.Museum, f input.Frame, ov *commands.Overlays) {
	if f.Escape {
		m.Escape()
		if !m.PointerCaptured() {
			input.Release()
		}
	}
	if f.Click {
		if !m.PointerCaptured() && m.Mode() == camera.Explore {
			m.SetPointerCaptured(input.Capture())
		} else {
			m.PointerSelect(m.CenterRay())
		}
	}
	if f.Confirm {
		if m.Mode() == camera.Focus {
			m.Release()
		} else {
			m.ConfirmHint()
		}
	}
	if f.Tour {
		if m.Mode() == camera.Tour {
			m.StopTour()
		} else {
			m.StartTour()
		}
	}
	if f.Minimap {
		ov.Minimap = !ov.Minimap
	}
}
