// Package graphics owns the window and the frame loop.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Hooks are called from the frame loop. Init runs once the GL context
// exists; Close runs before the window is destroyed. Any hook may be nil.
type Hooks struct {
	Init   func()
	Update func(dt float32)
	Draw   func()
	Close  func()
}

// Run opens the window and loops until it is closed. Each frame it calls
// Update with the frame time in seconds, then Draw between BeginDrawing and
// EndDrawing. Escape does not close the window: the museum uses it.
func Run(opts Options, h Hooks) {
	w, ht := opts.Width, opts.Height
	flags := uint32(rl.FlagMsaa4xHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
		w, ht = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w, ht, opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(opts.TargetFPS)
	}
	if h.Init != nil {
		h.Init()
	}
	if h.Close != nil {
		defer h.Close()
	}

	for !rl.WindowShouldClose() {
		if h.Update != nil {
			h.Update(rl.GetFrameTime())
		}
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
	}
}
