// Package input polls raylib for the visitor's keys and pointer.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/navigation"
)

// Frame is one frame of input: movement intent plus the discrete actions.
type Frame struct {
	Move    navigation.Input
	Click   bool
	Confirm bool
	Escape  bool
	Tour    bool
	Minimap bool
}

// Poll reads the keyboard and mouse. Look deltas are only read while the
// pointer is captured; the museum decides whether they apply.
func Poll(captured bool) Frame {
	f := Frame{
		Move: navigation.Input{
			Forward: rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
			Back:    rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
			Left:    rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
			Right:   rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
			Sprint:  rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		},
		Click:   rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Confirm: rl.IsKeyPressed(rl.KeyE) || rl.IsKeyPressed(rl.KeyEnter),
		Escape:  rl.IsKeyPressed(rl.KeyEscape),
		Tour:    rl.IsKeyPressed(rl.KeyT),
		Minimap: rl.IsKeyPressed(rl.KeyM),
	}
	if captured {
		d := rl.GetMouseDelta()
		f.Move.LookDX, f.Move.LookDY = d.X, d.Y
		f.Move.PointerCaptured = true
	}
	return f
}

// Idle is a frame with no intent, used while the console owns the keyboard.
func Idle() Frame {
	return Frame{}
}

// Capture hides and locks the cursor. It reports whether the platform
// granted the capture.
func Capture() bool {
	rl.DisableCursor()
	return rl.IsCursorHidden()
}

// Release shows the cursor again.
func Release() {
	rl.EnableCursor()
}
