package navigation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/physics"
)

const tick = float32(1.0 / 60)

func approxEqual(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func mainBounds() physics.Box {
	return physics.RoomBounds(gallery.Room{Width: 30, Depth: 40}, physics.DefaultPadding)
}

func newController() *Controller {
	return New(DefaultTuning(), gallery.Pose{Position: mgl32.Vec3{0, gallery.EyeHeight, 10}})
}

func TestForwardWalkReachesTerminalSpeed(t *testing.T) {
	c := newController()
	for i := 0; i < 120; i++ {
		c.Update(tick, Input{Forward: true}, mainBounds())
	}
	v := c.State().Velocity
	// Terminal speed is Speed/Deceleration with a per-tick integration error.
	if !approxEqual(v.Len(), 60.0/8.0, 0.5) {
		t.Errorf("speed = %v, want about 7.5", v.Len())
	}
	if v.Z() >= 0 {
		t.Errorf("velocity %v, want movement toward -Z", v)
	}
}

func TestSprintIsFaster(t *testing.T) {
	walk, run := newController(), newController()
	for i := 0; i < 30; i++ {
		walk.Update(tick, Input{Forward: true}, mainBounds())
		run.Update(tick, Input{Forward: true, Sprint: true}, mainBounds())
	}
	if run.State().Velocity.Len() <= walk.State().Velocity.Len() {
		t.Errorf("sprint %v not faster than walk %v", run.State().Velocity.Len(), walk.State().Velocity.Len())
	}
	if !run.State().Sprinting {
		t.Error("Sprinting = false while sprint key held and moving")
	}
}

func TestVelocityDecaysWhenReleased(t *testing.T) {
	c := newController()
	for i := 0; i < 30; i++ {
		c.Update(tick, Input{Right: true}, mainBounds())
	}
	moving := c.State().Velocity.Len()
	for i := 0; i < 120; i++ {
		c.Update(tick, Input{}, mainBounds())
	}
	if got := c.State().Velocity.Len(); got > moving*0.01 {
		t.Errorf("velocity after release = %v, want near zero", got)
	}
}

func TestLookRequiresPointerCapture(t *testing.T) {
	c := newController()
	c.Update(tick, Input{LookDX: 100, LookDY: 50}, mainBounds())
	if s := c.State(); s.Yaw != 0 || s.Pitch != 0 {
		t.Errorf("look applied without capture: yaw %v pitch %v", s.Yaw, s.Pitch)
	}
	c.Update(tick, Input{LookDX: 100, LookDY: 50, PointerCaptured: true}, mainBounds())
	s := c.State()
	if !approxEqual(s.Yaw, -0.2, 1e-6) || !approxEqual(s.Pitch, -0.1, 1e-6) {
		t.Errorf("yaw %v pitch %v, want -0.2 -0.1", s.Yaw, s.Pitch)
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := newController()
	c.Update(tick, Input{LookDY: -5000, PointerCaptured: true}, mainBounds())
	if got := c.State().Pitch; got > math.Pi/2+1e-6 {
		t.Errorf("pitch = %v, want <= π/2", got)
	}
	c.Update(tick, Input{LookDY: 10000, PointerCaptured: true}, mainBounds())
	if got := c.State().Pitch; got < -math.Pi/2-1e-6 {
		t.Errorf("pitch = %v, want >= -π/2", got)
	}
}

func TestHeadBobAndSettle(t *testing.T) {
	c := newController()
	var lo, hi float32 = 10, -10
	for i := 0; i < 60; i++ {
		c.Update(tick, Input{Forward: true}, mainBounds())
		y := c.State().Position.Y()
		lo, hi = min(lo, y), max(hi, y)
	}
	amp := DefaultTuning().BobAmplitude
	if hi-lo < amp || hi > gallery.EyeHeight+amp+1e-5 || lo < gallery.EyeHeight-amp-1e-5 {
		t.Errorf("bob range [%v, %v], want ±%v around %v", lo, hi, amp, gallery.EyeHeight)
	}
	for i := 0; i < 180; i++ {
		c.Update(tick, Input{}, mainBounds())
	}
	if s := c.State(); !approxEqual(s.Position.Y(), gallery.EyeHeight, 1e-3) || s.BobPhase != 0 {
		t.Errorf("idle y %v phase %v, want %v and 0", s.Position.Y(), s.BobPhase, gallery.EyeHeight)
	}
}

func TestOpposingKeysStillBob(t *testing.T) {
	c := newController()
	start := c.State().Position
	for i := 0; i < 30; i++ {
		c.Update(tick, Input{Forward: true, Back: true, Sprint: true}, mainBounds())
	}
	s := c.State()
	if s.BobPhase == 0 {
		t.Error("bob phase did not advance with direction keys held")
	}
	if !s.Sprinting {
		t.Error("not sprinting with sprint and direction keys held")
	}
	if d := s.Position.Sub(start); !approxEqual(d.X(), 0, 1e-5) || !approxEqual(d.Z(), 0, 1e-5) {
		t.Errorf("opposing keys moved the visitor by %v", d)
	}
}

func TestStaysInsideBoundsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b := mainBounds()
	c := newController()
	for i := 0; i < 20000; i++ {
		in := Input{
			Forward:         rng.IntN(2) == 0,
			Back:            rng.IntN(4) == 0,
			Left:            rng.IntN(3) == 0,
			Right:           rng.IntN(3) == 0,
			Sprint:          rng.IntN(2) == 0,
			LookDX:          rng.Float32()*200 - 100,
			LookDY:          rng.Float32()*200 - 100,
			PointerCaptured: true,
		}
		dt := rng.Float32() * 0.3
		c.Update(dt, in, b)
		if p := c.State().Position; !b.Contains(p) {
			t.Fatalf("tick %d: position %v outside %+v", i, p, b)
		}
	}
}

func TestStepIsCapped(t *testing.T) {
	a, b := newController(), newController()
	a.Update(5, Input{Forward: true}, mainBounds())
	b.Update(MaxStep, Input{Forward: true}, mainBounds())
	if a.State().Position != b.State().Position {
		t.Errorf("long frame moved to %v, capped frame to %v", a.State().Position, b.State().Position)
	}
}

func TestPlaceStopsMotion(t *testing.T) {
	c := newController()
	for i := 0; i < 10; i++ {
		c.Update(tick, Input{Forward: true}, mainBounds())
	}
	c.Place(gallery.Pose{Position: mgl32.Vec3{1, 2, 3}, Yaw: 0.5})
	s := c.State()
	if s.Velocity != (mgl32.Vec3{}) || s.BobPhase != 0 || s.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Place left state %+v", s)
	}
}
