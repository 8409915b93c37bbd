// Package navigation implements first-person walking: keyboard translation
// with inertia, pointer look, head-bob and clamping to the room.
package navigation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/physics"
)

// MaxStep caps the delta time of a single Update so a stalled frame cannot
// tunnel the camera through a wall.
const MaxStep float32 = 0.1

// Tuning holds the walking constants. Velocity approaches Speed/Deceleration
// units per second while a direction key is held.
type Tuning struct {
	Speed            float32 `yaml:"speed"`
	SprintMultiplier float32 `yaml:"sprint_multiplier"`
	Deceleration     float32 `yaml:"deceleration"`
	LookSensitivity  float32 `yaml:"look_sensitivity"`
	EyeHeight        float32 `yaml:"eye_height"`
	BobSpeed         float32 `yaml:"bob_speed"`
	BobAmplitude     float32 `yaml:"bob_amplitude"`
	BobReturn        float32 `yaml:"bob_return"`
	SprintBobSpeed   float32 `yaml:"sprint_bob_speed"`
	SprintBobScale   float32 `yaml:"sprint_bob_scale"`
}

// DefaultTuning returns the museum's walking feel.
func DefaultTuning() Tuning {
	return Tuning{
		Speed:            60,
		SprintMultiplier: 2,
		Deceleration:     8,
		LookSensitivity:  0.002,
		EyeHeight:        gallery.EyeHeight,
		BobSpeed:         12,
		BobAmplitude:     0.08,
		BobReturn:        5,
		SprintBobSpeed:   1.5,
		SprintBobScale:   1.3,
	}
}

// Input is one tick's worth of user intent. LookDX and LookDY are pointer
// deltas in pixels; they are ignored unless PointerCaptured is set.
type Input struct {
	Forward, Back, Left, Right bool
	Sprint                     bool
	LookDX, LookDY             float32
	PointerCaptured            bool
}

// Moving reports whether any direction key is held.
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.Left || in.Right
}

// State is the camera transform and its motion.
type State struct {
	Position  mgl32.Vec3
	Velocity  mgl32.Vec3
	Yaw       float32
	Pitch     float32
	Sprinting bool
	BobPhase  float32
}

// Pose returns the transform part of the state.
func (s State) Pose() gallery.Pose {
	return gallery.Pose{Position: s.Position, Yaw: s.Yaw, Pitch: s.Pitch}
}

// Controller owns the camera transform while the visitor walks.
type Controller struct {
	tuning Tuning
	state  State
}

// New returns a controller standing at pose.
func New(tuning Tuning, pose gallery.Pose) *Controller {
	c := &Controller{tuning: tuning}
	c.Place(pose)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Pose returns the current camera transform.
func (c *Controller) Pose() gallery.Pose {
	return c.state.Pose()
}

// Tuning returns the controller's constants.
func (c *Controller) Tuning() Tuning {
	return c.tuning
}

// Place moves the camera to pose and stops all motion. Animations that own
// the transform outside walking write through here.
func (c *Controller) Place(pose gallery.Pose) {
	c.state = State{
		Position: pose.Position,
		Yaw:      pose.Yaw,
		Pitch:    mgl32.Clamp(pose.Pitch, -math32.Pi/2, math32.Pi/2),
	}
}

// Update advances walking by dt seconds. Translation follows
// v -= v*decel*dt; v += wish*speed*dt; p += v*dt, then X and Z are clamped to bounds.
func (c *Controller) Update(dt float32, in Input, bounds physics.Box) {
	if dt <= 0 {
		return
	}
	dt = min(dt, MaxStep)
	t := c.tuning
	s := &c.state

	if in.PointerCaptured {
		s.Yaw = gallery.WrapAngle(s.Yaw - in.LookDX*t.LookSensitivity)
		s.Pitch = mgl32.Clamp(s.Pitch-in.LookDY*t.LookSensitivity, -math32.Pi/2, math32.Pi/2)
	}

	s.Sprinting = in.Sprint && in.Moving()
	speed := t.Speed
	if s.Sprinting {
		speed *= t.SprintMultiplier
	}

	s.Velocity = s.Velocity.Sub(s.Velocity.Mul(min(t.Deceleration*dt, 1)))

	forward, right := gallery.Flat(s.Yaw)
	var wish mgl32.Vec3
	if in.Forward {
		wish = wish.Add(forward)
	}
	if in.Back {
		wish = wish.Sub(forward)
	}
	if in.Right {
		wish = wish.Add(right)
	}
	if in.Left {
		wish = wish.Sub(right)
	}
	if l := wish.Len(); l > 0 {
		s.Velocity = s.Velocity.Add(wish.Mul(speed * dt / l))
	}
	s.Velocity[1] = 0

	pos := s.Position.Add(s.Velocity.Mul(dt))
	pos, hitX, hitZ := bounds.Clamp(pos)
	if hitX {
		s.Velocity[0] = 0
	}
	if hitZ {
		s.Velocity[2] = 0
	}
	pos[1] = c.bob(dt, in.Moving(), s.Position.Y())
	s.Position = pos
}

// bob returns the eye height for this tick and advances the bob phase.
func (c *Controller) bob(dt float32, moving bool, y float32) float32 {
	t := c.tuning
	s := &c.state
	if !moving {
		s.BobPhase = 0
		return y + (t.EyeHeight-y)*min(t.BobReturn*dt, 1)
	}
	rate, amp := t.BobSpeed, t.BobAmplitude
	if s.Sprinting {
		rate *= t.SprintBobSpeed
		amp *= t.SprintBobScale
	}
	s.BobPhase += dt * rate
	return t.EyeHeight + math32.Sin(s.BobPhase)*amp
}
