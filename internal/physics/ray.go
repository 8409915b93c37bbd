package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPickDistance is how far a pointer ray reaches into the room.
const DefaultPickDistance float32 = 10

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// Frame is the hit-testable rectangle of a hung artwork. It is vertical,
// centred on Center and faces along the horizontal unit Normal.
// Index refers back to the placement the frame was built from.
type Frame struct {
	Index  int
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Width  float32
	Height float32
}

// Intersect returns the distance along r to the front face of f.
// Rays hitting the back of the frame or running parallel to it miss.
func (r Ray) Intersect(f Frame) (float32, bool) {
	denom := r.Dir.Dot(f.Normal)
	if denom > -1e-6 {
		return 0, false
	}
	t := f.Center.Sub(r.Origin).Dot(f.Normal) / denom
	if t < 0 {
		return 0, false
	}
	local := r.Origin.Add(r.Dir.Mul(t)).Sub(f.Center)
	along := mgl32.Vec3{f.Normal.Z(), 0, -f.Normal.X()}
	if math32.Abs(local.Dot(along)) > f.Width*0.5 || math32.Abs(local.Y()) > f.Height*0.5 {
		return 0, false
	}
	return t, true
}

// Pick returns the position in frames of the nearest frame hit within maxDist.
func Pick(r Ray, frames []Frame, maxDist float32) (idx int, dist float32, ok bool) {
	idx = -1
	dist = maxDist
	for i, f := range frames {
		t, hit := r.Intersect(f)
		if !hit || t > dist {
			continue
		}
		idx, dist, ok = i, t, true
	}
	if !ok {
		return -1, 0, false
	}
	return idx, dist, true
}
