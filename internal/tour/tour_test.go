package tour

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/layout"
	"virtual-museum/internal/physics"
)

const tick = float32(1.0 / 60)

func mainRoom() gallery.Room {
	return gallery.Room{Width: 30, Depth: 40}
}

func placements(n int) []gallery.PlacedArtwork {
	recs := make([]gallery.ArtworkRecord, n)
	for i := range recs {
		recs[i] = gallery.ArtworkRecord{ID: string(rune('a' + i))}
	}
	return layout.Place(mainRoom(), recs, layout.DefaultOptions()).Placements
}

func TestBuildWaypointsStandsInFront(t *testing.T) {
	b := physics.RoomBounds(mainRoom(), physics.DefaultPadding)
	ps := placements(8)
	wps := BuildWaypoints(ps, DefaultTuning(), gallery.EyeHeight, b)
	if len(wps) != len(ps) {
		t.Fatalf("len = %d, want %d", len(wps), len(ps))
	}
	first := wps[0]
	want := mgl32.Vec3{ps[0].Position.X(), gallery.EyeHeight, ps[0].Position.Z() + 3}
	if first.Position.Sub(want).Len() > 1e-5 {
		t.Errorf("first waypoint at %v, want %v", first.Position, want)
	}
	for i, wp := range wps {
		if !b.Contains(wp.Position) {
			t.Errorf("waypoint %d at %v outside bounds", i, wp.Position)
		}
		look := gallery.Forward(wp.Yaw, wp.Pitch)
		to := wp.Artwork.Position.Sub(wp.Position).Normalize()
		if look.Dot(to) < 0.9999 {
			t.Errorf("waypoint %d does not look at its artwork", i)
		}
		if wp.Dwell != 3*time.Second {
			t.Errorf("dwell = %v, want 3s", wp.Dwell)
		}
	}
}

func TestSequencerVisitsInOrderThenEnds(t *testing.T) {
	b := physics.RoomBounds(mainRoom(), physics.DefaultPadding)
	wps := BuildWaypoints(placements(3), DefaultTuning(), gallery.EyeHeight, b)
	seq := NewSequencer(wps, DefaultTuning())
	pose := mainRoom().Entry()

	var visited []int
	done := false
	for i := 0; i < 60*120 && !done; i++ {
		pose, done = seq.Step(tick, pose)
		if seq.Dwelling() && (len(visited) == 0 || visited[len(visited)-1] != seq.Index()) {
			visited = append(visited, seq.Index())
			if pose.Position != wps[seq.Index()].Position {
				t.Errorf("arrived at %v, want %v", pose.Position, wps[seq.Index()].Position)
			}
		}
	}
	if !done || !seq.Done() {
		t.Fatal("tour did not finish")
	}
	if len(visited) != 3 || visited[0] != 0 || visited[1] != 1 || visited[2] != 2 {
		t.Errorf("visited %v, want [0 1 2]", visited)
	}
}

func TestDwellHoldsPose(t *testing.T) {
	wps := []Waypoint{{Position: mgl32.Vec3{0, 1.7, 0}, Dwell: time.Second}}
	seq := NewSequencer(wps, Tuning{Speed: 3, MinLeg: 0.1})
	pose := gallery.Pose{Position: mgl32.Vec3{0, 1.7, 0.3}}
	for !seq.Dwelling() {
		pose, _ = seq.Step(tick, pose)
	}
	held := pose
	for i := 0; i < 50; i++ {
		var done bool
		pose, done = seq.Step(tick, pose)
		if done {
			t.Fatalf("tour ended after %d dwell ticks, want about 60", i+1)
		}
		if pose != held {
			t.Fatalf("pose moved during dwell: %v -> %v", held, pose)
		}
	}
}

func TestLegStartsWithDwellRemainder(t *testing.T) {
	wps := []Waypoint{
		{Position: mgl32.Vec3{0, 1.7, 0}, Dwell: 500 * time.Millisecond},
		{Position: mgl32.Vec3{10, 1.7, 0}, Dwell: 500 * time.Millisecond},
	}
	seq := NewSequencer(wps, Tuning{MinLeg: 1})
	pose := wps[0].Pose()
	for !seq.Dwelling() {
		pose, _ = seq.Step(0.25, pose)
	}
	pose, _ = seq.Step(0.25, pose)
	if !seq.Dwelling() {
		t.Fatal("dwell ended early")
	}

	// 0.25s of dwell remain, so 0.15s of this step belongs to the next leg.
	pose, _ = seq.Step(0.4, pose)
	if seq.Dwelling() || seq.Index() != 1 {
		t.Fatalf("index %d dwelling %v, want on the way to 1", seq.Index(), seq.Dwelling())
	}
	// InOutQuad over 1s at t=0.15 covers 2*0.15^2 of the leg.
	if x := pose.Position.X(); math.Abs(float64(x)-0.45) > 1e-3 {
		t.Errorf("x = %v, want 0.45", x)
	}
}

func TestYawTakesShortestTurn(t *testing.T) {
	from := gallery.Pose{Yaw: 3}
	wp := Waypoint{Yaw: -3, Position: mgl32.Vec3{0, 0, 0}}
	seq := NewSequencer([]Waypoint{wp}, Tuning{MinLeg: 1})
	l := seq.newLeg(from, wp)
	_, _ = l.update(0.5)
	mid, _ := l.yaw.Update(0)
	if math.Abs(float64(mid)) < 3 {
		t.Errorf("yaw passed through %v, want the short way across ±π", mid)
	}
}

func TestEmptyTourIsDone(t *testing.T) {
	seq := NewSequencer(nil, DefaultTuning())
	if !seq.Done() {
		t.Error("empty sequencer not done")
	}
	if _, ok := seq.Current(); ok {
		t.Error("empty sequencer has a current waypoint")
	}
}
