package anim

import "testing"

func TestFadeInAndOut(t *testing.T) {
	f := NewFade(8)
	if f.Visible() || f.Alpha() != 0 {
		t.Fatal("new fade is visible")
	}
	f.Show()
	for i := 0; i < 120; i++ {
		f.Update(1.0 / 60)
	}
	if a := f.Alpha(); a < 0.99 {
		t.Fatalf("alpha after 2s = %v", a)
	}
	if got := f.Alpha8(200); got < 197 {
		t.Fatalf("Alpha8 = %d", got)
	}
	f.Hide()
	f.Update(1.0 / 60)
	if a := f.Alpha(); a >= 1 {
		t.Fatalf("alpha did not drop: %v", a)
	}
	for i := 0; i < 120; i++ {
		f.Update(1.0 / 60)
	}
	if f.Visible() {
		t.Fatalf("still visible at %v", f.Alpha())
	}
}

func TestFadeStaysInRange(t *testing.T) {
	f := NewFade(30)
	f.Damping = 0.2
	f.Show()
	for i := 0; i < 300; i++ {
		f.Update(1.0 / 60)
		if a := f.Alpha(); a < 0 || a > 1 {
			t.Fatalf("alpha %v out of range", a)
		}
	}
}

func TestFadeIgnoresZeroStep(t *testing.T) {
	f := NewFade(8)
	f.Show()
	f.Update(0)
	if f.Alpha() != 0 {
		t.Fatal("zero step moved the fade")
	}
}
