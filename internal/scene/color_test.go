package scene

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"#f5f5f5", color.RGBA{0xf5, 0xf5, 0xf5, 0xff}, false},
		{"c9a961", color.RGBA{0xc9, 0xa9, 0x61, 0xff}, false},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#1a1a2e80", color.RGBA{0x1a, 0x1a, 0x2e, 0x80}, false},
		{"", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.err)
		}
	}
	if got := ColorOr("nope", color.RGBA{1, 2, 3, 4}); got != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("ColorOr fallback = %v", got)
	}
}
