package tray

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func decode(t *testing.T, s State) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(Icon(s)))
	if err != nil {
		t.Fatalf("%v: %v", s, err)
	}
	return img
}

func TestIcons(t *testing.T) {
	for _, s := range []State{Idle, Capturing, Failed} {
		if b := decode(t, s).Bounds(); b.Dx() != Size || b.Dy() != Size {
			t.Errorf("%v: bounds %v", s, b)
		}
	}

	img := decode(t, Capturing)
	// The chevron tip sits at 46%/50%.
	r, g, b, a := img.At(Size*46/100, Size/2).RGBA()
	if a == 0 || b <= r || b <= g {
		t.Errorf("capturing glyph = %d,%d,%d,%d, want blue", r, g, b, a)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner must be transparent")
	}
}

func TestFailedBadge(t *testing.T) {
	x, y := Size*80/100, Size*20/100
	r, g, b, _ := decode(t, Failed).At(x, y).RGBA()
	if r < 0xf000 || g < 0xc000 || b > 0x1000 {
		t.Errorf("badge pixel = %d,%d,%d, want yellow", r, g, b)
	}
	if r, g, _, _ := decode(t, Idle).At(x, y).RGBA(); r > 0x4000 && g > 0x4000 {
		t.Error("idle icon has a badge")
	}
}

func TestUnknownStateFallsBack(t *testing.T) {
	if !bytes.Equal(Icon(State(99)), Icon(Idle)) {
		t.Error("unknown state should render the idle icon")
	}
}
