// Package tray renders the status icons shown in the system tray.
package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
)

type State int

const (
	Idle State = iota
	Capturing
	Failed
)

func (s State) String() string {
	switch s {
	case Capturing:
		return "capturing"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Size is the icon edge in pixels; trays scale it down.
const Size = 44

var (
	plate  = color.RGBA{R: 28, G: 28, B: 30, A: 255}
	badge  = color.RGBA{R: 255, G: 204, B: 0, A: 255}
	glyphs = map[State]color.RGBA{
		Idle:      {R: 200, G: 200, B: 204, A: 255},
		Capturing: {R: 10, G: 132, B: 255, A: 255},
		Failed:    {R: 255, G: 69, B: 58, A: 255},
	}
)

var (
	iconsOnce sync.Once
	icons     map[State][]byte
)

// Icon returns the PNG for s: a "> _" prompt on a dark rounded plate,
// tinted by state. Failed adds a yellow badge.
func Icon(s State) []byte {
	iconsOnce.Do(func() {
		icons = make(map[State][]byte, len(glyphs))
		for st := range glyphs {
			icons[st] = encodePNG(draw(st))
		}
	})
	if b, ok := icons[s]; ok {
		return b
	}
	return icons[Idle]
}

// draw shades each pixel by sampling its center against the shapes.
func draw(s State) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	n := float64(Size)
	stroke := n * 0.07
	ink := glyphs[s]

	for y := range Size {
		for x := range Size {
			px, py := float64(x)+0.5, float64(y)+0.5
			if !inRoundedSquare(px, py, n, n*0.22) {
				continue
			}
			c := plate
			switch {
			// chevron
			case segDist(px, py, n*0.24, n*0.30, n*0.46, n*0.50) <= stroke,
				segDist(px, py, n*0.46, n*0.50, n*0.24, n*0.70) <= stroke,
				// cursor
				segDist(px, py, n*0.54, n*0.70, n*0.76, n*0.70) <= stroke:
				c = ink
			}
			if s == Failed && math.Hypot(px-n*0.80, py-n*0.20) <= n*0.14 {
				c = badge
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// inRoundedSquare reports whether (x, y) lies in an n×n square with corner
// radius r.
func inRoundedSquare(x, y, n, r float64) bool {
	cx := math.Max(r, math.Min(x, n-r))
	cy := math.Max(r, math.Min(y, n-r))
	return math.Hypot(x-cx, y-cy) <= r
}

// segDist is the distance from (px, py) to the segment (ax, ay)-(bx, by).
func segDist(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	t := ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}
