package term

import (
	"math"

	"github.com/gekko3d/triparticles"
)

// rasterize fills every cell whose centre lies inside a triangle, keeping the
// nearest triangle per cell. depth must hold w*h entries; it is reset here.
func rasterize(tris []triparticles.ScreenTriangle, w, h int, depth []float32, plot func(x, y int, c [3]float32)) {
	for i := range depth {
		depth[i] = float32(math.Inf(1))
	}

	for _, t := range tris {
		minX, maxX := bounds(t.X, w)
		minY, maxY := bounds(t.Y, h)

		area := edge(t.X[0], t.Y[0], t.X[1], t.Y[1], t.X[2], t.Y[2])
		if area == 0 {
			continue
		}

		for y := minY; y <= maxY; y++ {
			py := float32(y) + 0.5
			for x := minX; x <= maxX; x++ {
				px := float32(x) + 0.5
				w0 := edge(t.X[1], t.Y[1], t.X[2], t.Y[2], px, py)
				w1 := edge(t.X[2], t.Y[2], t.X[0], t.Y[0], px, py)
				w2 := edge(t.X[0], t.Y[0], t.X[1], t.Y[1], px, py)
				// Either winding counts: particles face both ways.
				if area > 0 && (w0 < 0 || w1 < 0 || w2 < 0) {
					continue
				}
				if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
					continue
				}

				idx := y*w + x
				if t.Depth >= depth[idx] {
					continue
				}
				depth[idx] = t.Depth
				plot(x, y, t.Color)
			}
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// bounds returns the inclusive cell range covered by coords, clipped to [0, size).
func bounds(coords [3]float32, size int) (int, int) {
	lo := min(coords[0], coords[1], coords[2])
	hi := max(coords[0], coords[1], coords[2])
	a := int(math.Floor(float64(lo)))
	b := int(math.Floor(float64(hi)))
	return max(a, 0), min(b, size-1)
}
