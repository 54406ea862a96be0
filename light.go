package triparticles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a single directional light plus an ambient term.
type Light struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Direction mgl32.Vec3 // towards the light
}

func DefaultLight() Light {
	return Light{
		Ambient:   [3]float32{0.5, 0.5, 0.5},
		Diffuse:   [3]float32{1.0, 0.0, 0.8},
		Direction: mgl32.Vec3{0, 1, -2},
	}
}

// Material response of the classic fixed-function pipeline defaults.
const (
	materialAmbient = 0.2
	materialDiffuse = 0.8
)

// Shade returns the lit RGB colour in [0, 1] for a surface normal. The normal
// need not be unit length; a degenerate normal gets ambient light only.
func (l Light) Shade(normal mgl32.Vec3) [3]float32 {
	var lambert float32
	if n := normal.Len(); n > 0 {
		if d := l.Direction.Len(); d > 0 {
			lambert = float32(math.Max(0, float64(normal.Dot(l.Direction)/(n*d))))
		}
	}

	var c [3]float32
	for i := range c {
		c[i] = mgl32.Clamp(materialAmbient*l.Ambient[i]+materialDiffuse*l.Diffuse[i]*lambert, 0, 1)
	}
	return c
}
