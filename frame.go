package triparticles

import "github.com/go-gl/mathgl/mgl32"

type Triangle struct {
	Vertices [3]mgl32.Vec3
	Normal   mgl32.Vec3
}

// Frame records what the simulation drew during the last tick. Presenters
// read it in the Render stage.
type Frame struct {
	Stats     StepStats
	Triangles []Triangle
}

func (f *Frame) DrawTriangle(vertices [3]mgl32.Vec3, normal mgl32.Vec3) {
	f.Triangles = append(f.Triangles, Triangle{Vertices: vertices, Normal: normal})
}

// Reset empties the frame, keeping its capacity.
func (f *Frame) Reset() {
	f.Triangles = f.Triangles[:0]
	f.Stats = StepStats{}
}
