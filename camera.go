package triparticles

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// DefaultCamera sits 5 units in front of the origin, which frames the
// default spawn volume and the fall below it.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 0, 5},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   40,
		Near:   1,
		Far:    10,
	}
}

func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// Project maps a world-space point into a width x height viewport with the
// origin at the top-left. depth is the NDC z in [-1, 1]; ok is false when the
// point falls outside the near/far range or behind the eye.
func Project(vp mgl32.Mat4, v mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	clip := vp.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)

	x = (ndc.X() + 1) * 0.5 * float32(width)
	y = (1 - ndc.Y()) * 0.5 * float32(height)
	depth = ndc.Z()
	return x, y, depth, depth >= -1 && depth <= 1
}

// ScreenTriangle is a triangle projected into a viewport.
type ScreenTriangle struct {
	X, Y  [3]float32
	Depth float32 // mean NDC depth, larger is further away
	Color [3]float32
}

// ProjectFrame projects and shades every triangle in frame, appending the
// visible ones to dst. Triangles with any vertex outside the depth range are
// skipped.
func ProjectFrame(dst []ScreenTriangle, frame *Frame, cam Camera, light Light, width, height int, aspect float32) []ScreenTriangle {
	vp := cam.ViewProjection(aspect)
	for _, tri := range frame.Triangles {
		var st ScreenTriangle
		visible := true
		for i, v := range tri.Vertices {
			x, y, d, ok := Project(vp, v, width, height)
			if !ok {
				visible = false
				break
			}
			st.X[i], st.Y[i] = x, y
			st.Depth += d / 3
		}
		if !visible {
			continue
		}
		st.Color = light.Shade(tri.Normal)
		dst = append(dst, st)
	}
	return dst
}
