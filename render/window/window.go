// Package window renders the particle frame into a desktop window with
// ebiten. Ebiten owns the main loop, so this package also provides the
// Scheduler that drives the app in window mode.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/gekko3d/triparticles"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTitle  = "triparticles"

	// DrawTriangles indexes with uint16.
	maxBatchVertices = 65535 / 3 * 3
)

// Module opens the window and presents each frame. Requires ParticleModule.
// The app must be driven by Scheduler.
type Module struct {
	Width, Height int
	Title         string
	Camera        triparticles.Camera
	Light         triparticles.Light
}

// View holds the window's drawing state. It is read by ebiten's Draw and
// written in the Render stage, both on ebiten's game goroutine.
type View struct {
	width, height int
	title         string
	camera        triparticles.Camera
	light         triparticles.Light

	tris     []triparticles.ScreenTriangle
	vertices []ebiten.Vertex
	indices  []uint16
	stats    triparticles.StepStats
}

func (m Module) Install(app *triparticles.App, cmd *triparticles.Commands) {
	v := &View{
		width:  m.Width,
		height: m.Height,
		title:  m.Title,
		camera: m.Camera,
		light:  m.Light,
	}
	if v.width <= 0 {
		v.width = DefaultWidth
	}
	if v.height <= 0 {
		v.height = DefaultHeight
	}
	if v.title == "" {
		v.title = DefaultTitle
	}
	if v.camera.FovY == 0 {
		v.camera = triparticles.DefaultCamera()
	}
	if v.light == (triparticles.Light{}) {
		v.light = triparticles.DefaultLight()
	}

	cmd.AddResources(v)
	cmd.UseSystem(triparticles.System(inputSystem).InStage(triparticles.PreUpdate))
	cmd.UseSystem(triparticles.System(viewSystem).InStage(triparticles.Render))
}

func inputSystem(sim *triparticles.Simulation, cmd *triparticles.Commands) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		cmd.Exit()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		n := sim.Burst(sim.Config().BatchSize)
		cmd.Logger().Debugf("window: burst of %d particles", n)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		sim.Reset()
	}
}

func viewSystem(v *View, frame *triparticles.Frame) {
	v.update(frame)
}

// update projects the frame and rebuilds the vertex batch, far to near since
// ebiten has no depth buffer.
func (v *View) update(frame *triparticles.Frame) {
	v.stats = frame.Stats
	aspect := float32(v.width) / float32(v.height)
	v.tris = triparticles.ProjectFrame(v.tris[:0], frame, v.camera, v.light, v.width, v.height, aspect)
	sort.SliceStable(v.tris, func(i, j int) bool { return v.tris[i].Depth > v.tris[j].Depth })

	v.vertices = v.vertices[:0]
	for _, t := range v.tris {
		for k := 0; k < 3; k++ {
			v.vertices = append(v.vertices, ebiten.Vertex{
				DstX:   t.X[k],
				DstY:   t.Y[k],
				SrcX:   1,
				SrcY:   1,
				ColorR: t.Color[0],
				ColorG: t.Color[1],
				ColorB: t.Color[2],
				ColorA: 1,
			})
		}
	}

	if len(v.indices) < min(len(v.vertices), maxBatchVertices) {
		v.indices = v.indices[:0]
		for i := 0; i < maxBatchVertices && i < len(v.vertices); i++ {
			v.indices = append(v.indices, uint16(i))
		}
	}
}

// Scheduler runs the app inside ebiten's game loop at TPS ticks per second.
type Scheduler struct {
	TPS      int
	MaxTicks uint64
}

func (s Scheduler) Run(ctx context.Context, app *triparticles.App) error {
	defer app.Shutdown()

	v, ok := triparticles.Resource[View](app)
	if !ok {
		return errors.New("window scheduler: window.Module is not installed")
	}
	tps := s.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}

	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle(v.title)
	ebiten.SetTPS(tps)

	g := &game{ctx: ctx, app: app, view: v, maxTicks: s.MaxTicks}
	app.Logger().Infof("window loop started (%dx%d, %d tps)", v.width, v.height, tps)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	app.Logger().Infof("window loop stopped after %d ticks", app.Ticks())
	return nil
}

type game struct {
	ctx      context.Context
	app      *triparticles.App
	view     *View
	maxTicks uint64
	white    *ebiten.Image
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.app.Tick()
	if g.app.ExitRequested() {
		return ebiten.Termination
	}
	if g.maxTicks > 0 && g.app.Ticks() >= g.maxTicks {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	screen.Fill(color.Black)
	v := g.view
	for start := 0; start < len(v.vertices); start += maxBatchVertices {
		end := min(start+maxBatchVertices, len(v.vertices))
		screen.DrawTriangles(v.vertices[start:end], v.indices[:end-start], g.white, nil)
	}

	s := v.stats
	hud := fmt.Sprintf("tick %d  live %d  pool %d  %.0f tps\n[space] burst  [r] reset  [q] quit",
		s.Tick, s.Live, s.Allocated, ebiten.ActualTPS())
	text.Draw(screen, hud, basicfont.Face7x13, 8, 16, color.White)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.width, g.view.height
}
