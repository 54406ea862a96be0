// Package term renders the particle frame into a terminal with tcell.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/triparticles"
)

const eventQueueSize = 64

// NewScreen opens and initialises the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return screen, nil
}

// Module presents each frame on an initialised tcell screen. Zero Camera and
// Light fall back to the defaults. Requires ParticleModule.
type Module struct {
	Screen tcell.Screen
	Camera triparticles.Camera
	Light  triparticles.Light
}

type Presenter struct {
	screen tcell.Screen
	camera triparticles.Camera
	light  triparticles.Light

	events chan tcell.Event
	quit   chan struct{}

	tris  []triparticles.ScreenTriangle
	depth []float32
}

func (m Module) Install(app *triparticles.App, cmd *triparticles.Commands) {
	if m.Screen == nil {
		panic("term.Module: Screen is nil")
	}
	p := newPresenter(m.Screen, m.Camera, m.Light)
	go p.poll()

	cmd.AddResources(p)
	cmd.UseSystem(triparticles.System(inputSystem).InStage(triparticles.PreUpdate))
	cmd.UseSystem(triparticles.System(presentSystem).InStage(triparticles.Render))
	cmd.UseSystem(triparticles.System(shutdownSystem).InStage(triparticles.Finale))
}

func newPresenter(screen tcell.Screen, cam triparticles.Camera, light triparticles.Light) *Presenter {
	if cam.FovY == 0 {
		cam = triparticles.DefaultCamera()
	}
	if light == (triparticles.Light{}) {
		light = triparticles.DefaultLight()
	}
	screen.HideCursor()
	return &Presenter{
		screen: screen,
		camera: cam,
		light:  light,
		events: make(chan tcell.Event, eventQueueSize),
		quit:   make(chan struct{}),
	}
}

// poll forwards terminal events until the screen is finalised.
func (p *Presenter) poll() {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case p.events <- ev:
		case <-p.quit:
			return
		}
	}
}

func inputSystem(p *Presenter, sim *triparticles.Simulation, cmd *triparticles.Commands) {
	for {
		select {
		case ev := <-p.events:
			p.handleEvent(ev, sim, cmd)
		default:
			return
		}
	}
}

func (p *Presenter) handleEvent(ev tcell.Event, sim *triparticles.Simulation, cmd *triparticles.Commands) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			cmd.Exit()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				cmd.Exit()
			case ' ':
				n := sim.Burst(sim.Config().BatchSize)
				cmd.Logger().Debugf("term: burst of %d particles", n)
			case 'r':
				sim.Reset()
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
}

func presentSystem(p *Presenter, frame *triparticles.Frame) {
	p.present(frame)
}

func (p *Presenter) present(frame *triparticles.Frame) {
	w, h := p.screen.Size()
	p.screen.Clear()
	if w <= 0 || h <= 0 {
		return
	}

	// Cells are roughly twice as tall as they are wide.
	aspect := float32(w) / float32(2*h)
	p.tris = triparticles.ProjectFrame(p.tris[:0], frame, p.camera, p.light, w, h, aspect)

	if cap(p.depth) < w*h {
		p.depth = make([]float32, w*h)
	}
	p.depth = p.depth[:w*h]

	rasterize(p.tris, w, h, p.depth, func(x, y int, c [3]float32) {
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2])))
		p.screen.SetContent(x, y, ' ', nil, style)
	})

	s := frame.Stats
	p.drawStatus(fmt.Sprintf(" tick %d  live %d  pool %d  [space] burst  [r] reset  [q] quit ",
		s.Tick, s.Live, s.Allocated))
	p.screen.Show()
}

func (p *Presenter) drawStatus(line string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	x := 0
	for _, r := range line {
		p.screen.SetContent(x, 0, r, nil, style)
		x++
	}
}

func shutdownSystem(p *Presenter) {
	close(p.quit)
	p.screen.Fini()
}

func channel(v float32) int32 {
	return int32(v*255 + 0.5)
}
