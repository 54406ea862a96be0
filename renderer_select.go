package triparticles

import "fmt"

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererHeadless RendererName = "headless"
	RendererTerminal RendererName = "term"
	RendererWindow   RendererName = "window"
)

func ParseRendererName(s string) (RendererName, error) {
	switch n := RendererName(s); n {
	case RendererHeadless, RendererTerminal, RendererWindow:
		return n, nil
	}
	return "", fmt.Errorf("unknown renderer %q (want %s, %s or %s)", s, RendererHeadless, RendererTerminal, RendererWindow)
}

// UseRenderer installs exactly one renderer module. mod may be nil for the
// headless renderer, which only records frames.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	ensureSingleRenderer(app, string(name))
	app.Logger().Infof("Renderer selected: %s", name)
	if mod != nil {
		app.UseModules(mod)
	}
	return app
}

// RendererName returns the installed renderer, or "" when none was selected.
func (app *App) RendererName() RendererName {
	if tag, ok := Resource[RendererTag](app); ok {
		return RendererName(tag.Name)
	}
	return ""
}
