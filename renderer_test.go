package triparticles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseRenderer_Exclusive(t *testing.T) {
	app := NewApp()
	mod := &MockModule{}

	app.UseRenderer(RendererTerminal, mod)
	assert.True(t, mod.installed)
	assert.Equal(t, RendererTerminal, app.RendererName())

	// Re-selecting the same renderer is harmless.
	app.UseRenderer(RendererTerminal, nil)

	require.PanicsWithValue(t, "Multiple renderers installed: term and window", func() {
		app.UseRenderer(RendererWindow, nil)
	})
}

func TestUseRenderer_Headless(t *testing.T) {
	app := NewApp()
	assert.Equal(t, RendererName(""), app.RendererName())
	app.UseRenderer(RendererHeadless, nil)
	assert.Equal(t, RendererHeadless, app.RendererName())
}

func TestParseRendererName(t *testing.T) {
	for _, s := range []string{"headless", "term", "window"} {
		n, err := ParseRendererName(s)
		require.NoError(t, err)
		assert.Equal(t, RendererName(s), n)
	}
	_, err := ParseRendererName("opengl")
	assert.Error(t, err)
}
