package style

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	assert.True(t, SetTheme("catppuccin"))
	assert.Equal(t, "catppuccin", CurrentThemeName)
	assert.Equal(t, catppuccinTheme.Primary, Primary)

	assert.False(t, SetTheme("solarized"))
	assert.Equal(t, "catppuccin", CurrentThemeName)
}

func TestScrollbarRender(t *testing.T) {
	bar := ScrollbarRender(0, 10, 100, 10)
	assert.Equal(t, 10, lipgloss.Height(bar))
	rows := strings.Split(bar, "\n")
	assert.Contains(t, rows[0], "┃")
	assert.Contains(t, rows[9], "│")

	bar = ScrollbarRender(1, 10, 100, 10)
	rows = strings.Split(bar, "\n")
	assert.Contains(t, rows[9], "┃")
	assert.Contains(t, rows[0], "│")

	assert.Equal(t, "", ScrollbarRender(0.5, 1, 1, 0))
}
