package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	for _, name := range []string{"Header", "Alias", "Success", "Error", "Warning", "Muted", "FilePath"} {
		mu.RLock()
		_, ok := registry[name]
		mu.RUnlock()
		assert.True(t, ok, "style %s should be registered", name)
	}
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, LoadStylesFromData(embeddedStyles)) })

	data := []byte(`
colors:
  red:
    light: "#FF0000"
    dark: "#FF0000"
styles:
  Only:
    bold: true
    foreground: red
`)
	require.NoError(t, LoadStylesFromData(data))

	assert.True(t, GetStyle("Only").GetBold())
	assert.False(t, GetStyle("Header").GetBold(), "unknown names fall back to a plain style")
}

func TestLoadStylesFromData_Invalid(t *testing.T) {
	err := LoadStylesFromData([]byte("colors: [unterminated"))
	assert.Error(t, err)
}

func TestLoadStyles_MissingFile(t *testing.T) {
	err := LoadStyles(t.TempDir() + "/nope.yaml")
	assert.Error(t, err)
}

func TestRender_Unstyled(t *testing.T) {
	Configure(false)
	assert.Equal(t, "work", Render("Alias", "work"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusOK, StatusFor(true))
	assert.Equal(t, StatusFailed, StatusFor(false))
}

func TestBadge(t *testing.T) {
	Configure(false)

	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "✓ Key"},
		{StatusFailed, "✗ Key"},
		{StatusWarning, "! Key"},
		{StatusNone, "• Key"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Badge(tt.status, "Key"))
		})
	}
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil))
}
