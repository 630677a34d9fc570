package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledThemes(t *testing.T) {
	assert.ElementsMatch(t, BundledThemes, ListEmbeddedThemes())
	for _, name := range BundledThemes {
		assert.True(t, IsEmbeddedTheme(name), name)
	}
	assert.False(t, IsEmbeddedTheme("_keyframes"))
	assert.False(t, IsEmbeddedTheme("catppuccin"))
}

func TestGetEmbeddedPartial(t *testing.T) {
	for _, name := range []string{"_keyframes.css", "keyframes", "_keyframes"} {
		css, ok := GetEmbeddedPartial(name)
		require.True(t, ok, name)
		assert.Contains(t, css, "@keyframes spin")
		assert.Contains(t, css, "@keyframes checkmark")
	}
}

func TestDefaultThemeClasses(t *testing.T) {
	th, err := NewBundledTheme(DefaultThemeName)
	require.NoError(t, err)

	for _, sel := range []string{".toast", ".toast.success", ".toast.hidden", ".toast-spinner", ".toast-checkmark", "button.host-trigger"} {
		assert.Contains(t, th.CSS, sel)
	}
	assert.Contains(t, th.CSS, "#4caf50")
	assert.Contains(t, th.CSS, "#333333")
	assert.Contains(t, th.CSS, "@keyframes spin")
	assert.NotContains(t, th.CSS, "@import")
}

func TestProcessImportsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "colors.css"), []byte(".toast { color: red; }"), 0o644))

	out := ProcessImports(`@import "colors.css";`+"\n.toast-text {}", dir, nil)
	assert.Contains(t, out, "color: red")
	assert.Contains(t, out, ".toast-text")
}

func TestProcessImportsCycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte(`@import "b.css";`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte(`@import "a.css";`), 0o644))

	out := ProcessImports(`@import "a.css";`, dir, nil)
	assert.Contains(t, out, "circular import prevented")
}

func TestProcessImportsEmbeddedFallback(t *testing.T) {
	out := ProcessImports(`@import "_keyframes.css";`, t.TempDir(), nil)
	assert.Contains(t, out, "@keyframes spin")
	assert.False(t, strings.Contains(out, "import failed"))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.css"), []byte(".toast { background: black; }"), 0o644))

	th, err := Resolve("default", dir)
	require.NoError(t, err)
	assert.False(t, th.Bundled)
	assert.Contains(t, th.CSS, "background: black")

	th, err = Resolve("minimal", dir)
	require.NoError(t, err)
	assert.True(t, th.Bundled)

	th, err = Resolve("nope", dir)
	assert.Error(t, err)
	require.NotNil(t, th)
	assert.Equal(t, DefaultThemeName, th.Name)
}
