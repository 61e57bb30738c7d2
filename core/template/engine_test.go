package template_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/template"
)

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"),
		[]byte("<h1>Hello {{name}}</h1><p>{{count}} new, {{name}}</p>{{missing}}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "about.html"), []byte("about {{v}}"), 0o644))

	tpl := template.New(dir)

	t.Run("substitutes every occurrence", func(t *testing.T) {
		t.Parallel()

		out, err := tpl.Render("hello.html", map[string]any{"name": "Ada", "count": 3})
		require.NoError(t, err)
		assert.Equal(t, "<h1>Hello Ada</h1><p>3 new, Ada</p>{{missing}}", out)
	})

	t.Run("nested file", func(t *testing.T) {
		t.Parallel()

		out, err := tpl.Render("pages/about.html", map[string]any{"v": true})
		require.NoError(t, err)
		assert.Equal(t, "about true", out)
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := tpl.Render("nope.html", nil)
		assert.ErrorIs(t, err, template.ErrTemplateNotFound)
		assert.Equal(t, template.NotFoundText, tpl.RenderOrFallback("nope.html", nil))
	})

	t.Run("traversal rejected", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"../hello.html", "/etc/passwd", "pages/../../x"} {
			_, err := tpl.Render(name, nil)
			assert.ErrorIs(t, err, template.ErrInvalidName, name)
		}
	})
}

func TestEngine_WithFS(t *testing.T) {
	t.Parallel()

	tpl := template.New("", template.WithFS(fstest.MapFS{
		"index.html": {Data: []byte("{{a}}{{b}}")},
	}))

	out, err := tpl.Render("index.html", map[string]any{"a": "{{b}}", "b": "B"})
	require.NoError(t, err)
	assert.Equal(t, "{{b}}B", out)
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", template.Substitute("plain", nil))
	assert.Equal(t, "x=1.5", template.Substitute("x={{x}}", map[string]any{"x": 1.5}))
	assert.Equal(t, "{{ x }}", template.Substitute("{{ x }}", map[string]any{"x": 1}))
}
