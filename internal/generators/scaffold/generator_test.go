package scaffold

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenframe/wren/internal/manifest"
)

func TestRenderAllCoversEveryMapping(t *testing.T) {
	g := New("blog", "github.com/acme/blog", "/api")

	files, err := g.RenderAll()
	require.NoError(t, err)
	require.Len(t, files, len(Mappings()))

	byPath := make(map[string]string)
	for _, f := range files {
		assert.NotEmpty(t, f.Content, "%s rendered empty", f.Path)
		byPath[f.Path] = string(f.Content)
	}

	assert.Contains(t, byPath["go.mod"], "module github.com/acme/blog")
	assert.Contains(t, byPath["wren.yml"], "name: blog")
	assert.Contains(t, byPath["wren.yml"], "api_prefix: /api")
	assert.Contains(t, byPath["cmd/server/main.go"], `"github.com/acme/blog/internal/routes"`)
	assert.Contains(t, byPath["internal/routes/routes.go"], "// === WREN:ROUTES ===")
	assert.Contains(t, byPath["internal/app/seed.go"], "// === WREN:SEEDS ===")
	assert.Contains(t, byPath["docker-compose.yml"], "POSTGRES_DB: blog")
}

func TestMarkerFilesAreNotUpdatable(t *testing.T) {
	for _, m := range Mappings() {
		if m.Category == manifest.CategoryMarker {
			assert.False(t, m.Updatable, "%s accumulates injections and must never be re-rendered", m.Path)
		}
	}
}

func TestUserOwnedFilesAreNotUpdatable(t *testing.T) {
	updatable := make(map[string]bool)
	for _, m := range Mappings() {
		updatable[m.Path] = m.Updatable
	}
	assert.False(t, updatable["wren.yml"])
	assert.False(t, updatable["go.mod"])
	assert.True(t, updatable["Dockerfile"])
}

func TestRenderUpdatableExcludesNonUpdatable(t *testing.T) {
	g := New("blog", "github.com/acme/blog", "/api")

	files, err := g.RenderUpdatable()
	require.NoError(t, err)

	want := 0
	for _, m := range Mappings() {
		if m.Updatable {
			want++
		}
	}
	require.Len(t, files, want)

	for _, f := range files {
		assert.NotEqual(t, "wren.yml", f.Path)
		assert.False(t, strings.HasSuffix(f.Path, "seed.go"))
		assert.False(t, strings.HasSuffix(f.Path, "routes/routes.go"))
	}
}
