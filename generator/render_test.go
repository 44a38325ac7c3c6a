package generator

import (
	"embed"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.tmpl
var testTemplates embed.FS

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("greeting", "Hello, {{ .Name }}!", map[string]string{"Name": "wren"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, wren!", string(out))
}

func TestRenderStringParseError(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("broken", "{{ .Name }", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template broken")
}

func TestRenderStringExecuteError(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("fields", "{{ .Missing }}", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering template fields")
}

func TestRenderFS(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderFS(testTemplates, "testdata/simple.tmpl", map[string]string{"Name": "wren"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, wren!", string(out))
}

func TestRenderFSMissingTemplate(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderFS(testTemplates, "testdata/absent.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading template")
}

func TestRenderFSParseError(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderFS(testTemplates, "testdata/invalid_syntax.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template")
}

func TestRenderFSWithNamingHelpers(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderFS(testTemplates, "testdata/entity_routes.go.tmpl",
		map[string]string{"Entity": "post"})
	require.NoError(t, err)

	rendered := string(out)
	assert.Contains(t, rendered, "func RegisterPostRoutes()")
	assert.Contains(t, rendered, `register("/posts")`)
}

func TestRenderStringCachesByName(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("cached", "v: {{ .V }}", map[string]int{"V": 1})
	require.NoError(t, err)
	assert.Equal(t, "v: 1", string(out))

	// Same name, different body: the cached parse wins until the cache is
	// cleared.
	out, err = r.RenderString("cached", "ignored", map[string]int{"V": 2})
	require.NoError(t, err)
	assert.Equal(t, "v: 2", string(out))

	r.ClearCache()
	out, err = r.RenderString("cached", "w: {{ .V }}", map[string]int{"V": 3})
	require.NoError(t, err)
	assert.Equal(t, "w: 3", string(out))
}

func TestRenderStringConcurrent(t *testing.T) {
	r := NewRenderer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := r.RenderString("concurrent", "n={{ .N }}", map[string]int{"N": n})
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("n=%d", n), string(out))
		}(i)
	}
	wg.Wait()
}

func TestFuncsRegistersExtras(t *testing.T) {
	r := NewRenderer()
	r.Funcs(map[string]any{
		"curly": func(s string) string { return "{{" + s + "}}" },
	})

	out, err := r.RenderString("form", `{{ curly ".Title" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "{{.Title}}", string(out))
}
