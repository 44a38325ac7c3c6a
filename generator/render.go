package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// Renderer renders text templates with wren's naming helpers available.
// Parsed templates are cached by key, so each template body is parsed once
// per process however many entities a run generates. Safe for concurrent
// use.
type Renderer struct {
	mu    sync.RWMutex
	funcs template.FuncMap
	cache map[string]*template.Template
}

// NewRenderer returns a renderer with the naming helpers pre-registered.
func NewRenderer() *Renderer {
	return &Renderer{
		funcs: template.FuncMap{
			"pascalCase": PascalCase,
			"camelCase":  CamelCase,
			"snakeCase":  SnakeCase,
			"plural":     Pluralize,
			"title":      Title,
			"upper":      strings.ToUpper,
			"lower":      strings.ToLower,
			"trim":       strings.TrimSpace,
			"replace":    strings.ReplaceAll,
		},
		cache: make(map[string]*template.Template),
	}
}

// Funcs registers extra template functions, overriding built-ins on name
// collision. Register before the first render of any template that uses
// them; cached templates keep the function map they were parsed with.
func (r *Renderer) Funcs(extra template.FuncMap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, fn := range extra {
		r.funcs[name] = fn
	}
}

// RenderString renders an inline template. The name keys the cache and
// labels errors.
func (r *Renderer) RenderString(name, text string, data any) ([]byte, error) {
	tmpl, err := r.parse("string:"+name, name, func() (string, error) {
		return text, nil
	})
	if err != nil {
		return nil, err
	}
	return render(tmpl, data)
}

// RenderFS renders a template out of a filesystem, usually an embed.FS.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.parse("fs:"+path, path, func() (string, error) {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("reading template %s: %w", path, err)
		}
		return string(raw), nil
	})
	if err != nil {
		return nil, err
	}
	return render(tmpl, data)
}

// ClearCache drops all cached templates.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) parse(key, name string, load func() (string, error)) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, err := load()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.cache[key]; ok {
		return tmpl, nil
	}
	tmpl, err = template.New(name).Funcs(r.funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	r.cache[key] = tmpl
	return tmpl, nil
}

func render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
