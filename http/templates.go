package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	indexTemplate  = "index.html"
	resultTemplate = "result.html"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Renderer executes the page templates. Templates come from the embedded
// set unless a directory is given, in which case they can be hot reloaded.
type Renderer struct {
	mu   sync.RWMutex
	tmpl *template.Template
	dir  string
	log  *zap.Logger
}

func NewRenderer(dir string, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{dir: dir, log: log}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses the templates. The previous set stays in use on failure.
func (r *Renderer) Reload() error {
	tmpl, err := r.parse()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

func (r *Renderer) parse() (*template.Template, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if r.dir == "" {
		tmpl, err = template.ParseFS(embeddedTemplates, "templates/*.html")
	} else {
		tmpl, err = template.ParseGlob(filepath.Join(r.dir, "*.html"))
	}
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{indexTemplate, resultTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s not found", name)
		}
	}
	return tmpl, nil
}

// Render executes the named template fully before writing anything to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the templates whenever a file in the template directory
// changes, until ctx is done. It returns once the watch is established.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return errors.New("templates are embedded, nothing to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != ".html" || event.Op == fsnotify.Chmod {
					continue
				}
				if err := r.Reload(); err != nil {
					r.log.Warn("template reload failed", zap.String("file", event.Name), zap.Error(err))
					continue
				}
				r.log.Info("templates reloaded", zap.String("file", event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.log.Warn("template watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
