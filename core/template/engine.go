package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimekit/hajime/core/logger"
)

// NotFoundText is the text returned by RenderOrFallback when rendering fails.
const NotFoundText = "Template not found!"

// Engine renders HTML files from a directory, replacing every {{key}} with the
// string form of vars[key]. There is no escaping, logic or nesting.
type Engine struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for render events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFS renders templates from fsys instead of a directory on disk.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		if fsys != nil {
			e.fsys = fsys
		}
	}
}

// New creates a template engine reading from dir.
func New(dir string, opts ...Option) *Engine {
	e := &Engine{
		fsys:   os.DirFS(dir),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render loads the named template and substitutes vars.
func (e *Engine) Render(name string, vars map[string]any) (string, error) {
	name = filepath.ToSlash(name)
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	raw, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("read template %s: %w", name, err)
	}

	e.logger.Debug("rendering template", logger.Key("template", name), logger.Count("vars", len(vars)))

	return Substitute(string(raw), vars), nil
}

// RenderOrFallback renders the named template, returning NotFoundText on any failure.
func (e *Engine) RenderOrFallback(name string, vars map[string]any) string {
	out, err := e.Render(name, vars)
	if err != nil {
		e.logger.Warn("template render failed", logger.Key("template", name), logger.Error(err))
		return NotFoundText
	}
	return out
}

// Substitute replaces every {{key}} in text with fmt.Sprint(vars[key]).
// Placeholders without a matching key are left untouched. Substituted values
// are not rescanned for placeholders.
func Substitute(text string, vars map[string]any) string {
	if len(vars) == 0 {
		return text
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(vars[k]))
	}

	return strings.NewReplacer(pairs...).Replace(text)
}
