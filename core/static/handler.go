package static

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajimekit/hajime/core/logger"
)

// DefaultPrefix is the URL prefix reserved for static assets.
const DefaultPrefix = "/static/"

// NotFoundBody is the body of a 404 response.
const NotFoundBody = "404 Not Found"

// Handler serves files under a root directory for paths beginning with a prefix.
// Paths escaping the root, directories and missing files answer 404 text/plain.
type Handler struct {
	root   string
	fsys   fs.FS
	prefix string
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrefix sets the URL prefix stripped before resolving the file.
func WithPrefix(prefix string) Option {
	return func(h *Handler) {
		if prefix != "" {
			h.prefix = prefix
		}
	}
}

// WithFS serves files from fsys instead of the root directory.
func WithFS(fsys fs.FS) Option {
	return func(h *Handler) {
		h.fsys = fsys
	}
}

// WithLogger sets the logger for serve events.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a static file handler rooted at dir.
// A relative dir is resolved against the working directory.
func New(dir string, opts ...Option) *Handler {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = filepath.Clean(dir)
	}

	h := &Handler{
		root:   root,
		prefix: DefaultPrefix,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Root returns the absolute directory files are served from.
func (h *Handler) Root() string {
	return h.root
}

// Prefix returns the URL prefix the handler is mounted at.
func (h *Handler) Prefix() string {
	return h.prefix
}

// Validate reports whether the root directory exists.
// Handlers serving from an fs.FS are always valid.
func (h *Handler) Validate() error {
	if h.fsys != nil {
		return nil
	}
	return validateRoot(h.root)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel, ok := strings.CutPrefix(r.URL.Path, h.prefix)
	if !ok {
		h.notFound(w)
		return
	}

	if h.fsys != nil {
		h.serveFS(w, r, rel)
		return
	}

	full, err := resolvePath(h.root, rel)
	if err != nil {
		h.logger.WarnContext(r.Context(), "static path rejected",
			logger.Path(r.URL.Path),
			logger.Error(err))
		h.notFound(w)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		h.notFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		h.notFound(w)
		return
	}

	h.logger.DebugContext(r.Context(), "serving static file",
		logger.Path(r.URL.Path),
		slog.String("file", full))

	w.Header().Set("Content-Type", contentType(full))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) serveFS(w http.ResponseWriter, r *http.Request, rel string) {
	name := strings.TrimPrefix(path.Clean("/"+rel), "/")
	if name == "" || !fs.ValidPath(name) {
		h.notFound(w)
		return
	}

	f, err := h.fsys.Open(name)
	if err != nil {
		h.notFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		h.notFound(w)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "static file read failed",
				logger.Path(r.URL.Path),
				logger.Error(err))
			h.notFound(w)
			return
		}
		content = bytes.NewReader(data)
	}

	h.logger.DebugContext(r.Context(), "serving static file",
		logger.Path(r.URL.Path),
		slog.String("file", name))

	w.Header().Set("Content-Type", contentType(name))
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func (h *Handler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(NotFoundBody)))
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(NotFoundBody))
}
