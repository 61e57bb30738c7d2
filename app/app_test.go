package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hajimekit/hajime/app"
	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/session"
	"github.com/hajimekit/hajime/core/socket"
	"github.com/hajimekit/hajime/core/storage"
	"github.com/hajimekit/hajime/middleware"
)

func testConfig(t *testing.T) app.Config {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Socket.Addr = "127.0.0.1:0"
	cfg.TemplateDir = t.TempDir()
	cfg.Static.Dir = t.TempDir()
	cfg.Session.CleanupInterval = time.Minute
	return cfg
}

func newApp(t *testing.T, cfg app.Config, opts ...app.Option) *app.App {
	t.Helper()

	opts = append([]app.Option{app.WithConfig(cfg), app.WithLogger(logger.Discard())}, opts...)
	a, err := app.New(opts...)
	require.NoError(t, err)
	return a
}

func launch(t *testing.T, a *app.App) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- a.Launch(ctx) }()

	for _, srv := range []interface{ Ready() <-chan struct{} }{a.HTTPServer(), a.SocketServer()} {
		select {
		case <-srv.Ready():
		case <-time.After(5 * time.Second):
			t.Fatal("server did not start")
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("app did not stop")
			}
		})
	}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.TemplateDir = ""
	_, err := app.New(app.WithConfig(cfg))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)

	cfg = testConfig(t)
	cfg.Static.Prefix = "static"
	_, err = app.New(app.WithConfig(cfg))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)

	cfg = testConfig(t)
	cfg.AdminPath = "admin"
	_, err = app.New(app.WithConfig(cfg))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)

	cfg = testConfig(t)
	cfg.Session.Backend = "memcached"
	_, err = app.New(app.WithConfig(cfg))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)

	cfg = testConfig(t)
	cfg.Session.Backend = session.BackendRedis
	_, err = app.New(app.WithConfig(cfg))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestNew_NilOptions(t *testing.T) {
	t.Parallel()

	_, err := app.New(app.WithLogger(nil))
	assert.ErrorIs(t, err, app.ErrNilLogger)

	_, err = app.New(app.WithDB(nil))
	assert.ErrorIs(t, err, app.ErrNilDatabase)

	_, err = app.New(app.WithRegistry(nil))
	assert.ErrorIs(t, err, app.ErrNilRegistry)

	_, err = app.New(app.WithAssets(nil))
	assert.ErrorIs(t, err, app.ErrNilAssets)
}

func TestApp_Assets(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.TemplateDir = "templates"
	cfg.Static.Dir = "public"
	assets := fstest.MapFS{
		"templates/hello.html": {Data: []byte("<p>Hi {{name}}</p>")},
		"public/app.css":       {Data: []byte("body{}")},
	}

	a := newApp(t, cfg, app.WithAssets(assets))
	assert.Equal(t, "<p>Hi Ada</p>", a.Template("hello.html", map[string]any{"name": "Ada"}))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_Template(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TemplateDir, "hello.html"), []byte("<p>Hi {{name}}</p>"), 0o644))

	a := newApp(t, cfg)
	assert.Equal(t, "<p>Hi Ada</p>", a.Template("hello.html", map[string]any{"name": "Ada"}))
	assert.Equal(t, "Template not found!", a.Template("missing.html", nil))
}

func TestApp_Launch(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Dir, "app.css"), []byte("body{}"), 0o644))

	a := newApp(t, cfg)
	a.AddRoute("/", func(*handler.Context) handler.Result {
		return handler.HTML("<h1>home</h1>")
	}).AddRoute("/login", func(ctx *handler.Context) handler.Result {
		ctx.Session().Set(middleware.SessionUserKey, "ada")
		return handler.HTML("ok")
	}, http.MethodPost).AddRoute("/private", func(ctx *handler.Context) handler.Result {
		user, _ := ctx.Session().GetString(middleware.SessionUserKey)
		return handler.HTML("secret for " + user)
	}).AddMiddleware(
		middleware.Skip(middleware.Auth, "/", "/login", "/metrics", "/admin", "/health/live", "/health/ready"),
	).AddMessageHandler("/echo", socket.Echo)

	stop := launch(t, a)
	defer stop()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}
	base := "http://" + a.HTTPServer().Addr()

	resp, body := get(t, client, base+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>home</h1>", body)
	assert.NotEmpty(t, resp.Header.Get(middleware.DefaultRequestIDHeader))

	resp, body = get(t, client, base+"/private")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, middleware.DefaultAuthMessage, body)

	resp, err = client.Post(base+"/login", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, client, base+"/private")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret for ada", body)

	resp, body = get(t, client, base+"/static/app.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "body{}", body)

	resp, body = get(t, client, base+"/admin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Database not created", body)

	resp, body = get(t, client, base+"/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", body)

	resp, body = get(t, client, base+"/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "READY", body)

	resp, body = get(t, client, base+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `hajime_dispatch_requests_total{outcome="unauthorized"} 1`)
	assert.Contains(t, body, "hajime_session_store_sessions")

	wsURL := "ws://" + a.SocketServer().Addr() + "/echo"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", string(data))

	conn2, _, err := websocket.DefaultDialer.Dial("ws://"+a.SocketServer().Addr()+"/nope", nil)
	require.NoError(t, err)
	defer conn2.Close()
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err = conn2.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, socket.NotFoundMessage, string(data))
}

func TestApp_LaunchTwice(t *testing.T) {
	t.Parallel()

	a := newApp(t, testConfig(t))
	stop := launch(t, a)
	defer stop()

	assert.ErrorIs(t, a.Launch(t.Context()), app.ErrAlreadyLaunch)
}

func TestApp_AdminWithDatabase(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	db, err := storage.Open(ctx, storage.Config{Driver: storage.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Run(ctx, `CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT)`)
	require.NoError(t, err)
	_, err = db.Run(ctx, `INSERT INTO posts (title) VALUES (?)`, "<first>")
	require.NoError(t, err)

	a := newApp(t, testConfig(t), app.WithDB(db))
	assert.Same(t, db, a.DB())

	stop := launch(t, a)
	defer stop()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, body := get(t, client, "http://"+a.HTTPServer().Addr()+"/admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "<h1>Admin Panel</h1>"))
	assert.Contains(t, body, "<td>&lt;first&gt;</td>")

	// A caller-supplied database stays open after shutdown.
	stop()
	require.NoError(t, db.Healthcheck(ctx))
}

func TestApp_AdminBasicAuth(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.AdminUser = "root"
	_, err = app.New(app.WithConfig(cfg), app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, app.ErrInvalidConfig)

	cfg.AdminPasswordHash = string(hash)
	a := newApp(t, cfg)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `realm="Admin"`)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.SetBasicAuth("root", "pw")
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Database not created", rec.Body.String())
}

func TestApp_OpensConfiguredDatabase(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage = storage.Config{
		Driver:        storage.DriverSQLite,
		Database:      filepath.Join(t.TempDir(), "app.db"),
		RetryAttempts: 1,
	}

	a := newApp(t, cfg)
	require.NotNil(t, a.DB())
	assert.Equal(t, storage.DriverSQLite, a.DB().Driver())

	stop := launch(t, a)
	stop()
}
