package socket_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/socket"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()

	r := socket.NewRouter()
	r.Handle("/echo", socket.Echo)
	r.Handle("/greet", func(ctx context.Context, conn *socket.Conn) error {
		name, err := conn.ReceiveText()
		if err != nil {
			return err
		}
		return conn.Send("hello " + name + " on " + conn.Path())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Run("echo", func(t *testing.T) {
		t.Parallel()

		conn := dial(t, srv, "/echo")
		for _, msg := range []string{"one", "two"} {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)
			assert.Equal(t, msg, string(data))
		}
	})

	t.Run("handler by path", func(t *testing.T) {
		t.Parallel()

		conn := dial(t, srv, "/greet")
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ada")))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "hello ada on /greet", string(data))

		// Handler returned, so the connection is closed normally.
		_, _, err = conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()

		conn := dial(t, srv, "/nope")
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, socket.NotFoundMessage, string(data))

		_, _, err = conn.ReadMessage()
		assert.Error(t, err)
	})

	t.Run("exact path only", func(t *testing.T) {
		t.Parallel()

		conn := dial(t, srv, "/echo/")
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, socket.NotFoundMessage, string(data))
	})
}

func TestRouter_JSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		N int `json:"n"`
	}

	r := socket.NewRouter()
	r.Handle("/double", func(ctx context.Context, conn *socket.Conn) error {
		var in payload
		if err := conn.ReceiveJSON(&in); err != nil {
			return err
		}
		return conn.SendJSON(payload{N: in.N * 2})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv, "/double")
	require.NoError(t, conn.WriteJSON(payload{N: 21}))

	var out payload
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, 42, out.N)
}

func TestRouter_Hooks(t *testing.T) {
	t.Parallel()

	var (
		mu           sync.Mutex
		errs         []error
		disconnected = make(chan string, 1)
	)
	rejected := errors.New("rejected")

	r := socket.NewRouter(
		socket.WithOnConnect(func(ctx context.Context, conn *socket.Conn) error {
			return rejected
		}),
		socket.WithOnDisconnect(func(ctx context.Context, conn *socket.Conn) {
			disconnected <- conn.Path()
		}),
		socket.WithErrorHandler(func(ctx context.Context, err error) {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
		}),
	)
	r.Handle("/guarded", func(context.Context, *socket.Conn) error {
		t.Error("handler must not run")
		return nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv, "/guarded")
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	select {
	case path := <-disconnected:
		assert.Equal(t, "/guarded", path)
	case <-time.After(5 * time.Second):
		t.Fatal("disconnect hook not called")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], rejected)
}

func TestRouter_PlainHTTPRequest(t *testing.T) {
	t.Parallel()

	var upgradeErr error
	r := socket.NewRouter(socket.WithErrorHandler(func(ctx context.Context, err error) {
		upgradeErr = err
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Error(t, upgradeErr)
}

func TestRouter_Registration(t *testing.T) {
	t.Parallel()

	r := socket.NewRouter()
	r.Handle("/b", socket.Echo).Handle("/a", socket.Echo)
	assert.Equal(t, []string{"/a", "/b"}, r.Paths())
	assert.Panics(t, func() { r.Handle("/c", nil) })
}

func TestConn_SendAfterClose(t *testing.T) {
	t.Parallel()

	result := make(chan error, 1)
	r := socket.NewRouter()
	r.Handle("/close", func(ctx context.Context, conn *socket.Conn) error {
		assert.NoError(t, conn.Close())
		result <- conn.Send("late")
		return nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, srv, "/close")
	_, _, _ = conn.ReadMessage()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, socket.ErrConnClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not run")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := socket.DefaultConfig()
	cfg.AllowAnyOrigin = true
	r := socket.NewFromConfig(cfg)
	r.Handle("/echo", socket.Echo)

	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://elsewhere.example"}}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/echo"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
}
