package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// closeGracePeriod bounds how long Close waits to deliver the close frame.
const closeGracePeriod = time.Second

// Conn is one persistent connection accepted by a Router.
// Reads must come from a single goroutine; writes are serialized internally.
type Conn struct {
	ws   *websocket.Conn
	path string

	writeMu sync.Mutex
	once    sync.Once
	closed  bool
}

func newConn(ws *websocket.Conn, path string) *Conn {
	return &Conn{ws: ws, path: path}
}

// Path returns the request path the connection was opened on.
func (c *Conn) Path() string {
	return c.path
}

// Raw returns the underlying gorilla connection.
func (c *Conn) Raw() *websocket.Conn {
	return c.ws
}

// Receive blocks until the next data message arrives.
func (c *Conn) Receive() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

// ReceiveText returns the next message as a string.
func (c *Conn) ReceiveText() (string, error) {
	data, err := c.Receive()
	return string(data), err
}

// ReceiveJSON decodes the next message into v.
func (c *Conn) ReceiveJSON(v any) error {
	return c.ws.ReadJSON(v)
}

// Send writes a text message.
func (c *Conn) Send(text string) error {
	return c.write(websocket.TextMessage, []byte(text))
}

// SendBytes writes a binary message.
func (c *Conn) SendBytes(data []byte) error {
	return c.write(websocket.BinaryMessage, data)
}

// SendJSON writes v as a JSON text message.
func (c *Conn) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, data)
}

// Close sends a normal-closure frame and closes the connection. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		c.writeMu.Lock()
		c.closed = true
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	return c.ws.WriteMessage(messageType, data)
}

// IsClosed reports whether err signals the peer closed the connection normally.
func IsClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
