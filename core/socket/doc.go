// Package socket is the persistent-connection subsystem: a WebSocket router
// that hands each accepted connection to the handler registered for its
// exact request path.
//
//	ws := socket.NewRouter(socket.WithAllowAnyOrigin())
//	ws.Handle("/chat", func(ctx context.Context, conn *socket.Conn) error {
//		for {
//			msg, err := conn.ReceiveText()
//			if err != nil {
//				return err
//			}
//			if err := conn.Send("echo: " + msg); err != nil {
//				return err
//			}
//		}
//	})
//	http.ListenAndServe(":8765", ws)
//
// A connection opened on an unregistered path receives the text message
// "404 Not Found" and is then closed.
//
// The router runs on its own listener and does not see HTTP session state.
package socket
