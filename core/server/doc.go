// Package server wraps http.Server with graceful shutdown, production
// timeouts and free-port probing. Hajime runs two of these side by side: one
// for the request dispatcher and one for the socket router.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, engine))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a function suitable for errgroup.Go. It starts the listener,
// waits for the context to be canceled and shuts the server down gracefully
// within the configured timeout.
//
// # Configuration
//
// Config is populated from SERVER_* environment variables. When AutoPort is
// set, NewFromConfig replaces a busy port with the next free one:
//
//	cfg := config.MustLoad[server.Config]()
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// FindFreePort can also be called directly:
//
//	port, err := server.FindFreePort("localhost", 8000)
//
// # TLS
//
// Setting SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE enables HTTPS with
// DefaultTLSConfig. WithTLS accepts any *tls.Config.
//
// # Defaults
//
//   - ReadTimeout: 15 seconds
//   - WriteTimeout: 15 seconds
//   - IdleTimeout: 60 seconds
//   - MaxHeaderBytes: 1MB
//   - Graceful shutdown timeout: 30 seconds
//   - Logger: discards output
package server
