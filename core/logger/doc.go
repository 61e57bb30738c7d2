// Package logger provides structured logging utilities built on Go's standard slog package.
//
// Loggers are built with New and functional options, or from environment
// configuration with NewFromConfig:
//
//	import "github.com/hajimekit/hajime/core/logger"
//
//	log := logger.New(
//		logger.WithDevelopment("myapp"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	prod := logger.New(logger.WithProduction("myapp"))
//
// # Attribute Helpers
//
// Helpers return typed slog attributes and are nil-safe: passing a nil error
// to Error yields an empty attribute that slog drops.
//
//	log.Info("request dispatched",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(200),
//		logger.Outcome("handled"),
//		logger.Latency(time.Since(start)),
//	)
//
//	log.Error("query failed", logger.Error(err), logger.Component("storage"))
//
// Components in this module default to Discard() and accept a logger through
// a WithLogger option.
package logger
