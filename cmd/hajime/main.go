// Command hajime runs a small demo application on the Hajime framework.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimekit/hajime/app"
	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/response"
	"github.com/hajimekit/hajime/core/socket"
	"github.com/hajimekit/hajime/core/storage"
	"github.com/hajimekit/hajime/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New()
	if err != nil {
		logger.New().Error("Failed to build application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
	log := a.Logger()

	if db := a.DB(); db != nil {
		if err := prepare(ctx, db); err != nil {
			log.Error("Failed to prepare database", logger.Component("database"), logger.Error(err))
			os.Exit(1)
		}
	}

	a.AddMiddleware(middleware.Skip(middleware.Auth, "/", "/hello", "/echo", "/login", "/messages", "/metrics", "/health/live", "/health/ready", a.Config().AdminPath)).
		AddRoute("/", func(*handler.Context) handler.Result {
			return handler.HTML(a.Template("index.html", map[string]any{"title": "Hajime"}))
		}).
		AddRoute("/hello", func(ctx *handler.Context) handler.Result {
			name := ctx.Query().Get("name")
			if name == "" {
				name = "world"
			}
			return handler.Text(http.StatusOK, "text/plain", "Hello, "+name+"!")
		}).
		AddRoute("/echo", func(ctx *handler.Context) handler.Result {
			return response.JSON(map[string]any{"received": ctx.JSON()})
		}, http.MethodPost).
		AddRoute("/login", func(ctx *handler.Context) handler.Result {
			var creds struct {
				User string `json:"user"`
			}
			if err := ctx.BindJSON(&creds); err != nil || creds.User == "" {
				return response.JSONWithStatus(map[string]string{"error": "user is required"}, http.StatusBadRequest)
			}
			ctx.Session().Set(middleware.SessionUserKey, creds.User)
			return response.JSON(map[string]string{"user": creds.User})
		}, http.MethodPost).
		AddRoute("/profile", func(ctx *handler.Context) handler.Result {
			user, _ := ctx.Session().GetString(middleware.SessionUserKey)
			return response.JSON(map[string]any{
				"user":    user,
				"session": ctx.SessionID(),
			})
		}).
		AddRoute("/messages", func(ctx *handler.Context) handler.Result {
			db := a.DB()
			if db == nil {
				return response.JSON([]any{})
			}
			rows, err := db.ReadAll(ctx, `SELECT id, body FROM messages ORDER BY id`)
			if err != nil {
				log.ErrorContext(ctx, "Failed to read messages", logger.Error(err))
				return response.JSONWithStatus(map[string]string{"error": "internal error"}, http.StatusInternalServerError)
			}
			out := make([]map[string]any, 0, len(rows))
			for _, row := range rows {
				out = append(out, row.Map())
			}
			return response.JSON(out)
		}).
		SetErrorHandler(http.StatusNotFound, func(ctx *handler.Context) string {
			return "<h1>Nothing at " + ctx.Path() + "</h1>"
		})

	a.AddMessageHandler("/echo", socket.Echo).
		AddMessageHandler("/chat", chat(a.DB()))

	if err := a.Launch(ctx); err != nil {
		log.Error("Application stopped", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
}

// prepare creates the demo table when it does not exist yet.
func prepare(ctx context.Context, db *storage.DB) error {
	_, err := db.Run(ctx, createMessages(db))
	return err
}

// chat stores every received message so the HTTP side can list it, then
// acknowledges it to the sender.
func chat(db *storage.DB) socket.MessageHandler {
	return func(ctx context.Context, conn *socket.Conn) error {
		for {
			msg, err := conn.ReceiveText()
			if err != nil {
				return err
			}
			if db != nil {
				if _, err := db.Run(ctx, insertMessage(db), msg); err != nil {
					return err
				}
			}
			if err := conn.Send("ack: " + msg); err != nil {
				return err
			}
		}
	}
}

func insertMessage(db *storage.DB) string {
	if db.Driver() == storage.DriverPostgres {
		return `INSERT INTO messages (body) VALUES ($1)`
	}
	return `INSERT INTO messages (body) VALUES (?)`
}

func createMessages(db *storage.DB) string {
	if db.Driver() == storage.DriverPostgres {
		return `CREATE TABLE IF NOT EXISTS messages (id SERIAL PRIMARY KEY, body TEXT NOT NULL)`
	}
	return `CREATE TABLE IF NOT EXISTS messages (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`
}
