package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/response"
	"github.com/hajimekit/hajime/core/storage"
)

// NoDatabaseMessage is the body returned when the panel has no database.
const NoDatabaseMessage = "Database not created"

// Source is the subset of the storage collaborator the panel reads from.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	TableRows(ctx context.Context, table string) ([]storage.Row, error)
}

// Option configures the panel handler.
type Option func(*panel)

// WithLogger sets the logger for panel errors.
func WithLogger(l *slog.Logger) Option {
	return func(p *panel) {
		if l != nil {
			p.logger = l
		}
	}
}

type panel struct {
	src    Source
	logger *slog.Logger
}

// Handler returns a handler rendering every table of src as HTML.
// A nil src answers 400 with NoDatabaseMessage.
func Handler(src Source, opts ...Option) handler.HandlerFunc {
	p := &panel{
		src:    src,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.serve
}

func (p *panel) serve(ctx *handler.Context) handler.Result {
	if isNil(p.src) {
		p.logger.WarnContext(ctx, "admin panel requested without a database", logger.StatusCode(http.StatusBadRequest))
		return handler.Text(http.StatusBadRequest, "text/html", NoDatabaseMessage)
	}

	tables, err := Load(ctx, p.src)
	if err != nil {
		p.logger.ErrorContext(ctx, "admin panel load failed", logger.Error(err))
		return handler.Text(http.StatusInternalServerError, "text/html", "500 Internal Server Error")
	}
	return response.Templ(ctx, Panel(tables))
}

// Table is one database table as shown on the panel.
type Table struct {
	Name string
	Rows []storage.Row
}

// Load reads every table from src.
func Load(ctx context.Context, src Source) ([]Table, error) {
	names, err := src.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		rows, err := src.TableRows(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", name, err)
		}
		tables = append(tables, Table{Name: name, Rows: rows})
	}
	return tables, nil
}

// Panel renders a heading, then one HTML table per database table with a
// header row of column names. Every name and value is HTML-escaped.
func Panel(tables []Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h1>Admin Panel</h1>")

		for _, table := range tables {
			b.WriteString("<h2>")
			b.WriteString(templ.EscapeString(table.Name))
			b.WriteString("</h2><table border='1'><tr>")

			if len(table.Rows) > 0 {
				for _, col := range table.Rows[0].Columns {
					b.WriteString("<th>")
					b.WriteString(templ.EscapeString(col))
					b.WriteString("</th>")
				}
				b.WriteString("</tr>")

				for _, row := range table.Rows {
					b.WriteString("<tr>")
					for _, v := range row.Values {
						b.WriteString("<td>")
						b.WriteString(templ.EscapeString(formatValue(v)))
						b.WriteString("</td>")
					}
					b.WriteString("</tr>")
				}
			}

			b.WriteString("</table>")
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Render loads every table from src and renders the panel to a string.
func Render(ctx context.Context, src Source) (string, error) {
	tables, err := Load(ctx, src)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := Panel(tables).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// isNil catches typed nil pointers stored in the interface.
func isNil(src Source) bool {
	if src == nil {
		return true
	}
	if db, ok := src.(*storage.DB); ok && db == nil {
		return true
	}
	return false
}
