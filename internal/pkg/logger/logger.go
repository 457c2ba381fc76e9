package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

// Options describes the attributes stamped on every log line
type Options struct {
	App     string
	Version string
	Env     string
	Level   slog.Level
}

// New builds a JSON slog logger using the ECS field names that the request
// logging middleware emits, so application and access logs share a schema.
func New(w io.Writer, opts Options) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}
