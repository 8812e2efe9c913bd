package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"hrportal/internal/requestctx"
)

// Handler decorates records with the request and user ids carried by ctx.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := requestctx.GetRequestID(ctx); v != "" {
		record.Add("request_id", v)
	}
	if v := requestctx.GetUserID(ctx); v != "" {
		record.Add("user_id", v)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{h.Handler.WithGroup(name)}
}

// New installs a JSON logger on stdout as the slog default.
func New(level string) (*slog.Logger, error) {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) (*slog.Logger, error) {
	var sLevel slog.Level
	if err := sLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	l := slog.New(&Handler{slog.NewJSONHandler(w, &slog.HandlerOptions{Level: sLevel})})
	slog.SetDefault(l)
	return l, nil
}
