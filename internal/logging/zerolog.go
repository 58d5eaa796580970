package logging

import (
	"context"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	withRequestID(z.l.Debug().Ctx(ctx), ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	withRequestID(z.l.Info().Ctx(ctx), ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	withRequestID(z.l.Warn().Ctx(ctx), ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	withRequestID(z.l.Error().Ctx(ctx), ctx).Fields(args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(args).Logger()}
}

func withRequestID(e *zerolog.Event, ctx context.Context) *zerolog.Event {
	if ctx == nil {
		return e
	}
	if id := chimid.GetReqID(ctx); id != "" {
		e = e.Str(RequestIDKey, id)
	}
	return e
}
