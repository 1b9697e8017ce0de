package dispatcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Logged is implemented by any request type that wants structured
// per-call logging: a stable name for metrics/log filtering and a
// human summary for the log line itself.
type Logged interface {
	Name() string
	Summary() string
}

type loggingService[Req Logged, Resp any] struct {
	inner  Service[Req, Resp]
	logger zerolog.Logger
}

// WithLogging wraps inner so every call writes one log entry on
// completion, naming the command and its summary and recording latency
// and success. Nothing is logged when the call starts.
func WithLogging[Req Logged, Resp any](inner Service[Req, Resp], logger zerolog.Logger) Service[Req, Resp] {
	return &loggingService[Req, Resp]{inner: inner, logger: logger}
}

func (s *loggingService[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	start := time.Now()

	resp, err := s.inner.Call(ctx, req)

	ev := s.logger.Info()
	if err != nil {
		ev = s.logger.Error().Err(err)
	}
	ev.
		Str("name", req.Name()).
		Str("summary", req.Summary()).
		Dur("latency", time.Since(start)).
		Bool("success", err == nil).
		Msg("command")

	return resp, err
}
