package dispatcher

import (
	"context"
	"time"

	"github.com/cuemby/warrenchain/pkg/metrics"
)

type metricsService[Req Logged, Resp any] struct {
	inner Service[Req, Resp]
}

// WithMetrics wraps inner so every call is counted and timed in
// metrics.CommandsTotal / metrics.CommandDuration, labeled by the
// request's Name().
func WithMetrics[Req Logged, Resp any](inner Service[Req, Resp]) Service[Req, Resp] {
	return &metricsService[Req, Resp]{inner: inner}
}

func (s *metricsService[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	timer := metrics.NewTimer()
	resp, err := s.inner.Call(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CommandsTotal.WithLabelValues(req.Name(), status).Inc()
	timer.ObserveDurationVec(metrics.CommandDuration, req.Name())

	return resp, err
}
