// Package dispatcher implements the node's command service: a small,
// generic Service[Req, Resp] abstraction (the idiomatic-Go analogue
// of the original dispatcher's tower::Service-based pipeline),
// composed as a timeout layer wrapping a logging layer wrapping a
// metrics layer wrapping the base NodeManager-backed handler.
package dispatcher

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when a command doesn't complete within the
// configured deadline. The underlying work is abandoned, not
// cancelled mid-storage-transaction — bbolt transactions only ever
// commit or roll back as a whole, so there is no partial effect to
// clean up.
var ErrTimeout = errors.New("dispatcher: timeout")

// Service is the generic request/response contract every layer in
// this package implements and wraps.
type Service[Req, Resp any] interface {
	Call(ctx context.Context, req Req) (Resp, error)
}

// ServiceFunc adapts a plain function to Service.
type ServiceFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Call implements Service.
func (f ServiceFunc[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

type timeoutService[Req, Resp any] struct {
	inner   Service[Req, Resp]
	timeout time.Duration
}

// WithTimeout wraps inner so every call is bounded by timeout,
// returning ErrTimeout if it isn't met.
func WithTimeout[Req, Resp any](inner Service[Req, Resp], timeout time.Duration) Service[Req, Resp] {
	return &timeoutService[Req, Resp]{inner: inner, timeout: timeout}
}

type timeoutResult[Resp any] struct {
	resp Resp
	err  error
}

func (s *timeoutService[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ch := make(chan timeoutResult[Resp], 1)
	go func() {
		resp, err := s.inner.Call(ctx, req)
		ch <- timeoutResult[Resp]{resp: resp, err: err}
	}()

	select {
	case r := <-ch:
		return r.resp, r.err
	case <-ctx.Done():
		var zero Resp
		return zero, ErrTimeout
	}
}
