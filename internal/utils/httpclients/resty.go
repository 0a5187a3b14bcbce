// Package httpclients builds the resty clients used for outbound provider
// calls, with per-request latency logging.
package httpclients

import (
	"context"
	"time"

	"glow-server/internal/infrastructure/logger"

	"resty.dev/v3"
)

type startedAtKey struct{}

// NewClient returns a resty client that logs every outbound request with its
// latency under the given client name.
func NewClient(clientName string) *resty.Client {
	client := resty.New()

	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), startedAtKey{}, time.Now()))
		return nil
	})

	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		var latency time.Duration
		if startedAt, ok := r.Request.Context().Value(startedAtKey{}).(time.Time); ok {
			latency = time.Since(startedAt)
		}

		log := logger.GetLogger()
		log.Debug().
			Str("client", clientName).
			Str("method", r.Request.RawRequest.Method).
			Str("path", r.Request.RawRequest.URL.Path).
			Int("status", r.StatusCode()).
			Dur("latency", latency).
			Msg("outbound request")
		return nil
	})

	return client
}
