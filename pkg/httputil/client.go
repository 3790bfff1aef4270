// Package httputil builds the shared outbound HTTP client. Every vendor API
// call goes through a client created here, so retry policy and request
// logging live in one place instead of inside the engine.
package httputil

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/harunoguchi/trader-battle/pkg/logger"
)

const (
	defaultRetries   = 3
	defaultRetryWait = 1 * time.Second
	defaultRetryCeil = 10 * time.Second
	defaultUserAgent = "trader-battle/1.0"
)

// New creates a resty client with retry, timeout and debug logging wired in.
func New(timeout time.Duration, log *logger.Logger) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(defaultRetries).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(defaultRetryCeil).
		SetHeader("User-Agent", defaultUserAgent)

	// Retry on transport errors and 5xx/429 responses.
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() >= 500 || r.StatusCode() == 429
	})

	client.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		log.WithFields(map[string]interface{}{
			"method":   r.Request.Method,
			"url":      r.Request.URL,
			"status":   r.StatusCode(),
			"duration": r.Time().String(),
		}).Debug("HTTP request")
		return nil
	})

	return client
}
