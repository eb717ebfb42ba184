// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the network stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the starting backoff for HTTP 429 responses. Tests
// override this to avoid real sleeps.
var RetryBaseDelay = 5 * time.Second

const defaultRetries = 3

// Do executes req and retries on HTTP 429 with doubling backoff (5s, 10s,
// 20s by default). Any other status, including server errors, is returned
// to the caller untouched: this tool treats a failed fetch as a per-record
// condition, not something to hammer on. When retries is 0 the default (3)
// applies. A context cancellation during a backoff wait returns ctx.Err();
// an exhausted 429 is returned as-is so the caller can record the status.
func Do(ctx context.Context, client *http.Client, req *http.Request, retries int) (*http.Response, error) {
	if retries <= 0 {
		retries = defaultRetries
	}

	delay := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= retries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
