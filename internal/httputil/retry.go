// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the office-API client.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const rateLimitRetries = 3

// Do executes a request and retries two classes of failure:
//
//   - Transport errors (connection refused, reset, timeout) are retried up
//     to transportRetries additional times with no added delay. After
//     exhaustion the last error is returned wrapped with the total attempt
//     count.
//   - HTTP 429 responses are retried with exponential backoff starting at
//     RetryBaseDelay and doubling each attempt, up to a fixed cap. The last
//     429 response is returned as-is so the caller can inspect it.
//
// Requests with a body are not safe to pass here; the office-API client
// only issues GETs through Do.
func Do(ctx context.Context, client *http.Client, req *http.Request, transportRetries int) (*http.Response, error) {
	transportAttempts := 0
	rateLimited := 0

	for {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			transportAttempts++
			if transportAttempts > transportRetries {
				return nil, fmt.Errorf("after %d attempt(s): %w", transportAttempts, err)
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if rateLimited >= rateLimitRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(rateLimited))) * RetryBaseDelay
		rateLimited++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
