// Package httputil provides HTTP client utilities.
//
// # Overview
//
// This package backs the CLI's communication with a running snapshot
// server:
//
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures.
// Wrap errors that are worth retrying (network errors, 5xx responses)
// in [RetryableError]; everything else fails fast:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    ...
//	})
//
// Defaults: 3 attempts with a 200ms initial delay, doubling each
// retry — tuned for a server running on the same machine.
package httputil
