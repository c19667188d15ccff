// Package httputil provides retry infrastructure for the generation backend
// client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - Non-success responses from the generation backend
//   - Missing payload fields that indicate a bad generation attempt
//
// The backoff schedule is an explicit [BackoffPolicy] supplied by the caller
// rather than a sleep baked into the loop, and the context is consulted
// between attempts. A surrounding scheduler can therefore time out a unit of
// work without blocking on an in-flight backoff:
//
//	err := httputil.Retry(ctx, maxRetries, httputil.Linear(2*time.Second), func() error {
//	    return client.generateOnce(ctx, prompt, w, h)
//	})
//
// Only errors wrapped with [RetryableError] trigger another attempt; anything
// else aborts the loop immediately.
package httputil
