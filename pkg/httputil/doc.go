// Package httputil fetches remote resources with retries.
//
// # Fetching
//
// [Fetcher] downloads a URL into memory, bounded by a maximum size. It is
// used for remote background images of previews:
//
//	f := httputil.NewFetcher()
//	data, err := f.Fetch(ctx, "https://example.com/cat.jpg")
//
// # Retry
//
// [Backoff.Do] runs an operation with exponential backoff. Only errors
// marked with [Transient] are retried; [Fetcher] marks network failures,
// 429 and 5xx responses that way, while other 4xx responses fail
// immediately.
package httputil
