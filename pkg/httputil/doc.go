// Package httputil provides the HTTP client shared by every stage of license
// discovery.
//
// # Overview
//
//   - [Client]: GET with a uniform timeout, default headers, optional
//     response caching and observability hooks
//   - [Fetcher]: the one-method interface consumers depend on
//   - [Response]: explicit fetch outcome; [Response.OK] replaces truthiness
//     checks on the status code
//
// # Errors
//
// Transport failures (DNS, refused connections, timeouts) are returned as
// errors that match [ErrNetwork] with errors.Is and carry an
// [errors.ErrCodeNetwork] or [errors.ErrCodeTimeout] code. A non-2xx status
// is not an error for [Client.Fetch]; callers inspect [Response.StatusCode].
// [Client.GetJSON] is stricter and maps 404 to [ErrNotFound].
//
// # Caching
//
// 2xx, 404 and 410 responses are stored in the configured [cache.Cache]
// under a key from [cache.Keyer]; rate limits and other transient statuses
// are always refetched. A cache hit performs no request and sets
// [Response.Cached]. Bodies over [Options.MaxBodySize] fail with
// [ErrBodyTooLarge] instead of being cut short.
//
// [errors.ErrCodeNetwork]: github.com/matzehuels/licensefetch/pkg/errors
// [errors.ErrCodeTimeout]: github.com/matzehuels/licensefetch/pkg/errors
package httputil
