// Package integrations provides the shared HTTP client used by package
// index API clients.
//
// # Client Pattern
//
// Index clients embed [Client] and add typed fetch methods:
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//	rel, err := client.FetchReleases(ctx, "requests", false) // false = use cache
//
// [Client] handles:
//   - HTTP requests with a fixed timeout
//   - Retry with exponential backoff for network errors, 429 and 5xx
//   - Response caching in any [cache.Cache] backend with a configurable TTL
//
// Status codes map to [ErrNotFound] (404) and [ErrNetwork] (everything else
// that is not 200).
//
// [cache.Cache]: github.com/matzehuels/pipreq/pkg/cache.Cache
package integrations
