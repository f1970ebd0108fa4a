// Package pypi provides an HTTP client for the Python Package Index JSON API.
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//	rel, err := client.FetchReleases(ctx, "Django", false) // false = use cache
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rel.Name, rel.Latest, len(rel.Versions))
//
// Use [WithBaseURL] for a mirror that serves the same /<name>/json layout.
//
// # Caching
//
// Decoded responses are cached in the backend passed to [NewClient]. Pass
// refresh=true to [Client.FetchReleases] to bypass the cache.
package pypi
