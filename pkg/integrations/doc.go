// Package integrations provides package registry clients that map a package
// name to the URL license discovery should start from.
//
// # Overview
//
// Each registry has its own subpackage:
//
//   - [pypi]: Python Package Index
//   - [npm]: Node Package Manager
//
// # Client Pattern
//
// Registry clients share one [httputil.Client], so lookups go through the
// same timeout, headers, and response cache as page fetches:
//
//	http := httputil.NewClient(httputil.Options{Cache: c})
//	client := pypi.NewClient(http)
//	url, err := client.SourceURL(ctx, "requests")
//
// Both clients satisfy [Registry]. Unknown packages wrap
// [httputil.ErrNotFound].
//
// # Choosing a URL
//
// [SourceURL] prefers a project URL that already points at github.com,
// checking the keys Source, Repository, Code and Homepage first. Without one
// it falls back to the homepage, which the pipeline then scrapes.
package integrations
