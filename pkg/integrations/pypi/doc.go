// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches package metadata from PyPI (https://pypi.org), the
// official repository for Python packages, and picks the URL license
// discovery should start from.
//
// # Usage
//
//	client := pypi.NewClient(httputil.NewClient(httputil.Options{}))
//
//	url, err := client.SourceURL(ctx, "requests")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(url) // https://github.com/psf/requests
//
// # PackageInfo
//
// [Client.FetchPackage] returns a [PackageInfo] containing:
//
//   - Name, Version: Package identity
//   - Summary, License: Package metadata
//   - ProjectURLs, HomePage: Candidate starting points
//
// # Caching
//
// Responses are cached by the underlying [httputil.Client] when it was
// built with a cache.
//
// Package names are normalized following PEP 503.
package pypi
