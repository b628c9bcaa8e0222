// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package metadata from the npm registry
// (https://registry.npmjs.org), the package manager for JavaScript.
//
// # Usage
//
//	client := npm.NewClient(httputil.NewClient(httputil.Options{}))
//
//	url, err := client.SourceURL(ctx, "express")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(url) // https://github.com/expressjs/express
//
// # Version Selection
//
// The client reads the version tagged as "latest" in dist-tags. The
// repository field may be a string or an object with a "url" key; both
// forms are normalized to https.
package npm
