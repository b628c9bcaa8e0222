// Package pipeline wires page scraping, repository resolution, and license
// location into a single call.
//
// # Stages
//
//  1. Resolve: a homepage is scraped for github.com links, which are
//     narrowed to repository roots. A URL that already mentions github.com
//     skips scraping and is used as the only candidate.
//  2. Locate: each repository page is scanned for license links, which are
//     fetched from the raw content host one at a time.
//
// # Usage
//
//	client := httputil.NewClient(httputil.Options{})
//	finder, err := pipeline.NewFinder(client, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	it, err := finder.FindAllLicenseFiles(ctx, "https://requests.readthedocs.io", "requests", "/tmp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for res := range it.All(ctx) {
//	    fmt.Println(res.Path)
//	}
//	if err := it.Err(); err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensefetch/pkg/errors"
	"github.com/matzehuels/licensefetch/pkg/license"
)

// GitHubMarker in a URL means it already points at a repository.
const GitHubMarker = "github.com"

// Options configures a [Finder]. The zero value is usable.
type Options struct {
	// RawHost overrides license.DefaultRawHost.
	RawHost string

	// FailFast stops iteration on the first repository or license fetch
	// failure.
	FailFast bool

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.RawHost == "" {
		o.RawHost = license.DefaultRawHost
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// IsRepositoryURL reports whether rawURL is used as a repository candidate
// directly instead of being scraped as a homepage. The check ignores case,
// like repo.GitHubPattern.
func IsRepositoryURL(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), GitHubMarker)
}

// Validate checks the inputs of a FindAllLicenseFiles call. The package name
// must be usable as a file name only when files are written.
func Validate(rawURL, packageName, outputFolder string) error {
	if err := errors.ValidateURL(rawURL); err != nil {
		return err
	}
	if outputFolder == "" || packageName == "" {
		return nil
	}
	return errors.ValidateFileName(packageName)
}
