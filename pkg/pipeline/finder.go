package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/license"
	"github.com/matzehuels/licensefetch/pkg/observability"
	"github.com/matzehuels/licensefetch/pkg/repo"
	"github.com/matzehuels/licensefetch/pkg/scrape"
	"github.com/matzehuels/licensefetch/pkg/urlpath"
)

// Finder runs license discovery for package homepages.
//
// A Finder holds no per-run state, so one value can serve many calls.
// Each call gets its own iterator and file counter.
type Finder struct {
	fetcher httputil.Fetcher
	opts    Options
}

// NewFinder creates a Finder that fetches through f.
func NewFinder(f httputil.Fetcher, opts Options) (*Finder, error) {
	opts.setDefaults()
	if _, err := license.NewLocator(f, license.Options{RawHost: opts.RawHost}); err != nil {
		return nil, err
	}
	return &Finder{fetcher: f, opts: opts}, nil
}

// FindAllLicenseFiles resolves the repositories behind rawURL and returns an
// iterator over their license files. Accepted bodies are written under
// outputFolder when both it and packageName are set.
//
// Only invalid input is reported here. Nothing is fetched until the first
// call to Next; fetch failures surface through the iterator, or not at all
// for the homepage.
func (f *Finder) FindAllLicenseFiles(ctx context.Context, rawURL, packageName, outputFolder string) (*license.Iterator, error) {
	if err := Validate(rawURL, packageName, outputFolder); err != nil {
		return nil, err
	}

	logger := f.opts.Logger.With("run", uuid.NewString())
	logger.Debug("finding licenses", "url", rawURL, "package", packageName)

	loc, err := license.NewLocator(f.fetcher, license.Options{
		RawHost:  f.opts.RawHost,
		Logger:   logger,
		FailFast: f.opts.FailFast,
	})
	if err != nil {
		return nil, err
	}

	// A direct repository URL needs no I/O and can fail to parse, so it is
	// resolved now. Homepages are scraped on the first Next.
	if IsRepositoryURL(rawURL) {
		repos, err := f.repositories(ctx, rawURL, packageName, logger)
		if err != nil {
			return nil, err
		}
		return loc.Locate(repos, outputFolder, packageName), nil
	}
	return loc.LocateFunc(func(ctx context.Context) (*repo.Set, error) {
		return f.repositories(ctx, rawURL, packageName, logger)
	}, outputFolder, packageName), nil
}

// Repositories returns the repository roots FindAllLicenseFiles would scan
// for rawURL.
func (f *Finder) Repositories(ctx context.Context, rawURL, packageName string) (*repo.Set, error) {
	if err := Validate(rawURL, packageName, ""); err != nil {
		return nil, err
	}
	return f.repositories(ctx, rawURL, packageName, f.opts.Logger)
}

func (f *Finder) repositories(ctx context.Context, rawURL, packageName string, logger *log.Logger) (*repo.Set, error) {
	var urls []urlpath.URL
	if IsRepositoryURL(rawURL) {
		u, err := urlpath.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("repository url: %w", err)
		}
		urls = []urlpath.URL{u}
	} else {
		links := scrape.FetchLinks(ctx, f.fetcher, urlpath.Normalize(rawURL), logger)
		urls = repo.ExtractLinks(links, logger)
	}

	repos := repo.FilterCandidates(urls, packageName)
	logger.Debug("resolved repositories", "url", rawURL, "links", len(urls), "repositories", repos.Len())
	observability.Pipeline().OnRepositoriesResolved(ctx, rawURL, repos.Len())
	return repos, nil
}
