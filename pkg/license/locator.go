package license

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/licensefetch/pkg/errors"
	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/observability"
	"github.com/matzehuels/licensefetch/pkg/repo"
	"github.com/matzehuels/licensefetch/pkg/scrape"
	"github.com/matzehuels/licensefetch/pkg/urlpath"
)

// DefaultRawHost serves unrendered repository files.
const DefaultRawHost = "https://raw.githubusercontent.com"

// FilePattern matches hrefs that point at a license file. It is searched, not
// anchored, and needs at least one character before the keyword.
var FilePattern = regexp.MustCompile(`(?i).+?(license|copying|copyright|licence)(?:\..+?)?`)

// htmlMarker in a body means GitHub answered with a rendered page.
const htmlMarker = "<html"

// blobSegment marks GitHub's rendered file view.
const blobSegment = "blob"

// Options configures a [Locator].
type Options struct {
	// RawHost is the base that license hrefs are resolved against.
	// Empty means DefaultRawHost.
	RawHost string

	Logger *log.Logger

	// FailFast stops iteration on the first repository or license fetch
	// failure instead of logging and moving on.
	FailFast bool
}

// Locator turns repository roots into license bodies.
type Locator struct {
	fetcher  httputil.Fetcher
	rawHost  urlpath.URL
	logger   *log.Logger
	failFast bool
}

// NewLocator creates a Locator that fetches through f.
func NewLocator(f httputil.Fetcher, opts Options) (*Locator, error) {
	if opts.RawHost == "" {
		opts.RawHost = DefaultRawHost
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	raw, err := urlpath.Parse(opts.RawHost)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "raw host")
	}
	return &Locator{
		fetcher:  f,
		rawHost:  raw,
		logger:   opts.Logger,
		failFast: opts.FailFast,
	}, nil
}

// RawHost returns the base URL license hrefs are resolved against.
func (l *Locator) RawHost() urlpath.URL { return l.rawHost }

// Resolver produces the repositories to scan. It runs on the first
// [Iterator.Next].
type Resolver func(ctx context.Context) (*repo.Set, error)

// Locate returns an iterator over the license files of repos. Files are
// written only when both outputFolder and packageName are non-empty.
func (l *Locator) Locate(repos *repo.Set, outputFolder, packageName string) *Iterator {
	return l.LocateFunc(func(context.Context) (*repo.Set, error) { return repos, nil }, outputFolder, packageName)
}

// LocateFunc is like Locate but defers finding the repositories to resolve,
// so no I/O happens before the first Next.
func (l *Locator) LocateFunc(resolve Resolver, outputFolder, packageName string) *Iterator {
	return &Iterator{
		loc:     l,
		resolve: resolve,
		output:  outputFolder,
		pkg:     packageName,
	}
}

// RawURL maps a license href to the URL its raw bytes are served from.
//
// The href is resolved against rawHost. If the result has a "blob" segment,
// the first one is removed; a github.com host is swapped for rawHost at the
// same time, since absolute hrefs to the blob view bypass the resolution.
func RawURL(rawHost urlpath.URL, href string) (urlpath.URL, error) {
	u, err := rawHost.ResolveReference(href)
	if err != nil {
		return urlpath.URL{}, err
	}

	segs := u.Segments()
	i := slices.Index(segs, blobSegment)
	if i < 0 {
		return u, nil
	}
	u = u.WithPath(slices.Delete(segs, i, i+1))

	switch strings.ToLower(u.Host()) {
	case "github.com", "www.github.com":
		u = u.WithHost(rawHost.Host()).WithScheme(rawHost.Scheme())
	}
	return u, nil
}

// collect fetches every repository page and gathers distinct license hrefs
// in page order.
func (l *Locator) collect(ctx context.Context, repos []urlpath.URL) ([]string, error) {
	var (
		paths []string
		seen  = make(map[string]struct{})
	)
	for _, r := range repos {
		resp, err := l.fetcher.Fetch(ctx, r.String())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if l.failFast {
				return nil, err
			}
			l.logger.Warn("could not fetch repository", "url", r, "err", err)
			continue
		}

		hrefs, err := scrape.MatchingHrefs(strings.NewReader(resp.Body), FilePattern)
		if err != nil {
			l.logger.Warn("could not parse repository page", "url", r, "err", err)
			continue
		}
		for _, h := range hrefs {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			paths = append(paths, h)
		}
		l.logger.Debug("scanned repository", "url", r, "status", resp.StatusCode, "candidates", len(hrefs))
	}

	observability.Pipeline().OnLicenseCandidates(ctx, len(paths))
	return paths, nil
}
