package license

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	apperr "github.com/matzehuels/licensefetch/pkg/errors"
	"github.com/matzehuels/licensefetch/pkg/observability"
	"github.com/matzehuels/licensefetch/pkg/urlpath"
)

// Result is one accepted license file.
type Result struct {
	Text      string      // response body
	Path      string      // file the body was written to, or empty
	SourceURL urlpath.URL // raw URL the body came from
}

// Iterator pulls license files one at a time. It is not safe for concurrent
// use.
type Iterator struct {
	loc     *Locator
	resolve Resolver
	output  string
	pkg     string

	collected bool
	paths     []string
	pos       int

	accepted int
	cur      Result
	err      error
	done     bool
}

// Next advances to the next accepted license file. It returns false when the
// candidates are exhausted or an error stopped iteration; check [Iterator.Err].
func (it *Iterator) Next(ctx context.Context) bool {
	if it.done {
		return false
	}
	if err := ctx.Err(); err != nil {
		return it.stop(err)
	}

	if !it.collected {
		repos, err := it.resolve(ctx)
		if err != nil {
			return it.stop(err)
		}
		paths, err := it.loc.collect(ctx, repos.URLs())
		if err != nil {
			return it.stop(err)
		}
		it.paths = paths
		it.collected = true
	}

	for it.pos < len(it.paths) {
		href := it.paths[it.pos]
		it.pos++

		res, ok, err := it.try(ctx, href)
		if err != nil {
			return it.stop(err)
		}
		if ok {
			it.cur = res
			return true
		}
	}
	return it.stop(nil)
}

// Result returns the license file found by the last successful Next.
func (it *Iterator) Result() Result { return it.cur }

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error { return it.err }

// All returns a single-use sequence over the remaining results. Check
// [Iterator.Err] after the loop.
func (it *Iterator) All(ctx context.Context) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for it.Next(ctx) {
			if !yield(it.Result()) {
				return
			}
		}
	}
}

func (it *Iterator) stop(err error) bool {
	it.done = true
	it.err = err
	it.cur = Result{}
	return false
}

// try fetches one candidate. A rejected or skipped candidate returns
// ok=false with a nil error.
func (it *Iterator) try(ctx context.Context, href string) (Result, bool, error) {
	l := it.loc
	hooks := observability.Pipeline()

	raw, err := RawURL(l.rawHost, href)
	if err != nil {
		if l.failFast {
			return Result{}, false, err
		}
		l.logger.Warn("skipping license link", "href", href, "err", err)
		return Result{}, false, nil
	}

	resp, err := l.fetcher.Fetch(ctx, raw.String())
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, false, ctx.Err()
		}
		if l.failFast {
			return Result{}, false, err
		}
		l.logger.Warn("could not fetch license", "url", raw, "err", err)
		return Result{}, false, nil
	}

	if reason := rejectReason(resp.OK(), resp.StatusCode, resp.Body); reason != "" {
		l.logger.Debug("rejected license candidate", "url", raw, "reason", reason)
		hooks.OnLicenseRejected(ctx, raw.String(), reason)
		return Result{}, false, nil
	}

	path, err := it.write(resp.Body)
	if err != nil {
		return Result{}, false, err
	}
	it.accepted++

	l.logger.Debug("found license", "url", raw, "path", path)
	hooks.OnLicenseAccepted(ctx, raw.String(), len(resp.Body))
	return Result{Text: resp.Body, Path: path, SourceURL: raw}, true, nil
}

func rejectReason(ok bool, status int, body string) string {
	switch {
	case !ok:
		return fmt.Sprintf("status %d", status)
	case strings.Contains(body, htmlMarker):
		return "html body"
	default:
		return ""
	}
}

// FileName returns the name of the n-th accepted file, counting from zero.
func FileName(packageName string, n int) string {
	if n == 0 {
		return packageName
	}
	return fmt.Sprintf("%s_%d", packageName, n)
}

func (it *Iterator) write(body string) (string, error) {
	if it.output == "" || it.pkg == "" {
		return "", nil
	}
	if err := apperr.ValidateFileName(it.pkg); err != nil {
		return "", err
	}
	if err := os.MkdirAll(it.output, 0o755); err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInvalidPath, err, "create output folder")
	}
	path := filepath.Join(it.output, FileName(it.pkg, it.accepted))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInvalidPath, err, "write %s", path)
	}
	return path, nil
}
