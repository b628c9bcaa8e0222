// Package scrape extracts anchor hrefs from HTML pages.
//
// Parsing uses golang.org/x/net/html and anchors are selected with the XPath
// expression //a[@href], so hrefs come back in document order.
package scrape

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/matzehuels/licensefetch/pkg/httputil"
)

const anchorXPath = "//a[@href]"

// Hrefs parses r as HTML and returns every non-empty anchor href in document
// order. Duplicates are kept.
func Hrefs(r io.Reader) ([]string, error) {
	return MatchingHrefs(r, nil)
}

// MatchingHrefs is like [Hrefs] but keeps only hrefs that re matches
// anywhere. A nil re keeps everything.
func MatchingHrefs(r io.Reader, re *regexp.Regexp) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	nodes, err := htmlquery.QueryAll(doc, anchorXPath)
	if err != nil {
		return nil, err
	}

	hrefs := make([]string, 0, len(nodes))
	for _, n := range nodes {
		href := htmlquery.SelectAttr(n, "href")
		if href == "" {
			continue
		}
		if re != nil && !re.MatchString(href) {
			continue
		}
		hrefs = append(hrefs, href)
	}
	return hrefs, nil
}

// FetchLinks GETs rawURL and returns its anchor hrefs.
//
// Failures are not returned: a transport error is logged and yields an empty
// slice, which callers cannot tell apart from a page without links. A non-2xx
// response is still parsed.
func FetchLinks(ctx context.Context, f httputil.Fetcher, rawURL string, logger *log.Logger) []string {
	if logger == nil {
		logger = log.Default()
	}

	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		logger.Warn("could not fetch page", "url", rawURL, "err", err)
		return nil
	}

	links, err := Hrefs(strings.NewReader(resp.Body))
	if err != nil {
		logger.Warn("could not parse page", "url", rawURL, "err", err)
		return nil
	}
	logger.Debug("extracted links", "url", rawURL, "status", resp.StatusCode, "links", len(links))
	return links
}
