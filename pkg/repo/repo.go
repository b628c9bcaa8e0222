package repo

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensefetch/pkg/urlpath"
)

// GitHubPattern matches a github.com owner/repo reference anywhere in a link.
// An optional http(s) scheme and "//" are part of the match so the parsed
// URL keeps the original scheme.
var GitHubPattern = regexp.MustCompile(`(?i)(?:https?:)?(?://)?(?:www\.)?github\.com/.*/.*`)

// rootSegments is the segment count of "/owner/repo" after splitting:
// "", owner, repo.
const rootSegments = 3

// ExtractLinks returns a URL for every link that GitHubPattern matches, built
// from the matched substring only. Non-matching links are dropped, as are
// matches that do not parse.
func ExtractLinks(links []string, logger *log.Logger) []urlpath.URL {
	if logger == nil {
		logger = log.Default()
	}

	var urls []urlpath.URL
	for _, link := range links {
		match := GitHubPattern.FindString(link)
		if match == "" {
			continue
		}
		u, err := urlpath.Parse(match)
		if err != nil {
			logger.Debug("skipping repository link", "link", link, "err", err)
			continue
		}
		urls = append(urls, u)
	}
	return urls
}

// FilterCandidates reduces urls to distinct repository roots. Roots whose last
// segment equals packageName (case-insensitively) win; if there are none, all
// roots are returned.
func FilterCandidates(urls []urlpath.URL, packageName string) *Set {
	roots := NewSet()
	for _, u := range urls {
		if len(u.Segments()) < rootSegments {
			continue
		}
		roots.Add(Root(u))
	}

	named := NewSet()
	for _, u := range roots.URLs() {
		if name, ok := u.SegmentAt(-1); ok && strings.EqualFold(name, packageName) {
			named.Add(u)
		}
	}
	if named.Len() > 0 {
		return named
	}
	return roots
}

// Root truncates u to its first three path segments and drops query and
// fragment.
func Root(u urlpath.URL) urlpath.URL {
	return u.SliceSegments(0, rootSegments).WithoutQuery()
}
