package integrations

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
)

// ErrNoURL is returned when a registry entry lists neither a repository nor
// a homepage.
var ErrNoURL = errors.New("no source url")

// Registry looks up where a package's sources live.
type Registry interface {
	// Name identifies the registry in logs and flags.
	Name() string

	// SourceURL returns a repository or homepage URL for pkg.
	SourceURL(ctx context.Context, pkg string) (string, error)
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"git+ssh://git@github.com/", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, ssh and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = repoURLReplacer.Replace(s)
	s = strings.TrimPrefix(s, "git+")
	return strings.TrimSuffix(s, ".git")
}

var repoURLKeys = []string{"Source", "Repository", "Code", "Homepage"}

// SourceURL picks the URL to start license discovery from.
//
// A github.com URL under one of the keys Source, Repository, Code or
// Homepage wins, then a github.com URL under any other key (in key order).
// Sponsor pages are ignored. Without a GitHub URL the homepage is returned,
// then the first remaining project URL. The result is empty when urls and
// homepage are both empty.
func SourceURL(urls map[string]string, homepage string) string {
	isRepo := func(u string) bool {
		return strings.Contains(u, "github.com/") && !strings.Contains(u, "/sponsors/")
	}

	for _, key := range repoURLKeys {
		if u := urls[key]; isRepo(u) {
			return NormalizeRepoURL(u)
		}
	}
	keys := slices.Sorted(maps.Keys(urls))
	for _, key := range keys {
		if u := urls[key]; isRepo(u) {
			return NormalizeRepoURL(u)
		}
	}
	if isRepo(homepage) {
		return NormalizeRepoURL(homepage)
	}
	if homepage != "" {
		return homepage
	}
	if u := urls["Homepage"]; u != "" {
		return u
	}
	for _, key := range keys {
		if u := urls[key]; u != "" {
			return u
		}
	}
	return ""
}
