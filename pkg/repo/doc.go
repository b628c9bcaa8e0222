// Package repo narrows page links down to GitHub repository roots.
//
// Resolution has two steps. [ExtractLinks] keeps hrefs that mention a
// github.com owner/repo path and parses exactly the matched text.
// [FilterCandidates] truncates those URLs to their repository root
// (scheme://host/owner/repo), drops duplicates, and prefers roots whose repo
// name equals the package name:
//
//	urls := repo.ExtractLinks(links, logger)
//	repos := repo.FilterCandidates(urls, "requests")
//	for _, u := range repos.URLs() {
//	    fmt.Println(u) // https://github.com/psf/requests
//	}
//
// When no root carries the package name every root is kept, since there is
// no better way to tell which repository is right.
package repo
