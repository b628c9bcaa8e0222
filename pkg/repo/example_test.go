package repo_test

import (
	"fmt"

	"github.com/matzehuels/licensefetch/pkg/repo"
)

func Example() {
	links := []string{
		"/docs/",
		"https://github.com/psf/requests/issues?state=open",
		"https://github.com/psf/requests",
		"https://github.com/sponsors/psf",
	}

	repos := repo.FilterCandidates(repo.ExtractLinks(links, nil), "requests")
	for _, u := range repos.URLs() {
		fmt.Println(u)
	}
	// Output:
	// https://github.com/psf/requests
}
