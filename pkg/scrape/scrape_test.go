package scrape

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensefetch/pkg/httputil"
)

func TestHrefs(t *testing.T) {
	f, err := os.Open("testdata/homepage.html")
	if err != nil {
		t.Fatalf("couldn't open test data: %v", err)
	}
	defer f.Close()

	got, err := Hrefs(f)
	if err != nil {
		t.Fatalf("Hrefs() error: %v", err)
	}

	want := []string{
		"/",
		"https://github.com/psf/requests",
		"https://pypi.org/project/requests/",
		"https://github.com/psf/requests/issues",
		"/LICENSE.txt",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Hrefs() = %q, want %q", got, want)
	}
}

func TestHrefsNoAnchors(t *testing.T) {
	got, err := Hrefs(strings.NewReader("MIT License\n\nCopyright (c) 2024"))
	if err != nil {
		t.Fatalf("Hrefs() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Hrefs() = %q, want none", got)
	}
}

func TestMatchingHrefs(t *testing.T) {
	page := `<a href="/a/b/blob/main/LICENSE">l</a><a href="/a/b/tree/main/src">s</a><a href="/a/b/blob/main/COPYING.md">c</a>`
	re := regexp.MustCompile(`(?i)license|copying`)

	got, err := MatchingHrefs(strings.NewReader(page), re)
	if err != nil {
		t.Fatalf("MatchingHrefs() error: %v", err)
	}
	want := []string{"/a/b/blob/main/LICENSE", "/a/b/blob/main/COPYING.md"}
	if !slices.Equal(got, want) {
		t.Errorf("MatchingHrefs() = %q, want %q", got, want)
	}
}

func TestFetchLinks(t *testing.T) {
	page, err := os.ReadFile("testdata/homepage.html")
	if err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(page)
	}))
	defer server.Close()

	got := FetchLinks(context.Background(), httputil.NewClient(httputil.Options{}), server.URL, nil)
	if len(got) != 5 {
		t.Errorf("FetchLinks() returned %d links, want 5: %q", len(got), got)
	}
}

func TestFetchLinksParsesErrorPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html><a href="https://github.com/psf/requests">repo</a></html>`))
	}))
	defer server.Close()

	got := FetchLinks(context.Background(), httputil.NewClient(httputil.Options{}), server.URL, nil)
	if !slices.Equal(got, []string{"https://github.com/psf/requests"}) {
		t.Errorf("FetchLinks() = %q", got)
	}
}

func TestFetchLinksTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf bytes.Buffer
	logger := log.New(&buf)

	got := FetchLinks(context.Background(), httputil.NewClient(httputil.Options{}), url, logger)
	if len(got) != 0 {
		t.Errorf("FetchLinks() = %q, want empty", got)
	}
	if !strings.Contains(buf.String(), "could not fetch page") {
		t.Errorf("expected a warning to be logged, got %q", buf.String())
	}
}
