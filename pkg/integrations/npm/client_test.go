package npm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/integrations"
)

const expressJSON = `{
  "name": "express",
  "dist-tags": {"latest": "4.19.2"},
  "versions": {
    "4.19.2": {
      "description": "Fast, unopinionated, minimalist web framework",
      "license": "MIT",
      "repository": {"type": "git", "url": "git+https://github.com/expressjs/express.git"},
      "homepage": "http://expressjs.com/"
    }
  }
}`

func testClient(serverURL string) *Client {
	c := NewClient(httputil.NewClient(httputil.Options{}))
	c.baseURL = serverURL
	return c
}

func TestClient_FetchPackage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/express" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(expressJSON))
	}))
	defer server.Close()

	info, err := testClient(server.URL).FetchPackage(context.Background(), "Express")
	if err != nil {
		t.Fatalf("FetchPackage failed: %v", err)
	}
	if info.Version != "4.19.2" || info.License != "MIT" {
		t.Errorf("info = %+v", info)
	}
	if info.Repository != "https://github.com/expressjs/express" {
		t.Errorf("Repository = %q", info.Repository)
	}
}

func TestClient_SourceURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(expressJSON))
	}))
	defer server.Close()

	url, err := testClient(server.URL).SourceURL(context.Background(), "express")
	if err != nil {
		t.Fatalf("SourceURL failed: %v", err)
	}
	if url != "https://github.com/expressjs/express" {
		t.Errorf("SourceURL = %q, want repository", url)
	}
}

func TestClient_SourceURLHomepage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"x","dist-tags":{"latest":"1.0.0"},"versions":{"1.0.0":{"repository":"https://gitlab.com/x/x","homepage":"https://x.dev"}}}`))
	}))
	defer server.Close()

	url, err := testClient(server.URL).SourceURL(context.Background(), "x")
	if err != nil {
		t.Fatalf("SourceURL failed: %v", err)
	}
	if url != "https://x.dev" {
		t.Errorf("SourceURL = %q, want homepage", url)
	}
}

func TestClient_ScopedPackagePath(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchPackage(context.Background(), "@babel/core")
	if !errors.Is(err, httputil.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if got != "/@babel%2Fcore" {
		t.Errorf("request path = %q, want /@babel%%2Fcore", got)
	}
}

func TestClient_MissingLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"x","dist-tags":{"latest":"2.0.0"},"versions":{}}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).FetchPackage(context.Background(), "x"); err == nil {
		t.Error("expected error when the latest version is missing")
	}
}

func TestClient_NoURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"x","dist-tags":{"latest":"1.0.0"},"versions":{"1.0.0":{}}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).SourceURL(context.Background(), "x")
	if !errors.Is(err, integrations.ErrNoURL) {
		t.Errorf("expected ErrNoURL, got %v", err)
	}
}

func TestExtractField(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{"MIT", "MIT"},
		{map[string]any{"type": "ISC"}, "ISC"},
		{map[string]any{"name": "x"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := extractField(tt.v, "type"); got != tt.want {
			t.Errorf("extractField(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
