package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/licensefetch/pkg/errors"
)

const mitText = "MIT License\n\nCopyright 2019 Kenneth Reitz"

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
	hosts  []string
}

func (rt *rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.hosts = append(rt.hosts, r.URL.Host)
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

type findFixture struct {
	transport *rewriteTransport
	pypiHits  atomic.Int32
	rawHits   atomic.Int32
}

func newFindFixture(t *testing.T) *findFixture {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	fx := &findFixture{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body><a href="https://github.com/psf/requests">Source</a></body></html>`))
	})
	mux.HandleFunc("/psf/requests", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/psf/requests/blob/main/LICENSE">LICENSE</a></body></html>`))
	})
	mux.HandleFunc("/psf/requests/main/LICENSE", func(w http.ResponseWriter, r *http.Request) {
		fx.rawHits.Add(1)
		w.Write([]byte(mitText))
	})
	mux.HandleFunc("/pypi/requests/json", func(w http.ResponseWriter, r *http.Request) {
		fx.pypiHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"info":{"name":"requests","version":"2.32.3","home_page":"https://requests.readthedocs.io",
"project_urls":{"Documentation":"https://requests.readthedocs.io","Source":"https://github.com/psf/requests"}}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	target, _ := url.Parse(server.URL)
	fx.transport = &rewriteTransport{target: target}
	return fx
}

func (fx *findFixture) run(args ...string) error {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Transport = fx.transport
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.Execute()
}

func TestFindFromHomepage(t *testing.T) {
	fx := newFindFixture(t)
	out := filepath.Join(t.TempDir(), "licenses")

	if err := fx.run("find", "requests", "https://requests.example/", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("find: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "requests"))
	if err != nil {
		t.Fatalf("license file not written: %v", err)
	}
	if string(data) != mitText {
		t.Errorf("license = %q", data)
	}
	if fx.pypiHits.Load() != 0 {
		t.Error("registry should not be queried when a URL is given")
	}
}

func TestFindFromRegistry(t *testing.T) {
	fx := newFindFixture(t)
	out := filepath.Join(t.TempDir(), "licenses")

	if err := fx.run("find", "requests", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if fx.pypiHits.Load() != 1 {
		t.Errorf("registry hits = %d, want 1", fx.pypiHits.Load())
	}
	if _, err := os.Stat(filepath.Join(out, "requests")); err != nil {
		t.Errorf("license file not written: %v", err)
	}
	if len(fx.transport.hosts) == 0 || fx.transport.hosts[0] != "pypi.org" {
		t.Errorf("first host = %v, want pypi.org", fx.transport.hosts)
	}
}

func TestFindUsesFileCache(t *testing.T) {
	fx := newFindFixture(t)

	for range 2 {
		if err := fx.run("find", "requests", "https://github.com/psf/requests"); err != nil {
			t.Fatalf("find: %v", err)
		}
	}
	if fx.rawHits.Load() != 1 {
		t.Errorf("raw hits = %d, want 1 (second run should be cached)", fx.rawHits.Load())
	}

	if err := fx.run("find", "requests", "https://github.com/psf/requests", "--refresh"); err != nil {
		t.Fatalf("find --refresh: %v", err)
	}
	if fx.rawHits.Load() != 2 {
		t.Errorf("raw hits = %d, want 2 after --refresh", fx.rawHits.Load())
	}
}

func TestFindInvalidInput(t *testing.T) {
	fx := newFindFixture(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad package", []string{"find", "../etc", "https://requests.example/"}, errors.ErrCodeInvalidPackage},
		{"bad scheme", []string{"find", "requests", "ftp://requests.example/"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fx.run(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if err := fx.run("find", "requests", "--registry", "cpan"); err == nil {
		t.Error("unknown registry should fail")
	}
	if err := fx.run("find"); err == nil {
		t.Error("missing package argument should fail")
	}
}

func TestFindNoLicense(t *testing.T) {
	fx := newFindFixture(t)
	out := filepath.Join(t.TempDir(), "licenses")

	if err := fx.run("find", "flask", "https://github.com/pallets/flask", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output folder should not be created when nothing is found")
	}
}
