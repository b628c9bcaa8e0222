package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/licensefetch/pkg/cache"
	"github.com/matzehuels/licensefetch/pkg/observability"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"find", "cache", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want cache.NullCache", c)
	}

	c, err = newCache(false, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache() = %T, want *cache.FileCache", c)
	}

	if _, err := newCache(false, "not a redis url"); err == nil {
		t.Error("newCache() with a bad Redis URL should fail")
	}
}

func TestNewKeyer(t *testing.T) {
	plain := newKeyer("").HTTPKey("page", "https://github.com/psf/requests")
	scoped := newKeyer("ci:").HTTPKey("page", "https://github.com/psf/requests")
	if plain == scoped {
		t.Error("a cache prefix should change the key")
	}
	if !strings.HasPrefix(scoped, "ci:") {
		t.Errorf("scoped key = %q, want ci: prefix", scoped)
	}
}

func TestRegistryNamed(t *testing.T) {
	for _, name := range registryNames {
		reg, err := registryNamed(name, nil)
		if err != nil {
			t.Fatalf("registryNamed(%q) error: %v", name, err)
		}
		if reg.Name() != name {
			t.Errorf("Name() = %q, want %q", reg.Name(), name)
		}
	}
	if _, err := registryNamed("cpan", nil); err == nil {
		t.Error("unknown registry should fail")
	}
}

func TestSummaryLine(t *testing.T) {
	c := &observability.Counters{}
	c.Repositories.Add(2)
	c.Candidates.Add(3)
	c.Accepted.Add(1)
	c.Requests.Add(4)

	line := summaryLine(c)
	for _, want := range []string{"2 repositories", "3 candidates", "1 accepted", "0 rejected", "4 requests"} {
		if !strings.Contains(line, want) {
			t.Errorf("summaryLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(line, "cached") || strings.Contains(line, "failed") {
		t.Errorf("zero counters should be omitted: %q", line)
	}

	c.CacheHits.Add(1)
	c.Failures.Add(1)
	line = summaryLine(c)
	if !strings.Contains(line, "1 cached") || !strings.Contains(line, "1 failed") {
		t.Errorf("summaryLine() = %q", line)
	}
}

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	dir := filepath.Join(home, appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}

	root = New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(context.Background(), "k"); ok {
		t.Error("cache clear should remove entries")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		var out bytes.Buffer
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetOut(&out)
		root.SetArgs([]string{"completion", shell})
		if err := root.Execute(); err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out.String(), appName) {
			t.Errorf("completion %s output does not mention %s", shell, appName)
		}
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}
