package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/licensefetch/pkg/buildinfo"
	"github.com/matzehuels/licensefetch/pkg/errors"
	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/observability"
	"github.com/matzehuels/licensefetch/pkg/pipeline"
)

// findOptions holds the flags of the find command.
type findOptions struct {
	output    string
	registry  string
	noCache   bool
	refresh   bool
	redisURL  string
	timeout   time.Duration
	rawHost   string
	userAgent string
	failFast  bool
	limit     int
	print     bool
}

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find <package> [url]",
		Short: "Find and download the license files of a package",
		Long: `Find the license files of a package.

With a URL, the page is scanned for GitHub repository links; a github.com URL
is used as the repository directly. Without a URL, the package homepage is
looked up on the registry (PyPI by default).

Every accepted license is listed. With --output, each one is also written to
<output>/<package>, then <package>_1, <package>_2 and so on.`,
		Example: `  # Look up the homepage on PyPI and save the license
  licensefetch find requests -o licenses

  # Start from a homepage
  licensefetch find scikit-learn https://scikit-learn.org

  # Use a repository directly and print the first license found
  licensefetch find express https://github.com/expressjs/express --print --limit 1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(c.configPath, loggerFromContext(ctx))
			if err != nil {
				return err
			}
			opts.apply(cmd.Flags(), &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}

			var rawURL string
			if len(args) == 2 {
				rawURL = args[1]
			}
			return c.runFind(ctx, args[0], rawURL, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "folder to write license files to")
	f.StringVar(&opts.registry, "registry", registryPyPI, fmt.Sprintf("registry for homepage lookup %v", registryNames))
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the HTTP response cache")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached responses but update the cache")
	f.StringVar(&opts.redisURL, "redis-url", "", "cache responses in Redis instead of on disk")
	f.DurationVar(&opts.timeout, "timeout", httputil.DefaultTimeout, "timeout for each request")
	f.StringVar(&opts.rawHost, "raw-host", "", "host serving raw repository files")
	f.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header for all requests")
	f.BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failed repository or license fetch")
	f.IntVar(&opts.limit, "limit", 0, "stop after this many licenses (0 means all)")
	f.BoolVar(&opts.print, "print", false, "print license text to stdout")

	_ = cmd.RegisterFlagCompletionFunc("registry", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return registryNames, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// apply copies flags the user set onto cfg.
func (o *findOptions) apply(flags *pflag.FlagSet, cfg *Config) {
	if flags.Changed("registry") {
		cfg.Registry = o.registry
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = o.redisURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("raw-host") {
		cfg.RawHost = o.rawHost
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = o.userAgent
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = o.failFast
	}
}

func (c *CLI) runFind(ctx context.Context, pkg, rawURL string, cfg Config, opts findOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := errors.ValidatePackageName(pkg); err != nil {
		return err
	}

	store, err := newCache(opts.noCache, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	counters := &observability.Counters{}
	observability.SetHTTPHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetPipelineHooks(counters)
	defer observability.Reset()

	client := httputil.NewClient(httputil.Options{
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{"User-Agent": userAgent(cfg)},
		Cache:     store,
		Keyer:     newKeyer(cfg.CachePrefix),
		CacheTTL:  cfg.CacheTTL,
		Refresh:   opts.refresh,
		Logger:    logger,
		Transport: c.Transport,
	})

	spin := newSpinner(ctx, os.Stderr, "Resolving repositories")
	if logger.GetLevel() > log.DebugLevel {
		spin.start()
	}
	defer spin.stop()

	if rawURL == "" {
		reg, err := registryNamed(cfg.Registry, client)
		if err != nil {
			return err
		}
		spin.update(fmt.Sprintf("Looking up %s on %s", pkg, reg.Name()))
		rawURL, err = reg.SourceURL(ctx, pkg)
		if err != nil {
			return fmt.Errorf("look up %s on %s: %w", pkg, reg.Name(), err)
		}
		spin.update("Resolving repositories")
	}

	finder, err := pipeline.NewFinder(client, pipeline.Options{
		RawHost:  cfg.RawHost,
		FailFast: cfg.FailFast,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	it, err := finder.FindAllLicenseFiles(ctx, rawURL, pkg, opts.output)
	if err != nil {
		return err
	}
	spin.stop()

	printInfo("%s %s", StyleHighlight.Render(pkg), StyleLink.Render(rawURL))

	n := 0
	for res := range it.All(ctx) {
		n++
		printSuccess("License %d from %s", n, StyleLink.Render(res.SourceURL.String()))
		if res.Path != "" {
			printFile(res.Path)
		}
		if opts.print {
			fmt.Println(res.Text)
		}
		if opts.limit > 0 && n >= opts.limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	if n == 0 {
		printWarning("No license files found for %s", pkg)
	}
	printSummary(counters)
	prog.done("finished", "package", pkg, "licenses", n)
	return nil
}

func userAgent(cfg Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return appName + "/" + buildinfo.Version
}
