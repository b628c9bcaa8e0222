package npm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/integrations"
)

// DefaultBaseURL is the npm registry root.
const DefaultBaseURL = "https://registry.npmjs.org"

// PackageInfo holds the npm metadata license discovery needs.
type PackageInfo struct {
	Name        string
	Version     string // dist-tags.latest
	Repository  string // normalized to https form
	HomePage    string
	Description string
	License     string
}

// Client provides access to the npm registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *httputil.Client
	baseURL string
}

// NewClient creates an npm client on top of c.
func NewClient(c *httputil.Client) *Client {
	return &Client{http: c, baseURL: DefaultBaseURL}
}

// Name implements [integrations.Registry].
func (c *Client) Name() string { return "npm" }

// FetchPackage retrieves the latest version's metadata for pkg. Scoped names
// such as "@babel/core" are escaped for the registry path.
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))

	var data registryResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/"+url.PathEscape(pkg), &data); err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", httputil.ErrNotFound, pkg)
		}
		return nil, err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if !ok {
		return nil, fmt.Errorf("npm package %s: version %q not found", pkg, latest)
	}

	return &PackageInfo{
		Name:        data.Name,
		Version:     latest,
		Description: v.Description,
		License:     extractField(v.License, "type"),
		Repository:  integrations.NormalizeRepoURL(extractField(v.Repository, "url")),
		HomePage:    v.HomePage,
	}, nil
}

// SourceURL implements [integrations.Registry]. The repository field wins
// over the homepage when it points at github.com.
func (c *Client) SourceURL(ctx context.Context, pkg string) (string, error) {
	info, err := c.FetchPackage(ctx, pkg)
	if err != nil {
		return "", err
	}
	urls := map[string]string{}
	if info.Repository != "" {
		urls["Repository"] = info.Repository
	}
	if u := integrations.SourceURL(urls, info.HomePage); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("%w: npm package %s", integrations.ErrNoURL, pkg)
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Description string `json:"description"`
	License     any    `json:"license"`
	Repository  any    `json:"repository"`
	HomePage    string `json:"homepage"`
}

var _ integrations.Registry = (*Client)(nil)
