package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/integrations"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// PackageInfo holds the PyPI metadata license discovery needs.
//
// Package names are normalized following PEP 503 (lowercase, underscores→hyphens).
type PackageInfo struct {
	Name        string            // Display name as published (e.g., "Flask")
	Version     string            // Latest version
	ProjectURLs map[string]string // Project URLs from metadata (e.g., "Source", may be nil)
	HomePage    string            // Homepage URL (may be empty)
	Summary     string            // Short package description (may be empty)
	License     string            // Declared license name (may be empty)
}

// Client provides access to the PyPI package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *httputil.Client
	baseURL string
}

// NewClient creates a PyPI client on top of c.
func NewClient(c *httputil.Client) *Client {
	return &Client{http: c, baseURL: DefaultBaseURL}
}

// Name implements [integrations.Registry].
func (c *Client) Name() string { return "pypi" }

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// The pkg parameter is normalized automatically (case-insensitive, underscores→hyphens).
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - an error wrapping [httputil.ErrNotFound] if the package doesn't exist
//   - an error wrapping [httputil.ErrNetwork] for HTTP failures
//   - Other errors for JSON decoding failures
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var data apiResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, fmt.Errorf("%w: pypi package %s", httputil.ErrNotFound, pkg)
		}
		return nil, err
	}

	urls := make(map[string]string, len(data.Info.ProjectURLs))
	for k, v := range data.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}

	return &PackageInfo{
		Name:        data.Info.Name,
		Version:     data.Info.Version,
		Summary:     data.Info.Summary,
		License:     extractLicenseType(data.Info.License, data.Info.Classifiers),
		ProjectURLs: urls,
		HomePage:    data.Info.HomePage,
	}, nil
}

// SourceURL implements [integrations.Registry].
func (c *Client) SourceURL(ctx context.Context, pkg string) (string, error) {
	info, err := c.FetchPackage(ctx, pkg)
	if err != nil {
		return "", err
	}
	if u := integrations.SourceURL(info.ProjectURLs, info.HomePage); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("%w: pypi package %s", integrations.ErrNoURL, pkg)
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Summary     string         `json:"summary"`
	License     string         `json:"license"`
	Classifiers []string       `json:"classifiers"`
	ProjectURLs map[string]any `json:"project_urls"`
	HomePage    string         `json:"home_page"`
}

// extractLicenseType extracts a short license identifier from PyPI data.
// It prefers the classifier (e.g., "License :: OSI Approved :: MIT License" -> "MIT License")
// and falls back to the license field if it's short enough.
func extractLicenseType(license string, classifiers []string) string {
	for _, c := range classifiers {
		if strings.HasPrefix(c, "License :: ") {
			parts := strings.Split(c, " :: ")
			if len(parts) >= 3 {
				return parts[len(parts)-1]
			}
		}
	}

	if license != "" && len(license) < 100 && !strings.Contains(license, "\n") {
		return strings.TrimSpace(license)
	}

	// Full license texts start with the name, e.g. "Apache License 2.0".
	if license != "" {
		firstLine := strings.TrimSpace(strings.Split(license, "\n")[0])
		if len(firstLine) < 50 {
			return firstLine
		}
	}

	return ""
}

var _ integrations.Registry = (*Client)(nil)
