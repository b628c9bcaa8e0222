package cli

import (
	"fmt"

	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/integrations"
	"github.com/matzehuels/licensefetch/pkg/integrations/npm"
	"github.com/matzehuels/licensefetch/pkg/integrations/pypi"
)

const (
	registryPyPI = "pypi"
	registryNPM  = "npm"
)

var registryNames = []string{registryPyPI, registryNPM}

// registryNamed returns the registry client for name. A nil client is
// enough to validate the name.
func registryNamed(name string, client *httputil.Client) (integrations.Registry, error) {
	switch name {
	case registryPyPI:
		return pypi.NewClient(client), nil
	case registryNPM:
		return npm.NewClient(client), nil
	default:
		return nil, fmt.Errorf("unknown registry %q (must be one of: %s, %s)", name, registryPyPI, registryNPM)
	}
}
