package asset

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// Filter keeps the assets whose name matches a case-insensitive glob
// pattern such as "*-windows-amd64.zip". An empty pattern keeps everything.
func Filter(assets []types.Asset, pattern string) ([]types.Asset, error) {
	if pattern == "" {
		return assets, nil
	}

	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid asset pattern %q: %w", pattern, err)
	}

	var matched []types.Asset
	for _, a := range assets {
		if g.Match(strings.ToLower(a.Name)) {
			matched = append(matched, a)
		}
	}

	if len(matched) == 0 {
		names := make([]string, len(assets))
		for i, a := range assets {
			names[i] = a.Name
		}
		return nil, &NoSuitableAssetError{Pattern: pattern, Available: names}
	}

	return matched, nil
}
