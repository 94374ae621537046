package types

import (
	"time"
)

// Release represents a GitHub release
type Release struct {
	TagName     string
	Name        string
	URL         string
	PublishedAt time.Time
	Prerelease  bool
	Assets      []Asset
}

// Asset represents a single downloadable file attached to a release
type Asset struct {
	Name        string
	DownloadURL string
	Digest      string // e.g. "sha256:<hex>", empty when GitHub has not computed one
	ContentType string
	Size        int64
}
