// Package manifest builds and writes Scoop app manifests.
package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nickromney-org/scoop-manifest-gen/pkg/asset"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// UnknownLicense is used when the repository declares no license
const UnknownLicense = "unknown"

// Manifest is the JSON structure of a Scoop app manifest.
// Field order matches the order Scoop buckets conventionally use.
type Manifest struct {
	Version      string                  `json:"version"`
	Description  string                  `json:"description"`
	Homepage     string                  `json:"homepage"`
	Bin          Bin                     `json:"bin"`
	Shortcuts    [][]string              `json:"shortcuts"`
	License      string                  `json:"license"`
	Architecture map[string]Architecture `json:"architecture"`
	Checkver     Checkver                `json:"checkver"`
	Autoupdate   Autoupdate              `json:"autoupdate"`
}

// Architecture is the download for one CPU architecture
type Architecture struct {
	URL  string `json:"url"`
	Hash string `json:"hash,omitempty"`
}

// Checkver tells Scoop where to look for new versions
type Checkver struct {
	Github string `json:"github"`
}

// Autoupdate holds the URL templates Scoop uses for future versions
type Autoupdate struct {
	Architecture map[string]AutoupdateArchitecture `json:"architecture"`
}

// AutoupdateArchitecture is the templated download for one architecture
type AutoupdateArchitecture struct {
	URL string `json:"url"`
}

// Bin is the executable Scoop shims. With an Alias it renders as
// [[path, alias]], otherwise as a plain string.
type Bin struct {
	Path  string
	Alias string
}

// MarshalJSON implements custom JSON marshaling
func (b Bin) MarshalJSON() ([]byte, error) {
	if b.Alias == "" {
		return json.Marshal(b.Path)
	}
	return json.Marshal([][]string{{b.Path, b.Alias}})
}

// Input is everything needed to build a manifest
type Input struct {
	Repository types.Repository
	Release    types.Release
	Asset      types.Asset
	Version    string // explicitly requested version; the release tag is used when empty
}

// Build assembles the manifest for the selected asset. The returned warnings
// describe autoupdate templating that could not be resolved unambiguously.
func Build(in Input) (*Manifest, []string, error) {
	appName := in.Repository.Name
	if appName == "" {
		return nil, nil, fmt.Errorf("repository has no name")
	}
	if in.Asset.DownloadURL == "" {
		return nil, nil, fmt.Errorf("asset %q has no download URL", in.Asset.Name)
	}

	rawVersion := in.Version
	if rawVersion == "" {
		rawVersion = in.Release.TagName
	}
	version := NormalizeVersion(rawVersion)
	if version == "" {
		return nil, nil, fmt.Errorf("release has no tag name and no version was requested")
	}

	tag := in.Release.TagName
	if tag == "" {
		tag = rawVersion
	}

	binName := DefaultBinary(appName)
	bin := Bin{Path: binName}
	if in.Asset.Name != binName {
		bin = Bin{Path: in.Asset.Name, Alias: appName}
	}

	description := in.Repository.Description
	if description == "" {
		description = in.Release.Name
	}

	repoURL := canonicalURL(in.Repository)

	homepage := normalizeHomepage(in.Repository.Homepage)
	if homepage == "" {
		homepage = repoURL
	}

	license := in.Repository.License
	if license == "" {
		license = UnknownLicense
	}

	arch := ArchitectureKey(in.Asset.Name)
	autoURL, warnings := AutoupdateURL(in.Asset.DownloadURL, tag, version)

	m := &Manifest{
		Version:     version,
		Description: description,
		Homepage:    homepage,
		Bin:         bin,
		Shortcuts:   [][]string{{binName, appName}},
		License:     license,
		Architecture: map[string]Architecture{
			arch: {URL: in.Asset.DownloadURL, Hash: in.Asset.Digest},
		},
		Checkver: Checkver{Github: repoURL},
		Autoupdate: Autoupdate{
			Architecture: map[string]AutoupdateArchitecture{
				arch: {URL: autoURL},
			},
		},
	}

	return m, warnings, nil
}

// DefaultBinary is the executable name assumed for a repository
func DefaultBinary(appName string) string {
	return appName + ".exe"
}

// ArchitectureKey maps an asset name to a Scoop architecture key.
// Assets without an architecture marker are assumed to be 64-bit.
func ArchitectureKey(assetName string) string {
	switch asset.DetectArch(assetName) {
	case asset.Arch32:
		return "32bit"
	case asset.ArchARM64:
		return "arm64"
	default:
		return "64bit"
	}
}

func canonicalURL(repo types.Repository) string {
	fullName := repo.FullName
	if fullName == "" {
		fullName = repo.Owner + "/" + repo.Name
	}
	return "https://github.com/" + fullName
}

// normalizeHomepage adds https:// to a website entered without a scheme,
// e.g. "tool.dev"
func normalizeHomepage(homepage string) string {
	homepage = strings.TrimSpace(homepage)
	if homepage == "" {
		return ""
	}
	lower := strings.ToLower(homepage)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return homepage
	}
	return "https://" + strings.TrimPrefix(homepage, "//")
}

// FileName returns the bucket file name for an app
func FileName(appName string) string {
	return strings.ToLower(appName) + ".json"
}
