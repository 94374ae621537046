package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionToken is the placeholder Scoop substitutes in autoupdate URLs
const VersionToken = "$version"

// NormalizeVersion strips a single leading "v" from a tag
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		return v[1:]
	}
	return v
}

// IsSemantic reports whether a version parses as a semantic version
func IsSemantic(v string) bool {
	_, err := semver.NewVersion(v)
	return err == nil
}

// AutoupdateURL replaces the version in a download URL with VersionToken.
//
// Only the path segment holding the release tag and the final file name
// segment are templated. Any other occurrence of the version (in the host,
// owner or repository name) is left alone and reported in the returned
// warnings, since substituting it would break the URL for future versions.
func AutoupdateURL(downloadURL, tag, version string) (string, []string) {
	if version == "" {
		return downloadURL, nil
	}

	prefix, path := splitPath(downloadURL)
	var warnings []string

	if strings.Contains(prefix, version) {
		warnings = append(warnings, fmt.Sprintf("version %q also appears in URL host %q; left unchanged", version, prefix))
	}

	segments := strings.Split(path, "/")
	last := len(segments) - 1

	tagIdx := -1
	for i := last; i >= 0; i-- {
		if tag != "" && segmentEquals(segments[i], tag) {
			tagIdx = i
			break
		}
	}
	if tagIdx == -1 {
		warnings = append(warnings, fmt.Sprintf("release tag %q not found in download URL path; only the file name was templated", tag))
	}

	for i, seg := range segments {
		if !strings.Contains(seg, version) {
			continue
		}
		if i == tagIdx || i == last {
			if n := strings.Count(seg, version); n > 1 {
				warnings = append(warnings, fmt.Sprintf("version %q appears %d times in segment %q; all were templated", version, n, seg))
			}
			segments[i] = strings.ReplaceAll(seg, version, VersionToken)
			continue
		}
		warnings = append(warnings, fmt.Sprintf("version %q also appears in path segment %q; left unchanged", version, seg))
	}

	return prefix + strings.Join(segments, "/"), warnings
}

// splitPath separates "scheme://host" from the rest of the URL
func splitPath(raw string) (string, string) {
	start := 0
	if i := strings.Index(raw, "://"); i >= 0 {
		start = i + len("://")
	}
	slash := strings.Index(raw[start:], "/")
	if slash < 0 {
		return raw, ""
	}
	return raw[:start+slash], raw[start+slash:]
}

func segmentEquals(seg, tag string) bool {
	if seg == tag {
		return true
	}
	unescaped, err := url.PathUnescape(seg)
	return err == nil && unescaped == tag
}
