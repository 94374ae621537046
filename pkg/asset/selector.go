// Package asset picks the release asset most likely to be the Windows build.
package asset

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// ExcludedTier is the tier given to source archives and non-Windows builds
const ExcludedTier = 10

var (
	excludedPattern = regexp.MustCompile(`\.src|source|sources|src|darwin|linux|macos|android|ios`)
	windowsPattern  = regexp.MustCompile(`win|windows`)
	arch64Pattern   = regexp.MustCompile(`x64|x86_64|x86-64|amd64|64bit|win64`)
	arch32Pattern   = regexp.MustCompile(`x86|win32|ia32|32bit`)
	archARMPattern  = regexp.MustCompile(`arm64`)
	portablePattern = regexp.MustCompile(`portable|port`)
)

// Arch is the CPU architecture an asset name advertises
type Arch string

const (
	Arch64      Arch = "64bit"
	Arch32      Arch = "32bit"
	ArchARM64   Arch = "arm64"
	ArchUnknown Arch = ""
)

// Key is the composite sort key of an asset; lower sorts first
type Key struct {
	Tier      int
	Platform  int
	Arch      int
	Container int
	Portable  int
	Name      string
}

// Compare orders keys field by field, finishing on the lowercased name
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.Tier, other.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Platform, other.Platform); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Arch, other.Arch); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Container, other.Container); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Portable, other.Portable); c != 0 {
		return c
	}
	return cmp.Compare(k.Name, other.Name)
}

// Excluded reports whether the key belongs to a source or non-Windows asset
func (k Key) Excluded() bool {
	return k.Tier >= ExcludedTier
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d)", k.Tier, k.Platform, k.Arch, k.Container, k.Portable)
}

// KeyFor computes the rank key of an asset file name
func KeyFor(name string) Key {
	lower := strings.ToLower(name)

	// Excluded assets only compete with each other, by name
	if excludedPattern.MatchString(lower) {
		return Key{Tier: ExcludedTier, Name: lower}
	}

	platform := 1
	if windowsPattern.MatchString(lower) {
		platform = 0
	}

	return Key{
		Platform:  platform,
		Arch:      archScore(lower),
		Container: containerScore(lower),
		Portable:  portableScore(lower),
		Name:      lower,
	}
}

func archScore(lower string) int {
	switch DetectArch(lower) {
	case Arch64:
		return 0
	case Arch32:
		return 1
	case ArchARM64:
		return 9
	default:
		// Unspecified ranks below explicit x64/x86 but above arm64
		return 5
	}
}

func containerScore(lower string) int {
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".7z"):
		return 0
	case strings.HasSuffix(lower, ".exe"):
		return 2
	case strings.HasSuffix(lower, ".tar.gz"):
		return 5
	default:
		return 10
	}
}

func portableScore(lower string) int {
	if portablePattern.MatchString(lower) {
		return 1
	}
	return 0
}

// DetectArch returns the architecture advertised by an asset name
func DetectArch(name string) Arch {
	lower := strings.ToLower(name)
	switch {
	case arch64Pattern.MatchString(lower):
		return Arch64
	case arch32Pattern.MatchString(lower):
		return Arch32
	case archARMPattern.MatchString(lower):
		return ArchARM64
	default:
		return ArchUnknown
	}
}

// Ranked pairs an asset with its rank key
type Ranked struct {
	Asset types.Asset
	Key   Key
}

// Rank returns the assets ordered best first. The input is not modified.
func Rank(assets []types.Asset) []Ranked {
	ranked := make([]Ranked, len(assets))
	for i, a := range assets {
		ranked[i] = Ranked{Asset: a, Key: KeyFor(a.Name)}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return a.Key.Compare(b.Key)
	})

	return ranked
}

// Select returns the best Windows candidate among assets
func Select(assets []types.Asset) (types.Asset, error) {
	if len(assets) == 0 {
		return types.Asset{}, &NoSuitableAssetError{}
	}

	return Rank(assets)[0].Asset, nil
}
