package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	colour "github.com/fatih/color"
	"github.com/nickromney-org/scoop-manifest-gen/internal/config"
	"github.com/nickromney-org/scoop-manifest-gen/internal/schema"
	"github.com/nickromney-org/scoop-manifest-gen/internal/xlog"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/asset"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/client"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/generator"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/manifest"
	"github.com/spf13/cobra"
)

var (
	githubToken  string
	outputDir    string
	assetPattern string
	timeout      time.Duration
	dryRun       bool
	verbose      bool
	showVersion  bool

	// logOutput receives structured logs
	logOutput io.Writer = os.Stderr

	// Version information (set via SetVersionInfo from main)
	appVersion = "dev"
	buildTime  = "unknown"
	gitCommit  = "unknown"

	// Colours for output
	green  = colour.New(colour.FgGreen, colour.Bold)
	yellow = colour.New(colour.FgYellow, colour.Bold)
	red    = colour.New(colour.FgRed, colour.Bold)
	cyan   = colour.New(colour.FgCyan)
	grey   = colour.New(colour.FgHiBlack)
)

// tokenPrefixes identify a GitHub token passed in place of a version
var tokenPrefixes = []string{"ghp_", "github_pat_"}

// SetVersionInfo sets the version information from the main package
func SetVersionInfo(version, build, commit string) {
	appVersion = version
	buildTime = build
	gitCommit = commit
}

var rootCmd = &cobra.Command{
	Use:   "scoop-manifest-gen <owner/repo | URL> [version] [token]",
	Short: "Generate a Scoop manifest from a GitHub release",
	Long: `Generate a Scoop manifest for the Windows build of a GitHub release.

The most plausible Windows asset (zip/7z/exe, 64-bit preferred) is picked
from the release, and its download URL and GitHub-reported digest are written
to bucket/<repo>.json together with checkver and autoupdate entries.`,
	Example: `  # Latest release
  scoop-manifest-gen sharkdp/bat

  # A specific release, from a repository URL
  scoop-manifest-gen https://github.com/junegunn/fzf v0.56.0

  # Token in place of the version
  scoop-manifest-gen owner/private-tool ghp_xxxxxxxx

  # Force an asset and print instead of writing
  scoop-manifest-gen BurntSushi/ripgrep -a '*x86_64-pc-windows-msvc.zip' --dry-run`,
	Args:          cobra.MaximumNArgs(3),
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&githubToken, "token", "t", os.Getenv("GITHUB_TOKEN"), "GitHub token (or GITHUB_TOKEN env var)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", generator.DefaultOutputDir, "directory the manifest is written to")
	rootCmd.Flags().StringVarP(&assetPattern, "asset", "a", "", "glob restricting candidate assets (e.g. '*windows-amd64.zip')")
	rootCmd.Flags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "timeout for each GitHub API request")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the manifest instead of writing it")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// positionalArgs holds the parsed positional arguments
type positionalArgs struct {
	Repository string
	Version    string
	Token      string
}

// parseArgs splits <repo> [version] [token]. A second argument that looks
// like a token is taken as the token rather than a version.
func parseArgs(args []string) (positionalArgs, error) {
	if len(args) == 0 {
		return positionalArgs{}, fmt.Errorf("missing repository (expected: owner/repo or GitHub URL)")
	}

	parsed := positionalArgs{Repository: args[0]}
	if len(args) >= 2 {
		if looksLikeToken(args[1]) {
			parsed.Token = args[1]
		} else {
			parsed.Version = args[1]
		}
	}
	if len(args) >= 3 {
		parsed.Token = args[2]
	}

	return parsed, nil
}

func looksLikeToken(s string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// detectGitHubToken attempts to find a GitHub token from multiple sources
func detectGitHubToken(positional, providedToken string) string {
	// 1. Token given as a positional argument
	if positional != "" {
		return positional
	}

	// 2. Use explicitly provided token (via -t flag or GITHUB_TOKEN env var)
	if providedToken != "" {
		return providedToken
	}

	// 3. Try to get token from GitHub CLI
	ghToken, err := getGitHubCLIToken()
	if err == nil && ghToken != "" {
		return ghToken
	}

	// 4. No token found - will use unauthenticated requests
	return ""
}

// getGitHubCLIToken attempts to retrieve a token from the GitHub CLI
func getGitHubCLIToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("gh auth token returned empty")
	}

	return token, nil
}

func run(cmd *cobra.Command, args []string) error {
	// Disable automatic usage printing on error
	cmd.SilenceUsage = true

	// Show version if requested
	if showVersion {
		fmt.Printf("scoop-manifest-gen %s\n", appVersion)
		fmt.Printf("Build time: %s\n", buildTime)
		fmt.Printf("Git commit: %s\n", gitCommit)
		return nil
	}

	parsed, err := parseArgs(args)
	if err != nil {
		cmd.SilenceUsage = false
		return err
	}

	logger := xlog.New(logOutput, verbose)

	token := detectGitHubToken(parsed.Token, githubToken)
	if token == "" {
		logger.Debug("no GitHub token found, using unauthenticated requests")
	}

	gen := generator.NewGenerator(client.NewClient(token, timeout), logger)

	result, err := gen.Generate(cmd.Context(), generator.Options{
		Repository:   parsed.Repository,
		Version:      parsed.Version,
		AssetPattern: assetPattern,
		OutputDir:    outputDir,
		DryRun:       dryRun,
	})
	if err != nil {
		return err
	}

	if verbose {
		printRanking(result)
	}

	if dryRun {
		return manifest.Encode(os.Stdout, result.Manifest)
	}

	printSummary(result)
	return nil
}

func printSummary(result *generator.Result) {
	fmt.Println()
	green.Printf("✅ Generated Scoop manifest: %s\n", result.Path)
	fmt.Printf("   Asset:   %s\n", result.Asset.Name)
	fmt.Printf("   Version: %s\n", result.Manifest.Version)
	fmt.Printf("   License: %s\n", result.Manifest.License)

	if !result.Release.PublishedAt.IsZero() {
		daysAgo := int(time.Since(result.Release.PublishedAt).Hours() / 24)
		grey.Printf("   Released %s (%s)\n", formatUKDate(result.Release.PublishedAt), formatDaysAgo(daysAgo))
	}

	if result.Asset.Digest == "" {
		yellow.Println("⚠️  GitHub reported no digest for this asset; add a hash before publishing")
	}
	for _, w := range result.Warnings {
		yellow.Printf("⚠️  %s\n", w)
	}
}

func printRanking(result *generator.Result) {
	fmt.Fprintln(os.Stderr)
	cyan.Fprintln(os.Stderr, "📦 Asset Ranking")
	cyan.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "%-4s %-20s %-10s %s\n", "#", "Key", "Size", "Asset")

	for i, r := range result.Ranked {
		line := fmt.Sprintf("%-4d %-20s %-10s %s", i+1, r.Key.String(), formatSize(r.Asset.Size), r.Asset.Name)
		switch {
		case i == 0:
			green.Fprintln(os.Stderr, line+"  ← selected")
		case r.Key.Excluded():
			grey.Fprintln(os.Stderr, line)
		default:
			fmt.Fprintln(os.Stderr, line)
		}
	}
}

// reportError prints a coloured error with hints for the common failures
func reportError(err error) {
	red.Fprintf(os.Stderr, "\n❌ Error: %v\n", err)

	var parseErr *config.ParseError
	var apiErr *client.APIError
	var noAsset *asset.NoSuitableAssetError
	var writeErr *manifest.WriteError
	var validationErr *schema.ValidationError

	switch {
	case errors.As(err, &parseErr):
		yellow.Fprintln(os.Stderr, "ℹ️  Use owner/repo or a URL such as https://github.com/owner/repo")
	case errors.As(err, &apiErr) && apiErr.RateLimited:
		yellow.Fprintln(os.Stderr, "⚠️  GitHub API Rate Limit Exceeded")
		yellow.Fprintln(os.Stderr, "   Unauthenticated requests are limited to 60 per hour.")
		yellow.Fprintln(os.Stderr, "💡 Pass a token as the last argument, use -t, set GITHUB_TOKEN, or run gh auth login")
	case errors.As(err, &apiErr) && apiErr.NotFound():
		yellow.Fprintln(os.Stderr, "ℹ️  Repository or release not found. Check the name and tag,")
		yellow.Fprintln(os.Stderr, "   and note that the latest release excludes drafts and prereleases.")
	case errors.As(err, &noAsset):
		yellow.Fprintln(os.Stderr, "ℹ️  The release has no usable asset. Try --asset with a different pattern.")
	case errors.As(err, &writeErr):
		yellow.Fprintf(os.Stderr, "ℹ️  Check that %s is writable\n", writeErr.Path)
	case errors.As(err, &validationErr):
		yellow.Fprintln(os.Stderr, "ℹ️  The generated manifest is not a valid Scoop manifest; nothing was written.")
	}
}
