package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nickromney-org/scoop-manifest-gen/internal/config"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/asset"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/client"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/generator"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/manifest"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
	"github.com/spf13/cobra"
)

// TestParseArgs tests positional argument handling
func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    positionalArgs
		wantErr bool
	}{
		{
			name: "repository only",
			args: []string{"sharkdp/bat"},
			want: positionalArgs{Repository: "sharkdp/bat"},
		},
		{
			name: "repository and version",
			args: []string{"sharkdp/bat", "v0.24.0"},
			want: positionalArgs{Repository: "sharkdp/bat", Version: "v0.24.0"},
		},
		{
			name: "token in place of version",
			args: []string{"sharkdp/bat", "ghp_test123"},
			want: positionalArgs{Repository: "sharkdp/bat", Token: "ghp_test123"},
		},
		{
			name: "fine-grained token in place of version",
			args: []string{"sharkdp/bat", "github_pat_abc"},
			want: positionalArgs{Repository: "sharkdp/bat", Token: "github_pat_abc"},
		},
		{
			name: "version and token",
			args: []string{"sharkdp/bat", "v0.24.0", "secret"},
			want: positionalArgs{Repository: "sharkdp/bat", Version: "v0.24.0", Token: "secret"},
		},
		{
			name:    "no arguments",
			args:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestDetectGitHubToken tests token detection
func TestDetectGitHubToken(t *testing.T) {
	tests := []struct {
		name       string
		positional string
		provided   string
		want       string
	}{
		{
			name:       "positional token wins",
			positional: "ghp_positional",
			provided:   "ghp_flag",
			want:       "ghp_positional",
		},
		{
			name:     "provided token",
			provided: "ghp_test123",
			want:     "ghp_test123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectGitHubToken(tt.positional, tt.provided)
			if got != tt.want {
				t.Errorf("detectGitHubToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLooksLikeToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"ghp_abc", true},
		{"github_pat_abc", true},
		{"v1.0.0", false},
		{"1.0.0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := looksLikeToken(tt.input); got != tt.want {
				t.Errorf("looksLikeToken(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func newTestResult(digest string) *generator.Result {
	assets := []types.Asset{
		{Name: "tool-linux-x64.tar.gz", DownloadURL: "https://host/v1.0.0/tool-linux-x64.tar.gz"},
		{Name: "tool-win-x64.zip", DownloadURL: "https://host/v1.0.0/tool-win-x64.zip", Digest: digest, Size: 2048},
	}
	ranked := asset.Rank(assets)

	m, warnings, err := manifest.Build(manifest.Input{
		Repository: types.Repository{Owner: "owner", Name: "tool"},
		Release:    types.Release{TagName: "v1.0.0"},
		Asset:      ranked[0].Asset,
	})
	if err != nil {
		panic(err)
	}

	return &generator.Result{
		Release:  &types.Release{TagName: "v1.0.0", PublishedAt: time.Now().AddDate(0, 0, -3)},
		Asset:    ranked[0].Asset,
		Ranked:   ranked,
		Manifest: m,
		Warnings: warnings,
		Path:     "bucket/tool.json",
	}
}

// TestPrintOutput verifies the output helpers don't panic
func TestPrintOutput(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"with digest", "sha256:abc"},
		{"without digest", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestResult(tt.digest)
			printSummary(result)
			printRanking(result)
		})
	}
}

// TestReportError verifies every error kind is handled without panicking
func TestReportError(t *testing.T) {
	errs := []error{
		&config.ParseError{Input: "bad", Reason: "expected exactly one '/'"},
		&client.APIError{Operation: "get repository o/r", StatusCode: 403, Message: "API rate limit exceeded", RateLimited: true},
		&client.APIError{Operation: "get release v9 of o/r", StatusCode: 404, Message: "Not Found"},
		&asset.NoSuitableAssetError{},
		&manifest.WriteError{Path: "bucket/tool.json", Err: fmt.Errorf("permission denied")},
		fmt.Errorf("wrapped: %w", &asset.NoSuitableAssetError{Pattern: "*.msi"}),
	}

	for _, err := range errs {
		t.Run(err.Error(), func(t *testing.T) {
			reportError(err)
		})
	}
}

// TestRun_ErrorNotLogged checks failures are left to reportError
func TestRun_ErrorNotLogged(t *testing.T) {
	var logs bytes.Buffer
	origOutput, origToken := logOutput, githubToken
	logOutput, githubToken = &logs, "ghp_test123"
	t.Cleanup(func() {
		logOutput, githubToken = origOutput, origToken
	})

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := run(cmd, []string{"not-a-repo"})

	var parseErr *config.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *config.ParseError", err)
	}
	if logs.Len() != 0 {
		t.Errorf("error should not be logged as well as reported:\n%s", logs.String())
	}
}
