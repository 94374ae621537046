package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nickromney-org/scoop-manifest-gen/internal/config"
	"github.com/nickromney-org/scoop-manifest-gen/internal/schema"
	"github.com/nickromney-org/scoop-manifest-gen/internal/xlog"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/asset"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/manifest"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// DefaultOutputDir is the bucket directory manifests are written to
const DefaultOutputDir = "bucket"

// GitHubClient defines the interface for fetching repository data
type GitHubClient interface {
	GetRepository(ctx context.Context, owner, repo string) (*types.Repository, error)
	GetRelease(ctx context.Context, owner, repo, tag string) (*types.Release, error)
}

// Options controls a single generation run
type Options struct {
	Repository   string // owner/repo or repository URL
	Version      string // release tag to use; latest release when empty
	AssetPattern string // optional glob restricting candidate assets
	OutputDir    string // defaults to DefaultOutputDir
	DryRun       bool   // build and validate, but do not write
}

// Result is the outcome of a generation run
type Result struct {
	Repository *types.Repository
	Release    *types.Release
	Asset      types.Asset
	Ranked     []asset.Ranked
	Manifest   *manifest.Manifest
	Warnings   []string
	Path       string // empty on a dry run
}

// Generator produces Scoop manifests from GitHub releases
type Generator struct {
	client GitHubClient
	logger *slog.Logger
}

// NewGenerator creates a new generator. A nil logger discards all output.
func NewGenerator(client GitHubClient, logger *slog.Logger) *Generator {
	return &Generator{
		client: client,
		logger: xlog.OrDisabled(logger),
	}
}

// Generate resolves the repository, picks an asset and writes its manifest
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	ref, err := config.ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}
	log := g.logger.With("repository", ref.FullName())

	repo, err := g.client.GetRepository(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched repository", "name", repo.Name, "description", repo.Description, "license", repo.License)

	release, err := g.client.GetRelease(ctx, ref.Owner, ref.Name, opts.Version)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched release", "tag", release.TagName, "name", release.Name, "assets", len(release.Assets))

	candidates, err := asset.Filter(release.Assets, opts.AssetPattern)
	if err != nil {
		return nil, err
	}

	ranked := asset.Rank(candidates)
	for i, r := range ranked {
		log.Debug("ranked asset", "rank", i+1, "name", r.Asset.Name, "key", r.Key.String())
	}

	chosen, err := asset.Select(candidates)
	if err != nil {
		return nil, err
	}
	if ranked[0].Key.Excluded() {
		log.Warn("only source or non-Windows assets available, using best of them", "asset", chosen.Name)
	}
	log.Info("found release asset", "asset", chosen.Name)

	m, warnings, err := manifest.Build(manifest.Input{
		Repository: *repo,
		Release:    *release,
		Asset:      chosen,
		Version:    opts.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build manifest: %w", err)
	}

	log.Info("resolved version", "version", m.Version)
	if !manifest.IsSemantic(m.Version) {
		log.Warn("version is not a semantic version; Scoop autoupdate may not detect updates", "version", m.Version)
	}
	if chosen.Digest == "" {
		log.Warn("GitHub reported no digest for asset; manifest has no hash", "asset", chosen.Name)
	} else {
		log.Info("asset digest", "hash", chosen.Digest)
	}
	log.Info("license", "spdx", m.License)
	for _, w := range warnings {
		log.Warn("autoupdate URL is ambiguous", "detail", w)
	}

	data, err := manifest.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := schema.ValidateManifest(data); err != nil {
		return nil, err
	}

	result := &Result{
		Repository: repo,
		Release:    release,
		Asset:      chosen,
		Ranked:     ranked,
		Manifest:   m,
		Warnings:   warnings,
	}

	if opts.DryRun {
		log.Debug("dry run, manifest not written")
		return result, nil
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	path, err := manifest.Write(m, outputDir, repo.Name)
	if err != nil {
		return nil, err
	}
	result.Path = path
	log.Info("generated Scoop manifest", "path", path)

	return result, nil
}
