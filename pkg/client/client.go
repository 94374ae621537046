package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds every request made by the client
	DefaultTimeout = 60 * time.Second

	// UserAgent is sent with every request
	UserAgent = "scoop-generator"
)

// Client wraps the GitHub API client
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client. An empty token makes
// unauthenticated requests; a non-positive timeout uses DefaultTimeout.
func NewClient(token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	client := gh.NewClient(httpClient)
	client.UserAgent = UserAgent

	return &Client{gh: client}
}

// WithBaseURL points the client at another API host, e.g. a test server
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.gh.BaseURL = u
	return c, nil
}

// GetRepository fetches repository metadata
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*types.Repository, error) {
	ghRepo, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, wrapError("get repository "+owner+"/"+repo, err)
	}

	return parseRepository(ghRepo, owner, repo), nil
}

// GetRelease fetches the release with the given tag, or the latest
// release when tag is empty
func (c *Client) GetRelease(ctx context.Context, owner, repo, tag string) (*types.Release, error) {
	path := fmt.Sprintf("repos/%s/%s/releases/latest", url.PathEscape(owner), url.PathEscape(repo))
	op := "get latest release of " + owner + "/" + repo
	if tag != "" {
		path = fmt.Sprintf("repos/%s/%s/releases/tags/%s", url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(tag))
		op = fmt.Sprintf("get release %s of %s/%s", tag, owner, repo)
	}

	// go-github v57 does not decode asset digests, so the payload is our own
	req, err := c.gh.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var payload releasePayload
	if _, err := c.gh.Do(ctx, req, &payload); err != nil {
		return nil, wrapError(op, err)
	}

	return parseRelease(&payload)
}

type releasePayload struct {
	TagName     string         `json:"tag_name"`
	Name        string         `json:"name"`
	HTMLURL     string         `json:"html_url"`
	Prerelease  bool           `json:"prerelease"`
	PublishedAt *time.Time     `json:"published_at"`
	Assets      []assetPayload `json:"assets"`
}

type assetPayload struct {
	Name               string  `json:"name"`
	BrowserDownloadURL string  `json:"browser_download_url"`
	ContentType        string  `json:"content_type"`
	Size               int64   `json:"size"`
	Digest             *string `json:"digest"`
}

// parseRelease converts a GitHub release payload to our Release type
func parseRelease(payload *releasePayload) (*types.Release, error) {
	if payload.TagName == "" {
		return nil, fmt.Errorf("release has no tag name")
	}

	release := &types.Release{
		TagName:    payload.TagName,
		Name:       payload.Name,
		URL:        payload.HTMLURL,
		Prerelease: payload.Prerelease,
		Assets:     make([]types.Asset, 0, len(payload.Assets)),
	}
	if payload.PublishedAt != nil {
		release.PublishedAt = *payload.PublishedAt
	}

	for _, a := range payload.Assets {
		asset := types.Asset{
			Name:        a.Name,
			DownloadURL: a.BrowserDownloadURL,
			ContentType: a.ContentType,
			Size:        a.Size,
		}
		if a.Digest != nil {
			asset.Digest = *a.Digest
		}
		release.Assets = append(release.Assets, asset)
	}

	return release, nil
}

// parseRepository converts a GitHub repository to our Repository type
func parseRepository(ghRepo *gh.Repository, owner, repo string) *types.Repository {
	r := &types.Repository{
		Owner:       ghRepo.GetOwner().GetLogin(),
		Name:        ghRepo.GetName(),
		FullName:    ghRepo.GetFullName(),
		Description: ghRepo.GetDescription(),
		Homepage:    ghRepo.GetHomepage(),
		HTMLURL:     ghRepo.GetHTMLURL(),
		License:     ghRepo.GetLicense().GetSPDXID(),
	}

	if r.Owner == "" {
		r.Owner = owner
	}
	if r.Name == "" {
		r.Name = repo
	}
	if r.FullName == "" {
		r.FullName = r.Owner + "/" + r.Name
	}

	return r
}

// wrapError turns go-github errors into APIError where a status is known
func wrapError(op string, err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Operation:   op,
			StatusCode:  statusCode(rateErr.Response),
			Message:     rateErr.Message,
			RateLimited: true,
			ResetAt:     rateErr.Rate.Reset.Time,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{
			Operation:   op,
			StatusCode:  statusCode(abuseErr.Response),
			Message:     abuseErr.Message,
			RateLimited: true,
		}
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		return &APIError{
			Operation:        op,
			StatusCode:       statusCode(errResp.Response),
			Message:          errResp.Message,
			DocumentationURL: errResp.DocumentationURL,
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
