package client

import (
	"context"

	"github.com/nickromney-org/scoop-manifest-gen/pkg/types"
)

// MockClient is a mock implementation for testing
type MockClient struct {
	Repository *types.Repository
	Releases   map[string]*types.Release // keyed by tag; "" is the latest release
	Error      error

	// Tags records the tag of every GetRelease call
	Tags []string
}

// GetRepository returns the mocked repository
func (m *MockClient) GetRepository(ctx context.Context, owner, repo string) (*types.Repository, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Repository, nil
}

// GetRelease returns the mocked release for tag
func (m *MockClient) GetRelease(ctx context.Context, owner, repo, tag string) (*types.Release, error) {
	m.Tags = append(m.Tags, tag)
	if m.Error != nil {
		return nil, m.Error
	}
	release, ok := m.Releases[tag]
	if !ok {
		return nil, &APIError{Operation: "get release " + tag, StatusCode: 404, Message: "Not Found"}
	}
	return release, nil
}
