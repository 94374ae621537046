package config

import (
	"fmt"
	"net/url"
	"strings"
)

// RepositoryRef identifies a GitHub repository
type RepositoryRef struct {
	Owner string // GitHub owner (e.g., "actions", "kubernetes")
	Name  string // GitHub repo (e.g., "runner", "kubernetes")
}

// ParseError is returned when a repository reference cannot be parsed
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s (expected: owner/repo or https://github.com/owner/repo)", e.Input, e.Reason)
}

// ParseRepository parses "owner/repo" format or URL
func ParseRepository(input string) (*RepositoryRef, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, &ParseError{Input: input, Reason: "empty reference"}
	}

	// Bare host without scheme: github.com/owner/repo
	if strings.HasPrefix(strings.ToLower(s), "github.com/") {
		s = "https://" + s
	}

	if strings.Contains(s, "://") {
		return parseRepositoryURL(input, s)
	}

	parts := strings.Split(strings.TrimSuffix(s, "/"), "/")
	if len(parts) != 2 {
		return nil, &ParseError{Input: input, Reason: "expected exactly one '/'"}
	}

	return newRef(input, parts[0], parts[1])
}

func parseRepositoryURL(input, raw string) (*RepositoryRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ParseError{Input: input, Reason: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ParseError{Input: input, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &ParseError{Input: input, Reason: "missing host"}
	}

	// https://github.com/owner/repo/releases/tag/v1 -> owner/repo
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return nil, &ParseError{Input: input, Reason: "URL path has no owner/repo"}
	}

	return newRef(input, parts[0], parts[1])
}

func newRef(input, owner, name string) (*RepositoryRef, error) {
	name = strings.TrimSuffix(name, ".git")
	if owner == "" || name == "" {
		return nil, &ParseError{Input: input, Reason: "owner and repo must be non-empty"}
	}

	return &RepositoryRef{Owner: owner, Name: name}, nil
}

// FullName returns the full repository name (owner/repo)
func (r *RepositoryRef) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// URL returns the canonical GitHub URL of the repository
func (r *RepositoryRef) URL() string {
	return "https://github.com/" + r.FullName()
}
