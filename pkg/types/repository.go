package types

// Repository holds the repository metadata used to fill a manifest
type Repository struct {
	Owner       string
	Name        string
	FullName    string
	Description string
	Homepage    string
	HTMLURL     string
	License     string // SPDX identifier, empty when none is declared
}
