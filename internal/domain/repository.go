package domain

import (
	"fmt"
	"strings"
)

// RepoRef identifies a GitHub repository as owner/name
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef parses an owner/name string into a RepoRef
func ParseRepoRef(s string) (RepoRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid repository %q: use owner/repository format", s)
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the owner/name form of the reference
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}
