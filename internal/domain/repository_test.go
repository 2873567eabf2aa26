package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRepoRef(t *testing.T) {
	ref, err := ParseRepoRef("org/repo")
	require.NoError(t, err)
	require.Equal(t, "org", ref.Owner)
	require.Equal(t, "repo", ref.Name)
	require.Equal(t, "org/repo", ref.String())
}

func TestParseRepoRefInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no separator", input: "orgrepo"},
		{name: "empty owner", input: "/repo"},
		{name: "empty name", input: "org/"},
		{name: "extra separator", input: "org/repo/extra"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRepoRef(tt.input)
			require.Error(t, err)
		})
	}
}
