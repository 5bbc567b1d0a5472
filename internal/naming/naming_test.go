package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "Name"},
		{"id", "ID"},
		{"userId", "UserID"},
		{"HTTPServer", "HTTPServer"},
		{"http_server", "HTTPServer"},
		{"createdAt", "CreatedAt"},
		{"URL", "URL"},
		{"sha256Sum", "Sha256Sum"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Pascal(tt.in))
		})
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"ID", "id"},
		{"UserID", "userID"},
		{"URLPath", "urlPath"},
		{"Type", "type_"},
		{"String", "string_"},
		{"Map", "map_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, LowerCamel(tt.in))
		})
	}
}

func TestPackageName(t *testing.T) {
	require.Equal(t, "gofakeit", PackageName("github.com/brianvoe/gofakeit/v7"))
	require.Equal(t, "fixture", PackageName("github.com/cmmoran/buildgen/pkg/fixture"))
	require.Equal(t, "yaml", PackageName("gopkg.in/yaml.v3"))
	require.Equal(t, "errors", PackageName("github.com/go-errors"))
}

func TestPlural(t *testing.T) {
	require.Equal(t, "Entities", Plural("Entity"))
	require.Equal(t, "GrandchildEntities", Plural("GrandchildEntity"))
}
