package httpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHTTPS(t *testing.T) {
	assert.True(t, IsHTTPS("https://example.com"))
	assert.True(t, IsHTTPS("https://"))
	assert.False(t, IsHTTPS("http://example.com"))
	assert.False(t, IsHTTPS("HTTPS://example.com"))
	assert.False(t, IsHTTPS("example.com"))
	assert.False(t, IsHTTPS("https:/"))
	assert.False(t, IsHTTPS(""))
}

func TestStripScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a", "example.com/a"},
		{"http://example.com/a", "example.com/a"},
		{"example.com/a", "example.com/a"},
		{"ftp://example.com", "ftp://example.com"},
		{"HTTP://example.com", "HTTP://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripScheme(tt.in))
		})
	}
}

func TestParsePath(t *testing.T) {
	path, ok := ParsePath("example.com/a/b")
	assert.True(t, ok)
	assert.Equal(t, "/a/b", path)

	_, ok = ParsePath("example.com")
	assert.False(t, ok)

	_, ok = ParsePath("")
	assert.False(t, ok)

	path, ok = ParsePath("example.com/")
	assert.True(t, ok)
	assert.Equal(t, "/", path)
}

func TestSplitHost(t *testing.T) {
	host, path, ok := SplitHost("example.com/a/b?q=1")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "/a/b?q=1", path)

	host, path, ok = SplitHost("localhost:8080")
	assert.False(t, ok)
	assert.Equal(t, "localhost:8080", host)
	assert.Empty(t, path)

	host, path, ok = SplitHost("example.com//double")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "//double", path)
}
