package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"trailing base slash", []string{"https://example.com/", "about.html"}, "https://example.com/about.html"},
		{"leading entry slash", []string{"https://example.com", "/about.html"}, "https://example.com/about.html"},
		{"both slashes", []string{"https://example.com/", "/about.html"}, "https://example.com/about.html"},
		{"no slashes", []string{"https://example.com", "about.html"}, "https://example.com/about.html"},
		{"nested", []string{"https://example.com/docs", "guide/index.html"}, "https://example.com/docs/guide/index.html"},
		{"trailing slash kept", []string{"https://example.com", "/blog/"}, "https://example.com/blog/"},
		{"empty base", []string{"", "/about.html"}, "/about.html"},
		{"empty entry", []string{"https://example.com", ""}, "https://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL(tt.segments...))
		})
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://example.com", TrimTrailingSlash("https://example.com/"))
	assert.Equal(t, "https://example.com", TrimTrailingSlash("https://example.com"))
}

func TestIsValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://example.com"))
	assert.True(t, IsValidUrl("http://example.com/docs"))
	assert.False(t, IsValidUrl("example.com"))
	assert.False(t, IsValidUrl("ftp://example.com"))
	assert.False(t, IsValidUrl("https://"))
	assert.False(t, IsValidUrl("://broken"))
}
