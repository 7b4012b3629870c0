package utils

import (
	"net/url"
	"strings"
)

func IsValidUrl(str string) bool {
	u, err := url.Parse(str)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}

// TrimTrailingSlash removes a single trailing slash
func TrimTrailingSlash(str string) string {
	return strings.TrimSuffix(str, "/")
}

// JoinURL joins the given segments with exactly one slash between each of them.
// Empty segments are skipped. Leading slashes of the first and trailing slashes
// of the last segment are kept, so "https://example.com/" and "/about/" join
// to "https://example.com/about/".
func JoinURL(segments ...string) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(segment)
			continue
		}
		current := b.String()
		switch {
		case strings.HasSuffix(current, "/") && strings.HasPrefix(segment, "/"):
			b.WriteString(strings.TrimLeft(segment, "/"))
		case strings.HasSuffix(current, "/") || strings.HasPrefix(segment, "/"):
			b.WriteString(segment)
		default:
			b.WriteString("/")
			b.WriteString(segment)
		}
	}
	return b.String()
}
