package plugin

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/foomo/autositemap/pkg/sitemap"
)

// DefaultAuthorizedExtensions extensions of build outputs that become sitemap entries
var DefaultAuthorizedExtensions = []string{"html", "js", "txt", "md", "mdx"}

// Options of the auto sitemap plugin
type Options struct {
	// BaseURL prefix of all locations, required for the sitemap index
	BaseURL string `json:"baseUrl" mapstructure:"baseUrl"`
	// Entries user supplied entries, appended after the auto entries
	Entries []sitemap.Entry `json:"siteMapEntries" mapstructure:"siteMapEntries"`
	// AuthorizedExtensions nil selects DefaultAuthorizedExtensions
	AuthorizedExtensions []string `json:"authorizedExtensions" mapstructure:"authorizedExtensions"`
	// Transform is applied to every auto entry, defaults to StripPrefix
	Transform func(sitemap.Entry) sitemap.Entry `json:"-" mapstructure:"-"`
	// DisableAutoEntries only use the user supplied entries
	DisableAutoEntries bool `json:"disableAutoEntries" mapstructure:"disableAutoEntries"`
	// MaxEntries per sitemap file, zero selects sitemap.DefaultMaxEntries
	MaxEntries int `json:"maxEntries" mapstructure:"maxEntries"`
	// StripPrefix for the default transform, defaults to the output directory
	StripPrefix string `json:"stripPrefix" mapstructure:"stripPrefix"`
}

// StripPrefix returns a transform removing everything up to and including the
// path prefix from an entry url. The prefix must match whole path segments,
// urls not containing it are kept as they are.
func StripPrefix(prefix string) func(sitemap.Entry) sitemap.Entry {
	prefix = strings.TrimSuffix(path.Clean(filepath.ToSlash(prefix)), "/")
	return func(e sitemap.Entry) sitemap.Entry {
		if prefix == "" || prefix == "." {
			return e
		}
		switch {
		case strings.HasPrefix(e.URL, prefix+"/"):
			e.URL = e.URL[len(prefix):]
		case strings.Contains(e.URL, "/"+prefix+"/"):
			i := strings.LastIndex(e.URL, "/"+prefix+"/")
			e.URL = e.URL[i+1+len(prefix):]
		}
		return e
	}
}

func (o Options) extensions() map[string]struct{} {
	exts := o.AuthorizedExtensions
	if exts == nil {
		exts = DefaultAuthorizedExtensions
	}
	ret := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ret[strings.TrimPrefix(ext, ".")] = struct{}{}
	}
	return ret
}
