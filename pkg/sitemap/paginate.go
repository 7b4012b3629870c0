package sitemap

import (
	"fmt"
	"path/filepath"
	"regexp"
)

const (
	// DefaultMaxEntries maximum number of entries in a single sitemap file
	DefaultMaxEntries = 5000
	// IndexFileName name of the combined sitemap or the sitemap index
	IndexFileName = "sitemap.xml"
)

var sitemapFileRegex = regexp.MustCompile(`^sitemap(-[1-9][0-9]*)?\.xml$`)

// ChunkFileName returns the file name of the chunk with the 1-based index i
func ChunkFileName(i int) string {
	return fmt.Sprintf("sitemap-%d.xml", i)
}

// IsSitemapFile reports whether the base name of p is a generated sitemap file name
func IsSitemapFile(p string) bool {
	return sitemapFileRegex.MatchString(filepath.Base(p))
}

// Paginate splits entries into chunks of at most maxEntries entries.
// A list that fits is returned as a single chunk, even when it is empty.
// Chunks share the backing array of entries and keep their order.
func Paginate(entries []Entry, maxEntries int) [][]Entry {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if len(entries) <= maxEntries {
		return [][]Entry{entries}
	}
	chunks := make([][]Entry, 0, (len(entries)+maxEntries-1)/maxEntries)
	for i := 0; i < len(entries); i += maxEntries {
		end := min(i+maxEntries, len(entries))
		chunks = append(chunks, entries[i:end:end])
	}
	return chunks
}
