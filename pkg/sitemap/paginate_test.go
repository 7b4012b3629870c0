package sitemap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{URL: fmt.Sprintf("/page-%d.html", i)}
	}
	return entries
}

func TestPaginate_ChunkCount(t *testing.T) {
	tests := []struct {
		entries    int
		maxEntries int
		chunks     int
		last       int
	}{
		{0, 5, 1, 0},
		{1, 5, 1, 1},
		{5, 5, 1, 5},
		{6, 5, 2, 1},
		{10, 5, 2, 5},
		{11, 5, 3, 1},
		{7000, 5000, 2, 2000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.entries, tt.maxEntries), func(t *testing.T) {
			chunks := Paginate(makeEntries(tt.entries), tt.maxEntries)
			require.Len(t, chunks, tt.chunks)
			assert.Len(t, chunks[len(chunks)-1], tt.last)
			for _, chunk := range chunks {
				assert.LessOrEqual(t, len(chunk), tt.maxEntries)
			}
		})
	}
}

func TestPaginate_PreservesOrder(t *testing.T) {
	entries := makeEntries(23)
	var joined []Entry
	for _, chunk := range Paginate(entries, 4) {
		joined = append(joined, chunk...)
	}
	assert.Equal(t, entries, joined)
}

func TestPaginate_DefaultMaxEntries(t *testing.T) {
	chunks := Paginate(makeEntries(DefaultMaxEntries+1), 0)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], DefaultMaxEntries)
}

func TestPaginate_ChunksDoNotAlias(t *testing.T) {
	chunks := Paginate(makeEntries(4), 2)
	require.Len(t, chunks, 2)
	chunks[0] = append(chunks[0], Entry{URL: "/appended"})
	assert.Equal(t, "/page-2.html", chunks[1][0].URL)
}

func TestChunkFileName(t *testing.T) {
	assert.Equal(t, "sitemap-1.xml", ChunkFileName(1))
	assert.Equal(t, "sitemap-12.xml", ChunkFileName(12))
}

func TestIsSitemapFile(t *testing.T) {
	assert.True(t, IsSitemapFile("sitemap.xml"))
	assert.True(t, IsSitemapFile("dist/sitemap-3.xml"))
	assert.True(t, IsSitemapFile("/var/www/sitemap-10.xml"))
	assert.False(t, IsSitemapFile("sitemap-0.xml"))
	assert.False(t, IsSitemapFile("sitemap-.xml"))
	assert.False(t, IsSitemapFile("my-sitemap.xml"))
	assert.False(t, IsSitemapFile("sitemap.xml.gz"))
}

func TestEntry_Validate(t *testing.T) {
	require.NoError(t, Entry{URL: "/a"}.Validate())
	require.NoError(t, Entry{URL: "/a", ChangeFrequency: ChangeFrequencyDaily}.Validate())
	require.Error(t, Entry{URL: "/a", ChangeFrequency: "sometimes"}.Validate())
}

func TestEntry_PriorityInRange(t *testing.T) {
	assert.True(t, Entry{}.PriorityInRange())
	assert.True(t, Entry{Priority: Priority(0)}.PriorityInRange())
	assert.True(t, Entry{Priority: Priority(1)}.PriorityInRange())
	assert.False(t, Entry{Priority: Priority(1.5)}.PriorityInRange())
	assert.False(t, Entry{Priority: Priority(-0.1)}.PriorityInRange())
}
