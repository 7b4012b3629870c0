package sitemap

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	testURLSet struct {
		XMLName xml.Name  `xml:"urlset"`
		Xmlns   string    `xml:"xmlns,attr"`
		URLs    []testURL `xml:"url"`
	}
	testURL struct {
		Children []testElement `xml:",any"`
	}
	testElement struct {
		XMLName xml.Name
		Value   string `xml:",chardata"`
	}
	testIndex struct {
		XMLName  xml.Name `xml:"sitemapindex"`
		Xmlns    string   `xml:"xmlns,attr"`
		Sitemaps []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"sitemap"`
	}
)

func parseURLSet(t *testing.T, data []byte) testURLSet {
	t.Helper()
	var set testURLSet
	require.NoError(t, xml.Unmarshal(data, &set))
	return set
}

func (u testURL) child(name string) (string, bool) {
	for _, c := range u.Children {
		if c.XMLName.Local == name {
			return c.Value, true
		}
	}
	return "", false
}

func TestRenderURLSet_Golden(t *testing.T) {
	data, err := RenderURLSet("https://example.com/", []Entry{
		{URL: "about.html"},
		{URL: "/blog/", LastModified: "2024-01-02", ChangeFrequency: ChangeFrequencyWeekly, Priority: Priority(0.8)},
	})
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/about.html</loc>
  </url>
  <url>
    <loc>https://example.com/blog/</loc>
    <lastmod>2024-01-02</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>
`
	assert.Equal(t, expected, string(data))
}

func TestRenderURLSet_Empty(t *testing.T) {
	data, err := RenderURLSet("https://example.com", nil)
	require.NoError(t, err)

	set := parseURLSet(t, data)
	assert.Equal(t, Namespace, set.Xmlns)
	assert.Empty(t, set.URLs)
}

func TestRenderURLSet_OptionalFields(t *testing.T) {
	data, err := RenderURLSet("https://example.com", []Entry{
		{URL: "/only-url"},
		{URL: "/zero", Priority: Priority(0)},
		{URL: "/freq", ChangeFrequency: ChangeFrequencyNever},
	})
	require.NoError(t, err)

	set := parseURLSet(t, data)
	require.Len(t, set.URLs, 3)

	require.Len(t, set.URLs[0].Children, 1)
	assert.Equal(t, "loc", set.URLs[0].Children[0].XMLName.Local)

	priority, ok := set.URLs[1].child("priority")
	require.True(t, ok, "priority 0 must be rendered")
	assert.Equal(t, "0", priority)
	_, ok = set.URLs[1].child("lastmod")
	assert.False(t, ok)

	freq, ok := set.URLs[2].child("changefreq")
	require.True(t, ok)
	assert.Equal(t, "never", freq)
	_, ok = set.URLs[2].child("priority")
	assert.False(t, ok)
}

func TestRenderURLSet_PriorityFormat(t *testing.T) {
	data, err := RenderURLSet("https://example.com", []Entry{
		{URL: "/a", Priority: Priority(1)},
		{URL: "/b", Priority: Priority(0.25)},
		{URL: "/c", Priority: Priority(3)},
	})
	require.NoError(t, err)

	set := parseURLSet(t, data)
	var got []string
	for _, u := range set.URLs {
		p, _ := u.child("priority")
		got = append(got, p)
	}
	assert.Equal(t, []string{"1", "0.25", "3"}, got)
}

func TestRenderURLSet_KeepsOrderAndDuplicates(t *testing.T) {
	entries := []Entry{{URL: "/z"}, {URL: "/a"}, {URL: "/z"}}
	data, err := RenderURLSet("https://example.com", entries)
	require.NoError(t, err)

	set := parseURLSet(t, data)
	var locs []string
	for _, u := range set.URLs {
		loc, _ := u.child("loc")
		locs = append(locs, loc)
	}
	assert.Equal(t, []string{"https://example.com/z", "https://example.com/a", "https://example.com/z"}, locs)
}

func TestRenderURLSet_EscapesText(t *testing.T) {
	data, err := RenderURLSet("https://example.com", []Entry{{URL: "/search?q=a&b=c"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "<loc>https://example.com/search?q=a&amp;b=c</loc>")

	set := parseURLSet(t, data)
	loc, _ := set.URLs[0].child("loc")
	assert.Equal(t, "https://example.com/search?q=a&b=c", loc)
}

func TestRenderURLSet_Idempotent(t *testing.T) {
	entries := []Entry{
		{URL: "/a", LastModified: "2024-01-01"},
		{URL: "/b", Priority: Priority(0.5)},
	}
	first, err := RenderURLSet("https://example.com/", entries)
	require.NoError(t, err)
	second, err := RenderURLSet("https://example.com/", entries)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderIndex(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("CEST", 2*60*60))
	data, err := RenderIndex("https://example.com/", []string{"sitemap-1.xml", "sitemap-2.xml"}, at)
	require.NoError(t, err)

	var index testIndex
	require.NoError(t, xml.Unmarshal(data, &index))
	assert.Equal(t, Namespace, index.Xmlns)
	require.Len(t, index.Sitemaps, 2)
	assert.Equal(t, "https://example.com/sitemap-1.xml", index.Sitemaps[0].Loc)
	assert.Equal(t, "https://example.com/sitemap-2.xml", index.Sitemaps[1].Loc)
	for _, s := range index.Sitemaps {
		assert.Equal(t, "2024-05-06T05:08:09.123Z", s.LastMod)
	}
}

func TestRenderIndex_FixedTimestampIsDeterministic(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"sitemap-1.xml", "sitemap-2.xml", "sitemap-3.xml"}
	first, err := RenderIndex("https://example.com", names, at)
	require.NoError(t, err)
	second, err := RenderIndex("https://example.com", names, at)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	later, err := RenderIndex("https://example.com", names, at.Add(time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, first, later)
}
