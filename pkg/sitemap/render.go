package sitemap

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/foomo/autositemap/pkg/utils"
	"github.com/pkg/errors"
)

const (
	// Namespace of sitemap and sitemap index documents
	Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	// LastModLayout layout of index lastmod values, UTC with milliseconds
	LastModLayout = "2006-01-02T15:04:05.000Z"
)

type (
	urlSet struct {
		XMLName xml.Name     `xml:"urlset"`
		Xmlns   string       `xml:"xmlns,attr"`
		URLs    []urlElement `xml:"url"`
	}
	urlElement struct {
		Loc        string `xml:"loc"`
		LastMod    string `xml:"lastmod,omitempty"`
		ChangeFreq string `xml:"changefreq,omitempty"`
		Priority   string `xml:"priority,omitempty"`
	}
	sitemapIndex struct {
		XMLName  xml.Name         `xml:"sitemapindex"`
		Xmlns    string           `xml:"xmlns,attr"`
		Sitemaps []sitemapElement `xml:"sitemap"`
	}
	sitemapElement struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	}
)

// RenderURLSet renders entries into a <urlset> document, keeping their order.
func RenderURLSet(baseURL string, entries []Entry) ([]byte, error) {
	base := utils.TrimTrailingSlash(baseURL)
	set := urlSet{
		Xmlns: Namespace,
		URLs:  make([]urlElement, 0, len(entries)),
	}
	for _, entry := range entries {
		element := urlElement{
			Loc:        utils.JoinURL(base, entry.URL),
			LastMod:    entry.LastModified,
			ChangeFreq: string(entry.ChangeFrequency),
		}
		if entry.Priority != nil {
			element.Priority = strconv.FormatFloat(*entry.Priority, 'f', -1, 64)
		}
		set.URLs = append(set.URLs, element)
	}
	return encode(set)
}

// RenderIndex renders a <sitemapindex> document referencing the given file names.
// Every reference carries the same lastmod value.
func RenderIndex(baseURL string, names []string, at time.Time) ([]byte, error) {
	base := utils.TrimTrailingSlash(baseURL)
	lastMod := at.UTC().Format(LastModLayout)
	index := sitemapIndex{
		Xmlns:    Namespace,
		Sitemaps: make([]sitemapElement, 0, len(names)),
	}
	for _, name := range names {
		index.Sitemaps = append(index.Sitemaps, sitemapElement{
			Loc:     base + "/" + name,
			LastMod: lastMod,
		})
	}
	return encode(index)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode sitemap document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush sitemap document")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
