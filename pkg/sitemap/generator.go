package sitemap

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrInvalidMaxEntries = errors.New("max entries must not be negative")

type (
	// File a rendered sitemap document
	File struct {
		Name    string
		Content []byte
	}
	// Result of a single generation
	Result struct {
		// Files chunks first, the index last
		Files []File
		// Entries total number of rendered entries
		Entries int
		// Chunked the entries did not fit into a single file
		Chunked bool
		// IndexSkipped chunks were written without an index because the base url is missing
		IndexSkipped bool
	}
	Generator struct {
		l          *zap.Logger
		baseURL    string
		maxEntries int
		clock      func() time.Time
	}
	GeneratorOption func(*Generator)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewGenerator(l *zap.Logger, baseURL string, opts ...GeneratorOption) (*Generator, error) {
	inst := &Generator{
		l:          l.Named("generator"),
		baseURL:    baseURL,
		maxEntries: DefaultMaxEntries,
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(inst)
	}

	if inst.maxEntries < 0 {
		return nil, ErrInvalidMaxEntries
	}
	if inst.maxEntries == 0 {
		inst.maxEntries = DefaultMaxEntries
	}
	return inst, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithMaxEntries(v int) GeneratorOption {
	return func(o *Generator) {
		o.maxEntries = v
	}
}

// WithClock replaces the time source of the index lastmod
func WithClock(v func() time.Time) GeneratorOption {
	return func(o *Generator) {
		o.clock = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

func (g *Generator) MaxEntries() int {
	return g.maxEntries
}

func (g *Generator) BaseURL() string {
	return g.baseURL
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Generate renders entries into one sitemap.xml or, when they exceed the max entries,
// into numbered chunk files plus a sitemap.xml index.
func (g *Generator) Generate(entries []Entry) (*Result, error) {
	res := &Result{Entries: len(entries)}

	if len(entries) <= g.maxEntries {
		content, err := RenderURLSet(g.baseURL, entries)
		if err != nil {
			return nil, err
		}
		res.Files = []File{{Name: IndexFileName, Content: content}}
		g.l.Debug("rendered sitemap", zap.Int("entries", len(entries)))
		return res, nil
	}

	chunks := Paginate(entries, g.maxEntries)
	res.Chunked = true
	res.Files = make([]File, 0, len(chunks)+1)
	names := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		name := ChunkFileName(i + 1)
		content, err := RenderURLSet(g.baseURL, chunk)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", name)
		}
		res.Files = append(res.Files, File{Name: name, Content: content})
		names = append(names, name)
	}
	g.l.Debug("rendered sitemap chunks",
		zap.Int("entries", len(entries)),
		zap.Int("chunks", len(chunks)),
		zap.Int("max_entries", g.maxEntries),
	)

	if g.baseURL == "" {
		g.l.Warn("base url is required to generate the sitemap index, only chunk files were generated",
			zap.Int("chunks", len(chunks)),
		)
		res.IndexSkipped = true
		return res, nil
	}

	content, err := RenderIndex(g.baseURL, names, g.clock())
	if err != nil {
		return nil, errors.Wrap(err, "failed to render sitemap index")
	}
	res.Files = append(res.Files, File{Name: IndexFileName, Content: content})
	return res, nil
}

// Index returns the sitemap index file if one was generated
func (r *Result) Index() (File, bool) {
	if !r.Chunked || r.IndexSkipped || len(r.Files) == 0 {
		return File{}, false
	}
	return r.Files[len(r.Files)-1], true
}
