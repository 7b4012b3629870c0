package plugin

import (
	"context"
	"path/filepath"
	"time"

	"github.com/foomo/autositemap/pkg/build"
	"github.com/foomo/autositemap/pkg/metrics"
	"github.com/foomo/autositemap/pkg/sitemap"
	"github.com/foomo/autositemap/pkg/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	Name    = "auto-sitemap"
	Version = "0.1.0"
)

type (
	// AutoSitemap writes sitemap files for the outputs of a build and
	// registers them as outputs of the same build.
	AutoSitemap struct {
		l                *zap.Logger
		storage          storage.Storage
		options          Options
		extensions       map[string]struct{}
		generator        *sitemap.Generator
		writeConcurrency int
		clock            func() time.Time
	}
	Option func(*AutoSitemap)
)

var _ build.Plugin = (*AutoSitemap)(nil)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// New returns the plugin. The storage must be rooted at the output directory of the build.
func New(l *zap.Logger, s storage.Storage, options Options, opts ...Option) (*AutoSitemap, error) {
	inst := &AutoSitemap{
		l:                l.Named("autositemap"),
		storage:          s,
		options:          options,
		extensions:       options.extensions(),
		writeConcurrency: 4,
		clock:            time.Now,
	}

	for _, opt := range opts {
		opt(inst)
	}

	generator, err := sitemap.NewGenerator(inst.l, options.BaseURL,
		sitemap.WithMaxEntries(options.MaxEntries),
		sitemap.WithClock(inst.clock),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	inst.generator = generator

	return inst, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithWriteConcurrency(v int) Option {
	return func(o *AutoSitemap) {
		if v > 0 {
			o.writeConcurrency = v
		}
	}
}

func WithClock(v func() time.Time) Option {
	return func(o *AutoSitemap) {
		o.clock = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (p *AutoSitemap) Name() string {
	return Name
}

func (p *AutoSitemap) Version() string {
	return Version
}

func (p *AutoSitemap) AfterBuild(ctx context.Context, cfg *build.Config, res *build.Result) error {
	start := time.Now()
	l := p.l.With(zap.String("run_id", uuid.New().String()))

	status := "success"
	defer func() {
		metrics.GenerateCounter.WithLabelValues(status).Inc()
		metrics.GenerateDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	autoEntries := p.AutoEntries(cfg, res)
	entries := make([]sitemap.Entry, 0, len(autoEntries)+len(p.options.Entries))
	entries = append(entries, autoEntries...)
	entries = append(entries, p.options.Entries...)
	metrics.EntriesCounter.WithLabelValues("auto").Add(float64(len(autoEntries)))
	metrics.EntriesCounter.WithLabelValues("user").Add(float64(len(p.options.Entries)))

	for _, entry := range entries {
		if !entry.PriorityInRange() {
			l.Warn("sitemap priority is outside of [0, 1]",
				zap.String("url", entry.URL),
				zap.Float64("priority", *entry.Priority),
			)
		}
	}

	generated, err := p.generator.Generate(entries)
	if err != nil {
		status = "error"
		return err
	}
	if generated.IndexSkipped {
		metrics.IndexSkippedCounter.WithLabelValues().Inc()
	}

	if err := p.write(ctx, generated.Files); err != nil {
		status = "error"
		return err
	}

	outDir := cfg.OutDir()
	for _, f := range generated.Files {
		res.Register(build.NewArtifact(filepath.ToSlash(filepath.Join(outDir, f.Name)), f.Content, build.ArtifactOptions{
			Kind:   build.KindEntryPoint,
			Loader: build.LoaderFile,
		}))
		metrics.FilesWrittenCounter.WithLabelValues(fileType(generated, f)).Inc()
	}

	l.Info("sitemap generated",
		zap.Int("auto_entries", len(autoEntries)),
		zap.Int("user_entries", len(p.options.Entries)),
		zap.Int("files", len(generated.Files)),
		zap.Bool("chunked", generated.Chunked),
		zap.Bool("index_skipped", generated.IndexSkipped),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// AutoEntries derives entries from the entry point outputs with an authorized extension
func (p *AutoSitemap) AutoEntries(cfg *build.Config, res *build.Result) []sitemap.Entry {
	if p.options.DisableAutoEntries || res == nil {
		return nil
	}

	transform := p.options.Transform
	if transform == nil {
		prefix := p.options.StripPrefix
		if prefix == "" {
			prefix = cfg.OutDir()
		}
		transform = StripPrefix(prefix)
	}

	var entries []sitemap.Entry
	for _, output := range res.Outputs {
		if output.Kind != build.KindEntryPoint {
			continue
		}
		if _, ok := p.extensions[output.Extension()]; !ok {
			continue
		}
		entries = append(entries, transform(sitemap.Entry{URL: output.Path}))
	}
	return entries
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (p *AutoSitemap) write(ctx context.Context, files []sitemap.File) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.writeConcurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := p.storage.Write(gCtx, f.Name, f.Content); err != nil {
				return errors.Wrapf(err, "failed to write %s", f.Name)
			}
			p.l.Debug("wrote sitemap file", zap.String("name", f.Name), zap.Int("bytes", len(f.Content)))
			return nil
		})
	}
	return g.Wait()
}

func fileType(r *sitemap.Result, f sitemap.File) string {
	switch {
	case !r.Chunked:
		return "sitemap"
	case f.Name == sitemap.IndexFileName:
		return "index"
	default:
		return "chunk"
	}
}
