package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/foomo/autositemap/pkg/build"
	"github.com/foomo/autositemap/pkg/plugin"
	"github.com/foomo/autositemap/pkg/sitemap"
	"github.com/foomo/autositemap/pkg/utils"
	"github.com/foomo/autositemap/pkg/watch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func NewGenerateCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the sitemap files of a build output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := zap.L().Named("generate")

			options, err := loadOptions(v)
			if err != nil {
				return err
			}
			if options.BaseURL != "" && !utils.IsValidUrl(options.BaseURL) {
				l.Warn("base url is not an absolute http(s) url", zap.String("base_url", options.BaseURL))
			}

			s, err := createStorage(ctx, v, l)
			if err != nil {
				return errors.Wrap(err, "failed to create storage")
			}
			defer func() {
				if err := s.Close(); err != nil {
					l.Warn("failed to close storage", zap.Error(err))
				}
			}()

			p, err := plugin.New(l, s, options, plugin.WithWriteConcurrency(writeConcurrencyFlag(v)))
			if err != nil {
				return err
			}
			host := build.NewHost(l, build.WithPlugins(p))

			run := func(ctx context.Context) error {
				return generate(ctx, v, host)
			}

			if !watchFlag(v) {
				return run(ctx)
			}

			if err := run(ctx); err != nil {
				l.Error("initial generate failed", zap.Error(err))
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(l, outDirFlag(v),
				watch.WithDebounce(watchDebounceFlag(v)),
				watch.WithIgnore(samePath(manifestOutFlag(v))),
			)
			return w.Run(ctx, run)
		},
	}

	flags := cmd.Flags()
	addConfigFlag(flags, v)
	addBaseURLFlag(flags, v)
	addOutDirFlag(flags, v)
	addMaxEntriesFlag(flags, v)
	addAuthorizedExtensionsFlag(flags, v)
	addDisableAutoEntriesFlag(flags, v)
	addStripPrefixFlag(flags, v)
	addManifestFlag(flags, v)
	addManifestOutFlag(flags, v)
	addWriteConcurrencyFlag(flags, v)
	addStorageTypeFlag(flags, v)
	addStorageBlobBucketFlag(flags, v)
	addStorageBlobPrefixFlag(flags, v)
	addWatchFlag(flags, v)
	addWatchDebounceFlag(flags, v)

	return cmd
}

// loadOptions merges the config file with flags and env.
// User entries are only read from the config file.
func loadOptions(v *viper.Viper) (plugin.Options, error) {
	if file := configFlag(v); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return plugin.Options{}, errors.Wrapf(err, "failed to read config %s", file)
		}
	}

	var entries []sitemap.Entry
	if err := v.UnmarshalKey("siteMapEntries", &entries); err != nil {
		return plugin.Options{}, errors.Wrap(err, "failed to decode siteMapEntries")
	}
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return plugin.Options{}, errors.Wrapf(err, "siteMapEntries[%d]", i)
		}
	}

	return plugin.Options{
		BaseURL:              baseURLFlag(v),
		Entries:              entries,
		AuthorizedExtensions: authorizedExtensionsFlag(v),
		DisableAutoEntries:   disableAutoEntriesFlag(v),
		MaxEntries:           maxEntriesFlag(v),
		StripPrefix:          stripPrefixFlag(v),
	}, nil
}

// generate loads the build outputs, runs the plugins and writes the updated manifest
func generate(ctx context.Context, v *viper.Viper, host *build.Host) error {
	res, err := loadOutputs(manifestFlag(v), outDirFlag(v))
	if err != nil {
		return err
	}

	if err := host.AfterBuild(ctx, &build.Config{Dir: outDirFlag(v)}, res); err != nil {
		return err
	}

	if out := manifestOutFlag(v); out != "" {
		if err := writeManifest(out, res); err != nil {
			return err
		}
	}
	return nil
}

func loadOutputs(manifest, outDir string) (*build.Result, error) {
	if manifest != "" {
		f, err := os.Open(manifest)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open manifest %s", manifest)
		}
		defer f.Close()
		return build.LoadManifest(f)
	}

	scanned, err := build.ScanDir(outDir)
	if err != nil {
		return nil, err
	}
	// sitemap files of a previous run are not build outputs
	res := &build.Result{}
	for _, a := range scanned.Outputs {
		if !sitemap.IsSitemapFile(a.Path) {
			res.Register(a)
		}
	}
	return res, nil
}

func writeManifest(name string, res *build.Result) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", name)
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "failed to create manifest %s", name)
	}
	if err := res.WriteManifest(f); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close manifest %s", name)
}

// samePath matches event names referring to the given file
func samePath(name string) func(string) bool {
	if name == "" {
		return func(string) bool { return false }
	}
	want, err := filepath.Abs(name)
	if err != nil {
		want = filepath.Clean(name)
	}
	return func(p string) bool {
		got, err := filepath.Abs(p)
		if err != nil {
			got = filepath.Clean(p)
		}
		return got == want
	}
}
