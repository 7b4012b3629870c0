package build

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type (
	// Plugin hooks into the after build extension point of a build
	Plugin interface {
		Name() string
		Version() string
		AfterBuild(ctx context.Context, cfg *Config, res *Result) error
	}
	// Host runs the after build hooks of its plugins
	Host struct {
		l       *zap.Logger
		plugins []Plugin
	}
	HostOption func(*Host)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewHost(l *zap.Logger, opts ...HostOption) *Host {
	inst := &Host{
		l: l.Named("host"),
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithPlugins(v ...Plugin) HostOption {
	return func(o *Host) {
		o.plugins = append(o.plugins, v...)
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (h *Host) Plugins() []Plugin {
	return h.plugins
}

// AfterBuild runs every plugin hook in registration order.
// A failing hook does not stop the following ones, all errors are returned combined.
func (h *Host) AfterBuild(ctx context.Context, cfg *Config, res *Result) error {
	var err error
	for _, p := range h.plugins {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return multierr.Append(err, ctxErr)
		}
		l := h.l.With(zap.String("plugin", p.Name()), zap.String("version", p.Version()))
		l.Debug("running after build hook")
		if errHook := p.AfterBuild(ctx, cfg, res); errHook != nil {
			l.Error("after build hook failed", zap.Error(errHook))
			err = multierr.Append(err, errors.Wrapf(errHook, "plugin %s", p.Name()))
			continue
		}
		l.Debug("after build hook done", zap.Int("outputs", len(res.Outputs)))
	}
	return err
}
