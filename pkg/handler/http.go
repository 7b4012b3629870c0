package handler

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foomo/autositemap/pkg/metrics"
	"github.com/foomo/autositemap/pkg/sitemap"
	"github.com/foomo/autositemap/pkg/storage"
	httputils "github.com/foomo/keel/utils/net/http"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const contentTypeXML = "application/xml; charset=utf-8"

type (
	HTTP struct {
		l        *zap.Logger
		basePath string
		storage  storage.Storage
	}
	HTTPOption func(*HTTP)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewHTTP returns a handler serving generated sitemap files from storage
func NewHTTP(l *zap.Logger, s storage.Storage, opts ...HTTPOption) http.Handler {
	inst := &HTTP{
		l:       l.Named("http"),
		storage: s,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithBasePath(v string) HTTPOption {
	return func(o *HTTP) {
		o.basePath = strings.TrimSuffix(v, "/")
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	route := "sitemap"
	status := http.StatusOK
	defer func() {
		metrics.ServiceRequestCounter.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.ServiceRequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", "GET, HEAD")
		httputils.ServerError(h.l, w, r, status, errors.New("method not allowed"))
		return
	}

	name, ok := strings.CutPrefix(r.URL.Path, h.basePath+"/")
	if !ok || strings.Contains(name, "/") || !sitemap.IsSitemapFile(name) {
		route = "unknown"
		status = http.StatusNotFound
		http.NotFound(w, r)
		return
	}
	if name == sitemap.IndexFileName {
		route = "index"
	}

	data, err := h.storage.Read(r.Context(), name)
	if errors.Is(err, os.ErrNotExist) {
		status = http.StatusNotFound
		http.NotFound(w, r)
		return
	} else if err != nil {
		status = http.StatusInternalServerError
		httputils.ServerError(h.l, w, r, status, errors.Wrapf(err, "failed to read %s", name))
		return
	}

	w.Header().Set("Content-Type", contentTypeXML)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(data); err != nil {
		h.l.Warn("failed to write response", zap.String("name", name), zap.Error(err))
	}
}
