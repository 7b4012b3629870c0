package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "autositemap"

	metricLabelStatus = "status"
	metricLabelSource = "source"
	metricLabelType   = "type"
	metricLabelRoute  = "route"
)

var (
	// GenerateCounter counts the number of after build runs
	GenerateCounter = newCounterVec(
		"generate_count",
		"Number of sitemap generation runs",
		metricLabelStatus,
	)
	// GenerateDuration observes the duration of each after build run
	GenerateDuration = newSummaryVec(
		"generate_duration_seconds",
		"Seconds to collect entries, render and write all sitemap files",
		metricLabelStatus,
	)
	// EntriesCounter counts rendered entries by their origin
	EntriesCounter = newCounterVec(
		"entries_count",
		"Number of rendered sitemap entries",
		metricLabelSource,
	)
	// FilesWrittenCounter counts written sitemap files
	FilesWrittenCounter = newCounterVec(
		"files_written_count",
		"Number of written sitemap files",
		metricLabelType,
	)
	// IndexSkippedCounter counts chunked runs without a base url
	IndexSkippedCounter = newCounterVec(
		"index_skipped_count",
		"Number of chunked runs where the sitemap index was skipped because no base url was set",
	)
	// ServiceRequestCounter counts http requests for sitemap files
	ServiceRequestCounter = newCounterVec(
		"service_request_count",
		"Count of requests for sitemap files",
		metricLabelRoute, metricLabelStatus,
	)
	// ServiceRequestDuration observes the duration of http requests for sitemap files
	ServiceRequestDuration = newSummaryVec(
		"service_request_duration_seconds",
		"Seconds to read and serve a sitemap file",
		metricLabelRoute, metricLabelStatus,
	)
)

func newSummaryVec(name, help string, labels ...string) *prometheus.SummaryVec {
	vec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}
