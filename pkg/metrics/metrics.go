package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "assets"

	metricLabelAssetType = "asset_type"
	metricLabelReason    = "reason"
	metricLabelSource    = "source"
)

// Registry holds every metric of this package, see WriteToTextfile
var Registry = prometheus.NewRegistry()

var (
	// CatalogAssetsCounter counts the assets produced by catalog runs per derived type
	CatalogAssetsCounter = newCounterVec(
		"catalog_assets_count",
		"Number of assets produced by catalog runs",
		metricLabelAssetType,
	)
	// CatalogSkippedCounter counts the objects dropped by a type or size filter
	CatalogSkippedCounter = newCounterVec(
		"catalog_skipped_count",
		"Number of objects filtered out by asset type or size",
		metricLabelAssetType, metricLabelReason,
	)
	// CatalogFailedCounter counts catalog runs that could not list their source
	CatalogFailedCounter = newCounterVec(
		"catalog_runs_failed_count",
		"Number of catalog runs that failed due to an error",
		metricLabelSource,
	)
	// CatalogDuration observe the duration of each catalog run
	CatalogDuration = newSummaryVec(
		"catalog_run_duration_seconds",
		"Duration in seconds for each successful catalog run",
		metricLabelSource,
	)
)

// WriteToTextfile writes Registry in the text exposition format, e.g. for the
// node exporter textfile collector
func WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, Registry)
}

func newSummaryVec(name, help string, labels ...string) *prometheus.SummaryVec {
	vec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	Registry.MustRegister(vec)
	return vec
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	Registry.MustRegister(vec)
	return vec
}
