package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// heritage site pipeline.
type Metrics struct {
	RecordsConsumed prometheus.Counter
	SitesPublished  prometheus.Counter
	TransformErrors prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Datum conversion metrics.
	OutsideRegion   prometheus.Counter   // sites outside the distortion rectangle (identity pass-through)
	SitesByCategory *prometheus.GaugeVec // label: category

	// Reverse-geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // label: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // label: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "records_consumed_total",
			Help:      "Total raw site records read from the source topic.",
		}),
		SitesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "sites_published_total",
			Help:      "Total converted sites written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "transform_errors_total",
			Help:      "Total records skipped due to parse or validation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heritage_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heritage_etl",
			Name:      "batch_size",
			Help:      "Number of records per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heritage_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		OutsideRegion: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "outside_region_total",
			Help:      "Sites whose WGS-84 position falls outside the distortion rectangle and passes through unchanged.",
		}),
		SitesByCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "heritage_etl",
			Name:      "sites_by_category",
			Help:      "Current number of stored sites per protection category.",
		}, []string{"category"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "geocode_requests_total",
			Help:      "Reverse-geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heritage_etl",
			Name:      "geocode_cache_total",
			Help:      "Reverse-geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heritage_etl",
			Name:      "geocode_api_duration_seconds",
			Help:      "AMap regeo request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heritage_etl",
			Name:      "geocode_enabled",
			Help:      "1 when reverse-geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsConsumed,
		m.SitesPublished,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.OutsideRegion,
		m.SitesByCategory,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsConsumed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "records_consumed_total"}),
		SitesPublished:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "sites_published_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heritage_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heritage_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heritage_etl", Name: "batch_processing_duration_seconds"}),
		OutsideRegion:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "outside_region_total"}),
		SitesByCategory:         prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "heritage_etl", Name: "sites_by_category"}, []string{"category"}),
		GeocodeRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heritage_etl", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heritage_etl", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heritage_etl", Name: "geocode_enabled"}),
	}
}
