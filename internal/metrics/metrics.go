package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"linkdeck/internal/db"
)

var (
	usersDesc = prometheus.NewDesc(
		"linkdeck_users_total",
		"Total registered users",
		nil, nil,
	)
	collectionsDesc = prometheus.NewDesc(
		"linkdeck_collections_total",
		"Total collections by visibility",
		[]string{"visibility"}, nil,
	)
	linksDesc = prometheus.NewDesc(
		"linkdeck_links_total",
		"Total canonical links",
		nil, nil,
	)
	bookmarksDesc = prometheus.NewDesc(
		"linkdeck_bookmarks_total",
		"Total bookmarks by target kind",
		[]string{"kind"}, nil,
	)

	extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkdeck_metadata_extractions_total",
			Help: "Metadata extraction attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Extraction outcomes recorded by the metadata endpoint and refresher job.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeFetchFailed  = "fetch_failed"
)

// StatsCollector is a custom Prometheus collector that reads aggregate
// counts from the database on each scrape.
type StatsCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- usersDesc
	ch <- collectionsDesc
	ch <- linksDesc
	ch <- bookmarksDesc
}

// Collect queries the database for aggregate counts and emits them as gauges.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.GetStats(context.Background())
	if err != nil {
		slog.Error("failed to collect database stats", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(usersDesc, prometheus.GaugeValue, float64(stats.Users))
	ch <- prometheus.MustNewConstMetric(collectionsDesc, prometheus.GaugeValue, float64(stats.PublicCollections), "public")
	ch <- prometheus.MustNewConstMetric(collectionsDesc, prometheus.GaugeValue, float64(stats.Collections-stats.PublicCollections), "private")
	ch <- prometheus.MustNewConstMetric(linksDesc, prometheus.GaugeValue, float64(stats.Links))
	ch <- prometheus.MustNewConstMetric(bookmarksDesc, prometheus.GaugeValue, float64(stats.CollectionBookmarks), "collection")
	ch <- prometheus.MustNewConstMetric(bookmarksDesc, prometheus.GaugeValue, float64(stats.LinkBookmarks), "link")
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StatsCollector{db: database})
		prometheus.MustRegister(extractionsTotal)
	})
}

// RecordExtraction counts one metadata extraction attempt.
func RecordExtraction(outcome string) {
	extractionsTotal.WithLabelValues(outcome).Inc()
}
