package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the counters the application exports on /metrics.
type Collectors struct {
	SheetFetches  *prometheus.CounterVec
	SheetFailures *prometheus.CounterVec
	SongsLoaded   *prometheus.GaugeVec
	Plays         prometheus.Counter
	Collection    *prometheus.CounterVec
	Requests      *prometheus.HistogramVec
}

// NewCollectors creates the collectors and registers them on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		SheetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "songsheet",
			Name:      "sheet_fetches_total",
			Help:      "Published sheet downloads, by language.",
		}, []string{"language"}),
		SheetFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "songsheet",
			Name:      "sheet_fetch_failures_total",
			Help:      "Published sheet downloads that failed and yielded no songs, by reason.",
		}, []string{"reason"}),
		SongsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "songsheet",
			Name:      "songs_loaded",
			Help:      "Songs currently cached, by language.",
		}, []string{"language"}),
		Plays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "songsheet",
			Name:      "plays_total",
			Help:      "Songs opened in the mini-player.",
		}),
		Collection: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "songsheet",
			Name:      "collection_changes_total",
			Help:      "Favorite, playlist and history mutations.",
		}, []string{"collection", "action"}),
		Requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "songsheet",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(c.SheetFetches, c.SheetFailures, c.SongsLoaded, c.Plays, c.Collection, c.Requests)
	}
	return c
}

// Nop returns unregistered collectors, handy for tests.
func Nop() *Collectors {
	return NewCollectors(nil)
}
