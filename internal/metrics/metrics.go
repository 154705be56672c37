package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"toolhub/internal/db"
)

var (
	decisionDesc = prometheus.NewDesc(
		"toolhub_request_decisions_total",
		"Total tool request decisions by outcome",
		[]string{"decision"},
		nil,
	)
)

// DecisionCollector is a custom Prometheus collector that reads request
// decision counts from the database on each scrape.
type DecisionCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *DecisionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- decisionDesc
}

// Collect queries the database for decision counts and emits them as counters.
func (c *DecisionCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.GetDecisionStats(context.Background())
	if err != nil {
		slog.Error("failed to collect decision metrics", "error", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(
			decisionDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Decision,
		)
	}
}

// Recorder provides async decision recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&DecisionCollector{db: database})
	})
}

// RecordDecision asynchronously bumps the persistent counter for a decision.
func RecordDecision(decision string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementDecisionStat(context.Background(), decision); err != nil {
			slog.Error("failed to record decision", "decision", decision, "error", err)
		}
	}()
}
