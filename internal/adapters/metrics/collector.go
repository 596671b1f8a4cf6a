// Package metrics exposes relay activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/pkg/shiprelay"
)

const namespace = "shiprelay"

// Collector records relay events into its own Prometheus registry.
// It implements shiprelay.EventHandler.
type Collector struct {
	registry *prometheus.Registry

	eventsEnqueued  prometheus.Counter
	cyclesTotal     prometheus.Counter
	cycleDuration   prometheus.Histogram
	eventsDrained   prometheus.Counter
	eventsResolved  prometheus.Counter
	itemFailures    *prometheus.CounterVec
	batchesTotal    *prometheus.CounterVec
	batchShipments  prometheus.Counter
	stateTransition *prometheus.CounterVec
}

// NewCollector creates a collector. queueDepth, when non-nil, is sampled on
// every scrape.
func NewCollector(queueDepth func() int) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		eventsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_enqueued_total",
			Help:      "Total number of shipment events accepted into the queue",
		}),
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Total number of non-empty dispatch cycles",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of non-empty dispatch cycles",
			Buckets:   prometheus.DefBuckets,
		}),
		eventsDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_drained_total",
			Help:      "Total number of events taken from the queue by cycles",
		}),
		eventsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_resolved_total",
			Help:      "Total number of events resolved to an order",
		}),
		itemFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_failures_total",
			Help:      "Total number of shipment failures by kind",
		}, []string{"kind"}),
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of batch submissions by account and result",
		}, []string{"account_id", "result"}),
		batchShipments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_shipments_total",
			Help:      "Total number of shipments in successfully submitted batches",
		}),
		stateTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Total number of lifecycle transitions by target state",
		}, []string{"state"}),
	}

	c.registry.MustRegister(
		c.eventsEnqueued,
		c.cyclesTotal,
		c.cycleDuration,
		c.eventsDrained,
		c.eventsResolved,
		c.itemFailures,
		c.batchesTotal,
		c.batchShipments,
		c.stateTransition,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if queueDepth != nil {
		c.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Number of events waiting for the next cycle",
		}, func() float64 { return float64(queueDepth()) }))
	}
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) OnStateChange(event shiprelay.StateChangeEvent) {
	c.stateTransition.WithLabelValues(event.Current.String()).Inc()
}

func (c *Collector) OnEnqueue(event shiprelay.EnqueueEvent) {
	c.eventsEnqueued.Add(float64(event.Count))
}

func (c *Collector) OnCycleComplete(event shiprelay.CycleEvent) {
	r := event.Result
	c.cyclesTotal.Inc()
	c.cycleDuration.Observe(r.Duration.Seconds())
	c.eventsDrained.Add(float64(r.Drained))
	c.eventsResolved.Add(float64(r.Resolved))

	for _, o := range r.Outcomes {
		if o.Scope == domain.ScopeBatch {
			result := "success"
			if o.Failed() {
				result = "failure"
			} else {
				c.batchShipments.Add(float64(o.Shipments))
			}
			c.batchesTotal.WithLabelValues(o.AccountID, result).Inc()
			continue
		}
		if o.Failed() {
			c.itemFailures.WithLabelValues(o.Kind.String()).Inc()
		}
	}
}

var _ shiprelay.EventHandler = (*Collector)(nil)
