package server

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/snipdeck/pkg/constants"
)

// catalogCollector exports catalog size and realtime client gauges on
// every scrape.
type catalogCollector struct {
	s        *Server
	ready    *prometheus.Desc
	snippets *prometheus.Desc
	clients  *prometheus.Desc
}

func newCatalogCollector(s *Server) *catalogCollector {
	return &catalogCollector{
		s: s,
		ready: prometheus.NewDesc("snipdeck_catalog_ready",
			"1 once the first catalog snapshot is loaded.", nil, nil),
		snippets: prometheus.NewDesc("snipdeck_catalog_snippets",
			"Snippets in the current snapshot by category.", []string{"category"}, nil),
		clients: prometheus.NewDesc("snipdeck_realtime_clients",
			"Connected realtime clients by transport.", []string{"transport"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *catalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ready
	ch <- c.snippets
	ch <- c.clients
}

// Collect implements prometheus.Collector. Snippet gauges are skipped until
// the catalog is loaded so a scrape never triggers a load.
func (c *catalogCollector) Collect(ch chan<- prometheus.Metric) {
	ready := 0.0
	if c.s.Ready() {
		ready = 1
	}
	ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, ready)
	ch <- prometheus.MustNewConstMetric(c.clients, prometheus.GaugeValue, float64(c.s.wsHub.ClientCount()), "websocket")
	ch <- prometheus.MustNewConstMetric(c.clients, prometheus.GaugeValue, float64(c.s.sseBroadcaster.ClientCount()), "sse")

	if !c.s.Ready() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	snap, err := c.s.client.Snapshot(ctx)
	if err != nil {
		return
	}
	for _, cat := range c.s.client.Registry().Categories() {
		ch <- prometheus.MustNewConstMetric(c.snippets, prometheus.GaugeValue, float64(snap.Counts[cat.Key]), string(cat.Key))
	}
}
