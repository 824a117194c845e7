// Package metrics holds the prometheus collectors of the inventory store.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Keys for write results.
const (
	Fail = "fail"
	Ok   = "ok"
	NoOp = "noop"
)

// Collectors for the sqlite item store and its change hub.
var (
	ItemWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_item_writes_total",
		Help: "Cumulative number of item writes, by operation and result.",
	}, []string{"op", "result"})
	ItemNoOpWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_item_noop_writes_total",
		Help: "Cumulative number of item writes which changed no row (ignored conflict or missing row).",
	}, []string{"op"})
	DatabaseOpensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_database_opens_total",
		Help: "Cumulative number of attempts to open the item database, by result.",
	}, []string{"result"})
	StreamQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stream_queries_total",
		Help: "Cumulative number of live stream (re)queries, by result.",
	}, []string{"result"})
	HubClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_hub_clients",
		Help: "Number of live stream subscriptions registered with the change hub.",
	})
)

func init() {
	prometheus.MustRegister(
		ItemWritesTotal,
		ItemNoOpWritesTotal,
		DatabaseOpensTotal,
		StreamQueriesTotal,
		HubClients,
	)
}
