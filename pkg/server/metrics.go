package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listingfilters_actions_total",
		Help: "The total number of dispatched filter actions",
	}, []string{"type"})
	actionsIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listingfilters_actions_ignored_total",
		Help: "The total number of actions with an unknown type",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "listingfilters_sessions_active",
		Help: "The number of live filter sessions",
	})
	handoffsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listingfilters_handoffs_saved_total",
		Help: "The total number of stored handoffs",
	})
	handoffsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listingfilters_handoffs_loaded_total",
		Help: "The total number of handoff lookups",
	}, []string{"result"})
	queriesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listingfilters_queries_total",
		Help: "The total number of normalized query strings",
	})
)
