package resolve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelscout_resolve_total",
		Help: "Link resolutions by outcome (found, none, cancelled, fetch_error).",
	}, []string{"result"})

	stageHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelscout_resolve_stage_hits_total",
		Help: "Resolutions settled by each stage.",
	}, []string{"stage"})

	candidateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelscout_candidate_fetch_failures_total",
		Help: "Candidate pages that could not be fetched.",
	})
)
