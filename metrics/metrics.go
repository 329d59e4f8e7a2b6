// Package metrics exposes Prometheus counters for the dialogue engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "images_turns_total",
		Help: "Dialogue turns processed, by outcome.",
	}, []string{"outcome"})

	QuestionsAsked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "images_questions_asked_total",
		Help: "Refinement questions sent back to the user.",
	})

	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "images_generations_total",
		Help: "Image generation calls, by outcome.",
	}, []string{"outcome"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
