// Package metrics exposes prometheus counters for recipe imports, model
// calls and API errors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recipe processing status labels.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	RecipeProcessing = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipe_processing_seconds",
		Help:    "Time spent processing recipes",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	}, []string{"source_type", "status"})

	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_api_calls_total",
		Help: "Total LLM API calls",
	}, []string{"model", "status"})

	LLMTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Total tokens used in LLM calls",
	}, []string{"model", "type"})

	ActiveRecipes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_recipes_total",
		Help: "Total number of active recipes in database",
	})

	RecipesImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipes_imported_total",
		Help: "Total recipes imported",
	}, []string{"source_type"})

	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total API errors",
	}, []string{"endpoint", "error_type"})
)

// TrackRecipeImport records how long storing a recipe took. Successful
// imports are also counted per source type.
func TrackRecipeImport(sourceType string, took time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	} else {
		RecipesImported.WithLabelValues(sourceType).Inc()
	}
	RecipeProcessing.WithLabelValues(sourceType, status).Observe(took.Seconds())
}

// TrackLLMCall counts a model call and the tokens it used.
func TrackLLMCall(model string, inputTokens, outputTokens int, status string) {
	LLMCalls.WithLabelValues(model, status).Inc()
	LLMTokens.WithLabelValues(model, "input").Add(float64(inputTokens))
	LLMTokens.WithLabelValues(model, "output").Add(float64(outputTokens))
}

func UpdateRecipeCount(n int64) {
	ActiveRecipes.Set(float64(n))
}

func TrackAPIError(endpoint, errorType string) {
	APIErrors.WithLabelValues(endpoint, errorType).Inc()
}

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
