// Package metrics provides Prometheus observability metrics for the
// customer success balancer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Run outcomes used as the "outcome" label of RunsTotal.
const (
	OutcomeWinner = "winner"
	OutcomeTie    = "tie"
	OutcomeNone   = "none"
)

// =============================================================================
// BALANCER METRICS
// =============================================================================

// RunsTotal counts balancing runs by outcome. A high tie rate means the
// representative pool is too evenly matched to name a single winner.
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "balancer",
	Name:      "runs_total",
	Help:      "Balancing runs by outcome (winner, tie, none)",
}, []string{"outcome"})

// CustomersUnmatchedTotal tracks customers no available representative could serve.
var CustomersUnmatchedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "balancer",
	Name:      "customers_unmatched_total",
	Help:      "Customers whose score exceeded every available representative",
})

// AvailableCustomerSuccess is the size of the working pool of the last run.
var AvailableCustomerSuccess = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "available_customer_success",
	Help:      "Number of representatives left after removing those away",
})

// BalancerDurationSeconds tracks time to run the full pipeline.
var BalancerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "balancer",
	Name:      "duration_seconds",
	Help:      "Time taken to assign customers and resolve the winner",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// BalancerCustomersProcessed tracks number of customers per run.
var BalancerCustomersProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "balancer",
	Name:      "customers_processed",
	Help:      "Number of customers processed per balancing run",
	Buckets:   []float64{1, 10, 100, 1000, 10000, 100000},
})

// =============================================================================
// PARSER METRICS
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// ObserveRun records the outcome of a single balancing run.
func ObserveRun(winnerID int, tied bool, available, customers, unmatched int, seconds float64) {
	switch {
	case winnerID != 0:
		RunsTotal.WithLabelValues(OutcomeWinner).Inc()
	case tied:
		RunsTotal.WithLabelValues(OutcomeTie).Inc()
	default:
		RunsTotal.WithLabelValues(OutcomeNone).Inc()
	}
	AvailableCustomerSuccess.Set(float64(available))
	BalancerCustomersProcessed.Observe(float64(customers))
	CustomersUnmatchedTotal.Add(float64(unmatched))
	BalancerDurationSeconds.Observe(seconds)
}
