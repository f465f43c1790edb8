package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DiscoveryRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_discovery_runs_total",
		Help: "Total discovery passes",
	})
	SourcesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_sources_skipped_total",
		Help: "Subreddits skipped due to fetch errors",
	})
	RepliesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_replies_posted_total",
		Help: "Replies successfully posted",
	})
	RepliesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_replies_skipped_total",
		Help: "Candidates skipped (empty oracle output)",
	})
	ReplyErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_reply_errors_total",
		Help: "Reply submissions that failed",
	})
	APIRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "karmaforge_api_retries_total",
		Help: "Reddit API requests retried after 429/5xx or transport errors",
	})
	SessionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "karmaforge_session_duration_seconds",
		Help:    "Reply session duration seconds",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
	OracleCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "karmaforge_oracle_calls_total",
		Help: "Comment oracle invocations by outcome",
	}, []string{"outcome"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "karmaforge_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "karmaforge_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(DiscoveryRuns, SourcesSkipped, RepliesPosted, RepliesSkipped, ReplyErrors, APIRetries, SessionDuration, OracleCalls, CommandRuns, CommandErrors)
}

// IncCommandRun counts one invocation of a CLI command.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError counts one failed CLI command.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObserveSessionDuration records a session run duration.
func ObserveSessionDuration(start time.Time) {
	SessionDuration.Observe(time.Since(start).Seconds())
}

// IncOracleCall increments the oracle counter for an outcome
// (ok, empty, error).
func IncOracleCall(outcome string) { OracleCalls.WithLabelValues(outcome).Inc() }
