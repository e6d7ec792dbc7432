package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docmgmt_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docmgmt_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	uploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docmgmt_upload_bytes_total",
		Help: "Bytes accepted through document uploads",
	})

	documentOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docmgmt_document_operations_total",
		Help: "Count of document lifecycle operations by action and result",
	}, []string{"action", "result"})

	purgeRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docmgmt_purge_runs_total",
		Help: "Count of trash purge runs by trigger and result",
	}, []string{"trigger", "result"})

	purgedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docmgmt_purged_documents_total",
		Help: "Document rows permanently removed by the trash purge",
	})

	purgedFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docmgmt_purged_files_total",
		Help: "Backing files handled by the trash purge",
	}, []string{"result"})

	purgeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docmgmt_purge_duration_seconds",
		Help:    "Duration of trash purge runs",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveUpload adds accepted upload bytes.
func ObserveUpload(size int64) {
	if size > 0 {
		uploadBytes.Add(float64(size))
	}
}

// ObserveDocumentOperation counts upload, delete, restore and download calls.
func ObserveDocumentOperation(action, result string) {
	documentOperations.WithLabelValues(action, result).Inc()
}

// ObservePurge records one purge run.
func ObservePurge(trigger, result string, rows int64, duration time.Duration) {
	purgeRuns.WithLabelValues(trigger, result).Inc()
	if rows > 0 {
		purgedRows.Add(float64(rows))
	}
	purgeDuration.Observe(duration.Seconds())
}

// ObservePurgedFile counts a file outcome: removed, missing or failed.
func ObservePurgedFile(result string) {
	purgedFiles.WithLabelValues(result).Inc()
}
