// Package metrics holds lightweight process-local counters exposed in
// Prometheus text format. No external scrape dependencies; values reset
// on process restart.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	mu sync.Mutex

	httpRequests = map[string]int64{} // key: method|path|status

	analysisRequests = map[string]int64{} // key: kind|outcome
	analysisDegraded = map[string]int64{} // key: kind

	uploadsTotal = map[string]int64{} // key: document_type

	latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	latencyCounts  = make([]int64, len(latencyBuckets)+1)
	latencySum     float64
	latencyTotal   int64
)

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, seconds float64) {
	mu.Lock()
	defer mu.Unlock()
	key := fmt.Sprintf("%s|%s|%d", method, path, status)
	httpRequests[key]++
	latencySum += seconds
	latencyTotal++
	for i, upper := range latencyBuckets {
		if seconds <= upper {
			latencyCounts[i]++
			return
		}
	}
	latencyCounts[len(latencyBuckets)]++
}

// ObserveAnalysis records one analysis attempt by kind and outcome
// (ok, degraded, empty, unavailable).
func ObserveAnalysis(kind, outcome string) {
	mu.Lock()
	defer mu.Unlock()
	analysisRequests[kind+"|"+outcome]++
	if outcome == "degraded" {
		analysisDegraded[kind]++
	}
}

// ObserveUpload records one accepted document upload by type.
func ObserveUpload(documentType string) {
	mu.Lock()
	defer mu.Unlock()
	uploadsTotal[documentType]++
}

// Render returns the current counters in Prometheus text exposition format.
func Render() string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder

	b.WriteString("# HELP http_requests_total Completed HTTP requests.\n")
	b.WriteString("# TYPE http_requests_total counter\n")
	for _, key := range sortedKeys(httpRequests) {
		parts := strings.SplitN(key, "|", 3)
		fmt.Fprintf(&b, "http_requests_total{method=%q,path=%q,status=%q} %d\n",
			parts[0], parts[1], parts[2], httpRequests[key])
	}

	b.WriteString("# HELP analysis_requests_total Analysis attempts by kind and outcome.\n")
	b.WriteString("# TYPE analysis_requests_total counter\n")
	for _, key := range sortedKeys(analysisRequests) {
		parts := strings.SplitN(key, "|", 2)
		fmt.Fprintf(&b, "analysis_requests_total{kind=%q,outcome=%q} %d\n",
			parts[0], parts[1], analysisRequests[key])
	}

	b.WriteString("# HELP analysis_degraded_total Analyses that fell back to raw-text results.\n")
	b.WriteString("# TYPE analysis_degraded_total counter\n")
	for _, key := range sortedKeys(analysisDegraded) {
		fmt.Fprintf(&b, "analysis_degraded_total{kind=%q} %d\n", key, analysisDegraded[key])
	}

	b.WriteString("# HELP document_uploads_total Accepted document uploads by type.\n")
	b.WriteString("# TYPE document_uploads_total counter\n")
	for _, key := range sortedKeys(uploadsTotal) {
		fmt.Fprintf(&b, "document_uploads_total{document_type=%q} %d\n", key, uploadsTotal[key])
	}

	b.WriteString("# HELP http_request_duration_seconds HTTP request latency.\n")
	b.WriteString("# TYPE http_request_duration_seconds histogram\n")
	var cumulative int64
	for i, upper := range latencyBuckets {
		cumulative += latencyCounts[i]
		fmt.Fprintf(&b, "http_request_duration_seconds_bucket{le=\"%g\"} %d\n", upper, cumulative)
	}
	cumulative += latencyCounts[len(latencyBuckets)]
	fmt.Fprintf(&b, "http_request_duration_seconds_bucket{le=\"+Inf\"} %d\n", cumulative)
	fmt.Fprintf(&b, "http_request_duration_seconds_sum %g\n", latencySum)
	fmt.Fprintf(&b, "http_request_duration_seconds_count %d\n", latencyTotal)

	return b.String()
}

// Reset clears all counters. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	httpRequests = map[string]int64{}
	analysisRequests = map[string]int64{}
	analysisDegraded = map[string]int64{}
	uploadsTotal = map[string]int64{}
	latencyCounts = make([]int64, len(latencyBuckets)+1)
	latencySum = 0
	latencyTotal = 0
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
