package observability

import (
	"strconv"
	"sync"
	"time"
)

// AuthEvent names an authentication outcome worth counting.
type AuthEvent string

const (
	AuthLoginSucceeded AuthEvent = "login_succeeded"
	AuthLoginFailed    AuthEvent = "login_failed"
	AuthLoginThrottled AuthEvent = "login_throttled"
	AuthLogout         AuthEvent = "logout"
	AuthLogoutRejected AuthEvent = "logout_rejected"
	AuthRevokedPruned  AuthEvent = "revocations_pruned"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	started       time.Time
	requestCount  map[string]int64
	errorCount    map[string]int64
	authCount     map[AuthEvent]int64
	totalDuration time.Duration
	totalRequests int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	UptimeSeconds     int64               `json:"uptime_seconds"`
	Requests          map[string]int64    `json:"requests"`
	Errors            map[string]int64    `json:"errors"`
	Auth              map[AuthEvent]int64 `json:"auth"`
	AverageLatencyMS  float64             `json:"average_latency_ms"`
	TotalRequestCount int64               `json:"total_requests"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:      time.Now(),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		authCount:    make(map[AuthEvent]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalRequests++
	m.totalDuration += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuth increments the counter of an authentication outcome by n.
func (m *Metrics) RecordAuth(event AuthEvent, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCount[event] += int64(n)
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		UptimeSeconds:     int64(time.Since(m.started).Seconds()),
		Requests:          make(map[string]int64, len(m.requestCount)),
		Errors:            make(map[string]int64, len(m.errorCount)),
		Auth:              make(map[AuthEvent]int64, len(m.authCount)),
		TotalRequestCount: m.totalRequests,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.authCount {
		snap.Auth[k] = v
	}
	if m.totalRequests > 0 {
		snap.AverageLatencyMS = float64(m.totalDuration.Microseconds()) / float64(m.totalRequests) / 1000
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
