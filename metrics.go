package paygate

import "sync/atomic"

// MetricID defines a public type used by paygate APIs.
//
// MetricID instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricRequest is an exported constant or variable used by the gateway client.
	MetricRequest MetricID = iota
	// MetricRequestFailure is an exported constant or variable used by the gateway client.
	MetricRequestFailure
	// MetricRetryAfterUnauthorized is an exported constant or variable used by the gateway client.
	MetricRetryAfterUnauthorized
	// MetricRefreshSuccess is an exported constant or variable used by the gateway client.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the gateway client.
	MetricRefreshFailure
	// MetricRefreshDeduped is an exported constant or variable used by the gateway client.
	MetricRefreshDeduped
	// MetricRefreshDiscarded is an exported constant or variable used by the gateway client.
	MetricRefreshDiscarded
	// MetricLoginSuccess is an exported constant or variable used by the gateway client.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the gateway client.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the gateway client.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the gateway client.
	MetricRegisterFailure
	// MetricLogout is an exported constant or variable used by the gateway client.
	MetricLogout
	// MetricSessionRestored is an exported constant or variable used by the gateway client.
	MetricSessionRestored
	// MetricSessionDestroyed is an exported constant or variable used by the gateway client.
	MetricSessionDestroyed

	metricCount
)

// MetricsSnapshot defines a public type used by paygate APIs.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Metrics is a lock-free counter registry. A nil or disabled registry
// accepts increments and returns an empty snapshot.
type Metrics struct {
	enabled  bool
	counters [metricCount]atomic.Uint64
}

func newMetrics(enabled bool) *Metrics {
	return &Metrics{enabled: enabled}
}

// Inc describes the inc operation and its observable behavior.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot describes the snapshot operation and its observable behavior.
func (m *Metrics) Snapshot() MetricsSnapshot {
	out := MetricsSnapshot{Counters: map[MetricID]uint64{}}
	if m == nil || !m.enabled {
		return out
	}
	for id := MetricID(0); id < metricCount; id++ {
		if v := m.counters[id].Load(); v != 0 {
			out.Counters[id] = v
		}
	}
	return out
}
