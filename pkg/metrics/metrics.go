// Package metrics exposes Prometheus counters for navigation activity.
// The engine never serves HTTP; the host registers the collector with
// whatever registry it already exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts applied navigation intents. All methods are safe for
// concurrent use and safe on a nil receiver, so the navigator can treat
// metrics as optional.
type Metrics struct {
	navigations    *prometheus.CounterVec
	pops           prometheus.Counter
	tabSwitches    prometheus.Counter
	paneOps        prometheus.Counter
	gestureCommits prometheus.Counter
	gestureCancels prometheus.Counter
}

// New creates an unregistered metrics set under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Forward navigations applied, labelled by routing outcome.",
		}, []string{"routing"}),
		pops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pops_total",
			Help:      "Back navigations that changed the tree.",
		}),
		tabSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tab_switches_total",
			Help:      "Tab selection changes applied.",
		}),
		paneOps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pane_operations_total",
			Help:      "Pane navigation, focus, and removal operations applied.",
		}),
		gestureCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gesture_commits_total",
			Help:      "Predictive back gestures committed.",
		}),
		gestureCancels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gesture_cancels_total",
			Help:      "Predictive back gestures cancelled.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.navigations.Describe(ch)
	m.pops.Describe(ch)
	m.tabSwitches.Describe(ch)
	m.paneOps.Describe(ch)
	m.gestureCommits.Describe(ch)
	m.gestureCancels.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.navigations.Collect(ch)
	m.pops.Collect(ch)
	m.tabSwitches.Collect(ch)
	m.paneOps.Collect(ch)
	m.gestureCommits.Collect(ch)
	m.gestureCancels.Collect(ch)
}

// Navigation counts a forward navigation by routing outcome.
func (m *Metrics) Navigation(routing string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(routing).Inc()
}

// Pop counts a handled back navigation.
func (m *Metrics) Pop() {
	if m == nil {
		return
	}
	m.pops.Inc()
}

// TabSwitch counts an applied tab selection change.
func (m *Metrics) TabSwitch() {
	if m == nil {
		return
	}
	m.tabSwitches.Inc()
}

// PaneOp counts an applied pane operation.
func (m *Metrics) PaneOp() {
	if m == nil {
		return
	}
	m.paneOps.Inc()
}

// GestureCommit counts a committed predictive back gesture.
func (m *Metrics) GestureCommit() {
	if m == nil {
		return
	}
	m.gestureCommits.Inc()
}

// GestureCancel counts a cancelled predictive back gesture.
func (m *Metrics) GestureCancel() {
	if m == nil {
		return
	}
	m.gestureCancels.Inc()
}
