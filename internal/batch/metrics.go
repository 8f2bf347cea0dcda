package batch

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the small set of counters/histograms the driver updates.
// A nil *Metrics (via NewMetrics(nil)) is valid and simply a no-op: metrics
// are opt-in, grounded on the pack's convention of taking an injectable
// registry rather than registering against the global default one.
type Metrics struct {
	alignmentsTotal prometheus.Counter
	batchDuration   prometheus.Histogram
	kernelLaunches  *prometheus.CounterVec
}

// NewMetrics registers the driver's metrics against reg. If reg is nil,
// the returned Metrics records nothing; every method call is a cheap no-op.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		alignmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bpalign_batch_alignments_total",
			Help: "Total number of alignments processed across all batches.",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bpalign_batch_duration_seconds",
			Help:    "Wall-clock duration of align_batch calls.",
			Buckets: prometheus.DefBuckets,
		}),
		kernelLaunches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bpalign_kernel_launches_total",
			Help: "Total kernel launches, labeled by kernel stage.",
		}, []string{"kernel"}),
	}
	reg.MustRegister(m.alignmentsTotal, m.batchDuration, m.kernelLaunches)
	return m
}

func (m *Metrics) observeAlignment() {
	if m == nil {
		return
	}
	m.alignmentsTotal.Inc()
}

func (m *Metrics) observeBatchDuration(seconds float64) {
	if m == nil {
		return
	}
	m.batchDuration.Observe(seconds)
}

func (m *Metrics) observeKernelLaunch(kernelName string) {
	if m == nil {
		return
	}
	m.kernelLaunches.WithLabelValues(kernelName).Inc()
}
