// Package export exposes run-time info as Prometheus metrics.
package export

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lbm-sim/lbm-info/sim"
)

const namespace = "lbm_info"

// Source provides the latest status and the precomputed footprint.
// monitor.Monitor implements it.
type Source interface {
	Snapshot() sim.Status
	Footprint() sim.Footprint
}

type statusCollector struct {
	source  Source
	metrics []statusMetric
	memory  *prometheus.Desc
}

type statusMetric struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	extract   func(st sim.Status) (float64, bool)
}

// NewCollector builds a collector reading from source on every scrape.
func NewCollector(source Source) prometheus.Collector {
	if source == nil {
		return nil
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}

	return &statusCollector{
		source: source,
		memory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "memory_required_megabytes"),
			"Estimated memory required by the lattice.",
			[]string{"device"},
			nil,
		),
		metrics: []statusMetric{
			{
				desc:      desc("mlups", "Million lattice updates per second, from the smoothed step time."),
				valueType: prometheus.GaugeValue,
				extract:   func(st sim.Status) (float64, bool) { return st.MLUPs, true },
			},
			{
				desc:      desc("bandwidth_gigabytes_per_second", "Device memory bandwidth from the smoothed step time."),
				valueType: prometheus.GaugeValue,
				extract:   func(st sim.Status) (float64, bool) { return st.BandwidthGBs, true },
			},
			{
				desc:      desc("steps_per_second", "Simulation steps per second, from the smoothed step time."),
				valueType: prometheus.GaugeValue,
				extract:   func(st sim.Status) (float64, bool) { return st.StepsPerSec, true },
			},
			{
				desc:      desc("current_step", "Global step counter."),
				valueType: prometheus.GaugeValue,
				extract:   func(st sim.Status) (float64, bool) { return float64(st.CurrentStep), true },
			},
			{
				desc:      desc("runtime_seconds", "Cumulative wall-clock runtime over all segments."),
				valueType: prometheus.GaugeValue,
				extract:   func(st sim.Status) (float64, bool) { return st.Runtime, true },
			},
			{
				desc:      desc("target_steps", "Step target of the current segment."),
				valueType: prometheus.GaugeValue,
				extract: func(st sim.Status) (float64, bool) {
					if st.Infinite() {
						return 0, false
					}
					return float64(st.TargetSteps), true
				},
			},
			{
				desc:      desc("time_remaining_seconds", "Estimated remaining time of the current segment."),
				valueType: prometheus.GaugeValue,
				extract: func(st sim.Status) (float64, bool) {
					if st.Infinite() || !st.TimeKnown {
						return 0, false
					}
					return st.Time, true
				},
			},
		},
	}
}

func (c *statusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.memory
	for _, metric := range c.metrics {
		ch <- metric.desc
	}
}

func (c *statusCollector) Collect(ch chan<- prometheus.Metric) {
	fp := c.source.Footprint()
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(fp.CPUMegabytesRequired), "cpu")
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(fp.GPUMegabytesRequired), "gpu")

	st := c.source.Snapshot()
	for _, metric := range c.metrics {
		value, ok := metric.extract(st)
		if !ok {
			continue
		}
		ch <- prometheus.MustNewConstMetric(metric.desc, metric.valueType, value)
	}
}
