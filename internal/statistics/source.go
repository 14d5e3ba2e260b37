package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/voltlab/regen2go/internal/sources"
)

const subsystemSource = "source"

type SourceCollector struct {
	sources []sources.Source
	value   *prometheus.Desc
}

func NewSourceCollector(sources []sources.Source) *SourceCollector {
	return &SourceCollector{
		sources: sources,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSource, "value"),
			"Smoothed value of the voltage source in volts",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SourceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SourceCollector) Collect(ch chan<- prometheus.Metric) {
	for _, source := range collector.sources {
		sourceId := source.GetId()
		value := source.GetMovingAvg()
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sourceId)
	}
}
