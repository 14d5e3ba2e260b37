package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/voltlab/regen2go/internal/regulator"
)

const subsystemRegulator = "regulator"

type RegulatorCollector struct {
	regulators []*regulator.Regulator

	busVoltage      *prometheus.Desc
	outputCurrent   *prometheus.Desc
	regenActive     *prometheus.Desc
	stateResets     *prometheus.Desc
	rejectedSamples *prometheus.Desc
}

func NewRegulatorCollector(regulators []*regulator.Regulator) *RegulatorCollector {
	return &RegulatorCollector{
		regulators: regulators,
		busVoltage: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemRegulator, "bus_voltage"),
			"Most recently sampled bus voltage in volts",
			[]string{"id"}, nil,
		),
		outputCurrent: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemRegulator, "output_current"),
			"Most recently commanded braking current in amperes",
			[]string{"id"}, nil,
		),
		regenActive: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemRegulator, "regen_active"),
			"Whether the bus voltage is inside the regen control band",
			[]string{"id"}, nil,
		),
		stateResets: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemRegulator, "state_reset_count"),
			"Counter for transitions out of the active zone, each discarding the compensator state",
			[]string{"id"}, nil,
		),
		rejectedSamples: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemRegulator, "rejected_sample_count"),
			"Counter for non-finite voltage samples rejected by the regulator",
			[]string{"id"}, nil,
		),
	}
}

func (collector *RegulatorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.busVoltage
	ch <- collector.outputCurrent
	ch <- collector.regenActive
	ch <- collector.stateResets
	ch <- collector.rejectedSamples
}

// Collect implements required collect function for all prometheus collectors
func (collector *RegulatorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, reg := range collector.regulators {
		regulatorId := reg.GetId()
		status := reg.GetStatus()

		active := 0.0
		if status.RegenActive {
			active = 1.0
		}

		ch <- prometheus.MustNewConstMetric(collector.busVoltage, prometheus.GaugeValue, status.LastVoltage, regulatorId)
		ch <- prometheus.MustNewConstMetric(collector.outputCurrent, prometheus.GaugeValue, status.LastOutput, regulatorId)
		ch <- prometheus.MustNewConstMetric(collector.regenActive, prometheus.GaugeValue, active, regulatorId)
		ch <- prometheus.MustNewConstMetric(collector.stateResets, prometheus.CounterValue, float64(status.Statistics.StateResetCount), regulatorId)
		ch <- prometheus.MustNewConstMetric(collector.rejectedSamples, prometheus.CounterValue, float64(status.Statistics.RejectedSampleCount), regulatorId)
	}
}
