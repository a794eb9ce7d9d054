package tracking

import "github.com/prometheus/client_golang/prometheus"

var (
	commandsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gatrack",
			Subsystem: "tracker",
			Name:      "commands_sent_total",
			Help:      "Total number of gtag commands sent to clients",
		},
		[]string{"command"},
	)

	initializationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gatrack",
			Subsystem: "tracker",
			Name:      "initializations_total",
			Help:      "Tracker initialization attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(commandsSentTotal, initializationsTotal)
}

func initResultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNotConfigurable(err):
		return "not_configurable"
	case IsMissingTrackingID(err):
		return "missing_tracking_id"
	case IsEmptyChain(err):
		return "empty_chain"
	default:
		return "error"
	}
}
