package lacrosse

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts receiver traffic. A nil *Metrics is valid and records nothing.
type Metrics struct {
	LinesRead       *prometheus.CounterVec
	Readings        *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
	Commands        *prometheus.CounterVec
	ReadErrors      prometheus.Counter
}

// NewMetrics creates the receiver collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lacrosse_lines_read_total",
				Help: "Lines received from the receiver",
			},
			[]string{"kind"},
		),
		Readings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lacrosse_readings_total",
				Help: "Sensor readings dispatched",
			},
			[]string{"sensor_id"},
		),
		HandlerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lacrosse_handler_failures_total",
				Help: "Reading handlers that returned an error or panicked",
			},
			[]string{"sensor_id"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lacrosse_commands_total",
				Help: "Configuration commands written",
			},
			[]string{"command", "result"},
		),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lacrosse_read_errors_total",
			Help: "Transport read failures that stopped the reader",
		}),
	}

	reg.MustRegister(
		m.LinesRead,
		m.Readings,
		m.HandlerFailures,
		m.Commands,
		m.ReadErrors,
	)

	return m
}

func (m *Metrics) line(kind LineKind) {
	if m == nil {
		return
	}
	m.LinesRead.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) reading(id int) {
	if m == nil {
		return
	}
	m.Readings.WithLabelValues(strconv.Itoa(id)).Inc()
}

func (m *Metrics) handlerFailure(id int) {
	if m == nil {
		return
	}
	m.HandlerFailures.WithLabelValues(strconv.Itoa(id)).Inc()
}

func (m *Metrics) command(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Commands.WithLabelValues(name, result).Inc()
}

func (m *Metrics) readError() {
	if m == nil {
		return
	}
	m.ReadErrors.Inc()
}
