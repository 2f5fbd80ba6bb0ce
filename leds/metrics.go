package leds

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pinWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trainlights_pin_writes_total",
		Help: "GPIO writes issued to LED pins",
	})

	pinWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trainlights_pin_write_failures_total",
		Help: "GPIO writes that returned an error",
	})

	activeBlinkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trainlights_active_blink_tasks",
		Help: "LEDs currently driven by a blink task",
	})
)
