package record

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var materializations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "record_materializations_total",
	Help: "Total number of records decoded from bytes, by result",
}, []string{"result"})

var encodedBytes = promauto.NewSummary(prometheus.SummaryOpts{
	Name: "record_encoded_bytes",
	Help: "Distribution of the size of encoded records",
	Objectives: map[float64]float64{
		0.5:  0.05,
		0.9:  0.01,
		0.99: 0.001,
	},
})
