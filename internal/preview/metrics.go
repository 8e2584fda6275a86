package preview

import (
	"os"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
)

// serverMetrics holds the prometheus collectors for one preview server.
type serverMetrics struct {
	registry      *prom.Registry
	requestsTotal *prom.CounterVec
	changesTotal  prom.Counter
	plugsGauge    prom.GaugeFunc
}

func newServerMetrics(plugsDir string) *serverMetrics {
	m := &serverMetrics{registry: prom.NewRegistry()}

	m.requestsTotal = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "plugforge",
		Name:      "preview_requests_total",
		Help:      "HTTP requests served by the preview server",
	}, []string{"code"})

	m.changesTotal = prom.NewCounter(prom.CounterOpts{
		Namespace: "plugforge",
		Name:      "preview_changes_total",
		Help:      "Filesystem change events observed under the plugs root",
	})

	m.plugsGauge = prom.NewGaugeFunc(prom.GaugeOpts{
		Namespace: "plugforge",
		Name:      "plugs",
		Help:      "Plug directories currently present under the plugs root",
	}, func() float64 {
		entries, err := os.ReadDir(plugsDir)
		if err != nil {
			return 0
		}
		count := 0
		for _, entry := range entries {
			if entry.IsDir() {
				count++
			}
		}
		return float64(count)
	})

	m.registry.MustRegister(m.requestsTotal, m.changesTotal, m.plugsGauge)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}
