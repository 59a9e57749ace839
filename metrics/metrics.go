package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
)

const namespace = "indian_poker"

// Collector implements abstracts.Metrics on top of prometheus
type Collector struct {
	gamesStarted  *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	rounds        *prometheus.CounterVec
	actions       *prometheus.CounterVec
	activeTables  prometheus.Gauge
}

// NewCollector registers everything on reg, pass prometheus.DefaultRegisterer in production
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_started_total",
			Help: "games whose second seat got filled",
		}, []string{"variant"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_finished_total",
			Help: "finished games by outcome",
		}, []string{"variant", "outcome"}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rounds_finished_total",
			Help: "resolved rounds by result",
		}, []string{"result"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "actions_total",
			Help: "actions submitted to the engine",
		}, []string{"type", "success"}),
		activeTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_tables",
			Help: "tables currently running",
		}),
	}
	reg.MustRegister(c.gamesStarted, c.gamesFinished, c.rounds, c.actions, c.activeTables)
	return c
}

func (c *Collector) GameStarted(variant string) {
	c.gamesStarted.WithLabelValues(variant).Inc()
}

func (c *Collector) GameFinished(variant string, outcome string) {
	c.gamesFinished.WithLabelValues(variant, outcome).Inc()
}

func (c *Collector) RoundFinished(result string) {
	c.rounds.WithLabelValues(result).Inc()
}

func (c *Collector) Action(actionType string, success bool) {
	c.actions.WithLabelValues(actionType, strconv.FormatBool(success)).Inc()
}

func (c *Collector) TableOpened() { c.activeTables.Inc() }
func (c *Collector) TableClosed() { c.activeTables.Dec() }

// Serve blocks serving /metrics from the default gatherer
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.L.Info("metrics listening", zap.Int("port", port))
	return http.ListenAndServe(fmt.Sprintf(":%v", port), mux)
}
