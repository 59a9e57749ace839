package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	mfs, err := reg.Gather()
	require.NoError(t, err)
	result := map[string]*dto.MetricFamily{}
	for _, mf := range mfs {
		result[mf.GetName()] = mf
	}
	return result
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.TableOpened()
	c.TableOpened()
	c.TableClosed()
	c.GameStarted("classic")
	c.Action("RAISE", true)
	c.Action("RAISE", true)
	c.Action("CALL", false)
	c.RoundFinished("fold")
	c.GameFinished("classic", "draw")

	mfs := gather(t, reg)
	assert.Equal(t, 1.0, mfs["indian_poker_active_tables"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, mfs["indian_poker_games_started_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Len(t, mfs["indian_poker_actions_total"].GetMetric(), 2)
	assert.Len(t, mfs["indian_poker_rounds_finished_total"].GetMetric(), 1)

	var raised float64
	for _, m := range mfs["indian_poker_actions_total"].GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "type" && l.GetValue() == "RAISE" {
				raised = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, raised)

	// 同一个registry不能注册两次
	assert.Panics(t, func() { NewCollector(reg) })
}
