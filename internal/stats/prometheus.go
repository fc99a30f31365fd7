package stats

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// RenderPrometheus renders t as Prometheus text-exposition format, for
// callers that want to pipe statistics into a file or a pushgateway rather
// than print them. This is a batch renderer, not a served /metrics
// endpoint: a throwaway registry is built per call and never retained.
func RenderPrometheus(t Totals) (string, error) {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, value float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		g.Set(value)
		reg.MustRegister(g)
	}

	gauge("chatvault_conversation_count", "Total conversations seen.", float64(t.ConversationCount))
	gauge("chatvault_message_count", "Total messages seen.", float64(t.MessageCount))
	gauge("chatvault_skipped_count", "Conversations dropped by the parser.", float64(t.SkippedCount))
	gauge("chatvault_average_messages_per_conversation", "Mean message_count across conversations.", t.AverageMessages)
	if t.EarliestCreatedAt != nil {
		gauge("chatvault_earliest_created_at_seconds", "Unix timestamp of the earliest created_at seen.", float64(t.EarliestCreatedAt.Unix()))
	}
	if t.LatestCreatedAt != nil {
		gauge("chatvault_latest_created_at_seconds", "Unix timestamp of the latest created_at seen.", float64(t.LatestCreatedAt.Unix()))
	}

	families, err := reg.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
