package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ChatExchanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "safetybot_chat_exchanges",
	Help: "Chat exchanges handled, by mode and risk level",
}, []string{"mode", "risk_level"})

// RecordChatExchange counts one handled exchange. riskLevel is "none" for
// modes that carry no risk label.
func RecordChatExchange(mode, riskLevel string) {
	if riskLevel == "" {
		riskLevel = "none"
	}
	ChatExchanges.With(prometheus.Labels{
		"mode":       mode,
		"risk_level": riskLevel,
	}).Inc()
}
