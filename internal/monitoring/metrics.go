package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bidsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_total",
			Help: "Bid submissions by outcome",
		},
		[]string{"status"},
	)

	chatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_chat_messages_total",
			Help: "Chat messages appended to the room log",
		},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auction_active_connections",
			Help: "Transport connections registered with the dispatcher",
		},
	)

	participants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auction_participants",
			Help: "Connections bound to a username",
		},
	)

	eventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_events_delivered_total",
			Help: "Events queued to connections, by event name",
		},
		[]string{"event"},
	)

	evictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_slow_connections_evicted_total",
			Help: "Connections disconnected because their send queue was full",
		},
	)

	rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_commands_rejected_total",
			Help: "Commands rejected back to their sender, by error kind",
		},
		[]string{"kind"},
	)
)

// Monitor records room metrics. The zero value is ready to use.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// TrackBid records a bid submission outcome ("accepted" or "rejected")
func (m *Monitor) TrackBid(status string) {
	bidsTotal.WithLabelValues(status).Inc()
}

func (m *Monitor) TrackChatMessage() {
	chatMessagesTotal.Inc()
}

func (m *Monitor) TrackRejection(kind string) {
	rejections.WithLabelValues(kind).Inc()
}

func (m *Monitor) SetParticipants(n int) {
	participants.Set(float64(n))
}

func (m *Monitor) ConnectionOpened() {
	activeConnections.Inc()
}

func (m *Monitor) ConnectionClosed() {
	activeConnections.Dec()
}

func (m *Monitor) TrackDelivery(event string, n int) {
	eventsDelivered.WithLabelValues(event).Add(float64(n))
}

func (m *Monitor) TrackEviction() {
	evictions.Inc()
}
