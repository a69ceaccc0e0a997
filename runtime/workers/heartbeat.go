package workers

import (
	"chat-session/contract"
	"context"
	"log/slog"
	"time"
)

const DefaultPingInterval = 25 * time.Second

// HeartbeatWorker keeps the websocket alive with a ping frame on every tick.
// Nothing is sent while the transport is not open.
type HeartbeatWorker struct {
	log       *slog.Logger
	transport contract.ITransport
	interval  time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, transport contract.ITransport, interval time.Duration) *HeartbeatWorker {
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	return &HeartbeatWorker{log: log, transport: transport, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !w.transport.IsConnected() {
				continue
			}
			w.transport.Ping()
		}
	}
}
