package observability

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// SessionStats is a point-in-time copy of the session counters.
type SessionStats struct {
	FramesIn          uint64 `json:"frames_in"`
	FramesOut         uint64 `json:"frames_out"`
	DroppedSends      uint64 `json:"dropped_sends"`
	MalformedFrames   uint64 `json:"malformed_frames"`
	ReconnectAttempts uint64 `json:"reconnect_attempts"`
	RefreshSuccess    uint64 `json:"refresh_success"`
	RefreshFailure    uint64 `json:"refresh_failure"`
	SessionCleared    uint64 `json:"session_cleared"`
	Connected         bool   `json:"connected"`
	LastFrameAt       string `json:"last_frame_at,omitempty"`
}

// SessionMonitor counts what happens on one chat session.
// Every method is safe for concurrent use.
type SessionMonitor struct {
	log *slog.Logger

	framesIn          atomic.Uint64
	framesOut         atomic.Uint64
	droppedSends      atomic.Uint64
	malformedFrames   atomic.Uint64
	reconnectAttempts atomic.Uint64
	refreshSuccess    atomic.Uint64
	refreshFailure    atomic.Uint64
	sessionCleared    atomic.Uint64
	connected         atomic.Bool
	lastFrameAt       atomic.Int64
}

func NewSessionMonitor(log *slog.Logger) *SessionMonitor {
	return &SessionMonitor{log: log}
}

func (m *SessionMonitor) IncrFramesIn() {
	m.framesIn.Add(1)
	m.lastFrameAt.Store(time.Now().UnixNano())
}

func (m *SessionMonitor) IncrFramesOut() {
	m.framesOut.Add(1)
}

func (m *SessionMonitor) IncrDroppedSends() {
	m.droppedSends.Add(1)
}

func (m *SessionMonitor) IncrMalformedFrames() {
	m.malformedFrames.Add(1)
}

func (m *SessionMonitor) IncrReconnectAttempts() {
	m.reconnectAttempts.Add(1)
}

func (m *SessionMonitor) IncrRefresh(ok bool) {
	if ok {
		m.refreshSuccess.Add(1)
		return
	}
	m.refreshFailure.Add(1)
}

func (m *SessionMonitor) IncrSessionCleared() {
	m.sessionCleared.Add(1)
}

func (m *SessionMonitor) SetConnected(connected bool) {
	if m.connected.Swap(connected) != connected {
		m.log.Debug("Connection flag changed", "connected", connected)
	}
}

func (m *SessionMonitor) Snapshot() SessionStats {
	stats := SessionStats{
		FramesIn:          m.framesIn.Load(),
		FramesOut:         m.framesOut.Load(),
		DroppedSends:      m.droppedSends.Load(),
		MalformedFrames:   m.malformedFrames.Load(),
		ReconnectAttempts: m.reconnectAttempts.Load(),
		RefreshSuccess:    m.refreshSuccess.Load(),
		RefreshFailure:    m.refreshFailure.Load(),
		SessionCleared:    m.sessionCleared.Load(),
		Connected:         m.connected.Load(),
	}
	if at := m.lastFrameAt.Load(); at > 0 {
		stats.LastFrameAt = time.Unix(0, at).Format("15:04:05")
	}
	return stats
}
