package observability

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestSessionMonitor_Snapshot(t *testing.T) {
	req := require.New(t)
	monitor := NewSessionMonitor(logs.GetLoggerFromLevel(slog.LevelDebug))

	monitor.IncrFramesIn()
	monitor.IncrFramesIn()
	monitor.IncrDroppedSends()
	monitor.IncrRefresh(true)
	monitor.IncrRefresh(false)
	monitor.SetConnected(true)

	stats := monitor.Snapshot()
	req.Equal(uint64(2), stats.FramesIn)
	req.Equal(uint64(1), stats.DroppedSends)
	req.Equal(uint64(1), stats.RefreshSuccess)
	req.Equal(uint64(1), stats.RefreshFailure)
	req.True(stats.Connected)
	req.NotEmpty(stats.LastFrameAt)
}

func TestCollector_Handler(t *testing.T) {
	req := require.New(t)
	monitor := NewSessionMonitor(logs.GetLoggerFromLevel(slog.LevelDebug))
	monitor.IncrFramesOut()
	monitor.SetConnected(true)

	srv := httptest.NewServer(NewCollector(monitor).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	req.NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	req.NoError(err)
	req.Contains(string(body), "chat_session_transport_frames_sent_total 1")
	req.Contains(string(body), "chat_session_transport_connected 1")
}
