package internal

import (
	"chat-session/observability"
	"chat-session/repositories"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type StatsProvider func() map[string]any

// EntriesProvider lists the stored session keys, masked.
type EntriesProvider func() ([]repositories.StoredEntry, error)

// DebugServer exposes metrics and session diagnostics on localhost.
type DebugServer struct {
	log    *slog.Logger
	server *http.Server
}

func NewDebugServer(
	log *slog.Logger,
	port int,
	collector *observability.Collector,
	monitor *observability.SessionMonitor,
	stats StatsProvider,
	entries EntriesProvider,
) *DebugServer {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", collector.Handler())
	mux.HandleFunc("GET /debug/session", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{"counters": monitor.Snapshot()}
		if stats != nil {
			for k, v := range stats() {
				data[k] = v
			}
		}
		writeJSON(w, http.StatusOK, data)
	})
	mux.HandleFunc("GET /debug/store", func(w http.ResponseWriter, r *http.Request) {
		if entries == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no store attached"})
			return
		}
		items, err := entries()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, items)
	})

	return &DebugServer{
		log: log,
		server: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (d *DebugServer) Handler() http.Handler {
	return d.server.Handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (d *DebugServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}
	d.log.Info("Debug server started", "address", listener.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := d.server.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
