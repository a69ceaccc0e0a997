package runtime

import (
	"chat-session/repositories"
	"chat-session/rest"
	"chat-session/runtime/workers"
	"chat-session/transport"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// parkedWorker blocks until its context ends.
type parkedWorker struct {
	started atomic.Int32
	active  atomic.Int32
}

func (w *parkedWorker) Run(ctx context.Context) error {
	w.started.Add(1)
	w.active.Add(1)
	defer w.active.Add(-1)
	<-ctx.Done()
	return nil
}

func newWorkerSession(t *testing.T) (*Session, *parkedWorker) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	session := NewSession(log, Options{
		BaseURL:   "http://chat.local",
		Retry:     rest.NoRetry,
		Transport: transport.DefaultConfig("ws://chat.local/ws"),
		Store:     repositories.NewMemoryTokenStore(),
	})

	worker := &parkedWorker{}
	supervisor := workers.NewSupervisor(log)
	supervisor.Add(worker)
	session.supervisor = supervisor
	t.Cleanup(session.Stop)
	return session, worker
}

func TestSession_StopRightAfterStartEndsWorkers(t *testing.T) {
	req := require.New(t)
	session, worker := newWorkerSession(t)

	session.startWorkers(context.Background())
	session.haltWorkers()

	req.Equal(int32(0), worker.active.Load())
	req.Nil(session.stopWorkers)
}

func TestSession_WorkersRestartAfterStop(t *testing.T) {
	req := require.New(t)
	session, worker := newWorkerSession(t)

	session.startWorkers(context.Background())
	req.Eventually(func() bool { return worker.active.Load() == 1 }, time.Second, time.Millisecond)
	// Already running
	session.startWorkers(context.Background())
	session.haltWorkers()
	req.Equal(int32(0), worker.active.Load())

	session.startWorkers(context.Background())
	req.Eventually(func() bool { return worker.active.Load() == 1 }, time.Second, time.Millisecond)
	req.Equal(int32(2), worker.started.Load())
}

func TestSession_WorkersRestartAfterParentCancel(t *testing.T) {
	req := require.New(t)
	session, worker := newWorkerSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	session.startWorkers(ctx)
	req.Eventually(func() bool { return worker.active.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	req.Eventually(func() bool {
		session.mu.Lock()
		defer session.mu.Unlock()
		return session.stopWorkers == nil
	}, time.Second, time.Millisecond)

	session.startWorkers(context.Background())
	req.Eventually(func() bool { return worker.started.Load() == 2 }, time.Second, time.Millisecond)
}
