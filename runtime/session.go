// Package runtime wires the chat session together.
// It owns construction and lifecycle, without containing business rules.
package runtime

import (
	"chat-session/auth"
	"chat-session/chat"
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/moderation"
	"chat-session/observability"
	"chat-session/projection"
	"chat-session/rest"
	"chat-session/runtime/workers"
	"chat-session/services"
	"chat-session/transport"
	"context"
	"log/slog"
	"sync"
	"time"
)

type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	Retry          rest.RetryPolicy
	Transport      transport.Config
	// Dialer defaults to a gorilla websocket dialer.
	Dialer contract.Dialer
	Store  contract.TokenStore
	Filter *moderation.Filter
	Room   domain.RoomID

	PingInterval         time.Duration
	RefreshCheckInterval time.Duration
	RefreshSkew          time.Duration
	RestartInterval      time.Duration
}

// Session is one signed-in chat client: authority, transport, timeline and
// the services driving them.
type Session struct {
	log        *slog.Logger
	room       domain.RoomID
	supervisor *workers.Supervisor

	mu          sync.Mutex
	stopWorkers context.CancelFunc
	workersDone chan struct{}

	Monitor   *observability.SessionMonitor
	Collector *observability.Collector
	Authority *auth.Authority
	Transport *transport.Session
	Timeline  *projection.Timeline
	Auth      *services.AuthService
	Chat      *services.ChatService
}

func NewSession(log *slog.Logger, opts Options) *Session {
	room := opts.Room
	if room == "" {
		room = domain.DefaultRoom
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = transport.NewWebsocketDialer(opts.Transport.ConnectTimeout)
	}

	monitor := observability.NewSessionMonitor(log)
	restClient := rest.NewClient(log, opts.BaseURL, opts.RequestTimeout, opts.Retry)
	authority := auth.NewAuthority(log, opts.Store, restClient, monitor)
	ws := transport.NewSession(log, opts.Transport, dialer, authority, monitor)
	timeline := projection.NewTimeline(room, opts.Filter)

	s := &Session{
		log:        log,
		room:       room,
		supervisor: workers.NewSupervisor(log).WithRestartDelay(opts.RestartInterval),
		Monitor:    monitor,
		Collector:  observability.NewCollector(monitor),
		Authority:  authority,
		Transport:  ws,
		Timeline:   timeline,
		Auth:       services.NewAuthService(log, restClient, authority, opts.Store),
		Chat:       services.NewChatService(log, authority, chat.NewClient(restClient), ws, timeline),
	}

	// A wiped session must not keep a socket authenticated with a dead token
	authority.OnCleared(ws.Disconnect)

	s.supervisor.Add(
		workers.NewHeartbeatWorker(log, ws, opts.PingInterval),
		workers.NewTokenRefreshWorker(log, authority, opts.RefreshCheckInterval, opts.RefreshSkew),
	)
	return s
}

// Start connects with the stored access token, joins the configured room
// and launches the background workers. It fails when no session is stored
// or the socket cannot be opened.
func (s *Session) Start(ctx context.Context) error {
	token, err := s.Authority.AccessToken(ctx)
	if err != nil {
		return err
	}

	if s.Transport.HandlerCount() == 0 {
		s.bind(s.Timeline)
	}
	if err = s.Transport.Connect(ctx, token); err != nil {
		return err
	}

	if err = s.Chat.Join(ctx, s.room); err != nil {
		s.log.Warn("Joined room with errors", "room", s.room, "error", err)
	}

	s.startWorkers(ctx)
	return nil
}

// startWorkers launches the supervisor unless it is already running.
func (s *Session) startWorkers(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopWorkers != nil {
		return
	}

	workersCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.stopWorkers, s.workersDone = cancel, done
	go func() {
		defer close(done)
		defer cancel()
		s.supervisor.Run(workersCtx)

		s.mu.Lock()
		if s.workersDone == done {
			s.stopWorkers, s.workersDone = nil, nil
		}
		s.mu.Unlock()
	}()
}

// haltWorkers cancels the supervisor and waits for every worker to return.
func (s *Session) haltWorkers() {
	s.mu.Lock()
	cancel, done := s.stopWorkers, s.workersDone
	s.stopWorkers, s.workersDone = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// bind routes room events to sink.
func (s *Session) bind(sink contract.EventSink) {
	consume := func(ev event.Inbound) {
		if err := sink.Consume(context.Background(), ev); err != nil {
			s.log.Warn("Event not applied", "type", ev.Type(), "error", err)
		}
	}
	for _, t := range []event.Type{event.TypeNewMessage, event.TypeUserJoined, event.TypeUserLeft, event.TypeRoomUsers} {
		s.Transport.On(t, consume)
	}
	transport.Subscribe(s.Transport, func(e event.AuthError) {
		s.log.Warn("Server rejected the websocket token", "message", e.Message)
	})
}

// Stop ends the workers and closes the socket.
func (s *Session) Stop() {
	s.haltWorkers()
	s.Transport.Disconnect()
}

// Stats describes the live session for diagnostics.
func (s *Session) Stats() map[string]any {
	return map[string]any{
		"state":    s.Transport.Status().String(),
		"room":     s.Timeline.Room().String(),
		"messages": len(s.Timeline.Messages()),
		"members":  len(s.Timeline.Members()),
		"handlers": s.Transport.HandlerCount(),
	}
}
