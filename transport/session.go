// Package transport owns the real-time connection of a chat session.
//
// A Session holds at most one websocket, authenticated by the access token
// passed in the connection URI. Inbound frames are decoded into typed events
// and fanned out to handlers in registration order, on the read goroutine,
// in arrival order. Abnormal closures are followed by automatic reconnects
// with a linear backoff (base delay × attempt) until the attempt budget is
// spent. Sends while the socket is not open are dropped.
package transport

import (
	"chat-session/contract"
	"chat-session/domain"
	"chat-session/domain/event"
	"chat-session/errors"
	"chat-session/observability"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	DefaultConnectTimeout       = 5 * time.Second
	DefaultReconnectDelay       = time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultTypingInterval       = 2 * time.Second
)

type Config struct {
	URL                  string
	ConnectTimeout       time.Duration
	ReconnectDelay       time.Duration
	MaxReconnectAttempts int
	// TypingInterval is the minimum gap between two typing_start frames.
	TypingInterval time.Duration
}

func DefaultConfig(url string) Config {
	return Config{
		URL:                  url,
		ConnectTimeout:       DefaultConnectTimeout,
		ReconnectDelay:       DefaultReconnectDelay,
		MaxReconnectAttempts: DefaultMaxReconnectAttempts,
		TypingInterval:       DefaultTypingInterval,
	}
}

type stopper interface {
	Stop() bool
}

type Session struct {
	log      *slog.Logger
	cfg      Config
	dialer   contract.Dialer
	tokens   contract.TokenSource
	monitor  *observability.SessionMonitor
	registry *registry
	typing   *rate.Limiter

	afterFunc func(d time.Duration, f func()) stopper

	mu        sync.Mutex
	status    Status
	conn      contract.Conn
	gen       uint64
	dialGen   uint64
	token     string
	attempts  int
	reconnect stopper
	timerGen  uint64
	listeners []func(Status)
	pending   []Status

	writeMu sync.Mutex
}

// NewSession builds an idle session. tokens may be nil, in which case
// reconnects reuse the token given to the last Connect.
func NewSession(
	log *slog.Logger,
	cfg Config,
	dialer contract.Dialer,
	tokens contract.TokenSource,
	monitor *observability.SessionMonitor,
) *Session {
	return &Session{
		log:      log,
		cfg:      cfg,
		dialer:   dialer,
		tokens:   tokens,
		monitor:  monitor,
		registry: newRegistry(),
		typing:   rate.NewLimiter(rate.Every(cfg.TypingInterval), 1),
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		status: Status{State: Idle},
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) IsConnected() bool {
	return s.Status().State == Open
}

// OnStateChange registers a listener called after every transition.
// Listeners survive Disconnect.
func (s *Session) OnStateChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Connect opens the connection with token.
// It returns nil right away when already open, and fails with
// ErrConnectionInProgress while another connect is pending.
func (s *Session) Connect(ctx context.Context, token string) error {
	s.mu.Lock()
	switch s.status.State {
	case Open:
		s.mu.Unlock()
		return nil
	case Connecting:
		s.mu.Unlock()
		return errors.ErrConnectionInProgress
	}
	s.stopReconnectLocked()
	s.token = token
	s.dialGen++
	dialGen := s.dialGen
	s.setStateLocked(Status{State: Connecting})
	s.unlockAndNotify()

	return s.dial(ctx, token, dialGen, false)
}

// dial runs while the session is Connecting.
// The conn is kept only if no Disconnect or newer connect happened since
// dialGen was taken. Failed automatic attempts schedule the next one, failed
// explicit ones don't.
func (s *Session) dial(ctx context.Context, token string, dialGen uint64, auto bool) error {
	endpoint, err := Endpoint(s.cfg.URL, token)
	if err != nil {
		s.connectFailed(err, dialGen, auto)
		return err
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	conn, err := s.dialer.Dial(dialCtx, endpoint)
	if err != nil {
		if ctx.Err() == nil && stderrors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			err = errors.ErrConnectTimeout
		} else {
			err = fmt.Errorf("%w: %v", errors.ErrConnectionFailed, err)
		}
		s.connectFailed(err, dialGen, auto)
		return err
	}

	s.mu.Lock()
	if s.status.State != Connecting || s.dialGen != dialGen {
		// Disconnect won the race
		s.mu.Unlock()
		_ = conn.Close()
		return fmt.Errorf("%w: disconnected while connecting", errors.ErrConnectionFailed)
	}
	s.conn = conn
	s.gen++
	gen := s.gen
	s.attempts = 0
	s.setStateLocked(Status{State: Open})
	s.unlockAndNotify()

	s.log.Info("WebSocket connected", "url", s.cfg.URL)
	go s.readLoop(conn, gen)
	return nil
}

func (s *Session) connectFailed(err error, dialGen uint64, auto bool) {
	s.log.Warn("WebSocket connect failed", "error", err, "automatic", auto)
	s.mu.Lock()
	if s.status.State != Connecting || s.dialGen != dialGen {
		s.mu.Unlock()
		return
	}
	s.setStateLocked(Status{State: Closed, Code: websocket.CloseAbnormalClosure, Reason: err.Error()})
	if auto {
		s.scheduleReconnectLocked()
	}
	s.unlockAndNotify()
}

// Disconnect closes the connection with the normal closure code, cancels
// any pending reconnect and drops every handler.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.stopReconnectLocked()
	conn := s.conn
	s.conn = nil
	s.gen++
	s.dialGen++
	gen := s.gen
	wasIdle := s.status.State == Idle
	switch {
	case conn != nil:
		s.setStateLocked(Status{State: Closing})
	case !wasIdle:
		s.setStateLocked(Status{State: Closed, Code: websocket.CloseNormalClosure, Reason: "client disconnect"})
	}
	s.unlockAndNotify()
	s.registry.clear()

	if conn == nil {
		if !wasIdle {
			s.log.Info("WebSocket disconnected")
		}
		return
	}

	s.writeMu.Lock()
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()
	_ = conn.Close()

	s.mu.Lock()
	if s.gen == gen && s.status.State == Closing {
		s.setStateLocked(Status{State: Closed, Code: websocket.CloseNormalClosure, Reason: "client disconnect"})
	}
	s.unlockAndNotify()
	s.log.Info("WebSocket disconnected")
}

func (s *Session) readLoop(conn contract.Conn, gen uint64) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			s.closed(gen, err)
			return
		}
		s.monitor.IncrFramesIn()

		ev, err := event.Decode(frame)
		if err != nil {
			s.monitor.IncrMalformedFrames()
			s.log.Warn("Dropping inbound frame", "error", err)
			continue
		}
		s.dispatch(ev)
	}
}

func (s *Session) dispatch(ev event.Inbound) {
	for _, handler := range s.registry.snapshot(ev.Type()) {
		s.invoke(handler, ev)
	}
}

func (s *Session) invoke(handler Handler, ev event.Inbound) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Handler panicked", "type", ev.Type(), "panic", r)
		}
	}()
	handler(ev)
}

func (s *Session) closed(gen uint64, err error) {
	code, reason := websocket.CloseAbnormalClosure, err.Error()
	var closeErr *websocket.CloseError
	if stderrors.As(err, &closeErr) {
		code, reason = closeErr.Code, closeErr.Text
	}

	s.mu.Lock()
	if gen != s.gen || s.conn == nil {
		// Disconnect or a newer connection already took over
		s.mu.Unlock()
		return
	}
	_ = s.conn.Close()
	s.conn = nil
	s.setStateLocked(Status{State: Closed, Code: code, Reason: reason})
	if code != websocket.CloseNormalClosure {
		s.scheduleReconnectLocked()
	}
	s.unlockAndNotify()
	s.log.Info("WebSocket closed", "code", code, "reason", reason)
}

func (s *Session) scheduleReconnectLocked() {
	if s.attempts >= s.cfg.MaxReconnectAttempts {
		s.log.Warn("Reconnect attempts exhausted", "attempts", s.attempts)
		return
	}
	s.attempts++
	attempt := s.attempts
	delay := s.cfg.ReconnectDelay * time.Duration(attempt)
	s.monitor.IncrReconnectAttempts()
	s.log.Info("Scheduling reconnect", "attempt", attempt, "max", s.cfg.MaxReconnectAttempts, "delay", delay)

	s.timerGen++
	gen := s.timerGen
	s.reconnect = s.afterFunc(delay, func() { s.redial(gen) })
}

func (s *Session) stopReconnectLocked() {
	s.timerGen++
	if s.reconnect != nil {
		s.reconnect.Stop()
		s.reconnect = nil
	}
}

func (s *Session) redial(gen uint64) {
	s.mu.Lock()
	if s.status.State != Closed || s.timerGen != gen {
		s.mu.Unlock()
		return
	}
	s.reconnect = nil
	token := s.token
	s.dialGen++
	dialGen := s.dialGen
	s.setStateLocked(Status{State: Connecting})
	s.unlockAndNotify()

	ctx := context.Background()
	if s.tokens != nil {
		fresh, err := s.tokens.AccessToken(ctx)
		if err != nil {
			s.log.Warn("No token to reconnect with", "error", err)
			s.mu.Lock()
			if s.status.State == Connecting && s.dialGen == dialGen {
				s.setStateLocked(Status{State: Closed, Code: websocket.ClosePolicyViolation, Reason: err.Error()})
			}
			s.unlockAndNotify()
			return
		}
		token = fresh
	}

	s.mu.Lock()
	if s.dialGen != dialGen {
		s.mu.Unlock()
		return
	}
	s.token = token
	s.mu.Unlock()
	_ = s.dial(ctx, token, dialGen, true)
}

func (s *Session) setStateLocked(status Status) {
	s.status = status
	s.pending = append(s.pending, status)
}

// unlockAndNotify releases mu, then runs listeners for queued transitions.
func (s *Session) unlockAndNotify() {
	pending := s.pending
	s.pending = nil
	listeners := append([]func(Status){}, s.listeners...)
	s.mu.Unlock()

	for _, status := range pending {
		s.monitor.SetConnected(status.State == Open)
		for _, fn := range listeners {
			fn(status)
		}
	}
}

// On subscribes handler to frames of type t and returns its identity.
func (s *Session) On(t event.Type, handler Handler) HandlerID {
	return s.registry.add(t, handler)
}

// Off removes the subscription id from type t.
func (s *Session) Off(t event.Type, id HandlerID) bool {
	return s.registry.remove(t, id)
}

// HandlerCount returns the number of live subscriptions.
func (s *Session) HandlerCount() int {
	return s.registry.count()
}

// Subscribe registers a handler receiving the payload struct of T.
// The frame type is taken from T, so T must be a registered payload.
func Subscribe[T event.Inbound](s *Session, handler func(T)) HandlerID {
	var zero T
	return s.On(zero.Type(), func(ev event.Inbound) {
		if typed, ok := ev.(T); ok {
			handler(typed)
		}
	})
}

// Send writes one frame. When the socket is not open the frame is dropped
// and a diagnostic is logged.
func (s *Session) Send(t event.Type, payload any) {
	s.mu.Lock()
	conn := s.conn
	open := s.status.State == Open
	s.mu.Unlock()

	if !open || conn == nil {
		s.monitor.IncrDroppedSends()
		s.log.Debug("WebSocket is not connected, dropping frame", "type", t)
		return
	}

	frame, err := event.Encode(t, payload)
	if err != nil {
		s.log.Error("Unable to encode frame", "type", t, "error", err)
		return
	}

	s.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, frame)
	s.writeMu.Unlock()
	if err != nil {
		s.log.Warn("WebSocket write failed", "type", t, "error", err)
		return
	}
	s.monitor.IncrFramesOut()
	s.log.Debug("Frame sent", "type", t)
}

func (s *Session) SendEvent(ev event.Outbound) {
	s.Send(ev.Type(), ev)
}

func (s *Session) JoinRoom(roomID domain.RoomID) {
	s.SendEvent(event.JoinRoom{RoomID: roomID})
}

func (s *Session) LeaveRoom(roomID domain.RoomID) {
	s.SendEvent(event.LeaveRoom{RoomID: roomID})
}

func (s *Session) SendChatMessage(roomID domain.RoomID, text string) {
	s.SendEvent(event.SendMessage{RoomID: roomID, Message: text})
}

// StartTyping is throttled to one frame per TypingInterval.
func (s *Session) StartTyping(roomID domain.RoomID) {
	if !s.typing.Allow() {
		return
	}
	s.SendEvent(event.TypingStart{RoomID: roomID})
}

func (s *Session) StopTyping(roomID domain.RoomID) {
	s.SendEvent(event.TypingStop{RoomID: roomID})
}

func (s *Session) Ping() {
	s.SendEvent(event.Ping{})
}
