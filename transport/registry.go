package transport

import (
	"chat-session/domain/event"
	"slices"
	"sync"
)

// Handler receives one decoded inbound frame.
type Handler func(ev event.Inbound)

// HandlerID identifies one subscription for Off.
type HandlerID uint64

type subscription struct {
	id HandlerID
	fn Handler
}

// registry keeps handlers per type in registration order.
type registry struct {
	mu       sync.Mutex
	next     HandlerID
	handlers map[event.Type][]subscription
}

func newRegistry() *registry {
	return &registry{handlers: make(map[event.Type][]subscription)}
}

func (r *registry) add(t event.Type, fn Handler) HandlerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.handlers[t] = append(r.handlers[t], subscription{id: r.next, fn: fn})
	return r.next
}

func (r *registry) remove(t event.Type, id HandlerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.handlers[t]
	for i, sub := range subs {
		if sub.id != id {
			continue
		}
		r.handlers[t] = slices.Delete(subs, i, i+1)
		if len(r.handlers[t]) == 0 {
			delete(r.handlers, t)
		}
		return true
	}
	return false
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[event.Type][]subscription)
}

// snapshot returns the handlers registered for t right now.
// Handlers added while a frame is dispatched only see the next frames.
func (r *registry) snapshot(t event.Type) []Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.handlers[t]
	out := make([]Handler, len(subs))
	for i, sub := range subs {
		out[i] = sub.fn
	}
	return out
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, subs := range r.handlers {
		n += len(subs)
	}
	return n
}
