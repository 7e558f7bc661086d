package pubsub

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Token identifies one Hub subscription.
type Token string

// Handler reacts to a dispatched event. A non-nil return value is handed back
// to the dispatcher for routing.
type Handler[T any] func(event T) tea.Msg

type hubEntry[T any] struct {
	token   Token
	handler Handler[T]
}

// Hub is a synchronous subscription registry keyed by token.
//
// A Hub is owned by the Bubble Tea update loop and is not safe for concurrent
// use. Dispatch runs handlers inline, in subscription order.
type Hub[T any] struct {
	entries []hubEntry[T]
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{}
}

// Subscribe registers fn and returns the token that cancels it.
func (h *Hub[T]) Subscribe(fn Handler[T]) Token {
	tok := Token(uuid.NewString())
	h.entries = append(h.entries, hubEntry[T]{token: tok, handler: fn})
	return tok
}

// Unsubscribe removes the subscription for tok.
// Returns false when tok is unknown or already removed.
func (h *Hub[T]) Unsubscribe(tok Token) bool {
	if h == nil || tok == "" {
		return false
	}
	for i, e := range h.entries {
		if e.token == tok {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Active reports whether tok is currently subscribed.
func (h *Hub[T]) Active(tok Token) bool {
	if h == nil {
		return false
	}
	for _, e := range h.entries {
		if e.token == tok {
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (h *Hub[T]) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Dispatch delivers event to every subscriber and collects the messages they
// return. Subscriptions added or removed by a handler take effect on the next
// dispatch.
func (h *Hub[T]) Dispatch(event T) []tea.Msg {
	if h == nil || len(h.entries) == 0 {
		return nil
	}
	snapshot := make([]hubEntry[T], len(h.entries))
	copy(snapshot, h.entries)

	var out []tea.Msg
	for _, e := range snapshot {
		if msg := e.handler(event); msg != nil {
			out = append(out, msg)
		}
	}
	return out
}
