// Package event carries locomotion state-change notifications to external
// consumers (animation, audio, debug UI).
package event

import (
	"log/slog"
	"sync"
)

type Kind string

const (
	Jump        Kind = "jump"
	Land        Kind = "land"
	CrouchStart Kind = "crouch_start"
	CrouchEnd   Kind = "crouch_end"
	SlideStart  Kind = "slide_start"
	SlideEnd    Kind = "slide_end"
	VaultStart  Kind = "vault_start"
	VaultEnd    Kind = "vault_end"
)

type Handler func(evt any)

// Bus dispatches events synchronously on the publishing goroutine, in
// subscription order. The locomotion core is single-threaded per tick, so
// handlers observe a consistent mid-tick state and never race the simulation.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

func (b *Bus) Subscribe(kind Kind, handler Handler) {
	if b == nil || handler == nil {
		return
	}
	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], handler)
	b.mu.Unlock()
}

func (b *Bus) Publish(kind Kind, evt any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[kind]))
	copy(handlers, b.handlers[kind])
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(kind, handler, evt)
	}
}

func dispatch(kind Kind, handler Handler, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", string(kind), "panic", r)
		}
	}()
	handler(evt)
}
