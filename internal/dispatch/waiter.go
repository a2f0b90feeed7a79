package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
)

// WaitStatus is the outcome of a suspended wait
type WaitStatus int

const (
	Answered WaitStatus = iota
	TimedOut
	Cancelled
)

// String returns the status name
func (s WaitStatus) String() string {
	switch s {
	case Answered:
		return "answered"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// WaitResult carries the message that resolved a wait. Message is nil unless Status is Answered.
type WaitResult struct {
	Status  WaitStatus
	Message *discord.Message
}

// Filter selects the message a waiter accepts
type Filter func(msg *discord.Message) bool

type waiter struct {
	id     uint64
	filter Filter
	ch     chan *discord.Message
}

// Waiters is the registry of suspended waits. A waiter is resolved by whichever of
// Offer or its timeout removes it from the registry first; the other side is a no-op.
type Waiters struct {
	mu      sync.Mutex
	pending []*waiter
	nextID  uint64
}

// NewWaiters creates an empty registry
func NewWaiters() *Waiters {
	return &Waiters{}
}

// Wait suspends until a message passing filter is offered, the timeout elapses or ctx is done
func (w *Waiters) Wait(ctx context.Context, filter Filter, timeout time.Duration) WaitResult {
	wt := w.add(filter)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-wt.ch:
		return WaitResult{Status: Answered, Message: msg}
	case <-timer.C:
		return w.settle(wt, TimedOut)
	case <-ctx.Done():
		return w.settle(wt, Cancelled)
	}
}

// settle removes wt after its timer or context fired. If Offer already claimed it,
// the claimed message wins.
func (w *Waiters) settle(wt *waiter, status WaitStatus) WaitResult {
	if w.remove(wt.id) {
		return WaitResult{Status: status}
	}
	return WaitResult{Status: Answered, Message: <-wt.ch}
}

// Offer hands msg to the oldest waiter whose filter accepts it and reports whether one did
func (w *Waiters) Offer(msg *discord.Message) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, wt := range w.pending {
		if !wt.filter(msg) {
			continue
		}
		w.pending = append(w.pending[:i], w.pending[i+1:]...)
		wt.ch <- msg
		return true
	}
	return false
}

// Len returns the number of suspended waits
func (w *Waiters) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Waiters) add(filter Filter) *waiter {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextID++
	wt := &waiter{id: w.nextID, filter: filter, ch: make(chan *discord.Message, 1)}
	w.pending = append(w.pending, wt)
	return wt
}

func (w *Waiters) remove(id uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, wt := range w.pending {
		if wt.id == id {
			w.pending = append(w.pending[:i], w.pending[i+1:]...)
			return true
		}
	}
	return false
}
