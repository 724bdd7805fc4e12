package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every typed event emitted by the engine. Events
// are emitted only after the state change they describe has been committed,
// and each event carries enough of the post-state to be consumed without
// querying the engine back.
type Event interface {
	EventType() string
}

// Envelope wraps an emitted event with its global sequence number. The
// sequence is assigned in commit order: an event with a lower sequence
// describes a state change that committed before one with a higher sequence.
type Envelope struct {
	Sequence uint64    `json:"sequence"`
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	Event    Event     `json:"event"`
}

// Bus is an in-process fan-out of engine events. Subscribers receive
// envelopes on buffered channels; a subscriber that falls behind has
// events dropped rather than blocking the emitting ledger.
type Bus struct {
	mu   sync.Mutex
	seq  uint64
	subs map[uint64]chan Envelope
	next uint64
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]chan Envelope)}
}

// Emit assigns the next sequence number to the event and delivers it to all
// current subscribers. Callers emit after their state mutation has been
// committed, while still holding the resource lock, so sequence order
// matches commit order per resource.
func (b *Bus) Emit(e Event) Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	env := Envelope{
		Sequence: b.seq,
		ID:       uuid.NewString(),
		Time:     time.Now().UTC(),
		Type:     e.EventType(),
		Event:    e,
	}
	for _, ch := range b.subs {
		select {
		case ch <- env:
		default:
			// Slow subscriber: drop instead of stalling a ledger commit.
		}
	}
	return env
}

// Subscribe registers a new subscriber with the given channel buffer size
// and returns the receive channel plus a cancel function.
func (b *Bus) Subscribe(buffer int) (<-chan Envelope, func()) {
	if buffer <= 0 {
		buffer = 64
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Envelope, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Sequence returns the sequence number of the most recently emitted event.
func (b *Bus) Sequence() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
