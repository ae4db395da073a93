package events

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	TypeContentSynced = "content_synced"
	TypeApodRefreshed = "apod_refreshed"
)

// Event is one broadcast update. Payload holds event-specific fields such as
// the synced date or the row count.
type Event struct {
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Bus fans events out to subscribers by type. Delivery is best-effort; a
// slow subscriber loses events rather than blocking publishers.
type Bus struct {
	mu            sync.RWMutex
	subs          map[string][]chan Event
	droppedFanout uint64
}

func NewBus() *Bus {
	return &Bus{subs: map[string][]chan Event{}}
}

// Subscribe returns a channel receiving events of one type, or of every
// type when eventType is empty, plus a cancel func that removes the
// subscription. Callers with a bounded lifetime (one websocket connection,
// one request) must call cancel or the channel stays registered forever.
func (b *Bus) Subscribe(eventType string, buf int) (<-chan Event, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan Event, buf)
	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], ch)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[eventType]
			for i, c := range list {
				if c == ch {
					b.subs[eventType] = append(list[:i], list[i+1:]...)
					break
				}
			}
			if len(b.subs[eventType]) == 0 {
				delete(b.subs, eventType)
			}
		})
	}
	return ch, cancel
}

// Subscribers reports the number of registered channels across all types.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, list := range b.subs {
		n += len(list)
	}
	return n
}

func (b *Bus) Publish(evt Event) {
	if b == nil {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[evt.Type] {
		b.send(ch, evt)
	}
	for _, ch := range b.subs[""] {
		b.send(ch, evt)
	}
}

func (b *Bus) send(ch chan Event, evt Event) {
	select {
	case ch <- evt:
	default:
		// Drop when subscriber is slow; the bus must not block.
		atomic.AddUint64(&b.droppedFanout, 1)
	}
}

func (b *Bus) Dropped() uint64 {
	return atomic.LoadUint64(&b.droppedFanout)
}
