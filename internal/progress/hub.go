package progress

import (
	"sync"
	"time"
)

// Stage names emitted over the lifetime of one assessment run.
const (
	StageSpecialistsStarted   = "specialists_started"
	StageSpecialistDone       = "specialist_done"
	StageAggregated           = "aggregated"
	StageQuestionsOutstanding = "questions_outstanding"
	StageAnswerProcessed      = "answer_processed"
	StageReconciled           = "reconciled"
)

// Event is one progress update for a run.
type Event struct {
	Stage   string    `json:"stage"`
	Role    string    `json:"role,omitempty"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// Sink receives progress events. Emit must not block.
type Sink interface {
	Emit(Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// Hub fans progress events out to websocket subscribers keyed by run
// fingerprint. Slow subscribers drop events rather than stall the run.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a listener for the given key. The returned cancel
// function removes the subscription and closes the channel.
func (h *Hub) Subscribe(key string) (<-chan Event, func()) {
	ch := make(chan Event, 32)
	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan Event]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[key]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of key. Full subscriber
// buffers are skipped.
func (h *Hub) Publish(key string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[key] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// KeyedSink binds a hub to one run key so callers can pass a plain Sink.
type KeyedSink struct {
	Hub *Hub
	Key string
}

func (s KeyedSink) Emit(ev Event) {
	s.Hub.Publish(s.Key, ev)
}
