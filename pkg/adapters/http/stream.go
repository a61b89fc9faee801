package http

import (
	"log/slog"
	"sync"
)

// StreamManager fans finished runs out to SSE subscribers.
// Subscribers on topic "" receive every run; the others only runs of their automaton.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // automaton ID -> set of channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a buffered channel for topic and returns it with its cancel func.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			if _, live := subs[ch]; !live {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast delivers msg to the subscribers of automatonID and to the catch-all topic.
func (sm *StreamManager) Broadcast(automatonID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{""}
	if automatonID != "" {
		topics = append(topics, automatonID)
	}

	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				slog.Warn("SSE: Client buffer full, dropping message", "automaton", automatonID)
			}
		}
	}
}
