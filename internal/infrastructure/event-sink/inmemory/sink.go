package inmemorysink

import (
	"sync"

	"github.com/tokenledger/tokend/internal/core/domain"
)

// Sink buffers every published event and dispatches to handlers
// synchronously. Meant for tests and one-shot CLI runs where events
// are read back after the command returns.
type Sink struct {
	lock     sync.RWMutex
	handlers map[string][]func(events []domain.Event)
	buffer   map[string][]domain.Event
}

func NewEventSink() *Sink {
	return &Sink{
		handlers: make(map[string][]func(events []domain.Event)),
		buffer:   make(map[string][]domain.Event),
	}
}

func (s *Sink) Publish(topic string, events ...domain.Event) {
	if len(events) == 0 {
		return
	}

	s.lock.Lock()
	s.buffer[topic] = append(s.buffer[topic], events...)
	handlers := s.handlers[topic]
	s.lock.Unlock()

	for _, handler := range handlers {
		handler(events)
	}
}

func (s *Sink) RegisterHandler(topic string, handler func(events []domain.Event)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handlers[topic] = append(s.handlers[topic], handler)
}

// Events returns the events published on topic so far, in order.
func (s *Sink) Events(topic string) []domain.Event {
	s.lock.RLock()
	defer s.lock.RUnlock()
	events := make([]domain.Event, len(s.buffer[topic]))
	copy(events, s.buffer[topic])
	return events
}

func (s *Sink) Close() {}
