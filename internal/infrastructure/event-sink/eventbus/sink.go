package eventbussink

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type sink struct {
	bus evbus.Bus
}

// NewEventSink returns a sink dispatching events over an in-process
// bus. Handlers registered for a topic run synchronously, in
// registration order, once per Publish call.
func NewEventSink() ports.EventSink {
	return &sink{bus: evbus.New()}
}

func (s *sink) Publish(topic string, events ...domain.Event) {
	if len(events) == 0 {
		return
	}
	s.bus.Publish(topic, events)
}

func (s *sink) RegisterHandler(topic string, handler func(events []domain.Event)) {
	if err := s.bus.Subscribe(topic, handler); err != nil {
		log.WithError(err).Warnf("failed to subscribe handler to topic %s", topic)
	}
}

func (s *sink) Close() {
	s.bus.WaitAsync()
}
