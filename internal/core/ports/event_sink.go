package ports

import (
	"github.com/tokenledger/tokend/internal/core/domain"
)

// EventSink receives the structured events of committed commands.
// Within one Publish call delivery order matches emission order.
type EventSink interface {
	Publish(topic string, events ...domain.Event)
	RegisterHandler(topic string, handler func(events []domain.Event))
	Close()
}
