package events

import "github.com/rs/zerolog"

// Producer fans a message out to registered consumers in registration order.
// It holds no routing logic of its own: each Consumer decides which handlers
// to invoke for the message it receives.
type Producer struct {
	consumers []*Consumer
	logger    zerolog.Logger
}

// NewProducer creates a Producer. Only the WithLogger option applies.
func NewProducer(opts ...Option) *Producer {
	s := newSettings(opts)
	return &Producer{logger: s.logger}
}

// Register appends the given consumers. Registration order is dispatch
// order. Duplicates are preserved: registering the same consumer twice means
// it receives each dispatched message twice.
func (p *Producer) Register(consumers ...*Consumer) {
	p.consumers = append(p.consumers, consumers...)
}

// Dispatch delivers message to every registered consumer, in registration
// order. The first consumer error aborts the remaining consumers and
// propagates unchanged; retry and partial-failure policy belong to the
// layer above.
func (p *Producer) Dispatch(message any) error {
	p.logger.Debug().
		Int("consumers", len(p.consumers)).
		Msg("dispatching message")
	for _, consumer := range p.consumers {
		if err := consumer.Consume(message); err != nil {
			return err
		}
	}
	return nil
}
