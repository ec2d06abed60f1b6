package events

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/modelkit/synapse/depends"
)

// Subscriber reacts to messages routed to it by topic. Where a Consumer
// derives the key from the message's runtime type, a Subscriber's handlers
// are keyed by explicit topic strings chosen at subscription time; the
// message itself stays opaque.
//
// Handlers go through the same injection path as Consumer handlers and share
// the Subscriber's Provider.
type Subscriber struct {
	name     string
	provider *depends.Provider
	logger   zerolog.Logger
	handlers map[string][]Handler
}

// NewSubscriber creates a Subscriber. WithName, WithProvider and WithLogger
// apply; topics make KeyFunc irrelevant here.
func NewSubscriber(opts ...Option) *Subscriber {
	s := newSettings(opts)
	return &Subscriber{
		name:     s.name,
		provider: s.provider,
		logger:   s.logger,
		handlers: make(map[string][]Handler),
	}
}

// Name returns the subscriber's name.
func (s *Subscriber) Name() string { return s.name }

// Provider returns the live override registry shared by this subscriber's
// handlers.
func (s *Subscriber) Provider() *depends.Provider { return s.provider }

// Subscribe appends an injected handler under topic and returns it. Like
// Consumer.Register, subscribing twice appends rather than replaces.
func (s *Subscriber) Subscribe(topic string, handler any, deps ...depends.Dependency) (Handler, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func {
		return nil, ErrNilHandler
	}
	if t.NumIn() < len(deps)+1 {
		return nil, HandlerShapeError{Type: t.String()}
	}
	injected, err := depends.Inject(s.provider, handler, deps...)
	if err != nil {
		return nil, err
	}
	wrapped := Handler(func(message any) error {
		_, err := injected(message)
		return err
	})
	s.handlers[topic] = append(s.handlers[topic], wrapped)
	s.logger.Debug().
		Str("subscriber", s.name).
		Str("topic", topic).
		Msg("handler subscribed")
	return wrapped, nil
}

// Receive invokes the handlers subscribed under topic, in subscription
// order, with the message as sole explicit argument. An unknown topic is
// silently dropped; a handler error aborts the rest and propagates.
func (s *Subscriber) Receive(topic string, message any) error {
	handlers := s.handlers[topic]
	if len(handlers) == 0 {
		s.logger.Debug().
			Str("subscriber", s.name).
			Str("topic", topic).
			Msg("message dropped")
		return nil
	}
	for _, handler := range handlers {
		if err := handler(message); err != nil {
			return err
		}
	}
	return nil
}

// Publisher fans a message out to registered subscribers under a topic.
type Publisher struct {
	subscribers []*Subscriber
	logger      zerolog.Logger
}

// NewPublisher creates a Publisher. Only the WithLogger option applies.
func NewPublisher(opts ...Option) *Publisher {
	s := newSettings(opts)
	return &Publisher{logger: s.logger}
}

// Register appends the given subscribers. Registration order is delivery
// order and duplicates are preserved.
func (p *Publisher) Register(subscribers ...*Subscriber) {
	p.subscribers = append(p.subscribers, subscribers...)
}

// Publish delivers message under topic to every registered subscriber in
// registration order. Subscribers without handlers for the topic ignore it.
// The first subscriber error aborts the remaining deliveries.
func (p *Publisher) Publish(topic string, message any) error {
	p.logger.Debug().
		Str("topic", topic).
		Int("subscribers", len(p.subscribers)).
		Msg("publishing message")
	for _, subscriber := range p.subscribers {
		if err := subscriber.Receive(topic, message); err != nil {
			return err
		}
	}
	return nil
}
