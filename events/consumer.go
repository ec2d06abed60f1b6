package events

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/modelkit/synapse/depends"
)

// Handler is an injected event handler: it takes the consumed message as its
// sole explicit argument, resolves its remaining dependencies through the
// owning component's Provider, and surfaces any failure unchanged.
type Handler func(message any) error

// Consumer owns a type-keyed table of event handlers. It decides which
// handlers to invoke based on the runtime type of the message it consumes;
// event types should describe an occurrence in past tense (ModelTrained,
// EpochCompleted).
//
// Registering twice under the same key appends, so a key holds an ordered
// list of handlers invoked in registration order. All handlers share the
// Consumer's Provider, which makes swapping their dependencies a single
// Override call.
//
// The handler and type tables carry no locking: register before dispatch
// starts, or serialize mutation externally.
type Consumer struct {
	name     string
	keys     KeyFunc
	provider *depends.Provider
	logger   zerolog.Logger
	handlers map[string][]Handler
	types    map[string]reflect.Type
}

// NewConsumer creates a Consumer. By default it gets a random uuid name, the
// HyphenCase key generator, a fresh Provider and no logging; see the Option
// constructors for overriding any of those.
func NewConsumer(opts ...Option) *Consumer {
	s := newSettings(opts)
	return &Consumer{
		name:     s.name,
		keys:     s.keys,
		provider: s.provider,
		logger:   s.logger,
		handlers: make(map[string][]Handler),
		types:    make(map[string]reflect.Type),
	}
}

// Name returns the consumer's name.
func (c *Consumer) Name() string { return c.name }

// Provider returns the live override registry used by every handler on this
// consumer. Installing an override here redirects the dependencies of
// already-registered handlers; useful for late binding and tests.
func (c *Consumer) Provider() *depends.Provider { return c.provider }

// Type returns the original leaf type registered under key, for
// introspection.
func (c *Consumer) Type(key string) (reflect.Type, bool) {
	t, ok := c.types[key]
	return t, ok
}

// Register records handler under every leaf key of annotation and returns
// the injected handler. The same injected instance is appended under each
// leaf, so a union-registered handler fires once per consumed message of
// either member type.
//
// handler must be a function whose first parameter receives the message;
// deps bind, in order, to the parameters after it.
func (c *Consumer) Register(annotation Annotation, handler any, deps ...depends.Dependency) (Handler, error) {
	if annotation == nil {
		return nil, ErrNilAnnotation
	}
	injected, err := c.injected(handler, deps)
	if err != nil {
		return nil, err
	}
	for _, leaf := range annotation.leaves() {
		key := c.keys(leafName(leaf))
		c.types[key] = leaf
		c.handlers[key] = append(c.handlers[key], injected)
		c.logger.Debug().
			Str("consumer", c.name).
			Str("key", key).
			Msg("handler registered")
	}
	return injected, nil
}

// Handle registers handler for the type of its first parameter. It is the
// usual registration entry point; reach for Register only when a handler
// reacts to a union of types, which Go annotations cannot express on the
// parameter itself.
func (c *Consumer) Handle(handler any, deps ...depends.Dependency) (Handler, error) {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func {
		return nil, ErrNilHandler
	}
	if t.NumIn() == 0 {
		return nil, HandlerShapeError{Type: t.String()}
	}
	return c.Register(leafAnnotation{t: t.In(0)}, handler, deps...)
}

// Consume invokes, in registration order, every handler registered under the
// runtime-type key of message. Unions matter only at registration: lookup
// here is by exact key. A message type with no handlers is silently dropped.
// A handler error aborts the remaining handlers and propagates unchanged.
func (c *Consumer) Consume(message any) error {
	if message == nil {
		return nil
	}
	key := keyFor(c.keys, reflect.TypeOf(message))
	handlers := c.handlers[key]
	if len(handlers) == 0 {
		c.logger.Debug().
			Str("consumer", c.name).
			Str("key", key).
			Msg("message dropped")
		return nil
	}
	c.logger.Debug().
		Str("consumer", c.name).
		Str("key", key).
		Int("handlers", len(handlers)).
		Msg("consuming message")
	for _, handler := range handlers {
		if err := handler(message); err != nil {
			return err
		}
	}
	return nil
}

// injected wraps handler so it can be invoked with the message as its sole
// explicit argument, remaining parameters resolved from deps.
func (c *Consumer) injected(handler any, deps []depends.Dependency) (Handler, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	t := reflect.TypeOf(handler)
	if t.Kind() == reflect.Func && t.NumIn() < len(deps)+1 {
		// The message slot must stay explicit; otherwise the first marker
		// would silently be shadowed by the message argument.
		return nil, HandlerShapeError{Type: t.String()}
	}
	injected, err := depends.Inject(c.provider, handler, deps...)
	if err != nil {
		return nil, err
	}
	return func(message any) error {
		_, err := injected(message)
		return err
	}, nil
}
