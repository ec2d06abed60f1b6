package events

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modelkit/synapse/depends"
)

// settings carries the construction knobs shared by Consumer, Subscriber,
// Producer and Publisher. Each constructor reads the subset it cares about.
type settings struct {
	name     string
	keys     KeyFunc
	provider *depends.Provider
	logger   zerolog.Logger
}

// Option configures a Consumer, Subscriber, Producer or Publisher.
type Option func(*settings)

// WithName sets a stable component name. The default is a random uuid, which
// keeps anonymous components distinguishable in logs.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithKeyFunc replaces the default HyphenCase key generator. Only Consumers
// use it; Subscribers route by explicit topic strings.
func WithKeyFunc(keys KeyFunc) Option {
	return func(s *settings) {
		if keys != nil {
			s.keys = keys
		}
	}
}

// WithProvider shares an existing override registry instead of the fresh one
// each component creates by default.
func WithProvider(p *depends.Provider) Option {
	return func(s *settings) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithLogger enables debug-level dispatch tracing. Logging is disabled by
// default and never replaces error propagation: handler errors surface to
// the caller regardless.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func newSettings(opts []Option) settings {
	s := settings{
		name:   uuid.NewString(),
		keys:   HyphenCase,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.provider == nil {
		s.provider = depends.NewProvider()
	}
	return s
}
