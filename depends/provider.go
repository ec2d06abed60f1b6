package depends

import "reflect"

// Provider holds dependency overrides consulted on every resolution.
//
// The mapping is keyed by callable identity (the function's code pointer),
// not by name, and the last write wins. Note that distinct closures created
// from the same function literal share a code pointer and therefore share an
// override slot; providers are expected to be distinct named functions or
// distinct literals, which is the common case.
//
// Overrides are typically installed by tests or configuration code. The
// mapping carries no locking: mutate it before dispatch starts, or serialize
// access externally. Callers are responsible for restoring or clearing
// overrides between tests.
type Provider struct {
	overrides map[uintptr]any
}

// NewProvider creates a Provider with no overrides.
func NewProvider() *Provider {
	return &Provider{overrides: make(map[uintptr]any)}
}

// Override redirects resolutions of original to override and returns the
// Provider for chaining. No signature validation is performed; a shape
// mismatch surfaces as an UnsupportedProviderError at resolve time.
//
// Both arguments must be functions; anything else panics with ErrNotAProvider.
func (p *Provider) Override(original, override any) *Provider {
	if reflect.TypeOf(override) == nil || reflect.TypeOf(override).Kind() != reflect.Func {
		panic(ErrNotAProvider)
	}
	p.overrides[callableKey(original)] = override
	return p
}

// Restore removes the override for original, if any, restoring the original
// provider's behavior. It returns the Provider for chaining.
func (p *Provider) Restore(original any) *Provider {
	delete(p.overrides, callableKey(original))
	return p
}

// Reset removes every override.
func (p *Provider) Reset() {
	clear(p.overrides)
}

// Overridden reports whether original currently has an override.
func (p *Provider) Overridden(original any) bool {
	if p == nil {
		return false
	}
	_, ok := p.overrides[callableKey(original)]
	return ok
}

// Overrides returns the number of installed overrides.
func (p *Provider) Overrides() int {
	if p == nil {
		return 0
	}
	return len(p.overrides)
}

// effective returns the callable to invoke for source: the registered
// override when present, source itself otherwise. A nil Provider resolves
// everything to the original.
func (p *Provider) effective(source any) any {
	if p == nil || len(p.overrides) == 0 {
		return source
	}
	if override, ok := p.overrides[callableKey(source)]; ok {
		return override
	}
	return source
}

// callableKey returns the identity key for a provider callable.
func callableKey(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(ErrNotAProvider)
	}
	return v.Pointer()
}
