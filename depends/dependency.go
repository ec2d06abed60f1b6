package depends

import "reflect"

// Dependency marks a function parameter as resolvable from a provider
// callable instead of a caller-supplied argument. Markers are immutable and
// are attached to the trailing parameters of a target via Inject or Resolve.
//
// The wrapped provider must be a zero-argument function. Its result shape is
// classified at resolve time (not here), because an override registered on a
// Provider may legally change the shape, e.g. replace a plain value provider
// with a scoped one. Supported shapes:
//
//	func() T                          plain value
//	func() (T, error)                 plain value, setup may fail
//	func() (T, func())                scoped: value plus release closure
//	func() (T, func() error)          scoped, release may fail
//	func() (T, func(), error)         scoped, setup may fail
//	func() (T, func() error, error)   scoped, both may fail
//
// For scoped shapes the release closure runs after the injected call exits,
// in reverse acquisition order relative to sibling dependencies. A nil
// release closure is treated as "no teardown".
type Dependency struct {
	source any
}

// Depends creates a Dependency marker for the given provider callable.
//
// It panics with ErrNotAProvider if provider is not a zero-argument function;
// a malformed marker is a wiring bug that should fail at construction, not at
// the first resolved call.
func Depends(provider any) Dependency {
	t := reflect.TypeOf(provider)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != 0 {
		panic(ErrNotAProvider)
	}
	return Dependency{source: provider}
}

// Source returns the original provider callable the marker was created with.
// Overrides are looked up under this callable's identity.
func (d Dependency) Source() any { return d.source }

// providerShape classifies the result list of an effective provider callable.
type providerShape int

const (
	shapeInvalid providerShape = iota
	shapeValue                 // func() T
	shapeValueErr              // func() (T, error)
	shapeScoped                // func() (T, release)
	shapeScopedErr             // func() (T, release, error)
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// isRelease reports whether t is a release closure type: a zero-argument
// function returning nothing or a single error.
func isRelease(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 0 || t.IsVariadic() {
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errType
	default:
		return false
	}
}

// classify maps a callable type onto one of the supported provider shapes.
func classify(t reflect.Type) providerShape {
	if t.Kind() != reflect.Func || t.NumIn() != 0 || t.IsVariadic() {
		return shapeInvalid
	}
	switch t.NumOut() {
	case 1:
		return shapeValue
	case 2:
		if t.Out(1) == errType {
			return shapeValueErr
		}
		if isRelease(t.Out(1)) {
			return shapeScoped
		}
	case 3:
		if isRelease(t.Out(1)) && t.Out(2) == errType {
			return shapeScopedErr
		}
	}
	return shapeInvalid
}
