package depends

import (
	"errors"
	"reflect"
)

// Scope collects the release half of every scoped dependency entered while
// resolving a single call. A Scope belongs to exactly one invocation and is
// never shared; independent call chains may resolve concurrently because each
// gets its own Scope.
type Scope struct {
	releases []func() error
	closed   bool
}

// enter registers a release to run when the scope closes.
func (s *Scope) enter(release func() error) {
	s.releases = append(s.releases, release)
}

// Len returns the number of releases the scope currently holds.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.releases)
}

// Close runs the registered releases in reverse acquisition order. It is
// idempotent: the second and later calls are no-ops. Release errors are
// collected and joined; a release that panics aborts the remaining releases
// (release closures are expected not to panic).
func (s *Scope) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	var errs []error
	for i := len(s.releases) - 1; i >= 0; i-- {
		if err := s.releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve produces a fully-bound argument list for fn plus the Scope holding
// the scoped resources acquired along the way.
//
// Caller-supplied args fill parameters from the left and always win over
// injection. The given deps bind, in order, to the last len(deps) parameters;
// each unbound one of those is resolved through its marker, honoring the
// Provider's overrides. A parameter with neither an argument nor a marker
// yields a MissingArgumentError.
//
// On any error the already-acquired scoped resources are released (reverse
// order) before the error is returned, and the returned Scope is nil. On
// success the caller owns the Scope and must Close it after invoking fn.
func Resolve(p *Provider, fn any, args []any, deps ...Dependency) ([]reflect.Value, *Scope, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, nil, ErrNotAFunction
	}
	if t.IsVariadic() {
		return nil, nil, ErrVariadicFunction
	}
	n := t.NumIn()
	if len(deps) > n {
		return nil, nil, ErrTooManyDependencies
	}
	if len(args) > n {
		return nil, nil, ErrTooManyArguments
	}

	first := n - len(deps) // index of the first dependency-backed parameter
	in := make([]reflect.Value, n)
	scope := &Scope{}

	for i := 0; i < n; i++ {
		param := t.In(i)
		switch {
		case i < len(args):
			v, ok := conform(reflect.ValueOf(args[i]), param)
			if !ok {
				_ = scope.Close()
				return nil, nil, ArgumentTypeError{Index: i, Want: param.String(), Got: typeName(args[i])}
			}
			in[i] = v
		case i >= first:
			v, err := resolveDependency(p, deps[i-first], scope)
			if err != nil {
				_ = scope.Close()
				return nil, nil, err
			}
			bound, ok := conform(v, param)
			if !ok {
				_ = scope.Close()
				return nil, nil, ArgumentTypeError{Index: i, Want: param.String(), Got: v.Type().String()}
			}
			in[i] = bound
		default:
			_ = scope.Close()
			return nil, nil, MissingArgumentError{Index: i}
		}
	}
	return in, scope, nil
}

// resolveDependency invokes the effective provider for d and returns the
// produced value, registering the release closure of scoped shapes on scope.
// When setup fails, the failing dependency's own release is never registered:
// setup did not complete, so there is nothing to tear down.
func resolveDependency(p *Provider, d Dependency, scope *Scope) (reflect.Value, error) {
	if d.source == nil {
		return reflect.Value{}, ErrNotAProvider
	}
	fv := reflect.ValueOf(p.effective(d.source))
	shape := classify(fv.Type())
	if shape == shapeInvalid {
		return reflect.Value{}, UnsupportedProviderError{Type: fv.Type().String()}
	}

	out := fv.Call(nil)

	switch shape {
	case shapeValueErr, shapeScopedErr:
		if last := out[len(out)-1]; !last.IsNil() {
			return reflect.Value{}, last.Interface().(error)
		}
	}
	switch shape {
	case shapeScoped, shapeScopedErr:
		if release := out[1]; !release.IsNil() {
			scope.enter(asRelease(release))
		}
	}
	return out[0], nil
}

// asRelease normalizes a release closure value (func() or func() error,
// possibly a named type of either) into func() error.
func asRelease(rv reflect.Value) func() error {
	return func() error {
		out := rv.Call(nil)
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
}

// conform adapts v to the parameter type, unwrapping one interface level when
// the provider's static result type hides a compatible concrete value.
func conform(v reflect.Value, param reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		// Untyped nil: only nilable parameter kinds accept it.
		switch param.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(param), true
		}
		return reflect.Value{}, false
	}
	if v.Type().AssignableTo(param) {
		return v, true
	}
	if v.Kind() == reflect.Interface && !v.IsNil() && v.Elem().Type().AssignableTo(param) {
		return v.Elem(), true
	}
	return reflect.Value{}, false
}

// typeName reports the dynamic type of an argument for error messages.
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
