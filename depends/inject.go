package depends

import "reflect"

// Injected is the wrapper returned by Inject. Calling it with a partial
// argument list resolves the remaining dependency-backed parameters, invokes
// the target inside the resolved scope, and tears the scope down on every
// exit path, including a panicking target.
//
// The returned value is the target's first result (nil when the target
// returns nothing, or only an error). The returned error is, in order of
// precedence: a resolution error, the target's own error result, or a joined
// release error from scope teardown.
type Injected func(args ...any) (any, error)

// Inject wraps fn so that its trailing parameters are filled from deps at
// call time, using p for override lookups. Explicit arguments passed to the
// wrapper always take precedence over injection, so callers may still supply
// a dependency-backed parameter by hand; its provider is then never invoked.
//
// fn must be a non-variadic function returning at most a value and an error.
// Shape problems are reported here, at wiring time, not at the first call.
func Inject(p *Provider, fn any, deps ...Dependency) (Injected, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, ErrNotAFunction
	}
	if t.IsVariadic() {
		return nil, ErrVariadicFunction
	}
	if len(deps) > t.NumIn() {
		return nil, ErrTooManyDependencies
	}
	switch t.NumOut() {
	case 0, 1:
	case 2:
		if t.Out(1) != errType {
			return nil, ResultShapeError{Type: t.String()}
		}
	default:
		return nil, ResultShapeError{Type: t.String()}
	}

	fv := reflect.ValueOf(fn)
	onlyError := t.NumOut() == 1 && t.Out(0) == errType

	wrapper := func(args ...any) (result any, err error) {
		in, scope, rerr := Resolve(p, fn, args, deps...)
		if rerr != nil {
			return nil, rerr
		}
		defer func() {
			// Teardown runs even when fn panics. A release error never
			// masks the call's own error.
			if cerr := scope.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		out := fv.Call(in)
		switch len(out) {
		case 1:
			if onlyError {
				if !out[0].IsNil() {
					err = out[0].Interface().(error)
				}
				return nil, err
			}
			result = out[0].Interface()
		case 2:
			result = out[0].Interface()
			if !out[1].IsNil() {
				err = out[1].Interface().(error)
			}
		}
		return result, err
	}
	return wrapper, nil
}

// MustInject is Inject that panics on wiring errors. Useful in composition
// roots and tests where a bad target is fatal anyway.
func MustInject(p *Provider, fn any, deps ...Dependency) Injected {
	injected, err := Inject(p, fn, deps...)
	if err != nil {
		panic(err)
	}
	return injected
}
