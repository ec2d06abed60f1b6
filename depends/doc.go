// Package depends resolves function dependencies from provider callables at
// call time, with transparent setup/teardown for providers that hold
// resources and an override registry for swapping providers in tests.
//
// A dependency is declared as a marker wrapping a zero-argument provider:
//
//	func session() (*Session, func()) {
//		s := open()
//		return s, s.Close
//	}
//
//	evaluate, _ := depends.Inject(provider, func(model Model, s *Session) error {
//		return s.Save(model)
//	}, depends.Depends(session))
//
//	_, err := evaluate(model) // session opened, used, closed — even on error
//
// Markers bind to the trailing parameters of the target, explicit arguments
// fill from the left, and explicit always wins: supplying a value for a
// dependency-backed parameter means its provider is never invoked.
//
// Overrides are installed on a Provider and are keyed by callable identity:
//
//	provider.Override(session, fakeSession)
//
// Each invocation gets its own Scope; scoped resources are released in
// reverse acquisition order when the call returns, errors, or panics. If a
// provider fails mid-resolution, the resources acquired before it are
// released before the error surfaces.
//
// The package performs no locking, no logging and no retries: install
// overrides before dispatch starts, and expect every failure as a typed
// error from the immediate call.
package depends
