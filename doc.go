// Package synapse wires application-level side effects without hard-coding
// their dependencies or delivery order.
//
// The module is split into two small, tightly coupled packages:
//
//   - depends: declares function dependencies as markers backed by provider
//     callables, resolves them at call time (honoring overrides), and manages
//     setup/teardown for providers that hold resources.
//
//   - events: routes a message to every handler registered for its type,
//     where each handler is itself dependency-injected through depends.
//
// Call sites declare what they need ("a database session", "a trained model")
// and which event types they react to; a composition root decides how those
// needs are satisfied. Swapping a real dependency for a fake is a single
// Override call on a Provider, which makes the whole surface test-friendly.
//
// Wiring stays explicit: every Consumer and every injected function receives
// its Provider explicitly. There is no global container and no graph solver.
//
// Start with the examples under examples/training for end-to-end wiring style.
package synapse
