// Package events routes messages to dependency-injected handlers keyed by
// the message's type.
//
// A Consumer owns a table from type key to handlers. Handlers declare the
// event they react to through their first parameter and any dependencies
// through trailing parameters backed by depends markers:
//
//	consumer := events.NewConsumer(events.WithName("metrics"))
//
//	consumer.Handle(func(event ModelTrained, repo *Repository) error {
//		return repo.Save(event.Model)
//	}, depends.Depends(repository))
//
// A handler that reacts to several event types registers under an explicit
// union annotation:
//
//	consumer.Register(
//		events.Union(events.Of[ModelTrained](), events.Of[ModelEvaluated]()),
//		onModelIterated,
//	)
//
// Type names normalize to hyphen-case keys ("ModelTrained" becomes
// "model-trained"); Consume computes the same key from the message's runtime
// type and invokes the handlers in registration order. Messages with no
// registered handlers are dropped silently.
//
// A Producer fans a message out to consumers in registration order. The
// Publisher/Subscriber pair does the same with explicit topic strings
// instead of type keys, for payloads that are opaque to the router.
//
// Handler errors (and panics) propagate to the dispatcher's caller
// unchanged; the package never logs, retries or isolates failures. The
// optional zerolog logger traces registration and dispatch at debug level
// only.
package events
