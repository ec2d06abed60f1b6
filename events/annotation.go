package events

import (
	"reflect"
	"strings"
	"unicode"
)

// KeyFunc canonicalizes a bare type name into a lookup key.
type KeyFunc func(name string) string

// HyphenCase is the default KeyFunc. It inserts a hyphen before every
// interior uppercase rune and lowercases the result, so "ModelTrained"
// becomes "model-trained".
func HyphenCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Annotation describes the event type or types a handler reacts to. Build
// one with Of for a single type and Union to react to several:
//
//	c.Register(events.Union(events.Of[ModelTrained](), events.Of[ModelEvaluated]()), handler)
//
// Registration expands an Annotation into concrete leaf types, left to
// right, and records the handler under every leaf's key.
type Annotation interface {
	leaves() []reflect.Type
}

type leafAnnotation struct{ t reflect.Type }

func (a leafAnnotation) leaves() []reflect.Type { return expand(a.t) }

type unionAnnotation struct{ members []Annotation }

func (a unionAnnotation) leaves() []reflect.Type {
	var out []reflect.Type
	for _, member := range a.members {
		if member == nil {
			continue
		}
		out = append(out, member.leaves()...)
	}
	return out
}

// Of builds the Annotation for a single type. Composite types unwrap to
// their element type (*T, []T, [N]T and chan T all register T; maps register
// both key and value types), and instantiated generics such as
// Batch[ModelTrained] register under their origin name ("batch").
func Of[T any]() Annotation {
	return leafAnnotation{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// Union builds the Annotation for a set of member annotations. Expansion is
// order-stable: members are visited left to right, nesting allowed.
func Union(members ...Annotation) Annotation {
	return unionAnnotation{members: members}
}

// expand unwraps a type into its concrete leaf types. Anything that is not a
// recognized composite shape falls through as a plain leaf, interfaces
// included: Go cannot enumerate an interface's implementors, so unions are
// always spelled explicitly with Union.
func expand(t reflect.Type) []reflect.Type {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return expand(t.Elem())
	case reflect.Map:
		return append(expand(t.Key()), expand(t.Elem())...)
	}
	return []reflect.Type{t}
}

// leafName returns the bare name used for key generation. Instantiated
// generics ("Batch[pkg.ModelTrained]") reduce to their origin name; unnamed
// types fall back to their kind, mirroring how an untyped container message
// is keyed at dispatch time.
func leafName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		name = t.Kind().String()
	}
	return name
}

// keyFor computes the dispatch key for a runtime message type: pointers are
// unwrapped so *ModelTrained and ModelTrained share a key, then the bare
// name goes through the consumer's KeyFunc. No union expansion happens here;
// unions exist only at registration time.
func keyFor(keys KeyFunc, t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return keys(leafName(t))
}
