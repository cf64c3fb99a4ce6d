package container

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// ── Identity ──────────────────────────────────────────────────────────────────

var nextID atomic.Uint64

// tokenKey is the identity of a token. Tokens compare by pointer, never by
// description.
type tokenKey struct {
	id          uint64
	description string
}

func newTokenKey(description string) *tokenKey {
	return &tokenKey{id: nextID.Add(1), description: description}
}

// Dependency is anything that can be requested from a Container: a Token or
// an OptionalToken.
type Dependency interface {
	key() *tokenKey
	optional() bool
	Description() string
}

// ── Token ─────────────────────────────────────────────────────────────────────

// Token is a unique, typed identifier of a dependency.
//
//	var Port = container.NewToken[int]("port")
//	c.Bind(Port).ToConstant(8080)
//	port, err := container.Resolve(c, Port)
type Token[T any] struct {
	k *tokenKey
}

// NewToken creates a token. Two tokens created with the same description
// are still distinct.
func NewToken[T any](description string) Token[T] {
	return Token[T]{k: newTokenKey(description)}
}

func (t Token[T]) key() *tokenKey { return t.k }
func (t Token[T]) optional() bool { return false }
func (t Token[T]) String() string { return t.Description() }

// Description returns the human readable description used in diagnostics.
func (t Token[T]) Description() string {
	if t.k == nil {
		return "<nil token>"
	}
	return t.k.description
}

// Optional returns the optional variant of the token. It has the same
// identity; only unresolved lookups behave differently.
func (t Token[T]) Optional() OptionalToken[T] {
	return OptionalToken[T]{k: t.k}
}

// OptionalToken marks a dependency whose absence is acceptable.
type OptionalToken[T any] struct {
	k *tokenKey
}

func (t OptionalToken[T]) key() *tokenKey { return t.k }
func (t OptionalToken[T]) optional() bool { return true }
func (t OptionalToken[T]) String() string { return t.Description() }

// Description returns the description of the underlying token.
func (t OptionalToken[T]) Description() string {
	return Token[T](t).Description()
}

// ── Conditions ────────────────────────────────────────────────────────────────

// Condition selects among several bindings of one token. It is either a *Tag
// or a *Target.
type Condition interface {
	conditionName() string
}

// noCondition keys unconditional bindings.
type noConditionKey struct{}

func (*noConditionKey) conditionName() string { return "<default>" }

var noCondition Condition = &noConditionKey{}

// Tag is a resolution condition that is never bound to a value itself.
type Tag struct {
	id          uint64
	description string
}

// NewTag creates a unique tag.
func NewTag(description string) *Tag {
	return &Tag{id: nextID.Add(1), description: description}
}

func (t *Tag) conditionName() string { return t.description }

// String returns the tag description.
func (t *Tag) String() string { return t.description }

// ── Target ────────────────────────────────────────────────────────────────────

// Target is a producer the container can invoke: a constructor or a plain
// function. Its parameters are supplied from the tokens registered with
// Injected, in order.
//
//	func NewDoubler(n int) *Doubler { return &Doubler{N: n * 2} }
//
//	var DoublerTarget = container.Injected(
//	    container.NewTarget("Doubler", NewDoubler),
//	    Num,
//	)
type Target struct {
	name string
	fn   reflect.Value
	typ  reflect.Type
}

// NewTarget wraps fn. It panics when fn is not a function.
func NewTarget(name string, fn any) *Target {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("container: target [%s] must be a non-nil func, got %T", name, fn))
	}
	return &Target{name: name, fn: v, typ: v.Type()}
}

func (t *Target) conditionName() string { return t.name }

// Name returns the name given to NewTarget.
func (t *Target) Name() string { return t.name }

// String returns the target name.
func (t *Target) String() string { return t.name }

// arity is the number of parameters the func declares.
func (t *Target) arity() int {
	if t.typ.IsVariadic() {
		return t.typ.NumIn() - 1
	}
	return t.typ.NumIn()
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// call invokes the func with args. A result that is an untyped nil, or a
// func with no results, yields defined == false.
func (t *Target) call(args []any) (value any, defined bool, err error) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := t.typ.In(i)
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(pt) {
			return nil, false, &ArgumentError{Target: t.name, Index: i, Want: pt.String(), Got: av.Type().String()}
		}
		in[i] = av
	}

	out := t.fn.Call(in)
	if n := len(out); n > 0 && t.typ.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, false, e.Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, false, nil
	}

	r := out[0]
	if r.Kind() == reflect.Interface && r.IsNil() {
		return nil, false, nil
	}
	return r.Interface(), true, nil
}
