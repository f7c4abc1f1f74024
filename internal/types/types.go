// Package types holds HKSL's closed, primitive-only type registry.
//
// Modeled on y1yang0-falcon's src/ast/type.go: a fixed set of *Type
// singletons compared by pointer identity, each with a Kind and a String().
// There is no subtyping and no coercion, so identity comparison is always
// correct equality comparison.
package types

import "fmt"

// ID identifies one of the five HKSL primitive types.
type ID int

const (
	Void ID = iota
	Float
	Float2
	Float3
	Float4
)

// Type is a registered primitive type. Types are never constructed outside
// of a Registry; comparing two *Type values with == is type equality.
type Type struct {
	id    ID
	name  string
	bytes int
}

func (t *Type) ID() ID          { return t.id }
func (t *Type) Name() string    { return t.name }
func (t *Type) Bytes() int      { return t.bytes }
func (t *Type) String() string  { return t.name }

// Registry is populated once, at construction, with exactly one instance
// per primitive type (spec §3.3).
type Registry struct {
	byName map[string]*Type
	byID   []*Type
}

// NewRegistry builds the fixed primitive type set.
func NewRegistry() *Registry {
	def := []struct {
		id    ID
		name  string
		bytes int
	}{
		{Void, "void", 0},
		{Float, "float", 4},
		{Float2, "float2", 8},
		{Float3, "float3", 12},
		{Float4, "float4", 16},
	}

	r := &Registry{
		byName: make(map[string]*Type, len(def)),
		byID:   make([]*Type, len(def)),
	}
	for _, d := range def {
		t := &Type{id: d.id, name: d.name, bytes: d.bytes}
		r.byName[d.name] = t
		r.byID[d.id] = t
	}
	return r
}

// Lookup resolves a type name to its registered *Type, or reports false if
// the name is not one of the five primitives.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// ByID returns the registered *Type for an ID. Panics on an out-of-range ID,
// which would indicate a bug in this package, not in HKSL source.
func (r *Registry) ByID(id ID) *Type {
	if int(id) < 0 || int(id) >= len(r.byID) {
		panic(fmt.Sprintf("types: invalid type id %d", id))
	}
	return r.byID[id]
}

// Void is a convenience accessor used throughout the checker.
func (r *Registry) Void() *Type { return r.byID[Void] }
