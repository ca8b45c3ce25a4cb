// Package graph holds the declared object model that every analysis runs
// against: packages of types, their fields, and the implicit references a
// nested type keeps to its enclosing scope.
//
// Types are stored under their canonical names (see name.go) and iterated in
// insertion order so results are deterministic for a given set of model files.
package graph

import (
	"fmt"

	"github.com/trujunzhang/cyclefinder/internal/types"
)

// Field is a declared field of a model type
type Field struct {
	// Name is the simple field name as declared
	Name string

	// TypeName is the declared type reference of the field; canonicalize
	// with CanonicalTypeRef before resolving it against the graph
	TypeName string

	// Weak marks the reference as non-owning; weak fields produce no edge
	Weak bool

	// Static marks a per-type field; static fields produce no edge
	Static bool

	DeclRange types.FileRange
}

// Type is a declared model type
type Type struct {
	// Package is the declaring package, empty for the default package
	Package string

	// Name is the simple type name as declared, possibly carrying a
	// generic parameterization such as Box<Item>
	Name string

	// Enclosing is the canonical name of the enclosing type for nested
	// and method-local types, empty for top-level types
	Enclosing string

	// Method is the declaring method name for method-local types
	Method string

	// Anonymous marks a type declared without a usable name; its
	// canonical name segment becomes "$"
	Anonymous bool

	// Outer is the canonical name of the type whose instance this type
	// holds an implicit strong reference to, empty when none
	Outer string

	Fields    []*Field
	DeclRange types.FileRange
}

// Graph is the set of declared types, keyed by canonical name
type Graph struct {
	byName map[string]*Type
	order  []string
}

// New returns an empty graph
func New() *Graph {
	return &Graph{byName: make(map[string]*Type)}
}

// AddType inserts a type under its canonical name. Declaring two types that
// canonicalize to the same name is an error.
func (g *Graph) AddType(t *Type) error {
	name := t.CanonicalName()
	if prev, ok := g.byName[name]; ok {
		return fmt.Errorf("duplicate type %q (previously declared at %s)", name, prev.DeclRange)
	}
	g.byName[name] = t
	g.order = append(g.order, name)
	return nil
}

// TypeByName looks up a type by canonical name
func (g *Graph) TypeByName(name string) (*Type, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// Types returns all types in insertion order
func (g *Graph) Types() []*Type {
	out := make([]*Type, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.byName[name])
	}
	return out
}

// Len returns the number of declared types
func (g *Graph) Len() int {
	return len(g.order)
}
