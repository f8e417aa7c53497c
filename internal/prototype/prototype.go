// Package prototype implements the Prototype pattern over a small object
// graph: a Root owning a primitive value, a Component, and a BackRefNode
// whose Root field points back at its owner.
//
// Cloning follows construct-then-wire: the copy's container is allocated
// first and its BackRefNode is built afterwards pointing at that container,
// so a clone never aliases the original through the back-reference.
package prototype

import (
	"time"

	"github.com/google/uuid"
)

// Prototype is implemented by values that can produce copies of themselves.
type Prototype[T any] interface {
	Clone() T
}

// Component is an owned, timestamp-like value held by reference.
type Component struct {
	Stamp time.Time
	Label string
}

// NewComponent returns a component stamped with the given time.
func NewComponent(stamp time.Time, label string) *Component {
	return &Component{Stamp: stamp, Label: label}
}

// BackRefNode holds a reference to the Root that created it.
type BackRefNode struct {
	Root *Root
}

func newBackRefNode(owner *Root) *BackRefNode {
	return &BackRefNode{Root: owner}
}

// Root is the prototype. ID only labels the instance for display; identity
// comparisons use pointers.
type Root struct {
	ID        uuid.UUID
	Primitive int
	Component *Component
	Ref       *BackRefNode
}

var _ Prototype[*Root] = (*Root)(nil)

// NewRoot allocates a Root and then its BackRefNode pointing to it.
func NewRoot(primitive int, component *Component) *Root {
	r := &Root{
		ID:        uuid.New(),
		Primitive: primitive,
		Component: component,
	}
	r.Ref = newBackRefNode(r)
	return r
}

// Clone returns a copy of r. The primitive is copied by value, the
// component is shallow-copied into a new allocation, and the copy gets its
// own BackRefNode pointing at the copy.
func (r *Root) Clone() *Root {
	c := &Root{
		ID:        uuid.New(),
		Primitive: r.Primitive,
	}
	if r.Component != nil {
		comp := *r.Component
		c.Component = &comp
	}
	c.Ref = newBackRefNode(c)
	return c
}

// Observation holds the identity and equality checks between a source and
// one of its clones.
type Observation struct {
	PrimitiveEqual    bool
	ComponentShared   bool
	BackRefToClone    bool
	BackRefToOriginal bool
}

// Observe compares clone against original.
func Observe(original, clone *Root) Observation {
	obs := Observation{
		PrimitiveEqual:  original.Primitive == clone.Primitive,
		ComponentShared: original.Component == clone.Component,
	}
	if clone.Ref != nil {
		obs.BackRefToClone = clone.Ref.Root == clone
		obs.BackRefToOriginal = clone.Ref.Root == original
	}
	return obs
}

// OK reports whether the clone was produced correctly.
func (o Observation) OK() bool {
	return o.PrimitiveEqual && !o.ComponentShared && o.BackRefToClone && !o.BackRefToOriginal
}
