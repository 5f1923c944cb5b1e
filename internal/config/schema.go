package config

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the shape of a schema node.
type Kind int

const (
	KindScalar Kind = iota
	KindEnum
	KindList
	KindMap
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node declares the expected shape of one configuration value. Nodes are
// built with the constructors below and refined with Require and Default.
type Node struct {
	kind     Kind
	typ      cty.Type
	required bool
	def      cty.Value
	values   []string
	elem     *Node
	children map[string]*Node
}

// String declares a string scalar.
func String() *Node { return &Node{kind: KindScalar, typ: cty.String, def: cty.NilVal} }

// Number declares a number scalar.
func Number() *Node { return &Node{kind: KindScalar, typ: cty.Number, def: cty.NilVal} }

// Bool declares a bool scalar.
func Bool() *Node { return &Node{kind: KindScalar, typ: cty.Bool, def: cty.NilVal} }

// Enum declares a string restricted to values.
func Enum(values ...string) *Node {
	return &Node{kind: KindEnum, typ: cty.String, def: cty.NilVal, values: slices.Clone(values)}
}

// ListOf declares a list whose elements match elem. A lone scalar is
// accepted and wrapped into a one-element list.
func ListOf(elem *Node) *Node { return &Node{kind: KindList, def: cty.NilVal, elem: elem} }

// MapOf declares a map with arbitrary keys whose values match elem.
func MapOf(elem *Node) *Node { return &Node{kind: KindMap, def: cty.NilVal, elem: elem} }

// Object declares a fixed set of keys. Keys not listed are rejected.
func Object(children map[string]*Node) *Node {
	return &Node{kind: KindObject, def: cty.NilVal, children: maps.Clone(children)}
}

// Require marks the node as mandatory.
func (n *Node) Require() *Node {
	n.required = true
	return n
}

// Default sets the value used when the node is absent.
func (n *Node) Default(v cty.Value) *Node {
	n.def = v
	return n
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Child returns the declared child of an object node.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Type returns the cty type of a normalized value for this node.
func (n *Node) Type() cty.Type {
	switch n.kind {
	case KindScalar:
		return n.typ
	case KindEnum:
		return cty.String
	case KindList:
		return cty.List(n.elem.Type())
	case KindMap:
		return cty.Map(n.elem.Type())
	case KindObject:
		attrs := make(map[string]cty.Type, len(n.children))
		for name, child := range n.children {
			attrs[name] = child.Type()
		}
		return cty.Object(attrs)
	default:
		return cty.DynamicPseudoType
	}
}
