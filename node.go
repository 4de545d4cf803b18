// Package xlformula builds Excel-style formula expressions programmatically:
// function calls, operators, references, and literal arguments compose into a
// tree that serializes to the exact formula text Excel expects, while each
// node can separately calculate its value.
package xlformula

import "fmt"

// Node is the building block of a formula tree. Every node renders its own
// fragment of the formula text and can calculate its own value. A node with
// no owner is the root of its tree; rendering the root produces the full
// formula text prefixed with "=".
type Node interface {
	// Value calculates and returns the value of the node
	Value() (Primitive, error)
	// Render returns the node's fragment of the formula text. The root of
	// the tree (the node with no owner) contributes the "=" prefix; nodes
	// rendered as sub-arguments never do.
	Render() string

	owning() *ownership
}

// ownership tracks a node's position in its tree. The owner reference is set
// exactly once, at the moment the node is accepted as an argument of an
// expression or call, and never reassigned.
type ownership struct {
	owner    Node
	priority bool
}

func (o *ownership) owning() *ownership { return o }

// Master returns the top-level node of the tree containing n
func Master(n Node) Node {
	for n.owning().owner != nil {
		n = n.owning().owner
	}
	return n
}

// IsMaster reports whether n is the top-level node of its tree
func IsMaster(n Node) bool {
	return n.owning().owner == nil
}

// HasPriority reports whether n is forced to render in parentheses
func HasPriority(n Node) bool {
	return n.owning().priority
}

// adopt records parent as the owner of child. owners are assigned once,
// immediately after the child is created or coerced.
func adopt(parent, child Node) {
	child.owning().owner = parent
}

// finalize applies the shared framing policy to a node's inner text:
// parentheses when the node has priority, then the "=" prefix when the node
// is the top-level node of its tree.
func finalize(n Node, inner string) string {
	if n.owning().priority {
		inner = "(" + inner + ")"
	}
	if n.owning().owner == nil {
		inner = "=" + inner
	}
	return inner
}

// coerce casts a raw value to a Node. Nodes pass through unchanged. A value
// wrapped in a one-element []any is coerced and given priority, forcing
// parentheses around its rendered text regardless of operator precedence.
// Primitives become Literal nodes. Anything else is unsupported.
func coerce(value any) (Node, error) {
	switch v := value.(type) {
	case Node:
		return v, nil
	case []any:
		if len(v) != 1 {
			return nil, NewBuildError(ErrCodeUnsupportedValueType,
				fmt.Sprintf("priority group must hold exactly one value, got %d", len(v)))
		}
		node, err := coerce(v[0])
		if err != nil {
			return nil, err
		}
		node.owning().priority = true
		return node, nil
	case nil, string, bool, int, int32, int64, float32, float64:
		return NewLiteral(v), nil
	default:
		return nil, NewBuildError(ErrCodeUnsupportedValueType,
			fmt.Sprintf("type %T is not a recognized datatype", value))
	}
}

// coerceAll casts a slice of raw values to nodes, failing on the first value
// that cannot be coerced
func coerceAll(values []any) ([]Node, error) {
	nodes := make([]Node, len(values))
	for i, value := range values {
		node, err := coerce(value)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}

// Must panics if err is non-nil, otherwise returns n. Intended for
// statically-known-good construction, mirroring regexp.MustCompile.
func Must[N Node](n N, err error) N {
	if err != nil {
		panic(err)
	}
	return n
}
