package xlformula

import (
	"fmt"
	"iter"
	"strings"
)

// DescriptorKind separates the two callable shapes: a Function renders as
// NAME(arg1, arg2) and evaluates through a closure, while a Formula renders
// as the concatenation of the sub-expressions it expands into and evaluates
// as a sequence of their values.
type DescriptorKind uint8

const (
	FunctionKind DescriptorKind = 1
	FormulaKind  DescriptorKind = 2
)

// EvalFunc calculates the value of a function call. Closures read argument
// values through the call as needed; conditional functions evaluate only the
// selected branch.
type EvalFunc func(*Call) (Primitive, error)

// ExpandFunc expands a formula call into the sub-expressions that make up
// its body. It runs once, at construction time, with the already
// arity-checked supplied arguments.
type ExpandFunc func(args []Node) ([]Node, error)

// Descriptor defines a callable: its name, the argument parameters it
// enforces, and its evaluation or expansion behavior. Descriptors are plain
// data; the builtin catalog is just a registry of descriptor instances.
type Descriptor struct {
	name   string
	kind   DescriptorKind
	spec   argSpec
	eval   EvalFunc
	expand ExpandFunc
}

// DescriptorOption customizes descriptor construction
type DescriptorOption func(*descriptorConfig)

type descriptorConfig struct {
	bases []*Descriptor
}

// InheritFrom makes the descriptor inherit the required and optional
// argument parameters of the given base descriptors. Inherited sequences are
// concatenated ahead of the descriptor's own, once, at definition time.
func InheritFrom(bases ...*Descriptor) DescriptorOption {
	return func(cfg *descriptorConfig) {
		cfg.bases = append(cfg.bases, bases...)
	}
}

// NewFunction defines a function descriptor. Function names must be
// uppercase, matching Excel's convention; a non-uppercase name is rejected at
// definition time. A nil eval leaves the function render-only: calls build
// and render normally but report a not-implemented error when evaluated.
func NewFunction(name string, required, optional []string, eval EvalFunc, opts ...DescriptorOption) (*Descriptor, error) {
	if name == "" {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, "function name must not be empty")
	}
	if name != strings.ToUpper(name) {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, fmt.Sprintf(
			"function names must be uppercase: '%s' is not a valid function name", name))
	}
	return newDescriptor(name, FunctionKind, required, optional, eval, nil, opts)
}

// NewFormula defines a formula descriptor with the given expansion
func NewFormula(name string, required, optional []string, expand ExpandFunc, opts ...DescriptorOption) (*Descriptor, error) {
	if name == "" {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, "formula name must not be empty")
	}
	if expand == nil {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, fmt.Sprintf(
			"formula '%s' must declare an expansion", name))
	}
	return newDescriptor(name, FormulaKind, required, optional, nil, expand, opts)
}

func newDescriptor(name string, kind DescriptorKind, required, optional []string,
	eval EvalFunc, expand ExpandFunc, opts []DescriptorOption) (*Descriptor, error) {
	var cfg descriptorConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, base := range cfg.bases {
		if base == nil {
			return nil, NewBuildError(ErrCodeInvalidDescriptor, fmt.Sprintf(
				"'%s' inherits from an undefined descriptor", name))
		}
	}
	own := argSpec{required: required, optional: optional}
	return &Descriptor{
		name:   name,
		kind:   kind,
		spec:   inheritSpec(own, cfg.bases),
		eval:   eval,
		expand: expand,
	}, nil
}

// Name returns the descriptor's name
func (d *Descriptor) Name() string { return d.name }

// Kind returns whether the descriptor is a function or a formula
func (d *Descriptor) Kind() DescriptorKind { return d.kind }

// RequiredArguments returns the descriptor's effective required argument names
func (d *Descriptor) RequiredArguments() []string { return d.spec.required }

// OptionalArguments returns the descriptor's effective optional argument names
func (d *Descriptor) OptionalArguments() []string { return d.spec.optional }

// IsOpenEnded reports whether the descriptor accepts an unbounded number of
// arguments
func (d *Descriptor) IsOpenEnded() bool { return d.spec.isOpenEnded() }

// Call binds positional arguments to the descriptor, producing a call node.
// The supplied count is validated against the descriptor's argument
// parameters before anything is built; an invalid call constructs nothing.
func (d *Descriptor) Call(args ...any) (*Call, error) {
	if err := d.spec.validate(d.name, len(args)); err != nil {
		return nil, err
	}
	nodes, err := coerceAll(args)
	if err != nil {
		return nil, err
	}

	call := &Call{descriptor: d}
	switch d.kind {
	case FormulaKind:
		// the expansion runs once, here; evaluation and rendering later
		// re-walk the stored expansion nodes
		expanded, err := d.expand(nodes)
		if err != nil {
			return nil, err
		}
		call.arguments = expanded
	default:
		call.arguments = nodes
	}
	for _, node := range call.arguments {
		adopt(call, node)
	}
	return call, nil
}

// Call binds one set of arguments to a descriptor. For a function the stored
// arguments are the supplied ones; for a formula they are the nodes the
// formula expanded into.
type Call struct {
	ownership
	descriptor *Descriptor
	arguments  []Node
}

// Descriptor returns the descriptor the call was built from
func (c *Call) Descriptor() *Descriptor { return c.descriptor }

// Name returns the name of the called descriptor
func (c *Call) Name() string { return c.descriptor.name }

// Arguments returns the call's stored argument nodes in order
func (c *Call) Arguments() []Node { return c.arguments }

// Arg returns the stored argument node at position i, or nil when i is out
// of range. Evaluation closures use it to read only the branches they need.
func (c *Call) Arg(i int) Node {
	if i < 0 || i >= len(c.arguments) {
		return nil
	}
	return c.arguments[i]
}

// ArgValue evaluates the stored argument at position i. A missing argument
// evaluates to nil, letting closures treat absent optional arguments as
// empty.
func (c *Call) ArgValue(i int) (Primitive, error) {
	node := c.Arg(i)
	if node == nil {
		return nil, nil
	}
	return node.Value()
}

// Values returns a lazy iterator over the evaluated values of the call's
// stored arguments. The iterator stops at the first evaluation error and is
// restartable: re-ranging simply re-walks the stored nodes.
func (c *Call) Values() iter.Seq2[Primitive, error] {
	return func(yield func(Primitive, error) bool) {
		for _, node := range c.arguments {
			value, err := node.Value()
			if !yield(value, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Value calculates the value of the call. A function call invokes its
// descriptor's evaluation closure; a formula call returns the sequence of
// values produced by its expansion, as an iter.Seq2 primitive.
func (c *Call) Value() (Primitive, error) {
	switch c.descriptor.kind {
	case FormulaKind:
		return c.Values(), nil
	default:
		if c.descriptor.eval == nil {
			return nil, NewBuildError(ErrCodeNotImplemented, fmt.Sprintf(
				"evaluation is not implemented for '%s'", c.descriptor.name))
		}
		return c.descriptor.eval(c)
	}
}

func (c *Call) Render() string {
	var inner string
	switch c.descriptor.kind {
	case FormulaKind:
		// a formula's expansion reads as one continuous formula body,
		// not a call argument list
		fragments := make([]string, len(c.arguments))
		for i, node := range c.arguments {
			fragments[i] = node.Render()
		}
		inner = strings.Join(fragments, "")
	default:
		fragments := make([]string, len(c.arguments))
		for i, node := range c.arguments {
			fragments[i] = node.Render()
		}
		inner = c.descriptor.name + "(" + strings.Join(fragments, ", ") + ")"
	}
	return finalize(c, inner)
}

func (c *Call) String() string {
	return c.Render()
}
