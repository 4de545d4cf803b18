package xlformula

import "math"

// Operator represents the binary operators Excel formulas support
type Operator int

const (
	// logical operators

	OpLess Operator = iota
	OpLessEqual
	OpEqual // = in Excel rather than ==
	OpNotEqual
	OpGreater
	OpGreaterEqual

	// arithmetic operators

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower // ^ in Excel rather than **

	// string operators

	OpConcat // & is concatenation in Excel, not a bitwise operation
)

// operatorEntry pairs an operator's display symbol with its evaluation
// function. The two are kept separate on purpose: the symbol is what the
// compiled formula text shows, while the evaluation function defines what the
// operator computes. OpConcat is the divergent case, displaying "&" but
// evaluating as string append.
type operatorEntry struct {
	symbol string
	eval   func(left, right Primitive) (Primitive, error)
}

var operatorTable = map[Operator]operatorEntry{
	OpLess:         {"<", evalCompare(func(c int) bool { return c < 0 })},
	OpLessEqual:    {"<=", evalCompare(func(c int) bool { return c <= 0 })},
	OpEqual:        {"=", evalCompare(func(c int) bool { return c == 0 })},
	OpNotEqual:     {"<>", evalCompare(func(c int) bool { return c != 0 })},
	OpGreater:      {">", evalCompare(func(c int) bool { return c > 0 })},
	OpGreaterEqual: {">=", evalCompare(func(c int) bool { return c >= 0 })},
	OpAdd:          {"+", evalArithmetic(func(a, b float64) float64 { return a + b })},
	OpSubtract:     {"-", evalArithmetic(func(a, b float64) float64 { return a - b })},
	OpMultiply:     {"*", evalArithmetic(func(a, b float64) float64 { return a * b })},
	OpDivide:       {"/", evalDivide},
	OpPower:        {"^", evalPower},
	OpConcat:       {"&", evalConcat},
}

// Expression is a binary-operator node. It records the operation with both
// operands so the compiled formula text shows the expression itself rather
// than its calculated result.
// e.g. 1 + 2 -> "1+2" (desired), 1 + 2 -x-> "3" (undesired)
type Expression struct {
	ownership
	former   Node
	latter   Node
	operator Operator
}

// NewExpression builds an expression node from two operands and an operator.
// Raw operands are coerced to nodes and immediately given the expression as
// their owner.
func NewExpression(former, latter any, operator Operator) (*Expression, error) {
	if _, ok := operatorTable[operator]; !ok {
		return nil, NewBuildError(ErrCodeInvalidDescriptor, "unknown operator")
	}
	left, err := coerce(former)
	if err != nil {
		return nil, err
	}
	right, err := coerce(latter)
	if err != nil {
		return nil, err
	}
	expr := &Expression{
		former:   left,
		latter:   right,
		operator: operator,
	}
	adopt(expr, left)
	adopt(expr, right)
	return expr, nil
}

// Operator returns the operator kind of the expression
func (e *Expression) Operator() Operator {
	return e.operator
}

// Symbol returns the display character of the expression's operator
func (e *Expression) Symbol() string {
	return operatorTable[e.operator].symbol
}

// Value evaluates both operands and applies the operator's evaluation
// function to the two results
func (e *Expression) Value() (Primitive, error) {
	former, err := e.former.Value()
	if err != nil {
		return nil, err
	}
	latter, err := e.latter.Value()
	if err != nil {
		return nil, err
	}
	return operatorTable[e.operator].eval(former, latter)
}

func (e *Expression) Render() string {
	return finalize(e, e.former.Render()+e.Symbol()+e.latter.Render())
}

func (e *Expression) String() string {
	return e.Render()
}

// expression builders. each combines two composite nodes (or raw values)
// with one operator from the closed set.

func Lt(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpLess) }
func Le(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpLessEqual) }
func Eq(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpEqual) }
func Ne(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpNotEqual) }
func Gt(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpGreater) }
func Ge(former, latter any) (*Expression, error) {
	return NewExpression(former, latter, OpGreaterEqual)
}
func Add(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpAdd) }
func Sub(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpSubtract) }
func Mul(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpMultiply) }
func Div(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpDivide) }
func Pow(former, latter any) (*Expression, error) { return NewExpression(former, latter, OpPower) }
func Concat(former, latter any) (*Expression, error) {
	return NewExpression(former, latter, OpConcat)
}

func evalCompare(accept func(int) bool) func(left, right Primitive) (Primitive, error) {
	return func(left, right Primitive) (Primitive, error) {
		cmp := comparePrimitives(left, right)
		if cmp == -2 {
			return nil, NewBuildError(ErrCodeUnsupportedValueType, "cannot compare these values")
		}
		return accept(cmp), nil
	}
}

func evalArithmetic(apply func(a, b float64) float64) func(left, right Primitive) (Primitive, error) {
	return func(left, right Primitive) (Primitive, error) {
		a, aOk := toNumber(left)
		b, bOk := toNumber(right)
		if !aOk || !bOk {
			return nil, NewBuildError(ErrCodeUnsupportedValueType, "operation requires numeric values")
		}
		return apply(a, b), nil
	}
}

func evalDivide(left, right Primitive) (Primitive, error) {
	a, aOk := toNumber(left)
	b, bOk := toNumber(right)
	if !aOk || !bOk {
		return nil, NewBuildError(ErrCodeUnsupportedValueType, "division requires numeric values")
	}
	if b == 0 {
		return nil, NewBuildError(ErrCodeUnsupportedValueType, "division by zero")
	}
	return a / b, nil
}

func evalPower(left, right Primitive) (Primitive, error) {
	a, aOk := toNumber(left)
	b, bOk := toNumber(right)
	if !aOk || !bOk {
		return nil, NewBuildError(ErrCodeUnsupportedValueType, "power requires numeric values")
	}
	return math.Pow(a, b), nil
}

// evalConcat is the string-append evaluation behind the "&" display symbol
func evalConcat(left, right Primitive) (Primitive, error) {
	return toString(left) + toString(right), nil
}
