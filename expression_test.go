package xlformula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionSymbols(t *testing.T) {
	cases := []struct {
		operator Operator
		symbol   string
	}{
		{OpLess, "<"},
		{OpLessEqual, "<="},
		{OpEqual, "="},
		{OpNotEqual, "<>"},
		{OpGreater, ">"},
		{OpGreaterEqual, ">="},
		{OpAdd, "+"},
		{OpSubtract, "-"},
		{OpMultiply, "*"},
		{OpDivide, "/"},
		{OpPower, "^"},
		{OpConcat, "&"},
	}
	for _, tc := range cases {
		t.Run(tc.symbol, func(t *testing.T) {
			expr, err := NewExpression(1, 2, tc.operator)
			require.NoError(t, err)
			assert.Equal(t, tc.symbol, expr.Symbol())
			assert.Equal(t, "=1"+tc.symbol+"2", expr.Render())
		})
	}
}

func TestExpressionEval(t *testing.T) {
	cases := []struct {
		name   string
		expr   func() (*Expression, error)
		want   Primitive
		hasErr bool
	}{
		{"add", func() (*Expression, error) { return Add(1, 2) }, 3.0, false},
		{"subtract", func() (*Expression, error) { return Sub(5, 2) }, 3.0, false},
		{"multiply", func() (*Expression, error) { return Mul(4, 2.5) }, 10.0, false},
		{"divide", func() (*Expression, error) { return Div(9, 2) }, 4.5, false},
		{"divide by zero", func() (*Expression, error) { return Div(1, 0) }, nil, true},
		{"power", func() (*Expression, error) { return Pow(2, 10) }, 1024.0, false},
		{"less", func() (*Expression, error) { return Lt(1, 2) }, true, false},
		{"less equal", func() (*Expression, error) { return Le(2, 2) }, true, false},
		{"equal", func() (*Expression, error) { return Eq("a", "a") }, true, false},
		{"not equal", func() (*Expression, error) { return Ne("a", "b") }, true, false},
		{"greater", func() (*Expression, error) { return Gt(1, 2) }, false, false},
		{"greater equal", func() (*Expression, error) { return Ge(3, 2) }, true, false},
		{"numeric string compare", func() (*Expression, error) { return Eq("2", 2) }, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := tc.expr()
			require.NoError(t, err)
			value, err := expr.Value()
			if tc.hasErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestConcatDisplaysAmpersandEvaluatesAppend(t *testing.T) {
	// the display operator and the evaluation function diverge on
	// purpose: "&" is concatenation in Excel, not a bitwise operation
	expr, err := Concat("foo", "bar")
	require.NoError(t, err)
	assert.Equal(t, `="foo"&"bar"`, expr.Render())

	value, err := expr.Value()
	require.NoError(t, err)
	assert.Equal(t, "foobar", value)
}

func TestConcatNumbers(t *testing.T) {
	expr, err := Concat(1, 2)
	require.NoError(t, err)
	value, err := expr.Value()
	require.NoError(t, err)
	assert.Equal(t, "12", value)
}

func TestExpressionOperandsAdopted(t *testing.T) {
	left := NewLiteral(1)
	right := NewLiteral(2)
	expr, err := Add(left, right)
	require.NoError(t, err)

	assert.Same(t, Node(expr), left.ownership.owner)
	assert.Same(t, Node(expr), right.ownership.owner)
}

func TestCompareUnsupportedOperands(t *testing.T) {
	// a literal can hold a value coerce would reject; comparing it must
	// fail instead of falling back to its printed form
	type opaque struct{}
	assert.Equal(t, -2, comparePrimitives(opaque{}, 1))
	assert.Equal(t, -2, comparePrimitives("x", opaque{}))

	expr, err := Eq(NewLiteral(opaque{}), 1)
	require.NoError(t, err)
	_, err = expr.Value()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedValueType))
}

func TestExpressionErrorPropagation(t *testing.T) {
	// the first evaluation error surfaces depth-first with no partial value
	bad, err := Div(1, 0)
	require.NoError(t, err)
	expr, err := Add(bad, 1)
	require.NoError(t, err)
	_, err = expr.Value()
	require.Error(t, err)
}
