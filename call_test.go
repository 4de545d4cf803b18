package xlformula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFunction(t *testing.T, name string, required, optional []string, opts ...DescriptorOption) *Descriptor {
	t.Helper()
	d, err := NewFunction(name, required, optional, nil, opts...)
	require.NoError(t, err)
	return d
}

func TestArityRequiredAndOptional(t *testing.T) {
	d := testFunction(t, "FN", []string{"a", "b"}, []string{"c"})

	cases := []struct {
		supplied int
		wantCode ErrorCode // 0 means success
	}{
		{0, ErrCodeTooFewArguments},
		{1, ErrCodeTooFewArguments},
		{2, 0},
		{3, 0},
		{4, ErrCodeTooManyArguments},
		{5, ErrCodeTooManyArguments},
	}
	for _, tc := range cases {
		args := make([]any, tc.supplied)
		for i := range args {
			args[i] = i
		}
		_, err := d.Call(args...)
		if tc.wantCode == 0 {
			assert.NoError(t, err, "supplying %d arguments", tc.supplied)
		} else {
			require.Error(t, err, "supplying %d arguments", tc.supplied)
			assert.True(t, IsCode(err, tc.wantCode), "supplying %d arguments: got %v", tc.supplied, err)
		}
	}
}

func TestArityTooFewNamesMissingSlots(t *testing.T) {
	d := testFunction(t, "FN", []string{"first", "second"}, nil)
	_, err := d.Call(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'second'")
	assert.NotContains(t, err.Error(), "'first'")
}

func TestArityOpenEndedOptional(t *testing.T) {
	d := testFunction(t, "FN", nil, []string{"value1", Unlimited})
	for supplied := 0; supplied <= 50; supplied++ {
		args := make([]any, supplied)
		for i := range args {
			args[i] = i
		}
		_, err := d.Call(args...)
		require.NoError(t, err, "supplying %d arguments", supplied)
	}
	assert.True(t, d.IsOpenEnded())
}

func TestArityOpenEndedRequired(t *testing.T) {
	d := testFunction(t, "FN", []string{"value1", Unlimited}, nil)
	for _, supplied := range []int{0, 1, 5} {
		args := make([]any, supplied)
		_, err := d.Call(args...)
		require.NoError(t, err, "supplying %d arguments", supplied)
	}
	assert.True(t, d.IsOpenEnded())
}

func TestArityNoOptionalMeansExactCount(t *testing.T) {
	d := testFunction(t, "FN", []string{"only"}, nil)
	_, err := d.Call(1, 2)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeTooManyArguments))
	assert.False(t, d.IsOpenEnded())
}

func TestArityInheritance(t *testing.T) {
	base := testFunction(t, "BASE", []string{"a", "b"}, []string{"c"})
	child := testFunction(t, "CHILD", []string{"d"}, nil, InheritFrom(base))

	assert.Equal(t, []string{"a", "b", "d"}, child.RequiredArguments())
	assert.Equal(t, []string{"c"}, child.OptionalArguments())

	_, err := child.Call(1, 2)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeTooFewArguments))
	_, err = child.Call(1, 2, 3)
	require.NoError(t, err)
	_, err = child.Call(1, 2, 3, 4)
	require.NoError(t, err)
	_, err = child.Call(1, 2, 3, 4, 5)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeTooManyArguments))
}

func TestArityInheritanceChain(t *testing.T) {
	grandparent := testFunction(t, "GP", []string{"a"}, nil)
	parent := testFunction(t, "P", []string{"b"}, nil, InheritFrom(grandparent))
	child := testFunction(t, "C", []string{"c"}, nil, InheritFrom(parent))

	assert.Equal(t, []string{"a", "b", "c"}, child.RequiredArguments())
}

func TestFunctionNameMustBeUppercase(t *testing.T) {
	_, err := NewFunction("Sum", []string{"a"}, nil, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidDescriptor))

	_, err = NewFunction("", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidDescriptor))
}

func TestFormulaRequiresExpansion(t *testing.T) {
	_, err := NewFormula("NoBody", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidDescriptor))
}

func TestFunctionCallRender(t *testing.T) {
	d := testFunction(t, "FN", []string{"a", "b"}, nil)
	call, err := d.Call(1, "x")
	require.NoError(t, err)
	assert.Equal(t, `=FN(1, "x")`, call.Render())
}

func TestFunctionCallAdoptsArguments(t *testing.T) {
	d := testFunction(t, "FN", []string{"a"}, nil)
	arg := NewLiteral(1)
	call, err := d.Call(arg)
	require.NoError(t, err)

	assert.False(t, IsMaster(arg))
	assert.Same(t, Node(call), Master(arg))
	assert.Equal(t, "1", arg.Render())
}

func TestRenderOnlyFunctionRefusesEvaluation(t *testing.T) {
	d := testFunction(t, "FN", []string{"a"}, nil)
	call, err := d.Call(1)
	require.NoError(t, err)
	_, err = call.Value()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeNotImplemented))
}

func TestFormulaCallRendersExpansionJoined(t *testing.T) {
	// a formula's expansion reads as one continuous body, no separator
	d, err := NewFormula("Wrap", []string{"value"}, nil,
		func(args []Node) ([]Node, error) {
			expr, err := Add(args[0], 1)
			if err != nil {
				return nil, err
			}
			tail, err := Concat("", "!")
			if err != nil {
				return nil, err
			}
			return []Node{expr, tail}, nil
		})
	require.NoError(t, err)

	call, err := d.Call(2)
	require.NoError(t, err)
	assert.Equal(t, `=2+1""&"!"`, call.Render())
}

func TestFormulaExpandsOnceAtConstruction(t *testing.T) {
	expansions := 0
	d, err := NewFormula("Counted", []string{"value"}, nil,
		func(args []Node) ([]Node, error) {
			expansions++
			return args, nil
		})
	require.NoError(t, err)

	call, err := d.Call(1)
	require.NoError(t, err)
	require.Equal(t, 1, expansions)

	call.Render()
	call.Render()
	_, _ = call.Value()
	assert.Equal(t, 1, expansions)
}

func TestFormulaValueIsRestartableSequence(t *testing.T) {
	d, err := NewFormula("Pair", []string{"a", "b"}, nil,
		func(args []Node) ([]Node, error) { return args, nil })
	require.NoError(t, err)

	call, err := d.Call(1, "x")
	require.NoError(t, err)

	collect := func() []Primitive {
		var values []Primitive
		for value, err := range call.Values() {
			require.NoError(t, err)
			values = append(values, value)
		}
		return values
	}
	first := collect()
	second := collect()
	assert.Equal(t, []Primitive{1, "x"}, first)
	assert.Equal(t, first, second)
}

func TestFormulaExpansionErrorAbortsConstruction(t *testing.T) {
	d, err := NewFormula("Broken", []string{"value"}, nil,
		func(args []Node) ([]Node, error) {
			return nil, NewBuildError(ErrCodeUnsupportedValueType, "no")
		})
	require.NoError(t, err)

	_, err = d.Call(1)
	require.Error(t, err)
}

func TestConditionalRenderEndToEnd(t *testing.T) {
	catalog := NewCatalog()
	a1, err := NewCellRef(1, 1, RelRef)
	require.NoError(t, err)
	b1, err := NewCellRef(1, 2, RelRef)
	require.NoError(t, err)
	isBlank, err := Eq(a1, "")
	require.NoError(t, err)

	call, err := catalog.Call("IF", isBlank, "", b1)
	require.NoError(t, err)
	assert.Equal(t, `=IF(A1="", "", B1)`, call.Render())

	// the same tree reached through its parent never re-adds the prefix
	assert.Equal(t, `A1=""`, isBlank.Render())
}
