package xlformula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralText(t *testing.T) {
	cases := []struct {
		name  string
		value Primitive
		want  string
	}{
		{"nil", nil, `""`},
		{"empty string", "", `""`},
		{"string", "x", `"x"`},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"int", 5, "5"},
		{"integral float", 5.0, "5"},
		{"fractional float", 5.5, "5.5"},
		{"negative", -3, "-3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewLiteral(tc.value).text())
		})
	}
}

func TestLiteralValueUnchanged(t *testing.T) {
	for _, value := range []Primitive{nil, "", "x", true, 5, 5.5} {
		got, err := NewLiteral(value).Value()
		require.NoError(t, err)
		assert.Equal(t, value, got)
	}
}

func TestLiteralMasterRendersEquals(t *testing.T) {
	lit := NewLiteral("x")
	assert.Equal(t, `="x"`, lit.Render())
}

func TestMasterWalksOwners(t *testing.T) {
	inner, err := Add(1, 2)
	require.NoError(t, err)
	outer, err := Mul(inner, 3)
	require.NoError(t, err)

	assert.True(t, IsMaster(outer))
	assert.False(t, IsMaster(inner))
	assert.Same(t, Node(outer), Master(inner))
	assert.Same(t, Node(outer), Master(outer))
}

func TestSubNodeNeverAddsEquals(t *testing.T) {
	inner, err := Add(1, 2)
	require.NoError(t, err)
	outer, err := Mul(inner, 3)
	require.NoError(t, err)

	// only the top-level render call contributes the "=" prefix
	assert.Equal(t, "=1+2*3", outer.Render())
	assert.Equal(t, "1+2", inner.Render())
}

func TestCoerceUnsupportedType(t *testing.T) {
	type opaque struct{}
	_, err := Add(opaque{}, 1)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedValueType))
}

func TestCoercePriorityGroup(t *testing.T) {
	inner, err := Add(2, 3)
	require.NoError(t, err)
	outer, err := Mul([]any{inner}, 2)
	require.NoError(t, err)

	assert.True(t, HasPriority(inner))
	assert.Equal(t, "=(2+3)*2", outer.Render())
}

func TestCoercePriorityGroupRawValue(t *testing.T) {
	outer, err := Mul([]any{2}, 3)
	require.NoError(t, err)
	assert.Equal(t, "=(2)*3", outer.Render())
}

func TestCoercePriorityGroupWrongLength(t *testing.T) {
	_, err := Mul([]any{1, 2}, 3)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedValueType))
}

func TestNoAutomaticGrouping(t *testing.T) {
	// there is no precedence solver: nested expressions render
	// left-to-right with no parentheses unless opted in
	outer := Must(Mul(Must(Add(2, 3)), 2))
	assert.Equal(t, "=2+3*2", outer.Render())
}

func TestMust(t *testing.T) {
	expr := Must(Add(1, 2))
	assert.Equal(t, "=1+2", expr.Render())

	assert.Panics(t, func() {
		Must(Add(struct{}{}, 1))
	})
}
