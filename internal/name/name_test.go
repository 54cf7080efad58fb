package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_Child(t *testing.T) {
	root := Name{}
	unit := root.Child("shapes")
	fn := unit.Child("geo").Child("move")

	assert.Equal(t, "shapes", unit.String())
	assert.Equal(t, "shapes.geo.move", fn.String())
	assert.Equal(t, 3, fn.Depth())
	assert.Equal(t, 0, root.Depth())
	assert.True(t, root.IsZero())
}

func TestName_ParentAndLocal(t *testing.T) {
	n := New("a", "b", "c")

	assert.Equal(t, "c", n.Local())
	assert.Equal(t, New("a", "b"), n.Parent())
	assert.Equal(t, New("a"), n.Parent().Parent())
	assert.True(t, n.Parent().Parent().Parent().IsZero())
	assert.Equal(t, "a", New("a").Local())
}

func TestName_Equal(t *testing.T) {
	a := New("u", "m", "f", "x")
	b := MustParse("u.m.f.x")
	c := MustParse("u.m.f.y")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a == b, "names must be comparable with ==")

	keys := map[Name]int{a: 1}
	assert.Equal(t, 1, keys[b], "structurally equal names must hit the same map key")
}

func TestName_Within(t *testing.T) {
	fn := MustParse("u.m.f")

	assert.True(t, MustParse("u.m.f.x").Within(fn))
	assert.False(t, MustParse("u.m.fx").Within(fn))
	assert.False(t, fn.Within(fn))
	assert.True(t, fn.Within(Name{}))
}

func TestName_Segments(t *testing.T) {
	assert.Equal(t, []string{"u", "m"}, New("u", "m").Segments())
	assert.Nil(t, Name{}.Segments())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{name: "single segment", raw: "Point"},
		{name: "qualified", raw: "shapes.geo.Point"},
		{name: "underscores and digits", raw: "_a1.b_2"},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - trailing dot", raw: "a.", expectErr: true},
		{name: "error - leading digit", raw: "a.1b", expectErr: true},
		{name: "error - hyphen", raw: "a-b", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.raw, n.String())
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
}
