package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionError_Unwrap(t *testing.T) {
	inner := &UndeclaredVariableError{Name: name.New("u", "m", "g", "q")}
	err := fmt.Errorf("compile: %w", &FunctionError{Function: name.New("u", "m", "g"), Annotation: 0, Err: inner})

	var target *UndeclaredVariableError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "u.m.g.q", target.Name.String())

	var fnErr *FunctionError
	require.True(t, errors.As(err, &fnErr))
	assert.Equal(t, 0, fnErr.Annotation)
}

func TestMessages(t *testing.T) {
	rng := hcl.Range{
		Filename: "sys.hcl",
		Start:    hcl.Pos{Line: 3, Column: 5, Byte: 20},
		End:      hcl.Pos{Line: 3, Column: 9, Byte: 24},
	}
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "hinted type with range",
			err:  &UnresolvedTypeError{Name: name.New("u", "m", "f", "p"), Hint: "Unknown", Range: rng},
			want: `sys.hcl:3,5-9: unresolved type "Unknown" for "u.m.f.p"`,
		},
		{
			name: "no hint",
			err:  &UnresolvedTypeError{Name: name.New("u", "m", "f", "r"), NoHint: true},
			want: `cannot infer type of "u.m.f.r": no hint and no binding site`,
		},
		{
			name: "arity",
			err:  &ArityMismatchError{Func: name.New("u", "m", "add"), Want: 2, Got: 1},
			want: `function "u.m.add" takes 2 argument(s), got 1`,
		},
		{
			name: "type mismatch",
			err:  &TypeMismatchError{Name: name.New("u", "m", "f", "p"), Expected: types.NewInt32(), Found: types.NewData(name.New("u", "m", "Point"))},
			want: fmt.Sprintf(`type mismatch for "u.m.f.p": expected %s, found %s`, types.NewInt32(), types.NewData(name.New("u", "m", "Point"))),
		},
		{
			name: "signature error",
			err:  &FunctionError{Function: name.New("u", "m", "f"), Annotation: -1, Err: errors.New("boom")},
			want: `function "u.m.f": boom`,
		},
		{
			name: "annotation error",
			err:  &FunctionError{Function: name.New("u", "m", "f"), Annotation: 2, Err: errors.New("boom")},
			want: `function "u.m.f", annotation #2: boom`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
