package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{"3.5", 3.5},
		{"1.5e-3", 0.0015},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4-3", 3},
		{"12/4/3", 1},
		{"-4+2", -2},
		{"2^10", 1024},
		{"2^3^2", 512}, // right-associative
		{"sqrt(2)", math.Sqrt2},
		{"sqrt(2)*3", 3 * math.Sqrt2},
		{"pow(2,10)", 1024},
		{"abs(-3.5)", 3.5},
		{"pi", math.Pi},
		{"cos(pi)", -1},
		{"sin(pi/2)", 1},
		{"tan(0)", 0},
		{"SQRT(4)", 2}, // names are case-insensitive
		{" 1 + 2 ", 3},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Eval(tc.input)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	inputs := []string{
		"foo(2)",     // unknown function
		"x",          // unknown identifier
		"exec(1)",    // not on the allow-list
		"1+",         // dangling operator
		"2**3",       // python-style power is not supported
		"(1+2",       // unbalanced parenthesis
		"pow(2)",     // wrong arity
		"sqrt(1, 2)", // wrong arity
		"1/0",        // division by zero
		"1 2",        // trailing garbage
		"sqrt(-1)",   // non-finite result
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Eval(input)
			assert.Error(t, err)
		})
	}
}

func TestEvalRejectsUnknownNameEvenWhenValidPrefix(t *testing.T) {
	_, err := Eval("sqrtx(4)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqrtx")
}
