package symbolic

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

var numericFunctions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"ln":   unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"sinh": unary(math.Sinh),
	"cosh": unary(math.Cosh),
	"tanh": unary(math.Tanh),
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %T", args[0])
		}
		return f(x), nil
	}
}

// NumericFunc compiles src into a float64 callable.
//
// It is meant to cross-check the arbitrary precision evaluation of an Expr:
// src is parsed with Parse and the tree is handed to govaluate, so both
// evaluations agree on the precedence of the operators. The callable returns
// NaN where the expression cannot be evaluated.
func NumericFunc(src string) (func(float64) float64, error) {

	e, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return e.Numeric()
}

// Numeric compiles e into a float64 callable evaluated by govaluate.
func (e Expr) Numeric() (func(float64) float64, error) {

	if e.n == nil {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(numericSource(e.n), numericFunctions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	return func(x float64) float64 {
		v, err := expr.Evaluate(map[string]interface{}{
			"x":  x,
			"pi": math.Pi,
			"e":  math.E,
		})
		if err != nil {
			return math.NaN()
		}
		if y, ok := v.(float64); ok {
			return y
		}
		return math.NaN()
	}, nil
}

// numericSource returns the fully parenthesized govaluate source of n.
// ^ is the bitwise xor of govaluate and its unary minus binds tighter than
// **, hence the parentheses around every operation.
func numericSource(n node) string {
	switch n := n.(type) {
	case variable:
		return "x"
	case constant:
		return "(" + n.value.RatString() + ")"
	case named:
		return n.name
	case negation:
		return "(-" + numericSource(n.a) + ")"
	case binary:
		return "(" + numericSource(n.l) + " " + string(n.op) + " " + numericSource(n.r) + ")"
	case power:
		return "(" + numericSource(n.base) + " ** (" + n.exp.RatString() + "))"
	case call:
		return n.name + "(" + numericSource(n.arg) + ")"
	}
	panic(fmt.Errorf("symbolic: unexpected node %T", n))
}
