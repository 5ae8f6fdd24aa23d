// Package symbolic implements real functions of one variable x that can be
// expanded into truncated Taylor series with exact rational coefficients and
// evaluated numerically with arbitrary precision.
package symbolic

import (
	"errors"
	"math/big"
)

var (
	// ErrSingular is returned when a series expansion does not exist at the
	// requested point, e.g. log(x) or 1/x around 0.
	ErrSingular = errors.New("symbolic: singular expansion point")

	// ErrDomain is returned when a function is evaluated outside of its domain.
	ErrDomain = errors.New("symbolic: argument outside of the domain")

	// ErrSyntax is returned by Parse on malformed input.
	ErrSyntax = errors.New("symbolic: syntax error")

	// ErrInvalidOrder is returned when a series is requested with a non-positive order.
	ErrInvalidOrder = errors.New("symbolic: invalid series order")
)

// Function is a real-valued function of the variable x.
type Function interface {
	// Series returns the first order Taylor coefficients of the function
	// around point, that is the coefficients of (x - point)^k for
	// k = 0, ..., order-1. Coefficients that cannot be represented exactly
	// are rounded with prec bits before being converted to rationals.
	Series(point *big.Rat, order int, prec uint) ([]*big.Rat, error)

	// Evaluate returns the value of the function at x, with the precision of x.
	Evaluate(x *big.Float) (*big.Float, error)

	// String returns the expression in the syntax accepted by Parse.
	String() string
}

// precedence levels used by String.
const (
	precAdd = iota
	precMul
	precNeg
	precPow
	precAtom
)

type node interface {
	precedence() int
	series(point *big.Rat, order int, prec uint) (series, error)
	eval(x *big.Float) (*big.Float, error)
	String() string
}
