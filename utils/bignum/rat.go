package bignum

import (
	"fmt"
	"math/big"
)

// NewRat allocates a new *big.Rat.
// Accepted types are: string, int, int64, float64, *big.Int, *big.Float or *big.Rat.
// A float64 or *big.Float is converted exactly (every finite binary float is a rational).
func NewRat(x interface{}) (y *big.Rat) {

	y = new(big.Rat)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		if _, ok := y.SetString(x); !ok {
			panic(fmt.Sprintf("cannot NewRat: invalid string %q", x))
		}
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case float64:
		if y.SetFloat64(x) == nil {
			panic(fmt.Sprintf("cannot NewRat: %v is not finite", x))
		}
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		x.Rat(y)
	case *big.Rat:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewRat: accepted types are string, int, int64, float64, *big.Int, *big.Float, *big.Rat, but is %T", x))
	}

	return
}

// Factorial returns n! as a *big.Int.
func Factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// RatToFloat64 returns the nearest float64 of x.
func RatToFloat64(x *big.Rat) float64 {
	f, _ := x.Float64()
	return f
}
