package bignum

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/numerics/economize/utils"
)

// Polynomial is a univariate polynomial with exact rational coefficients,
// stored as a sparse map from exponent to coefficient.
//
// A Polynomial never stores a zero coefficient: the zero polynomial has no
// entries and is of degree 0. All the arithmetic methods return a new
// Polynomial and leave the receiver and the operands untouched.
type Polynomial struct {
	coeffs map[int]*big.Rat
}

// NewPolynomial creates a new polynomial from the input coefficients given
// in increasing degree order (coeffs[i] is the coefficient of x^i).
// Accepted types are []int64, []int, []float64, []*big.Rat and map[int]*big.Rat.
// Coefficients are copied; nil and zero entries are dropped.
func NewPolynomial(coeffs interface{}) (p Polynomial) {

	p = Polynomial{coeffs: map[int]*big.Rat{}}

	switch coeffs := coeffs.(type) {
	case []int64:
		for i, c := range coeffs {
			p.set(i, new(big.Rat).SetInt64(c))
		}
	case []int:
		for i, c := range coeffs {
			p.set(i, new(big.Rat).SetInt64(int64(c)))
		}
	case []float64:
		for i, c := range coeffs {
			p.set(i, NewRat(c))
		}
	case []*big.Rat:
		for i, c := range coeffs {
			if c != nil {
				p.set(i, new(big.Rat).Set(c))
			}
		}
	case map[int]*big.Rat:
		for i, c := range coeffs {
			if i < 0 {
				panic(fmt.Sprintf("cannot NewPolynomial: negative exponent %d", i))
			}
			if c != nil {
				p.set(i, new(big.Rat).Set(c))
			}
		}
	case nil:
	default:
		panic(fmt.Sprintf("invalid coefficient type, allowed types are []int64, []int, []float64, []*big.Rat or map[int]*big.Rat but is %T", coeffs))
	}

	return
}

// Monomial returns c * x^k.
func Monomial(c *big.Rat, k int) (p Polynomial) {
	if k < 0 {
		panic(fmt.Sprintf("cannot Monomial: negative exponent %d", k))
	}
	p = Polynomial{coeffs: map[int]*big.Rat{}}
	p.set(k, new(big.Rat).Set(c))
	return
}

// Constant returns the constant polynomial c.
func Constant(c *big.Rat) Polynomial {
	return Monomial(c, 0)
}

// X returns the identity polynomial x.
func X() Polynomial {
	return Monomial(big.NewRat(1, 1), 1)
}

// set stores c at exponent k, removing the entry if c is zero.
// c is owned by p after the call.
func (p *Polynomial) set(k int, c *big.Rat) {
	if p.coeffs == nil {
		p.coeffs = map[int]*big.Rat{}
	}
	if c.Sign() == 0 {
		delete(p.coeffs, k)
		return
	}
	p.coeffs[k] = c
}

// Clone returns a deep copy of p.
func (p Polynomial) Clone() Polynomial {
	return NewPolynomial(p.coeffs)
}

// Degree returns the highest exponent with a non-zero coefficient, or 0 for the zero polynomial.
func (p Polynomial) Degree() (d int) {
	for k := range p.coeffs {
		if k > d {
			d = k
		}
	}
	return
}

// IsZero returns true if p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coeffs) == 0
}

// Coefficient returns a copy of the coefficient of x^k.
func (p Polynomial) Coefficient(k int) *big.Rat {
	if c, ok := p.coeffs[k]; ok {
		return new(big.Rat).Set(c)
	}
	return new(big.Rat)
}

// LeadingCoefficient returns a copy of the coefficient of x^{p.Degree()}.
func (p Polynomial) LeadingCoefficient() *big.Rat {
	return p.Coefficient(p.Degree())
}

// Exponents returns the exponents of the non-zero terms in increasing order.
func (p Polynomial) Exponents() []int {
	return utils.GetSortedKeys(p.coeffs)
}

// Coefficients returns the dense list of coefficients from the highest degree to the lowest.
func (p Polynomial) Coefficients() (coeffs []*big.Rat) {
	coeffs = make([]*big.Rat, p.Degree()+1)
	for i := range coeffs {
		coeffs[i] = p.Coefficient(len(coeffs) - 1 - i)
	}
	return
}

// Float64s returns the dense list of coefficients from the highest degree
// to the lowest, rounded to the nearest float64.
func (p Polynomial) Float64s() (coeffs []float64) {
	coeffs = make([]float64, p.Degree()+1)
	for k, c := range p.coeffs {
		coeffs[len(coeffs)-1-k] = RatToFloat64(c)
	}
	return
}

// Equal returns true if p and other have the same coefficients.
func (p Polynomial) Equal(other Polynomial) bool {
	if len(p.coeffs) != len(other.coeffs) {
		return false
	}
	for k, c := range p.coeffs {
		o, ok := other.coeffs[k]
		if !ok || c.Cmp(o) != 0 {
			return false
		}
	}
	return true
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	return p.MulScalar(big.NewRat(-1, 1))
}

// Add returns p + other.
func (p Polynomial) Add(other Polynomial) (r Polynomial) {
	r = p.Clone()
	for k, c := range other.coeffs {
		r.set(k, new(big.Rat).Add(r.Coefficient(k), c))
	}
	return
}

// Sub returns p - other.
func (p Polynomial) Sub(other Polynomial) (r Polynomial) {
	r = p.Clone()
	for k, c := range other.coeffs {
		r.set(k, new(big.Rat).Sub(r.Coefficient(k), c))
	}
	return
}

// Mul returns p * other.
func (p Polynomial) Mul(other Polynomial) (r Polynomial) {
	r = NewPolynomial(nil)
	for i, a := range p.coeffs {
		for j, b := range other.coeffs {
			tmp := new(big.Rat).Mul(a, b)
			r.set(i+j, tmp.Add(tmp, r.Coefficient(i+j)))
		}
	}
	return
}

// MulScalar returns c * p.
func (p Polynomial) MulScalar(c *big.Rat) (r Polynomial) {
	r = NewPolynomial(nil)
	for k, a := range p.coeffs {
		r.set(k, new(big.Rat).Mul(a, c))
	}
	return
}

// QuoScalar returns p / c.
// The method will panic if c is zero.
func (p Polynomial) QuoScalar(c *big.Rat) Polynomial {
	if c.Sign() == 0 {
		panic("cannot QuoScalar: division by zero")
	}
	return p.MulScalar(new(big.Rat).Inv(c))
}

// MulX returns x * p.
func (p Polynomial) MulX() (r Polynomial) {
	r = NewPolynomial(nil)
	for k, a := range p.coeffs {
		r.set(k+1, new(big.Rat).Set(a))
	}
	return
}

// Normalise returns p divided by its leading coefficient.
// The method will panic if p is the zero polynomial.
func (p Polynomial) Normalise() Polynomial {
	if p.IsZero() {
		panic("cannot Normalise: zero polynomial")
	}
	return p.QuoScalar(p.LeadingCoefficient())
}

// Compose returns p(q(x)), evaluated with Horner's scheme.
func (p Polynomial) Compose(q Polynomial) (r Polynomial) {
	r = NewPolynomial(nil)
	for k := p.Degree(); k >= 0; k-- {
		r = r.Mul(q).Add(Constant(p.Coefficient(k)))
	}
	return
}

// Translate returns the polynomial x -> p(x - a).
// This re-expands a polynomial written in powers of (x - a) into monomials.
func (p Polynomial) Translate(a *big.Rat) Polynomial {
	if a.Sign() == 0 {
		return p.Clone()
	}
	return p.Compose(X().Sub(Constant(a)))
}

// EvaluateRat returns p(x) computed exactly.
func (p Polynomial) EvaluateRat(x *big.Rat) (y *big.Rat) {
	y = new(big.Rat)
	for k := p.Degree(); k >= 0; k-- {
		y.Mul(y, x)
		if c, ok := p.coeffs[k]; ok {
			y.Add(y, c)
		}
	}
	return
}

// Evaluate returns p(x) with the precision of x.
func (p Polynomial) Evaluate(x *big.Float) (y *big.Float) {
	prec := x.Prec()
	y = NewFloat(0, prec)
	c := NewFloat(0, prec)
	for k := p.Degree(); k >= 0; k-- {
		y.Mul(y, x)
		if a, ok := p.coeffs[k]; ok {
			y.Add(y, c.SetRat(a))
		}
	}
	return
}

// String returns a human readable representation of p, highest degree first,
// e.g. "4*x^3 - 3*x".
func (p Polynomial) String() string {

	if p.IsZero() {
		return "0"
	}

	exps := p.Exponents()
	utils.ReverseSlice(exps)

	var sb strings.Builder
	for i, k := range exps {
		c := p.coeffs[k]
		abs := new(big.Rat).Abs(c)

		switch {
		case i == 0 && c.Sign() < 0:
			sb.WriteString("-")
		case i > 0 && c.Sign() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}

		one := abs.Cmp(big.NewRat(1, 1)) == 0

		switch {
		case k == 0:
			sb.WriteString(abs.RatString())
		case one:
			sb.WriteString(term(k))
		default:
			sb.WriteString(abs.RatString())
			sb.WriteString("*")
			sb.WriteString(term(k))
		}
	}

	return sb.String()
}

func term(k int) string {
	if k == 1 {
		return "x"
	}
	return fmt.Sprintf("x^%d", k)
}

// Digest returns the hex encoded blake3 hash of the canonical form of p.
// Two polynomials have the same digest if and only if they are equal.
func (p Polynomial) Digest() string {
	hasher := blake3.New()
	for _, k := range p.Exponents() {
		fmt.Fprintf(hasher, "%d:%s;", k, p.coeffs[k].RatString())
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
