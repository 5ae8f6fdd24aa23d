package symbolic

import (
	"fmt"
	"math/big"

	"github.com/numerics/economize/utils/bignum"
)

// series is a truncated power series sum s[k] * h^k, h = x - point.
// All the operations preserve the length of their operands.
type series []*big.Rat

func newSeries(order int) (s series) {
	s = make(series, order)
	for i := range s {
		s[i] = new(big.Rat)
	}
	return
}

func constSeries(c *big.Rat, order int) (s series) {
	s = newSeries(order)
	s[0].Set(c)
	return
}

func (s series) clone() (r series) {
	r = make(series, len(s))
	for i := range s {
		r[i] = new(big.Rat).Set(s[i])
	}
	return
}

func (s series) add(t series) (r series) {
	r = newSeries(len(s))
	for i := range r {
		r[i].Add(s[i], t[i])
	}
	return
}

func (s series) sub(t series) (r series) {
	r = newSeries(len(s))
	for i := range r {
		r[i].Sub(s[i], t[i])
	}
	return
}

func (s series) scale(c *big.Rat) (r series) {
	r = newSeries(len(s))
	for i := range r {
		r[i].Mul(s[i], c)
	}
	return
}

func (s series) mul(t series) (r series) {
	r = newSeries(len(s))
	tmp := new(big.Rat)
	for i := range s {
		if s[i].Sign() == 0 {
			continue
		}
		for j := 0; i+j < len(r); j++ {
			r[i+j].Add(r[i+j], tmp.Mul(s[i], t[j]))
		}
	}
	return
}

// recip returns 1/s, which requires a non-zero constant term.
func (s series) recip() (r series, err error) {

	if s[0].Sign() == 0 {
		return nil, fmt.Errorf("%w: reciprocal of a series vanishing at the expansion point", ErrSingular)
	}

	r = newSeries(len(s))
	inv := new(big.Rat).Inv(s[0])
	r[0].Set(inv)

	tmp := new(big.Rat)
	for k := 1; k < len(r); k++ {
		acc := new(big.Rat)
		for j := 1; j <= k; j++ {
			acc.Add(acc, tmp.Mul(s[j], r[k-j]))
		}
		r[k].Mul(acc.Neg(acc), inv)
	}

	return
}

func (s series) quo(t series) (series, error) {
	inv, err := t.recip()
	if err != nil {
		return nil, err
	}
	return s.mul(inv), nil
}

// powInt returns s^n.
func (s series) powInt(n int64) (r series, err error) {

	if n < 0 {
		if s, err = s.recip(); err != nil {
			return
		}
		n = -n
	}

	r = constSeries(big.NewRat(1, 1), len(s))
	base := s.clone()
	for n > 0 {
		if n&1 == 1 {
			r = r.mul(base)
		}
		base = base.mul(base)
		n >>= 1
	}

	return
}

// compose returns sum d[k] * (s - s[0])^k, i.e. F(s) given the Taylor
// coefficients d[k] = F^(k)(s[0])/k! of F at the constant term of s.
func (s series) compose(d []*big.Rat) (r series) {

	h := s.clone()
	h[0].SetInt64(0)

	r = constSeries(d[0], len(s))
	hk := constSeries(big.NewRat(1, 1), len(s))
	for k := 1; k < len(s) && k < len(d); k++ {
		hk = hk.mul(h)
		r = r.add(hk.scale(d[k]))
	}

	return
}

// cyclic returns the coefficients values[k % len(values)] / k! for k < order.
func cyclic(order int, values ...*big.Rat) (d []*big.Rat) {
	d = make([]*big.Rat, order)
	for k := range d {
		d[k] = new(big.Rat).SetFrac(big.NewInt(1), bignum.Factorial(k))
		d[k].Mul(d[k], values[k%len(values)])
	}
	return
}

// binomial returns the generalised binomial coefficient C(p, k).
func binomial(p *big.Rat, k int) (c *big.Rat) {
	c = big.NewRat(1, 1)
	tmp := new(big.Rat)
	for i := 0; i < k; i++ {
		tmp.Sub(p, big.NewRat(int64(i), 1))
		c.Mul(c, tmp)
		c.Quo(c, big.NewRat(int64(i+1), 1))
	}
	return
}

// evalRat evaluates f at the rational c with prec bits and converts the result back.
func evalRat(f func(*big.Float) *big.Float, c *big.Rat, prec uint) *big.Rat {
	return bignum.NewRat(f(bignum.NewFloat(c, prec)))
}
