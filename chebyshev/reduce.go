package chebyshev

import (
	"fmt"
	"math/big"

	"github.com/numerics/economize/utils/bignum"
)

// LowerDegree lowers the degree of p with the Default cache.
// See Cache.LowerDegree.
func LowerDegree(p bignum.Polynomial, maxDegree int) (bignum.Polynomial, error) {
	return Default().LowerDegree(p, maxDegree)
}

// LowerDegree returns a polynomial of degree at most maxDegree obtained from p
// by repeatedly cancelling its leading term c*x^d with c times the normalised
// Chebyshev polynomial of degree d.
//
// p is returned unchanged if its degree is already at most maxDegree.
func (c *Cache) LowerDegree(p bignum.Polynomial, maxDegree int) (bignum.Polynomial, error) {
	q, _, err := c.Economize(p, maxDegree)
	return q, err
}

// Economize is LowerDegree that also returns the sum of the absolute values of
// the cancelled leading coefficients.
//
// Since |T_d(x)/2^{d-1}| <= 2^{1-d} on [-1, 1], this sum bounds the error
// added by the reduction on [-1, 1].
func (c *Cache) Economize(p bignum.Polynomial, maxDegree int) (q bignum.Polynomial, bound *big.Rat, err error) {

	if maxDegree < 0 {
		return bignum.Polynomial{}, nil, fmt.Errorf("%w: target degree %d must be non-negative", ErrInvalidArgument, maxDegree)
	}

	bound = new(big.Rat)

	if p.Degree() <= maxDegree {
		return p, bound, nil
	}

	c.logger.Info("lowering polynomial degree", "from", p.Degree(), "to", maxDegree)

	q = p
	for q.Degree() > maxDegree {

		d := q.Degree()
		lc := q.LeadingCoefficient()

		var tn bignum.Polynomial
		if tn, err = c.GetNormalised(d); err != nil {
			return bignum.Polynomial{}, nil, err
		}

		q = q.Sub(tn.MulScalar(lc))

		// The normalised T_d has leading coefficient 1 so x^d cancels exactly.
		if q.Coefficient(d).Sign() != 0 {
			panic(fmt.Sprintf("cannot Economize: leading term of degree %d did not cancel", d))
		}

		// |lc * T_d / 2^{d-1}| <= |lc| * 2^{1-d}
		scale := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), uint(d-1)))
		bound.Add(bound, scale.Mul(scale, lc.Abs(lc)))

		c.logger.Debug("cancelled leading term", "degree", d, "remaining_degree", q.Degree())
	}

	c.logger.Info("lowered polynomial degree", "degree", q.Degree())

	return q, bound, nil
}
