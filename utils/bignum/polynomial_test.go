package bignum

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPolynomial(t *testing.T) {

	// x^2 + 2x + 1
	p := NewPolynomial([]int64{1, 2, 1})

	t.Run("Degree", func(t *testing.T) {
		require.Equal(t, 2, p.Degree())
		require.Equal(t, 0, NewPolynomial(nil).Degree())
		require.Equal(t, 0, NewPolynomial([]int64{0, 0, 0}).Degree())
		require.True(t, NewPolynomial([]int64{0, 0, 0}).IsZero())
		require.Equal(t, 5, NewPolynomial([]int{0, 0, 0, 0, 0, 3}).Degree())
	})

	t.Run("NoZeroEntries", func(t *testing.T) {
		q := p.Sub(NewPolynomial([]int64{0, 0, 1}))
		require.Equal(t, 1, q.Degree())
		require.Equal(t, []int{0, 1}, q.Exponents())
	})

	t.Run("Coefficients", func(t *testing.T) {
		q := NewPolynomial([]int64{-3, 0, 0, 4})
		if diff := cmp.Diff([]float64{4, 0, 0, -3}, q.Float64s()); diff != "" {
			t.Fatalf("unexpected coefficients (-want +got):\n%s", diff)
		}
		coeffs := q.Coefficients()
		require.Len(t, coeffs, 4)
		require.Equal(t, 0, coeffs[0].Cmp(big.NewRat(4, 1)))
		require.Equal(t, 0, coeffs[1].Sign())
		require.Equal(t, 0, q.LeadingCoefficient().Cmp(big.NewRat(4, 1)))
	})

	t.Run("Arithmetic", func(t *testing.T) {
		q := NewPolynomial([]int64{-1, 1}) // x - 1
		require.True(t, p.Add(q).Equal(NewPolynomial([]int64{0, 3, 1})))
		require.True(t, p.Mul(q).Equal(NewPolynomial([]int64{-1, -1, 1, 1})))
		require.True(t, q.MulX().Equal(NewPolynomial([]int64{0, -1, 1})))
		require.True(t, q.Neg().Equal(NewPolynomial([]int64{1, -1})))
		require.True(t, p.MulScalar(big.NewRat(1, 2)).Equal(NewPolynomial([]*big.Rat{big.NewRat(1, 2), big.NewRat(1, 1), big.NewRat(1, 2)})))
		require.Panics(t, func() { p.QuoScalar(new(big.Rat)) })
	})

	t.Run("Immutable", func(t *testing.T) {
		before := p.Clone()
		_ = p.Sub(p)
		_ = p.MulScalar(big.NewRat(3, 1))
		_ = p.Normalise()
		c := p.LeadingCoefficient()
		c.SetInt64(42)
		require.True(t, p.Equal(before))
	})

	t.Run("Normalise", func(t *testing.T) {
		q := NewPolynomial([]int64{2, 4, 2}).Normalise()
		require.True(t, q.Equal(p))
		require.Equal(t, 0, q.LeadingCoefficient().Cmp(big.NewRat(1, 1)))
		require.Panics(t, func() { NewPolynomial(nil).Normalise() })
	})

	t.Run("Translate", func(t *testing.T) {
		// (x - 1)^2 = x^2 - 2x + 1
		sq := NewPolynomial([]int64{0, 0, 1})
		require.True(t, sq.Translate(big.NewRat(1, 1)).Equal(NewPolynomial([]int64{1, -2, 1})))
		require.True(t, sq.Translate(new(big.Rat)).Equal(sq))
	})

	t.Run("Evaluate", func(t *testing.T) {
		require.Equal(t, 0, p.EvaluateRat(big.NewRat(1, 2)).Cmp(big.NewRat(9, 4)))
		y, _ := p.Evaluate(NewFloat(0.5, 128)).Float64()
		require.Equal(t, 2.25, y)
		require.Equal(t, 0, NewPolynomial(nil).EvaluateRat(big.NewRat(3, 1)).Sign())
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "x^2 + 2*x + 1", p.String())
		require.Equal(t, "4*x^3 - 3*x", NewPolynomial([]int64{0, -3, 0, 4}).String())
		require.Equal(t, "-x + 1/2", NewPolynomial([]*big.Rat{big.NewRat(1, 2), big.NewRat(-1, 1)}).String())
		require.Equal(t, "0", NewPolynomial(nil).String())
	})

	t.Run("Digest", func(t *testing.T) {
		require.Equal(t, p.Digest(), NewPolynomial([]int64{1, 2, 1}).Digest())
		require.NotEqual(t, p.Digest(), NewPolynomial([]int64{1, 2, 2}).Digest())
		require.Len(t, p.Digest(), 64)
	})
}
