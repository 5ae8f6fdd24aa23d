package chebyshev

import (
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/numerics/economize/utils/bignum"
)

func TestCache(t *testing.T) {

	t.Run("Seed", func(t *testing.T) {
		c := NewCache()
		require.Equal(t, 2, c.Len())

		t0, err := c.Get(0)
		require.NoError(t, err)
		require.True(t, t0.Equal(bignum.NewPolynomial([]int64{1})))

		t1, err := c.Get(1)
		require.NoError(t, err)
		require.True(t, t1.Equal(bignum.X()))
	})

	t.Run("Known", func(t *testing.T) {
		c := NewCache()

		t3, err := c.Get(3)
		require.NoError(t, err)
		require.True(t, t3.Equal(bignum.NewPolynomial([]int64{0, -3, 0, 4})), t3.String())

		t4, err := c.Get(4)
		require.NoError(t, err)
		require.True(t, t4.Equal(bignum.NewPolynomial([]int64{1, 0, -8, 0, 8})), t4.String())
	})

	t.Run("Recurrence", func(t *testing.T) {
		c := NewCache()
		two := big.NewRat(2, 1)
		for n := 2; n < 24; n++ {
			tn, err := c.Get(n)
			require.NoError(t, err)
			tn1, err := c.Get(n - 1)
			require.NoError(t, err)
			tn2, err := c.Get(n - 2)
			require.NoError(t, err)
			require.True(t, tn.Equal(tn1.MulX().MulScalar(two).Sub(tn2)), "n=%d", n)
			require.Equal(t, n, tn.Degree())
		}
	})

	t.Run("Trigonometric", func(t *testing.T) {
		// T_n(cos(theta)) = cos(n*theta)
		c := NewCache()
		theta := 0.7
		for n := 0; n < 16; n++ {
			tn, err := c.Get(n)
			require.NoError(t, err)
			y := bignum.Polyval(tn.Float64s(), math.Cos(theta))
			require.InDelta(t, math.Cos(float64(n)*theta), y, 1e-9, "n=%d", n)
		}
	})

	t.Run("Memoization", func(t *testing.T) {
		c := NewCache()
		t5, err := c.Get(5)
		require.NoError(t, err)
		require.Equal(t, 6, c.Len())

		before := make([]string, c.Len())
		for i := range before {
			p, err := c.Get(i)
			require.NoError(t, err)
			before[i] = p.Digest()
		}

		again, err := c.Get(5)
		require.NoError(t, err)
		require.True(t, again.Equal(t5))

		_, err = c.Get(9)
		require.NoError(t, err)
		require.Equal(t, 10, c.Len())

		for i := range before {
			p, err := c.Get(i)
			require.NoError(t, err)
			require.Equal(t, before[i], p.Digest())
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		c := NewCache()
		_, err := c.Get(-1)
		require.ErrorIs(t, err, ErrInvalidArgument)
		_, err = c.GetNormalised(-3)
		require.ErrorIs(t, err, ErrInvalidArgument)
		require.Equal(t, 2, c.Len())
	})

	t.Run("Normalised", func(t *testing.T) {
		c := NewCache()

		n0, err := c.GetNormalised(0)
		require.NoError(t, err)
		require.True(t, n0.Equal(bignum.NewPolynomial([]int64{1})))

		for n := 1; n < 20; n++ {
			p, err := c.GetNormalised(n)
			require.NoError(t, err)
			require.Equal(t, n, p.Degree())
			require.Equal(t, 0, p.LeadingCoefficient().Cmp(big.NewRat(1, 1)), "n=%d", n)
		}

		n3, err := c.GetNormalised(3)
		require.NoError(t, err)
		require.True(t, n3.Equal(bignum.NewPolynomial([]*big.Rat{nil, big.NewRat(-3, 4), nil, big.NewRat(1, 1)})))
	})

	t.Run("Concurrent", func(t *testing.T) {
		c := NewCache()
		errs := make([]error, 8)
		var wg sync.WaitGroup
		for i := range errs {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, errs[n] = c.Get(10 + n)
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, 18, c.Len())

		reference := NewCache()
		for n := 0; n < c.Len(); n++ {
			got, err := c.Get(n)
			require.NoError(t, err)
			want, err := reference.Get(n)
			require.NoError(t, err)
			require.True(t, got.Equal(want), "n=%d", n)
		}
	})

	t.Run("Default", func(t *testing.T) {
		require.Same(t, Default(), Default())
	})
}

func TestLowerDegree(t *testing.T) {

	testCases := []struct {
		coeffs         []int64
		maxDegree      int
		expectedDegree int
	}{
		{[]int64{1, 1, 1, 1, 1}, 2, 2},
		{[]int64{1, 1, 1, 1, 1, 1}, 3, 3},
		{[]int64{1, 1, 1, 1}, 5, 3},
		{[]int64{0, 0, 0, 0, 0, 0, 0, 1}, 0, 0},
		{[]int64{3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 7}, 4, 4},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Degree=%d/Max=%d", len(tc.coeffs)-1, tc.maxDegree), func(t *testing.T) {
			c := NewCache()
			p := bignum.NewPolynomial(tc.coeffs)
			q, err := c.LowerDegree(p, tc.maxDegree)
			require.NoError(t, err)
			require.LessOrEqual(t, q.Degree(), tc.expectedDegree)
			require.LessOrEqual(t, q.Degree(), tc.maxDegree)
		})
	}

	t.Run("NoOp", func(t *testing.T) {
		c := NewCache()
		p := bignum.NewPolynomial([]int64{1, 2, 3, 4})
		q, err := c.LowerDegree(p, 5)
		require.NoError(t, err)
		require.True(t, q.Equal(p))
		q, err = c.LowerDegree(p, 3)
		require.NoError(t, err)
		require.True(t, q.Equal(p))
		require.Equal(t, 2, c.Len())
	})

	t.Run("Exact", func(t *testing.T) {
		// x^3 = (T_3 + 3 T_1) / 4, so lowering x^3 to degree 2 gives 3x/4.
		c := NewCache()
		q, err := c.LowerDegree(bignum.NewPolynomial([]int64{0, 0, 0, 1}), 2)
		require.NoError(t, err)
		require.True(t, q.Equal(bignum.NewPolynomial([]*big.Rat{nil, big.NewRat(3, 4)})), q.String())

		// x^4 = (T_4 + 8x^2 - 1) / 8 -> x^2 - 1/8 -> lowered to 1 gives 1/2 - 1/8.
		q, err = c.LowerDegree(bignum.NewPolynomial([]int64{0, 0, 0, 0, 1}), 1)
		require.NoError(t, err)
		require.True(t, q.Equal(bignum.NewPolynomial([]*big.Rat{big.NewRat(3, 8)})), q.String())
	})

	t.Run("Bound", func(t *testing.T) {
		c := NewCache()
		p := bignum.NewPolynomial([]int64{1, 1, 1, 1, 1, 1, 1})
		q, bound, err := c.Economize(p, 3)
		require.NoError(t, err)

		b, _ := bound.Float64()
		pc := p.Float64s()
		qc := q.Float64s()
		for _, x := range bignum.NewInterval(-1, 1).Linspace(201) {
			require.LessOrEqual(t, math.Abs(bignum.Polyval(pc, x)-bignum.Polyval(qc, x)), b+1e-12)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		_, err := NewCache().LowerDegree(bignum.NewPolynomial([]int64{1, 1}), -1)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Default", func(t *testing.T) {
		q, err := LowerDegree(bignum.NewPolynomial([]int64{1, 1, 1, 1, 1}), 2)
		require.NoError(t, err)
		require.LessOrEqual(t, q.Degree(), 2)
	})
}
