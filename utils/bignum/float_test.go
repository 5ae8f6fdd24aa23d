package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testFunc1("Sin", 1.4142135623730951, math.Sin, Sin, 1e-15, t)
	testFunc1("Cos", 1.4142135623730951, math.Cos, Cos, 1e-15, t)
	testFunc1("Cos/Reduced", 20.5, math.Cos, Cos, 1e-14, t)
	testFunc1("Sin/Negative", -2.25, math.Sin, Sin, 1e-15, t)
	testFunc1("Log", 1.4142135623730951, math.Log, Log, 1e-15, t)
	testFunc1("Exp", 1.4142135623730951, math.Exp, Exp, 1e-15, t)
	testFunc2("Pow", 2, 1.4142135623730951, math.Pow, Pow, 1e-15, t)
	testFunc1("SinH", 1.4142135623730951, math.Sinh, SinH, 1e-15, t)
	testFunc1("CosH", 1.4142135623730951, math.Cosh, CosH, 1e-15, t)
	testFunc1("TanH", 1.4142135623730951, math.Tanh, TanH, 1e-15, t)

	t.Run("Zero", func(t *testing.T) {
		require.Equal(t, 0, Sin(NewFloat(0, 128)).Sign())
		require.Equal(t, 0, Cos(NewFloat(0, 128)).Cmp(NewFloat(1, 128)))
		require.Equal(t, 0, Exp(NewFloat(0, 128)).Cmp(NewFloat(1, 128)))
	})

	t.Run("E", func(t *testing.T) {
		e, _ := E(128).Float64()
		require.InDelta(t, math.E, e, 1e-15)
	})
}

func testFunc1(name string, x float64, f func(x float64) (y float64), g func(x *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 128)).Float64()
		require.InDelta(t, f(x), y, delta)
	})
}

func testFunc2(name string, x, e float64, f func(x, e float64) (y float64), g func(x, e *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 128), NewFloat(e, 128)).Float64()
		require.InDelta(t, f(x, e), y, delta)
	})
}

func TestRat(t *testing.T) {
	require.Equal(t, 0, NewRat("1/3").Cmp(big.NewRat(1, 3)))
	require.Equal(t, 0, NewRat(0.5).Cmp(big.NewRat(1, 2)))
	require.Equal(t, 0, NewRat(NewFloat(0.25, 64)).Cmp(big.NewRat(1, 4)))
	require.Equal(t, "120", Factorial(5).String())
	require.Equal(t, "1", Factorial(0).String())
	require.Panics(t, func() { NewRat(math.Inf(1)) })
}

func TestInterval(t *testing.T) {
	require.NoError(t, NewInterval(0, 1).Validate())
	require.NoError(t, NewInterval(1, 1).Validate())
	require.ErrorIs(t, NewInterval(1, 0).Validate(), ErrInvalidInterval)
	require.ErrorIs(t, NewInterval(math.NaN(), 0).Validate(), ErrInvalidInterval)

	t.Run("Samples", func(t *testing.T) {
		xs, err := NewInterval(0, 1).Samples(0.25)
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1, 1.25}, xs)

		xs, err = NewInterval(2, 2).Samples(0.5)
		require.NoError(t, err)
		require.Equal(t, []float64{2, 2.5}, xs)

		for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err = NewInterval(0, 1).Samples(step)
			require.ErrorIs(t, err, ErrInvalidStep)
		}

		// 0.01 is below the spacing of float64 around 1e17.
		_, err = NewInterval(1e17, 1e17).Samples(0.01)
		require.ErrorIs(t, err, ErrInvalidStep)

		_, err = NewInterval(0, 1e9).Samples(0.01)
		require.ErrorIs(t, err, ErrTooManySamples)

		_, err = NewInterval(-math.MaxFloat64, math.MaxFloat64).Samples(1)
		require.ErrorIs(t, err, ErrTooManySamples)

		xs, err = NewInterval(0, MaxSamples-2).Samples(1)
		require.NoError(t, err)
		require.Len(t, xs, MaxSamples)
	})

	t.Run("Linspace", func(t *testing.T) {
		require.Equal(t, []float64{0, 0.5, 1}, NewInterval(0, 1).Linspace(3))
		require.Equal(t, []float64{2}, NewInterval(2, 3).Linspace(1))
		require.Nil(t, NewInterval(2, 3).Linspace(0))
	})
}

func TestPolyval(t *testing.T) {
	// 2x^2 - 3x + 1
	require.Equal(t, 3.0, Polyval([]float64{2, -3, 1}, 2))
	require.Equal(t, 0.0, Polyval(nil, 2))
}
