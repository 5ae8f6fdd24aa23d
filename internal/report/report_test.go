package report

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/chebyshev"
	"github.com/numerics/economize/internal/config"
	"github.com/numerics/economize/symbolic"
	"github.com/numerics/economize/utils/bignum"
)

func newReport(t *testing.T) *Approximation {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := approximation.New(symbolic.MustParse("x^3"), bignum.NewInterval(-1, 1), 1,
		approximation.WithCache(chebyshev.NewCache(chebyshev.WithLogger(logger))),
		approximation.WithLogger(logger))
	require.NoError(t, err)

	r, err := New(a, approximation.DefaultStep)
	require.NoError(t, err)

	return r
}

func TestApproximation(t *testing.T) {

	r := newReport(t)

	require.Equal(t, "x^3", r.Function)
	require.Equal(t, "3/4*x", r.Polynomial)
	require.Equal(t, []float64{0.75, 0}, r.Coefficients)
	require.Equal(t, 0.25, r.Bound)
	require.Len(t, r.Digest, 64)

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Write(&buf, config.FormatJSON))

		var decoded Approximation
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Equal(t, r.Polynomial, decoded.Polynomial)
		require.Equal(t, r.Error, decoded.Error)
		require.Nil(t, decoded.Search)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Write(&buf, config.FormatYAML))

		var decoded Approximation
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Equal(t, r.Digest, decoded.Digest)
		require.Equal(t, r.Interval, decoded.Interval)
	})

	t.Run("Markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Write(&buf, config.FormatMarkdown))

		out := buf.String()
		require.True(t, strings.HasPrefix(out, "## f(x) ≈ x^3\n"))
		require.Contains(t, out, "| polynomial | 3/4*x |")
		require.Contains(t, out, "| `+0.75000000000000000000` | <code>x</code> |")
	})

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Write(&buf, config.FormatTable))

		out := buf.String()
		require.Contains(t, out, "3/4*x")
		require.Contains(t, out, "coefficient x^1")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		require.ErrorIs(t, r.Write(io.Discard, "csv"), config.ErrInvalidConfig)
	})
}

func TestFromSearch(t *testing.T) {

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := approximation.Search(symbolic.Exp(symbolic.X()), bignum.NewInterval(0, 1), 3,
		approximation.WithSearchLogger(logger),
		approximation.WithStep(0.05))
	require.NoError(t, err)

	r, err := FromSearch(res, 0.05)
	require.NoError(t, err)
	require.NotNil(t, r.Search)
	require.Equal(t, res.RunID, r.Search.RunID)
	require.Equal(t, res.Errors, r.Search.Errors)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, config.FormatMarkdown))
	require.Contains(t, buf.String(), "| run id | "+res.RunID+" |")
}

func TestCurve(t *testing.T) {

	c := NewCurve("y = |f(x) - 1/x|", []approximation.Point{{X: 0, Y: math.NaN()}, {X: 0.5, Y: 2}, {X: 1, Y: math.Inf(1)}})
	require.Equal(t, []approximation.Point{{X: 0.5, Y: 2}}, c.Points)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, config.FormatJSON))
	require.JSONEq(t, `{"title": "y = |f(x) - 1/x|", "points": [{"x": 0.5, "y": 2}]}`, buf.String())

	buf.Reset()
	require.NoError(t, c.Write(&buf, config.FormatMarkdown))
	require.Equal(t, "## y = |f(x) - 1/x|\n\n| x | y |\n| --- | --- |\n| 0.5 | 2 |\n", buf.String())
}

func TestChebyshev(t *testing.T) {

	reports, err := NewChebyshev(chebyshev.NewCache(), 2, 3)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "2*x^2 - 1", reports[0].Polynomial)
	require.Equal(t, "x^2 - 1/2", reports[0].Normalised)
	require.Equal(t, "4*x^3 - 3*x", reports[1].Polynomial)

	var buf bytes.Buffer
	require.NoError(t, WriteChebyshev(&buf, config.FormatYAML, reports))

	var decoded []Chebyshev
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, reports, decoded)

	_, err = NewChebyshev(chebyshev.NewCache(), -1, 1)
	require.ErrorIs(t, err, chebyshev.ErrInvalidArgument)
}
