package approximation

import (
	"fmt"
	"math"
	"strings"

	"github.com/numerics/economize/utils"
	"github.com/numerics/economize/utils/bignum"
)

// DefaultCurvePoints is the default number of points of Curve and ErrorCurve.
const DefaultCurvePoints = 400

// Point is a point (X, Y) of a sampled curve.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Title returns the title of the plot of the approximation.
func (a *Approximation) Title() (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	return fmt.Sprintf("f(x) ≈ %s", a.function), nil
}

// ErrorTitle returns the title of the plot of the absolute error.
func (a *Approximation) ErrorTitle() (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	return fmt.Sprintf("y = |f(x) - %s|", a.function), nil
}

// Table returns a markdown table of the non-zero coefficients of the
// approximation polynomial, highest degree first, with 20 decimals.
func (a *Approximation) Table() (string, error) {

	if err := a.check(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("|        Coefficient        |  Term  |\n")
	sb.WriteString("|---------------------------|--------|\n")

	exps := a.polynomial.Exponents()
	utils.ReverseSlice(exps)

	for _, k := range exps {
		c := a.polynomial.Coefficient(k)
		sign := "+"
		if c.Sign() < 0 {
			sign = "-"
			c.Neg(c)
		}
		fmt.Fprintf(&sb, "| `%s%s` | <code>%s</code> |\n", sign, c.FloatString(20), Term(k))
	}

	return sb.String(), nil
}

// Term returns the HTML rendering of x^k.
func Term(k int) string {
	switch k {
	case 0:
		return "1"
	case 1:
		return "x"
	}
	return fmt.Sprintf("x<sup>%d</sup>", k)
}

// Curve samples the approximation polynomial at points evenly spaced points
// of the interval. A non-positive points selects DefaultCurvePoints.
func (a *Approximation) Curve(points int) (curve []Point, err error) {

	if err = a.check(); err != nil {
		return
	}

	xs := a.interval.Linspace(curvePoints(points))
	curve = make([]Point, len(xs))

	for i, x := range xs {
		y, _ := a.polynomial.Evaluate(bignum.NewFloat(x, a.prec)).Float64()
		curve[i] = Point{X: x, Y: y}
	}

	return
}

// ErrorCurve samples |f(x) - p(x)| at points evenly spaced points of the
// interval. Points where f cannot be evaluated have a NaN ordinate.
// A non-positive points selects DefaultCurvePoints.
func (a *Approximation) ErrorCurve(points int) (curve []Point, err error) {

	if err = a.check(); err != nil {
		return
	}

	xs := a.interval.Linspace(curvePoints(points))
	curve = make([]Point, len(xs))

	for i, x := range xs {
		y, err := a.absErrorAt(x)
		if err != nil {
			a.logger.Debug("no error at point", "x", x, "error", err)
			y = math.NaN()
		}
		curve[i] = Point{X: x, Y: y}
	}

	return
}

func curvePoints(points int) int {
	if points <= 0 {
		return DefaultCurvePoints
	}
	return points
}
