// Package report renders approximation results for the economize command.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/numerics/economize/approximation"
	"github.com/numerics/economize/chebyshev"
	"github.com/numerics/economize/internal/config"
	"github.com/numerics/economize/utils/bignum"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// Approximation is the report of a single approximation.
type Approximation struct {
	Function         string                   `json:"function" yaml:"function"`
	Interval         [2]float64               `json:"interval" yaml:"interval,flow"`
	PolynomialDegree int                      `json:"polynomial_degree" yaml:"polynomial_degree"`
	TaylorDegree     int                      `json:"taylor_degree" yaml:"taylor_degree"`
	Point            float64                  `json:"point" yaml:"point"`
	Polynomial       string                   `json:"polynomial" yaml:"polynomial"`
	Digest           string                   `json:"digest" yaml:"digest"`
	Coefficients     []float64                `json:"coefficients" yaml:"coefficients,flow"`
	Bound            float64                  `json:"economization_bound" yaml:"economization_bound"`
	Step             float64                  `json:"step" yaml:"step"`
	Error            approximation.ErrorStats `json:"error" yaml:"error"`
	Search           *Search                  `json:"search,omitempty" yaml:"search,omitempty"`

	// NumericMaxError is the maximum error against a float64 rendition of
	// the function, if it was computed.
	NumericMaxError *float64 `json:"numeric_max_error,omitempty" yaml:"numeric_max_error,omitempty"`

	title    string
	markdown string
}

// Search is the outcome of a best approximation search.
type Search struct {
	RunID             string    `json:"run_id" yaml:"run_id"`
	StartTaylorDegree int       `json:"start_taylor_degree" yaml:"start_taylor_degree"`
	Iterations        int       `json:"iterations" yaml:"iterations"`
	Converged         bool      `json:"converged" yaml:"converged"`
	Errors            []float64 `json:"errors" yaml:"errors,flow"`
}

// New builds the report of a, with the error sampled every step.
func New(a *approximation.Approximation, step float64) (r *Approximation, err error) {

	p, err := a.Polynomial()
	if err != nil {
		return nil, err
	}

	coeffs, err := a.Coefficients()
	if err != nil {
		return nil, err
	}

	bound, err := a.Bound()
	if err != nil {
		return nil, err
	}

	stats, err := a.ErrorStats(step)
	if err != nil {
		return nil, err
	}

	markdown, err := a.Table()
	if err != nil {
		return nil, err
	}

	title, err := a.Title()
	if err != nil {
		return nil, err
	}

	return &Approximation{
		Function:         a.Function().String(),
		Interval:         [2]float64{a.Interval().A, a.Interval().B},
		PolynomialDegree: a.PolynomialDegree(),
		TaylorDegree:     a.TaylorDegree(),
		Point:            a.Point(),
		Polynomial:       p.String(),
		Digest:           p.Digest(),
		Coefficients:     coeffs,
		Bound:            bignum.RatToFloat64(bound),
		Step:             step,
		Error:            stats,
		title:            title,
		markdown:         markdown,
	}, nil
}

// FromSearch builds the report of the best approximation found by a search.
func FromSearch(res *approximation.SearchResult, step float64) (*Approximation, error) {

	r, err := New(res.Best, step)
	if err != nil {
		return nil, err
	}

	r.Search = &Search{
		RunID:             res.RunID,
		StartTaylorDegree: res.StartTaylorDegree,
		Iterations:        res.Iterations,
		Converged:         res.Converged,
		Errors:            res.Errors,
	}

	return r, nil
}

func (r *Approximation) summary() (rows [][]string) {

	rows = [][]string{
		{"function", r.Function},
		{"interval", bignum.NewInterval(r.Interval[0], r.Interval[1]).String()},
		{"polynomial degree", strconv.Itoa(r.PolynomialDegree)},
		{"Taylor degree", strconv.Itoa(r.TaylorDegree)},
		{"point", formatFloat(r.Point)},
		{"polynomial", r.Polynomial},
		{"digest", r.Digest},
		{"economization bound", formatFloat(r.Bound)},
		{"max error", formatFloat(r.Error.Max)},
		{"mean error", formatFloat(r.Error.Mean)},
		{"error std dev", formatFloat(r.Error.StdDev)},
		{"samples", strconv.Itoa(r.Error.Samples)},
	}

	if r.NumericMaxError != nil {
		rows = append(rows, []string{"numeric max error", formatFloat(*r.NumericMaxError)})
	}

	if s := r.Search; s != nil {
		rows = append(rows,
			[]string{"run id", s.RunID},
			[]string{"start Taylor degree", strconv.Itoa(s.StartTaylorDegree)},
			[]string{"iterations", strconv.Itoa(s.Iterations)},
			[]string{"converged", strconv.FormatBool(s.Converged)},
		)
	}

	return
}

func (r *Approximation) rows() (rows [][]string) {

	rows = r.summary()

	for i, c := range r.Coefficients {
		rows = append(rows, []string{fmt.Sprintf("coefficient x^%d", len(r.Coefficients)-1-i), formatFloat(c)})
	}

	return
}

// Write renders r to w in the given config output format.
func (r *Approximation) Write(w io.Writer, format string) error {
	if format == config.FormatMarkdown {
		_, err := fmt.Fprintf(w, "## %s\n\n%s\n%s", r.title, markdownTable([]string{"Property", "Value"}, r.summary()), r.markdown)
		return err
	}
	return write(w, format, r, r.title, []string{"Property", "Value"}, r.rows())
}

// Curve is a sampled curve.
type Curve struct {
	Title  string                `json:"title" yaml:"title"`
	Points []approximation.Point `json:"points" yaml:"points"`
}

// NewCurve returns the curve of the finite points, which JSON can encode.
func NewCurve(title string, points []approximation.Point) *Curve {
	c := &Curve{Title: title, Points: make([]approximation.Point, 0, len(points))}
	for _, p := range points {
		if !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) {
			c.Points = append(c.Points, p)
		}
	}
	return c
}

// Write renders c to w in the given config output format.
func (c *Curve) Write(w io.Writer, format string) error {
	rows := make([][]string, len(c.Points))
	for i, p := range c.Points {
		rows[i] = []string{formatFloat(p.X), formatFloat(p.Y)}
	}
	return write(w, format, c, c.Title, []string{"x", "y"}, rows)
}

// Chebyshev is the report of a Chebyshev polynomial.
type Chebyshev struct {
	Degree     int    `json:"degree" yaml:"degree"`
	Polynomial string `json:"polynomial" yaml:"polynomial"`
	Normalised string `json:"normalised" yaml:"normalised"`
	Digest     string `json:"digest" yaml:"digest"`
}

// NewChebyshev builds the reports of T_from to T_to with the given cache.
func NewChebyshev(cache *chebyshev.Cache, from, to int) (reports []Chebyshev, err error) {
	for n := from; n <= to; n++ {

		var tn, normalised bignum.Polynomial

		if tn, err = cache.Get(n); err != nil {
			return nil, err
		}

		if normalised, err = cache.GetNormalised(n); err != nil {
			return nil, err
		}

		reports = append(reports, Chebyshev{
			Degree:     n,
			Polynomial: tn.String(),
			Normalised: normalised.String(),
			Digest:     tn.Digest(),
		})
	}
	return
}

// WriteChebyshev renders reports to w in the given config output format.
func WriteChebyshev(w io.Writer, format string, reports []Chebyshev) error {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		rows[i] = []string{fmt.Sprintf("T_%d", r.Degree), r.Polynomial, r.Normalised}
	}
	return write(w, format, reports, "Chebyshev polynomials", []string{"n", "T_n", "T_n / 2^(n-1)"}, rows)
}

func write(w io.Writer, format string, v interface{}, title string, headers []string, rows [][]string) (err error) {

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return
		}
		return enc.Close()

	case config.FormatMarkdown:
		_, err = fmt.Fprintf(w, "## %s\n\n%s", title, markdownTable(headers, rows))
		return

	case config.FormatTable, "":
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		_, err = fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(title), t.String())
		return
	}

	return fmt.Errorf("%w: unknown output format %q", config.ErrInvalidConfig, format)
}

func markdownTable(headers []string, rows [][]string) string {

	var sb strings.Builder

	line := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(c, "|", `\|`))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	line(headers)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)

	for _, row := range rows {
		line(row)
	}

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
