package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/numerics/economize/utils/bignum"
)

// Expr is an expression tree in the variable x. It implements Function.
// The zero value is not a valid expression; use Parse or the constructors.
type Expr struct {
	n node
}

// Series implements Function.
func (e Expr) Series(point *big.Rat, order int, prec uint) ([]*big.Rat, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order %d must be positive", ErrInvalidOrder, order)
	}
	s, err := e.n.series(point, order, prec)
	if err != nil {
		return nil, fmt.Errorf("cannot expand %s around %s: %w", e, point.RatString(), err)
	}
	return s, nil
}

// Evaluate implements Function.
func (e Expr) Evaluate(x *big.Float) (*big.Float, error) {
	y, err := e.n.eval(x)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %s at %s: %w", e, x.Text('g', 10), err)
	}
	return y, nil
}

// String implements Function.
func (e Expr) String() string {
	return e.n.String()
}

// IsConstant returns true if e does not depend on x.
func (e Expr) IsConstant() bool {
	return isConstant(e.n)
}

// X returns the variable x.
func X() Expr { return Expr{variable{}} }

// Const returns the constant c.
func Const(c *big.Rat) Expr { return Expr{constant{new(big.Rat).Set(c)}} }

// Int returns the constant n.
func Int(n int64) Expr { return Const(big.NewRat(n, 1)) }

// Pi returns the constant Pi.
func Pi() Expr { return Expr{named{"pi", bignum.Pi}} }

// E returns Euler's number.
func E() Expr { return Expr{named{"e", bignum.E}} }

// Neg returns -a.
func Neg(a Expr) Expr { return Expr{negation{a.n}} }

// Add returns a + b.
func Add(a, b Expr) Expr { return Expr{binary{'+', a.n, b.n}} }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Expr{binary{'-', a.n, b.n}} }

// Mul returns a * b.
func Mul(a, b Expr) Expr { return Expr{binary{'*', a.n, b.n}} }

// Div returns a / b.
func Div(a, b Expr) Expr { return Expr{binary{'/', a.n, b.n}} }

// Pow returns base^p for a constant rational exponent p.
func Pow(base Expr, p *big.Rat) Expr { return Expr{power{base.n, new(big.Rat).Set(p)}} }

// Sin returns sin(a).
func Sin(a Expr) Expr { return Expr{call{"sin", a.n}} }

// Cos returns cos(a).
func Cos(a Expr) Expr { return Expr{call{"cos", a.n}} }

// Tan returns tan(a).
func Tan(a Expr) Expr { return Expr{call{"tan", a.n}} }

// Exp returns exp(a).
func Exp(a Expr) Expr { return Expr{call{"exp", a.n}} }

// Log returns the natural logarithm of a.
func Log(a Expr) Expr { return Expr{call{"log", a.n}} }

// Sqrt returns the square root of a.
func Sqrt(a Expr) Expr { return Expr{call{"sqrt", a.n}} }

// Sinh returns sinh(a).
func Sinh(a Expr) Expr { return Expr{call{"sinh", a.n}} }

// Cosh returns cosh(a).
func Cosh(a Expr) Expr { return Expr{call{"cosh", a.n}} }

// Tanh returns tanh(a).
func Tanh(a Expr) Expr { return Expr{call{"tanh", a.n}} }

var builtins = map[string]func(Expr) Expr{
	"sin":  Sin,
	"cos":  Cos,
	"tan":  Tan,
	"exp":  Exp,
	"log":  Log,
	"ln":   Log,
	"sqrt": Sqrt,
	"sinh": Sinh,
	"cosh": Cosh,
	"tanh": Tanh,
}

// Builtins returns the sorted names of the functions recognised by Apply and Parse.
func Builtins() (names []string) {
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Apply returns name(a) for one of the Builtins.
func Apply(name string, a Expr) (Expr, error) {
	f, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Expr{}, fmt.Errorf("%w: unknown function %q", ErrSyntax, name)
	}
	return f(a), nil
}

func isConstant(n node) bool {
	switch n := n.(type) {
	case variable:
		return false
	case negation:
		return isConstant(n.a)
	case binary:
		return isConstant(n.l) && isConstant(n.r)
	case power:
		return isConstant(n.base)
	case call:
		return isConstant(n.arg)
	}
	return true
}

func wrap(n node, min int) string {
	if n.precedence() < min {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// variable is x.
type variable struct{}

func (variable) precedence() int { return precAtom }
func (variable) String() string  { return "x" }

func (variable) series(point *big.Rat, order int, prec uint) (series, error) {
	s := constSeries(point, order)
	if order > 1 {
		s[1].SetInt64(1)
	}
	return s, nil
}

func (variable) eval(x *big.Float) (*big.Float, error) {
	return new(big.Float).Copy(x), nil
}

// constant is an exact rational.
type constant struct {
	value *big.Rat
}

func (c constant) precedence() int {
	switch {
	case c.value.Sign() < 0:
		return precNeg
	case !c.value.IsInt():
		return precMul
	}
	return precAtom
}

func (c constant) String() string {
	return c.value.RatString()
}

func (c constant) series(point *big.Rat, order int, prec uint) (series, error) {
	return constSeries(c.value, order), nil
}

func (c constant) eval(x *big.Float) (*big.Float, error) {
	return bignum.NewFloat(c.value, x.Prec()), nil
}

// named is an irrational constant such as pi.
type named struct {
	name  string
	value func(prec uint) *big.Float
}

func (c named) precedence() int { return precAtom }
func (c named) String() string  { return c.name }

func (c named) series(point *big.Rat, order int, prec uint) (series, error) {
	return constSeries(bignum.NewRat(c.value(prec)), order), nil
}

func (c named) eval(x *big.Float) (*big.Float, error) {
	return c.value(x.Prec()), nil
}

// negation is -a.
type negation struct {
	a node
}

func (n negation) precedence() int { return precNeg }
func (n negation) String() string  { return "-" + wrap(n.a, precNeg) }

func (n negation) series(point *big.Rat, order int, prec uint) (series, error) {
	s, err := n.a.series(point, order, prec)
	if err != nil {
		return nil, err
	}
	return s.scale(big.NewRat(-1, 1)), nil
}

func (n negation) eval(x *big.Float) (*big.Float, error) {
	y, err := n.a.eval(x)
	if err != nil {
		return nil, err
	}
	return y.Neg(y), nil
}

// binary is l op r for op in + - * /.
type binary struct {
	op   byte
	l, r node
}

func (b binary) precedence() int {
	if b.op == '+' || b.op == '-' {
		return precAdd
	}
	return precMul
}

func (b binary) String() string {
	p := b.precedence()
	right := p
	if b.op == '-' || b.op == '/' {
		right++
	}
	if b.op == '+' || b.op == '-' {
		return wrap(b.l, p) + " " + string(b.op) + " " + wrap(b.r, right)
	}
	return wrap(b.l, p) + string(b.op) + wrap(b.r, right)
}

func (b binary) series(point *big.Rat, order int, prec uint) (series, error) {

	l, err := b.l.series(point, order, prec)
	if err != nil {
		return nil, err
	}

	r, err := b.r.series(point, order, prec)
	if err != nil {
		return nil, err
	}

	switch b.op {
	case '+':
		return l.add(r), nil
	case '-':
		return l.sub(r), nil
	case '*':
		return l.mul(r), nil
	default:
		return l.quo(r)
	}
}

func (b binary) eval(x *big.Float) (*big.Float, error) {

	l, err := b.l.eval(x)
	if err != nil {
		return nil, err
	}

	r, err := b.r.eval(x)
	if err != nil {
		return nil, err
	}

	y := new(big.Float).SetPrec(x.Prec())

	switch b.op {
	case '+':
		return y.Add(l, r), nil
	case '-':
		return y.Sub(l, r), nil
	case '*':
		return y.Mul(l, r), nil
	default:
		if r.Sign() == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrDomain)
		}
		return y.Quo(l, r), nil
	}
}

// power is base^exp for a constant rational exponent.
type power struct {
	base node
	exp  *big.Rat
}

func (p power) precedence() int { return precPow }

func (p power) String() string {
	exp := p.exp.RatString()
	if p.exp.Sign() < 0 || !p.exp.IsInt() {
		exp = "(" + exp + ")"
	}
	return wrap(p.base, precAtom) + "^" + exp
}

func (p power) series(point *big.Rat, order int, prec uint) (series, error) {

	s, err := p.base.series(point, order, prec)
	if err != nil {
		return nil, err
	}

	if p.exp.IsInt() && p.exp.Num().IsInt64() {
		return s.powInt(p.exp.Num().Int64())
	}

	c := s[0]

	switch c.Sign() {
	case 0:
		return nil, fmt.Errorf("%w: %s^(%s) at a zero of the base", ErrSingular, p.base, p.exp.RatString())
	case -1:
		return nil, fmt.Errorf("%w: non-integer power of a negative base", ErrDomain)
	}

	// (c + h)^p = c^p * sum C(p, k) (h/c)^k
	cp := evalRat(func(x *big.Float) *big.Float {
		return bignum.Pow(x, bignum.NewFloat(p.exp, prec))
	}, c, prec)

	d := make([]*big.Rat, order)
	ck := big.NewRat(1, 1)
	for k := range d {
		d[k] = new(big.Rat).Mul(cp, binomial(p.exp, k))
		d[k].Quo(d[k], ck)
		ck.Mul(ck, c)
	}

	return s.compose(d), nil
}

func (p power) eval(x *big.Float) (*big.Float, error) {

	base, err := p.base.eval(x)
	if err != nil {
		return nil, err
	}

	prec := x.Prec()

	if p.exp.IsInt() && p.exp.Num().IsInt64() {

		n := p.exp.Num().Int64()
		neg := n < 0
		if neg {
			if base.Sign() == 0 {
				return nil, fmt.Errorf("%w: negative power of zero", ErrDomain)
			}
			n = -n
		}

		y := bignum.NewFloat(1, prec)
		b := new(big.Float).SetPrec(prec).Set(base)
		for n > 0 {
			if n&1 == 1 {
				y.Mul(y, b)
			}
			b.Mul(b, b)
			n >>= 1
		}

		if neg {
			y.Quo(bignum.NewFloat(1, prec), y)
		}

		return y, nil
	}

	switch base.Sign() {
	case -1:
		return nil, fmt.Errorf("%w: non-integer power of a negative number", ErrDomain)
	case 0:
		if p.exp.Sign() > 0 {
			return bignum.NewFloat(0, prec), nil
		}
		return nil, fmt.Errorf("%w: negative power of zero", ErrDomain)
	}

	return bignum.Pow(base, bignum.NewFloat(p.exp, prec)), nil
}

// call is name(arg) for one of the builtin functions.
type call struct {
	name string
	arg  node
}

func (c call) precedence() int { return precAtom }
func (c call) String() string  { return c.name + "(" + c.arg.String() + ")" }

func (c call) series(point *big.Rat, order int, prec uint) (series, error) {

	s, err := c.arg.series(point, order, prec)
	if err != nil {
		return nil, err
	}

	c0 := s[0]
	one := big.NewRat(1, 1)

	switch c.name {
	case "exp":
		e := one
		if c0.Sign() != 0 {
			e = evalRat(bignum.Exp, c0, prec)
		}
		return s.compose(cyclic(order, e)), nil

	case "sin":
		sin, cos := sinCos(c0, prec)
		return s.compose(cyclic(order, sin, cos, neg(sin), neg(cos))), nil

	case "cos":
		sin, cos := sinCos(c0, prec)
		return s.compose(cyclic(order, cos, neg(sin), neg(cos), sin)), nil

	case "sinh":
		sinh, cosh := sinhCosh(c0, prec)
		return s.compose(cyclic(order, sinh, cosh)), nil

	case "cosh":
		sinh, cosh := sinhCosh(c0, prec)
		return s.compose(cyclic(order, cosh, sinh)), nil

	case "tan":
		sin, cos := sinCos(c0, prec)
		return s.compose(cyclic(order, sin, cos, neg(sin), neg(cos))).quo(s.compose(cyclic(order, cos, neg(sin), neg(cos), sin)))

	case "tanh":
		sinh, cosh := sinhCosh(c0, prec)
		return s.compose(cyclic(order, sinh, cosh)).quo(s.compose(cyclic(order, cosh, sinh)))

	case "log":
		switch c0.Sign() {
		case 0:
			return nil, fmt.Errorf("%w: log(%s) at a zero of its argument", ErrSingular, c.arg)
		case -1:
			return nil, fmt.Errorf("%w: log of a negative number", ErrDomain)
		}

		// log(c + h) = log(c) + sum_{k>0} (-1)^{k+1} (h/c)^k / k
		d := make([]*big.Rat, order)
		d[0] = new(big.Rat)
		if c0.Cmp(one) != 0 {
			d[0] = evalRat(bignum.Log, c0, prec)
		}
		ck := new(big.Rat).Set(c0)
		for k := 1; k < order; k++ {
			d[k] = new(big.Rat).Mul(ck, big.NewRat(int64(k), 1))
			d[k].Inv(d[k])
			if k&1 == 0 {
				d[k].Neg(d[k])
			}
			ck.Mul(ck, c0)
		}
		return s.compose(d), nil

	case "sqrt":
		return power{c.arg, big.NewRat(1, 2)}.series(point, order, prec)
	}

	return nil, fmt.Errorf("%w: unknown function %q", ErrSyntax, c.name)
}

func (c call) eval(x *big.Float) (*big.Float, error) {

	y, err := c.arg.eval(x)
	if err != nil {
		return nil, err
	}

	switch c.name {
	case "exp":
		return bignum.Exp(y), nil
	case "sin":
		return bignum.Sin(y), nil
	case "cos":
		return bignum.Cos(y), nil
	case "tan":
		cos := bignum.Cos(y)
		if cos.Sign() == 0 {
			return nil, fmt.Errorf("%w: tan at a pole", ErrDomain)
		}
		return cos.Quo(bignum.Sin(y), cos), nil
	case "sinh":
		return bignum.SinH(y), nil
	case "cosh":
		return bignum.CosH(y), nil
	case "tanh":
		return bignum.TanH(y), nil
	case "log":
		if y.Sign() <= 0 {
			return nil, fmt.Errorf("%w: log of a non-positive number", ErrDomain)
		}
		return bignum.Log(y), nil
	case "sqrt":
		if y.Sign() < 0 {
			return nil, fmt.Errorf("%w: square root of a negative number", ErrDomain)
		}
		return new(big.Float).SetPrec(y.Prec()).Sqrt(y), nil
	}

	return nil, fmt.Errorf("%w: unknown function %q", ErrSyntax, c.name)
}

func neg(x *big.Rat) *big.Rat {
	return new(big.Rat).Neg(x)
}

func sinCos(c *big.Rat, prec uint) (sin, cos *big.Rat) {
	if c.Sign() == 0 {
		return new(big.Rat), big.NewRat(1, 1)
	}
	return evalRat(bignum.Sin, c, prec), evalRat(bignum.Cos, c, prec)
}

func sinhCosh(c *big.Rat, prec uint) (sinh, cosh *big.Rat) {
	if c.Sign() == 0 {
		return new(big.Rat), big.NewRat(1, 1)
	}
	return evalRat(bignum.SinH, c, prec), evalRat(bignum.CosH, c, prec)
}
