package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"text/scanner"

	"github.com/numerics/economize/utils/bignum"
)

// Parse parses an expression in the variable x.
//
// The grammar accepts decimal literals (converted exactly to rationals), the
// variable x, the constants pi and e, the binary operators + - * / and ^ (or
// **, right associative), unary minus, parentheses and calls to the Builtins.
// An exponent must not depend on x unless the base is constant, in which case
// b^f is rewritten as exp(f*log(b)).
func Parse(src string) (Expr, error) {

	p := &parser{src: src}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("%w: %s at %s in %q", ErrSyntax, msg, s.Position, src)
		}
	}
	p.next()

	e := p.expr()

	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.text)
	}

	if p.err != nil {
		return Expr{}, p.err
	}

	return e, nil
}

// MustParse is Parse that panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	s    scanner.Scanner
	src  string
	tok  rune
	text string
	err  error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s at %s in %q", ErrSyntax, fmt.Sprintf(format, args...), p.s.Position, p.src)
	}
}

// expr = term { ("+" | "-") term }
func (p *parser) expr() (e Expr) {
	e = p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		r := p.term()
		if op == '+' {
			e = Add(e, r)
		} else {
			e = Sub(e, r)
		}
	}
	return
}

// term = unary { ("*" | "/") unary }
func (p *parser) term() (e Expr) {
	e = p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		op := p.tok
		p.next()
		r := p.unary()
		if op == '*' {
			e = Mul(e, r)
		} else {
			e = Div(e, r)
		}
	}
	return
}

// unary = "-" unary | "+" unary | power
func (p *parser) unary() Expr {
	switch p.tok {
	case '-':
		p.next()
		return Neg(p.unary())
	case '+':
		p.next()
		return p.unary()
	}
	return p.power()
}

// power = atom [ ("^" | "**") unary ]
func (p *parser) power() (e Expr) {

	e = p.atom()
	if p.err != nil {
		return
	}

	switch {
	case p.tok == '^':
		p.next()
	case p.tok == '*' && p.s.Peek() == '*':
		p.next()
		p.next()
	default:
		return
	}

	exp := p.unary()
	if p.err != nil {
		return
	}

	if exp.IsConstant() {
		v, err := exp.Series(new(big.Rat), 1, bignum.DefaultPrecision)
		if err != nil {
			p.fail("invalid exponent %s: %v", exp, err)
			return
		}
		return Pow(e, v[0])
	}

	if e.IsConstant() {
		return Exp(Mul(exp, Log(e)))
	}

	p.fail("exponent %s depends on x", exp)
	return
}

// atom = number | "x" | "pi" | "e" | ident "(" expr ")" | "(" expr ")"
func (p *parser) atom() (e Expr) {

	if p.err != nil {
		return
	}

	switch p.tok {
	case scanner.Int, scanner.Float:
		v, ok := new(big.Rat).SetString(p.text)
		if !ok {
			p.fail("invalid number %q", p.text)
			return
		}
		p.next()
		return Const(v)

	case scanner.Ident:
		name := strings.ToLower(p.text)
		p.next()

		switch name {
		case "x":
			return X()
		case "pi":
			return Pi()
		case "e":
			return E()
		}

		if p.tok != '(' {
			p.fail("unknown identifier %q", name)
			return
		}

		p.next()
		arg := p.expr()
		p.expect(')')

		if p.err != nil {
			return
		}

		var err error
		if e, err = Apply(name, arg); err != nil {
			p.fail("%v", err)
		}
		return

	case '(':
		p.next()
		e = p.expr()
		p.expect(')')
		return

	case scanner.EOF:
		p.fail("unexpected end of input")
		return
	}

	p.fail("unexpected %q", p.text)
	return
}

func (p *parser) expect(tok rune) {
	if p.err != nil {
		return
	}
	if p.tok != tok {
		p.fail("expected %q, found %q", string(tok), p.text)
		return
	}
	p.next()
}
