// Package expr evaluates restricted arithmetic expressions for numeric
// input fields, so a coordinate can be written as "sqrt(2)" or "3*4.5".
//
// Only a fixed allow-list of names is available: sqrt, sin, cos, tan, pow,
// abs and the constant pi. Any other identifier is an error rather than a
// silent zero, so a typo cannot masquerade as a valid value.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type function struct {
	arity int
	call  func(args []float64) float64
}

var functions = map[string]function{
	"sqrt": {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"sin":  {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":  {1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":  {1, func(a []float64) float64 { return math.Tan(a[0]) }},
	"abs":  {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"pow":  {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
}

var constants = map[string]float64{
	"pi": math.Pi,
}

// Eval evaluates an expression. An empty or all-whitespace input yields 0,
// matching the behavior of leaving a form field blank.
func Eval(input string) (float64, error) {
	src := strings.TrimSpace(input)
	if src == "" {
		return 0, nil
	}

	p := &parser{src: src}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.src[p.pos], p.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression %q does not evaluate to a finite number", input)
	}
	return v, nil
}

// parser is a recursive-descent evaluator over the grammar
//
//	expression = term { ("+" | "-") term }
//	term       = power { ("*" | "/") power }
//	power      = unary [ "^" power ]
//	unary      = "-" unary | primary
//	primary    = number | name [ "(" args ")" ] | "(" expression ")"
type parser struct {
	src string
	pos int
}

func (p *parser) expression() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('+'):
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v += rhs
		case p.accept('-'):
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.power()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('*'):
			rhs, err := p.power()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case p.accept('/'):
			rhs, err := p.power()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) power() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.accept('^') {
		// Right-associative: 2^3^2 is 2^(3^2).
		exp, err := p.power()
		if err != nil {
			return 0, err
		}
		return math.Pow(v, exp), nil
	}
	return v, nil
}

func (p *parser) unary() (float64, error) {
	p.skipSpace()
	if p.accept('-') {
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	c := p.src[p.pos]
	switch {
	case c == '(':
		p.pos++
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		if err := p.expect(')'); err != nil {
			return 0, err
		}
		return v, nil

	case c >= '0' && c <= '9' || c == '.':
		return p.number()

	case isNameStart(c):
		return p.name()
	}
	return 0, fmt.Errorf("unexpected %q at position %d", c, p.pos)
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		// Exponent form, e.g. 1.5e-3.
		if (c == 'e' || c == 'E') && p.pos > start {
			next := p.pos + 1
			if next < len(p.src) && (p.src[next] == '+' || p.src[next] == '-') {
				next++
			}
			if next < len(p.src) && p.src[next] >= '0' && p.src[next] <= '9' {
				p.pos = next
				continue
			}
		}
		break
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *parser) name() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && isNamePart(p.src[p.pos]) {
		p.pos++
	}
	name := strings.ToLower(p.src[start:p.pos])

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		fn, ok := functions[name]
		if !ok {
			return 0, fmt.Errorf("use of %q is not allowed", name)
		}
		p.pos++
		args, err := p.arguments()
		if err != nil {
			return 0, err
		}
		if len(args) != fn.arity {
			return 0, fmt.Errorf("%s expects %d argument(s), got %d", name, fn.arity, len(args))
		}
		return fn.call(args), nil
	}

	if v, ok := constants[name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("use of %q is not allowed", name)
}

func (p *parser) arguments() ([]float64, error) {
	var args []float64
	p.skipSpace()
	if p.accept(')') {
		return args, nil
	}
	for {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		p.skipSpace()
		if p.accept(',') {
			continue
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if !p.accept(c) {
		return fmt.Errorf("expected %q at position %d", c, p.pos)
	}
	return nil
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}
