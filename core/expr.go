// core/expr.go
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Expr is a compiled motion expression over the single variable t.
//
// The grammar is deliberately closed: numeric literals, + - * / ^ (with ^
// right-associative), unary minus, parentheses, the constants pi and e, the
// variable t, and a fixed allow-list of math functions. There is no access to
// anything outside this namespace, so untrusted configuration can only ever
// describe a curve.
type Expr struct {
	src  string
	root exprNode
}

// ParseExpr compiles src into an evaluable expression. Unknown identifiers,
// malformed numbers, arity mismatches, and trailing input are all parse
// errors; evaluation itself cannot fail.
func ParseExpr(src string) (*Expr, error) {
	p := &exprParser{src: src}
	p.next()
	root, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("parse %q: unexpected %q at offset %d", src, p.tok.text, p.tok.pos)
	}
	return &Expr{src: src, root: root}, nil
}

// Eval evaluates the expression at parameter t. Division by zero follows
// IEEE semantics (Inf/NaN) rather than erroring, matching math package
// behaviour for the allowed functions.
func (e *Expr) Eval(t float64) float64 {
	return e.root.eval(t)
}

// String returns the original source of the expression.
func (e *Expr) String() string { return e.src }

// ---- AST ----

type exprNode interface {
	eval(t float64) float64
}

type constNode float64

func (n constNode) eval(float64) float64 { return float64(n) }

type varNode struct{}

func (varNode) eval(t float64) float64 { return t }

type negNode struct{ x exprNode }

func (n negNode) eval(t float64) float64 { return -n.x.eval(t) }

type binNode struct {
	op   byte // '+', '-', '*', '/', '^'
	l, r exprNode
}

func (n binNode) eval(t float64) float64 {
	l, r := n.l.eval(t), n.r.eval(t)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	default: // '^'
		return math.Pow(l, r)
	}
}

type callNode struct {
	fn   func(args []float64) float64
	args []exprNode
}

func (n callNode) eval(t float64) float64 {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		args[i] = a.eval(t)
	}
	return n.fn(args)
}

// ---- function and constant namespaces ----

type exprFunc struct {
	arity int
	fn    func(args []float64) float64
}

var exprFuncs = map[string]exprFunc{
	"sin":   {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":   {1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":   {1, func(a []float64) float64 { return math.Tan(a[0]) }},
	"sqrt":  {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"abs":   {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"exp":   {1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"log":   {1, func(a []float64) float64 { return math.Log(a[0]) }},
	"floor": {1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"pow":   {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"min":   {2, func(a []float64) float64 { return math.Min(a[0], a[1]) }},
	"max":   {2, func(a []float64) float64 { return math.Max(a[0], a[1]) }},
	"atan2": {2, func(a []float64) float64 { return math.Atan2(a[0], a[1]) }},
}

var exprConsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// ---- tokenizer ----

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * / ^
	tokLParen // (
	tokRParen // )
	tokComma  // ,
)

type exprToken struct {
	kind tokKind
	text string
	pos  int
	val  float64 // for tokNumber
}

type exprParser struct {
	src string
	off int
	tok exprToken
	err error
}

func (p *exprParser) next() {
	if p.err != nil {
		return
	}
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = exprToken{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.off]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		end := p.off
		for end < len(p.src) && (p.src[end] >= '0' && p.src[end] <= '9' || p.src[end] == '.') {
			end++
		}
		// scientific notation: 1e-3, 2.5E2
		if end < len(p.src) && (p.src[end] == 'e' || p.src[end] == 'E') {
			mark := end
			end++
			if end < len(p.src) && (p.src[end] == '+' || p.src[end] == '-') {
				end++
			}
			if end < len(p.src) && p.src[end] >= '0' && p.src[end] <= '9' {
				for end < len(p.src) && p.src[end] >= '0' && p.src[end] <= '9' {
					end++
				}
			} else {
				end = mark
			}
		}
		text := p.src[p.off:end]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.err = fmt.Errorf("parse %q: bad number %q at offset %d", p.src, text, start)
			p.tok = exprToken{kind: tokEOF, pos: start}
			return
		}
		p.off = end
		p.tok = exprToken{kind: tokNumber, text: text, pos: start, val: v}
	case unicode.IsLetter(rune(c)) || c == '_':
		end := p.off
		for end < len(p.src) {
			r := rune(p.src[end])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			end++
		}
		p.tok = exprToken{kind: tokIdent, text: p.src[p.off:end], pos: start}
		p.off = end
	case strings.IndexByte("+-*/^", c) >= 0:
		p.tok = exprToken{kind: tokOp, text: string(c), pos: start}
		p.off++
	case c == '(':
		p.tok = exprToken{kind: tokLParen, text: "(", pos: start}
		p.off++
	case c == ')':
		p.tok = exprToken{kind: tokRParen, text: ")", pos: start}
		p.off++
	case c == ',':
		p.tok = exprToken{kind: tokComma, text: ",", pos: start}
		p.off++
	default:
		p.err = fmt.Errorf("parse %q: illegal character %q at offset %d", p.src, string(c), start)
		p.tok = exprToken{kind: tokEOF, pos: start}
	}
}

// ---- recursive descent ----

func (p *exprParser) parseAdditive() (exprNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binNode{op: op, l: left, r: right}
	}
	return left, p.err
}

func (p *exprParser) parseMultiplicative() (exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binNode{op: op, l: left, r: right}
	}
	return left, p.err
}

func (p *exprParser) parseUnary() (exprNode, error) {
	if p.tok.kind == tokOp && (p.tok.text == "-" || p.tok.text == "+") {
		neg := p.tok.text == "-"
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if neg {
			return negNode{x: x}, nil
		}
		return x, nil
	}
	return p.parsePower()
}

// parsePower handles '^' right-associatively: 2^3^2 == 2^(3^2).
func (p *exprParser) parsePower() (exprNode, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokOp && p.tok.text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binNode{op: '^', l: base, r: exp}, nil
	}
	return base, p.err
}

func (p *exprParser) parsePrimary() (exprNode, error) {
	if p.err != nil {
		return nil, p.err
	}
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.val
		p.next()
		return constNode(v), p.err
	case tokLParen:
		p.next()
		inner, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("parse %q: missing ')' at offset %d", p.src, p.tok.pos)
		}
		p.next()
		return inner, p.err
	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		p.next()
		if p.tok.kind == tokLParen {
			fn, ok := exprFuncs[name]
			if !ok {
				return nil, fmt.Errorf("parse %q: unknown function %q at offset %d", p.src, name, pos)
			}
			p.next()
			var args []exprNode
			if p.tok.kind != tokRParen {
				for {
					arg, err := p.parseAdditive()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.tok.kind != tokComma {
						break
					}
					p.next()
				}
			}
			if p.tok.kind != tokRParen {
				return nil, fmt.Errorf("parse %q: missing ')' after %s arguments at offset %d", p.src, name, p.tok.pos)
			}
			p.next()
			if len(args) != fn.arity {
				return nil, fmt.Errorf("parse %q: %s takes %d argument(s), got %d", p.src, name, fn.arity, len(args))
			}
			return callNode{fn: fn.fn, args: args}, p.err
		}
		if name == "t" {
			return varNode{}, p.err
		}
		if v, ok := exprConsts[name]; ok {
			return constNode(v), p.err
		}
		return nil, fmt.Errorf("parse %q: unknown identifier %q at offset %d", p.src, name, pos)
	case tokEOF:
		return nil, fmt.Errorf("parse %q: unexpected end of expression", p.src)
	default:
		return nil, fmt.Errorf("parse %q: unexpected %q at offset %d", p.src, p.tok.text, p.tok.pos)
	}
}
