package asm

import (
	"fmt"
	"strconv"
)

type exprKind byte

const (
	exprNumber exprKind = iota
	exprIdent
	exprHere
	exprUnary
	exprBinary
)

// expr is a parsed arithmetic expression: a numeric literal, a symbol
// reference (label or constant), the here-token '*', a unary lo-byte
// ('<'), hi-byte ('>') or negation ('-') wrapper, or a binary +,-,*,/
// operation. Parenthesization only affects parse order; it leaves no
// trace in the tree.
type expr struct {
	kind  exprKind
	num   int
	ident string
	op    byte
	left  *expr
	right *expr
}

// env supplies the symbol bindings an expr evaluates against: labels
// bound by Pass 1, constants bound by .const directives, and the
// program counter value ('*') at the start of the current line.
type env struct {
	Labels    map[string]int
	Constants map[string]*expr
	Here      int
	visiting  map[string]bool
}

// eval evaluates e against env. The second return value is false (with
// a nil error) when the expression references a symbol not yet known —
// the caller treats that as a forward reference, not a failure. A
// non-nil error always means a genuine evaluation fault (division by
// zero or a circular constant).
func (e *expr) eval(en *env) (int, bool, error) {
	switch e.kind {
	case exprNumber:
		return e.num, true, nil
	case exprHere:
		return en.Here, true, nil
	case exprIdent:
		if v, ok := en.Labels[e.ident]; ok {
			return v, true, nil
		}
		if c, ok := en.Constants[e.ident]; ok {
			if en.visiting == nil {
				en.visiting = make(map[string]bool)
			}
			if en.visiting[e.ident] {
				return 0, false, &InvalidExpressionError{Reason: fmt.Sprintf("circular constant reference: %s", e.ident)}
			}
			en.visiting[e.ident] = true
			v, resolved, err := c.eval(en)
			delete(en.visiting, e.ident)
			return v, resolved, err
		}
		return 0, false, nil
	case exprUnary:
		v, resolved, err := e.left.eval(en)
		if err != nil || !resolved {
			return 0, resolved, err
		}
		switch e.op {
		case '<':
			return v & 0xff, true, nil
		case '>':
			return (v >> 8) & 0xff, true, nil
		case '-':
			return -v, true, nil
		}
	case exprBinary:
		lv, lr, err := e.left.eval(en)
		if err != nil {
			return 0, false, err
		}
		rv, rr, err := e.right.eval(en)
		if err != nil {
			return 0, false, err
		}
		if !lr || !rr {
			return 0, false, nil
		}
		switch e.op {
		case '+':
			return lv + rv, true, nil
		case '-':
			return lv - rv, true, nil
		case '*':
			return lv * rv, true, nil
		case '/':
			if rv == 0 {
				return 0, false, &InvalidExpressionError{Reason: "division by zero"}
			}
			return lv / rv, true, nil
		}
	}
	return 0, false, fmt.Errorf("unreachable expr kind %d", e.kind)
}

//
// parsing: expr := term (('+'|'-') term)*
//          term := factor (('*'|'/') factor)*
//          factor := ('<'|'>'|'-') factor | '(' expr ')' | '*' | number | ident
//

func parseExpr(c cursor) (*expr, cursor, error) {
	left, c, err := parseTerm(c)
	if err != nil {
		return nil, c, err
	}
	for {
		c = c.consumeWhitespace()
		if c.startsWithByte('+') || c.startsWithByte('-') {
			op := c.peek()
			c = c.consume(1).consumeWhitespace()
			right, rem, err := parseTerm(c)
			if err != nil {
				return nil, rem, err
			}
			left = &expr{kind: exprBinary, op: op, left: left, right: right}
			c = rem
			continue
		}
		break
	}
	return left, c, nil
}

func parseTerm(c cursor) (*expr, cursor, error) {
	left, c, err := parseFactor(c)
	if err != nil {
		return nil, c, err
	}
	for {
		c = c.consumeWhitespace()
		if c.startsWithByte('*') || c.startsWithByte('/') {
			op := c.peek()
			c = c.consume(1).consumeWhitespace()
			right, rem, err := parseFactor(c)
			if err != nil {
				return nil, rem, err
			}
			left = &expr{kind: exprBinary, op: op, left: left, right: right}
			c = rem
			continue
		}
		break
	}
	return left, c, nil
}

func parseFactor(c cursor) (*expr, cursor, error) {
	c = c.consumeWhitespace()
	if c.isEmpty() {
		return nil, c, &ParseError{Line: c.row, Expectation: "expression"}
	}
	switch {
	case c.startsWithByte('<'), c.startsWithByte('>'):
		op := c.peek()
		inner, rem, err := parseFactor(c.consume(1))
		if err != nil {
			return nil, rem, err
		}
		return &expr{kind: exprUnary, op: op, left: inner}, rem, nil
	case c.startsWithByte('-'):
		inner, rem, err := parseFactor(c.consume(1))
		if err != nil {
			return nil, rem, err
		}
		return &expr{kind: exprUnary, op: '-', left: inner}, rem, nil
	case c.startsWithByte('('):
		inner, rem, err := parseExpr(c.consume(1))
		if err != nil {
			return nil, rem, err
		}
		rem = rem.consumeWhitespace()
		if !rem.startsWithByte(')') {
			return nil, rem, &ParseError{Line: rem.row, Expectation: "')'"}
		}
		return inner, rem.consume(1), nil
	case c.startsWithByte('*'):
		return &expr{kind: exprHere}, c.consume(1), nil
	case c.startsWithByte('$'):
		digits, rem := c.consume(1).consumeWhile(isHexDigit)
		if digits.isEmpty() {
			return nil, rem, &ParseError{Line: c.row, Expectation: "hex digits after '$'"}
		}
		v, err := strconv.ParseInt(digits.text, 16, 32)
		if err != nil {
			return nil, rem, &ParseError{Line: c.row, Expectation: "valid hex literal"}
		}
		return &expr{kind: exprNumber, num: int(v)}, rem, nil
	case c.startsWithByte('%'):
		digits, rem := c.consume(1).consumeWhile(isBinaryDigit)
		if digits.isEmpty() {
			return nil, rem, &ParseError{Line: c.row, Expectation: "binary digits after '%'"}
		}
		v, err := strconv.ParseInt(digits.text, 2, 32)
		if err != nil {
			return nil, rem, &ParseError{Line: c.row, Expectation: "valid binary literal"}
		}
		return &expr{kind: exprNumber, num: int(v)}, rem, nil
	case c.startsWithByte('\''):
		if len(c.text) < 3 || c.text[2] != '\'' {
			return nil, c, &ParseError{Line: c.row, Expectation: "closing quote on char literal"}
		}
		return &expr{kind: exprNumber, num: int(c.text[1])}, c.consume(3), nil
	case isDigit(c.peek()):
		digits, rem := c.consumeWhile(isDigit)
		v, err := strconv.Atoi(digits.text)
		if err != nil {
			return nil, rem, &ParseError{Line: c.row, Expectation: "valid decimal literal"}
		}
		return &expr{kind: exprNumber, num: v}, rem, nil
	case isIdentStart(c.peek()):
		ident, rem := c.consumeWhile(isIdentChar)
		return &expr{kind: exprIdent, ident: ident.text}, rem, nil
	default:
		return nil, c, &ParseError{Line: c.row, Expectation: "expression"}
	}
}
