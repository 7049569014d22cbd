package asm

import (
	"strings"

	"github.com/jkorinth/rusm64"
)

// OperandKind identifies the surface syntax an operand was written in.
// The addressing-mode classifier (classify.go) maps a (mnemonic,
// OperandKind) pair onto one of the thirteen rusm64.Mode values.
type OperandKind byte

const (
	OperandNone OperandKind = iota
	OperandAccumulator      // explicit "A"
	OperandImmediate        // #expr
	OperandAddress          // expr
	OperandIndexedX         // expr,X
	OperandIndexedY         // expr,Y
	OperandIndirect         // (expr)
	OperandIndexedIndirect  // (expr,X)
	OperandIndirectIndexed  // (expr),Y
)

// Operand is an instruction's argument as written in source: a surface
// kind plus the expression it wraps (nil for OperandNone and
// OperandAccumulator).
type Operand struct {
	Kind OperandKind
	Expr *expr
}

// Op is a mnemonic plus its optional operand. mode caches the
// addressing mode Pass 1 classified this operand as; Pass 2 reuses it
// rather than reclassifying, since by Pass 2 every label is bound and
// a forward reference that Pass 1 conservatively sized as Absolute
// could otherwise now evaluate small enough to look like ZeroPage —
// which would silently break monotone sizing.
type Op struct {
	Sym     rusm64.Opsym
	Operand *Operand
	mode    rusm64.Mode
	sized   bool
}

// DirectiveItem is one comma-separated element of a .byte/.db or
// .word/.dw directive: either a quoted string (each byte emitted
// individually) or an arithmetic expression.
type DirectiveItem struct {
	IsString bool
	Str      string
	Expr     *expr
}

// Directive is a parsed ".name args" line. Only the field matching
// Name is meaningful; see directive.go for dispatch.
type Directive struct {
	Name      string
	Expr      *expr  // .org or .const value
	ConstName string // .const name
	Items     []DirectiveItem
	Text      string // .text/.ascii literal content
}

// Line is one line of source: at most one of Op or Directive is set.
// A label-only line has both nil; blank and comment-only lines produce
// no Line at all. Comment holds the line's ';' comment, marker
// included, or is empty.
type Line struct {
	LineNo  int
	Label   string
	Op      *Op
	Dir     *Directive
	Comment string
	Raw     string
}

// Parse tokenizes and parses source into an ordered program. It
// performs no semantic analysis (no addressing-mode classification, no
// symbol resolution) — those are components C and E, driven by
// resolve.go.
func Parse(source string) ([]*Line, error) {
	rawLines := strings.Split(source, "\n")
	lines := make([]*Line, 0, len(rawLines))
	for i, raw := range rawLines {
		lineNo := i + 1
		c := newCursor(lineNo, raw)
		code, comment := c.stripComment()
		l, err := parseLine(lineNo, code, raw)
		if err != nil {
			return nil, err
		}
		if l != nil {
			l.Comment = comment
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func parseLine(lineNo int, c cursor, raw string) (*Line, error) {
	c = c.consumeWhitespace()
	if c.isEmpty() {
		return nil, nil
	}

	l := &Line{LineNo: lineNo, Raw: raw}

	if c.startsWith(isIdentStart) {
		ident, rem := c.consumeWhile(isIdentChar)
		if rem.startsWithByte(':') {
			l.Label = ident.text
			c = rem.consume(1).consumeWhitespace()
		}
	}

	if c.isEmpty() {
		return l, nil
	}

	switch {
	case c.startsWith(isDirectiveStart):
		dir, rem, err := parseDirective(c)
		if err != nil {
			return nil, err
		}
		l.Dir = dir
		c = rem
	case c.startsWith(isAlpha):
		op, rem, err := parseOp(lineNo, c)
		if err != nil {
			return nil, err
		}
		l.Op = op
		c = rem
	default:
		return nil, &ParseError{Line: lineNo, Expectation: "label, directive, or instruction"}
	}

	c = c.consumeWhitespace()
	if !c.isEmpty() {
		return nil, &ParseError{Line: lineNo, Expectation: "end of line"}
	}
	return l, nil
}

func parseOp(lineNo int, c cursor) (*Op, cursor, error) {
	mnemonic, rem := c.consumeWhile(isAlpha)
	sym, ok := rusm64.ParseOpsym(mnemonic.text)
	if !ok {
		return nil, rem, &UnknownOpcodeError{Line: lineNo, Mnemonic: mnemonic.text}
	}
	rem = rem.consumeWhitespace()
	if rem.isEmpty() {
		return &Op{Sym: sym}, rem, nil
	}
	operand, rem, err := parseOperand(lineNo, rem)
	if err != nil {
		return nil, rem, err
	}
	return &Op{Sym: sym, Operand: operand}, rem, nil
}

func parseOperand(lineNo int, c cursor) (*Operand, cursor, error) {
	switch {
	case c.startsWithByte('#'):
		e, rem, err := parseExpr(c.consume(1))
		if err != nil {
			return nil, rem, err
		}
		return &Operand{Kind: OperandImmediate, Expr: e}, rem, nil

	case c.startsWithByte('('):
		e, rem, err := parseExpr(c.consume(1))
		if err != nil {
			return nil, rem, err
		}
		rem = rem.consumeWhitespace()
		switch {
		case rem.startsWithByte(','):
			rem = rem.consume(1).consumeWhitespace()
			if !(rem.startsWith(isAlpha) && (rem.peek() == 'X' || rem.peek() == 'x')) {
				return nil, rem, &ParseError{Line: lineNo, Expectation: "'X' in indexed-indirect operand"}
			}
			rem = rem.consume(1).consumeWhitespace()
			if !rem.startsWithByte(')') {
				return nil, rem, &ParseError{Line: lineNo, Expectation: "')'"}
			}
			return &Operand{Kind: OperandIndexedIndirect, Expr: e}, rem.consume(1), nil
		case rem.startsWithByte(')'):
			rem = rem.consume(1).consumeWhitespace()
			if rem.startsWithByte(',') {
				rem = rem.consume(1).consumeWhitespace()
				if !(rem.startsWith(isAlpha) && (rem.peek() == 'Y' || rem.peek() == 'y')) {
					return nil, rem, &ParseError{Line: lineNo, Expectation: "'Y' in indirect-indexed operand"}
				}
				return &Operand{Kind: OperandIndirectIndexed, Expr: e}, rem.consume(1), nil
			}
			return &Operand{Kind: OperandIndirect, Expr: e}, rem, nil
		default:
			return nil, rem, &ParseError{Line: lineNo, Expectation: "',' or ')'"}
		}

	case (c.peek() == 'A' || c.peek() == 'a') && c.consume(1).consumeWhitespace().isEmpty():
		return &Operand{Kind: OperandAccumulator}, c.consume(1), nil

	default:
		e, rem, err := parseExpr(c)
		if err != nil {
			return nil, rem, err
		}
		rem = rem.consumeWhitespace()
		if rem.startsWithByte(',') {
			rem = rem.consume(1).consumeWhitespace()
			switch {
			case rem.peek() == 'X' || rem.peek() == 'x':
				return &Operand{Kind: OperandIndexedX, Expr: e}, rem.consume(1), nil
			case rem.peek() == 'Y' || rem.peek() == 'y':
				return &Operand{Kind: OperandIndexedY, Expr: e}, rem.consume(1), nil
			default:
				return nil, rem, &ParseError{Line: lineNo, Expectation: "'X' or 'Y' index register"}
			}
		}
		return &Operand{Kind: OperandAddress, Expr: e}, rem, nil
	}
}

func parseDirective(c cursor) (*Directive, cursor, error) {
	lineNo := c.row
	c = c.consume(1) // '.'
	name, rem := c.consumeWhile(isIdentChar)
	lname := strings.ToLower(name.text)
	rem = rem.consumeWhitespace()

	switch lname {
	case "org":
		e, rem, err := parseExpr(rem)
		if err != nil {
			return nil, rem, err
		}
		return &Directive{Name: "org", Expr: e}, rem, nil

	case "const":
		ident, afterName := rem.consumeWhile(isIdentChar)
		if ident.isEmpty() {
			return nil, afterName, &ParseError{Line: lineNo, Expectation: "constant name"}
		}
		afterName = afterName.consumeWhitespace()
		e, rem, err := parseExpr(afterName)
		if err != nil {
			return nil, rem, err
		}
		return &Directive{Name: "const", ConstName: ident.text, Expr: e}, rem, nil

	case "byte", "db", "word", "dw":
		items, rem, err := parseItemList(lineNo, rem)
		if err != nil {
			return nil, rem, err
		}
		canon := "byte"
		if lname == "word" || lname == "dw" {
			canon = "word"
		}
		return &Directive{Name: canon, Items: items}, rem, nil

	case "text", "ascii":
		text, rem, err := parseTextArg(lineNo, rem)
		if err != nil {
			return nil, rem, err
		}
		return &Directive{Name: "text", Text: text}, rem, nil

	case "include":
		text, rem, err := parseTextArg(lineNo, rem)
		if err != nil {
			return nil, rem, err
		}
		return &Directive{Name: "include", Text: text}, rem, nil

	default:
		return nil, rem, &UnknownDirectiveError{Line: lineNo, Name: "." + name.text}
	}
}

func parseItemList(lineNo int, c cursor) ([]DirectiveItem, cursor, error) {
	var items []DirectiveItem
	for {
		c = c.consumeWhitespace()
		if c.startsWithByte('"') {
			s, rem, err := parseQuotedString(lineNo, c)
			if err != nil {
				return nil, rem, err
			}
			items = append(items, DirectiveItem{IsString: true, Str: s})
			c = rem
		} else {
			e, rem, err := parseExpr(c)
			if err != nil {
				return nil, rem, err
			}
			items = append(items, DirectiveItem{Expr: e})
			c = rem
		}
		c = c.consumeWhitespace()
		if c.startsWithByte(',') {
			c = c.consume(1)
			continue
		}
		break
	}
	return items, c, nil
}

func parseQuotedString(lineNo int, c cursor) (string, cursor, error) {
	c = c.consume(1) // opening quote
	body, rem := c.consumeUntil(func(b byte) bool { return b == '"' })
	if !rem.startsWithByte('"') {
		return "", rem, &ParseError{Line: lineNo, Expectation: "closing '\"'"}
	}
	return body.text, rem.consume(1), nil
}

func parseTextArg(lineNo int, c cursor) (string, cursor, error) {
	c = c.consumeWhitespace()
	if c.startsWithByte('"') {
		return parseQuotedString(lineNo, c)
	}
	rest, rem := c.consumeUntil(isWhitespace)
	return rest.text, rem, nil
}
