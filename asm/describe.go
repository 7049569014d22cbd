package asm

import (
	"fmt"
	"strings"
)

// DescribeLine renders a parsed Line back into a human-readable form,
// for the "parse" subcommand's dry-run output. It is not a faithful
// re-serialization of the original source — expressions are rendered
// from their parsed tree, not copied verbatim.
func DescribeLine(l *Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d: ", l.LineNo)
	if l.Label != "" {
		fmt.Fprintf(&b, "%s: ", l.Label)
	}
	switch {
	case l.Op != nil:
		fmt.Fprint(&b, l.Op.Sym.String())
		if l.Op.Operand != nil {
			fmt.Fprintf(&b, " %s", describeOperand(l.Op.Operand))
		}
	case l.Dir != nil:
		fmt.Fprintf(&b, ".%s %s", l.Dir.Name, describeDirective(l.Dir))
	}
	return b.String()
}

func describeOperand(o *Operand) string {
	e := describeExpr(o.Expr)
	switch o.Kind {
	case OperandAccumulator:
		return "A"
	case OperandImmediate:
		return "#" + e
	case OperandIndirect:
		return "(" + e + ")"
	case OperandIndexedIndirect:
		return "(" + e + ",X)"
	case OperandIndirectIndexed:
		return "(" + e + "),Y"
	case OperandIndexedX:
		return e + ",X"
	case OperandIndexedY:
		return e + ",Y"
	default:
		return e
	}
}

func describeDirective(d *Directive) string {
	switch d.Name {
	case "org":
		return describeExpr(d.Expr)
	case "const":
		return d.ConstName + " " + describeExpr(d.Expr)
	case "text", "include":
		return fmt.Sprintf("%q", d.Text)
	default:
		parts := make([]string, len(d.Items))
		for i, it := range d.Items {
			if it.IsString {
				parts[i] = fmt.Sprintf("%q", it.Str)
			} else {
				parts[i] = describeExpr(it.Expr)
			}
		}
		return strings.Join(parts, ", ")
	}
}

func describeExpr(e *expr) string {
	if e == nil {
		return ""
	}
	switch e.kind {
	case exprNumber:
		return fmt.Sprintf("%d", e.num)
	case exprIdent:
		return e.ident
	case exprHere:
		return "*"
	case exprUnary:
		return fmt.Sprintf("%c%s", e.op, describeExpr(e.left))
	case exprBinary:
		return fmt.Sprintf("(%s %c %s)", describeExpr(e.left), e.op, describeExpr(e.right))
	}
	return "?"
}
