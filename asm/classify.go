package asm

import "github.com/jkorinth/rusm64"

// classify implements the addressing-mode classifier (component C):
// a deterministic mapping from an operand's surface syntax to one of
// the thirteen rusm64.Mode values. Branch mnemonics with a target
// expression always classify to Relative regardless of operand syntax;
// a branch with no target falls through to the rules below, which the
// opcode table then rejects. Absent operands classify to
// Implied, except that ASL/LSR/ROL/ROR classify to Accumulator whether
// the 'A' register is named explicitly or left implicit.
//
// Address/IndexedX/IndexedY operands classify to the zero-page family
// only when the operand's value is already known and fits in one byte
// and the (mnemonic, zero-page-mode) pair has a table entry; otherwise
// they classify to the absolute family. A symbol that hasn't been
// bound yet is therefore always classified Absolute — the monotone-
// sizing rule that lets the resolver converge without ever shrinking
// an instruction once placed.
func classify(sym rusm64.Opsym, op *Op, en *env) (rusm64.Mode, error) {
	if rusm64.Branches[sym] && op.Operand != nil && op.Operand.Expr != nil {
		return rusm64.Relative, nil
	}

	isShift := sym == rusm64.ASL || sym == rusm64.LSR || sym == rusm64.ROL || sym == rusm64.ROR

	if op.Operand == nil {
		if isShift {
			return rusm64.Accumulator, nil
		}
		return rusm64.Implied, nil
	}

	switch op.Operand.Kind {
	case OperandAccumulator:
		return rusm64.Accumulator, nil
	case OperandImmediate:
		return rusm64.Immediate, nil
	case OperandIndirect:
		return rusm64.Indirect, nil
	case OperandIndexedIndirect:
		return rusm64.IndexedIndirect, nil
	case OperandIndirectIndexed:
		return rusm64.IndirectIndexed, nil
	case OperandAddress:
		if fitsZeroPage(sym, op.Operand.Expr, rusm64.ZeroPage, en) {
			return rusm64.ZeroPage, nil
		}
		return rusm64.Absolute, nil
	case OperandIndexedX:
		if fitsZeroPage(sym, op.Operand.Expr, rusm64.ZeroPageX, en) {
			return rusm64.ZeroPageX, nil
		}
		return rusm64.AbsoluteX, nil
	case OperandIndexedY:
		if fitsZeroPage(sym, op.Operand.Expr, rusm64.ZeroPageY, en) {
			return rusm64.ZeroPageY, nil
		}
		return rusm64.AbsoluteY, nil
	}
	return rusm64.Implied, nil
}

func fitsZeroPage(sym rusm64.Opsym, e *expr, zpMode rusm64.Mode, en *env) bool {
	if _, ok := rusm64.Lookup(sym, zpMode); !ok {
		return false
	}
	v, resolved, err := e.eval(en)
	if err != nil || !resolved {
		return false
	}
	return v >= 0 && v <= 0xFF
}
