package asm

import "github.com/jkorinth/rusm64"

// operandSize returns the number of operand bytes (excluding the
// opcode byte itself) an addressing mode occupies. This is fixed per
// mode, independent of the eventual operand value, which is what
// guarantees instruction sizes never change between Pass 1 and Pass 2.
func operandSize(mode rusm64.Mode) int {
	switch mode {
	case rusm64.Implied, rusm64.Accumulator:
		return 0
	case rusm64.Immediate, rusm64.ZeroPage, rusm64.ZeroPageX, rusm64.ZeroPageY,
		rusm64.Relative, rusm64.IndexedIndirect, rusm64.IndirectIndexed:
		return 1
	case rusm64.Absolute, rusm64.AbsoluteX, rusm64.AbsoluteY, rusm64.Indirect:
		return 2
	}
	return 0
}

// encodeOperand renders a known operand value into its little-endian
// byte encoding for mode, range-checking against the width that mode
// allows. Relative mode is never passed here — its byte is computed
// from a branch delta by the resolver's patch pass, not from a raw
// value.
func encodeOperand(lineNo int, mode rusm64.Mode, value int) ([]byte, error) {
	switch operandSize(mode) {
	case 0:
		return nil, nil
	case 1:
		if value < 0 || value > 0xFF {
			return nil, &ValueOutOfRangeError{Line: lineNo, Value: value, Limit: "must fit in one byte"}
		}
		return []byte{byte(value)}, nil
	case 2:
		if value < 0 || value > 0xFFFF {
			return nil, &ValueOutOfRangeError{Line: lineNo, Value: value, Limit: "must fit in two bytes"}
		}
		return []byte{byte(value), byte(value >> 8)}, nil
	}
	return nil, nil
}

// encodeRelative computes the signed branch-offset byte from the
// instruction's position (the address of the opcode byte) to target,
// per the 6502 convention that the offset is relative to the address
// of the byte following the two-byte branch instruction.
func encodeRelative(lineNo, pos, target int) (byte, error) {
	delta := target - (pos + 2)
	if delta < -128 || delta > 127 {
		return 0, &ValueOutOfRangeError{Line: lineNo, Value: delta, Limit: "branch offset must be in [-128,127]"}
	}
	return byte(int8(delta)), nil
}
