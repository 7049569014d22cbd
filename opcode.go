// Package rusm64 provides the instruction-set data shared by the
// assembler: the addressing-mode enum, the mnemonic enum, and the
// static (mnemonic, mode) to (opcode, length, cycles) table for the
// NMOS 6502 as used in the Commodore 64.
package rusm64

import "strings"

// Address is a 16-bit program address or program-counter value.
type Address uint16

// Mode describes a 6502 addressing mode. The set is closed: every
// instruction in the table below uses exactly one of these thirteen
// values.
type Mode byte

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	Relative
)

func (m Mode) String() string {
	switch m {
	case Implied:
		return "implied"
	case Accumulator:
		return "accumulator"
	case Immediate:
		return "immediate"
	case ZeroPage:
		return "zeropage"
	case ZeroPageX:
		return "zeropage,x"
	case ZeroPageY:
		return "zeropage,y"
	case Absolute:
		return "absolute"
	case AbsoluteX:
		return "absolute,x"
	case AbsoluteY:
		return "absolute,y"
	case Indirect:
		return "indirect"
	case IndexedIndirect:
		return "(indirect,x)"
	case IndirectIndexed:
		return "(indirect),y"
	case Relative:
		return "relative"
	default:
		return "unknown"
	}
}

// Opsym identifies a mnemonic by symbol so instructions can be compared
// by identity rather than by the case-insensitive spelling a user typed.
type Opsym byte

// The 56 official NMOS 6502 mnemonics, the 8 illegal mnemonics named by
// this assembler, and the synthetic HCF ("halt and catch fire") jam
// opcode.
const (
	ADC Opsym = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	// Illegal (undocumented) opcodes, named explicitly by this
	// assembler rather than rejected outright.
	SLO
	RLA
	SRE
	RRA
	SAX
	LAX
	DCP
	ISC

	// HCF is a synthetic mnemonic for the processor's jam/kill
	// opcodes, which lock the bus until reset.
	HCF

	opsymCount
)

var opsymNames = [opsymCount]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
	SLO: "SLO", RLA: "RLA", SRE: "SRE", RRA: "RRA", SAX: "SAX", LAX: "LAX",
	DCP: "DCP", ISC: "ISC", HCF: "HCF",
}

func (s Opsym) String() string {
	if s < opsymCount {
		return opsymNames[s]
	}
	return "???"
}

var opsymByName map[string]Opsym

// Branches is the set of mnemonics whose sole addressing mode is
// Relative.
var Branches = map[Opsym]bool{
	BCC: true, BCS: true, BEQ: true, BMI: true,
	BNE: true, BPL: true, BVC: true, BVS: true,
}

// ParseOpsym looks up a mnemonic case-insensitively. Identifiers are
// case-sensitive elsewhere in the language, but mnemonics are not.
func ParseOpsym(name string) (Opsym, bool) {
	s, ok := opsymByName[strings.ToUpper(name)]
	return s, ok
}

// Instruction is one (mnemonic, mode) row of the opcode table: the
// encoded opcode byte, the total instruction length in bytes including
// the opcode, and its base cycle count.
type Instruction struct {
	Sym    Opsym
	Mode   Mode
	Opcode byte
	Length byte
	Cycles byte
}

type tableEntry struct {
	sym    Opsym
	mode   Mode
	opcode byte
	length byte
	cycles byte
}

// officialTable holds the 151 legal (mnemonic, mode) encodings of the
// NMOS 6502, taken from the processor's published instruction
// reference.
var officialTable = []tableEntry{
	{ADC, Immediate, 0x69, 2, 2}, {ADC, ZeroPage, 0x65, 2, 3}, {ADC, ZeroPageX, 0x75, 2, 4},
	{ADC, Absolute, 0x6D, 3, 4}, {ADC, AbsoluteX, 0x7D, 3, 4}, {ADC, AbsoluteY, 0x79, 3, 4},
	{ADC, IndexedIndirect, 0x61, 2, 6}, {ADC, IndirectIndexed, 0x71, 2, 5},

	{AND, Immediate, 0x29, 2, 2}, {AND, ZeroPage, 0x25, 2, 3}, {AND, ZeroPageX, 0x35, 2, 4},
	{AND, Absolute, 0x2D, 3, 4}, {AND, AbsoluteX, 0x3D, 3, 4}, {AND, AbsoluteY, 0x39, 3, 4},
	{AND, IndexedIndirect, 0x21, 2, 6}, {AND, IndirectIndexed, 0x31, 2, 5},

	{ASL, Accumulator, 0x0A, 1, 2}, {ASL, ZeroPage, 0x06, 2, 5}, {ASL, ZeroPageX, 0x16, 2, 6},
	{ASL, Absolute, 0x0E, 3, 6}, {ASL, AbsoluteX, 0x1E, 3, 7},

	{BCC, Relative, 0x90, 2, 2}, {BCS, Relative, 0xB0, 2, 2}, {BEQ, Relative, 0xF0, 2, 2},
	{BMI, Relative, 0x30, 2, 2}, {BNE, Relative, 0xD0, 2, 2}, {BPL, Relative, 0x10, 2, 2},
	{BVC, Relative, 0x50, 2, 2}, {BVS, Relative, 0x70, 2, 2},

	{BIT, ZeroPage, 0x24, 2, 3}, {BIT, Absolute, 0x2C, 3, 4},

	{BRK, Implied, 0x00, 1, 7},

	{CLC, Implied, 0x18, 1, 2}, {CLD, Implied, 0xD8, 1, 2},
	{CLI, Implied, 0x58, 1, 2}, {CLV, Implied, 0xB8, 1, 2},

	{CMP, Immediate, 0xC9, 2, 2}, {CMP, ZeroPage, 0xC5, 2, 3}, {CMP, ZeroPageX, 0xD5, 2, 4},
	{CMP, Absolute, 0xCD, 3, 4}, {CMP, AbsoluteX, 0xDD, 3, 4}, {CMP, AbsoluteY, 0xD9, 3, 4},
	{CMP, IndexedIndirect, 0xC1, 2, 6}, {CMP, IndirectIndexed, 0xD1, 2, 5},

	{CPX, Immediate, 0xE0, 2, 2}, {CPX, ZeroPage, 0xE4, 2, 3}, {CPX, Absolute, 0xEC, 3, 4},
	{CPY, Immediate, 0xC0, 2, 2}, {CPY, ZeroPage, 0xC4, 2, 3}, {CPY, Absolute, 0xCC, 3, 4},

	{DEC, ZeroPage, 0xC6, 2, 5}, {DEC, ZeroPageX, 0xD6, 2, 6},
	{DEC, Absolute, 0xCE, 3, 6}, {DEC, AbsoluteX, 0xDE, 3, 7},
	{DEX, Implied, 0xCA, 1, 2}, {DEY, Implied, 0x88, 1, 2},

	{EOR, Immediate, 0x49, 2, 2}, {EOR, ZeroPage, 0x45, 2, 3}, {EOR, ZeroPageX, 0x55, 2, 4},
	{EOR, Absolute, 0x4D, 3, 4}, {EOR, AbsoluteX, 0x5D, 3, 4}, {EOR, AbsoluteY, 0x59, 3, 4},
	{EOR, IndexedIndirect, 0x41, 2, 6}, {EOR, IndirectIndexed, 0x51, 2, 5},

	{INC, ZeroPage, 0xE6, 2, 5}, {INC, ZeroPageX, 0xF6, 2, 6},
	{INC, Absolute, 0xEE, 3, 6}, {INC, AbsoluteX, 0xFE, 3, 7},
	{INX, Implied, 0xE8, 1, 2}, {INY, Implied, 0xC8, 1, 2},

	{JMP, Absolute, 0x4C, 3, 3}, {JMP, Indirect, 0x6C, 3, 5},
	{JSR, Absolute, 0x20, 3, 6},

	{LDA, Immediate, 0xA9, 2, 2}, {LDA, ZeroPage, 0xA5, 2, 3}, {LDA, ZeroPageX, 0xB5, 2, 4},
	{LDA, Absolute, 0xAD, 3, 4}, {LDA, AbsoluteX, 0xBD, 3, 4}, {LDA, AbsoluteY, 0xB9, 3, 4},
	{LDA, IndexedIndirect, 0xA1, 2, 6}, {LDA, IndirectIndexed, 0xB1, 2, 5},

	{LDX, Immediate, 0xA2, 2, 2}, {LDX, ZeroPage, 0xA6, 2, 3}, {LDX, ZeroPageY, 0xB6, 2, 4},
	{LDX, Absolute, 0xAE, 3, 4}, {LDX, AbsoluteY, 0xBE, 3, 4},

	{LDY, Immediate, 0xA0, 2, 2}, {LDY, ZeroPage, 0xA4, 2, 3}, {LDY, ZeroPageX, 0xB4, 2, 4},
	{LDY, Absolute, 0xAC, 3, 4}, {LDY, AbsoluteX, 0xBC, 3, 4},

	{LSR, Accumulator, 0x4A, 1, 2}, {LSR, ZeroPage, 0x46, 2, 5}, {LSR, ZeroPageX, 0x56, 2, 6},
	{LSR, Absolute, 0x4E, 3, 6}, {LSR, AbsoluteX, 0x5E, 3, 7},

	{NOP, Implied, 0xEA, 1, 2},

	{ORA, Immediate, 0x09, 2, 2}, {ORA, ZeroPage, 0x05, 2, 3}, {ORA, ZeroPageX, 0x15, 2, 4},
	{ORA, Absolute, 0x0D, 3, 4}, {ORA, AbsoluteX, 0x1D, 3, 4}, {ORA, AbsoluteY, 0x19, 3, 4},
	{ORA, IndexedIndirect, 0x01, 2, 6}, {ORA, IndirectIndexed, 0x11, 2, 5},

	{PHA, Implied, 0x48, 1, 3}, {PHP, Implied, 0x08, 1, 3},
	{PLA, Implied, 0x68, 1, 4}, {PLP, Implied, 0x28, 1, 4},

	{ROL, Accumulator, 0x2A, 1, 2}, {ROL, ZeroPage, 0x26, 2, 5}, {ROL, ZeroPageX, 0x36, 2, 6},
	{ROL, Absolute, 0x2E, 3, 6}, {ROL, AbsoluteX, 0x3E, 3, 7},

	{ROR, Accumulator, 0x6A, 1, 2}, {ROR, ZeroPage, 0x66, 2, 5}, {ROR, ZeroPageX, 0x76, 2, 6},
	{ROR, Absolute, 0x6E, 3, 6}, {ROR, AbsoluteX, 0x7E, 3, 7},

	{RTI, Implied, 0x40, 1, 6}, {RTS, Implied, 0x60, 1, 6},

	{SBC, Immediate, 0xE9, 2, 2}, {SBC, ZeroPage, 0xE5, 2, 3}, {SBC, ZeroPageX, 0xF5, 2, 4},
	{SBC, Absolute, 0xED, 3, 4}, {SBC, AbsoluteX, 0xFD, 3, 4}, {SBC, AbsoluteY, 0xF9, 3, 4},
	{SBC, IndexedIndirect, 0xE1, 2, 6}, {SBC, IndirectIndexed, 0xF1, 2, 5},

	{SEC, Implied, 0x38, 1, 2}, {SED, Implied, 0xF8, 1, 2}, {SEI, Implied, 0x78, 1, 2},

	{STA, ZeroPage, 0x85, 2, 3}, {STA, ZeroPageX, 0x95, 2, 4},
	{STA, Absolute, 0x8D, 3, 4}, {STA, AbsoluteX, 0x9D, 3, 5}, {STA, AbsoluteY, 0x99, 3, 5},
	{STA, IndexedIndirect, 0x81, 2, 6}, {STA, IndirectIndexed, 0x91, 2, 6},

	{STX, ZeroPage, 0x86, 2, 3}, {STX, ZeroPageY, 0x96, 2, 4}, {STX, Absolute, 0x8E, 3, 4},
	{STY, ZeroPage, 0x84, 2, 3}, {STY, ZeroPageX, 0x94, 2, 4}, {STY, Absolute, 0x8C, 3, 4},

	{TAX, Implied, 0xAA, 1, 2}, {TAY, Implied, 0xA8, 1, 2}, {TSX, Implied, 0xBA, 1, 2},
	{TXA, Implied, 0x8A, 1, 2}, {TXS, Implied, 0x9A, 1, 2}, {TYA, Implied, 0x98, 1, 2},
}

// illegalTable completes the 8 illegal mnemonics named by this
// assembler (spec's Design Notes leave this an open implementation
// choice; this table resolves it by completing rather than rejecting
// non-zero-page forms) across every addressing mode the hardware
// actually supports for each undocumented combined operation.
var illegalTable = []tableEntry{
	{SLO, ZeroPage, 0x07, 2, 5}, {SLO, ZeroPageX, 0x17, 2, 6}, {SLO, Absolute, 0x0F, 3, 6},
	{SLO, AbsoluteX, 0x1F, 3, 7}, {SLO, AbsoluteY, 0x1B, 3, 7},
	{SLO, IndexedIndirect, 0x03, 2, 8}, {SLO, IndirectIndexed, 0x13, 2, 8},

	{RLA, ZeroPage, 0x27, 2, 5}, {RLA, ZeroPageX, 0x37, 2, 6}, {RLA, Absolute, 0x2F, 3, 6},
	{RLA, AbsoluteX, 0x3F, 3, 7}, {RLA, AbsoluteY, 0x3B, 3, 7},
	{RLA, IndexedIndirect, 0x23, 2, 8}, {RLA, IndirectIndexed, 0x33, 2, 8},

	{SRE, ZeroPage, 0x47, 2, 5}, {SRE, ZeroPageX, 0x57, 2, 6}, {SRE, Absolute, 0x4F, 3, 6},
	{SRE, AbsoluteX, 0x5F, 3, 7}, {SRE, AbsoluteY, 0x5B, 3, 7},
	{SRE, IndexedIndirect, 0x43, 2, 8}, {SRE, IndirectIndexed, 0x53, 2, 8},

	{RRA, ZeroPage, 0x67, 2, 5}, {RRA, ZeroPageX, 0x77, 2, 6}, {RRA, Absolute, 0x6F, 3, 6},
	{RRA, AbsoluteX, 0x7F, 3, 7}, {RRA, AbsoluteY, 0x7B, 3, 7},
	{RRA, IndexedIndirect, 0x63, 2, 8}, {RRA, IndirectIndexed, 0x73, 2, 8},

	{SAX, ZeroPage, 0x87, 2, 3}, {SAX, ZeroPageY, 0x97, 2, 4},
	{SAX, Absolute, 0x8F, 3, 4}, {SAX, IndexedIndirect, 0x83, 2, 6},

	{LAX, ZeroPage, 0xA7, 2, 3}, {LAX, ZeroPageY, 0xB7, 2, 4}, {LAX, Absolute, 0xAF, 3, 4},
	{LAX, AbsoluteY, 0xBF, 3, 4}, {LAX, IndexedIndirect, 0xA3, 2, 6}, {LAX, IndirectIndexed, 0xB3, 2, 5},

	{DCP, ZeroPage, 0xC7, 2, 5}, {DCP, ZeroPageX, 0xD7, 2, 6}, {DCP, Absolute, 0xCF, 3, 6},
	{DCP, AbsoluteX, 0xDF, 3, 7}, {DCP, AbsoluteY, 0xDB, 3, 7},
	{DCP, IndexedIndirect, 0xC3, 2, 8}, {DCP, IndirectIndexed, 0xD3, 2, 8},

	{ISC, ZeroPage, 0xE7, 2, 5}, {ISC, ZeroPageX, 0xF7, 2, 6}, {ISC, Absolute, 0xEF, 3, 6},
	{ISC, AbsoluteX, 0xFF, 3, 7}, {ISC, AbsoluteY, 0xFB, 3, 7},
	{ISC, IndexedIndirect, 0xE3, 2, 8}, {ISC, IndirectIndexed, 0xF3, 2, 8},

	// HCF: one of the processor's several jam opcodes. It takes no
	// operand and never retires, so it is modeled as Implied.
	{HCF, Implied, 0x02, 1, 1},
}

// ByOpcode indexes the full table by encoded byte, for disassembly-free
// uses such as hex-dump annotation.
var ByOpcode [256]*Instruction

// bySymMode indexes the table by (mnemonic, mode) pair, the lookup the
// encoder actually performs.
var bySymMode map[Opsym]map[Mode]*Instruction

func init() {
	opsymByName = make(map[string]Opsym, opsymCount)
	for s := Opsym(0); s < opsymCount; s++ {
		opsymByName[opsymNames[s]] = s
	}

	bySymMode = make(map[Opsym]map[Mode]*Instruction, opsymCount)
	add := func(e tableEntry) {
		inst := &Instruction{Sym: e.sym, Mode: e.mode, Opcode: e.opcode, Length: e.length, Cycles: e.cycles}
		ByOpcode[e.opcode] = inst
		if bySymMode[e.sym] == nil {
			bySymMode[e.sym] = make(map[Mode]*Instruction)
		}
		bySymMode[e.sym][e.mode] = inst
	}
	for _, e := range officialTable {
		add(e)
	}
	for _, e := range illegalTable {
		add(e)
	}
}

// Lookup returns the table entry for a (mnemonic, mode) pair, and
// false if that combination is not a legal encoding.
func Lookup(sym Opsym, mode Mode) (*Instruction, bool) {
	modes, ok := bySymMode[sym]
	if !ok {
		return nil, false
	}
	inst, ok := modes[mode]
	return inst, ok
}

// Modes returns the set of addressing modes with a legal encoding for
// the given mnemonic.
func Modes(sym Opsym) []Mode {
	modes, ok := bySymMode[sym]
	if !ok {
		return nil
	}
	out := make([]Mode, 0, len(modes))
	for m := range modes {
		out = append(out, m)
	}
	return out
}
