package rusm64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfficialTableHas151Entries(t *testing.T) {
	assert.Len(t, officialTable, 151)
}

func TestParseOpsymIsCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"lda", "LDA", "Lda", "lDa"} {
		sym, ok := ParseOpsym(spelling)
		assert.True(t, ok, spelling)
		assert.Equal(t, LDA, sym)
	}
}

func TestParseOpsymRejectsUnknown(t *testing.T) {
	_, ok := ParseOpsym("xyz")
	assert.False(t, ok)
}

func TestLookupKnownEncoding(t *testing.T) {
	inst, ok := Lookup(LDA, Immediate)
	assert.True(t, ok)
	assert.Equal(t, byte(0xA9), inst.Opcode)
	assert.Equal(t, byte(2), inst.Length)
}

func TestLookupRejectsIllegalCombination(t *testing.T) {
	_, ok := Lookup(JSR, Immediate)
	assert.False(t, ok)
}

func TestByOpcodeIsConsistentWithLookup(t *testing.T) {
	inst, ok := Lookup(STA, Absolute)
	assert.True(t, ok)
	assert.Same(t, inst, ByOpcode[0x8D])
}

func TestIllegalOpcodesAreComplete(t *testing.T) {
	for _, sym := range []Opsym{SLO, RLA, SRE, RRA, DCP, ISC} {
		for _, mode := range []Mode{ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndexedIndirect, IndirectIndexed} {
			_, ok := Lookup(sym, mode)
			assert.True(t, ok, "%s %s", sym, mode)
		}
	}
}

func TestHCFHasNoOperand(t *testing.T) {
	inst, ok := Lookup(HCF, Implied)
	assert.True(t, ok)
	assert.Equal(t, byte(1), inst.Length)
}

func TestBranchesAreRelativeOnly(t *testing.T) {
	for sym := range Branches {
		modes := Modes(sym)
		assert.Equal(t, []Mode{Relative}, modes)
	}
}
