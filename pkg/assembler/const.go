// Copyright (C) 2026  Haruki Mori

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

const (
	OPERAND_REG OperandKind = iota
	OPERAND_IMM
	OPERAND_LABEL
)

const (
	FORMAT_R InstructionFormat = iota
	FORMAT_I
	FORMAT_J
)

const (
	MNEMONIC_INVALID Mnemonic = iota
	MNEMONIC_AND
	MNEMONIC_OR
	MNEMONIC_J
	MNEMONIC_SLT
	MNEMONIC_ADD
	MNEMONIC_SUB
	MNEMONIC_ADDI
	MNEMONIC_BEQ
	MNEMONIC_SW
	MNEMONIC_LW
)

// Mnemonics is every recognized mnemonic, in declaration order.
var Mnemonics = []Mnemonic{
	MNEMONIC_AND,
	MNEMONIC_OR,
	MNEMONIC_J,
	MNEMONIC_SLT,
	MNEMONIC_ADD,
	MNEMONIC_SUB,
	MNEMONIC_ADDI,
	MNEMONIC_BEQ,
	MNEMONIC_SW,
	MNEMONIC_LW,
}

// Named register aliases without a numbering scheme. Every other register
// token resolves through a prefix letter and a single digit.
var registerAliases = map[string]uint32{
	"$0":  0,
	"$at": 1,
	"$gp": 28,
	"$sp": 29,
	"$fp": 30,
	"$ra": 31,
}

func (m Mnemonic) String() string {
	switch m {
	case MNEMONIC_AND:
		return "and"
	case MNEMONIC_OR:
		return "or"
	case MNEMONIC_J:
		return "j"
	case MNEMONIC_SLT:
		return "slt"
	case MNEMONIC_ADD:
		return "add"
	case MNEMONIC_SUB:
		return "sub"
	case MNEMONIC_ADDI:
		return "addi"
	case MNEMONIC_BEQ:
		return "beq"
	case MNEMONIC_SW:
		return "sw"
	case MNEMONIC_LW:
		return "lw"
	}

	return "<invalid>"
}

// Format reports the encoding family the mnemonic belongs to. Every
// mnemonic belongs to exactly one family.
func (m Mnemonic) Format() InstructionFormat {
	switch m {
	case MNEMONIC_ADD, MNEMONIC_SUB, MNEMONIC_AND, MNEMONIC_OR, MNEMONIC_SLT:
		return FORMAT_R
	case MNEMONIC_ADDI, MNEMONIC_BEQ, MNEMONIC_LW, MNEMONIC_SW:
		return FORMAT_I
	}

	return FORMAT_J
}

func (m Mnemonic) Opcode() uint32 {
	switch m {
	case MNEMONIC_ADDI:
		return 8
	case MNEMONIC_LW:
		return 35
	case MNEMONIC_SW:
		return 43
	case MNEMONIC_BEQ:
		return 4
	case MNEMONIC_J:
		return 2
	}

	// R-format instructions share opcode zero and select on funct
	return 0
}

func (m Mnemonic) Funct() uint32 {
	switch m {
	case MNEMONIC_ADD:
		return 32
	case MNEMONIC_SUB:
		return 34
	case MNEMONIC_AND:
		return 36
	case MNEMONIC_OR:
		return 37
	case MNEMONIC_SLT:
		return 42
	}

	return 0
}

// ParseMnemonic matches an operation token against the recognized
// mnemonics. Matching is exact and case-sensitive.
func ParseMnemonic(ident string) Mnemonic {
	switch ident {
	case "and":
		return MNEMONIC_AND
	case "or":
		return MNEMONIC_OR
	case "j":
		return MNEMONIC_J
	case "slt":
		return MNEMONIC_SLT
	case "add":
		return MNEMONIC_ADD
	case "sub":
		return MNEMONIC_SUB
	case "addi":
		return MNEMONIC_ADDI
	case "beq":
		return MNEMONIC_BEQ
	case "sw":
		return MNEMONIC_SW
	case "lw":
		return MNEMONIC_LW
	}

	return MNEMONIC_INVALID
}
