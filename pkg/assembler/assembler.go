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

import (
	"bufio"
	"io"
	"strings"

	"github.com/hmori/gomips/pkg/encoding"
)

var operationNormalizer = strings.NewReplacer(",", " ", "(", " ", ")", "")

// parseRegister resolves a register token (including the leading '$')
// to its index. Tokens outside the fixed alias table must be a prefix
// letter followed by a single digit selecting a numbering scheme.
func parseRegister(token string, line int) (uint32, error) {
	if index, exists := registerAliases[token]; exists {
		return index, nil
	}

	if len(token) != 3 {
		return 0, &InvalidRegisterError{line, token}
	}

	prefix := token[1]
	digit := token[2]

	if digit < '0' || digit > '9' {
		return 0, &InvalidRegisterError{line, token}
	}

	n := uint32(digit - '0')

	switch prefix {
	case 'v':
		return n + 2, nil
	case 'a':
		return n + 4, nil
	case 't':
		return n + 8, nil
	case 's':
		if n < 8 {
			return n + 16, nil
		}
		return n + 24, nil
	case 'k':
		return n + 26, nil
	}

	return 0, &InvalidRegisterError{line, token}
}

// ParseOperand classifies a single operand token. Classification is
// purely lexical on the first byte: '$' begins a register, a digit or
// '-' begins a base-10 immediate, and anything else is a label
// reference left for the encoder to resolve.
func ParseOperand(token string, line int) (Operand, error) {
	switch {
	case token[0] == '$':
		index, err := parseRegister(token, line)

		if err != nil {
			return Operand{}, err
		}

		return Operand{Kind: OPERAND_REG, Register: index}, nil

	case token[0] == '-' || (token[0] >= '0' && token[0] <= '9'):
		value, err := encoding.DecodeInt(token)

		if err != nil {
			return Operand{}, &MalformedImmediateError{line, token}
		}

		return Operand{Kind: OPERAND_IMM, Immediate: value}, nil
	}

	return Operand{Kind: OPERAND_LABEL, Label: token}, nil
}

// ParseLine turns one raw source line into an Instruction. A label
// definition precedes the first ':'; commas and memory-addressing
// parentheses are normalized to whitespace before splitting.
func ParseLine(line string, number int) (Instruction, error) {
	var label string
	operation := line

	if colon := strings.Index(line, ":"); colon != -1 {
		label = strings.TrimSpace(line[:colon])
		operation = line[colon+1:]
	}

	fields := strings.Fields(operationNormalizer.Replace(operation))

	if len(fields) == 0 {
		return Instruction{}, &EmptyLineError{number}
	}

	mnemonic := ParseMnemonic(fields[0])

	if mnemonic == MNEMONIC_INVALID {
		return Instruction{}, &UnknownMnemonicError{number, fields[0]}
	}

	operands := make([]Operand, 0, len(fields)-1)

	for _, token := range fields[1:] {
		operand, err := ParseOperand(token, number)

		if err != nil {
			return Instruction{}, err
		}

		operands = append(operands, operand)
	}

	return Instruction{
		Label:    label,
		Mnemonic: mnemonic,
		Operands: operands,
		Line:     number,
	}, nil
}

// BuildLabelTable walks the program once and records the index of every
// labeled instruction. A name defined twice keeps the later index.
func BuildLabelTable(program Program) LabelTable {
	labels := make(LabelTable)

	for i, instr := range program {
		if instr.Label != "" {
			labels[instr.Label] = i
		}
	}

	return labels
}

// EncodeInstruction produces the 32-bit word for the instruction at the
// given program index. Immediates are masked to their low 16 bits
// without a range check; branch offsets are words relative to the
// instruction after the branch.
func EncodeInstruction(instr Instruction, index int, labels LabelTable) (uint32, error) {
	operands := instr.Operands

	switch instr.Mnemonic.Format() {
	// R |opcode(6)=0 |rs(5) |rt(5) |rd(5) |shamt(5)=0 |funct(6) |
	// destination-first source order: (rd, rs, rt)
	case FORMAT_R:
		if len(operands) != 3 {
			return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
		}

		for _, operand := range operands {
			if operand.Kind != OPERAND_REG {
				return 0, &OperandShapeError{
					instr.Line, instr.Mnemonic, operands,
				}
			}
		}

		rd := operands[0].Register
		rs := operands[1].Register
		rt := operands[2].Register

		return instr.Mnemonic.Opcode()<<26 |
			rs<<21 | rt<<16 | rd<<11 |
			instr.Mnemonic.Funct(), nil

	// I |opcode(6) |rs(5) |rt(5) |immediate(16) |
	// three accepted operand shapes share the same field assignment:
	//   (rt, rs, imm)   arithmetic    addi $rt, $rs, imm
	//   (rt, imm, rs)   memory        lw $rt, imm($rs)
	//   (rs, rt, label) branch        beq $rs, $rt, label
	case FORMAT_I:
		if len(operands) != 3 {
			return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
		}

		var rs, rt uint32
		var immediate int32

		switch {
		case operands[0].Kind == OPERAND_REG &&
			operands[1].Kind == OPERAND_REG &&
			operands[2].Kind == OPERAND_IMM:
			rt = operands[0].Register
			rs = operands[1].Register
			immediate = operands[2].Immediate

		case operands[0].Kind == OPERAND_REG &&
			operands[1].Kind == OPERAND_IMM &&
			operands[2].Kind == OPERAND_REG:
			rt = operands[0].Register
			immediate = operands[1].Immediate
			rs = operands[2].Register

		case operands[0].Kind == OPERAND_REG &&
			operands[1].Kind == OPERAND_REG &&
			operands[2].Kind == OPERAND_LABEL:
			rs = operands[0].Register
			rt = operands[1].Register

			target, exists := labels[operands[2].Label]

			if !exists {
				return 0, &UnresolvedLabelError{
					instr.Line, operands[2].Label,
				}
			}

			immediate = int32(target - 1 - index)

		default:
			return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
		}

		return instr.Mnemonic.Opcode()<<26 |
			rs<<21 | rt<<16 |
			uint32(immediate)&0xFFFF, nil

	// J |opcode(6) |address(26) |
	// the address field is the target's raw instruction index
	case FORMAT_J:
		if len(operands) != 1 {
			return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
		}

		if operands[0].Kind != OPERAND_LABEL {
			return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
		}

		target, exists := labels[operands[0].Label]

		if !exists {
			return 0, &UnresolvedLabelError{instr.Line, operands[0].Label}
		}

		return instr.Mnemonic.Opcode()<<26 | uint32(target), nil
	}

	return 0, &OperandShapeError{instr.Line, instr.Mnemonic, operands}
}

// EncodeProgram encodes every instruction in program order against a
// freshly built label table, stopping at the first failure.
func EncodeProgram(program Program) ([]uint32, error) {
	labels := BuildLabelTable(program)
	result := make([]uint32, 0, len(program))

	for i, instr := range program {
		word, err := EncodeInstruction(instr, i, labels)

		if err != nil {
			return nil, err
		}

		result = append(result, word)
	}

	return result, nil
}

// AssembleSource reads assembly text, one instruction per line, and
// returns the encoded words in program order. The whole program is
// parsed before any encoding begins, so parse errors always precede
// encode errors. Programs longer than the memory image are rejected.
func AssembleSource(input io.Reader) ([]uint32, error) {
	var program Program

	scanner := bufio.NewScanner(input)
	number := 0

	for scanner.Scan() {
		number++

		instr, err := ParseLine(scanner.Text(), number)

		if err != nil {
			return nil, err
		}

		program = append(program, instr)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(program) > encoding.ImageWords {
		return nil, &OversizedProgramError{
			encoding.ImageWords, len(program),
		}
	}

	return EncodeProgram(program)
}
