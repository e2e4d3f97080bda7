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
	"fmt"
)

type Mnemonic uint
type InstructionFormat uint
type OperandKind uint

// Operand is a tagged value produced once, at parse time, from a single
// token. Kind selects which of the remaining fields is meaningful.
type Operand struct {
	Kind      OperandKind
	Register  uint32
	Immediate int32
	Label     string
}

// Instruction is one parsed source line. Label is the optional name this
// instruction's address is known by ("" when absent). Line is the 1-based
// source line, kept for error reporting.
type Instruction struct {
	Label    string
	Mnemonic Mnemonic
	Operands []Operand
	Line     int
}

type Program []Instruction

// LabelTable maps a label name to the index of the instruction defining it.
// Later definitions of the same name overwrite earlier ones.
type LabelTable map[string]int

type LineError interface {
	GetLine() int
}

type UnknownMnemonicError struct {
	Line     int
	Received string
}

func (err *UnknownMnemonicError) GetLine() int {
	return err.Line
}

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown mnemonic '%s'",
		err.Line,
		err.Received,
	)
}

type InvalidRegisterError struct {
	Line     int
	Received string
}

func (err *InvalidRegisterError) GetLine() int {
	return err.Line
}

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid register '%s'",
		err.Line,
		err.Received,
	)
}

type MalformedImmediateError struct {
	Line     int
	Received string
}

func (err *MalformedImmediateError) GetLine() int {
	return err.Line
}

func (err *MalformedImmediateError) Error() string {
	return fmt.Sprintf(
		"%02d: Malformed immediate '%s'",
		err.Line,
		err.Received,
	)
}

type OperandShapeError struct {
	Line     int
	Mnemonic Mnemonic
	Received []Operand
}

func (err *OperandShapeError) GetLine() int {
	return err.Line
}

func (err *OperandShapeError) Error() string {
	kinds := make([]string, 0, len(err.Received))

	for _, operand := range err.Received {
		switch operand.Kind {
		case OPERAND_REG:
			kinds = append(kinds, "register")
		case OPERAND_IMM:
			kinds = append(kinds, "immediate")
		case OPERAND_LABEL:
			kinds = append(kinds, "label")
		default:
			kinds = append(kinds, "<invalid>")
		}
	}

	return fmt.Sprintf(
		"%02d: Invalid operands for '%s'\n\thave:%v",
		err.Line,
		err.Mnemonic,
		kinds,
	)
}

type UnresolvedLabelError struct {
	Line     int
	Received string
}

func (err *UnresolvedLabelError) GetLine() int {
	return err.Line
}

func (err *UnresolvedLabelError) Error() string {
	return fmt.Sprintf(
		"%02d: Unresolved label '%s'",
		err.Line,
		err.Received,
	)
}

type EmptyLineError struct {
	Line int
}

func (err *EmptyLineError) GetLine() int {
	return err.Line
}

func (err *EmptyLineError) Error() string {
	return fmt.Sprintf(
		"%02d: Line has no operation",
		err.Line,
	)
}

type OversizedProgramError struct {
	Required int
	Received int
}

func (err *OversizedProgramError) Error() string {
	return fmt.Sprintf(
		"Program exceeds memory image\n\twant:%d words or fewer\n\thave:%d",
		err.Required,
		err.Received,
	)
}
