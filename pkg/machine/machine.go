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

package machine

import (
	"github.com/hmori/gomips/pkg/encoding"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0
	}

	mc.Program = 0
}

// LoadImage resets the machine and copies the words into memory
// starting at word zero.
func (mc *Machine) LoadImage(words []uint32) error {
	if len(words) > encoding.ImageWords {
		return &encoding.OversizedImageError{
			Required: encoding.ImageWords,
			Received: len(words),
		}
	}

	mc.State.Reset()
	copy(mc.State.Memory[:], words)

	return nil
}

// Halted reports whether the program counter has left the image. The
// instruction set has no halt; running off the end is normal
// termination.
func (mc *Machine) Halted() bool {
	return mc.State.Program >= encoding.ImageWords
}

func (mc *Machine) write(index uint32, value uint32) {
	// Register zero stays zero
	if index != 0 {
		mc.State.Registers[index] = value
	}
}

// Step fetches, decodes, and executes a single instruction. Addresses
// are word indices into the image; branches are relative to the
// instruction after the branch and jumps are absolute indices.
func (mc *Machine) Step() error {
	if mc.Halted() {
		return nil
	}

	pc := mc.State.Program
	instruction := mc.State.Memory[pc]

	mc.State.Program++

	// The all-zero word is the canonical nop; pad words execute as
	// no-ops so a program may simply run off the end of the image.
	if instruction == 0 {
		if mc.Tracer != nil {
			mc.Tracer.Step(pc, instruction, mc)
		}

		return nil
	}

	opcode := instruction >> 26
	rs := (instruction >> 21) & 0x1F
	rt := (instruction >> 16) & 0x1F
	immediate := encoding.SignExtend(instruction&0xFFFF, 16)

	switch opcode {
	// R |000000 |rs |rt |rd |shamt |funct |
	case OP_SPECIAL:
		rd := (instruction >> 11) & 0x1F
		funct := instruction & 0x3F

		switch funct {
		case FN_ADD:
			mc.write(rd, mc.State.Registers[rs]+mc.State.Registers[rt])
		case FN_SUB:
			mc.write(rd, mc.State.Registers[rs]-mc.State.Registers[rt])
		case FN_AND:
			mc.write(rd, mc.State.Registers[rs]&mc.State.Registers[rt])
		case FN_OR:
			mc.write(rd, mc.State.Registers[rs]|mc.State.Registers[rt])
		case FN_SLT:
			if int32(mc.State.Registers[rs]) < int32(mc.State.Registers[rt]) {
				mc.write(rd, 1)
			} else {
				mc.write(rd, 0)
			}
		default:
			return &UnknownFunctError{pc, funct}
		}

	// ADDI |001000 |rs |rt |immediate |
	case OP_ADDI:
		mc.write(rt, mc.State.Registers[rs]+immediate)

	// LW |100011 |rs |rt |immediate |
	case OP_LW:
		addr := mc.State.Registers[rs] + immediate

		if addr >= encoding.ImageWords {
			return &MemoryFaultError{pc, addr}
		}

		mc.write(rt, mc.State.Memory[addr])

	// SW |101011 |rs |rt |immediate |
	case OP_SW:
		addr := mc.State.Registers[rs] + immediate

		if addr >= encoding.ImageWords {
			return &MemoryFaultError{pc, addr}
		}

		mc.State.Memory[addr] = mc.State.Registers[rt]

	// BEQ |000100 |rs |rt |immediate |
	case OP_BEQ:
		if mc.State.Registers[rs] == mc.State.Registers[rt] {
			mc.State.Program += immediate
		}

	// J |000010 |address |
	case OP_J:
		mc.State.Program = instruction & 0x3FFFFFF

	default:
		return &UnknownOpcodeError{pc, opcode}
	}

	if mc.Tracer != nil {
		mc.Tracer.Step(pc, instruction, mc)
	}

	return nil
}

// Run steps the machine until it halts or the step budget runs out,
// returning the number of instructions executed.
func (mc *Machine) Run(maxSteps uint) (uint, error) {
	var steps uint

	for !mc.Halted() && steps < maxSteps {
		if err := mc.Step(); err != nil {
			return steps, err
		}

		steps++
	}

	return steps, nil
}
