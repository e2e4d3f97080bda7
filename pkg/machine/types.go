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
	"fmt"

	"github.com/hmori/gomips/pkg/encoding"
)

type MachineState struct {
	Registers [32]uint32
	Program   uint32
	Memory    [encoding.ImageWords]uint32
}

// MachineTracer observes execution. Step runs after each completed
// instruction; word is the instruction just executed.
type MachineTracer interface {
	Step(pc uint32, word uint32, mc *Machine)
}

type Machine struct {
	State  MachineState
	Tracer MachineTracer
}

type UnknownOpcodeError struct {
	Program uint32
	Opcode  uint32
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf(
		"%#08x: Unknown opcode %#02x",
		err.Program,
		err.Opcode,
	)
}

type UnknownFunctError struct {
	Program uint32
	Funct   uint32
}

func (err *UnknownFunctError) Error() string {
	return fmt.Sprintf(
		"%#08x: Unknown function code %#02x",
		err.Program,
		err.Funct,
	)
}

type MemoryFaultError struct {
	Program uint32
	Address uint32
}

func (err *MemoryFaultError) Error() string {
	return fmt.Sprintf(
		"%#08x: Memory access outside image at word %#x",
		err.Program,
		err.Address,
	)
}
