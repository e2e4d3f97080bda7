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

package main

import (
	"fmt"

	"github.com/hmori/gomips/pkg/machine"
)

type traceWriter struct{}

func (t *traceWriter) Step(pc uint32, word uint32, mc *machine.Machine) {
	fmt.Printf("%02x: %08x\r\n", pc, word)
}

func dumpState(mc *machine.Machine, steps uint) {
	fmt.Printf("pc:%02x steps:%d\r\n", mc.State.Program, steps)

	for i := 0; i < len(mc.State.Registers); i += 8 {
		for j := i; j < i+8; j++ {
			fmt.Printf("r%02d:%08x ", j, mc.State.Registers[j])
		}

		fmt.Printf("\r\n")
	}
}
