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

package machine_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hmori/gomips/pkg/assembler"
	"github.com/hmori/gomips/pkg/encoding"
	"github.com/hmori/gomips/pkg/machine"
)

type testMachineState struct {
	Registers map[uint32]uint32
	Program   uint32
	Memory    map[uint32]uint32
}

type testCase struct {
	Name   string
	Steps  uint
	Input  testMachineState
	Output testMachineState
}

type failCase struct {
	Name  string
	Word  uint32
	Error error
}

func testMachineSuccess(t *testing.T, test *testCase) {
	var mc machine.Machine

	mc.State.Reset()
	mc.State.Program = test.Input.Program

	for index, value := range test.Input.Registers {
		mc.State.Registers[index] = value
	}

	for addr, value := range test.Input.Memory {
		mc.State.Memory[addr] = value
	}

	if test.Steps == 0 {
		test.Steps = 1
	}

	for i := uint(0); i < test.Steps; i++ {
		if err := mc.Step(); err != nil {
			t.Fatal(err)
		}
	}

	if mc.State.Program != test.Output.Program {
		t.Errorf(
			"Program register mismatch"+
				"\nwant:%#02x (test.Output.Program)\nhave:%#02x",
			test.Output.Program,
			mc.State.Program,
		)
	}

	for index, want := range test.Output.Registers {
		have := mc.State.Registers[index]

		if have != want {
			t.Errorf(
				"Register mismatch"+
					"\nwant:%#08x (test.Output.Registers[%d])\nhave:%#08x",
				want,
				index,
				have,
			)
		}
	}

	for addr, want := range test.Output.Memory {
		have := mc.State.Memory[addr]

		if have != want {
			t.Errorf(
				"Memory mismatch"+
					"\nwant:%#08x (test.Output.Memory[%#02x])\nhave:%#08x",
				want,
				addr,
				have,
			)
		}
	}
}

func testMachineFail(t *testing.T, test *failCase) {
	var mc machine.Machine

	mc.State.Reset()
	mc.State.Memory[0] = test.Word

	err := mc.Step()

	if err == nil {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if reflect.TypeOf(err) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T (%v)",
			t.Name(),
			test.Error,
			err,
			err,
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testMachineSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testMachineFail(t, &test)
			})
		}
	})
}

// R |000000 |rs |rt |rd |shamt |funct |
func TestRType(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "ADD",
			Input: testMachineState{
				Registers: map[uint32]uint32{9: 2, 10: 3},
				Memory:    map[uint32]uint32{0: 0x012A4020},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{8: 5},
				Program:   1,
			},
		},
		{
			Name: "SUB",
			Input: testMachineState{
				Registers: map[uint32]uint32{17: 10, 18: 4},
				Memory:    map[uint32]uint32{0: 0x02328022},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{16: 6},
				Program:   1,
			},
		},
		{
			Name: "AND",
			Input: testMachineState{
				Registers: map[uint32]uint32{3: 0b1100, 4: 0b1010},
				Memory:    map[uint32]uint32{0: 0x00641024},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{2: 0b1000},
				Program:   1,
			},
		},
		{
			Name: "OR",
			Input: testMachineState{
				Registers: map[uint32]uint32{6: 0b1100, 7: 0b1010},
				Memory:    map[uint32]uint32{0: 0x00C72825},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{5: 0b1110},
				Program:   1,
			},
		},

		// slt compares as signed values
		{
			Name: "SLT Negative",
			Input: testMachineState{
				Registers: map[uint32]uint32{27: 0xFFFFFFFB, 1: 3},
				Memory:    map[uint32]uint32{0: 0x0361D02A},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{26: 1},
				Program:   1,
			},
		},
		{
			Name: "SLT Not Less",
			Input: testMachineState{
				Registers: map[uint32]uint32{27: 7, 1: 3, 26: 9},
				Memory:    map[uint32]uint32{0: 0x0361D02A},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{26: 0},
				Program:   1,
			},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Unknown Funct",
			Word:  0x0000003F,
			Error: &machine.UnknownFunctError{},
		},
	})
}

// I |opcode |rs |rt |immediate |
func TestIType(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "ADDI",
			Input: testMachineState{
				Memory: map[uint32]uint32{0: 0x20080005},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{8: 5},
				Program:   1,
			},
		},
		{
			Name: "ADDI Negative",
			Input: testMachineState{
				Registers: map[uint32]uint32{8: 5},
				Memory:    map[uint32]uint32{0: 0x2108FFFF},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{8: 4},
				Program:   1,
			},
		},

		// register zero ignores writes
		{
			Name: "ADDI Register Zero",
			Input: testMachineState{
				Memory: map[uint32]uint32{0: 0x20000005},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{0: 0},
				Program:   1,
			},
		},

		// lw $t0, 4($sp)
		{
			Name: "LW",
			Input: testMachineState{
				Registers: map[uint32]uint32{29: 2},
				Memory: map[uint32]uint32{
					0: 0x8FA80004,
					6: 0xDEADBEEF,
				},
			},
			Output: testMachineState{
				Registers: map[uint32]uint32{8: 0xDEADBEEF},
				Program:   1,
			},
		},

		// sw $t0, 8($sp)
		{
			Name: "SW",
			Input: testMachineState{
				Registers: map[uint32]uint32{29: 1, 8: 0x12345678},
				Memory:    map[uint32]uint32{0: 0xAFA80008},
			},
			Output: testMachineState{
				Memory:  map[uint32]uint32{9: 0x12345678},
				Program: 1,
			},
		},

		// beq offsets are relative to the following instruction
		{
			Name: "BEQ Taken",
			Input: testMachineState{
				Memory: map[uint32]uint32{0: 0x11090001},
			},
			Output: testMachineState{
				Program: 2,
			},
		},
		{
			Name: "BEQ Not Taken",
			Input: testMachineState{
				Registers: map[uint32]uint32{8: 1, 9: 2},
				Memory:    map[uint32]uint32{0: 0x11090001},
			},
			Output: testMachineState{
				Program: 1,
			},
		},
		{
			Name: "BEQ Backward",
			Input: testMachineState{
				Program: 1,
				Memory:  map[uint32]uint32{1: 0x1000FFFE},
			},
			Output: testMachineState{
				Program: 0,
			},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Unknown Opcode",
			Word:  0xFC000000,
			Error: &machine.UnknownOpcodeError{},
		},
		{
			Name:  "LW Out Of Image",
			Word:  0x8C080064,
			Error: &machine.MemoryFaultError{},
		},
		{
			Name:  "SW Out Of Image",
			Word:  0xAC080064,
			Error: &machine.MemoryFaultError{},
		},
	})
}

// J |opcode |address |
func TestJump(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Jump Backward",
			Input: testMachineState{
				Program: 1,
				Memory:  map[uint32]uint32{1: 0x08000000},
			},
			Output: testMachineState{
				Program: 0,
			},
		},
		{
			Name: "Jump Forward",
			Input: testMachineState{
				Memory: map[uint32]uint32{0: 0x08000002},
			},
			Output: testMachineState{
				Program: 2,
			},
		},
	})
}

func TestRun(t *testing.T) {
	var mc machine.Machine

	// pad words execute as nops, so a linear program runs off the
	// end of the image
	words := []uint32{0x20080005, 0x2108FFFF}

	if err := mc.LoadImage(words); err != nil {
		t.Fatal(err)
	}

	steps, err := mc.Run(1000)

	if err != nil {
		t.Fatal(err)
	}

	if !mc.Halted() {
		t.Fatal("Machine did not halt")
	}

	if steps != encoding.ImageWords {
		t.Fatalf(
			"Step count mismatch\nwant:%d\nhave:%d",
			encoding.ImageWords,
			steps,
		)
	}

	if mc.State.Registers[8] != 4 {
		t.Fatalf(
			"Register mismatch\nwant:4\nhave:%d",
			mc.State.Registers[8],
		)
	}

	// a budget of zero executes nothing
	if steps, _ := mc.Run(0); steps != 0 {
		t.Fatalf("Step budget ignored\nhave:%d", steps)
	}
}

func TestAssembledProgram(t *testing.T) {
	source := "addi $t0, $0, 5\n" +
		"addi $t1, $0, 0\n" +
		"loop: beq $t0, $0, done\n" +
		"add $t1, $t1, $t0\n" +
		"addi $t0, $t0, -1\n" +
		"beq $0, $0, loop\n" +
		"done: sw $t1, 0($0)"

	words, err := assembler.AssembleSource(strings.NewReader(source))

	if err != nil {
		t.Fatal(err)
	}

	var mc machine.Machine

	if err := mc.LoadImage(words); err != nil {
		t.Fatal(err)
	}

	if _, err := mc.Run(1000); err != nil {
		t.Fatal(err)
	}

	if !mc.Halted() {
		t.Fatal("Machine did not halt")
	}

	// 5+4+3+2+1
	if mc.State.Memory[0] != 15 {
		t.Fatalf(
			"Memory mismatch\nwant:15\nhave:%d",
			mc.State.Memory[0],
		)
	}
}
