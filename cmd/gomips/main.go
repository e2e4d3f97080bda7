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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hmori/gomips/pkg/encoding"
	"github.com/hmori/gomips/pkg/machine"
)

var helpvar bool
var tracevar bool
var stepvar bool
var stepsvar uint

const usage = "gomips [-trace] [-step] [-steps N] imagefile"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&tracevar, "trace", false, "Prints each executed instruction")
	flag.BoolVar(
		&stepvar, "step", false,
		"Waits for a keypress before each instruction ('q' quits)",
	)
	flag.UintVar(
		&stepsvar, "steps", 10000,
		"Stops execution after this many instructions",
	)
	flag.Parse()
}

func gomips() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	words, err := encoding.ReadImage(file)

	if err != nil {
		log.Println(err)
		return 1
	}

	var mc machine.Machine

	if err := mc.LoadImage(words); err != nil {
		log.Println(err)
		return 1
	}

	if tracevar || stepvar {
		mc.Tracer = &traceWriter{}
	}

	var steps uint

	if stepvar {
		enterRawTerm()
		defer exitRawTerm()

		steps, err = stepMachine(&mc, stepsvar)
	} else {
		steps, err = mc.Run(stepsvar)
	}

	if err != nil {
		log.Println(err)
		return 1
	}

	dumpState(&mc, steps)

	return 0
}

// stepMachine executes one instruction per keypress. 'q' and Esc stop
// execution early; any other key steps.
func stepMachine(mc *machine.Machine, maxSteps uint) (uint, error) {
	var steps uint

	for !mc.Halted() && steps < maxSteps {
		key := readKey()

		if key == 'q' || key == 0x1B {
			break
		}

		if err := mc.Step(); err != nil {
			return steps, err
		}

		steps++
	}

	return steps, nil
}

func main() {
	os.Exit(gomips())
}
