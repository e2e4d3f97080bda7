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
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hmori/gomips/pkg/assembler"
	"github.com/hmori/gomips/pkg/encoding"
)

var helpvar bool
var outvar string

const usage = "gomips-asm [file]"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Writes the memory image to the given file instead of stdout",
	)
	flag.Parse()
}

// echoLine prints the offending source line under an assembler error.
func echoLine(input io.ReadSeeker, number int) {
	if _, err := input.Seek(0, io.SeekStart); err != nil {
		return
	}

	scanner := bufio.NewScanner(input)

	for i := 1; scanner.Scan(); i++ {
		if i == number {
			log.Printf("\t%s", scanner.Text())
			return
		}
	}
}

func gomips_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var input io.ReadSeeker

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		source, err := io.ReadAll(os.Stdin)

		if err != nil {
			log.Println(err)
			return 1
		}

		input = bytes.NewReader(source)
		log.SetPrefix("\033[1m<stdin>:\033[0m")
	} else {
		if len(args) == 0 {
			fmt.Println(usage)
			return 0
		}

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

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid assembly file", filename)
			return 1
		}

		input = file
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", filename))
	}

	result, err := assembler.AssembleSource(input)

	if err != nil {
		log.Println(err)

		if lineErr, ok := err.(assembler.LineError); ok {
			echoLine(input, lineErr.GetLine())
		}

		return 1
	}

	output := io.Writer(os.Stdout)

	if outvar != "" {
		file, err := os.OpenFile(
			outvar, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666,
		)

		if err != nil {
			log.Println("Error creating output file")
			log.Println(err)
			return 1
		}

		defer file.Close()
		output = file
	}

	writer := bufio.NewWriter(output)

	if err := encoding.WriteImage(writer, result); err != nil {
		log.Println("Error writing memory image")
		log.Println(err)
		return 1
	}

	if err := writer.Flush(); err != nil {
		log.Println("Error writing memory image")
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(gomips_asm())
}
