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

package encoding

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImageWords is the fixed size of a memory image in 32-bit words.
const ImageWords = 64

// Decodes a base-10 string in the formats: 123, -123
func DecodeInt(s string) (int32, error) {
	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return int32(result), nil
}

func SignExtend(value uint32, bitcount uint32) uint32 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFFFFFF << bitcount)
	}

	return value
}

// WriteImage emits one 8-digit lowercase hex word per line, padding
// with zero words to exactly ImageWords lines.
func WriteImage(w io.Writer, words []uint32) error {
	if len(words) > ImageWords {
		return &OversizedImageError{ImageWords, len(words)}
	}

	for _, word := range words {
		if _, err := fmt.Fprintf(w, "%08x\n", word); err != nil {
			return err
		}
	}

	for i := len(words); i < ImageWords; i++ {
		if _, err := fmt.Fprintf(w, "%08x\n", uint32(0)); err != nil {
			return err
		}
	}

	return nil
}

// ReadImage parses the hex-line image format back into words. Blank
// lines are ignored; anything else must be a 32-bit hex word.
func ReadImage(r io.Reader) ([]uint32, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		word, err := strconv.ParseUint(line, 16, 32)

		if err != nil {
			return nil, err
		}

		if len(words) == ImageWords {
			return nil, &OversizedImageError{ImageWords, len(words) + 1}
		}

		words = append(words, uint32(word))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

type OversizedImageError struct {
	Required int
	Received int
}

func (err *OversizedImageError) Error() string {
	return fmt.Sprintf(
		"Image exceeds allowed size\n\twant:%d words or fewer\n\thave:%d",
		err.Required,
		err.Received,
	)
}
