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

const (
	OP_SPECIAL uint32 = 0
	OP_J       uint32 = 2
	OP_BEQ     uint32 = 4
	OP_ADDI    uint32 = 8
	OP_LW      uint32 = 35
	OP_SW      uint32 = 43
)

const (
	FN_ADD uint32 = 32
	FN_SUB uint32 = 34
	FN_AND uint32 = 36
	FN_OR  uint32 = 37
	FN_SLT uint32 = 42
)
