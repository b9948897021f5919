// Copyright 2024 The arm-trusted-firmware Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sysreg

import "fmt"

// TTBR0 is the 64-bit PL1&0 Translation Table Base Register 0, long-descriptor
// view.
type TTBR0 uint64

const (
	// TTBR_CNP marks the pointed-to table as Common-not-Private: shareable
	// across all processing elements of the inner-shareable domain without
	// per-element duplication. ARMv8.2 onwards.
	TTBR_CNP = 1 << 0

	// TTBR_BADDR_MASK extracts the table base address. Bits 47:1 hold the
	// address; bit 0 is CnP. The low address bits below the table's
	// alignment requirement read as zero.
	TTBR_BADDR_MASK = (1<<48 - 1) &^ 1
)

// BADDR returns the translation table base address.
func (r TTBR0) BADDR() uint64 {
	return uint64(r) & TTBR_BADDR_MASK
}

// CnP returns whether the Common-not-Private bit is set.
func (r TTBR0) CnP() bool {
	return r&TTBR_CNP != 0
}

// String implements fmt.Stringer.String.
func (r TTBR0) String() string {
	s := fmt.Sprintf("TTBR0=%#018x baddr=%#x", uint64(r), r.BADDR())
	if r.CnP() {
		s += " cnp"
	}
	return s
}
