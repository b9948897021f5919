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

import (
	"fmt"
	"strings"
)

// TTBCR is the PL1&0 Translation Table Base Control Register, long-descriptor
// view (TTBCR.EAE set).
type TTBCR uint32

// TTBCR bits and fields.
const (
	// TTBCR_EAE selects the long-descriptor translation table format.
	TTBCR_EAE = 1 << 31

	// TTBCR_EPD1 disables translation table walks through TTBR1.
	TTBCR_EPD1 = 1 << 23

	// TTBCR_EPD0 disables translation table walks through TTBR0.
	TTBCR_EPD0 = 1 << 7

	// TTBCR_T0SZ_SHIFT and TTBCR_T0SZ_MASK delimit the size offset of the
	// TTBR0 region: the input address range is 2^(32-T0SZ) bytes.
	TTBCR_T0SZ_SHIFT = 0
	TTBCR_T0SZ_MASK  = 0x7

	// SH0 is the shareability of TTBR0 table-walk accesses.
	TTBCR_SH0_NON_SHAREABLE   = 0x0 << 12
	TTBCR_SH0_OUTER_SHAREABLE = 0x2 << 12
	TTBCR_SH0_INNER_SHAREABLE = 0x3 << 12
	TTBCR_SH0_MASK            = 0x3 << 12

	// ORGN0 is the outer cacheability of TTBR0 table-walk accesses.
	TTBCR_RGN0_OUTER_NC   = 0x0 << 10
	TTBCR_RGN0_OUTER_WBA  = 0x1 << 10
	TTBCR_RGN0_OUTER_WT   = 0x2 << 10
	TTBCR_RGN0_OUTER_WBNA = 0x3 << 10
	TTBCR_RGN0_OUTER_MASK = 0x3 << 10

	// IRGN0 is the inner cacheability of TTBR0 table-walk accesses.
	TTBCR_RGN0_INNER_NC   = 0x0 << 8
	TTBCR_RGN0_INNER_WBA  = 0x1 << 8
	TTBCR_RGN0_INNER_WT   = 0x2 << 8
	TTBCR_RGN0_INNER_WBNA = 0x3 << 8
	TTBCR_RGN0_INNER_MASK = 0x3 << 8
)

// T0SZ returns the size offset of the TTBR0 addressed region.
func (r TTBCR) T0SZ() uint {
	return uint(r>>TTBCR_T0SZ_SHIFT) & TTBCR_T0SZ_MASK
}

// InputRange returns the size in bytes of the input address range selected by
// T0SZ.
func (r TTBCR) InputRange() uint64 {
	return uint64(1) << (32 - r.T0SZ())
}

func (r TTBCR) shareability() string {
	switch uint32(r) & TTBCR_SH0_MASK {
	case TTBCR_SH0_NON_SHAREABLE:
		return "nsh"
	case TTBCR_SH0_OUTER_SHAREABLE:
		return "osh"
	case TTBCR_SH0_INNER_SHAREABLE:
		return "ish"
	default:
		return "reserved"
	}
}

func rgn(bits uint32) string {
	switch bits {
	case 0:
		return "nc"
	case 1:
		return "wba"
	case 2:
		return "wt"
	default:
		return "wbna"
	}
}

// String implements fmt.Stringer.String.
func (r TTBCR) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "TTBCR=%#010x", uint32(r))
	if r&TTBCR_EAE != 0 {
		s.WriteString(" eae")
	}
	if r&TTBCR_EPD0 != 0 {
		s.WriteString(" epd0")
	}
	if r&TTBCR_EPD1 != 0 {
		s.WriteString(" epd1")
	}
	fmt.Fprintf(&s, " t0sz=%d sh0=%s orgn0=%s irgn0=%s",
		r.T0SZ(),
		r.shareability(),
		rgn(uint32(r>>10)&0x3),
		rgn(uint32(r>>8)&0x3))
	return s.String()
}
