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

package aarch32

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// Virtual address space sizes encodable by TTBCR.T0SZ. The field is three
// bits wide, so sizes below 2^25 cannot be expressed.
const (
	MinVirtAddrSpaceSize = uint64(1) << (32 - sysreg.TTBCR_T0SZ_MASK)
	MaxVirtAddrSpaceSize = uint64(1) << 32
)

// SetupMMUConfig computes the register triple that activates baseTable for
// the secure PL1&0 stage-1 regime and writes it into cfg. It only computes:
// nothing is written to hardware, and the caller keeps the table memory
// alive for as long as the configuration may be active.
//
// baseTable is the physical address of the level-1 table. maxPA is accepted
// for interface parity with the 64-bit variant; the 32-bit control layout
// derives nothing from it. maxVA bounds the input address range: the full
// 32-bit range when it is MaxUint32, otherwise maxVA+1 must be a power of
// two in [MinVirtAddrSpaceSize, MaxVirtAddrSpaceSize].
//
// Configuration belongs to a trusted initialization point, so precondition
// violations panic rather than return errors: calling from outside the
// Secure world, or an address-space size the control register cannot encode.
func SetupMMUConfig(cfg *xlat.MMUConfig, flags xlat.Flags, baseTable uintptr, maxPA uint64, maxVA uintptr, r xlat.Regime) {
	if hw.SCR()&sysreg.SCR_NS != 0 {
		panic("aarch32: secure PL1&0 regime configured from the Non-secure world")
	}

	// Attribute encodings in their contract slots.
	mair := sysreg.MAIR0Set(sysreg.MAIR_ATTR_DEVICE, xlat.AttrIndexDevice)
	mair |= sysreg.MAIR0Set(sysreg.MAIR_ATTR_IWBWA_OWBWA_NTR, xlat.AttrIndexWriteBack)
	mair |= sysreg.MAIR0Set(sysreg.MAIR_ATTR_NON_CACHEABLE, xlat.AttrIndexNonCacheable)

	// Long-descriptor format, and no TTBR1 walks: TTBR0 translates the
	// whole input range.
	ttbcr := uint32(sysreg.TTBCR_EAE | sysreg.TTBCR_EPD1)

	// Restrict the input address range when the space is smaller than the
	// full 32 bits.
	if uint64(maxVA) != math.MaxUint32 {
		size := uint64(maxVA) + 1
		if !virtAddrSpaceSizeValid(size) {
			panic(fmt.Sprintf("aarch32: virtual address space size %#x is not an encodable power of two", size))
		}
		t0sz := 32 - uint32(bits.TrailingZeros64(size))
		ttbcr |= t0sz << sysreg.TTBCR_T0SZ_SHIFT
	}

	// Cacheability and shareability of table-walk accesses through TTBR0.
	if flags&xlat.TablesNonCacheable != 0 {
		ttbcr |= sysreg.TTBCR_SH0_NON_SHAREABLE | sysreg.TTBCR_RGN0_OUTER_NC | sysreg.TTBCR_RGN0_INNER_NC
	} else {
		ttbcr |= sysreg.TTBCR_SH0_INNER_SHAREABLE | sysreg.TTBCR_RGN0_OUTER_WBA | sysreg.TTBCR_RGN0_INNER_WBA
	}

	ttbr0 := uint64(baseTable)
	if DetectFeatures().CnP {
		// Share the table across all PEs of the inner-shareable domain.
		// Mandatory on ARMv8.2 implementations.
		ttbr0 |= sysreg.TTBR_CNP
	}

	cfg[xlat.CfgMAIR] = uint64(mair)
	cfg[xlat.CfgTCR] = uint64(ttbcr)
	cfg[xlat.CfgTTBR0] = ttbr0
}

func virtAddrSpaceSizeValid(size uint64) bool {
	return size >= MinVirtAddrSpaceSize && size <= MaxVirtAddrSpaceSize && size&(size-1) == 0
}
