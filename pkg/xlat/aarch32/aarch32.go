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

// Package aarch32 is the architecture layer of the translation library for
// the 32-bit secure world: it reports fixed architectural capabilities,
// computes the register values that activate a built table for the secure
// PL1&0 stage-1 regime, and drives the TLB maintenance protocol that keeps
// translation caches coherent with table edits.
//
// The package touches hardware only through the Ops capability. On arm the
// real CP15 adapter is preinstalled; everywhere else a software model must
// be installed with SetOps before any operation that reaches hardware.
package aarch32

import (
	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// maxPA is the output ceiling of the 40-bit long-descriptor physical range.
const maxPA = uint64(1)<<40 - 1

// upperAttrXN is the XN bit in a descriptor's upper attributes. The PL1&0
// regime also defines PXN, but this library sets and clears executability as
// one property, so XN alone expresses it.
const upperAttrXN = uint64(1) << 54

// GranuleSizeSupported returns whether size is a supported translation
// granule. The long-descriptor format on this architecture supports exactly
// one.
func GranuleSizeSupported(size uintptr) bool {
	return size == xlat.PageSize
}

// MaxSupportedGranuleSize returns the largest supported granule size.
func MaxSupportedGranuleSize() uintptr {
	return xlat.PageSize
}

// MaxSupportedPA returns the highest physical address the long-descriptor
// format can output.
func MaxSupportedPA() uint64 {
	return maxPA
}

// CurrentEL returns the execution level governed by the regime, always 1.
// Every secure PL1 mode (Monitor, System, SVC, Abort, UND, IRQ and FIQ)
// behaves identically with respect to the PL1&0 regime, so no live mode
// inspection is needed. A port to a variant without that equivalence must
// replace this with a real mode read.
func CurrentEL() uint {
	return 1
}

// ExecuteNeverAttrs returns the upper-attribute descriptor bits marking a
// mapped region non-executable. The regime argument is accepted for
// interface parity and ignored.
func ExecuteNeverAttrs(r xlat.Regime) uint64 {
	return upperAttrXN
}

// MMUEnabled returns whether stage-1 translation is live for the regime. It
// reads the hardware enable bit and has no side effects.
func MMUEnabled(r xlat.Regime) bool {
	return sysreg.SCTLR(hw.SCTLR()).MMUEnabled()
}
