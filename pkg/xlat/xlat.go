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

// Package xlat holds the contract shared between the translation-table
// builder and the architecture layer that activates the tables: the regime
// selector, configuration flags, memory-type attribute slots and the register
// buffer produced by configuration.
//
// The constants here are load-bearing: the attribute slot indices must match
// the AttrIndx values the builder encodes into descriptors, or mapped memory
// silently gets the wrong attributes.
package xlat

import "fmt"

// PageShift and PageSize describe the 4 KiB translation granule, the only
// granule the long-descriptor format supports on this architecture.
const (
	PageShift = 12
	PageSize  uintptr = 1 << PageShift
	PageMask  uintptr = PageSize - 1
)

// Regime selects a translation regime. The 32-bit secure world has exactly
// one, so the selector exists for interface parity with dual-regime
// architectures and every operation accepting it ignores the value.
type Regime int

// RegimeSecurePL1 is the secure PL1&0 stage-1 translation regime.
const RegimeSecurePL1 Regime = 0

// String implements fmt.Stringer.String.
func (r Regime) String() string {
	if r == RegimeSecurePL1 {
		return "SecurePL1&0"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// Flags alter how a regime configuration is computed.
type Flags uint32

const (
	// TablesNonCacheable marks the translation tables themselves as
	// residing in non-cacheable memory: table-walk accesses are then
	// performed non-cacheable and non-shareable.
	TablesNonCacheable Flags = 1 << 0
)

// MemType specifies the memory access behavior of a mapped region. The value
// doubles as the MAIR attribute slot index encoded into descriptors, so the
// enumeration order is fixed.
type MemType uint8

const (
	// MemTypeWriteBack is inner and outer write-back, write-allocate
	// normal memory: the type for ordinary RAM, and the zero value.
	MemTypeWriteBack MemType = iota

	// MemTypeDevice is Device-nGnRE memory, for memory-mapped peripherals.
	MemTypeDevice

	// MemTypeNonCacheable is normal memory bypassing the caches.
	MemTypeNonCacheable

	// NumMemTypes is the number of memory types.
	NumMemTypes
)

// Attribute slot indices programmed into MAIR0, aliased to the MemType
// values above.
const (
	AttrIndexWriteBack    = uint(MemTypeWriteBack)
	AttrIndexDevice       = uint(MemTypeDevice)
	AttrIndexNonCacheable = uint(MemTypeNonCacheable)
)

// String implements fmt.Stringer.String.
func (mt MemType) String() string {
	switch mt {
	case MemTypeWriteBack:
		return "WriteBack"
	case MemTypeDevice:
		return "Device"
	case MemTypeNonCacheable:
		return "NonCacheable"
	default:
		return fmt.Sprintf("%d", mt)
	}
}

// ShortString returns a three-character string compactly representing the
// MemType.
func (mt MemType) ShortString() string {
	switch mt {
	case MemTypeWriteBack:
		return "MEM"
	case MemTypeDevice:
		return "DEV"
	case MemTypeNonCacheable:
		return "NC "
	default:
		return fmt.Sprintf("%3d", mt)
	}
}
