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

package pagetables

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// Per-level coverage for the 4 KiB granule. The walk starts at level 1,
// whose table holds at most four entries for the 32-bit input range.
const (
	entriesPerPage = 512

	// Level 3 maps 4 KiB pages.
	l3Shift = xlat.PageShift
	l3Size  = uint64(1) << l3Shift
	l3Mask  = uint64(entriesPerPage-1) << l3Shift

	// Level 2 maps 2 MiB blocks.
	l2Shift = 21
	l2Size  = uint64(1) << l2Shift
	l2Mask  = uint64(entriesPerPage-1) << l2Shift

	// Level 1 maps 1 GiB blocks.
	l1Shift = 30
	l1Size  = uint64(1) << l1Shift
	l1Mask  = uint64(3) << l1Shift
)

// Long-descriptor fields. Bits 1:0 encode the descriptor type: invalid when
// bit 0 is clear, block at levels 1 and 2 when bit 1 is clear, table at
// levels 1 and 2 and page at level 3 when both are set.
const (
	descValid = uint64(1) << 0
	descTable = uint64(1) << 1

	attrIndxShift = 2
	attrIndxMask  = uint64(0x7) << attrIndxShift
	nsBit         = uint64(1) << 5
	apUnprivBit   = uint64(1) << 6
	apROBit       = uint64(1) << 7
	shShift       = 8
	shOuter       = uint64(2) << shShift
	shInner       = uint64(3) << shShift
	afBit         = uint64(1) << 10
	ngBit         = uint64(1) << 11

	xnBit = uint64(1) << 54

	// blockMarker is a software bit (ignored by hardware) consumed by Set
	// to choose the block encoding. It never survives in a valid entry.
	blockMarker = uint64(1) << 55

	// addrMask selects the output-address field. It is wider than the
	// architectural 40-bit output address so that table nodes allocated
	// from a 64-bit host heap remain addressable in the hosted model;
	// data mappings are held to the architectural limit by Map.
	addrMask = uint64(0x0000_ffff_ffff_f000)
)

// MapOpts are the attributes of a leaf descriptor.
type MapOpts struct {
	// Type selects the MAIR attribute slot, and with it the shareability
	// domain: write-back memory is mapped Inner Shareable, device and
	// non-cacheable memory Outer Shareable.
	Type xlat.MemType

	// ReadOnly withholds write permission.
	ReadOnly bool

	// User grants unprivileged access.
	User bool

	// NoExecute marks the region execute-never.
	NoExecute bool

	// NonSecure makes the output address a Non-secure physical address.
	NonSecure bool

	// NonGlobal restricts the mapping to the current ASID.
	NonGlobal bool
}

// String implements fmt.Stringer.String.
func (o MapOpts) String() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(o.Type.ShortString()))
	if o.ReadOnly {
		sb.WriteString("-RO")
	} else {
		sb.WriteString("-RW")
	}
	if o.User {
		sb.WriteString("-USR")
	}
	if o.NoExecute {
		sb.WriteString("-XN")
	}
	if o.NonSecure {
		sb.WriteString("-NS")
	} else {
		sb.WriteString("-S")
	}
	if o.NonGlobal {
		sb.WriteString("-nG")
	}
	return sb.String()
}

// attrBits returns the descriptor attribute bits encoding o.
func attrBits(o MapOpts) uint64 {
	v := uint64(o.Type) << attrIndxShift
	if o.Type == xlat.MemTypeWriteBack {
		v |= shInner
	} else {
		v |= shOuter
	}
	if o.ReadOnly {
		v |= apROBit
	}
	if o.User {
		v |= apUnprivBit
	}
	if o.NoExecute {
		v |= xnBit
	}
	if o.NonSecure {
		v |= nsBit
	}
	if o.NonGlobal {
		v |= ngBit
	}
	return v
}

// PTE is a single translation table entry.
type PTE uint64

// PTEs is a full table node. The level 1 table uses only its first entries;
// allocation is per node regardless.
type PTEs [entriesPerPage]PTE

// Valid returns true iff this entry is valid.
//
//go:nosplit
func (p *PTE) Valid() bool {
	return atomic.LoadUint64((*uint64)(p))&descValid != 0
}

// Clear clears this PTE, including any block marker.
//
//go:nosplit
func (p *PTE) Clear() {
	atomic.StoreUint64((*uint64)(p), 0)
}

// IsBlock returns true iff this entry is a block descriptor.
//
//go:nosplit
func (p *PTE) IsBlock() bool {
	return atomic.LoadUint64((*uint64)(p))&(descValid|descTable) == descValid
}

// SetBlock marks this entry for the block encoding. The entry is not valid
// until Set is called; a walk that declines to install the block overwrites
// the marker.
//
//go:nosplit
func (p *PTE) SetBlock() {
	atomic.StoreUint64((*uint64)(p), blockMarker)
}

// Address extracts the output address of this entry.
//
//go:nosplit
func (p *PTE) Address() uint64 {
	return atomic.LoadUint64((*uint64)(p)) & addrMask
}

// Opts returns the attributes of this entry.
//
//go:nosplit
func (p *PTE) Opts() MapOpts {
	v := atomic.LoadUint64((*uint64)(p))
	return MapOpts{
		Type:      xlat.MemType((v & attrIndxMask) >> attrIndxShift),
		ReadOnly:  v&apROBit != 0,
		User:      v&apUnprivBit != 0,
		NoExecute: v&xnBit != 0,
		NonSecure: v&nsBit != 0,
		NonGlobal: v&ngBit != 0,
	}
}

// Set installs this entry as a leaf mapping addr with the given attributes.
// The access flag is always set; the regime takes no access-flag faults.
// The block encoding is used when SetBlock marked the entry, the page
// encoding otherwise.
//
//go:nosplit
func (p *PTE) Set(addr uint64, opts MapOpts) {
	v := (addr & addrMask) | descValid | afBit | attrBits(opts)
	if atomic.LoadUint64((*uint64)(p))&blockMarker == 0 {
		v |= descTable // Level 3 page descriptor.
	}
	atomic.StoreUint64((*uint64)(p), v)
}

// setPageTable installs this entry as a pointer to a next-level table.
func (p *PTE) setPageTable(pt *PageTables, ptes *PTEs) {
	addr := uint64(pt.Allocator.PhysicalFor(ptes))
	if addr&^addrMask != 0 {
		// The allocator handed out a node the descriptor cannot
		// reference.
		panic(fmt.Sprintf("pagetables: table node at %#x is outside the descriptor address range", addr))
	}
	atomic.StoreUint64((*uint64)(p), addr|descValid|descTable)
}
