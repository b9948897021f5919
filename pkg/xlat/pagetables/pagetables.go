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

// Package pagetables builds long-descriptor translation tables for the
// 32-bit Secure PL1&0 regime: three levels under the 4 KiB granule, with
// 1 GiB and 2 MiB block descriptors where alignment allows.
//
// Edits made while translation is enabled are pushed out to the TLB entry
// by entry, with one synchronization completing the whole operation.
package pagetables

import (
	"fmt"

	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
)

// PageTables is a set of long-descriptor translation tables rooted at a
// level 1 table.
//
// Concurrent modification is not supported: the regime assumes a single
// initializing processor, and so does this builder.
type PageTables struct {
	// Allocator is used to allocate table nodes.
	Allocator Allocator

	// root is the level 1 table.
	root *PTEs

	// rootPhysical is the physical address of root, handed to TTBR0 by
	// Config.
	rootPhysical uintptr

	// vaLimit is the exclusive upper bound of the input address range.
	vaLimit uint64

	// tablesNonCacheable requests non-cacheable walk attributes when the
	// registers are computed.
	tablesNonCacheable bool
}

// Opts configures a new PageTables.
type Opts struct {
	// VASize is the size of the input address range. Only the 2 GiB and
	// 4 GiB ranges keep the walk rooted at level 1, so those are the
	// sizes this builder accepts. Zero means the full 4 GiB range.
	VASize uint64

	// TablesNonCacheable declares that the table nodes live in
	// non-cacheable memory, making walks non-cacheable as well.
	TablesNonCacheable bool
}

// New returns new PageTables.
func New(a Allocator, opts Opts) *PageTables {
	p := new(PageTables)
	p.Init(a, opts)
	return p
}

// Init initializes a set of PageTables.
func (p *PageTables) Init(a Allocator, opts Opts) {
	size := opts.VASize
	if size == 0 {
		size = aarch32.MaxVirtAddrSpaceSize
	}
	if size != aarch32.MaxVirtAddrSpaceSize && size != aarch32.MaxVirtAddrSpaceSize/2 {
		panic(fmt.Sprintf("pagetables: input range of size %#x does not keep the walk rooted at level 1", size))
	}
	if !aarch32.GranuleSizeSupported(uintptr(l3Size)) {
		panic("pagetables: granule size not supported")
	}
	p.Allocator = a
	p.root = a.NewPTEs()
	p.rootPhysical = a.PhysicalFor(p.root)
	p.vaLimit = size
	p.tablesNonCacheable = opts.TablesNonCacheable
}

// RootPhysical returns the physical address of the level 1 table, the value
// Config encodes into the base register.
func (p *PageTables) RootPhysical() uintptr {
	return p.rootPhysical
}

// VASize returns the size of the input address range.
func (p *PageTables) VASize() uint64 {
	return p.vaLimit
}

// checkRange validates an operation range against the input address space.
func checkRange(va, length, limit uint64) {
	if va&(l3Size-1) != 0 {
		panic(fmt.Sprintf("pagetables: unaligned address %#x", va))
	}
	if length&(l3Size-1) != 0 {
		panic(fmt.Sprintf("pagetables: unaligned length %#x", length))
	}
	if end := va + length; end < va || end > limit {
		panic(fmt.Sprintf("pagetables: range [%#x, %#x) extends past the input address range", va, va+length))
	}
}

// mapVisitor installs the entries for a Map.
type mapVisitor struct {
	target   uint64  // Input.
	physical uint64  // Input.
	opts     MapOpts // Input.
	live     bool    // Input.

	// prev reports whether the walk replaced a differing mapping.
	prev bool

	// invalidated reports whether any live TLB entry was retired.
	invalidated bool
}

func (*mapVisitor) requiresAlloc() bool { return true }

func (*mapVisitor) requiresSplit() bool { return true }

func (v *mapVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	p := v.physical + (start - v.target)
	replaced := entry.Valid()
	if replaced && (entry.Address() != p || entry.Opts() != v.opts) {
		v.prev = true
	}
	if p&align != 0 {
		// The physical address cannot use an entry this large. Clear
		// it so the walk installs finer entries; a stale block here
		// would shadow them.
		entry.Clear()
		if replaced {
			v.retire(start)
		}
		return true
	}
	entry.Set(p, v.opts)
	if replaced {
		v.retire(start)
	}
	return true
}

// retire pushes a replaced translation out of any live TLB.
func (v *mapVisitor) retire(start uint64) {
	if !v.live {
		return
	}
	aarch32.InvalidateVA(uintptr(start), xlat.RegimeSecurePL1)
	v.invalidated = true
}

// Map installs a mapping of [va, va+length) to the physical range starting
// at physical, overwriting any previous mapping. Device memory is always
// mapped execute-never.
//
// Fresh entries need no TLB maintenance; replaced ones are invalidated as
// they change, and one synchronization completes the operation.
//
// Returns true iff a previous mapping with a different target or different
// attributes was overwritten.
//
// Preconditions: va, length and physical are page-aligned, the virtual
// range lies inside the input address range, and the physical range lies
// below the 40-bit output-address limit.
func (p *PageTables) Map(va, length uint64, opts MapOpts, physical uint64) bool {
	if length == 0 {
		return false
	}
	checkRange(va, length, p.vaLimit)
	if physical&(l3Size-1) != 0 {
		panic(fmt.Sprintf("pagetables: unaligned physical address %#x", physical))
	}
	if last := physical + length - 1; last < physical || last > aarch32.MaxSupportedPA() {
		panic(fmt.Sprintf("pagetables: physical range through %#x exceeds the output address limit", physical+length-1))
	}
	if opts.Type == xlat.MemTypeDevice {
		opts.NoExecute = true
	}
	v := mapVisitor{
		target:   va,
		physical: physical,
		opts:     opts,
		live:     aarch32.MMUEnabled(xlat.RegimeSecurePL1),
	}
	w := walker{pageTables: p, visitor: &v}
	w.iterateRange(va, va+length)
	if v.invalidated {
		aarch32.SyncInvalidation()
	}
	return v.prev
}

// unmapVisitor clears the entries for an Unmap.
type unmapVisitor struct {
	live bool // Input.

	// count is the number of entries cleared.
	count int

	// invalidated reports whether any live TLB entry was retired.
	invalidated bool
}

func (*unmapVisitor) requiresAlloc() bool { return false }

func (*unmapVisitor) requiresSplit() bool { return true }

func (v *unmapVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	entry.Clear()
	v.count++
	if v.live {
		aarch32.InvalidateVA(uintptr(start), xlat.RegimeSecurePL1)
		v.invalidated = true
	}
	return true
}

// Unmap unmaps the given range, returning true iff at least one entry was
// removed. Tables left with no valid entries are returned to the allocator.
//
// Preconditions: va and length are page-aligned and the range lies inside
// the input address range.
func (p *PageTables) Unmap(va, length uint64) bool {
	if length == 0 {
		return false
	}
	checkRange(va, length, p.vaLimit)
	v := unmapVisitor{live: aarch32.MMUEnabled(xlat.RegimeSecurePL1)}
	w := walker{pageTables: p, visitor: &v}
	w.iterateRange(va, va+length)
	if v.invalidated {
		aarch32.SyncInvalidation()
	}
	return v.count > 0
}

// emptyVisitor stops at the first valid entry.
type emptyVisitor struct {
	count int
}

func (*emptyVisitor) requiresAlloc() bool { return false }

func (*emptyVisitor) requiresSplit() bool { return false }

func (v *emptyVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	v.count++
	return false
}

// IsEmpty reports whether the given range holds no mappings.
//
// Preconditions: va and length are page-aligned and the range lies inside
// the input address range.
func (p *PageTables) IsEmpty(va, length uint64) bool {
	if length == 0 {
		return true
	}
	checkRange(va, length, p.vaLimit)
	v := emptyVisitor{}
	w := walker{pageTables: p, visitor: &v}
	w.iterateRange(va, va+length)
	return v.count == 0
}

// lookupVisitor captures the entry covering target.
type lookupVisitor struct {
	target uint64 // Input.

	// Outputs, set when a valid entry covers target.
	physical uint64
	opts     MapOpts
	found    bool
}

func (*lookupVisitor) requiresAlloc() bool { return false }

func (*lookupVisitor) requiresSplit() bool { return false }

func (v *lookupVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	v.physical = entry.Address() + (v.target - start)
	v.opts = entry.Opts()
	v.found = true
	return false
}

// Lookup resolves va through the tables. When a mapping covers va, the
// translated physical address and the mapping attributes are returned.
//
// Precondition: va lies inside the input address range.
func (p *PageTables) Lookup(va uint64) (physical uint64, opts MapOpts, ok bool) {
	page := va &^ (l3Size - 1)
	v := lookupVisitor{target: page}
	w := walker{pageTables: p, visitor: &v}
	w.iterateRange(page, page+l3Size)
	if !v.found {
		return 0, MapOpts{}, false
	}
	return v.physical + (va & (l3Size - 1)), v.opts, true
}

// Config fills cfg with the register values describing these tables: the
// field-attribute register, the control register for the stored input-range
// size and walk cacheability, and the base register pointing at the level 1
// table.
func (p *PageTables) Config(cfg *xlat.MMUConfig) {
	var flags xlat.Flags
	if p.tablesNonCacheable {
		flags |= xlat.TablesNonCacheable
	}
	aarch32.SetupMMUConfig(cfg, flags, p.rootPhysical, aarch32.MaxSupportedPA(), uintptr(p.vaLimit-1), xlat.RegimeSecurePL1)
}
