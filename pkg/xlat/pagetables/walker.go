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

// visitor is the interface of walk callbacks.
type visitor interface {
	// requiresAlloc indicates that tables must be allocated so the walk
	// reaches every entry in the range. When false, invalid entries are
	// skipped over.
	requiresAlloc() bool

	// requiresSplit indicates that block descriptors partially covered
	// by the range must be split so the walk can visit their interior.
	requiresSplit() bool

	// visit is called on each reached entry with the start of the range
	// the entry translates and the coverage of the entry minus one.
	// Returning false aborts the walk.
	visit(start uint64, entry *PTE, align uint64) bool
}

// walker walks translation tables.
//
// Addresses are carried in uint64 so a walk reaching the 2^32 boundary does
// not overflow on 32-bit hosts.
type walker struct {
	// pageTables are the tables to walk.
	pageTables *PageTables

	// visitor receives each entry.
	visitor visitor
}

// addrEnd returns the next boundary of the given size covering addr, or end
// if that comes earlier. size is a power of two.
func addrEnd(addr, end, size uint64) uint64 {
	next := (addr + size) &^ (size - 1)
	if next < addr || next > end {
		return end
	}
	return next
}

// next returns the start address quantized up by the given size.
func next(start, size uint64) uint64 {
	start &= ^(size - 1)
	start += size
	return start
}

// iterateRange walks all levels of the tables for the given range.
//
// If requiresAlloc is true, then Set must be called on all visited entries,
// with the exception of blocks: when a valid block cannot be installed, the
// walk continues into individual entries.
//
// The walk installs the largest block descriptors the range and physical
// alignment admit. Whether an entry is a block is visible through the align
// argument of the callback.
//
// Preconditions: start is page-aligned, start does not exceed end, and the
// range lies inside the input address space.
func (w *walker) iterateRange(start, end uint64) {
	if start&(l3Size-1) != 0 {
		panic("pagetables: unaligned start")
	}
	if end < start {
		panic("pagetables: start > end")
	}
	if end > w.pageTables.vaLimit {
		panic("pagetables: range extends past the input address range")
	}
	w.walkL1(start, end)
}

// walkL1 iterates over the level 1 entries in the given range.
func (w *walker) walkL1(start, end uint64) bool {
	for start < end {
		var l2Entries *PTEs
		nextBoundary := addrEnd(start, end, l1Size)
		l1Index := uint16((start & l1Mask) >> l1Shift)
		l1Entry := &w.pageTables.root[l1Index]
		if !l1Entry.Valid() {
			if !w.visitor.requiresAlloc() {
				// Skip over this entry.
				start = nextBoundary
				continue
			}

			// This level has 1 GiB blocks. If the region covers a
			// full entry, try to install one and skip the level 2
			// table entirely.
			if start&(l1Size-1) == 0 && end-start >= l1Size {
				l1Entry.SetBlock()
				if !w.visitor.visit(start&^(l1Size-1), l1Entry, l1Size-1) {
					return false
				}
				if l1Entry.Valid() {
					start = nextBoundary
					continue
				}
			}

			// Allocate a new level 2 table.
			l2Entries = w.pageTables.Allocator.NewPTEs()
			l1Entry.setPageTable(w.pageTables, l2Entries)

		} else if l1Entry.IsBlock() {
			// Does this block need to be split?
			if w.visitor.requiresSplit() && (start&(l1Size-1) != 0 || end < next(start, l1Size)) {
				// Install the relevant level 2 entries.
				l2Entries = w.pageTables.Allocator.NewPTEs()
				for index := uint16(0); index < entriesPerPage; index++ {
					l2Entries[index].SetBlock()
					l2Entries[index].Set(
						l1Entry.Address()+(l2Size*uint64(index)),
						l1Entry.Opts())
				}
				l1Entry.setPageTable(w.pageTables, l2Entries)
			} else {
				// A block to be checked directly.
				if !w.visitor.visit(start&^(l1Size-1), l1Entry, l1Size-1) {
					return false
				}

				// Note that the block was changed.
				start = nextBoundary
				continue
			}
		} else {
			l2Entries = w.pageTables.Allocator.LookupPTEs(uintptr(l1Entry.Address()))
		}

		// Map the next level, since this is valid.
		ok, clearL2Entries := w.walkL2(l2Entries, start, nextBoundary)
		if !ok {
			return false
		}

		// Check if we no longer need this table.
		if clearL2Entries == entriesPerPage {
			l1Entry.Clear()
			w.pageTables.Allocator.FreePTEs(l2Entries)
		}

		start = nextBoundary
	}
	return true
}

// walkL2 iterates over the level 2 entries in the given range.
//
// Returns:
//   - ok: whether the walk was successful.
//   - clearEntries: number of clear entries.
func (w *walker) walkL2(l2Entries *PTEs, start, end uint64) (bool, uint16) {
	var clearEntries uint16
	for start < end {
		var l3Entries *PTEs
		nextBoundary := addrEnd(start, end, l2Size)
		l2Index := uint16((start & l2Mask) >> l2Shift)
		l2Entry := &l2Entries[l2Index]
		if !l2Entry.Valid() {
			if !w.visitor.requiresAlloc() {
				// Skip over this entry.
				clearEntries++
				start = nextBoundary
				continue
			}

			// This level has 2 MiB blocks. If the region covers a
			// full entry, we can skip allocating a level 3 table.
			if start&(l2Size-1) == 0 && end-start >= l2Size {
				l2Entry.SetBlock()
				if !w.visitor.visit(start&^(l2Size-1), l2Entry, l2Size-1) {
					return false, clearEntries
				}
				if l2Entry.Valid() {
					start = nextBoundary
					continue
				}
			}

			// Allocate a new level 3 table.
			l3Entries = w.pageTables.Allocator.NewPTEs()
			l2Entry.setPageTable(w.pageTables, l3Entries)

		} else if l2Entry.IsBlock() {
			// Does this block need to be split?
			if w.visitor.requiresSplit() && (start&(l2Size-1) != 0 || end < next(start, l2Size)) {
				// Install the relevant level 3 entries.
				l3Entries = w.pageTables.Allocator.NewPTEs()
				for index := uint16(0); index < entriesPerPage; index++ {
					l3Entries[index].Set(
						l2Entry.Address()+(l3Size*uint64(index)),
						l2Entry.Opts())
				}
				l2Entry.setPageTable(w.pageTables, l3Entries)
			} else {
				// A block to be checked directly.
				if !w.visitor.visit(start&^(l2Size-1), l2Entry, l2Size-1) {
					return false, clearEntries
				}

				// Might have been cleared.
				if !l2Entry.Valid() {
					clearEntries++
				}

				// Note that the block was changed.
				start = nextBoundary
				continue
			}
		} else {
			l3Entries = w.pageTables.Allocator.LookupPTEs(uintptr(l2Entry.Address()))
		}

		// Map the next level, since this is valid.
		ok, clearL3Entries := w.walkL3(l3Entries, start, nextBoundary)
		if !ok {
			return false, clearEntries
		}

		// Check if we no longer need this table.
		if clearL3Entries == entriesPerPage {
			l2Entry.Clear()
			w.pageTables.Allocator.FreePTEs(l3Entries)
			clearEntries++
		}

		start = nextBoundary
	}
	return true, clearEntries
}

// walkL3 iterates over the level 3 entries in the given range.
//
// Returns:
//   - ok: whether the walk was successful.
//   - clearEntries: number of clear entries.
func (w *walker) walkL3(l3Entries *PTEs, start, end uint64) (bool, uint16) {
	var clearEntries uint16
	for start < end {
		l3Index := uint16((start & l3Mask) >> l3Shift)
		entry := &l3Entries[l3Index]
		if !entry.Valid() && !w.visitor.requiresAlloc() {
			clearEntries++
			start += l3Size
			continue
		}

		// At this point, we are guaranteed that start%l3Size == 0.
		if !w.visitor.visit(start&^(l3Size-1), entry, l3Size-1) {
			return false, clearEntries
		}
		if !entry.Valid() && !w.visitor.requiresAlloc() {
			clearEntries++
		}

		// Note that the entry was changed.
		start += l3Size
	}
	return true, clearEntries
}
