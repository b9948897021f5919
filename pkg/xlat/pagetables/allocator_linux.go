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

//go:build linux
// +build linux

package pagetables

import (
	"fmt"
	"unsafe"

	"github.com/jian-tian/arm-trusted-firmware/pkg/memutil"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// slabPages is the number of table nodes carved from each backing mapping.
const slabPages = 16

// MmapAllocator hands out table nodes carved from anonymous page-aligned
// mappings, keeping table memory off the Go heap. Kernel mappings start
// page-aligned, so no alignment fixup is needed.
type MmapAllocator struct {
	// free is the set of unused nodes.
	free []*PTEs

	// slabs retains the backing mappings until Release.
	slabs [][]byte
}

// NewMmapAllocator returns an allocator backed by anonymous memory.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

// grow maps a fresh slab and carves it into nodes.
func (m *MmapAllocator) grow() {
	slab, err := memutil.MapAnonymous(slabPages * xlat.PageSize)
	if err != nil {
		panic(fmt.Sprintf("pagetables: anonymous mapping failed: %v", err))
	}
	m.slabs = append(m.slabs, slab)
	for off := uintptr(0); off < uintptr(len(slab)); off += xlat.PageSize {
		m.free = append(m.free, (*PTEs)(unsafe.Pointer(&slab[off])))
	}
}

// NewPTEs implements Allocator.NewPTEs.
func (m *MmapAllocator) NewPTEs() *PTEs {
	if len(m.free) == 0 {
		m.grow()
	}
	ptes := m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]
	return ptes
}

// PhysicalFor implements Allocator.PhysicalFor.
func (m *MmapAllocator) PhysicalFor(ptes *PTEs) uintptr {
	return physicalFor(ptes)
}

// LookupPTEs implements Allocator.LookupPTEs.
func (m *MmapAllocator) LookupPTEs(physical uintptr) *PTEs {
	return fromPhysical(physical)
}

// FreePTEs implements Allocator.FreePTEs. Freed nodes are given out again;
// the walker only frees fully-cleared nodes, so they need no zeroing.
func (m *MmapAllocator) FreePTEs(ptes *PTEs) {
	m.free = append(m.free, ptes)
}

// Release unmaps the backing slabs. The tables built from this allocator
// must no longer be walked.
func (m *MmapAllocator) Release() error {
	for _, slab := range m.slabs {
		if err := memutil.UnmapSlice(slab); err != nil {
			return fmt.Errorf("unmapping table slab: %w", err)
		}
	}
	m.slabs = nil
	m.free = nil
	return nil
}
