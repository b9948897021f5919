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
	"unsafe"

	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// newAlignedPTEs returns a set of PTEs aligned to the translation granule.
func newAlignedPTEs() *PTEs {
	ptes := new(PTEs)
	offset := physicalFor(ptes) & xlat.PageMask
	if offset == 0 {
		// Already aligned.
		return ptes
	}

	// Need to force an aligned allocation.
	unaligned := make([]byte, (2*xlat.PageSize)-1)
	offset = uintptr(unsafe.Pointer(&unaligned[0])) & xlat.PageMask
	if offset != 0 {
		offset = xlat.PageSize - offset
	}
	return (*PTEs)(unsafe.Pointer(&unaligned[offset]))
}

// physicalFor returns the "physical" address of ptes.
//
//go:nosplit
func physicalFor(ptes *PTEs) uintptr {
	return uintptr(unsafe.Pointer(ptes))
}

// fromPhysical returns the PTEs at the given "physical" address.
//
//go:nosplit
func fromPhysical(physical uintptr) *PTEs {
	return (*PTEs)(unsafe.Pointer(physical))
}
