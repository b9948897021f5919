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

// MAIR0 holds attribute encodings for AttrIndx values 0..3. MAIR1 (AttrIndx
// 4..7) is never programmed by this library.
type MAIR0 uint32

// Memory attribute encodings, one per 8-bit MAIR slot.
const (
	// MAIR_ATTR_IWBWA_OWBWA_NTR is inner and outer write-back,
	// write-allocate, non-transient normal memory.
	MAIR_ATTR_IWBWA_OWBWA_NTR = 0xff

	// MAIR_ATTR_DEVICE is Device-nGnRE memory.
	MAIR_ATTR_DEVICE = 0x04

	// MAIR_ATTR_NON_CACHEABLE is inner and outer non-cacheable normal
	// memory.
	MAIR_ATTR_NON_CACHEABLE = 0x44
)

// MAIR0Set places an 8-bit attribute encoding in the given AttrIndx slot.
func MAIR0Set(attr uint32, index uint) MAIR0 {
	return MAIR0(attr << (index * 8))
}

// Attr returns the attribute encoding held in the given AttrIndx slot.
func (r MAIR0) Attr(index uint) uint32 {
	return uint32(r>>(index*8)) & 0xff
}

// String implements fmt.Stringer.String.
func (r MAIR0) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "MAIR0=%#010x", uint32(r))
	for i := uint(0); i < 4; i++ {
		fmt.Fprintf(&s, " attr%d=%#04x", i, r.Attr(i))
	}
	return s.String()
}
