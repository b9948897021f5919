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

// ID_MMFR4 fields.
const (
	// ID_MMFR4_CNP_SHIFT and ID_MMFR4_CNP_MASK delimit the CnP field. A
	// non-zero value means TTBR Common-not-Private is implemented.
	ID_MMFR4_CNP_SHIFT = 0
	ID_MMFR4_CNP_MASK  = 0xf
)

// IDMMFR4CnP extracts the CnP support field from an ID_MMFR4 value.
func IDMMFR4CnP(v uint32) uint32 {
	return (v >> ID_MMFR4_CNP_SHIFT) & ID_MMFR4_CNP_MASK
}
