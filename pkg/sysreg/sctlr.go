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

// SCTLR is the PL1 System Control Register.
type SCTLR uint32

// SCTLR bits.
const (
	// SCTLR_M enables PL1&0 stage-1 address translation.
	SCTLR_M = 1 << 0

	// SCTLR_A enables strict alignment checking.
	SCTLR_A = 1 << 1

	// SCTLR_C enables data and unified caches.
	SCTLR_C = 1 << 2

	// SCTLR_I enables instruction caches.
	SCTLR_I = 1 << 12
)

// MMUEnabled returns whether stage-1 translation is active.
func (r SCTLR) MMUEnabled() bool {
	return r&SCTLR_M != 0
}

// String implements fmt.Stringer.String.
func (r SCTLR) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "SCTLR=%#010x", uint32(r))
	for _, f := range []struct {
		bit  SCTLR
		name string
	}{
		{SCTLR_M, "m"},
		{SCTLR_A, "a"},
		{SCTLR_C, "c"},
		{SCTLR_I, "i"},
	} {
		if r&f.bit != 0 {
			s.WriteString(" " + f.name)
		}
	}
	return s.String()
}

// SCR is the Secure Configuration Register. Accessible from secure PL1 only.
const (
	// SCR_NS selects the Non-secure world when set. The translation regime
	// configured by this library exists only while NS is clear.
	SCR_NS = 1 << 0
)
