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
	"strings"
	"testing"
)

func TestMAIR0Pack(t *testing.T) {
	r := MAIR0Set(MAIR_ATTR_IWBWA_OWBWA_NTR, 0) |
		MAIR0Set(MAIR_ATTR_DEVICE, 1) |
		MAIR0Set(MAIR_ATTR_NON_CACHEABLE, 2)
	if r != 0x004404ff {
		t.Errorf("packed MAIR0: got %#08x, want 0x004404ff", uint32(r))
	}
	for i, want := range []uint32{MAIR_ATTR_IWBWA_OWBWA_NTR, MAIR_ATTR_DEVICE, MAIR_ATTR_NON_CACHEABLE, 0} {
		if got := r.Attr(uint(i)); got != want {
			t.Errorf("Attr(%d): got %#02x, want %#02x", i, got, want)
		}
	}
}

func TestTTBCRFields(t *testing.T) {
	for _, tc := range []struct {
		name  string
		r     TTBCR
		t0sz  uint
		size  uint64
		decod []string
	}{
		{
			name:  "full range cacheable",
			r:     TTBCR_EAE | TTBCR_EPD1 | TTBCR_SH0_INNER_SHAREABLE | TTBCR_RGN0_OUTER_WBA | TTBCR_RGN0_INNER_WBA,
			t0sz:  0,
			size:  1 << 32,
			decod: []string{"eae", "epd1", "t0sz=0", "sh0=ish", "orgn0=wba", "irgn0=wba"},
		},
		{
			name:  "1GiB non-cacheable walks",
			r:     TTBCR_EAE | TTBCR_EPD1 | TTBCR_SH0_NON_SHAREABLE | TTBCR_RGN0_OUTER_NC | TTBCR_RGN0_INNER_NC | 2,
			t0sz:  2,
			size:  1 << 30,
			decod: []string{"t0sz=2", "sh0=nsh", "orgn0=nc", "irgn0=nc"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.T0SZ(); got != tc.t0sz {
				t.Errorf("T0SZ: got %d, want %d", got, tc.t0sz)
			}
			if got := tc.r.InputRange(); got != tc.size {
				t.Errorf("InputRange: got %#x, want %#x", got, tc.size)
			}
			s := tc.r.String()
			for _, want := range tc.decod {
				if !strings.Contains(s, want) {
					t.Errorf("String %q missing %q", s, want)
				}
			}
		})
	}
}

func TestTTBR0(t *testing.T) {
	r := TTBR0(0x8000_1000) | TTBR_CNP
	if !r.CnP() {
		t.Errorf("CnP bit lost: %s", r)
	}
	if got := r.BADDR(); got != 0x8000_1000 {
		t.Errorf("BADDR: got %#x, want 0x80001000", got)
	}
}

func TestSCTLRMMUEnabled(t *testing.T) {
	if SCTLR(SCTLR_C | SCTLR_I).MMUEnabled() {
		t.Errorf("MMUEnabled true without M bit")
	}
	if !SCTLR(SCTLR_M).MMUEnabled() {
		t.Errorf("MMUEnabled false with M bit")
	}
}

func TestIDMMFR4CnP(t *testing.T) {
	if got := IDMMFR4CnP(0x0021_0010); got != 0 {
		t.Errorf("CnP field: got %d, want 0", got)
	}
	if got := IDMMFR4CnP(0x0021_0011); got != 1 {
		t.Errorf("CnP field: got %d, want 1", got)
	}
}
