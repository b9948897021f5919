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

package cmd

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
)

func TestCompute(t *testing.T) {
	for _, tc := range []struct {
		name string
		cmd  Compute
		want []string
	}{
		{
			name: "full range",
			cmd:  Compute{vaMax: math.MaxUint32, paMax: hexValue(aarch32.MaxSupportedPA()), base: 0x8000},
			want: []string{
				"MAIR0=0x004404ff attr0=0xff attr1=0x04 attr2=0x44",
				"TTBCR=0x80803500 eae epd1 t0sz=0 sh0=ish orgn0=wba irgn0=wba",
				"TTBR0=0x0000000000008000 baddr=0x8000",
			},
		},
		{
			name: "2GiB range",
			cmd:  Compute{vaMax: 1<<31 - 1, paMax: hexValue(aarch32.MaxSupportedPA()), base: 0x8000},
			want: []string{"t0sz=1"},
		},
		{
			name: "non-cacheable walks",
			cmd:  Compute{vaMax: math.MaxUint32, paMax: hexValue(aarch32.MaxSupportedPA()), base: 0x8000, walksNonCacheable: true},
			want: []string{"TTBCR=0x80800000 eae epd1 t0sz=0 sh0=nsh orgn0=nc irgn0=nc"},
		},
		{
			name: "cnp core",
			cmd:  Compute{vaMax: math.MaxUint32, paMax: hexValue(aarch32.MaxSupportedPA()), base: 0x8000, cnp: true},
			want: []string{"baddr=0x8000 cnp"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tc.cmd.execute(&buf); err != nil {
				t.Fatalf("execute: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestComputeRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		cmd  Compute
	}{
		{"non-power-of-two range", Compute{vaMax: 0x12345, paMax: hexValue(aarch32.MaxSupportedPA())}},
		{"range below the floor", Compute{vaMax: 1<<24 - 1, paMax: hexValue(aarch32.MaxSupportedPA())}},
		{"pa beyond the limit", Compute{vaMax: math.MaxUint32, paMax: hexValue(aarch32.MaxSupportedPA() + 1)}},
		{"unaligned base", Compute{vaMax: math.MaxUint32, paMax: hexValue(aarch32.MaxSupportedPA()), base: 0x8123}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tc.cmd.execute(&buf); err == nil {
				t.Errorf("execute accepted bad flags, wrote:\n%s", buf.String())
			}
		})
	}
}

func TestHexValue(t *testing.T) {
	var h hexValue
	for _, tc := range []struct {
		in   string
		want uint64
	}{
		{"0x8000", 0x8000},
		{"4096", 4096},
		{"0o17", 15},
	} {
		if err := h.Set(tc.in); err != nil {
			t.Errorf("Set(%q): %v", tc.in, err)
			continue
		}
		if uint64(h) != tc.want {
			t.Errorf("Set(%q) = %#x, want %#x", tc.in, uint64(h), tc.want)
		}
	}
	if err := h.Set("zero"); err == nil {
		t.Errorf("Set accepted a non-numeric value")
	}
	h = 0x1234
	if got := h.String(); got != "0x1234" {
		t.Errorf("String() = %q, want 0x1234", got)
	}
}
