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

package aarch32_test

import (
	"math"
	"testing"

	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32/fakehw"
)

// installFake swaps a fresh hardware model in for the duration of the test.
func installFake(t *testing.T) *fakehw.Hardware {
	t.Helper()
	hw := fakehw.New()
	t.Cleanup(aarch32.SetOps(hw))
	return hw
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a panic", name)
		}
	}()
	f()
}

func TestGranuleSupport(t *testing.T) {
	for _, tc := range []struct {
		size uintptr
		want bool
	}{
		{0, false},
		{1<<12 - 1, false},
		{1 << 12, true},
		{1<<12 + 1, false},
		{1 << 13, false},
		{1 << 14, false},
		{1 << 16, false},
	} {
		if got := aarch32.GranuleSizeSupported(tc.size); got != tc.want {
			t.Errorf("GranuleSizeSupported(%#x) = %t, want %t", tc.size, got, tc.want)
		}
	}
	if got := aarch32.MaxSupportedGranuleSize(); got != 1<<12 {
		t.Errorf("MaxSupportedGranuleSize() = %#x, want 4 KiB", got)
	}
}

func TestArchLimits(t *testing.T) {
	if got := aarch32.MaxSupportedPA(); got != 1<<40-1 {
		t.Errorf("MaxSupportedPA() = %#x, want the 40-bit limit", got)
	}
	if got := aarch32.CurrentEL(); got != 1 {
		t.Errorf("CurrentEL() = %d, want 1", got)
	}
}

func TestExecuteNeverAttrs(t *testing.T) {
	if got := aarch32.ExecuteNeverAttrs(xlat.RegimeSecurePL1); got != 1<<54 {
		t.Errorf("ExecuteNeverAttrs = %#x, want bit 54", got)
	}
	// The answer does not depend on the regime selector; there is a
	// single XN bit in this descriptor format.
	if got := aarch32.ExecuteNeverAttrs(xlat.Regime(7)); got != 1<<54 {
		t.Errorf("ExecuteNeverAttrs(other regime) = %#x, want bit 54", got)
	}
}

func TestConfigMAIRInvariant(t *testing.T) {
	installFake(t)
	for _, flags := range []xlat.Flags{0, xlat.TablesNonCacheable} {
		for _, maxVA := range []uintptr{1<<25 - 1, 1<<28 - 1, math.MaxUint32} {
			var cfg xlat.MMUConfig
			aarch32.SetupMMUConfig(&cfg, flags, 0x1000, aarch32.MaxSupportedPA(), maxVA, xlat.RegimeSecurePL1)
			if cfg[xlat.CfgMAIR] != 0x004404ff {
				t.Errorf("flags %#x maxVA %#x: MAIR0 = %#08x, want 0x004404ff", flags, maxVA, cfg[xlat.CfgMAIR])
			}
		}
	}
}

func TestConfigT0SZ(t *testing.T) {
	installFake(t)
	for _, tc := range []struct {
		maxVA uintptr
		want  uint
	}{
		{math.MaxUint32, 0},
		{1<<31 - 1, 1},
		{1<<30 - 1, 2},
		{1<<29 - 1, 3},
		{1<<28 - 1, 4},
		{1<<27 - 1, 5},
		{1<<26 - 1, 6},
		{1<<25 - 1, 7},
	} {
		var cfg xlat.MMUConfig
		aarch32.SetupMMUConfig(&cfg, 0, 0x4000, aarch32.MaxSupportedPA(), tc.maxVA, xlat.RegimeSecurePL1)
		ttbcr := sysreg.TTBCR(cfg[xlat.CfgTCR])
		if got := ttbcr.T0SZ(); got != tc.want {
			t.Errorf("maxVA %#x: T0SZ = %d, want %d", tc.maxVA, got, tc.want)
		}
		if want := uint64(tc.maxVA) + 1; ttbcr.InputRange() != want {
			t.Errorf("maxVA %#x: InputRange = %#x, want %#x", tc.maxVA, ttbcr.InputRange(), want)
		}
		if ttbcr&sysreg.TTBCR_EAE == 0 {
			t.Errorf("maxVA %#x: long-descriptor bit not set", tc.maxVA)
		}
		if ttbcr&sysreg.TTBCR_EPD1 == 0 {
			t.Errorf("maxVA %#x: TTBR1 walks not disabled", tc.maxVA)
		}
		if ttbcr&sysreg.TTBCR_EPD0 != 0 {
			t.Errorf("maxVA %#x: TTBR0 walks disabled", tc.maxVA)
		}
	}
}

func TestConfigWalkCacheability(t *testing.T) {
	installFake(t)
	var def, nc xlat.MMUConfig
	aarch32.SetupMMUConfig(&def, 0, 0x4000, aarch32.MaxSupportedPA(), math.MaxUint32, xlat.RegimeSecurePL1)
	aarch32.SetupMMUConfig(&nc, xlat.TablesNonCacheable, 0x4000, aarch32.MaxSupportedPA(), math.MaxUint32, xlat.RegimeSecurePL1)

	wantDef := uint64(sysreg.TTBCR_EAE | sysreg.TTBCR_EPD1 |
		sysreg.TTBCR_SH0_INNER_SHAREABLE | sysreg.TTBCR_RGN0_OUTER_WBA | sysreg.TTBCR_RGN0_INNER_WBA)
	if def[xlat.CfgTCR] != wantDef {
		t.Errorf("default walks: TTBCR = %#08x, want %#08x", def[xlat.CfgTCR], wantDef)
	}

	wantNC := uint64(sysreg.TTBCR_EAE | sysreg.TTBCR_EPD1 |
		sysreg.TTBCR_SH0_NON_SHAREABLE | sysreg.TTBCR_RGN0_OUTER_NC | sysreg.TTBCR_RGN0_INNER_NC)
	if nc[xlat.CfgTCR] != wantNC {
		t.Errorf("non-cacheable walks: TTBCR = %#08x, want %#08x", nc[xlat.CfgTCR], wantNC)
	}
}

func TestConfigTTBR(t *testing.T) {
	hw := installFake(t)
	var cfg xlat.MMUConfig
	aarch32.SetupMMUConfig(&cfg, 0, 0x8000, aarch32.MaxSupportedPA(), math.MaxUint32, xlat.RegimeSecurePL1)
	if cfg[xlat.CfgTTBR0] != 0x8000 {
		t.Errorf("TTBR0 = %#x, want the bare table address", cfg[xlat.CfgTTBR0])
	}

	// With Common-not-Private implemented, sharing is requested.
	hw.Regs.IDMMFR4 = 1
	if !aarch32.DetectFeatures().CnP {
		t.Fatal("CnP not detected from the feature register")
	}
	aarch32.SetupMMUConfig(&cfg, 0, 0x8000, aarch32.MaxSupportedPA(), math.MaxUint32, xlat.RegimeSecurePL1)
	if cfg[xlat.CfgTTBR0] != 0x8000|sysreg.TTBR_CNP {
		t.Errorf("TTBR0 = %#x, want the CnP bit set", cfg[xlat.CfgTTBR0])
	}
	if got := sysreg.TTBR0(cfg[xlat.CfgTTBR0]).BADDR(); got != 0x8000 {
		t.Errorf("BADDR = %#x, want %#x", got, 0x8000)
	}
}

func TestConfigPreconditions(t *testing.T) {
	hw := installFake(t)
	var cfg xlat.MMUConfig

	// The regime exists only in the Secure world.
	hw.Regs.SCR = sysreg.SCR_NS
	mustPanic(t, "non-secure world", func() {
		aarch32.SetupMMUConfig(&cfg, 0, 0x4000, aarch32.MaxSupportedPA(), math.MaxUint32, xlat.RegimeSecurePL1)
	})
	hw.Regs.SCR = 0

	mustPanic(t, "non-power-of-two range", func() {
		aarch32.SetupMMUConfig(&cfg, 0, 0x4000, aarch32.MaxSupportedPA(), 0x12345, xlat.RegimeSecurePL1)
	})
	mustPanic(t, "range below the encodable floor", func() {
		aarch32.SetupMMUConfig(&cfg, 0, 0x4000, aarch32.MaxSupportedPA(), 1<<24-1, xlat.RegimeSecurePL1)
	})
}

func TestMMUEnabledTracksControlRegister(t *testing.T) {
	hw := installFake(t)
	if aarch32.MMUEnabled(xlat.RegimeSecurePL1) {
		t.Fatal("enabled at cold reset")
	}
	hw.Regs.SCTLR = uint32(sysreg.SCTLR_M)
	if !aarch32.MMUEnabled(xlat.RegimeSecurePL1) {
		t.Fatal("not enabled with the M bit set")
	}
}
