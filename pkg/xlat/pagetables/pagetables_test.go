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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32/fakehw"
)

type mapping struct {
	start  uint64
	length uint64
	addr   uint64
	opts   MapOpts
}

// checkVisitor records the installed leaves in walk order.
type checkVisitor struct {
	found []mapping
}

func (*checkVisitor) requiresAlloc() bool { return false }

func (*checkVisitor) requiresSplit() bool { return false }

func (v *checkVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	v.found = append(v.found, mapping{
		start:  start,
		length: align + 1,
		addr:   entry.Address(),
		opts:   entry.Opts(),
	})
	return true
}

func checkMappings(t *testing.T, pt *PageTables, want []mapping) {
	t.Helper()
	v := checkVisitor{}
	w := walker{pageTables: pt, visitor: &v}
	w.iterateRange(0, pt.vaLimit)
	if diff := cmp.Diff(want, v.found, cmp.AllowUnexported(mapping{})); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

// newTestTables builds tables against a fresh hardware model so that the
// enabled check and any TLB maintenance stay off real CP15.
func newTestTables(t *testing.T, opts Opts) (*PageTables, *fakehw.Hardware) {
	t.Helper()
	hw := fakehw.New()
	t.Cleanup(aarch32.SetOps(hw))
	return New(NewRuntimeAllocator(), opts), hw
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

func Test2MAnd4K(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	// Map a small page and a 2 MiB block.
	pt.Map(0x400000, l3Size, MapOpts{}, l3Size*42)
	pt.Map(0x200000, l2Size, MapOpts{ReadOnly: true}, l2Size*47)

	checkMappings(t, pt, []mapping{
		{0x200000, l2Size, l2Size * 47, MapOpts{ReadOnly: true}},
		{0x400000, l3Size, l3Size * 42, MapOpts{}},
	})
}

func Test1GAnd4K(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	// Map a small page and a 1 GiB block.
	pt.Map(0x1000, l3Size, MapOpts{}, l3Size*42)
	pt.Map(l1Size, l1Size, MapOpts{ReadOnly: true}, l1Size*2)

	checkMappings(t, pt, []mapping{
		{0x1000, l3Size, l3Size * 42, MapOpts{}},
		{l1Size, l1Size, l1Size * 2, MapOpts{ReadOnly: true}},
	})
}

func TestSplit1GBlock(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	// Map a 1 GiB block and knock out the middle.
	pt.Map(l1Size, l1Size, MapOpts{ReadOnly: true}, l1Size)
	pt.Unmap(l1Size+l3Size, l1Size-(2*l3Size))

	checkMappings(t, pt, []mapping{
		{l1Size, l3Size, l1Size, MapOpts{ReadOnly: true}},
		{l1Size + l1Size - l3Size, l3Size, l1Size + l1Size - l3Size, MapOpts{ReadOnly: true}},
	})
}

func TestSplit2MBlock(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	// Map a 2 MiB block and knock out the middle.
	pt.Map(l2Size, l2Size, MapOpts{ReadOnly: true}, l2Size*42)
	pt.Unmap(l2Size+l3Size, l2Size-(2*l3Size))

	checkMappings(t, pt, []mapping{
		{l2Size, l3Size, l2Size * 42, MapOpts{ReadOnly: true}},
		{l2Size + l2Size - l3Size, l3Size, l2Size*42 + l2Size - l3Size, MapOpts{ReadOnly: true}},
	})
}

func TestUnmapEmpties(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	pt.Map(0x1000, 2*l3Size, MapOpts{}, 0x10000)
	if !pt.Unmap(0x1000, 2*l3Size) {
		t.Error("Unmap of a mapped range reported nothing removed")
	}
	if !pt.IsEmpty(0, 4*l3Size) {
		t.Error("range still populated after Unmap")
	}
	if pt.Unmap(0x1000, 2*l3Size) {
		t.Error("second Unmap reported entries removed")
	}
}

func TestLookup(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	if _, _, ok := pt.Lookup(0x1000); ok {
		t.Error("Lookup on empty tables succeeded")
	}

	pt.Map(0x8000, 2*l3Size, MapOpts{User: true}, 0x10000)
	pa, opts, ok := pt.Lookup(0x9abc)
	if !ok {
		t.Fatal("Lookup of a mapped address failed")
	}
	if pa != 0x11abc {
		t.Errorf("Lookup physical = %#x, want 0x11abc", pa)
	}
	if !opts.User {
		t.Errorf("Lookup opts = %+v, want User set", opts)
	}

	// A block translation resolves interior addresses too.
	pt.Map(l2Size, l2Size, MapOpts{}, l2Size*3)
	pa, _, ok = pt.Lookup(l2Size + 0x12345)
	if !ok || pa != l2Size*3+0x12345 {
		t.Errorf("block Lookup = (%#x, %t), want (%#x, true)", pa, ok, l2Size*3+0x12345)
	}
}

func TestMapReplaceReported(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	if pt.Map(0x1000, l3Size, MapOpts{}, 0x10000) {
		t.Error("fresh Map reported a replaced mapping")
	}
	if pt.Map(0x1000, l3Size, MapOpts{}, 0x10000) {
		t.Error("identical Map reported a replaced mapping")
	}
	if !pt.Map(0x1000, l3Size, MapOpts{}, 0x20000) {
		t.Error("Map to a new target did not report the replacement")
	}
	if !pt.Map(0x1000, l3Size, MapOpts{ReadOnly: true}, 0x20000) {
		t.Error("Map with new attributes did not report the replacement")
	}
}

func TestOptsRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   MapOpts
		want MapOpts
	}{
		{"default", MapOpts{}, MapOpts{}},
		{"readonly", MapOpts{ReadOnly: true}, MapOpts{ReadOnly: true}},
		{"user-nonglobal", MapOpts{User: true, NonGlobal: true}, MapOpts{User: true, NonGlobal: true}},
		{"noexec", MapOpts{NoExecute: true}, MapOpts{NoExecute: true}},
		{"nonsecure", MapOpts{NonSecure: true}, MapOpts{NonSecure: true}},
		{"noncacheable", MapOpts{Type: xlat.MemTypeNonCacheable}, MapOpts{Type: xlat.MemTypeNonCacheable}},
		{"device-forces-xn", MapOpts{Type: xlat.MemTypeDevice}, MapOpts{Type: xlat.MemTypeDevice, NoExecute: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pt, _ := newTestTables(t, Opts{})
			pt.Map(0x4000, l3Size, tc.in, 0x8000)
			_, opts, ok := pt.Lookup(0x4000)
			if !ok {
				t.Fatal("mapping not found")
			}
			if diff := cmp.Diff(tc.want, opts); diff != "" {
				t.Errorf("attribute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiveEditMaintenance(t *testing.T) {
	pt, hw := newTestTables(t, Opts{})

	// Building while translation is off needs no maintenance traffic.
	pt.Map(0x1000, l3Size, MapOpts{}, 0x100000)
	if n := len(hw.Trace()); n != 0 {
		t.Fatalf("offline build produced hardware operations: %v", hw.Trace())
	}

	// Turning translation on, a fresh entry still needs none: nothing
	// stale can be cached for it.
	hw.Regs.SCTLR = uint32(sysreg.SCTLR_M)
	pt.Map(0x2000, l3Size, MapOpts{}, 0x200000)
	if n := len(hw.Trace()); n != 0 {
		t.Fatalf("fresh live map produced hardware operations: %v", hw.Trace())
	}

	// Replacing a live entry retires it and synchronizes.
	pt.Map(0x1000, l3Size, MapOpts{}, 0x300000)
	want := []fakehw.Event{
		{Op: "DSBISHST"},
		{Op: "TLBIMVAAIS", Arg: 0x1000},
		{Op: "BPIALLIS"},
		{Op: "DSBISH"},
		{Op: "ISB"},
	}
	if diff := cmp.Diff(want, hw.Trace()); diff != "" {
		t.Errorf("replace trace mismatch (-want +got):\n%s", diff)
	}

	// Unmapping two live pages invalidates each and synchronizes once.
	hw.ResetTrace()
	pt.Unmap(0x1000, 2*l3Size)
	want = []fakehw.Event{
		{Op: "DSBISHST"},
		{Op: "TLBIMVAAIS", Arg: 0x1000},
		{Op: "DSBISHST"},
		{Op: "TLBIMVAAIS", Arg: 0x2000},
		{Op: "BPIALLIS"},
		{Op: "DSBISH"},
		{Op: "ISB"},
	}
	if diff := cmp.Diff(want, hw.Trace()); diff != "" {
		t.Errorf("unmap trace mismatch (-want +got):\n%s", diff)
	}
	if hw.Misordered != 0 {
		t.Errorf("maintenance was misordered %d times", hw.Misordered)
	}
}

func TestConfig(t *testing.T) {
	pt, _ := newTestTables(t, Opts{VASize: 1 << 31, TablesNonCacheable: true})

	var cfg xlat.MMUConfig
	pt.Config(&cfg)

	var want xlat.MMUConfig
	aarch32.SetupMMUConfig(&want, xlat.TablesNonCacheable, pt.RootPhysical(), aarch32.MaxSupportedPA(), uintptr(1<<31-1), xlat.RegimeSecurePL1)
	if cfg != want {
		t.Errorf("Config = %#x, want %#x", cfg, want)
	}
	if got := sysreg.TTBCR(cfg[xlat.CfgTCR]).T0SZ(); got != 1 {
		t.Errorf("T0SZ = %d, want 1 for the 2 GiB range", got)
	}
	if got := sysreg.TTBR0(cfg[xlat.CfgTTBR0]).BADDR(); got != uint64(pt.RootPhysical()) {
		t.Errorf("base register address = %#x, want %#x", got, pt.RootPhysical())
	}
}

func TestRegions(t *testing.T) {
	pt, _ := newTestTables(t, Opts{})

	pt.Map(0x1000, 2*l3Size, MapOpts{}, 0x10000)
	pt.Map(0x3000, l3Size, MapOpts{}, 0x12000) // contiguous: merges
	pt.Map(0x5000, l3Size, MapOpts{ReadOnly: true}, 0x20000)

	want := []Region{
		{VA: 0x1000, PA: 0x10000, Length: 3 * l3Size},
		{VA: 0x5000, PA: 0x20000, Length: l3Size, Opts: MapOpts{ReadOnly: true}},
	}
	if diff := cmp.Diff(want, pt.Regions()); diff != "" {
		t.Errorf("region mismatch (-want +got):\n%s", diff)
	}

	if s := pt.String(); !strings.Contains(s, "VA:0x00001000") {
		t.Errorf("String() missing region line:\n%s", s)
	}
}

func TestAllocatorReuse(t *testing.T) {
	hw := fakehw.New()
	t.Cleanup(aarch32.SetOps(hw))
	a := NewRuntimeAllocator()
	pt := New(a, Opts{})

	pt.Map(0x1000, l3Size, MapOpts{}, 0x10000)

	// Nodes are freed only when a walk sees the whole table clear, so the
	// unmap spans the full level 1 entry.
	pt.Unmap(0, l1Size)
	a.Recycle()
	n := len(a.pool)
	if n != 2 {
		t.Fatalf("expected the level 2 and level 3 nodes recycled, pool has %d", n)
	}

	// The next build pulls from the pool before allocating anything new.
	pt.Map(0x1000, l3Size, MapOpts{}, 0x10000)
	if len(a.pool) != 0 {
		t.Errorf("pool has %d nodes after remap, want 0", len(a.pool))
	}
}

func TestVASizeRestricted(t *testing.T) {
	for _, size := range []uint64{l3Size, 1 << 29, 1 << 30, (1 << 31) + l1Size} {
		mustPanic(t, "New", func() {
			New(NewRuntimeAllocator(), Opts{VASize: size})
		})
	}
}

func TestRangePreconditions(t *testing.T) {
	pt, _ := newTestTables(t, Opts{VASize: 1 << 31})

	mustPanic(t, "unaligned va", func() {
		pt.Map(0x1001, l3Size, MapOpts{}, 0x10000)
	})
	mustPanic(t, "unaligned length", func() {
		pt.Map(0x1000, l3Size+1, MapOpts{}, 0x10000)
	})
	mustPanic(t, "unaligned physical", func() {
		pt.Map(0x1000, l3Size, MapOpts{}, 0x10800)
	})
	mustPanic(t, "range past limit", func() {
		pt.Map(1<<31-l3Size, 2*l3Size, MapOpts{}, 0x10000)
	})
	mustPanic(t, "physical past output limit", func() {
		pt.Map(0x1000, 2*l3Size, MapOpts{}, 1<<40-l3Size)
	})
	mustPanic(t, "unmap past limit", func() {
		pt.Unmap(1<<31-l3Size, 2*l3Size)
	})
}
