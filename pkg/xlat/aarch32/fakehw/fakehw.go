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

// Package fakehw models the hardware surface the aarch32 package drives: a
// register file, a TLB with observable staleness, and a recorded
// instruction trace. Tests assert protocol ordering against the trace, and
// hosted harnesses run full configure/enable sequences against the model.
package fakehw

import (
	"fmt"
	"time"

	"github.com/jian-tian/arm-trusted-firmware/pkg/log"
	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// Event is one recorded hardware operation.
type Event struct {
	// Op is the instruction or register-write mnemonic.
	Op string

	// Arg carries the operand for operations that take one.
	Arg uint64
}

// String implements fmt.Stringer.String.
func (e Event) String() string {
	switch e.Op {
	case "DSBISHST", "DSBISH", "ISB", "BPIALLIS":
		return e.Op
	case "SetTTBR0":
		return fmt.Sprintf("%s(%#018x)", e.Op, e.Arg)
	default:
		return fmt.Sprintf("%s(%#x)", e.Op, e.Arg)
	}
}

// Registers is the modeled register file, open for priming and inspection.
type Registers struct {
	SCTLR   uint32
	SCR     uint32
	MAIR0   uint32
	TTBCR   uint32
	TTBR0   uint64
	IDMMFR4 uint32
}

// Hardware is a single-PE software model of the translation hardware. It
// implements aarch32.ControlOps.
//
// Register reads are passive and never recorded; barriers, TLB and
// branch-predictor maintenance, and register writes all land in the trace
// in issue order. The TLB model keeps entries across register writes the
// way real hardware does, so forgotten invalidations show up as stale
// translations rather than silently working.
//
// Not synchronized: like the regime itself, the model assumes a single
// initializing processor.
type Hardware struct {
	// Regs is the live register file.
	Regs Registers

	// Warn receives protocol-misuse warnings.
	Warn log.Logger

	// Misordered counts TLB invalidates issued without a prior
	// store-ordering barrier.
	Misordered int

	trace   []Event
	ordered bool
	walk    func(va uint32) (pa uint64, ok bool)
	tlb     map[uint32]uint64
}

// New returns a Hardware modeling cold reset state: translation off, Secure
// world, no CnP support, empty TLB.
func New() *Hardware {
	return &Hardware{
		Warn: log.BasicRateLimitedLogger(time.Second),
		tlb:  make(map[uint32]uint64),
	}
}

func (h *Hardware) record(op string, arg uint64) {
	h.trace = append(h.trace, Event{Op: op, Arg: arg})
}

// Trace returns the operations recorded since the last ResetTrace.
func (h *Hardware) Trace() []Event {
	return h.trace
}

// TraceOps returns just the mnemonics of the recorded operations.
func (h *Hardware) TraceOps() []string {
	ops := make([]string, len(h.trace))
	for i, e := range h.trace {
		ops[i] = e.Op
	}
	return ops
}

// ResetTrace clears the trace. Registers and TLB state are kept.
func (h *Hardware) ResetTrace() {
	h.trace = nil
}

// SetWalker installs the table-walk function used to refill the TLB on a
// translation miss. The walker receives a page-aligned address and returns
// the page-aligned physical base.
func (h *Hardware) SetWalker(walk func(va uint32) (pa uint64, ok bool)) {
	h.walk = walk
}

// CacheTranslation primes a TLB entry directly, as if a previous walk had
// loaded it.
func (h *Hardware) CacheTranslation(va uint32, pa uint64) {
	h.tlb[va&^uint32(xlat.PageMask)] = pa &^ uint64(xlat.PageMask)
}

// Cached returns the TLB entry covering va, without refilling on a miss.
func (h *Hardware) Cached(va uint32) (uint64, bool) {
	pa, ok := h.tlb[va&^uint32(xlat.PageMask)]
	return pa, ok
}

// Translate resolves va the way the modeled MMU would: identity with
// translation off, otherwise TLB first with walks refilling it. The second
// return is false when translation is on and no mapping exists.
func (h *Hardware) Translate(va uint32) (uint64, bool) {
	if !sysreg.SCTLR(h.Regs.SCTLR).MMUEnabled() {
		return uint64(va), true
	}
	page := va &^ uint32(xlat.PageMask)
	base, ok := h.tlb[page]
	if !ok {
		if h.walk == nil {
			return 0, false
		}
		base, ok = h.walk(page)
		if !ok {
			return 0, false
		}
		h.tlb[page] = base
	}
	return base | uint64(va&uint32(xlat.PageMask)), true
}

// DSBISHST implements aarch32.Ops.DSBISHST.
func (h *Hardware) DSBISHST() {
	h.ordered = true
	h.record("DSBISHST", 0)
}

// DSBISH implements aarch32.Ops.DSBISH.
func (h *Hardware) DSBISH() {
	h.record("DSBISH", 0)
}

// ISB implements aarch32.Ops.ISB.
func (h *Hardware) ISB() {
	h.record("ISB", 0)
}

// TLBIMVAAIS implements aarch32.Ops.TLBIMVAAIS. An invalidate with no
// store-ordering barrier since the previous invalidate is counted and
// warned about: on real hardware that window lets another PE refill the
// entry being retired.
func (h *Hardware) TLBIMVAAIS(mva uint32) {
	if !h.ordered {
		h.Misordered++
		if h.Warn != nil {
			h.Warn.Warningf("fakehw: TLB invalidate of %#x issued without a prior store barrier", mva)
		}
	}
	h.ordered = false
	delete(h.tlb, mva&^uint32(xlat.PageMask))
	h.record("TLBIMVAAIS", uint64(mva))
}

// BPIALLIS implements aarch32.Ops.BPIALLIS. Branch-predictor maintenance
// does not touch the TLB model.
func (h *Hardware) BPIALLIS() {
	h.record("BPIALLIS", 0)
}

// SCTLR implements aarch32.Ops.SCTLR.
func (h *Hardware) SCTLR() uint32 {
	return h.Regs.SCTLR
}

// SCR implements aarch32.Ops.SCR.
func (h *Hardware) SCR() uint32 {
	return h.Regs.SCR
}

// IDMMFR4 implements aarch32.Ops.IDMMFR4.
func (h *Hardware) IDMMFR4() uint32 {
	return h.Regs.IDMMFR4
}

// SetSCTLR implements aarch32.ControlOps.SetSCTLR.
func (h *Hardware) SetSCTLR(v uint32) {
	h.Regs.SCTLR = v
	h.record("SetSCTLR", uint64(v))
}

// SetMAIR0 implements aarch32.ControlOps.SetMAIR0.
func (h *Hardware) SetMAIR0(v uint32) {
	h.Regs.MAIR0 = v
	h.record("SetMAIR0", uint64(v))
}

// SetTTBCR implements aarch32.ControlOps.SetTTBCR.
func (h *Hardware) SetTTBCR(v uint32) {
	h.Regs.TTBCR = v
	h.record("SetTTBCR", uint64(v))
}

// SetTTBR0 implements aarch32.ControlOps.SetTTBR0.
func (h *Hardware) SetTTBR0(v uint64) {
	h.Regs.TTBR0 = v
	h.record("SetTTBR0", v)
}
