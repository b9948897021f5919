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

package aarch32

// Ops is the hardware capability this package drives. Every method is a
// single instruction or register access; sequencing them is this package's
// job. The surface stays at instruction granularity so the barrier ordering
// of the invalidation protocol is checkable against a recorded instruction
// stream.
type Ops interface {
	// DSBISHST orders prior stores against subsequent operations within
	// the inner-shareable domain.
	DSBISHST()

	// DSBISH blocks until all outstanding memory accesses and TLB
	// maintenance operations in the inner-shareable domain complete.
	DSBISH()

	// ISB makes prior context-changing operations visible to subsequent
	// instruction fetches on this processing element.
	ISB()

	// TLBIMVAAIS invalidates cached translations of mva for all ASIDs,
	// broadcast across the inner-shareable domain. The low 12 bits of
	// mva are ignored.
	TLBIMVAAIS(mva uint32)

	// BPIALLIS invalidates all branch-predictor state across the
	// inner-shareable domain.
	BPIALLIS()

	// SCTLR returns the PL1 System Control Register.
	SCTLR() uint32

	// SCR returns the Secure Configuration Register.
	SCR() uint32

	// IDMMFR4 returns the ID_MMFR4 feature register.
	IDMMFR4() uint32
}

// ControlOps extends Ops with the register writes the enable and disable
// sequences need. Configuration itself never writes hardware; only
// EnableMMU and DisableMMU reach these.
type ControlOps interface {
	Ops

	// SetSCTLR sets the PL1 System Control Register.
	SetSCTLR(v uint32)

	// SetMAIR0 sets the Memory Attribute Indirection Register 0.
	SetMAIR0(v uint32)

	// SetTTBCR sets the Translation Table Base Control Register.
	SetTTBCR(v uint32)

	// SetTTBR0 sets the 64-bit Translation Table Base Register 0.
	SetTTBR0(v uint64)
}

// hw is the installed hardware capability. Not synchronized: installation
// must happen before translation operations start, matching the
// single-processor initialization model of the regime itself.
var hw ControlOps = defaultOps()

// SetOps installs an alternate hardware capability and returns a function
// restoring the previous one. Hosted harnesses and tests install a software
// model here; on arm the real instruction adapter is preinstalled.
func SetOps(ops ControlOps) (restore func()) {
	prev := hw
	hw = ops
	return func() { hw = prev }
}
