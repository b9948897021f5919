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

import (
	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// EnableMMU writes a computed configuration to the live control registers
// and turns stage-1 translation on. The MMU must currently be off, and the
// table named by the configuration must be fully built: its memory is read
// by hardware from the first fetch after enablement.
func EnableMMU(cfg *xlat.MMUConfig, r xlat.Regime) {
	if MMUEnabled(r) {
		panic("aarch32: MMU already enabled")
	}

	hw.SetMAIR0(uint32(cfg[xlat.CfgMAIR]))
	hw.SetTTBCR(uint32(cfg[xlat.CfgTCR]))
	hw.SetTTBR0(cfg[xlat.CfgTTBR0])

	// All table writes must have drained and the register updates
	// committed before the enable bit flips.
	hw.DSBISH()
	hw.ISB()

	hw.SetSCTLR(hw.SCTLR() | sysreg.SCTLR_M)
	hw.ISB()
}

// DisableMMU turns stage-1 translation off, leaving the rest of the system
// control state untouched.
func DisableMMU(r xlat.Regime) {
	hw.SetSCTLR(hw.SCTLR() &^ sysreg.SCTLR_M)
	hw.ISB()
	hw.DSBISH()
}
