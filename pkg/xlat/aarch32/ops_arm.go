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

//go:build arm
// +build arm

package aarch32

import (
	"github.com/jian-tian/arm-trusted-firmware/pkg/cp15"
)

// cp15Ops emits the real instructions.
type cp15Ops struct{}

func defaultOps() ControlOps {
	return cp15Ops{}
}

func (cp15Ops) DSBISHST() { cp15.DSBISHST() }

func (cp15Ops) DSBISH() { cp15.DSBISH() }

func (cp15Ops) ISB() { cp15.ISB() }

func (cp15Ops) TLBIMVAAIS(mva uint32) { cp15.TLBIMVAAIS(mva) }

func (cp15Ops) BPIALLIS() { cp15.BPIALLIS() }

func (cp15Ops) SCTLR() uint32 { return cp15.ReadSCTLR() }

func (cp15Ops) SCR() uint32 { return cp15.ReadSCR() }

func (cp15Ops) IDMMFR4() uint32 { return cp15.ReadIDMMFR4() }

func (cp15Ops) SetSCTLR(v uint32) { cp15.WriteSCTLR(v) }

func (cp15Ops) SetMAIR0(v uint32) { cp15.WriteMAIR0(v) }

func (cp15Ops) SetTTBCR(v uint32) { cp15.WriteTTBCR(v) }

func (cp15Ops) SetTTBR0(v uint64) { cp15.WriteTTBR0(v) }
