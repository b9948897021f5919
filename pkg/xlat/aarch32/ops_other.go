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

//go:build !arm
// +build !arm

package aarch32

// noHardware is the default capability on GOARCHes without CP15. Register
// reads report cold reset state (translation off, Secure world, no CnP), so
// hosted configuration works without a software model installed. Barriers,
// TLB maintenance and register writes have no meaning here; reaching one of
// those means the caller should have installed a model with SetOps.
type noHardware struct{}

func defaultOps() ControlOps {
	return noHardware{}
}

func (noHardware) DSBISHST() { panic("aarch32: no hardware capability installed") }

func (noHardware) DSBISH() { panic("aarch32: no hardware capability installed") }

func (noHardware) ISB() { panic("aarch32: no hardware capability installed") }

func (noHardware) TLBIMVAAIS(mva uint32) { panic("aarch32: no hardware capability installed") }

func (noHardware) BPIALLIS() { panic("aarch32: no hardware capability installed") }

func (noHardware) SCTLR() uint32 { return 0 }

func (noHardware) SCR() uint32 { return 0 }

func (noHardware) IDMMFR4() uint32 { return 0 }

func (noHardware) SetSCTLR(v uint32) { panic("aarch32: no hardware capability installed") }

func (noHardware) SetMAIR0(v uint32) { panic("aarch32: no hardware capability installed") }

func (noHardware) SetTTBCR(v uint32) { panic("aarch32: no hardware capability installed") }

func (noHardware) SetTTBR0(v uint64) { panic("aarch32: no hardware capability installed") }
