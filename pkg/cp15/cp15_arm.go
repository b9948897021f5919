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

package cp15

// DSBISHST is a data synchronization barrier for stores to the
// inner-shareable domain.
func DSBISHST()

// DSBISH is a full data synchronization barrier for the inner-shareable
// domain.
func DSBISH()

// ISB is an instruction synchronization barrier.
func ISB()

// TLBIMVAAIS invalidates cached translations for the given MVA, all ASIDs,
// broadcast to the inner-shareable domain. The low 12 bits of mva are
// ignored by hardware.
func TLBIMVAAIS(mva uint32)

// BPIALLIS invalidates all branch-predictor state, broadcast to the
// inner-shareable domain.
func BPIALLIS()

// ReadSCTLR returns the PL1 System Control Register.
func ReadSCTLR() uint32

// WriteSCTLR sets the PL1 System Control Register.
func WriteSCTLR(v uint32)

// ReadSCR returns the Secure Configuration Register. Secure PL1 only; the
// access is undefined elsewhere.
func ReadSCR() uint32

// WriteMAIR0 sets the Memory Attribute Indirection Register 0.
func WriteMAIR0(v uint32)

// WriteTTBCR sets the Translation Table Base Control Register.
func WriteTTBCR(v uint32)

// WriteTTBR0 sets the 64-bit long-descriptor Translation Table Base
// Register 0.
func WriteTTBR0(v uint64)

// ReadIDMMFR4 returns the Memory Model Feature Register 4.
func ReadIDMMFR4() uint32
