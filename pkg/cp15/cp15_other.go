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

package cp15

// Stubs so that dependent packages build on every GOARCH. Hosted callers
// use a software hardware model instead; reaching these is a wiring bug.

// DSBISHST is not supported on this GOARCH.
func DSBISHST() {
	panic("cp15: not supported on this GOARCH")
}

// DSBISH is not supported on this GOARCH.
func DSBISH() {
	panic("cp15: not supported on this GOARCH")
}

// ISB is not supported on this GOARCH.
func ISB() {
	panic("cp15: not supported on this GOARCH")
}

// TLBIMVAAIS is not supported on this GOARCH.
func TLBIMVAAIS(mva uint32) {
	panic("cp15: not supported on this GOARCH")
}

// BPIALLIS is not supported on this GOARCH.
func BPIALLIS() {
	panic("cp15: not supported on this GOARCH")
}

// ReadSCTLR is not supported on this GOARCH.
func ReadSCTLR() uint32 {
	panic("cp15: not supported on this GOARCH")
}

// WriteSCTLR is not supported on this GOARCH.
func WriteSCTLR(v uint32) {
	panic("cp15: not supported on this GOARCH")
}

// ReadSCR is not supported on this GOARCH.
func ReadSCR() uint32 {
	panic("cp15: not supported on this GOARCH")
}

// WriteMAIR0 is not supported on this GOARCH.
func WriteMAIR0(v uint32) {
	panic("cp15: not supported on this GOARCH")
}

// WriteTTBCR is not supported on this GOARCH.
func WriteTTBCR(v uint32) {
	panic("cp15: not supported on this GOARCH")
}

// WriteTTBR0 is not supported on this GOARCH.
func WriteTTBR0(v uint64) {
	panic("cp15: not supported on this GOARCH")
}

// ReadIDMMFR4 is not supported on this GOARCH.
func ReadIDMMFR4() uint32 {
	panic("cp15: not supported on this GOARCH")
}
