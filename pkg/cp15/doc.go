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

// Package cp15 issues the AArch32 CP15 system-register accesses, barriers
// and TLB maintenance instructions used by the translation-regime layer.
//
// Each function emits exactly one instruction and is named after its
// mnemonic. Composition into ordered sequences is the caller's concern.
// Functions here touch live hardware state; on any GOARCH other than arm
// they panic.
package cp15
