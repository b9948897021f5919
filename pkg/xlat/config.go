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

package xlat

// Indices into MMUConfig. The positions are part of the contract with
// whatever applies the configuration to hardware and must not be reordered.
const (
	CfgMAIR = iota
	CfgTCR
	CfgTTBR0

	// NumCfgEntries is the size of an MMUConfig.
	NumCfgEntries
)

// MMUConfig is the register triple that activates a built translation table:
// memory-attribute indirection, translation control and table base. It is
// computed fresh on every configuration call into caller-supplied storage and
// carries no state of its own; writing it to hardware is a separate, explicit
// step.
//
// All three entries are 64-bit for layout compatibility with the 64-bit
// variant of this interface; on this architecture only TTBR0 uses more than
// 32 bits.
type MMUConfig [NumCfgEntries]uint64
