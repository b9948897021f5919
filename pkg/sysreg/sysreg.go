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

// Package sysreg describes the AArch32 system registers driven by the
// translation-regime layer: bit positions, field encodings and decoders.
//
// Register and field names follow the ARM Architecture Reference Manual so
// the encodings can be audited against it directly. Everything here is pure
// data; reading and writing the live registers is the cp15 package's job.
package sysreg
