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
)

// Features is the translation-relevant feature set of the executing
// processor.
type Features struct {
	// CnP reports TTBR Common-not-Private support. Implementations from
	// ARMv8.2 on are required to have it.
	CnP bool
}

// DetectFeatures interrogates the feature registers through the installed
// hardware capability.
func DetectFeatures() Features {
	return Features{
		CnP: sysreg.IDMMFR4CnP(hw.IDMMFR4()) != 0,
	}
}
