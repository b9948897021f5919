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
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// InvalidateVA retires any cached translation of va from every TLB in the
// inner-shareable domain. The regime argument is accepted for interface
// parity and ignored.
//
// The invalidation is issued, not complete: completion across the domain is
// only guaranteed after SyncInvalidation. The expected calling pattern is
// one InvalidateVA per changed table entry during an edit, then a single
// SyncInvalidation when the edit is done.
func InvalidateVA(va uintptr, r xlat.Regime) {
	// The table write that motivated this call must have drained into
	// memory before the broadcast invalidate, or another PE can refill
	// the TLB from the old entry in between.
	hw.DSBISHST()
	hw.TLBIMVAAIS(uint32(va) &^ uint32(xlat.PageMask))
}

// SyncInvalidation completes every invalidation issued so far, across the
// inner-shareable domain, before returning.
//
// The sequence is fixed. Branch predictors may hold state primed through
// now-stale translations, so they are scrapped with the TLB entries; the
// full barrier then blocks until all broadcast maintenance has completed
// everywhere; the final instruction barrier makes completion visible to
// subsequent fetches on this PE. Skipping any step does not crash — it
// surfaces later as intermittent use of stale translations.
func SyncInvalidation() {
	hw.BPIALLIS()
	hw.DSBISH()
	hw.ISB()
}
