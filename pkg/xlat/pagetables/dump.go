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

package pagetables

import (
	"fmt"
	"strings"
)

// Region is one contiguous run of identically-mapped memory.
type Region struct {
	// VA is the first virtual address of the run.
	VA uint64

	// PA is the physical address VA translates to.
	PA uint64

	// Length is the extent of the run in bytes.
	Length uint64

	// Opts are the mapping attributes.
	Opts MapOpts
}

// String implements fmt.Stringer.String.
func (r Region) String() string {
	return fmt.Sprintf("VA:%#010x-%#010x PA:%#010x size:%#010x %s",
		r.VA, r.VA+r.Length-1, r.PA, r.Length, r.Opts)
}

// regionVisitor accumulates contiguous identically-mapped runs.
type regionVisitor struct {
	regions []Region
}

func (*regionVisitor) requiresAlloc() bool { return false }

func (*regionVisitor) requiresSplit() bool { return false }

func (v *regionVisitor) visit(start uint64, entry *PTE, align uint64) bool {
	pa := entry.Address()
	opts := entry.Opts()
	if n := len(v.regions); n > 0 {
		last := &v.regions[n-1]
		if last.VA+last.Length == start && last.PA+last.Length == pa && last.Opts == opts {
			last.Length += align + 1
			return true
		}
	}
	v.regions = append(v.regions, Region{VA: start, PA: pa, Length: align + 1, Opts: opts})
	return true
}

// Regions returns the mapped ranges in ascending order, merging runs that
// are virtually and physically contiguous with equal attributes.
func (p *PageTables) Regions() []Region {
	v := regionVisitor{}
	w := walker{pageTables: p, visitor: &v}
	w.iterateRange(0, p.vaLimit)
	return v.regions
}

// String implements fmt.Stringer.String. Every mapped region is printed on
// its own line, the way the populated map reads in a verbose boot log.
func (p *PageTables) String() string {
	regions := p.Regions()
	if len(regions) == 0 {
		return "(empty)\n"
	}
	var sb strings.Builder
	for _, r := range regions {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
