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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/subcommands"
	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32/fakehw"
)

// Compute implements subcommands.Command for the "compute" command.
type Compute struct {
	vaMax             hexValue
	paMax             hexValue
	base              hexValue
	walksNonCacheable bool
	cnp               bool
}

// Name implements subcommands.Command.Name.
func (*Compute) Name() string {
	return "compute"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Compute) Synopsis() string {
	return "compute the MAIR0/TTBCR/TTBR0 triple for a translation regime"
}

// Usage implements subcommands.Command.Usage.
func (*Compute) Usage() string {
	return `compute [-va-max <addr>] [-pa-max <addr>] [-base <addr>] [-walks-noncacheable] [-cnp]

Runs the regime configurator against a modeled core and prints the
computed register values with their decoded fields. The base address is
the physical address of the level 1 translation table.

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *Compute) SetFlags(f *flag.FlagSet) {
	c.vaMax = hexValue(math.MaxUint32)
	c.paMax = hexValue(aarch32.MaxSupportedPA())
	f.Var(&c.vaMax, "va-max", "highest virtual address to translate")
	f.Var(&c.paMax, "pa-max", "highest physical address mappings may reach")
	f.Var(&c.base, "base", "physical address of the level 1 table")
	f.BoolVar(&c.walksNonCacheable, "walks-noncacheable", false, "mark table-walk accesses non-cacheable")
	f.BoolVar(&c.cnp, "cnp", false, "model a core with TTBR Common-not-Private support")
}

// Execute implements subcommands.Command.Execute.
func (c *Compute) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if err := c.execute(os.Stdout); err != nil {
		Fatalf("compute: %v", err)
	}
	return subcommands.ExitSuccess
}

func (c *Compute) execute(w io.Writer) error {
	size := uint64(c.vaMax) + 1
	if size&(size-1) != 0 || size < aarch32.MinVirtAddrSpaceSize || size > aarch32.MaxVirtAddrSpaceSize {
		return fmt.Errorf("va-max %#x: the input range must be a power-of-two size between %#x and %#x",
			uint64(c.vaMax), aarch32.MinVirtAddrSpaceSize, aarch32.MaxVirtAddrSpaceSize)
	}
	if uint64(c.paMax) > aarch32.MaxSupportedPA() {
		return fmt.Errorf("pa-max %#x exceeds the architectural limit %#x", uint64(c.paMax), aarch32.MaxSupportedPA())
	}
	if uint64(c.base)&uint64(xlat.PageMask) != 0 {
		return fmt.Errorf("base %#x is not aligned to the %d-byte granule", uint64(c.base), xlat.PageSize)
	}

	hw := fakehw.New()
	if c.cnp {
		hw.Regs.IDMMFR4 = 1 << sysreg.ID_MMFR4_CNP_SHIFT
	}
	restore := aarch32.SetOps(hw)
	defer restore()

	var flags xlat.Flags
	if c.walksNonCacheable {
		flags |= xlat.TablesNonCacheable
	}
	var cfg xlat.MMUConfig
	aarch32.SetupMMUConfig(&cfg, flags, uintptr(c.base), uint64(c.paMax), uintptr(c.vaMax), xlat.RegimeSecurePL1)

	printConfig(w, &cfg)
	return nil
}
