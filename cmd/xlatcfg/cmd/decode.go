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
)

// Decode implements subcommands.Command for the "decode" command.
type Decode struct {
	mair  hexValue
	ttbcr hexValue
	ttbr0 hexValue
}

// Name implements subcommands.Command.Name.
func (*Decode) Name() string {
	return "decode"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Decode) Synopsis() string {
	return "decode raw translation control register values"
}

// Usage implements subcommands.Command.Usage.
func (*Decode) Usage() string {
	return `decode [-mair <value>] [-ttbcr <value>] [-ttbr0 <value>]

Decodes the fields of the given raw register values. At least one register
must be provided.

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (d *Decode) SetFlags(f *flag.FlagSet) {
	f.Var(&d.mair, "mair", "raw MAIR0 value")
	f.Var(&d.ttbcr, "ttbcr", "raw TTBCR value")
	f.Var(&d.ttbr0, "ttbr0", "raw 64-bit TTBR0 value")
}

// Execute implements subcommands.Command.Execute.
func (d *Decode) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if err := d.execute(os.Stdout, set); err != nil {
		Fatalf("decode: %v", err)
	}
	return subcommands.ExitSuccess
}

// execute decodes the registers named in set, which holds the flag names
// given on the command line.
func (d *Decode) execute(w io.Writer, set map[string]bool) error {
	if !set["mair"] && !set["ttbcr"] && !set["ttbr0"] {
		return fmt.Errorf("provide at least one of -mair, -ttbcr, -ttbr0")
	}
	for _, r := range []struct {
		name  string
		value uint64
	}{{"mair", uint64(d.mair)}, {"ttbcr", uint64(d.ttbcr)}} {
		if set[r.name] && r.value > math.MaxUint32 {
			return fmt.Errorf("-%s %#x does not fit a 32-bit register", r.name, r.value)
		}
	}

	if set["mair"] {
		fmt.Fprintln(w, sysreg.MAIR0(d.mair))
	}
	if set["ttbcr"] {
		fmt.Fprintln(w, sysreg.TTBCR(d.ttbcr))
	}
	if set["ttbr0"] {
		fmt.Fprintln(w, sysreg.TTBR0(d.ttbr0))
	}
	return nil
}
