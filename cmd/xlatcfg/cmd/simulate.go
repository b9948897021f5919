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
	"github.com/jian-tian/arm-trusted-firmware/pkg/log"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/aarch32/fakehw"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat/pagetables"
	yaml "gopkg.in/yaml.v2"
)

// traceTail is how many trailing hardware events the dump shows.
const traceTail = 16

// layoutRegion is one mapped region in a layout file.
type layoutRegion struct {
	Name      string `yaml:"name"`
	VA        uint64 `yaml:"va"`
	PA        uint64 `yaml:"pa"`
	Size      uint64 `yaml:"size"`
	Type      string `yaml:"type"`
	ReadOnly  bool   `yaml:"read_only"`
	NoExecute bool   `yaml:"no_execute"`
	NonSecure bool   `yaml:"non_secure"`
	User      bool   `yaml:"user"`
	NonGlobal bool   `yaml:"non_global"`
}

// layout describes an address space to build and activate.
type layout struct {
	VASize             uint64         `yaml:"va_size"`
	TablesNonCacheable bool           `yaml:"tables_noncacheable"`
	Regions            []layoutRegion `yaml:"regions"`
	Accesses           []uint64       `yaml:"accesses"`
}

func loadLayout(filename string) (*layout, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open layout: %w", err)
	}
	defer f.Close()
	var l layout
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("unable to decode %q: %w", filename, err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", filename, err)
	}
	return &l, nil
}

// validate rejects layouts the table builder would refuse, so a bad file
// produces an error instead of a panic.
func (l *layout) validate() error {
	switch l.VASize {
	case 0, 1 << 31, 1 << 32:
	default:
		return fmt.Errorf("va_size %#x: must be 0x80000000 or 0x100000000", l.VASize)
	}
	vaSize := l.VASize
	if vaSize == 0 {
		vaSize = 1 << 32
	}
	for _, r := range l.Regions {
		if r.Size == 0 {
			return fmt.Errorf("region %q has no size", r.Name)
		}
		if r.VA&uint64(xlat.PageMask) != 0 || r.Size&uint64(xlat.PageMask) != 0 || r.PA&uint64(xlat.PageMask) != 0 {
			return fmt.Errorf("region %q is not aligned to the %d-byte granule", r.Name, xlat.PageSize)
		}
		if r.Size > vaSize || r.VA > vaSize-r.Size {
			return fmt.Errorf("region %q extends past the %#x input range", r.Name, vaSize)
		}
		if max := aarch32.MaxSupportedPA(); r.Size-1 > max || r.PA > max-(r.Size-1) {
			return fmt.Errorf("region %q extends past the supported physical range", r.Name)
		}
		if _, err := memType(r.Type); err != nil {
			return fmt.Errorf("region %q: %w", r.Name, err)
		}
	}
	return nil
}

// memType maps a layout type name onto a memory type.
func memType(s string) (xlat.MemType, error) {
	switch s {
	case "", "wb", "write-back":
		return xlat.MemTypeWriteBack, nil
	case "dev", "device":
		return xlat.MemTypeDevice, nil
	case "nc", "non-cacheable":
		return xlat.MemTypeNonCacheable, nil
	}
	return 0, fmt.Errorf("unknown memory type %q", s)
}

// Simulate implements subcommands.Command for the "simulate" command.
type Simulate struct {
	layout string
	dump   bool
}

// Name implements subcommands.Command.Name.
func (*Simulate) Name() string {
	return "simulate"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Simulate) Synopsis() string {
	return "build and activate a described address space on a modeled core"
}

// Usage implements subcommands.Command.Usage.
func (*Simulate) Usage() string {
	return `simulate -layout <file.yaml> [-dump]

Builds translation tables for the regions described in the layout file,
activates them on a modeled core, and prints the computed registers. Listed
accesses are translated through the modeled TLB. With -dump, the resulting
mappings and the tail of the hardware event trace are printed as well.

EXAMPLE layout file:
    va_size: 0x80000000
    regions:
      - name: kernel
        va: 0x10000
        pa: 0x80000000
        size: 0x4000
        type: wb
        read_only: true
      - name: uart
        va: 0x1000000
        pa: 0x40000000
        size: 0x1000
        type: device
    accesses:
      - 0x10123

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Simulate) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.layout, "layout", "", "path to the layout file (required)")
	f.BoolVar(&s.dump, "dump", false, "print the final mappings and the event trace tail")
}

// Execute implements subcommands.Command.Execute.
func (s *Simulate) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if s.layout == "" {
		Fatalf("simulate: -layout is required")
	}
	if err := s.execute(os.Stdout); err != nil {
		Fatalf("simulate: %v", err)
	}
	return subcommands.ExitSuccess
}

func (s *Simulate) execute(w io.Writer) error {
	l, err := loadLayout(s.layout)
	if err != nil {
		return err
	}

	hw := fakehw.New()
	restore := aarch32.SetOps(hw)
	defer restore()

	pt := pagetables.New(pagetables.NewRuntimeAllocator(), pagetables.Opts{
		VASize:             l.VASize,
		TablesNonCacheable: l.TablesNonCacheable,
	})
	for _, r := range l.Regions {
		mt, err := memType(r.Type)
		if err != nil {
			return fmt.Errorf("region %q: %w", r.Name, err)
		}
		opts := pagetables.MapOpts{
			Type:      mt,
			ReadOnly:  r.ReadOnly,
			User:      r.User,
			NoExecute: r.NoExecute,
			NonSecure: r.NonSecure,
			NonGlobal: r.NonGlobal,
		}
		log.Debugf("mapping %q: va %#x -> pa %#x, %#x bytes, %v", r.Name, r.VA, r.PA, r.Size, opts)
		if pt.Map(r.VA, r.Size, opts, r.PA) {
			log.Warningf("region %q replaced part of an earlier mapping", r.Name)
		}
	}

	var cfg xlat.MMUConfig
	pt.Config(&cfg)
	aarch32.EnableMMU(&cfg, xlat.RegimeSecurePL1)
	hw.SetWalker(func(va uint32) (uint64, bool) {
		pa, _, ok := pt.Lookup(uint64(va))
		return pa, ok
	})

	printConfig(w, &cfg)

	for _, va := range l.Accesses {
		if va > math.MaxUint32 {
			return fmt.Errorf("access %#x is outside the 32-bit input range", va)
		}
		if pa, ok := hw.Translate(uint32(va)); ok {
			fmt.Fprintf(w, "access %#010x -> %#010x\n", va, pa)
		} else {
			fmt.Fprintf(w, "access %#010x -> translation fault\n", va)
		}
	}

	if s.dump {
		fmt.Fprintf(w, "mappings:\n%s", pt)
		trace := hw.Trace()
		if len(trace) > traceTail {
			trace = trace[len(trace)-traceTail:]
		}
		fmt.Fprintf(w, "trace:\n")
		for _, ev := range trace {
			fmt.Fprintf(w, "  %v\n", ev)
		}
	}
	return nil
}
