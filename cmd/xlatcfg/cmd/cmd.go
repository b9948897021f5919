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

// Package cmd holds implementations of the xlatcfg commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jian-tian/arm-trusted-firmware/pkg/sysreg"
	"github.com/jian-tian/arm-trusted-firmware/pkg/xlat"
)

// Fatalf writes a message to stderr and exits with error code 1.
func Fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// hexValue is a flag.Value for addresses and register values, accepting
// hexadecimal (0x...), octal or decimal input.
type hexValue uint64

// String implements flag.Value.
func (h *hexValue) String() string {
	return fmt.Sprintf("%#x", uint64(*h))
}

// Get implements flag.Value.
func (h *hexValue) Get() any {
	return uint64(*h)
}

// Set implements flag.Value.
func (h *hexValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %v", s, err)
	}
	*h = hexValue(v)
	return nil
}

// printConfig writes the register triple with its decoded fields, one
// register per line.
func printConfig(w io.Writer, cfg *xlat.MMUConfig) {
	fmt.Fprintln(w, sysreg.MAIR0(cfg[xlat.CfgMAIR]))
	fmt.Fprintln(w, sysreg.TTBCR(cfg[xlat.CfgTCR]))
	fmt.Fprintln(w, sysreg.TTBR0(cfg[xlat.CfgTTBR0]))
}
