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

// Binary xlatcfg computes, decodes and simulates secure PL1&0 stage-1
// translation regime configurations without touching real hardware.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/jian-tian/arm-trusted-firmware/cmd/xlatcfg/cmd"
	"github.com/jian-tian/arm-trusted-firmware/pkg/log"
)

var (
	debug           = flag.Bool("debug", false, "enable debug logging.")
	logFile         = flag.String("log", "", "file path where logs are written; stderr when empty.")
	logFormat       = flag.String("log-format", "text", "log format: text or json.")
	alsoLogToStderr = flag.Bool("alsologtostderr", false, "send log messages to stderr.")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(cmd.Compute), "")
	subcommands.Register(new(cmd.Decode), "")
	subcommands.Register(new(cmd.Simulate), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	if *debug {
		log.SetLevel(log.Debug)
	}

	var emitters log.MultiEmitter
	if *logFile != "" {
		f, err := log.OpenFile(*logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
		if err != nil {
			cmd.Fatalf("opening log file: %v", err)
		}
		defer f.Close()
		emitters = append(emitters, newEmitter(*logFormat, f))
		if *alsoLogToStderr {
			emitters = append(emitters, newEmitter(*logFormat, os.Stderr))
		}
	} else {
		emitters = append(emitters, newEmitter(*logFormat, os.Stderr))
	}

	switch len(emitters) {
	case 1:
		// Use the singular emitter to avoid needless
		// `for` loop overhead when logging to a single place.
		log.SetTarget(emitters[0])
	default:
		log.SetTarget(&emitters)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}

func newEmitter(format string, w io.Writer) log.Emitter {
	switch format {
	case "text":
		return log.GoogleEmitter{Writer: &log.Writer{Next: w}}
	case "json":
		return log.JSONEmitter{Writer: &log.Writer{Next: w}}
	}
	cmd.Fatalf("invalid log format %q, must be 'text' or 'json'", format)
	panic("unreachable")
}
