// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"fmt"
	"io"
	"os"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	PlatformPath string `short:"p" long:"platform" description:"path to platform description (.hcl, .yaml)" required:"true"`
	Generator    string `short:"g" long:"generator" description:"generator to run" required:"true"`
	Table        bool   `short:"t" long:"table" description:"wrap the AML into a complete SSDT"`
	OutputPath   string `short:"o" long:"output" description:"write the raw bytes to a file instead of printing a hex dump"`

	stdout io.Writer
}

func (cmd *Command) output() io.Writer {
	if cmd.stdout != nil {
		return cmd.stdout
	}
	return os.Stdout
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the AML of one generator"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	gen, err := commands.LookupGenerator(cmd.Generator)
	if err != nil {
		return err
	}
	p, err := platform.LoadFile(cmd.PlatformPath)
	if err != nil {
		return err
	}

	out, err := ssdt.Build(gen, p)
	if err != nil {
		return fmt.Errorf("generator '%s': %w", cmd.Generator, err)
	}
	if cmd.Table {
		out, err = ssdt.Table(p.TableHeader("SSDT", p.OEM.OEMTableID), out)
		if err != nil {
			return err
		}
		if err := acpi.FixChecksum(out); err != nil {
			return err
		}
	}

	if cmd.OutputPath != "" {
		return os.WriteFile(cmd.OutputPath, out, 0o644)
	}
	aml.HexDump(cmd.output(), out)
	return nil
}
