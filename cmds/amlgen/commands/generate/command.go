// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generate

import (
	"fmt"
	"strings"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/log"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	PlatformPath string   `short:"p" long:"platform" description:"path to platform description (.hcl, .yaml)" required:"true"`
	InputPath    string   `short:"i" long:"input" description:"path to ACPI table image to install into"`
	OutputPath   string   `short:"o" long:"output" description:"path to write the resulting ACPI table image to" required:"true"`
	Generators   []string `short:"g" long:"generator" description:"generator to run, may be repeated" default:"cpu" default:"pci"`
	Append       string   `short:"a" long:"append" description:"signature of the table (with the platform OEM table ID) to append to; a new SSDT is installed if empty"`
	TableID      string   `long:"table-id" description:"OEM table ID of the new SSDT, only with a single generator; defaults to AMD<GENERATOR>"`
	NoSPMI       bool     `long:"no-spmi" description:"do not install an SPMI table for the platform IPMI interface"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "generates AML for a platform and installs it into an ACPI table image"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Known generators: " + strings.Join(commands.GeneratorNames(), ", ") + ".\n" +
		"Each generator either appends its AML to an existing table (--append) or installs a new SSDT.\n" +
		"An SPMI table is installed as well if the platform describes an IPMI interface.\n" +
		"The image format follows the file extension of the input and output paths."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	if cmd.TableID != "" && cmd.Append == "" && len(cmd.Generators) > 1 {
		return commands.ErrArgs{Err: fmt.Errorf("--table-id names a single SSDT, but %d generators run", len(cmd.Generators))}
	}

	p, err := platform.LoadFile(cmd.PlatformPath)
	if err != nil {
		return err
	}

	tables := acpi.NewTableSet()
	if cmd.InputPath != "" {
		tables, err = acpi.Load(cmd.InputPath)
		if err != nil {
			return fmt.Errorf("unable to load ACPI tables: %w", err)
		}
	}

	for _, name := range cmd.Generators {
		gen, err := commands.LookupGenerator(name)
		if err != nil {
			return err
		}
		opts := ssdt.Options{
			Append:     cmd.Append,
			OEMTableID: cmd.TableID,
		}
		if opts.OEMTableID == "" {
			opts.OEMTableID = "AMD" + strings.ToUpper(name)
		}
		if _, err := ssdt.Install(tables, p, name, gen, opts); err != nil {
			return err
		}
	}

	if p.IPMI.Enabled() && !cmd.NoSPMI {
		if _, err := ssdt.InstallSPMI(tables, p); err != nil {
			return err
		}
	}

	if err := tables.Save(cmd.OutputPath); err != nil {
		return fmt.Errorf("unable to save ACPI tables to '%s': %w", cmd.OutputPath, err)
	}
	log.Infof("wrote %d tables to %s", len(tables.Tables()), cmd.OutputPath)
	return nil
}
