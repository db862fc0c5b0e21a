// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// amlgen generates ACPI Machine Language describing a platform and installs
// it into a set of ACPI tables.
//
// Synopsis:
//     amlgen generate -p PLATFORM -o IMAGE [-i IMAGE] [-g GENERATOR]... [options]
//     amlgen show -p PLATFORM [--format=text|yaml]
//     amlgen dump -p PLATFORM -g GENERATOR [-t] [-o FILE]
//     amlgen ids [-t TEMPLATE] [FILE]
//
// An example:
//     amlgen generate -p onyx.hcl -i dsdt.dat -a DSDT -g cpu -o tables.dat.zst
//     amlgen dump -p onyx.yaml -g pci -t -o pci.aml
//     iasl -d pci.aml && amlgen ids pci.dsl
//
// Description:
//     generate: Runs generators and installs their AML into an image
//     show:     Prints the platform description
//     dump:     Prints or writes the AML of a single generator
//     ids:      Annotates device IDs with their English names
//
// Options:
//     -v: Verbose logging
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/cmds/amlgen/commands/dump"
	"github.com/linuxboot/amlgen/cmds/amlgen/commands/generate"
	"github.com/linuxboot/amlgen/cmds/amlgen/commands/ids"
	"github.com/linuxboot/amlgen/cmds/amlgen/commands/show"
	"github.com/linuxboot/amlgen/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"generate": &generate.Command{},
		"show":     &show.Command{},
		"dump":     &dump.Command{},
		"ids":      &ids.Command{},
	}
)

type options struct {
	Verbose func() `short:"v" long:"verbose" description:"verbose logging"`
}

func main() {
	opts := options{
		Verbose: func() { log.SetVerbose(true) },
	}
	flagsParser := flags.NewParser(&opts, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
