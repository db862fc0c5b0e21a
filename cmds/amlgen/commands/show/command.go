// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"fmt"
	"io"
	"os"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/platform"
	"gopkg.in/yaml.v3"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	PlatformPath string  `short:"p" long:"platform" description:"path to platform description (.hcl, .yaml)" required:"true"`
	Format       *string `long:"format" description:"output format [text, yaml]"`

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
	return "prints a platform description"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "The yaml format prints the description with all defaults filled in, which can be loaded again."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	format := "text"
	if cmd.Format != nil {
		format = *cmd.Format
	}

	p, err := platform.LoadFile(cmd.PlatformPath)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		p.Summary(cmd.output())
	case "yaml":
		enc := yaml.NewEncoder(cmd.output())
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", format)}
	}
	return nil
}
