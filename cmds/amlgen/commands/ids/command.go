// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ids

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/linuxboot/amlgen/cmds/amlgen/commands"
	"github.com/linuxboot/amlgen/pkg/hid2english"
	"golang.org/x/text/transform"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	Template string `short:"t" long:"template" description:"template used to replace IDs, may use {{.ID}}, {{.Name}} and {{.IsKnown}}" default:"{{.ID}}{{if .IsKnown}} ({{.Name}}){{end}}"`

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
	return "annotates device IDs such as PNP0A08 with their English names"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Reads FILE, or stdin if FILE is not specified, and writes it to stdout with every device ID replaced using the template."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	r := os.Stdin
	switch len(args) {
	case 0:
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("unable to open '%s': %w", args[0], err)
		}
		defer f.Close()
		r = f
	default:
		return commands.ErrArgs{Err: fmt.Errorf("at most 1 positional argument expected")}
	}

	t, err := template.New("hid2english").Parse(cmd.Template)
	if err != nil {
		return commands.ErrArgs{Err: fmt.Errorf("template not valid: %w", err)}
	}

	trans := hid2english.New(hid2english.NewTemplateMapper(t))
	if _, err := io.Copy(cmd.output(), transform.NewReader(r, trans)); err != nil {
		return fmt.Errorf("error copying buffer: %w", err)
	}
	return nil
}
