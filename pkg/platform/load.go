// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat means a topology file extension is not recognized.
type ErrUnknownFormat struct {
	Path string
}

func (err ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown topology format of %s, want .hcl, .yaml or .yml", err.Path)
}

// evalContext is the function library available to HCL topology files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"range":  stdlib.RangeFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// LoadFile reads, defaults and validates a topology file. The format is
// chosen by extension.
func LoadFile(path string) (*Platform, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p *Platform
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		p, err = ParseHCL(src, path)
	case ".yaml", ".yml":
		p, err = ParseYAML(src)
	default:
		return nil, ErrUnknownFormat{Path: path}
	}
	if err != nil {
		return nil, err
	}

	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseHCL decodes an HCL topology description. filename is used in
// diagnostics only.
func ParseHCL(src []byte, filename string) (*Platform, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var p Platform
	diags = gohcl.DecodeBody(file.Body, evalContext(), &p)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &p, nil
}

// ParseYAML decodes a YAML topology description. Unknown keys are errors.
func ParseYAML(src []byte) (*Platform, error) {
	var p Platform
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return &p, nil
}
