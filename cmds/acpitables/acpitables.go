// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// acpitables inspects a file of concatenated ACPI tables.
//
// Synopsis:
//     acpitables [-d] [--hash ALG] [--dir DIR] IMAGE list|check|digest|extract
//     acpitables [-d] IMAGE convert OUTPUT
//
// Description:
//     list:    Print the header of every table
//     check:   Verify signatures, lengths and checksums of every table
//     digest:  Print a digest of every table, see --hash
//     extract: Write every table to DIR/SIG[-N].dat
//     convert: Write the tables to OUTPUT, compressed according to its extension
//
// Images ending in .xz, .lzma, .lz4, .zst or .zz are decompressed first.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxboot/amlgen/pkg/acpi"
	"github.com/linuxboot/amlgen/pkg/compression"
	"github.com/linuxboot/amlgen/pkg/log"
	flag "github.com/spf13/pflag"
)

var (
	debug = flag.BoolP("debug", "d", false, "enable debug prints")
	hash  = flag.String("hash", "sha256", "digest algorithm ["+algorithmNames()+"]")
	dir   = flag.String("dir", ".", "directory tables are extracted to")
)

func algorithmNames() string {
	var names []string
	for _, a := range acpi.HashAlgorithms() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

func readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if c := compression.FromExtension(path); c != nil {
		return c.Decode(data)
	}
	return data, nil
}

func list(w io.Writer, tables *acpi.TableSet) {
	for _, t := range tables.Tables() {
		fmt.Fprintf(w, "%s\n", t.Header.String())
	}
}

func digest(w io.Writer, tables *acpi.TableSet, alg acpi.HashAlgorithm) error {
	for _, t := range tables.Tables() {
		sum, err := acpi.Digest(t.Data, alg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %-8s %s\n", t.Header.SignatureString(), t.Header.OEMTableIDString(), hex.EncodeToString(sum))
	}
	return nil
}

func extract(w io.Writer, tables *acpi.TableSet, dir string) error {
	seen := map[string]int{}
	for _, t := range tables.Tables() {
		sig := t.Header.SignatureString()
		name := sig + ".dat"
		if n := seen[sig]; n > 0 {
			name = fmt.Sprintf("%s-%d.dat", sig, n)
		}
		seen[sig]++
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, t.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", path)
	}
	return nil
}

func run(w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: acpitables IMAGE list|check|digest|extract|convert [OUTPUT]")
	}
	image, err := readImage(args[0])
	if err != nil {
		return err
	}
	log.Debugf("read %d bytes from %s", len(image), args[0])

	if args[1] == "check" {
		if err := acpi.ValidateImage(image); err != nil {
			return err
		}
		fmt.Fprintf(w, "OK\n")
		return nil
	}

	tables, err := acpi.ParseImage(image)
	if err != nil {
		return err
	}
	switch args[1] {
	case "list":
		list(w, tables)
	case "digest":
		alg, err := acpi.ParseHashAlgorithm(*hash)
		if err != nil {
			return err
		}
		return digest(w, tables, alg)
	case "extract":
		return extract(w, tables, *dir)
	case "convert":
		if len(args) != 3 {
			return fmt.Errorf("convert needs an output path")
		}
		return tables.Save(args[2])
	default:
		return fmt.Errorf("unknown command %q", args[1])
	}
	return nil
}

func main() {
	flag.Parse()
	log.SetVerbose(*debug)

	if err := run(os.Stdout, flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}
}
