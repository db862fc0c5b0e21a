// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// amlforth is a forth-inspired interface to the AML builder.
// Words start and close terms; every other word is pushed on the stack.
// Typical usage, and note that our first command is in argv, and they could all (or none) be in argv:
//    $ amlforth \\_SB scope PCI0 device _HID name PNP0A08 eisaid close
//    OK _UID name 0 int close close close
//    OK dump
//    Object: Completed=true Size=29 B
//    ...
//    OK AMDTEST ssdt gen close ssdt.aml save
//
// The platform word loads a platform description for gen, which runs a
// generator into the open term.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/linuxboot/amlgen/pkg/aml"
	"github.com/linuxboot/amlgen/pkg/log"
	"github.com/linuxboot/amlgen/pkg/platform"
	"github.com/linuxboot/amlgen/pkg/ssdt"
	"github.com/u-root/u-root/pkg/forth"
)

type cmd struct {
	c string
	h string
	f forth.Op
}

var (
	b        = aml.NewBuilder()
	plat     *platform.Platform
	commands []cmd
)

func init() {
	commands = []cmd{
		{"scope", "Start Scope(TOS[0])", scope},
		{"device", "Start Device(TOS[0])", device},
		{"method", "Start Method(TOS[1], TOS[0] arguments)", method},
		{"name", "Start Name(TOS[0])", name},
		{"buffer", "Start Buffer(TOS[0]), 0 for the size of the content", buffer},
		{"package", "Start Package(TOS[0]), 0 for the number of elements", pkg},
		{"return", "Start Return", ret},
		{"store", "Start Store", store},
		{"cdwf", "Start CreateDWordField", cdwf},
		{"rt", "Start ResourceTemplate", rt},
		{"ssdt", "Start an SSDT with OEM table ID TOS[0]", definitionBlock},
		{"close", "Close the innermost open term", closeTerm},
		{"int", "Append integer TOS[0]", integer},
		{"str", "Append string TOS[0]", str},
		{"eisaid", "Append the EISA ID TOS[0]", eisaid},
		{"path", "Append name string TOS[0]", path},
		{"arg", "Append ArgN, N is TOS[0]", arg},
		{"local", "Append LocalN, N is TOS[0]", local},
		{"external", "Append External(TOS[1]) of object type TOS[0]", external},
		{"alias", "Append Alias(TOS[1], TOS[0])", alias},
		{"mem32", "Append Memory32Fixed(ReadWrite, TOS[1], TOS[0])", mem32},
		{"platform", "Read in the platform description named by TOS[0]", readPlatform},
		{"gen", "Run the generator named by TOS[0] on the platform", gen},
		{"open", "Push the open terms", open},
		{"dump", "Print the open terms and their objects", dump},
		{"hex", "Print a hex dump of the completed objects", hex},
		{"save", "Write the completed objects to the file named by TOS[0]", save},
		{"reset", "Drop everything built so far", reset},
		// TODO: new words for forth package to move to u-root.
		{"drop", "Drop TOS[0]", drop},
		{"help", "Print a help message", help},
	}
}

func help(f forth.Forth) {
	for _, c := range commands {
		fmt.Printf("%s: %s\n", c.c, c.h)
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func number(f forth.Forth) uint64 {
	s := forth.String(f)
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		panic(fmt.Errorf("%q is not a number", s))
	}
	return n
}

func scope(f forth.Forth)  { check(b.StartScope(forth.String(f))) }
func device(f forth.Forth) { check(b.StartDevice(forth.String(f))) }
func name(f forth.Forth)   { check(b.StartName(forth.String(f))) }
func buffer(f forth.Forth) { check(b.StartBuffer(number(f))) }
func pkg(f forth.Forth)    { check(b.StartPackage(number(f))) }
func ret(f forth.Forth)    { check(b.StartReturn()) }
func store(f forth.Forth)  { check(b.StartStore()) }
func cdwf(f forth.Forth)   { check(b.StartCreateDWordField()) }
func rt(f forth.Forth)     { check(b.StartResourceTemplate()) }

func method(f forth.Forth) {
	args := number(f)
	check(b.StartMethod(forth.String(f), int(args), aml.NotSerialized, 0))
}

func definitionBlock(f forth.Forth) {
	p := plat
	if p == nil {
		p = &platform.Platform{}
		p.SetDefaults()
	}
	check(b.StartDefinitionBlock(p.TableHeader("SSDT", forth.String(f))))
}

func closeTerm(f forth.Forth) { check(b.Close()) }

func integer(f forth.Forth) { b.Integer(number(f)) }
func str(f forth.Forth)     { check(b.String(forth.String(f))) }
func eisaid(f forth.Forth)  { check(b.EisaID(forth.String(f))) }
func path(f forth.Forth)    { check(b.NameString(forth.String(f))) }
func arg(f forth.Forth)     { check(b.Arg(int(number(f)))) }
func local(f forth.Forth)   { check(b.Local(int(number(f)))) }

func external(f forth.Forth) {
	typ := number(f)
	check(b.External(forth.String(f), aml.ObjectType(typ), 0))
}

func alias(f forth.Forth) {
	to := forth.String(f)
	check(b.Alias(forth.String(f), to))
}

func mem32(f forth.Forth) {
	length := number(f)
	base := number(f)
	check(b.Memory32Fixed(aml.ReadWrite, uint32(base), uint32(length)))
}

func readPlatform(f forth.Forth) {
	p, err := platform.LoadFile(forth.String(f))
	check(err)
	plat = p
}

func gen(f forth.Forth) {
	n := forth.String(f)
	g, ok := ssdt.Generators[n]
	if !ok {
		panic(fmt.Errorf("unknown generator %q", n))
	}
	if plat == nil {
		panic(fmt.Errorf("no platform, use platform first"))
	}
	check(g(b, plat))
}

func open(f forth.Forth) {
	var terms []string
	for _, t := range b.Open() {
		terms = append(terms, t.String())
	}
	f.Push(terms)
}

func dump(f forth.Forth) { b.Dump(os.Stdout) }

func hex(f forth.Forth) {
	out, err := b.Bytes()
	check(err)
	aml.HexDump(os.Stdout, out)
}

func save(f forth.Forth) {
	out, err := b.Bytes()
	check(err)
	check(os.WriteFile(forth.String(f), out, 0o644))
}

func reset(f forth.Forth) { b.Reset() }

func drop(f forth.Forth) {
	if !f.Empty() {
		f.Pop()
	}
}

func main() {
	f := forth.New()
	for _, c := range commands {
		f.Newop(c.c, c.f)
	}
	var buf = make([]byte, 512)
	flag.Parse()
	// first process the args
	s, err := forth.Eval(f, strings.Join(flag.Args(), " "))
	if err != nil {
		log.Errorf("%v", err)
	} else {
		f.Push(s)
	}
	for {
		fmt.Printf("%v", f.Stack())
		fmt.Print("OK ")
		n, err := os.Stdin.Read(buf)
		if err != nil {
			if err != io.EOF {
				log.Fatalf("%v", err)
			}
			// Silently exit on EOF. It's the unix way.
			break
		}
		s, err := forth.Eval(f, string(buf[:n]))
		if err != nil {
			fmt.Printf("%v\n", err)
		}
		if err == nil {
			f.Push(s)
		}
	}
}
