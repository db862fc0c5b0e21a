// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import "fmt"

// Builder assembles AML byte code from nested Start/Close calls.
//
// Every StartX pushes a frame for term X, primitive encoders append
// completed objects to the innermost open frame, and CloseX pops the frame,
// encodes it and appends the result to its parent as a single object.
// Close calls must mirror Start calls exactly; any mismatch is reported as
// ErrNesting and leaves the stack untouched.
//
// A Builder is not safe for concurrent use. The zero value is ready to use.
type Builder struct {
	frames []*frame
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) current() *frame {
	if len(b.frames) == 0 {
		b.frames = append(b.frames, &frame{term: TermRoot, ident: "ROOT"})
	}
	return b.frames[len(b.frames)-1]
}

// push opens a new term on top of the stack.
func (b *Builder) push(term Term, ident string) *frame {
	b.current()
	f := &frame{term: term, ident: ident}
	b.frames = append(b.frames, f)
	return f
}

// pop removes the innermost open term if it is of kind term.
func (b *Builder) pop(term Term) (*frame, error) {
	f := b.current()
	if f.term == TermRoot {
		return nil, ErrNesting{Expected: term, Actual: TermNone}
	}
	if f.term != term {
		return nil, ErrNesting{Expected: term, Actual: f.term}
	}
	b.frames = b.frames[:len(b.frames)-1]
	return f, nil
}

// emit appends one completed object to the innermost open term.
func (b *Builder) emit(data []byte) {
	b.current().appendChild(data)
}

// Depth returns the number of terms that are started but not closed.
func (b *Builder) Depth() int {
	if len(b.frames) == 0 {
		return 0
	}
	return len(b.frames) - 1
}

// Open returns the kinds of all open terms, outermost first.
func (b *Builder) Open() []Term {
	var terms []Term
	for i := 1; i < len(b.frames); i++ {
		terms = append(terms, b.frames[i].term)
	}
	return terms
}

// Reset drops every open term and every completed object.
func (b *Builder) Reset() {
	b.frames = nil
}

// Objects returns the completed top-level objects in the order they were
// produced.
func (b *Builder) Objects() ([][]byte, error) {
	if b.Depth() != 0 {
		return nil, ErrUnclosed{Open: b.Open()}
	}
	return b.current().children(), nil
}

// Bytes returns the concatenation of all completed top-level objects.
func (b *Builder) Bytes() ([]byte, error) {
	if b.Depth() != 0 {
		return nil, ErrUnclosed{Open: b.Open()}
	}
	body, _ := b.current().collapse()
	return append([]byte(nil), body...), nil
}

// Integer appends the shortest integer encoding of v.
func (b *Builder) Integer(v uint64) {
	b.emit(EncodeInteger(v))
}

// Zero appends ZeroOp.
func (b *Builder) Zero() {
	b.emit([]byte{ZeroOp})
}

// One appends OneOp.
func (b *Builder) One() {
	b.emit([]byte{OneOp})
}

// Ones appends OnesOp.
func (b *Builder) Ones() {
	b.emit([]byte{OnesOp})
}

// String appends a String data object.
func (b *Builder) String(s string) error {
	data, err := EncodeString(s)
	if err != nil {
		return err
	}
	b.emit(data)
	return nil
}

// EisaID appends the compressed EISA ID of id as a DWordConst.
func (b *Builder) EisaID(id string) error {
	v, err := EisaID(id)
	if err != nil {
		return err
	}
	b.emit(EncodeDWord(v))
	return nil
}

// NameString appends an encoded NameString, see EncodeNameString.
func (b *Builder) NameString(path string) error {
	data, err := EncodeNameString(path)
	if err != nil {
		return err
	}
	b.emit(data)
	return nil
}

// Arg appends ArgN, n in 0..6.
func (b *Builder) Arg(n int) error {
	if n < 0 || n > maxArg {
		return ErrInvalidInput{Op: "Arg", Value: n, Reason: "must be 0..6"}
	}
	b.emit([]byte{Arg0Op + byte(n)})
	return nil
}

// Local appends LocalN, n in 0..7.
func (b *Builder) Local(n int) error {
	if n < 0 || n > maxLocal {
		return ErrInvalidInput{Op: "Local", Value: n, Reason: "must be 0..7"}
	}
	b.emit([]byte{Local0Op + byte(n)})
	return nil
}

// DataBuffer appends data unchanged as one object.
func (b *Builder) DataBuffer(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInput{Op: "DataBuffer", Value: data, Reason: "empty buffer"}
	}
	b.emit(data)
	return nil
}

// Close closes the innermost open term, whatever it is.
func (b *Builder) Close() error {
	open := b.Open()
	if len(open) == 0 {
		return ErrNesting{Expected: TermNone, Actual: TermNone}
	}
	switch term := open[len(open)-1]; term {
	case TermDefinitionBlock:
		return b.CloseDefinitionBlock()
	case TermScope:
		return b.CloseScope()
	case TermDevice:
		return b.CloseDevice()
	case TermMethod:
		return b.CloseMethod()
	case TermName:
		return b.CloseName()
	case TermBuffer:
		return b.CloseBuffer()
	case TermPackage:
		return b.ClosePackage()
	case TermReturn:
		return b.CloseReturn()
	case TermStore:
		return b.CloseStore()
	case TermCreateDWordField:
		return b.CloseCreateDWordField()
	case TermResourceTemplate:
		return b.CloseResourceTemplate()
	default:
		return fmt.Errorf("close: unknown term %s", term)
	}
}
