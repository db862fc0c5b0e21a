// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import "fmt"

// SerializeFlag is the MethodFlags serialize bit.
type SerializeFlag uint8

// Possible values of SerializeFlag.
const (
	NotSerialized SerializeFlag = iota
	Serialized
)

// ObjectType is the ObjectType byte of an External declaration.
type ObjectType uint8

// ObjectType values, see the ASL ObjectTypeKeyword.
const (
	UnknownObj ObjectType = iota
	IntObj
	StrObj
	BuffObj
	PkgObj
	FieldUnitObj
	DeviceObj
	EventObj
	MethodObj
	MutexObj
	OpRegionObj
	PowerResObj
	ProcessorObj
	ThermalZoneObj
	BuffFieldObj
	DDBHandleObj
	InvalidObj
)

func (b *Builder) startNamed(term Term, name string) error {
	nameString, err := EncodeNameString(name)
	if err != nil {
		return fmt.Errorf("start %s: %w", term, err)
	}
	f := b.push(term, name)
	f.head = nameString
	return nil
}

// closeLengthPrefixed pops term and returns
// opcode ++ PkgLength ++ head ++ body.
func (b *Builder) closeLengthPrefixed(term Term, opcode ...byte) ([]byte, error) {
	f, err := b.pop(term)
	if err != nil {
		return nil, err
	}
	body, n := f.collapse()
	if n == 0 {
		return nil, ErrEmptyBody{Term: term}
	}
	pkg, err := wrapPkgLength(append(f.head, body...))
	if err != nil {
		return nil, fmt.Errorf("close %s %s: %w", term, f.ident, err)
	}
	return append(opcode, pkg...), nil
}

// StartScope opens Scope(name).
//
//	DefScope := ScopeOp PkgLength NameString TermList
func (b *Builder) StartScope(name string) error {
	return b.startNamed(TermScope, name)
}

// CloseScope closes the innermost Scope.
func (b *Builder) CloseScope() error {
	out, err := b.closeLengthPrefixed(TermScope, ScopeOp)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

// StartDevice opens Device(name).
//
//	DefDevice := DeviceOp PkgLength NameString TermList
func (b *Builder) StartDevice(name string) error {
	return b.startNamed(TermDevice, name)
}

// CloseDevice closes the innermost Device.
func (b *Builder) CloseDevice() error {
	out, err := b.closeLengthPrefixed(TermDevice, ExtOpPrefix, DeviceOp)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

// StartMethod opens Method(name, args, serialize, syncLevel).
//
//	DefMethod   := MethodOp PkgLength NameString MethodFlags TermList
//	MethodFlags := ByteData // bit 0-2: ArgCount (0-7)
//	                        // bit 3:   SerializeFlag
//	                        // bit 4-7: SyncLevel (0x00-0x0f)
func (b *Builder) StartMethod(name string, args int, serialize SerializeFlag, syncLevel int) error {
	switch {
	case args < 0 || args > maxMethodArgs:
		return ErrInvalidInput{Op: "Method", Value: args, Reason: "argument count must be 0..7"}
	case serialize > Serialized:
		return ErrInvalidInput{Op: "Method", Value: serialize, Reason: "invalid serialize flag"}
	case syncLevel < 0 || syncLevel > maxSyncLevel:
		return ErrInvalidInput{Op: "Method", Value: syncLevel, Reason: "sync level must be 0..15"}
	}
	if err := b.startNamed(TermMethod, name); err != nil {
		return err
	}
	f := b.current()
	f.head = append(f.head, byte(args)|byte(serialize)<<3|byte(syncLevel)<<4)
	return nil
}

// CloseMethod closes the innermost Method.
func (b *Builder) CloseMethod() error {
	out, err := b.closeLengthPrefixed(TermMethod, MethodOp)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

// StartName opens Name(name, object).
//
//	DefName := NameOp NameString DataRefObject
func (b *Builder) StartName(name string) error {
	return b.startNamed(TermName, name)
}

// CloseName closes the innermost Name.
func (b *Builder) CloseName() error {
	f, err := b.pop(TermName)
	if err != nil {
		return err
	}
	body, n := f.collapse()
	if n == 0 {
		return ErrEmptyBody{Term: TermName}
	}
	out := make([]byte, 0, 1+len(f.head)+len(body))
	out = append(out, NameOp)
	out = append(out, f.head...)
	b.emit(append(out, body...))
	return nil
}

// StartBuffer opens Buffer(size). The encoded BufferSize is the larger of
// size and the number of bytes appended before CloseBuffer.
//
//	DefBuffer  := BufferOp PkgLength BufferSize ByteList
//	BufferSize := TermArg => Integer
func (b *Builder) StartBuffer(size uint64) error {
	if size > maxBufferSize {
		return ErrTooLarge{What: "Buffer size", Size: size, Max: maxBufferSize}
	}
	b.push(TermBuffer, "BUFFER").declared = size
	return nil
}

// CloseBuffer closes the innermost Buffer.
func (b *Builder) CloseBuffer() error {
	f, err := b.pop(TermBuffer)
	if err != nil {
		return err
	}
	out, err := encodeBuffer(TermBuffer, f)
	if err != nil {
		return err
	}
	b.emit(out)
	return nil
}

func encodeBuffer(term Term, f *frame) ([]byte, error) {
	body, n := f.collapse()
	size := f.declared
	if uint64(len(body)) > size {
		size = uint64(len(body))
	}
	if size > maxBufferSize {
		return nil, ErrTooLarge{What: "Buffer size", Size: size, Max: maxBufferSize}
	}
	if size == 0 && n == 0 {
		return nil, ErrEmptyBody{Term: term}
	}
	pkg, err := wrapPkgLength(append(EncodeInteger(size), body...))
	if err != nil {
		return nil, fmt.Errorf("close %s: %w", term, err)
	}
	return append([]byte{BufferOp}, pkg...), nil
}

// StartPackage opens Package(count). A count of 0 means the number of
// elements appended before ClosePackage.
//
//	DefPackage    := PackageOp PkgLength NumElements PackageElementList
//	DefVarPackage := VarPackageOp PkgLength VarNumElements PackageElementList
func (b *Builder) StartPackage(count uint64) error {
	if count > maxBufferSize {
		return ErrTooLarge{What: "Package element count", Size: count, Max: maxBufferSize}
	}
	b.push(TermPackage, "PACKAGE").declared = count
	return nil
}

// ClosePackage closes the innermost Package. Packages of more than 255
// elements are encoded as VarPackage.
func (b *Builder) ClosePackage() error {
	f, err := b.pop(TermPackage)
	if err != nil {
		return err
	}
	body, n := f.collapse()
	count := f.declared
	switch {
	case count == 0:
		count = uint64(n)
	case count < uint64(n):
		return ErrInvalidInput{Op: "Package", Value: count, Reason: fmt.Sprintf("declared element count is smaller than the %d elements", n)}
	}
	if count == 0 {
		return ErrEmptyBody{Term: TermPackage}
	}

	var (
		op  byte
		num []byte
	)
	if count <= maxByteElements {
		op, num = PackageOp, []byte{byte(count)}
	} else {
		op, num = VarPackageOp, EncodeInteger(count)
	}
	pkg, err := wrapPkgLength(append(num, body...))
	if err != nil {
		return fmt.Errorf("close %s: %w", TermPackage, err)
	}
	b.emit(append([]byte{op}, pkg...))
	return nil
}

// StartReturn opens Return(object).
//
//	DefReturn := ReturnOp ArgObject
func (b *Builder) StartReturn() error {
	b.push(TermReturn, "RETURN")
	return nil
}

// CloseReturn closes the innermost Return. An empty Return returns Zero.
func (b *Builder) CloseReturn() error {
	f, err := b.pop(TermReturn)
	if err != nil {
		return err
	}
	body, n := f.collapse()
	if n == 0 {
		body = []byte{ZeroOp}
	}
	b.emit(append([]byte{ReturnOp}, body...))
	return nil
}

// StartStore opens Store(source, destination).
//
//	DefStore := StoreOp TermArg SuperName
func (b *Builder) StartStore() error {
	b.push(TermStore, "STORE")
	return nil
}

// CloseStore closes the innermost Store.
func (b *Builder) CloseStore() error {
	return b.closeOpcode(TermStore, StoreOp)
}

// StartCreateDWordField opens CreateDWordField(buffer, index, name).
//
//	DefCreateDWordField := CreateDWordFieldOp SourceBuff ByteIndex NameString
func (b *Builder) StartCreateDWordField() error {
	b.push(TermCreateDWordField, "CREATEDWORDFIELD")
	return nil
}

// CloseCreateDWordField closes the innermost CreateDWordField.
func (b *Builder) CloseCreateDWordField() error {
	return b.closeOpcode(TermCreateDWordField, CreateDWordOp)
}

func (b *Builder) closeOpcode(term Term, opcode byte) error {
	f, err := b.pop(term)
	if err != nil {
		return err
	}
	body, n := f.collapse()
	if n == 0 {
		return ErrEmptyBody{Term: term}
	}
	b.emit(append([]byte{opcode}, body...))
	return nil
}

// External appends External(name, objType, args).
//
//	DefExternal  := ExternalOp NameString ObjectType ArgumentCount
func (b *Builder) External(name string, objType ObjectType, args int) error {
	if objType >= InvalidObj {
		return ErrInvalidInput{Op: "External", Value: objType, Reason: "invalid object type"}
	}
	if args < 0 || args > maxMethodArgs {
		return ErrInvalidInput{Op: "External", Value: args, Reason: "argument count must be 0..7"}
	}
	nameString, err := EncodeNameString(name)
	if err != nil {
		return fmt.Errorf("External: %w", err)
	}
	out := make([]byte, 0, len(nameString)+3)
	out = append(out, ExternalOp)
	out = append(out, nameString...)
	b.emit(append(out, byte(objType), byte(args)))
	return nil
}

// Alias appends Alias(source, alias).
//
//	DefAlias := AliasOp NameString NameString
func (b *Builder) Alias(source, alias string) error {
	src, err := EncodeNameString(source)
	if err != nil {
		return fmt.Errorf("Alias source: %w", err)
	}
	dst, err := EncodeNameString(alias)
	if err != nil {
		return fmt.Errorf("Alias name: %w", err)
	}
	out := make([]byte, 0, 1+len(src)+len(dst))
	out = append(out, AliasOp)
	out = append(out, src...)
	b.emit(append(out, dst...))
	return nil
}
