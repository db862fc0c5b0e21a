// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"fmt"
	"strings"
)

// ErrInvalidInput means a caller supplied value cannot be encoded.
type ErrInvalidInput struct {
	Op     string
	Value  interface{}
	Reason string
}

func (err ErrInvalidInput) Error() string {
	return fmt.Sprintf("%s: invalid input %q: %s", err.Op, fmt.Sprint(err.Value), err.Reason)
}

// ErrNesting means a Close call does not match the most recently started
// term that is still open.
type ErrNesting struct {
	Expected Term
	Actual   Term
}

func (err ErrNesting) Error() string {
	if err.Actual == TermNone {
		return fmt.Sprintf("close %s: no term is open", err.Expected)
	}
	return fmt.Sprintf("close %s: the innermost open term is %s", err.Expected, err.Actual)
}

// ErrEmptyBody means a term that requires content was closed without any.
type ErrEmptyBody struct {
	Term Term
}

func (err ErrEmptyBody) Error() string {
	return fmt.Sprintf("close %s: empty body", err.Term)
}

// ErrTooLarge means an encoded size does not fit its AML field.
type ErrTooLarge struct {
	What string
	Size uint64
	Max  uint64
}

func (err ErrTooLarge) Error() string {
	return fmt.Sprintf("%s too large: 0x%X > 0x%X", err.What, err.Size, err.Max)
}

// ErrUnclosed means the result was requested while terms are still open.
type ErrUnclosed struct {
	Open []Term
}

func (err ErrUnclosed) Error() string {
	names := make([]string, 0, len(err.Open))
	for _, t := range err.Open {
		names = append(names, t.String())
	}
	return fmt.Sprintf("terms still open: %s", strings.Join(names, " > "))
}
