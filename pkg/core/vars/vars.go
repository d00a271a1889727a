// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package vars defines the variables of the IR: loop indices (IterationVar) and named
// kernel-level values (RegularVar) used as symbolic loop bounds or kernel parameters.
package vars

import (
	"fmt"
	"strconv"

	"github.com/gomlx/exceptions"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// Var is implemented by every variable.
type Var interface {
	Name() string
	Id() int
}

// RegularVar is a named, non-iteration variable.
type RegularVar struct {
	id   int
	name string
}

var _ Var = (*RegularVar)(nil)

// NewRegularVar creates a RegularVar with a fresh id.
func NewRegularVar(src ids.Source, name string) *RegularVar {
	return &RegularVar{id: src.Next(), name: name}
}

// Name of the variable.
func (v *RegularVar) Name() string { return v.name }

// Id of the variable.
func (v *RegularVar) Id() int { return v.id }

// String implements fmt.Stringer.
func (v *RegularVar) String() string { return v.name }

// Bound of an iteration domain: either a fixed integer or a RegularVar.
type Bound struct {
	fixed int
	v     *RegularVar
}

// Fixed returns a constant bound.
func Fixed(value int) Bound {
	return Bound{fixed: value}
}

// VarBound returns a symbolic bound. It panics if v is nil.
func VarBound(v *RegularVar) Bound {
	if v == nil {
		exceptions.Panicf("vars.VarBound(nil): symbolic bound requires a variable")
	}
	return Bound{v: v}
}

// IsFixed returns whether the bound is a constant.
func (b Bound) IsFixed() bool { return b.v == nil }

// Value of a fixed bound. It panics for symbolic bounds.
func (b Bound) Value() int {
	if b.v != nil {
		exceptions.Panicf("Bound.Value() called on symbolic bound %q", b.v.Name())
	}
	return b.fixed
}

// Var of a symbolic bound, or nil for fixed bounds.
func (b Bound) Var() *RegularVar { return b.v }

// String returns the bound as it appears in generated code.
func (b Bound) String() string {
	if b.v != nil {
		return b.v.Name()
	}
	return strconv.Itoa(b.fixed)
}

// IterationVar is a loop index with a half-open domain [lower, upper).
// It represents one loop nesting level and is immutable.
type IterationVar struct {
	id           int
	name         string
	lower, upper Bound
}

var _ Var = (*IterationVar)(nil)

// NewIterationVar creates an IterationVar over [lower, upper).
func NewIterationVar(src ids.Source, name string, lower, upper Bound) *IterationVar {
	return &IterationVar{id: src.Next(), name: name, lower: lower, upper: upper}
}

// Name of the loop index.
func (v *IterationVar) Name() string { return v.name }

// Id of the loop index.
func (v *IterationVar) Id() int { return v.id }

// Domain returns the lower (inclusive) and upper (exclusive) bounds.
func (v *IterationVar) Domain() (lower, upper Bound) { return v.lower, v.upper }

// String implements fmt.Stringer, e.g. "i:[0, 10)".
func (v *IterationVar) String() string {
	return fmt.Sprintf("%s:[%s, %s)", v.name, v.lower, v.upper)
}
