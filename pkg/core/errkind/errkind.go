// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package errkind enumerates the flat set of error kinds returned while building and emitting the IR.
//
// A Kind is itself an error. Functions wrap it with context using github.com/pkg/errors, and callers
// match it with errors.Is:
//
//	code, err := block.Emit()
//	if errors.Is(err, errkind.LoopMisMatch) {
//		...
//	}
package errkind

import "github.com/pkg/errors"

// Kind of error. Kinds are not hierarchical.
type Kind int

//go:generate go tool enumer -type=Kind -output=gen_kind_enumer.go errkind.go

const (
	// InvalidAccessPattern is returned for mismatched or malformed access maps, e.g. inputs of a
	// block whose access maps differ at merge time.
	InvalidAccessPattern Kind = iota

	// LoopMisMatch is returned when an access map's loop depth differs from its number of iteration variables.
	LoopMisMatch

	// MissingAccessMap is returned when an edge expected to carry an access map has none.
	MissingAccessMap

	// InvalidLoadAccess is returned when an access-aware load sees a loop depth other than 1.
	InvalidLoadAccess

	// WrongInputsNum is returned when a compute task has the wrong number of predecessors.
	WrongInputsNum

	// ParseError is returned for unrecognized textual type names.
	ParseError

	// FailedFileOp is returned when persisting generated code fails.
	FailedFileOp

	// UnsupportedTransfer is returned for a (source, destination) buffer type pair with no copy primitive.
	UnsupportedTransfer

	// IncompatibleBuffers is returned when a task is given buffers of different types or shapes.
	IncompatibleBuffers

	// InvalidGraph is returned when a structural edge refers to a node not in its graph.
	InvalidGraph

	// CyclicGraph is returned when a graph can't be scheduled because it has a cycle.
	CyclicGraph
)

// Error implements the error interface.
func (k Kind) Error() string {
	return k.String()
}

// Of returns the first Kind found in err's chain, and false if there is none.
func Of(err error) (Kind, bool) {
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}
