// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package ids provides the unique identifier source used when building the IR.
//
// There is no package-level counter: a Generator is created by whoever builds a kernel and
// passed explicitly to every constructor that needs an id (buffers, variables, edges, nodes,
// blocks and tasks).
package ids

import "sync/atomic"

// Source hands out unique, monotonically increasing ids.
type Source interface {
	Next() int
}

// Generator is a Source backed by an atomic counter, so it can be shared by goroutines
// building different parts of the same IR.
type Generator struct {
	counter atomic.Int64
}

var _ Source = (*Generator)(nil)

// New returns a Generator whose first id is 0.
func New() *Generator {
	return &Generator{}
}

// Next returns the next id.
func (g *Generator) Next() int {
	return int(g.counter.Add(1) - 1)
}

// Peek returns the id that the next call to Next will return, without consuming it.
func (g *Generator) Peek() int {
	return int(g.counter.Load())
}
