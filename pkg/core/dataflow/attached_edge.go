// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/access"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// AttachedEdge is a load or store of a tile across a memory-hierarchy boundary, from buffer Src to
// buffer Dst, optionally governed by an access map.
//
// The access map's first matrix indexes Src and, if present, its second matrix indexes Dst.
type AttachedEdge struct {
	id       int
	src, dst *buffers.Buffer
	access   *access.Map
}

// NewAttachedEdge creates an edge moving srcBuf into dstBuf. m may be nil for edges that move whole
// tiles without a loop.
func NewAttachedEdge(src ids.Source, srcBuf, dstBuf *buffers.Buffer, m *access.Map) *AttachedEdge {
	return &AttachedEdge{id: src.Next(), src: srcBuf, dst: dstBuf, access: m}
}

// Id of the edge.
func (e *AttachedEdge) Id() int { return e.id }

// Src buffer.
func (e *AttachedEdge) Src() *buffers.Buffer { return e.src }

// Dst buffer.
func (e *AttachedEdge) Dst() *buffers.Buffer { return e.dst }

// Access map, or nil.
func (e *AttachedEdge) Access() *access.Map { return e.access }

// Name returns "<src>_<dst>", the suffix used by per-edge declarations.
func (e *AttachedEdge) Name() string {
	return fmt.Sprintf("%s_%s", e.src.Name(), e.dst.Name())
}

// String implements fmt.Stringer.
func (e *AttachedEdge) String() string {
	return fmt.Sprintf("AttachedEdge#%d(%s -> %s)", e.id, e.src.Name(), e.dst.Name())
}

// loops returns the loop depth and the iteration variable ids of the edge. Edges without an access
// map are at depth 0.
func (e *AttachedEdge) loops() (depth int, ivarIds []int) {
	if e.access == nil {
		return 0, nil
	}
	for _, ivar := range e.access.IterVars() {
		ivarIds = append(ivarIds, ivar.Id())
	}
	return e.access.LoopDepth(), ivarIds
}

// LoopEqual returns whether both edges iterate over the same loop nest: equal loop depth and the
// same iteration variables, by id, in the same order. Matrices and offsets are not compared.
func (e *AttachedEdge) LoopEqual(other *AttachedEdge) bool {
	depth, ivarIds := e.loops()
	otherDepth, otherIvarIds := other.loops()
	if depth != otherDepth || len(ivarIds) != len(otherIvarIds) {
		return false
	}
	for ii, id := range ivarIds {
		if id != otherIvarIds[ii] {
			return false
		}
	}
	return true
}

// EmitSourceAccess returns the index expressions of the source buffer.
func (e *AttachedEdge) EmitSourceAccess() ([]string, error) {
	return e.emitAccess(0)
}

// EmitTargetAccess returns the index expressions of the destination buffer.
func (e *AttachedEdge) EmitTargetAccess() ([]string, error) {
	return e.emitAccess(1)
}

func (e *AttachedEdge) emitAccess(bufferIndex int) ([]string, error) {
	if e.access == nil {
		return nil, errors.Wrapf(errkind.MissingAccessMap, "edge %s has no access map", e.Name())
	}
	exprs, err := e.access.EmitAccess(bufferIndex)
	if err != nil {
		return nil, errors.WithMessagef(err, "edge %s", e.Name())
	}
	return exprs, nil
}
