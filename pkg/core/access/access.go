// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package access implements the polyhedral-style memory access model of the IR.
//
// A Map binds a loop nest (a list of IterationVar, outermost first) to the way each participating
// buffer is indexed: one Matrix and one Offset per buffer. Row r of a buffer's Matrix holds the
// coefficient of each iteration variable in the index expression of the buffer's dimension r,
// and entry r of its Offset is added afterwards:
//
//	index[r] = sum_c matrix[r][c] * ivars[c] + offset[r]
//
// Maps are built once (AddIterVar, AddMatrix, AddOffset) and then shared, read-only, by every edge
// and task of the loop nest.
package access

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/vars"
)

// IndentWidth is the number of spaces added per loop nesting level in generated code.
const IndentWidth = 4

// Matrix of access coefficients: one row per accessed dimension, one column per iteration variable.
type Matrix [][]int

// Offset added to each accessed dimension, one entry per row of the corresponding Matrix.
type Offset []int

// Map is a multi-dimensional access pattern. See package documentation.
type Map struct {
	loopDepth  int
	accessDims []int
	matrices   []Matrix
	offsets    []Offset
	ivars      []*vars.IterationVar
}

// NewMap creates an empty access map for a loop nest of the given depth.
// accessDims is informational: the size of each loop dimension.
func NewMap(loopDepth int, accessDims []int) *Map {
	return &Map{loopDepth: loopDepth, accessDims: slices.Clone(accessDims)}
}

// AddIterVar appends one loop level, inside the previously added ones.
func (m *Map) AddIterVar(ivar *vars.IterationVar) *Map {
	m.ivars = append(m.ivars, ivar)
	return m
}

// AddIterVars appends several loop levels, outermost first.
func (m *Map) AddIterVars(ivars ...*vars.IterationVar) *Map {
	m.ivars = append(m.ivars, ivars...)
	return m
}

// AddMatrix appends the access matrix of the next buffer. Order matters: it must match the
// order in which the consumers (edges, tasks) read the buffers.
func (m *Map) AddMatrix(matrix Matrix) *Map {
	m.matrices = append(m.matrices, matrix)
	return m
}

// AddMatrices appends several access matrices, see AddMatrix.
func (m *Map) AddMatrices(matrices ...Matrix) *Map {
	m.matrices = append(m.matrices, matrices...)
	return m
}

// AddOffset appends the offset of the next buffer, parallel to AddMatrix.
func (m *Map) AddOffset(offset Offset) *Map {
	m.offsets = append(m.offsets, offset)
	return m
}

// AddOffsets appends several offsets, see AddOffset.
func (m *Map) AddOffsets(offsets ...Offset) *Map {
	m.offsets = append(m.offsets, offsets...)
	return m
}

// LoopDepth is the declared number of nested loops.
func (m *Map) LoopDepth() int { return m.loopDepth }

// AccessDims returns the informational loop dimension sizes.
func (m *Map) AccessDims() []int { return m.accessDims }

// Matrices returns the access matrices, one per buffer.
func (m *Map) Matrices() []Matrix { return m.matrices }

// Offsets returns the access offsets, parallel to Matrices.
func (m *Map) Offsets() []Offset { return m.offsets }

// IterVars returns the loop indices, outermost first.
func (m *Map) IterVars() []*vars.IterationVar { return m.ivars }

// CheckLoops returns a LoopMisMatch error if the declared loop depth differs from the number of
// iteration variables.
func (m *Map) CheckLoops() error {
	if m.loopDepth != len(m.ivars) {
		return errors.Wrapf(errkind.LoopMisMatch, "access map declares loop depth %d but has %d iteration variables",
			m.loopDepth, len(m.ivars))
	}
	return nil
}

// SameLoops returns whether both maps describe the same loop nest: equal loop depth and the
// same iteration variables (by id) in the same order. It is coarser than Equal.
func (m *Map) SameLoops(other *Map) bool {
	if m.loopDepth != other.loopDepth || len(m.ivars) != len(other.ivars) {
		return false
	}
	for ii, ivar := range m.ivars {
		if ivar.Id() != other.ivars[ii].Id() {
			return false
		}
	}
	return true
}

// Equal returns whether both maps are structurally identical: loop nest (see SameLoops),
// access dimensions, matrices and offsets.
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || !m.SameLoops(other) || !slices.Equal(m.accessDims, other.accessDims) {
		return false
	}
	if !slices.EqualFunc(m.matrices, other.matrices, func(a, b Matrix) bool {
		return slices.EqualFunc(a, b, slices.Equal)
	}) {
		return false
	}
	return slices.EqualFunc(m.offsets, other.offsets, func(a, b Offset) bool { return slices.Equal(a, b) })
}

// GenLoopAccess wraps body in the loop nest of the map: one `for` per iteration variable, in
// declaration order (the first added is the outermost), with every line of body re-indented by
// IndentWidth spaces per level.
//
// It returns a LoopMisMatch error, and no text, if the loop depth doesn't match the number of
// iteration variables.
func (m *Map) GenLoopAccess(body string) (string, error) {
	if err := m.CheckLoops(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for level, ivar := range m.ivars {
		lower, upper := ivar.Domain()
		name := ivar.Name()
		fmt.Fprintf(&sb, "%sfor(int %s = %s; %s < %s; %s++){\n", indent(level), name, lower, name, upper, name)
	}
	writeIndented(&sb, body, len(m.ivars))
	for level := len(m.ivars) - 1; level >= 0; level-- {
		sb.WriteString(indent(level))
		sb.WriteString("}\n")
	}
	return sb.String(), nil
}

// EmitAccess returns, for the buffer at bufferIndex, one index expression per accessed dimension.
//
// Each non-zero coefficient c of iteration variable v contributes a "c * v" term; terms are joined
// with " + " and followed by " + offset" if the offset is non-zero. Zero coefficients are omitted: a
// row of zeros yields only its offset, or the empty string if the offset is also zero. Callers
// must handle degenerate indices.
//
// No bounds checking against the buffer shape is done.
func (m *Map) EmitAccess(bufferIndex int) ([]string, error) {
	matrix, offset, err := m.Buffer(bufferIndex)
	if err != nil {
		return nil, err
	}
	exprs := make([]string, len(matrix))
	for row, coefs := range matrix {
		terms := make([]string, 0, len(coefs))
		for col, coef := range coefs {
			if coef == 0 {
				continue
			}
			terms = append(terms, fmt.Sprintf("%d * %s", coef, m.ivars[col].Name()))
		}
		expr := strings.Join(terms, " + ")
		if offset[row] != 0 {
			if expr == "" {
				expr = fmt.Sprintf("%d", offset[row])
			} else {
				expr = fmt.Sprintf("%s + %d", expr, offset[row])
			}
		}
		exprs[row] = expr
	}
	return exprs, nil
}

// Buffer returns the validated matrix and offset of the buffer at bufferIndex.
//
// It returns an InvalidAccessPattern error if there is no such buffer, if its offset doesn't have one
// entry per matrix row, if a coefficient or offset is negative, or if a non-zero coefficient refers to
// an iteration variable that doesn't exist.
func (m *Map) Buffer(bufferIndex int) (Matrix, Offset, error) {
	if bufferIndex < 0 || bufferIndex >= len(m.matrices) {
		return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern, "access map has %d matrices, buffer index %d out of range",
			len(m.matrices), bufferIndex)
	}
	if bufferIndex >= len(m.offsets) {
		return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern, "access map has %d offsets, missing offset for buffer %d",
			len(m.offsets), bufferIndex)
	}
	matrix, offset := m.matrices[bufferIndex], m.offsets[bufferIndex]
	if len(offset) != len(matrix) {
		return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern, "buffer %d: matrix has %d rows but offset has %d entries",
			bufferIndex, len(matrix), len(offset))
	}
	for row, coefs := range matrix {
		if offset[row] < 0 {
			return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern, "buffer %d: negative offset %d in row %d",
				bufferIndex, offset[row], row)
		}
		for col, coef := range coefs {
			if coef < 0 {
				return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern, "buffer %d: negative coefficient %d at (%d, %d)",
					bufferIndex, coef, row, col)
			}
			if coef != 0 && col >= len(m.ivars) {
				return nil, nil, errors.Wrapf(errkind.InvalidAccessPattern,
					"buffer %d: coefficient at (%d, %d) refers to a missing iteration variable (only %d)",
					bufferIndex, row, col, len(m.ivars))
			}
		}
	}
	return matrix, offset, nil
}

// String implements fmt.Stringer.
func (m *Map) String() string {
	names := make([]string, len(m.ivars))
	for ii, ivar := range m.ivars {
		names[ii] = ivar.Name()
	}
	return fmt.Sprintf("AccessMap(depth=%d, ivars=[%s], matrices=%v, offsets=%v)",
		m.loopDepth, strings.Join(names, ", "), m.matrices, m.offsets)
}

func indent(level int) string {
	return strings.Repeat(" ", level*IndentWidth)
}

// writeIndented writes each line of text prefixed by the indentation of the given level.
// Empty lines are kept empty.
func writeIndented(sb *strings.Builder, text string, level int) {
	if text == "" {
		return
	}
	prefix := indent(level)
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
}

// Indent returns text with every non-empty line prefixed by the indentation of the given level.
func Indent(text string, level int) string {
	var sb strings.Builder
	writeIndented(&sb, text, level)
	return sb.String()
}
