// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package tasks implements the compute tasks, terminal nodes of a dataflow graph that generate one
// instruction from their operands' index expressions.
package tasks

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/access"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// GemmNamespace qualifies the generated gemm call.
const GemmNamespace = "cute"

// Gemm computes C += A x B on register tiles, where A and B are the buffers of its two predecessor
// nodes and C is the buffer of its successor node.
//
// The access map holds one matrix and offset per operand, in the order A, B, C.
type Gemm struct {
	id     int
	prevs  []*dataflow.Node
	next   *dataflow.Node
	access *access.Map
}

var _ dataflow.Task = (*Gemm)(nil)

// NewGemm creates a Gemm task. The operand nodes are only checked by Emit.
func NewGemm(src ids.Source, prevs []*dataflow.Node, next *dataflow.Node, m *access.Map) *Gemm {
	return &Gemm{id: src.Next(), prevs: prevs, next: next, access: m}
}

// Name implements dataflow.Task.
func (g *Gemm) Name() string { return fmt.Sprintf("Gemm_%d", g.id) }

// Emit implements dataflow.Task. It generates a single line:
//
//	cute::gemm(rA[1 * i + 0], rB[1 * i + 0], acc);
//
// Each non-zero coefficient c of iteration variable v in row j of operand k's matrix yields an index
// "[c * v + offset]", where offset is entry j of operand k's offset.
func (g *Gemm) Emit() (string, error) {
	if len(g.prevs) != 2 {
		return "", errors.Wrapf(errkind.WrongInputsNum, "%s requires 2 inputs, got %d", g.Name(), len(g.prevs))
	}
	for ii, prev := range g.prevs {
		if prev == nil {
			return "", errors.Wrapf(errkind.WrongInputsNum, "%s: input #%d is nil", g.Name(), ii)
		}
	}
	if g.next == nil {
		return "", errors.Wrapf(errkind.InvalidGraph, "%s: output node is nil", g.Name())
	}
	if g.access == nil {
		return "", errors.Wrapf(errkind.MissingAccessMap, "%s", g.Name())
	}
	indices, err := g.operandIndices()
	if err != nil {
		return "", err
	}
	operands := []string{g.prevs[0].Name(), g.prevs[1].Name(), g.next.Name()}
	for ii := range operands {
		operands[ii] += indices[ii]
	}
	return fmt.Sprintf("%s::gemm(%s);\n", GemmNamespace, strings.Join(operands, ", ")), nil
}

// operandIndices returns the bracketed index expressions of A, B and C.
func (g *Gemm) operandIndices() ([3]string, error) {
	var indices [3]string
	matrices, offsets, ivars := g.access.Matrices(), g.access.Offsets(), g.access.IterVars()
	if len(matrices) > len(indices) {
		return indices, errors.Wrapf(errkind.InvalidAccessPattern, "%s: %d access matrices for 3 operands", g.Name(), len(matrices))
	}
	for operand, matrix := range matrices {
		var sb strings.Builder
		for row, coefs := range matrix {
			if operand >= len(offsets) || row >= len(offsets[operand]) {
				return indices, errors.Wrapf(errkind.InvalidAccessPattern, "%s: missing offset for row %d of operand %d",
					g.Name(), row, operand)
			}
			for col, coef := range coefs {
				if coef == 0 {
					continue
				}
				if col >= len(ivars) {
					return indices, errors.Wrapf(errkind.InvalidAccessPattern,
						"%s: operand %d refers to iteration variable #%d, only %d defined", g.Name(), operand, col, len(ivars))
				}
				fmt.Fprintf(&sb, "[%d * %s + %d]", coef, ivars[col].Name(), offsets[operand][row])
			}
		}
		indices[operand] = sb.String()
	}
	return indices, nil
}
