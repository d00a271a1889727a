// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"k8s.io/klog/v2"
)

// LoopGroup is a set of loop-equal attached edges (see AttachedEdge.LoopEqual), which could share a
// single loop.
type LoopGroup struct {
	Edges []*AttachedEdge
}

// Representative is the first edge of the group, against which new edges are compared.
func (lg LoopGroup) Representative() *AttachedEdge {
	return lg.Edges[0]
}

// MergeLoops partitions the block's inputs into groups of loop-equal edges: each input joins the first
// group whose representative it is loop-equal to, or starts a new group. Inputs keep their relative order
// inside each group.
//
// It generates no code. The result is also stored, see LoopGroups.
func (b *Block) MergeLoops() []LoopGroup {
	var groups []LoopGroup
	for _, input := range b.inputs {
		joined := false
		for ii := range groups {
			if groups[ii].Representative().LoopEqual(input) {
				groups[ii].Edges = append(groups[ii].Edges, input)
				joined = true
				break
			}
		}
		if !joined {
			groups = append(groups, LoopGroup{Edges: []*AttachedEdge{input}})
		}
	}
	b.loopGroups = groups
	klog.V(2).Infof("%s: %d inputs in %d loop groups", b.Name(), len(b.inputs), len(groups))
	return groups
}
