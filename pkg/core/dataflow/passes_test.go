// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

func TestAllocatePasses(t *testing.T) {
	gen := ids.New()
	gA := buffers.RowMajorGlobalTile(gen, "gA", 256, 256)
	sA := buffers.RowMajorSharedTile(gen, "sA", 64, 64)
	rA := buffers.RowMajorRegTile(gen, "rA", 16, 16)
	rC := buffers.RowMajorRegTile(gen, "rC", 16, 16)
	gC := buffers.RowMajorGlobalTile(gen, "gC", 256, 256)

	regBlock := NewBlock(gen, []*AttachedEdge{NewAttachedEdge(gen, sA, rA, nil)}, nil, buffers.LevelRegister,
		NewGraph().AddNodes(NewBufferNode(gen, rA), NewBufferNode(gen, rC)), BlockReduce)
	sharedBlock := NewBlock(gen,
		[]*AttachedEdge{NewAttachedEdge(gen, gA, sA, nil)},
		[]*AttachedEdge{NewAttachedEdge(gen, rC, gC, nil)},
		buffers.LevelShared,
		NewGraph().AddNodes(NewBufferNode(gen, sA), NewBlockNode(gen, regBlock)),
		BlockMap)
	g := NewGraph().AddNodes(NewBufferNode(gen, gA), NewBufferNode(gen, gC), NewBlockNode(gen, sharedBlock), NewBufferNode(gen, gA))

	assert.Equal(t,
		"GlobalgA gA;\n"+
			"GlobalgC gC;\n"+
			"SharedsA sA;\n"+
			"RegrA rA;\n"+
			"RegrC rC;\n",
		AllocateVars(g))

	// r2g stores need no object.
	assert.Equal(t,
		"G2SLoadergA_sA g2sgA_sA;\n"+
			"S2RLoadersA_rA s2rsA_rA;\n",
		AllocateEdges(g))

	assert.Equal(t, "S2RLoadersA_rA s2rsA_rA;\n", AllocateBlockEdges(regBlock))
	assert.Equal(t, []*buffers.Buffer{gA, sA, rC, gC, rA}, CollectBuffers(sharedBlock))

	// A top-level block also declares the buffers its own edges load from and store to.
	assert.Equal(t, "SharedsA sA;\nRegrA rA;\nRegrC rC;\n", AllocateBlockVars(regBlock))
	assert.Equal(t,
		"GlobalgA gA;\n"+
			"SharedsA sA;\n"+
			"RegrC rC;\n"+
			"GlobalgC gC;\n"+
			"RegrA rA;\n",
		AllocateBlockVars(sharedBlock))
}
