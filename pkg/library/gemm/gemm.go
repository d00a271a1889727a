// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package gemm builds the IR of tiled GEMM kernels, C = A x B, at each level of the memory hierarchy.
//
// The register level block (BuildRegisterBlock) loads tiles of A and B from shared memory into
// registers and accumulates their product, the shared level block (BuildSharedBlock) loads tiles
// from global into shared memory around it, and BuildKernel wraps the whole into a kernel.
package gemm

import (
	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/access"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/core/tasks"
	"github.com/tiledtensor/thrillerflow/pkg/core/vars"
	"github.com/tiledtensor/thrillerflow/pkg/engine"
)

// Options define the tile sizes and loop trip counts of the kernel.
type Options struct {
	// RegTile, SharedTile and GlobalTile are the dimensions of the tiles at each level.
	RegTile, SharedTile, GlobalTile []int

	// RegIters is the number of register tiles accumulated per shared tile, SharedIters the number of
	// shared tiles per global tile.
	RegIters, SharedIters int
}

// DefaultOptions returns a 256x256 GEMM computed with 64x64 shared and register tiles.
func DefaultOptions() Options {
	return Options{
		RegTile:     []int{64, 64},
		SharedTile:  []int{64, 64},
		GlobalTile:  []int{256, 256},
		RegIters:    1,
		SharedIters: 4,
	}
}

// loopMap returns a single loop map over [0, iters) that indexes numBuffers one-dimensional accesses
// with the identity.
func loopMap(gen ids.Source, name string, iters, numBuffers int) *access.Map {
	ivar := vars.NewIterationVar(gen, name, vars.Fixed(0), vars.Fixed(iters))
	m := access.NewMap(1, []int{iters}).AddIterVar(ivar)
	for range numBuffers {
		m.AddMatrix(access.Matrix{{1}}).AddOffset(access.Offset{0})
	}
	return m
}

// BuildRegisterBlock returns the register level Reduce block: it loads sA and sB into register tiles,
// and accumulates their product into the register tile "acc", which is stored into sC by the
// enclosing block.
func BuildRegisterBlock(gen ids.Source, sA, sB, sC *buffers.Buffer, opts Options) (*dataflow.Block, error) {
	rA := buffers.RowMajorRegTile(gen, "rA", opts.RegTile...)
	rB := buffers.ColumnMajorRegTile(gen, "rB", opts.RegTile...)
	acc := buffers.RowMajorRegTile(gen, "acc", opts.RegTile...)

	m := loopMap(gen, "i", opts.RegIters, 2)
	inputs := []*dataflow.AttachedEdge{
		dataflow.NewAttachedEdge(gen, sA, rA, m),
		dataflow.NewAttachedEdge(gen, sB, rB, m),
	}
	outputs := []*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, acc, sC, nil)}

	rANode := dataflow.NewBufferNode(gen, rA)
	rBNode := dataflow.NewBufferNode(gen, rB)
	accNode := dataflow.NewBufferNode(gen, acc)
	gemmNode := dataflow.NewTaskNode(gen, tasks.NewGemm(gen, []*dataflow.Node{rANode, rBNode}, accNode, m))
	subgraph := dataflow.NewGraph().
		AddNodes(rANode, rBNode, accNode, gemmNode).
		AddEdges(
			dataflow.NewEdge(rANode, gemmNode),
			dataflow.NewEdge(rBNode, gemmNode),
			dataflow.NewEdge(gemmNode, accNode))
	if err := subgraph.Connect(); err != nil {
		return nil, err
	}

	block := dataflow.NewBlock(gen, inputs, outputs, buffers.LevelRegister, subgraph, dataflow.BlockReduce)
	if err := block.MergeAccessMap(); err != nil {
		return nil, errors.WithMessage(err, "register level GEMM block")
	}
	block.MergeLoops()
	return block, nil
}

// BuildSharedBlock returns the shared level Map block: it loads gA and gB into shared tiles, runs the
// register level block, and stores the result from sC into gC.
func BuildSharedBlock(gen ids.Source, gA, gB, gC *buffers.Buffer, opts Options) (*dataflow.Block, error) {
	sA := buffers.RowMajorSharedTile(gen, "sA", opts.SharedTile...)
	sB := buffers.ColumnMajorSharedTile(gen, "sB", opts.SharedTile...)
	sC := buffers.RowMajorSharedTile(gen, "sC", opts.SharedTile...)

	regBlock, err := BuildRegisterBlock(gen, sA, sB, sC, opts)
	if err != nil {
		return nil, err
	}

	m := loopMap(gen, "j", opts.SharedIters, 2)
	inputs := []*dataflow.AttachedEdge{
		dataflow.NewAttachedEdge(gen, gA, sA, m),
		dataflow.NewAttachedEdge(gen, gB, sB, m),
	}
	outputs := []*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, sC, gC, nil)}

	sANode := dataflow.NewBufferNode(gen, sA)
	sBNode := dataflow.NewBufferNode(gen, sB)
	sCNode := dataflow.NewBufferNode(gen, sC)
	regNode := dataflow.NewBlockNode(gen, regBlock)
	subgraph := dataflow.NewGraph().
		AddNodes(sANode, sBNode, sCNode, regNode).
		AddEdges(
			dataflow.NewEdge(sANode, regNode),
			dataflow.NewEdge(sBNode, regNode),
			dataflow.NewEdge(regNode, sCNode))
	if err := subgraph.Connect(); err != nil {
		return nil, err
	}

	block := dataflow.NewBlock(gen, inputs, outputs, buffers.LevelShared, subgraph, dataflow.BlockMap)
	if err := block.MergeAccessMap(); err != nil {
		return nil, errors.WithMessage(err, "shared level GEMM block")
	}
	block.MergeLoops()
	return block, nil
}

// BuildKernel returns the engine generating the whole GEMM kernel, with inputs "A", "B" and output "C".
// The top-level block runs at the global level and has no memory movement of its own.
func BuildKernel(gen ids.Source, opts Options, config engine.Config) (*engine.Engine, error) {
	gA := buffers.RowMajorGlobalTile(gen, "gA", opts.GlobalTile...)
	gB := buffers.ColumnMajorGlobalTile(gen, "gB", opts.GlobalTile...)
	gC := buffers.RowMajorGlobalTile(gen, "gC", opts.GlobalTile...)
	sharedBlock, err := BuildSharedBlock(gen, gA, gB, gC, opts)
	if err != nil {
		return nil, err
	}
	subgraph := dataflow.NewGraph().AddNodes(
		dataflow.NewBufferNode(gen, gA),
		dataflow.NewBufferNode(gen, gB),
		dataflow.NewBufferNode(gen, gC),
		dataflow.NewBlockNode(gen, sharedBlock))
	if err := subgraph.Connect(); err != nil {
		return nil, err
	}
	top := dataflow.NewBlock(gen, nil, nil, buffers.LevelGlobal, subgraph, dataflow.BlockMap)

	rows, cols := opts.GlobalTile[0], opts.GlobalTile[len(opts.GlobalTile)-1]
	return engine.New(top, config).
		AddInputs(vars.NewRegularVar(gen, "A"), vars.NewRegularVar(gen, "B")).
		AddOutputs(vars.NewRegularVar(gen, "C")).
		AddInputLayouts(
			engine.BlockLayout{DimX: rows * cols},
			engine.BlockLayout{DimY: rows * cols}), nil
}
