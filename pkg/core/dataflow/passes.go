// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"fmt"
	"strings"

	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/kernels"
)

// AllocateVars returns the declarations of every buffer in the graph and, recursively, in the
// subgraphs of its blocks, e.g. "GlobalgA gA;". Each buffer is declared once, in first-visit order.
func AllocateVars(g *Graph) string {
	var sb strings.Builder
	allocateVars(g, &sb, make(map[int]bool))
	return sb.String()
}

func allocateVars(g *Graph, sb *strings.Builder, declared map[int]bool) {
	for _, node := range g.Nodes() {
		switch node.nodeType {
		case NodeTypeBuffer:
			buf := node.buffer
			if declared[buf.Id()] {
				continue
			}
			declared[buf.Id()] = true
			fmt.Fprintf(sb, "%s%s %s;\n", declPrefix(buf.Type()), buf.Name(), buf.Name())
		case NodeTypeBlock:
			allocateVars(node.block.subgraph, sb, declared)
		}
	}
}

// AllocateBlockVars is AllocateVars for a top-level block that isn't part of any graph: it also
// declares the buffers at both ends of the block's own edges, see CollectBuffers.
func AllocateBlockVars(b *Block) string {
	var sb strings.Builder
	for _, buf := range CollectBuffers(b) {
		fmt.Fprintf(&sb, "%s%s %s;\n", declPrefix(buf.Type()), buf.Name(), buf.Name())
	}
	return sb.String()
}

func declPrefix(t buffers.BufType) string {
	switch t {
	case buffers.GlobalTile:
		return "Global"
	case buffers.SharedTile:
		return "Shared"
	default:
		return "Reg"
	}
}

// edgeDecls are the loader/storer object types declared for each kind of attached edge, with the
// prefix of the variable name.
var edgeDecls = map[kernels.Transfer]struct{ typ, prefix string }{
	{Src: buffers.GlobalTile, Dst: buffers.SharedTile}: {"G2SLoader", "g2s"},
	{Src: buffers.SharedTile, Dst: buffers.RegTile}:    {"S2RLoader", "s2r"},
	{Src: buffers.RegTile, Dst: buffers.SharedTile}:    {"R2SStorer", "r2s"},
	{Src: buffers.SharedTile, Dst: buffers.GlobalTile}: {"S2GStorer", "s2g"},
}

// AllocateEdges returns the declarations of the loader and storer objects of every block's inputs and
// outputs, recursively, e.g. "G2SLoadergA_sA g2sgA_sA;". Edges whose transfer needs no object are
// skipped.
func AllocateEdges(g *Graph) string {
	var sb strings.Builder
	allocateEdges(g, &sb)
	return sb.String()
}

// AllocateBlockEdges is AllocateEdges for a top-level block that isn't part of any graph.
func AllocateBlockEdges(b *Block) string {
	var sb strings.Builder
	allocateBlockEdges(b, &sb)
	return sb.String()
}

func allocateEdges(g *Graph, sb *strings.Builder) {
	for _, node := range g.Nodes() {
		if node.nodeType == NodeTypeBlock {
			allocateBlockEdges(node.block, sb)
		}
	}
}

func allocateBlockEdges(b *Block, sb *strings.Builder) {
	for _, edges := range [][]*AttachedEdge{b.inputs, b.outputs} {
		for _, edge := range edges {
			decl, found := edgeDecls[kernels.Transfer{Src: edge.src.Type(), Dst: edge.dst.Type()}]
			if !found {
				continue
			}
			fmt.Fprintf(sb, "%s%s %s%s;\n", decl.typ, edge.Name(), decl.prefix, edge.Name())
		}
	}
	allocateEdges(b.subgraph, sb)
}

// CollectBuffers returns every buffer referenced by the block, its attached edges and, recursively, its
// subgraph, each once, in first-visit order.
func CollectBuffers(b *Block) []*buffers.Buffer {
	var bufs []*buffers.Buffer
	seen := make(map[int]bool)
	add := func(buf *buffers.Buffer) {
		if !seen[buf.Id()] {
			seen[buf.Id()] = true
			bufs = append(bufs, buf)
		}
	}
	var visit func(b *Block)
	visit = func(b *Block) {
		for _, edges := range [][]*AttachedEdge{b.inputs, b.outputs} {
			for _, edge := range edges {
				add(edge.src)
				add(edge.dst)
			}
		}
		for _, node := range b.subgraph.Nodes() {
			switch node.nodeType {
			case NodeTypeBuffer:
				add(node.buffer)
			case NodeTypeBlock:
				visit(node.block)
			}
		}
	}
	visit(b)
	return bufs
}
