// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package dataflow implements the graph part of the IR: nodes holding buffers, compute tasks or nested
// blocks, the structural edges that order them, the memory-movement edges (AttachedEdge) that cross a
// memory-hierarchy boundary, and the Block, one loop nest at one memory level.
//
// Emission flows top-down: a Block emits its loads, asks its subgraph to schedule and emit its nodes
// (which may be nested blocks), and emits its stores.
package dataflow

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// Task is implemented by everything that generates code for a node: compute tasks and blocks.
type Task interface {
	// Emit returns the generated code. It must be side-effect free and repeatable.
	Emit() (string, error)

	// Name is a stable, unique identity used for diagnostics.
	Name() string
}

// NodeId is the unique identifier of a Node.
type NodeId int

// NodeType tags the payload of a Node.
type NodeType int

//go:generate go tool enumer -type=NodeType -trimprefix=NodeType -output=gen_nodetype_enumer.go node.go

const (
	NodeTypeBuffer NodeType = iota
	NodeTypeTask
	NodeTypeBlock
)

// Node of a dataflow Graph. It holds exactly one of a Buffer, a Task or a Block.
//
// Predecessors and successors are kept as ids, resolved by the Graph that owns the node.
type Node struct {
	id       NodeId
	nodeType NodeType

	buffer *buffers.Buffer
	task   Task
	block  *Block

	inEdges, outEdges []*Edge
	preds, succs      []NodeId
	inDegree          int
}

// NewBufferNode creates a node that is a placeholder for buf. It emits no code.
func NewBufferNode(src ids.Source, buf *buffers.Buffer) *Node {
	if buf == nil {
		exceptions.Panicf("dataflow.NewBufferNode(nil)")
	}
	return &Node{id: NodeId(src.Next()), nodeType: NodeTypeBuffer, buffer: buf}
}

// NewTaskNode creates a node that runs a compute task.
func NewTaskNode(src ids.Source, task Task) *Node {
	if task == nil {
		exceptions.Panicf("dataflow.NewTaskNode(nil)")
	}
	return &Node{id: NodeId(src.Next()), nodeType: NodeTypeTask, task: task}
}

// NewBlockNode creates a node that emits a nested block.
func NewBlockNode(src ids.Source, block *Block) *Node {
	if block == nil {
		exceptions.Panicf("dataflow.NewBlockNode(nil)")
	}
	return &Node{id: NodeId(src.Next()), nodeType: NodeTypeBlock, block: block}
}

// Id of the node.
func (n *Node) Id() NodeId { return n.id }

// Type of the node's payload.
func (n *Node) Type() NodeType { return n.nodeType }

// Buffer held by the node. It panics if the node is not a buffer node.
func (n *Node) Buffer() *buffers.Buffer {
	n.assertType(NodeTypeBuffer)
	return n.buffer
}

// Task held by the node. It panics if the node is not a task node.
func (n *Node) Task() Task {
	n.assertType(NodeTypeTask)
	return n.task
}

// Block held by the node. It panics if the node is not a block node.
func (n *Node) Block() *Block {
	n.assertType(NodeTypeBlock)
	return n.block
}

func (n *Node) assertType(want NodeType) {
	if n.nodeType != want {
		exceptions.Panicf("node #%d (%s) is a %s node, not %s", n.id, n.Name(), n.nodeType, want)
	}
}

// Name of the payload: the buffer name for buffer nodes, the task or block name otherwise.
func (n *Node) Name() string {
	switch n.nodeType {
	case NodeTypeBuffer:
		return n.buffer.Name()
	case NodeTypeTask:
		return n.task.Name()
	case NodeTypeBlock:
		return n.block.Name()
	}
	exceptions.Panicf("node #%d has invalid type %d", n.id, n.nodeType)
	return ""
}

// Emit generates the code of the node's payload. Buffer nodes generate nothing.
func (n *Node) Emit() (string, error) {
	switch n.nodeType {
	case NodeTypeBuffer:
		return "", nil
	case NodeTypeTask:
		return n.task.Emit()
	case NodeTypeBlock:
		return n.block.Emit()
	}
	exceptions.Panicf("node #%d has invalid type %d", n.id, n.nodeType)
	return "", nil
}

// InDegree is the number of structural edges ending at this node, counted by Graph.Connect.
func (n *Node) InDegree() int { return n.inDegree }

// Predecessors returns the ids of the nodes with an edge to this one, in connection order.
func (n *Node) Predecessors() []NodeId { return n.preds }

// Successors returns the ids of the nodes this node has an edge to, in connection order.
func (n *Node) Successors() []NodeId { return n.succs }

// InEdges returns the structural edges ending at this node.
func (n *Node) InEdges() []*Edge { return n.inEdges }

// OutEdges returns the structural edges starting at this node.
func (n *Node) OutEdges() []*Edge { return n.outEdges }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("#%d %s(%s)", n.id, n.nodeType, n.Name())
}

// Edge is a structural edge: Dst must be scheduled after Src. It carries no access information.
type Edge struct {
	Src, Dst NodeId
}

// NewEdge creates a structural edge from src to dst.
func NewEdge(src, dst *Node) *Edge {
	return &Edge{Src: src.id, Dst: dst.id}
}
