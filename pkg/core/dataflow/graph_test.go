// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// fakeTask emits a fixed code or error.
type fakeTask struct {
	name, code string
	err        error
}

func (t *fakeTask) Emit() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return t.code, nil
}

func (t *fakeTask) Name() string { return t.name }

func newFakeTaskNode(gen ids.Source, name string) *Node {
	return NewTaskNode(gen, &fakeTask{name: name, code: name + "();\n"})
}

func TestNode(t *testing.T) {
	gen := ids.New()
	buf := buffers.RowMajorRegTile(gen, "rA", 16, 16)
	bufNode := NewBufferNode(gen, buf)
	assert.Equal(t, NodeTypeBuffer, bufNode.Type())
	assert.Equal(t, "rA", bufNode.Name())
	assert.Same(t, buf, bufNode.Buffer())
	code, err := bufNode.Emit()
	require.NoError(t, err)
	assert.Empty(t, code)
	require.Panics(t, func() { _ = bufNode.Task() })
	require.Panics(t, func() { _ = bufNode.Block() })

	taskNode := newFakeTaskNode(gen, "mma")
	assert.Equal(t, NodeTypeTask, taskNode.Type())
	assert.Equal(t, "mma", taskNode.Name())
	assert.Equal(t, "Task", taskNode.Type().String())
	code, err = taskNode.Emit()
	require.NoError(t, err)
	assert.Equal(t, "mma();\n", code)

	block := NewBlock(gen, nil, nil, buffers.LevelRegister, nil, BlockMap)
	blockNode := NewBlockNode(gen, block)
	assert.Equal(t, block.Name(), blockNode.Name())
	assert.Equal(t, fmt.Sprintf("block_%d", block.Id()), block.Name())
	assert.Same(t, block, blockNode.Block())
}

func TestConnect(t *testing.T) {
	gen := ids.New()
	a, b, c := newFakeTaskNode(gen, "a"), newFakeTaskNode(gen, "b"), newFakeTaskNode(gen, "c")
	g := NewGraph().AddNodes(a, b, c).AddEdges(NewEdge(a, c), NewEdge(b, c))
	require.NoError(t, g.Connect())
	assert.Equal(t, 2, c.InDegree())
	assert.Equal(t, []NodeId{a.Id(), b.Id()}, c.Predecessors())
	assert.Equal(t, []NodeId{c.Id()}, a.Successors())
	assert.Len(t, c.InEdges(), 2)
	assert.Len(t, b.OutEdges(), 1)

	// Unknown endpoint.
	d := newFakeTaskNode(gen, "d")
	g2 := NewGraph().AddNodes(a).AddEdges(NewEdge(a, d))
	require.ErrorIs(t, g2.Connect(), errkind.InvalidGraph)
}

func TestTopoSortNotConnected(t *testing.T) {
	gen := ids.New()
	a, b := newFakeTaskNode(gen, "a"), newFakeTaskNode(gen, "b")
	g := NewGraph().AddNodes(b, a).AddEdges(NewEdge(a, b))
	_, err := g.TopoSort()
	require.ErrorIs(t, err, errkind.InvalidGraph)
	code, err := g.Emit()
	require.ErrorIs(t, err, errkind.InvalidGraph)
	assert.Empty(t, code)

	// Without edges there is nothing to connect.
	sorted, err := NewGraph().AddNodes(b, a).TopoSort()
	require.NoError(t, err)
	assert.Equal(t, []*Node{b, a}, sorted)
}

func TestTopoSort(t *testing.T) {
	gen := ids.New()
	// Diamond, inserted in reverse order.
	a, b, c, d := newFakeTaskNode(gen, "a"), newFakeTaskNode(gen, "b"), newFakeTaskNode(gen, "c"), newFakeTaskNode(gen, "d")
	g := NewGraph().AddNodes(d, c, b, a).
		AddEdges(NewEdge(a, b), NewEdge(a, c), NewEdge(b, d), NewEdge(c, d))
	require.NoError(t, g.Connect())
	sorted, err := g.TopoSort()
	require.NoError(t, err)
	assert.Equal(t, []*Node{a, c, b, d}, sorted)

	// Deterministic and repeatable.
	again, err := g.TopoSort()
	require.NoError(t, err)
	assert.Equal(t, sorted, again)

	code, err := g.Emit()
	require.NoError(t, err)
	assert.Equal(t, "a();\nc();\nb();\nd();\n", code)
}

func TestTopoSortRandomDAG(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for trial := range 20 {
		gen := ids.New()
		numNodes := 1 + rng.IntN(30)
		nodes := make([]*Node, numNodes)
		for ii := range nodes {
			nodes[ii] = newFakeTaskNode(gen, fmt.Sprintf("n%d", ii))
		}
		g := NewGraph()
		for _, ii := range rng.Perm(numNodes) {
			g.AddNodes(nodes[ii])
		}
		// Edges only go from lower to higher index, so the graph is acyclic.
		for from := range numNodes {
			for to := from + 1; to < numNodes; to++ {
				if rng.IntN(4) == 0 {
					g.AddEdges(NewEdge(nodes[from], nodes[to]))
				}
			}
		}
		require.NoError(t, g.Connect())
		sorted, err := g.TopoSort()
		require.NoError(t, err)
		require.Len(t, sorted, numNodes, "trial %d", trial)

		position := make(map[NodeId]int, numNodes)
		for pos, node := range sorted {
			_, seen := position[node.Id()]
			require.False(t, seen, "trial %d: node %s scheduled twice", trial, node)
			position[node.Id()] = pos
		}
		for _, edge := range g.Edges() {
			require.Less(t, position[edge.Src], position[edge.Dst], "trial %d: edge %d -> %d", trial, edge.Src, edge.Dst)
		}
	}
}

func TestTopoSortCycle(t *testing.T) {
	gen := ids.New()
	a, b, c, d := newFakeTaskNode(gen, "a"), newFakeTaskNode(gen, "b"), newFakeTaskNode(gen, "c"), newFakeTaskNode(gen, "d")
	g := NewGraph().AddNodes(d, a, b, c).
		AddEdges(NewEdge(d, a), NewEdge(a, b), NewEdge(b, c), NewEdge(c, a))
	require.NoError(t, g.Connect())
	sorted, err := g.TopoSort()
	require.ErrorIs(t, err, errkind.CyclicGraph)
	assert.Nil(t, sorted)
	assert.Contains(t, err.Error(), "[a b c]")

	code, err := g.Emit()
	require.ErrorIs(t, err, errkind.CyclicGraph)
	assert.Empty(t, code)

	// Self loop.
	e := newFakeTaskNode(gen, "e")
	g = NewGraph().AddNodes(e).AddEdges(NewEdge(e, e))
	require.NoError(t, g.Connect())
	_, err = g.TopoSort()
	require.ErrorIs(t, err, errkind.CyclicGraph)
	assert.Contains(t, err.Error(), "[e]")
}

func TestGraphEmitError(t *testing.T) {
	gen := ids.New()
	ok := newFakeTaskNode(gen, "ok")
	bad := NewTaskNode(gen, &fakeTask{name: "bad", err: errors.Wrap(errkind.WrongInputsNum, "bad task")})
	g := NewGraph().AddNodes(ok, bad).AddEdges(NewEdge(ok, bad))
	require.NoError(t, g.Connect())
	code, err := g.Emit()
	require.ErrorIs(t, err, errkind.WrongInputsNum)
	assert.Contains(t, err.Error(), "emitting bad")
	assert.Empty(t, code)
}

func TestReduceOutputs(t *testing.T) {
	gen := ids.New()
	rC := buffers.RowMajorRegTile(gen, "rC", 16, 16)
	gC := buffers.RowMajorGlobalTile(gen, "gC", 64, 64)
	out := NewAttachedEdge(gen, rC, gC, nil)
	reduce := NewBlock(gen, nil, []*AttachedEdge{out}, buffers.LevelRegister, nil, BlockReduce)
	mapBlock := NewBlock(gen, nil, []*AttachedEdge{NewAttachedEdge(gen, rC, gC, nil)}, buffers.LevelRegister, nil, BlockMap)
	g := NewGraph().AddNodes(NewBlockNode(gen, mapBlock), NewBlockNode(gen, reduce), NewBufferNode(gen, rC))
	assert.Equal(t, []*AttachedEdge{out}, g.ReduceOutputs())
	assert.Empty(t, NewGraph().ReduceOutputs())
}
