// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"k8s.io/klog/v2"
)

// Graph is a DAG of nodes ordered by structural edges.
//
// It is built with AddNodes and AddEdges, then Connect is called once, after which it is treated as
// immutable: TopoSort and Emit can be called any number of times.
type Graph struct {
	nodes     map[NodeId]*Node
	order     []NodeId
	edges     []*Edge
	connected bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[NodeId]*Node)}
}

// AddNodes adds nodes to the graph, keeping insertion order. Nodes already in the graph are ignored.
func (g *Graph) AddNodes(nodes ...*Node) *Graph {
	for _, node := range nodes {
		if _, found := g.nodes[node.id]; found {
			continue
		}
		g.nodes[node.id] = node
		g.order = append(g.order, node.id)
	}
	return g
}

// AddEdges adds structural edges. They are only registered on the nodes by Connect.
func (g *Graph) AddEdges(edges ...*Edge) *Graph {
	g.edges = append(g.edges, edges...)
	return g
}

// Node returns the node with the given id, or nil if it is not in the graph.
func (g *Graph) Node(id NodeId) *Node {
	return g.nodes[id]
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for ii, id := range g.order {
		nodes[ii] = g.nodes[id]
	}
	return nodes
}

// Edges returns the structural edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.order) }

// Connect registers every structural edge on its endpoints: in/out edges, predecessors, successors
// and in-degree.
//
// It must be called exactly once, after all nodes and edges are added: a second call counts every
// edge twice. It returns an InvalidGraph error, without changing any node, if an edge refers to a node
// that is not in the graph.
func (g *Graph) Connect() error {
	for _, edge := range g.edges {
		if g.nodes[edge.Src] == nil || g.nodes[edge.Dst] == nil {
			return errors.Wrapf(errkind.InvalidGraph, "edge #%d -> #%d refers to a node not in the graph", edge.Src, edge.Dst)
		}
	}
	if g.connected {
		klog.Warningf("dataflow.Graph.Connect() called more than once: in-degrees of %d edges counted again", len(g.edges))
	}
	for _, edge := range g.edges {
		src, dst := g.nodes[edge.Src], g.nodes[edge.Dst]
		src.outEdges = append(src.outEdges, edge)
		src.succs = append(src.succs, dst.id)
		dst.inEdges = append(dst.inEdges, edge)
		dst.preds = append(dst.preds, src.id)
		dst.inDegree++
	}
	g.connected = true
	return nil
}

// TopoSort returns the nodes in an order where every node comes after all its predecessors.
//
// It uses Kahn's algorithm: it repeatedly scans the nodes not yet scheduled, in insertion order, and
// schedules every one whose remaining in-degree is zero, decrementing the remaining in-degree of its
// successors. The result is deterministic.
//
// If a scan schedules nothing the graph has a cycle, and it returns a CyclicGraph error naming the
// strongly connected components involved. A graph with edges that was never connected returns an
// InvalidGraph error.
func (g *Graph) TopoSort() ([]*Node, error) {
	if len(g.edges) > 0 && !g.connected {
		return nil, errors.Wrapf(errkind.InvalidGraph, "%d edges were added but Connect was never called", len(g.edges))
	}
	remaining := make(map[NodeId]int, len(g.order))
	for _, id := range g.order {
		remaining[id] = g.nodes[id].inDegree
	}
	sorted := make([]*Node, 0, len(g.order))
	pending := slices.Clone(g.order)
	for len(pending) > 0 {
		next := pending[:0]
		progress := false
		for _, id := range pending {
			if remaining[id] != 0 {
				next = append(next, id)
				continue
			}
			node := g.nodes[id]
			sorted = append(sorted, node)
			progress = true
			for _, succ := range node.succs {
				remaining[succ]--
			}
		}
		if !progress {
			return nil, g.cycleError(next)
		}
		pending = next
	}
	if klog.V(2).Enabled() {
		names := make([]string, len(sorted))
		for ii, node := range sorted {
			names[ii] = node.Name()
		}
		klog.Infof("dataflow: scheduled %d nodes: %s", len(sorted), strings.Join(names, ", "))
	}
	return sorted, nil
}

// cycleError describes the cycles among the nodes that could not be scheduled.
func (g *Graph) cycleError(stuck []NodeId) error {
	inStuck := make(map[NodeId]bool, len(stuck))
	dg := simple.NewDirectedGraph()
	for _, id := range stuck {
		inStuck[id] = true
		dg.AddNode(simple.Node(id))
	}
	var cycles []string
	selfLoops := make(map[NodeId]bool)
	for _, edge := range g.edges {
		if !inStuck[edge.Src] || !inStuck[edge.Dst] {
			continue
		}
		if edge.Src == edge.Dst {
			if !selfLoops[edge.Src] {
				selfLoops[edge.Src] = true
				cycles = append(cycles, fmt.Sprintf("[%s]", g.nodes[edge.Src].Name()))
			}
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(edge.Src), simple.Node(edge.Dst)))
	}
	for _, component := range topo.TarjanSCC(dg) {
		if len(component) < 2 {
			continue
		}
		names := make([]string, len(component))
		for ii, n := range component {
			names[ii] = g.nodes[NodeId(n.ID())].Name()
		}
		slices.Sort(names)
		cycles = append(cycles, fmt.Sprintf("[%s]", strings.Join(names, " ")))
	}
	return errors.Wrapf(errkind.CyclicGraph, "%d of %d nodes cannot be scheduled, cycles: %s",
		len(stuck), len(g.order), strings.Join(cycles, ", "))
}

// Emit schedules the graph and concatenates the code of its nodes. Buffer nodes generate nothing.
// On error no code is returned.
func (g *Graph) Emit() (string, error) {
	sorted, err := g.TopoSort()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, node := range sorted {
		code, err := node.Emit()
		if err != nil {
			return "", errors.WithMessagef(err, "emitting %s", node.Name())
		}
		sb.WriteString(code)
	}
	return sb.String(), nil
}

// ReduceOutputs returns the outputs of the Reduce blocks directly in this graph, in insertion order.
// They are stored by the enclosing block, after its loop.
func (g *Graph) ReduceOutputs() []*AttachedEdge {
	var outputs []*AttachedEdge
	for _, id := range g.order {
		node := g.nodes[id]
		if node.nodeType == NodeTypeBlock && node.block.kind == BlockReduce {
			outputs = append(outputs, node.block.outputs...)
		}
	}
	return outputs
}
