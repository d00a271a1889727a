// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package dataflow

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/access"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/core/kernels"
	"k8s.io/klog/v2"
)

// BlockType defines how a block's outputs are finalized.
type BlockType int

//go:generate go tool enumer -type=BlockType -trimprefix=Block -output=gen_blocktype_enumer.go block.go

const (
	// BlockMap blocks store their own outputs after their loop.
	BlockMap BlockType = iota

	// BlockReduce blocks accumulate into their outputs, which are stored by the enclosing block.
	BlockReduce
)

// Block is a loop nest at one level of the memory hierarchy: it loads its inputs across the
// hierarchy boundary, runs its subgraph and stores its outputs back.
//
// Its life cycle: construction, then optionally MergeAccessMap (required to emit the loop) and
// MergeLoops, then any number of Emit calls.
type Block struct {
	id              int
	inputs, outputs []*AttachedEdge
	level           buffers.MemoryLevel
	subgraph        *Graph
	kind            BlockType

	unifiedAccess *access.Map
	loopGroups    []LoopGroup
}

var _ Task = (*Block)(nil)

// NewBlock creates a block. The subgraph may be shared by several blocks.
func NewBlock(src ids.Source, inputs, outputs []*AttachedEdge, level buffers.MemoryLevel, subgraph *Graph, kind BlockType) *Block {
	if subgraph == nil {
		subgraph = NewGraph()
	}
	return &Block{
		id:       src.Next(),
		inputs:   inputs,
		outputs:  outputs,
		level:    level,
		subgraph: subgraph,
		kind:     kind,
	}
}

// Id of the block.
func (b *Block) Id() int { return b.id }

// Name implements Task.
func (b *Block) Name() string { return fmt.Sprintf("block_%d", b.id) }

// Inputs are the load edges of the block.
func (b *Block) Inputs() []*AttachedEdge { return b.inputs }

// Outputs are the store edges of the block.
func (b *Block) Outputs() []*AttachedEdge { return b.outputs }

// Level of the memory hierarchy the block's loop runs at.
func (b *Block) Level() buffers.MemoryLevel { return b.level }

// Subgraph run inside the loop.
func (b *Block) Subgraph() *Graph { return b.subgraph }

// Kind of the block.
func (b *Block) Kind() BlockType { return b.kind }

// UnifiedAccessMap returns the access map shared by all inputs, set by MergeAccessMap. It is nil
// before that.
func (b *Block) UnifiedAccessMap() *access.Map { return b.unifiedAccess }

// LoopGroups returns the groups computed by the last MergeLoops call.
func (b *Block) LoopGroups() []LoopGroup { return b.loopGroups }

// MergeAccessMap checks that all inputs carry the same access map and, if so, stores the first
// input's map as the block's unified access map.
//
// It returns a MissingAccessMap error if an input has no access map, and an InvalidAccessPattern
// error if two consecutive inputs have different maps. On error the unified map is left unchanged.
// A block without inputs has no unified map.
func (b *Block) MergeAccessMap() error {
	for ii, input := range b.inputs {
		if input.access == nil {
			return errors.Wrapf(errkind.MissingAccessMap, "%s: input #%d (%s)", b.Name(), ii, input)
		}
		if ii > 0 && !b.inputs[ii-1].access.Equal(input.access) {
			return errors.Wrapf(errkind.InvalidAccessPattern, "%s: access map of input #%d (%s) differs from input #%d (%s)",
				b.Name(), ii, input, ii-1, b.inputs[ii-1])
		}
	}
	if len(b.inputs) == 0 {
		return nil
	}
	b.unifiedAccess = b.inputs[0].access
	klog.V(2).Infof("%s: unified access map %s", b.Name(), b.unifiedAccess)
	return nil
}

// Emit implements Task.
//
// With a unified access map (see MergeAccessMap) the loads, synchronization and the subgraph code
// are wrapped in the map's loop, followed by a barrier and the stores: first the outputs of Reduce
// blocks in the subgraph, then the block's own outputs, unless the block itself is a Reduce block.
//
// A block without a unified map and without any input or output simply emits its subgraph. A block
// without a unified map whose inputs carry no access map emits the same phases without a loop; the
// trailing barrier is then only emitted if there is something to store.
func (b *Block) Emit() (string, error) {
	if b.unifiedAccess == nil {
		if len(b.inputs) == 0 && len(b.outputs) == 0 {
			klog.V(2).Infof("%s: no memory movement, emitting subgraph only", b.Name())
			return b.subgraph.Emit()
		}
		for ii, input := range b.inputs {
			if input.access != nil {
				return "", errors.Wrapf(errkind.InvalidAccessPattern,
					"%s: input #%d (%s) has an access map but the block has no unified access map, MergeAccessMap must succeed first",
					b.Name(), ii, input)
			}
		}
	}

	loads, err := b.emitLoads()
	if err != nil {
		return "", err
	}
	inner, err := b.subgraph.Emit()
	if err != nil {
		return "", errors.WithMessagef(err, "%s subgraph", b.Name())
	}
	stores, err := b.emitStores()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if b.unifiedAccess != nil {
		klog.V(2).Infof("%s: emitting loop over %s", b.Name(), b.unifiedAccess)
		loop, err := b.unifiedAccess.GenLoopAccess(loads + inner)
		if err != nil {
			return "", errors.WithMessagef(err, "%s", b.Name())
		}
		sb.WriteString(loop)
		sb.WriteString(kernels.Sync())
	} else {
		klog.V(2).Infof("%s: emitting without loop", b.Name())
		sb.WriteString(loads)
		sb.WriteString(inner)
		if stores != "" {
			sb.WriteString(kernels.Sync())
		}
	}
	sb.WriteString(stores)
	return sb.String(), nil
}

// emitLoads generates one copy per input, followed by the async-copy commit when a shared to register
// copy is involved (or the block runs at the shared level) and by a barrier if anything was loaded.
func (b *Block) emitLoads() (string, error) {
	var sb strings.Builder
	needsCopyAsync := false
	for _, input := range b.inputs {
		srcType, dstType := input.src.Type(), input.dst.Type()
		loader, err := kernels.Loader(srcType, dstType)
		if err != nil {
			return "", errors.WithMessagef(err, "%s: loading %s", b.Name(), input)
		}
		if srcType == buffers.SharedTile && dstType == buffers.RegTile {
			needsCopyAsync = true
		}
		srcArg, dstArg, err := loadOperands(input)
		if err != nil {
			return "", errors.WithMessagef(err, "%s", b.Name())
		}
		sb.WriteString(kernels.Call(loader, srcArg, dstArg))
	}
	if len(b.inputs) == 0 {
		return "", nil
	}
	if needsCopyAsync || b.level == buffers.LevelShared {
		sb.WriteString(kernels.CopyAsync())
	}
	sb.WriteString(kernels.Sync())
	return sb.String(), nil
}

// loadOperands returns the source and destination arguments of a load, indexed by the edge's access
// map if it has one. Loads only support single loop access maps.
func loadOperands(input *AttachedEdge) (srcArg, dstArg string, err error) {
	if input.access == nil {
		return input.src.Name(), input.dst.Name(), nil
	}
	if depth := input.access.LoopDepth(); depth != 1 {
		return "", "", errors.Wrapf(errkind.InvalidLoadAccess, "load %s: access map has loop depth %d, only 1 is supported",
			input, depth)
	}
	srcExprs, err := input.EmitSourceAccess()
	if err != nil {
		return "", "", err
	}
	srcArg = kernels.Indexed(input.src.Name(), srcExprs)
	dstArg = input.dst.Name()
	if len(input.access.Matrices()) > 1 {
		dstExprs, err := input.EmitTargetAccess()
		if err != nil {
			return "", "", err
		}
		dstArg = kernels.Indexed(dstArg, dstExprs)
	}
	return srcArg, dstArg, nil
}

// emitStores generates the stores of the subgraph's Reduce outputs, then the block's own outputs
// unless it is a Reduce block.
func (b *Block) emitStores() (string, error) {
	edges := b.subgraph.ReduceOutputs()
	if b.kind != BlockReduce {
		edges = append(edges, b.outputs...)
	}
	return b.storeEdges(edges)
}

// StoreOutputs generates the stores of the block's own outputs, whatever its kind. Emit leaves them to
// the enclosing block for a Reduce block, so a top-level Reduce block is finalized with it.
func (b *Block) StoreOutputs() (string, error) {
	return b.storeEdges(b.outputs)
}

func (b *Block) storeEdges(edges []*AttachedEdge) (string, error) {
	var sb strings.Builder
	for _, output := range edges {
		storer, err := kernels.Storer(output.src.Type(), output.dst.Type())
		if err != nil {
			return "", errors.WithMessagef(err, "%s: storing %s", b.Name(), output)
		}
		sb.WriteString(kernels.Call(storer, output.src.Name(), output.dst.Name()))
	}
	return sb.String(), nil
}

// String implements fmt.Stringer.
func (b *Block) String() string {
	return fmt.Sprintf("%s(%s, %s, %d inputs, %d outputs, %d nodes)",
		b.Name(), b.kind, b.level, len(b.inputs), len(b.outputs), b.subgraph.NumNodes())
}
