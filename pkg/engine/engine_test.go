// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/core/vars"
)

// registerLoadBlock builds a register level block loading two shared tiles, without loop.
func registerLoadBlock(gen ids.Source) *dataflow.Block {
	sA := buffers.RowMajorSharedTile(gen, "sA", 64, 64)
	sB := buffers.RowMajorSharedTile(gen, "sB", 64, 64)
	rA := buffers.RowMajorRegTile(gen, "rA", 64, 64)
	rB := buffers.RowMajorRegTile(gen, "rB", 64, 64)
	return dataflow.NewBlock(gen,
		[]*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, sA, rA, nil), dataflow.NewAttachedEdge(gen, sB, rB, nil)},
		nil, buffers.LevelRegister,
		dataflow.NewGraph().AddNodes(dataflow.NewBufferNode(gen, rA), dataflow.NewBufferNode(gen, rB)),
		dataflow.BlockMap)
}

func newTestEngine(gen ids.Source, config Config) *Engine {
	return New(registerLoadBlock(gen), config).
		AddInputs(vars.NewRegularVar(gen, "a"), vars.NewRegularVar(gen, "b")).
		AddOutputs(vars.NewRegularVar(gen, "c"))
}

func TestSignature(t *testing.T) {
	gen := ids.New()
	e := newTestEngine(gen, DefaultConfig())
	assert.Equal(t,
		"template<typename Element, typename KeTraits>\n__global__ void thriller_kernel(const Element* a, const Element* b, Element* c)",
		e.Signature())

	// Outputs only.
	e = New(registerLoadBlock(gen), Config{KernelName: "k"}).AddOutputs(vars.NewRegularVar(gen, "c"))
	assert.Equal(t, "template<typename Element, typename KeTraits>\n__global__ void k(Element* c)", e.Signature())
}

func TestGenerate(t *testing.T) {
	gen := ids.New()
	e := newTestEngine(gen, DefaultConfig()).
		AddInputLayouts(BlockLayout{DimX: 64, DimY: 0, DimZ: 0}, BlockLayout{DimX: 0, DimY: 64, DimZ: 0})
	code, err := e.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "#include \"cell/mod.hpp\"\n#include \"layout.hpp\"\n"))
	assert.Contains(t, code, "namespace tiledcuda::kernels {\n")
	assert.True(t, strings.HasSuffix(code, "}  // namespace tiledcuda::kernels\n"))
	assert.Contains(t, code, e.Signature()+"{\n")
	assert.Contains(t, code, "extern __shared__ __align__(sizeof(double)) unsigned char shared_buf[];\n")
	assert.Contains(t, code, "Element* a_tile = const_cast<Element*>(a) + blockIdx.x * 64 + blockIdx.y * 0 + blockIdx.z * 0;\n")
	assert.Contains(t, code, "Element* b_tile = const_cast<Element*>(b) + blockIdx.x * 0 + blockIdx.y * 64 + blockIdx.z * 0;\n")
	assert.Contains(t, code,
		"    // Emit dataflow code.\n"+
			"    copy_2d_tile_s2r(sA, rA);\n"+
			"    copy_2d_tile_s2r(sB, rB);\n"+
			"    __copy_async();\n"+
			"    __syncthreads();\n"+
			"}\n")
	assert.NotContains(t, code, "// Declare buffers")
}

func TestGenerateDeclareBuffers(t *testing.T) {
	gen := ids.New()
	config := DefaultConfig()
	config.DeclareBuffers = true
	config.Namespace = "custom"
	code, err := newTestEngine(gen, config).Generate()
	require.NoError(t, err)
	assert.Contains(t, code, "namespace custom {\n")
	assert.Contains(t, code,
		"    // Declare buffers\n"+
			"    SharedsA sA;\n"+
			"    RegrA rA;\n"+
			"    SharedsB sB;\n"+
			"    RegrB rB;\n"+
			"    S2RLoadersA_rA s2rsA_rA;\n"+
			"    S2RLoadersB_rB s2rsB_rB;\n"+
			"    // Emit dataflow code.\n")
}

func TestKernelTopLevelReduce(t *testing.T) {
	gen := ids.New()
	sA := buffers.RowMajorSharedTile(gen, "sA", 64, 64)
	sC := buffers.RowMajorSharedTile(gen, "sC", 64, 64)
	rA := buffers.RowMajorRegTile(gen, "rA", 64, 64)
	acc := buffers.RowMajorRegTile(gen, "acc", 64, 64)
	block := dataflow.NewBlock(gen,
		[]*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, sA, rA, nil)},
		[]*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, acc, sC, nil)},
		buffers.LevelRegister,
		dataflow.NewGraph().AddNodes(dataflow.NewBufferNode(gen, rA), dataflow.NewBufferNode(gen, acc)),
		dataflow.BlockReduce)

	code, err := New(block, Config{KernelName: "k", DeclareBuffers: true}).Kernel()
	require.NoError(t, err)
	assert.Equal(t,
		"template<typename Element, typename KeTraits>\n__global__ void k(){\n"+
			"    // Declare shared memory buffer\n"+
			"    extern __shared__ __align__(sizeof(double)) unsigned char shared_buf[];\n"+
			"    auto* shm = reinterpret_cast<Element*>(shared_buf);\n"+
			"\n"+
			"    // Declare buffers\n"+
			"    SharedsA sA;\n"+
			"    RegrA rA;\n"+
			"    Regacc acc;\n"+
			"    SharedsC sC;\n"+
			"    S2RLoadersA_rA s2rsA_rA;\n"+
			"    R2SStoreracc_sC r2sacc_sC;\n"+
			"    // Emit dataflow code.\n"+
			"    copy_2d_tile_s2r(sA, rA);\n"+
			"    __copy_async();\n"+
			"    __syncthreads();\n"+
			"    storer_tile_r2s(acc, sC);\n"+
			"}\n",
		code)
}

func TestKernelErrors(t *testing.T) {
	gen := ids.New()
	_, err := newTestEngine(gen, DefaultConfig()).AddInputLayouts(BlockLayout{DimX: 1}).Kernel()
	require.ErrorIs(t, err, errkind.WrongInputsNum)

	rA := buffers.RowMajorRegTile(gen, "rA", 16, 16)
	gA := buffers.RowMajorGlobalTile(gen, "gA", 16, 16)
	bad := dataflow.NewBlock(gen, []*dataflow.AttachedEdge{dataflow.NewAttachedEdge(gen, rA, gA, nil)}, nil,
		buffers.LevelRegister, nil, dataflow.BlockMap)
	code, err := New(bad, DefaultConfig()).Generate()
	require.ErrorIs(t, err, errkind.UnsupportedTransfer)
	assert.Empty(t, code)
}

func TestPersist(t *testing.T) {
	gen := ids.New()
	e := newTestEngine(gen, DefaultConfig())
	path := filepath.Join(t.TempDir(), "kernel.cuh")
	require.NoError(t, e.Persist(path))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := e.Generate()
	require.NoError(t, err)
	assert.Equal(t, want, string(contents))

	err = e.Persist(filepath.Join(t.TempDir(), "missing", "dir", "kernel.cuh"))
	require.ErrorIs(t, err, errkind.FailedFileOp)
}
