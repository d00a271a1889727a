// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/dtypes"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/engine"
	"github.com/tiledtensor/thrillerflow/pkg/library/gemm"
)

func TestBuildEngine(t *testing.T) {
	lastStores := map[string]string{
		"register": "storer_tile_r2s(acc, sC);\n}\n",
		"shared":   "storer_tile_s2g(sC, gC);\n}\n",
		"whole":    "storer_tile_s2g(sC, gC);\n}\n",
	}
	for kind, lastStore := range lastStores {
		t.Run(kind, func(t *testing.T) {
			config := engine.DefaultConfig()
			config.DeclareBuffers = true
			e, err := buildEngine(ids.New(), kind, gemm.DefaultOptions(), config)
			require.NoError(t, err)
			code, err := e.Generate()
			require.NoError(t, err)
			assert.Contains(t, code, "cute::gemm(rA[1 * i + 0], rB[1 * i + 0], acc);\n")
			assert.Contains(t, code, lastStore)
			for _, buf := range dataflow.CollectBuffers(e.Block()) {
				assert.Contains(t, code, buf.Name()+" "+buf.Name()+";\n", "buffer %s is not declared", buf.Name())
			}
		})
	}
	_, err := buildEngine(ids.New(), "tensor_core", gemm.DefaultOptions(), engine.DefaultConfig())
	require.Error(t, err)
}

func TestBufferRows(t *testing.T) {
	e, err := buildEngine(ids.New(), "whole", gemm.DefaultOptions(), engine.DefaultConfig())
	require.NoError(t, err)
	bufs := dataflow.CollectBuffers(e.Block())
	require.Len(t, bufs, 9)

	rows, perLevel := bufferRows(bufs, dtypes.Float32)
	require.Len(t, rows, 9)
	assert.Equal(t, []string{"gA", "GlobalTile", "Global", "RowMajor[256 256]", "65,536", "262 kB"}, rows[0])
	assert.Equal(t, uint64(3*256*256*4), perLevel[buffers.LevelGlobal])
	assert.Equal(t, uint64(3*64*64*4), perLevel[buffers.LevelShared])
	assert.Equal(t, uint64(3*64*64*4), perLevel[buffers.LevelRegister])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"cell/mod.hpp", "layout.hpp"}, splitList(" cell/mod.hpp, ,layout.hpp"))
	assert.Empty(t, splitList(""))
}
