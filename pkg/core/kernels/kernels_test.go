// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
)

func TestPrimitives(t *testing.T) {
	assert.Equal(t, "__syncthreads();\n", Sync())
	assert.Equal(t, "__copy_async();\n", CopyAsync())
	assert.Contains(t, SharedBufDecl(), "extern __shared__ __align__(sizeof(double)) unsigned char shared_buf[];\n")
	assert.Contains(t, SharedBufDecl(), "reinterpret_cast<Element*>(shared_buf)")
}

func TestLoader(t *testing.T) {
	for _, tc := range []struct {
		src, dst buffers.BufType
		want     string
	}{
		{buffers.GlobalTile, buffers.RegTile, "copy_2d_tile_g2r"},
		{buffers.SharedTile, buffers.RegTile, "copy_2d_tile_s2r"},
		{buffers.GlobalTile, buffers.SharedTile, "copy_2d_tile_g2s"},
	} {
		got, err := Loader(tc.src, tc.dst)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := Loader(buffers.RegTile, buffers.GlobalTile)
	require.ErrorIs(t, err, errkind.UnsupportedTransfer)
	assert.Contains(t, err.Error(), "RegTile->GlobalTile")
}

func TestStorer(t *testing.T) {
	for _, tc := range []struct {
		src, dst buffers.BufType
		want     string
	}{
		{buffers.RegTile, buffers.GlobalTile, "storer_tile_r2g"},
		{buffers.RegTile, buffers.SharedTile, "storer_tile_r2s"},
		{buffers.SharedTile, buffers.GlobalTile, "storer_tile_s2g"},
	} {
		got, err := Storer(tc.src, tc.dst)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := Storer(buffers.GlobalTile, buffers.RegTile)
	require.ErrorIs(t, err, errkind.UnsupportedTransfer)
}

func TestCall(t *testing.T) {
	assert.Equal(t, "copy_2d_tile_s2r(sA, rA);\n", Call("copy_2d_tile_s2r", "sA", "rA"))
	assert.Equal(t, "gA[1 * j][0]", Indexed("gA", []string{"1 * j", ""}))
	assert.Equal(t, "acc", Indexed("acc", nil))
}
