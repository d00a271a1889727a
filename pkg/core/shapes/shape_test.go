// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	shape := Make(RowMajor, 4, 3, 2)
	require.Equal(t, 3, shape.Rank())
	require.Equal(t, 4*3*2, shape.Size())
	require.Equal(t, []int{6, 2, 1}, shape.Strides())
	assert.Equal(t, "RowMajor[4 3 2]", shape.String())

	colMajor := Make(ColumnMajor, 4, 3, 2)
	require.Equal(t, []int{1, 4, 12}, colMajor.Strides())
	assert.False(t, shape.Equal(colMajor))
	assert.True(t, shape.Equal(Make(RowMajor, 4, 3, 2)))

	custom := MakeStrided([]int{64, 64}, []int{1, 72})
	require.Equal(t, []int{1, 72}, custom.Strides())
	assert.True(t, custom.Equal(MakeStrided([]int{64, 64}, []int{1, 72})))
	assert.False(t, custom.Equal(MakeStrided([]int{64, 64}, []int{72, 1})))
	assert.Equal(t, "Custom[64 64]/[1 72]", custom.String())

	// Scalar tile.
	scalar := Make(RowMajor)
	assert.Equal(t, 1, scalar.Size())
	assert.Empty(t, scalar.Strides())
}

func TestDim(t *testing.T) {
	shape := Make(RowMajor, 4, 3, 2)
	require.Equal(t, 4, shape.Dim(0))
	require.Equal(t, 2, shape.Dim(2))
	require.Equal(t, 4, shape.Dim(-3))
	require.Equal(t, 2, shape.Dim(-1))
	require.Panics(t, func() { _ = shape.Dim(3) })
	require.Panics(t, func() { _ = shape.Dim(-4) })
}

func TestMakeInvalid(t *testing.T) {
	require.Panics(t, func() { _ = Make(RowMajor, 4, 0) })
	require.Panics(t, func() { _ = Make(Custom, 4) })
	require.Panics(t, func() { _ = MakeStrided([]int{4, 4}, []int{1}) })
}
