// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines the Shape of a tile: its dimensions and its memory layout.
//
// ## Glossary
//
//   - Rank: number of axes of a tile.
//   - Dimension: the length of a tile along one axis.
//   - Layout: how the dimensions are laid out in memory, row-major (C order), column-major
//     (Fortran order) or with custom strides.
//   - Strides: the number of elements to skip to move one position along each axis.
//
// Example: `shapes.Make(shapes.RowMajor, 64, 32)` is a 64x32 tile with strides [32 1], while
// `shapes.Make(shapes.ColumnMajor, 64, 32)` has strides [1 64].
package shapes

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
)

// Layout of a tile in memory.
type Layout int

//go:generate go tool enumer -type=Layout -output=gen_layout_enumer.go shape.go

const (
	RowMajor Layout = iota
	ColumnMajor
	Custom
)

// Shape of a tile. Use Make or MakeStrided to create one.
type Shape struct {
	Dimensions []int
	Layout     Layout

	// strides is only set for the Custom layout.
	strides []int
}

// Make returns a Shape with the given layout and dimensions.
// It panics for the Custom layout (use MakeStrided) or for a dimension <= 0.
func Make(layout Layout, dimensions ...int) Shape {
	if layout == Custom {
		exceptions.Panicf("shapes.Make(%s, %v): custom layouts require strides, use MakeStrided", layout, dimensions)
	}
	s := Shape{Dimensions: slices.Clone(dimensions), Layout: layout}
	s.checkDimensions()
	return s
}

// MakeStrided returns a Shape with a Custom layout. It panics if the number of strides doesn't match
// the rank, or for a dimension <= 0.
func MakeStrided(dimensions, strides []int) Shape {
	if len(dimensions) != len(strides) {
		exceptions.Panicf("shapes.MakeStrided(%v, %v): rank mismatch between dimensions and strides", dimensions, strides)
	}
	s := Shape{Dimensions: slices.Clone(dimensions), Layout: Custom, strides: slices.Clone(strides)}
	s.checkDimensions()
	return s
}

func (s Shape) checkDimensions() {
	for _, dim := range s.Dimensions {
		if dim <= 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension <= 0", s)
		}
	}
}

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// Dim returns the dimension of the given axis. Negative axes count from the end.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Size returns the number of elements of the tile. It's the product of all dimensions.
func (s Shape) Size() (size int) {
	size = 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return
}

// Strides returns the stride of each axis, in number of elements.
func (s Shape) Strides() []int {
	strides := make([]int, s.Rank())
	switch s.Layout {
	case RowMajor:
		stride := 1
		for axis := s.Rank() - 1; axis >= 0; axis-- {
			strides[axis] = stride
			stride *= s.Dimensions[axis]
		}
	case ColumnMajor:
		stride := 1
		for axis := range s.Rank() {
			strides[axis] = stride
			stride *= s.Dimensions[axis]
		}
	case Custom:
		copy(strides, s.strides)
	}
	return strides
}

// Equal compares dimensions, layout and (for Custom layouts) strides.
func (s Shape) Equal(s2 Shape) bool {
	if s.Layout != s2.Layout || !slices.Equal(s.Dimensions, s2.Dimensions) {
		return false
	}
	return s.Layout != Custom || slices.Equal(s.strides, s2.strides)
}

// String implements fmt.Stringer, e.g. "RowMajor[64 64]".
func (s Shape) String() string {
	if s.Layout == Custom {
		return fmt.Sprintf("%s%v/%v", s.Layout, s.Dimensions, s.strides)
	}
	return fmt.Sprintf("%s%v", s.Layout, s.Dimensions)
}
