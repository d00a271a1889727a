// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package buffers defines Buffer, the descriptor of a named tile resident in one level of the
// GPU memory hierarchy.
package buffers

import (
	"fmt"

	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/core/shapes"
)

// BufType is the kind of storage a Buffer lives in.
type BufType int

//go:generate go tool enumer -type=BufType -output=gen_buftype_enumer.go buffers.go

const (
	GlobalTile BufType = iota
	SharedTile
	RegTile
	RegVec
)

// MemoryLevel of the GPU memory hierarchy, from fastest/smallest to slowest/largest.
type MemoryLevel int

//go:generate go tool enumer -type=MemoryLevel -trimprefix=Level -output=gen_memorylevel_enumer.go buffers.go

const (
	LevelRegister MemoryLevel = iota
	LevelShared
	LevelGlobal
)

// Level returns the memory level where buffers of this type live.
func (t BufType) Level() MemoryLevel {
	switch t {
	case GlobalTile:
		return LevelGlobal
	case SharedTile:
		return LevelShared
	default:
		return LevelRegister
	}
}

// Buffer describes a tile: a name, a storage type and a shape.
// It is immutable and shared by every edge and node that refers to it.
type Buffer struct {
	id    int
	name  string
	typ   BufType
	shape shapes.Shape
}

// New creates a Buffer with a fresh id.
func New(src ids.Source, name string, typ BufType, shape shapes.Shape) *Buffer {
	return &Buffer{id: src.Next(), name: name, typ: typ, shape: shape}
}

// Id of the buffer, unique for the lifetime of its ids.Source.
func (b *Buffer) Id() int { return b.id }

// Name of the buffer, as used in generated code.
func (b *Buffer) Name() string { return b.name }

// Type of storage of the buffer.
func (b *Buffer) Type() BufType { return b.typ }

// Shape of the buffer.
func (b *Buffer) Shape() shapes.Shape { return b.shape }

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("%s(%s %s)", b.name, b.typ, b.shape)
}

// RowMajorGlobalTile creates a row-major GlobalTile buffer.
func RowMajorGlobalTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, GlobalTile, shapes.Make(shapes.RowMajor, dims...))
}

// ColumnMajorGlobalTile creates a column-major GlobalTile buffer.
func ColumnMajorGlobalTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, GlobalTile, shapes.Make(shapes.ColumnMajor, dims...))
}

// RowMajorSharedTile creates a row-major SharedTile buffer.
func RowMajorSharedTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, SharedTile, shapes.Make(shapes.RowMajor, dims...))
}

// ColumnMajorSharedTile creates a column-major SharedTile buffer.
func ColumnMajorSharedTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, SharedTile, shapes.Make(shapes.ColumnMajor, dims...))
}

// RowMajorRegTile creates a row-major RegTile buffer.
func RowMajorRegTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, RegTile, shapes.Make(shapes.RowMajor, dims...))
}

// ColumnMajorRegTile creates a column-major RegTile buffer.
func ColumnMajorRegTile(src ids.Source, name string, dims ...int) *Buffer {
	return New(src, name, RegTile, shapes.Make(shapes.ColumnMajor, dims...))
}
