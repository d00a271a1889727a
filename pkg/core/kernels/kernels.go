// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package kernels holds the textual primitives of the downstream macro-kernel library: the names of
// copy/store functions, barriers and shared memory declarations.
//
// These strings are the contract with the library the generated code is compiled against, and must be
// reproduced verbatim.
package kernels

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
)

// Sync returns the block-wide barrier statement.
func Sync() string {
	return "__syncthreads();\n"
}

// CopyAsync returns the statement that commits pending asynchronous copies.
func CopyAsync() string {
	return "__copy_async();\n"
}

// SharedBufDecl returns the declaration of the dynamic shared memory buffer, reinterpreted as Element.
func SharedBufDecl() string {
	return "extern __shared__ __align__(sizeof(double)) unsigned char shared_buf[];\n" +
		"auto* shm = reinterpret_cast<Element*>(shared_buf);\n"
}

// Transfer is a (source, destination) pair of buffer types.
type Transfer struct {
	Src, Dst buffers.BufType
}

// String implements fmt.Stringer, e.g. "SharedTile->RegTile".
func (t Transfer) String() string {
	return fmt.Sprintf("%s->%s", t.Src, t.Dst)
}

var (
	loaders = map[Transfer]string{
		{buffers.GlobalTile, buffers.RegTile}:    "copy_2d_tile_g2r",
		{buffers.SharedTile, buffers.RegTile}:    "copy_2d_tile_s2r",
		{buffers.GlobalTile, buffers.SharedTile}: "copy_2d_tile_g2s",
	}
	storers = map[Transfer]string{
		{buffers.RegTile, buffers.GlobalTile}:    "storer_tile_r2g",
		{buffers.RegTile, buffers.SharedTile}:    "storer_tile_r2s",
		{buffers.SharedTile, buffers.GlobalTile}: "storer_tile_s2g",
	}
)

// Loader returns the name of the copy primitive that loads from src into dst.
// It returns an UnsupportedTransfer error for any other combination.
func Loader(src, dst buffers.BufType) (string, error) {
	t := Transfer{src, dst}
	name, found := loaders[t]
	if !found {
		return "", errors.Wrapf(errkind.UnsupportedTransfer, "no load primitive for %s", t)
	}
	return name, nil
}

// Storer returns the name of the primitive that stores src back into dst.
// It returns an UnsupportedTransfer error for any other combination.
func Storer(src, dst buffers.BufType) (string, error) {
	t := Transfer{src, dst}
	name, found := storers[t]
	if !found {
		return "", errors.Wrapf(errkind.UnsupportedTransfer, "no store primitive for %s", t)
	}
	return name, nil
}

// Call formats a single-statement call to fn with the given arguments, e.g. "fn(a, b);\n".
func Call(fn string, args ...string) string {
	return fmt.Sprintf("%s(%s);\n", fn, strings.Join(args, ", "))
}

// Indexed returns name followed by one bracketed index per expression, e.g. "gA[1 * i][0]".
// Empty expressions, from all-zero access rows, are emitted as index 0.
func Indexed(name string, exprs []string) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, expr := range exprs {
		if expr == "" {
			expr = "0"
		}
		sb.WriteByte('[')
		sb.WriteString(expr)
		sb.WriteByte(']')
	}
	return sb.String()
}
