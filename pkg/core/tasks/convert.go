// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package tasks

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/dtypes"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
)

// Convert casts the elements of a tile into another tile of the same kind and shape.
// It generates no loop: it is meant to be placed inside a block.
type Convert struct {
	id               int
	src, dst         *buffers.Buffer
	srcType, dstType dtypes.DataType
}

var _ dataflow.Task = (*Convert)(nil)

// NewConvert creates a cast from srcBuf (of srcType elements) to dstBuf (of dstType elements).
//
// It returns an IncompatibleBuffers error if the buffers differ in kind or shape.
func NewConvert(src ids.Source, srcBuf, dstBuf *buffers.Buffer, srcType, dstType dtypes.DataType) (*Convert, error) {
	if srcBuf.Type() != dstBuf.Type() {
		return nil, errors.Wrapf(errkind.IncompatibleBuffers, "convert %s to %s: buffer types %s and %s differ",
			srcBuf.Name(), dstBuf.Name(), srcBuf.Type(), dstBuf.Type())
	}
	if !srcBuf.Shape().Equal(dstBuf.Shape()) {
		return nil, errors.Wrapf(errkind.IncompatibleBuffers, "convert %s to %s: shapes %s and %s differ",
			srcBuf.Name(), dstBuf.Name(), srcBuf.Shape(), dstBuf.Shape())
	}
	return &Convert{id: src.Next(), src: srcBuf, dst: dstBuf, srcType: srcType, dstType: dstType}, nil
}

// Name implements dataflow.Task.
func (c *Convert) Name() string { return fmt.Sprintf("Convert_%d", c.id) }

// Emit implements dataflow.Task, e.g. "cast_float_to_half(rA, rAh);".
func (c *Convert) Emit() (string, error) {
	return fmt.Sprintf("cast_%s_to_%s(%s, %s);\n", c.srcType.CType(), c.dstType.CType(), c.src.Name(), c.dst.Name()), nil
}
