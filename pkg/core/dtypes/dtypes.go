// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes defines the element data types understood by the generated CUDA code.
//
// Each DataType has a C++ spelling (see DataType.CType), used verbatim in emitted code, and
// maps to the corresponding github.com/gomlx/gopjrt/dtypes.DType to reuse its size information.
package dtypes

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
)

// DataType of tile elements on an NVIDIA GPU.
type DataType int

//go:generate go tool enumer -type=DataType -output=gen_datatype_enumer.go dtypes.go

const (
	InvalidDataType DataType = iota
	Float32
	Float64
	Half
	CutlassHalf // cutlass::half_t
	BFloat16
)

// cTypes is indexed by DataType.
var cTypes = [...]string{
	InvalidDataType: "",
	Float32:         "float",
	Float64:         "double",
	Half:            "half",
	CutlassHalf:     "cutlass::half_t",
	BFloat16:        "bfloat16",
}

// CType returns the C++ spelling of the type, e.g. "float" or "cutlass::half_t".
func (dt DataType) CType() string {
	if dt < 0 || int(dt) >= len(cTypes) {
		return ""
	}
	return cTypes[dt]
}

// Parse the C++ spelling of a type. Only "float", "double", "half" and "cutlass::half_t" are
// accepted: there is no textual form of BFloat16 on the parsing side.
func Parse(s string) (DataType, error) {
	switch s {
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	case "half":
		return Half, nil
	case "cutlass::half_t":
		return CutlassHalf, nil
	}
	return InvalidDataType, errors.Wrapf(errkind.ParseError, "unknown data type %q", s)
}

// DType returns the equivalent gopjrt DType. Both half flavours map to dtypes.Float16.
func (dt DataType) DType() dtypes.DType {
	switch dt {
	case Float32:
		return dtypes.Float32
	case Float64:
		return dtypes.Float64
	case Half, CutlassHalf:
		return dtypes.Float16
	case BFloat16:
		return dtypes.BFloat16
	}
	return dtypes.InvalidDType
}

// Memory returns the number of bytes of one element, or 0 for InvalidDataType.
func (dt DataType) Memory() uintptr {
	if dt == InvalidDataType {
		return 0
	}
	return dt.DType().Memory()
}
