// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// Package engine assembles a complete kernel source file from a top-level block: headers, namespace,
// the `__global__` function signature, the shared memory declaration, the per-CTA tile pointers and
// the block's generated code.
package engine

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/access"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/errkind"
	"github.com/tiledtensor/thrillerflow/pkg/core/kernels"
	"github.com/tiledtensor/thrillerflow/pkg/core/vars"
	"k8s.io/klog/v2"
)

// Config of the generated file.
type Config struct {
	// Namespace wrapping the kernel.
	Namespace string

	// Headers included at the top of the file, without quotes.
	Headers []string

	// KernelName is the name of the `__global__` function.
	KernelName string

	// DeclareBuffers prepends the declarations of every buffer and loader/storer object used by the
	// block (see dataflow.AllocateBlockVars and dataflow.AllocateBlockEdges) to the kernel body.
	DeclareBuffers bool
}

// DefaultConfig returns the configuration used by the TiledCUDA macro-kernel library.
func DefaultConfig() Config {
	return Config{
		Namespace:  "tiledcuda::kernels",
		Headers:    []string{"cell/mod.hpp", "layout.hpp"},
		KernelName: "thriller_kernel",
	}
}

// BlockLayout is the tile of a kernel input processed by one CTA: the input pointer is advanced by
// blockIdx.{x,y,z} times the corresponding dimension.
type BlockLayout struct {
	DimX, DimY, DimZ int
}

// Engine generates the kernel of one top-level block.
type Engine struct {
	config       Config
	block        *dataflow.Block
	inputs       []*vars.RegularVar
	outputs      []*vars.RegularVar
	inputLayouts []BlockLayout
}

// New creates an Engine for the given block.
func New(block *dataflow.Block, config Config) *Engine {
	return &Engine{config: config, block: block}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Block returns the top-level block.
func (e *Engine) Block() *dataflow.Block { return e.block }

// AddInputs appends kernel input parameters, passed as `const Element*`.
func (e *Engine) AddInputs(inputs ...*vars.RegularVar) *Engine {
	e.inputs = append(e.inputs, inputs...)
	return e
}

// AddOutputs appends kernel output parameters, passed as `Element*`.
func (e *Engine) AddOutputs(outputs ...*vars.RegularVar) *Engine {
	e.outputs = append(e.outputs, outputs...)
	return e
}

// AddInputLayouts appends block layouts, one per input, in the same order.
func (e *Engine) AddInputLayouts(layouts ...BlockLayout) *Engine {
	e.inputLayouts = append(e.inputLayouts, layouts...)
	return e
}

// Signature returns the templated function signature, without the body.
func (e *Engine) Signature() string {
	params := make([]string, 0, len(e.inputs)+len(e.outputs))
	for _, input := range e.inputs {
		params = append(params, "const Element* "+input.Name())
	}
	for _, output := range e.outputs {
		params = append(params, "Element* "+output.Name())
	}
	return fmt.Sprintf("template<typename Element, typename KeTraits>\n__global__ void %s(%s)",
		e.config.KernelName, strings.Join(params, ", "))
}

// Kernel returns the kernel function: signature and body, the body indented one level.
//
// A top-level Reduce block has no enclosing block to store its outputs, so they are stored at the end
// of the body.
//
// It returns a WrongInputsNum error if block layouts were given but their number differs from the number
// of inputs. Errors from the block's emission are returned unchanged.
func (e *Engine) Kernel() (string, error) {
	if len(e.inputLayouts) > 0 && len(e.inputLayouts) != len(e.inputs) {
		return "", errors.Wrapf(errkind.WrongInputsNum, "kernel %s: %d block layouts for %d inputs",
			e.config.KernelName, len(e.inputLayouts), len(e.inputs))
	}
	code, err := e.block.Emit()
	if err != nil {
		return "", err
	}
	if e.block.Kind() == dataflow.BlockReduce {
		stores, err := e.block.StoreOutputs()
		if err != nil {
			return "", err
		}
		code += stores
	}

	var body strings.Builder
	body.WriteString("// Declare shared memory buffer\n")
	body.WriteString(kernels.SharedBufDecl())
	body.WriteString("\n")
	for ii, layout := range e.inputLayouts {
		name := e.inputs[ii].Name()
		fmt.Fprintf(&body, "Element* %s_tile = const_cast<Element*>(%s) + blockIdx.x * %d + blockIdx.y * %d + blockIdx.z * %d;\n",
			name, name, layout.DimX, layout.DimY, layout.DimZ)
	}
	if e.config.DeclareBuffers {
		body.WriteString("// Declare buffers\n")
		body.WriteString(dataflow.AllocateBlockVars(e.block))
		body.WriteString(dataflow.AllocateBlockEdges(e.block))
	}
	body.WriteString("// Emit dataflow code.\n")
	body.WriteString(code)

	var sb strings.Builder
	sb.WriteString(e.Signature())
	sb.WriteString("{\n")
	sb.WriteString(access.Indent(body.String(), 1))
	sb.WriteString("}\n")
	return sb.String(), nil
}

var fileTemplate = template.Must(template.New("kernel").Parse(
	`{{range .Headers}}#include "{{.}}"
{{end}}

namespace {{.Namespace}} {

{{.Kernel}}
}  // namespace {{.Namespace}}
`))

// Generate returns the complete source file.
func (e *Engine) Generate() (string, error) {
	kernel, err := e.Kernel()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = fileTemplate.Execute(&sb, struct {
		Config
		Kernel string
	}{e.config, kernel})
	if err != nil {
		return "", errors.Wrapf(err, "executing template for kernel %s", e.config.KernelName)
	}
	return sb.String(), nil
}

// Persist generates the source file and writes it to path.
// It returns a FailedFileOp error if the file can't be written.
func (e *Engine) Persist(path string) error {
	code, err := e.Generate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return errors.Wrapf(errkind.FailedFileOp, "writing kernel %s to %q: %v", e.config.KernelName, path, err)
	}
	klog.V(1).Infof("engine: kernel %s written to %s (%d bytes)", e.config.KernelName, path, len(code))
	return nil
}
