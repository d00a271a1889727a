// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// thriller_gen generates the source of a tiled GEMM kernel and optionally reports the buffers it uses.
//
// Usage:
//
//	thriller_gen -kernel=whole -name=gemm -output=gemm.cuh -report
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dtypes"
	"github.com/tiledtensor/thrillerflow/pkg/core/ids"
	"github.com/tiledtensor/thrillerflow/pkg/engine"
	"github.com/tiledtensor/thrillerflow/pkg/library/gemm"
	"k8s.io/klog/v2"
)

var (
	flagKernel = flag.String("kernel", "whole",
		"Which GEMM kernel to generate: \"register\" (shared to register block), \"shared\" (global to shared block) "+
			"or \"whole\" (all memory levels).")
	flagOutput    = flag.String("output", "", "File to write the generated kernel to. If empty, it is printed to stdout.")
	flagName      = flag.String("name", "", "Name of the generated __global__ function. Defaults to \"<kernel>_gemm\".")
	flagNamespace = flag.String("namespace", engine.DefaultConfig().Namespace, "C++ namespace wrapping the kernel.")
	flagHeaders   = flag.String("headers", strings.Join(engine.DefaultConfig().Headers, ","),
		"Comma-separated list of headers to include.")
	flagDeclare     = flag.Bool("declare", false, "Declare buffers and loader/storer objects at the start of the kernel.")
	flagReport      = flag.Bool("report", false, "Print a report of the buffers used by the kernel.")
	flagElement     = flag.String("element", "float", "Element type, used to size buffers in the report.")
	flagColor       = flag.Bool("color", true, "Use colors in the report. Disable when piping to a file.")
	flagRegIters    = flag.Int("reg_iters", gemm.DefaultOptions().RegIters, "Register tiles per shared tile.")
	flagSharedIters = flag.Int("shared_iters", gemm.DefaultOptions().SharedIters, "Shared tiles per global tile.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if !*flagColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	config := engine.DefaultConfig()
	config.Namespace = *flagNamespace
	config.Headers = splitList(*flagHeaders)
	config.DeclareBuffers = *flagDeclare
	config.KernelName = *flagName
	if config.KernelName == "" {
		config.KernelName = *flagKernel + "_gemm"
	}
	opts := gemm.DefaultOptions()
	opts.RegIters = *flagRegIters
	opts.SharedIters = *flagSharedIters
	elementType := must.M1(dtypes.Parse(*flagElement))

	e, err := buildEngine(ids.New(), *flagKernel, opts, config)
	if err != nil {
		klog.Errorf("Failed to build kernel %q: %+v", *flagKernel, err)
		os.Exit(1)
	}

	if *flagOutput == "" {
		fmt.Print(must.M1(e.Generate()))
	} else {
		must.M(e.Persist(*flagOutput))
		klog.Infof("Kernel %s written to %s", config.KernelName, *flagOutput)
	}

	if *flagReport {
		report(e, elementType)
	}
}

// buildEngine returns the engine for the given kernel kind.
func buildEngine(gen ids.Source, kind string, opts gemm.Options, config engine.Config) (*engine.Engine, error) {
	switch kind {
	case "register":
		sA := buffers.RowMajorSharedTile(gen, "sA", opts.SharedTile...)
		sB := buffers.ColumnMajorSharedTile(gen, "sB", opts.SharedTile...)
		sC := buffers.RowMajorSharedTile(gen, "sC", opts.SharedTile...)
		block, err := gemm.BuildRegisterBlock(gen, sA, sB, sC, opts)
		if err != nil {
			return nil, err
		}
		return engine.New(block, config), nil
	case "shared":
		gA := buffers.RowMajorGlobalTile(gen, "gA", opts.GlobalTile...)
		gB := buffers.ColumnMajorGlobalTile(gen, "gB", opts.GlobalTile...)
		gC := buffers.RowMajorGlobalTile(gen, "gC", opts.GlobalTile...)
		block, err := gemm.BuildSharedBlock(gen, gA, gB, gC, opts)
		if err != nil {
			return nil, err
		}
		return engine.New(block, config), nil
	case "whole":
		return gemm.BuildKernel(gen, opts, config)
	}
	return nil, errors.Errorf("unknown kernel %q, valid values are \"register\", \"shared\" and \"whole\"", kind)
}

func splitList(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
