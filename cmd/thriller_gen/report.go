// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/tiledtensor/thrillerflow/pkg/core/buffers"
	"github.com/tiledtensor/thrillerflow/pkg/core/dataflow"
	"github.com/tiledtensor/thrillerflow/pkg/core/dtypes"
	"github.com/tiledtensor/thrillerflow/pkg/engine"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == lgtable.HeaderRow {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = evenRowStyle
			} else {
				s = oddRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

// bufferRows returns one row per buffer: name, type, level, shape, number of elements and bytes.
// It also returns the total bytes per memory level.
func bufferRows(bufs []*buffers.Buffer, elementType dtypes.DataType) (rows [][]string, perLevel map[buffers.MemoryLevel]uint64) {
	perLevel = make(map[buffers.MemoryLevel]uint64)
	for _, buf := range bufs {
		size := buf.Shape().Size()
		bytes := uint64(size) * uint64(elementType.Memory())
		perLevel[buf.Type().Level()] += bytes
		rows = append(rows, []string{
			buf.Name(), buf.Type().String(), buf.Type().Level().String(), buf.Shape().String(),
			humanize.Comma(int64(size)), humanize.Bytes(bytes),
		})
	}
	return
}

func report(e *engine.Engine, elementType dtypes.DataType) {
	block := e.Block()
	bufs := dataflow.CollectBuffers(block)
	rows, perLevel := bufferRows(bufs, elementType)

	fmt.Println(titleStyle.Render("Summary"))
	table := newPlainTable(false)
	table.Row("kernel", e.Config().KernelName)
	table.Row("top block", block.String())
	table.Row("element", fmt.Sprintf("%s (%s)", elementType.CType(), humanize.Bytes(uint64(elementType.Memory()))))
	table.Row("# buffers", humanize.Comma(int64(len(bufs))))
	for _, level := range buffers.MemoryLevelValues() {
		table.Row(level.String()+" bytes", humanize.Bytes(perLevel[level]))
	}
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Buffers"))
	table = newPlainTable(true)
	table.Headers("Name", "Type", "Level", "Shape", "Elements", "Bytes")
	for _, row := range rows {
		table.Row(row...)
	}
	fmt.Println(table.Render())
}
