/*
Package grid provides an owner-drawn data grid: a spreadsheet-like control
that lays out, paints and hit-tests its own header and cells instead of
delegating to a native table widget.

# Overview

A Grid projects a DataSource (typed columns plus rows of named cell values)
into its own column and row model. A layout pass computes the pixel bounds of
every header part (image, label, sort glyph, sort badge) under per-column
minimum and maximum widths. A paint pass draws into any Surface and records
the on-screen rectangle of every visible cell so pointer input can be
resolved back to a header or a cell.

State changes are explicit Mutation values. Grid.Apply runs one and returns
its Effects; layout passes are coalesced on a TaskQueue that the host drains
once per frame.

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1280, 720)
	table := grid.NewMemoryTable(
	    grid.SourceColumn{Name: "Name", Kind: grid.KindString},
	    grid.SourceColumn{Name: "Age", Kind: grid.KindInt},
	    grid.SourceColumn{Name: "Active", Kind: grid.KindBool},
	)
	table.AddRow("b", 30, true)

	queue := grid.NewTaskQueue()
	g := grid.New(
	    grid.WithSource(table),
	    grid.WithTaskQueue(queue),
	    grid.WithBounds(grid.Rect{W: 1280, H: 720}),
	)
	host := grid.NewHost(renderer, g)
	input := opengl.NewGLFWInputAdapter(window)

	// Window loop
	for !window.ShouldClose() {
	    glfw.PollEvents()
	    host.Frame(input.Input())
	    input.EndFrame()
	    window.SwapBuffers()
	}

# Mouse and Keyboard Reference

Header:

	Left click              Sort ascending when unsorted (next priority)
	Left click on glyph     Toggle ascending/descending, keep priority
	Left click on badge     Toggle ascending/descending, keep priority
	Right click             Remove the column from the sort keys

Cells:

	Left click              Toggle an editable boolean cell
	Wheel                   Scroll by one average row height (20px horizontally)

Keys:

	Up / Down               Scroll one row
	Left / Right            Scroll 20px
	PageUp / PageDown       Scroll one page
	Home / End              Jump to the top / bottom
	Ctrl+C                  Copy the selected rows as tab-separated text

# Sorting

Rows are ordered by every active sort key in priority order. Each ValueKind
compares with its own rule: strings case-insensitively, booleans parsed from
"true"/"false", dates from "2006-01-02" or "2006-01-02 03:04:05 PM", numbers
with tolerant parsing of separators, signs and currency symbols. A
descending key swaps the operands. Sorting is stable.

# Backends

	backend/opengl    OpenGL 4.1 renderer for DrawList and a GLFW input adapter
	backend/terminal  tcell Surface drawing the grid into terminal cells
	source/sqlite     DataSource over a SQLite table
*/
package grid
