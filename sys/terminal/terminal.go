// Package terminal implements the framebuffer-backed text console. The
// runtime only ever needs two line-oriented operations from it, Println
// and Newline; everything else here is cursor and scroll bookkeeping.
package terminal

import (
	"io"
	"strings"

	"github.com/ascpixi/pyton/sys/boot"
	"github.com/ascpixi/pyton/sys/mm"
)

// Glyph cell dimensions in pixels. The framebuffer is divided into a grid
// of cells of this size.
const (
	GlyphWidth  = 8
	GlyphHeight = 16
)

// Terminal is a fixed-size cell grid with a cursor. Characters are stored
// per cell; rasterizing cells into framebuffer pixels is the concern of
// the display driver behind the Framebuffer descriptor.
type Terminal struct {
	cols, rows int
	cells      []byte
	curRow     int
	curCol     int
	mirror     io.Writer
}

// New creates a terminal with an explicit cell grid size. The cell buffer
// comes from the bump heap when the allocator is up, so early boot (before
// mm.Init) can still construct a terminal for panic output.
func New(cols, rows int) *Terminal {
	if cols <= 0 || rows <= 0 {
		panic("terminal: non-positive grid size")
	}
	var cells []byte
	if mm.Initialized() {
		cells = mm.HeapAlloc(cols * rows)
	} else {
		cells = make([]byte, cols*rows)
	}
	t := &Terminal{cols: cols, rows: rows, cells: cells}
	t.clear()
	return t
}

// NewFromFramebuffer sizes the cell grid from a framebuffer descriptor.
func NewFromFramebuffer(fb *boot.Framebuffer) *Terminal {
	return New(fb.Width/GlyphWidth, fb.Height/GlyphHeight)
}

// SetMirror makes the terminal also write every line to w. Hosted runs
// mirror to stdout.
func (t *Terminal) SetMirror(w io.Writer) {
	t.mirror = w
}

// Size returns the grid dimensions as (cols, rows).
func (t *Terminal) Size() (int, int) {
	return t.cols, t.rows
}

func (t *Terminal) clear() {
	for i := range t.cells {
		t.cells[i] = ' '
	}
	t.curRow = 0
	t.curCol = 0
}

// scroll moves every row up by one and clears the bottom row.
func (t *Terminal) scroll() {
	copy(t.cells, t.cells[t.cols:])
	bottom := t.cells[(t.rows-1)*t.cols:]
	for i := range bottom {
		bottom[i] = ' '
	}
}

// advanceLine moves the cursor to the start of the next row, scrolling
// when the cursor is already on the bottom row.
func (t *Terminal) advanceLine() {
	t.curCol = 0
	if t.curRow == t.rows-1 {
		t.scroll()
		return
	}
	t.curRow++
}

// put writes one character at the cursor, wrapping long lines.
func (t *Terminal) put(c byte) {
	if c == '\n' {
		t.advanceLine()
		return
	}
	if t.curCol == t.cols {
		t.advanceLine()
	}
	t.cells[t.curRow*t.cols+t.curCol] = c
	t.curCol++
}

// Print writes s at the cursor without a trailing newline.
func (t *Terminal) Print(s string) {
	for i := 0; i < len(s); i++ {
		t.put(s[i])
	}
	if t.mirror != nil {
		io.WriteString(t.mirror, s)
	}
}

// Println writes s followed by a newline.
func (t *Terminal) Println(s string) {
	t.Print(s)
	t.advanceLine()
	if t.mirror != nil {
		io.WriteString(t.mirror, "\n")
	}
}

// Newline advances the cursor to the next line.
func (t *Terminal) Newline() {
	t.advanceLine()
	if t.mirror != nil {
		io.WriteString(t.mirror, "\n")
	}
}

// Snapshot returns the visible rows with trailing blanks trimmed, and
// trailing empty rows dropped. Intended for tests and diagnostics.
func (t *Terminal) Snapshot() []string {
	lines := make([]string, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		row := string(t.cells[r*t.cols : (r+1)*t.cols])
		lines = append(lines, strings.TrimRight(row, " "))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
