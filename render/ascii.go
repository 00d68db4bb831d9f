package render

import (
	"fmt"
	"math"
	"strings"
)

// Glyphs drawn for each sprite kind. Later kinds in drawOrder overwrite earlier ones.
var glyphs = map[Kind]byte{
	KindHen:  'H',
	KindEgg:  'o',
	KindChef: 'C',
}

var drawOrder = []Kind{KindHen, KindEgg, KindChef}

// ANSI colors per kind, used when color output is requested.
var colors = map[Kind][3]uint8{
	KindHen:  {230, 120, 40},
	KindEgg:  {250, 240, 210},
	KindChef: {90, 170, 250},
}

const emptyCell = '.'

// rgbToAnsi converts a color to an ANSI escape code for that color
func rgbToAnsi(c [3]uint8) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c[0], c[1], c[2])
}

// RenderToASCII draws the scene on a grid resolution columns wide, keeping the
// canvas aspect ratio. Each sprite occupies the cell its position falls in.
func RenderToASCII(scene *Scene, resolution int, color bool) string {
	if scene == nil || resolution <= 0 || scene.Width <= 0 || scene.Height <= 0 {
		return ""
	}
	cols := resolution
	rows := int(math.Max(1, math.Round(float64(resolution)*scene.Height/scene.Width)))
	cellW, cellH := scene.Width/float64(cols), scene.Height/float64(rows)

	grid := make([][]Kind, rows)
	for i := range grid {
		grid[i] = make([]Kind, cols)
	}
	for _, kind := range drawOrder {
		for _, s := range scene.Snapshot(kind) {
			col := clampIndex(int(s.X/cellW), cols)
			row := clampIndex(int(s.Y/cellH), rows)
			grid[row][col] = kind
		}
	}

	var ascii strings.Builder
	for _, row := range grid {
		for _, kind := range row {
			glyph, ok := glyphs[kind]
			if !ok {
				ascii.WriteByte(emptyCell)
				continue
			}
			if color {
				ascii.WriteString(rgbToAnsi(colors[kind]))
				ascii.WriteByte(glyph)
				ascii.WriteString("\033[0m") // Reset color after each character
				continue
			}
			ascii.WriteByte(glyph)
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
