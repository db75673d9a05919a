package editor

import "strings"

// Offset converts a cursor row and column into a byte offset in content.
// Columns count runes, out of range positions are clamped.
func Offset(content string, row, col int) int {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	lines := strings.SplitAfter(content, "\n")
	off := 0
	for i := 0; i < row && i < len(lines); i++ {
		off += len(lines[i])
	}
	if row >= len(lines) {
		return len(content)
	}
	line := strings.TrimSuffix(lines[row], "\n")
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	return off + len(string(runes[:col]))
}

// InsertAt inserts text at the cursor and returns the new content along with
// the cursor position right after the inserted text.
func InsertAt(content string, row, col int, text string) (string, int, int) {
	off := Offset(content, row, col)
	out := content[:off] + text + content[off:]

	before := out[:off+len(text)]
	newRow := strings.Count(before, "\n")
	lastLine := before[strings.LastIndex(before, "\n")+1:]
	return out, newRow, len([]rune(lastLine))
}

// Position converts a byte offset into the cursor row and rune column.
func Position(content string, off int) (int, int) {
	off = max(0, min(off, len(content)))
	before := content[:off]
	row := strings.Count(before, "\n")
	return row, len([]rune(before[strings.LastIndex(before, "\n")+1:]))
}
