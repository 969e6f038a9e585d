// Package editor implements cursor arithmetic over note bodies.
//
// Offsets count runes, not bytes. Every rune is one column wide; combining
// marks and wide characters get no special treatment.
package editor

import "unicode/utf8"

func Len(content string) int {
	return utf8.RuneCountInString(content)
}

// Clamp bounds offset to [0, Len(content)].
func Clamp(content string, offset int) int {
	if offset < 0 {
		return 0
	}
	if n := Len(content); offset > n {
		return n
	}
	return offset
}

func InsertChar(content string, offset int, c rune) (string, int) {
	runes := []rune(content)
	offset = clampRunes(runes, offset)
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:offset]...)
	out = append(out, c)
	out = append(out, runes[offset:]...)
	return string(out), offset + 1
}

func DeleteBefore(content string, offset int) (string, int) {
	runes := []rune(content)
	offset = clampRunes(runes, offset)
	if offset == 0 {
		return content, 0
	}
	out := make([]rune, 0, len(runes)-1)
	out = append(out, runes[:offset-1]...)
	out = append(out, runes[offset:]...)
	return string(out), offset - 1
}

func MoveLeft(content string, offset int) int {
	return Clamp(content, offset-1)
}

func MoveRight(content string, offset int) int {
	return Clamp(content, offset+1)
}

// MoveUp keeps the column when the previous line is long enough and lands
// at its end otherwise. On the first line it does nothing.
func MoveUp(content string, offset int) int {
	runes := []rune(content)
	offset = clampRunes(runes, offset)
	starts := lineStarts(runes)
	cur := lineOf(starts, offset)
	if cur == 0 {
		return offset
	}
	col := offset - starts[cur]
	prevStart := starts[cur-1]
	prevLen := starts[cur] - 1 - prevStart
	return prevStart + min(col, prevLen)
}

func MoveDown(content string, offset int) int {
	runes := []rune(content)
	offset = clampRunes(runes, offset)
	starts := lineStarts(runes)
	cur := lineOf(starts, offset)
	if cur >= len(starts)-1 {
		return offset
	}
	col := offset - starts[cur]
	nextStart := starts[cur+1]
	nextEnd := len(runes)
	if cur+2 < len(starts) {
		nextEnd = starts[cur+2] - 1
	}
	return nextStart + min(col, nextEnd-nextStart)
}

// Position reports the zero-based line and column of offset, used to place
// the terminal cursor.
func Position(content string, offset int) (line, col int) {
	runes := []rune(content)
	offset = clampRunes(runes, offset)
	for _, r := range runes[:offset] {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// lineStarts rescans the whole body on every call.
func lineStarts(runes []rune) []int {
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineOf(starts []int, offset int) int {
	line := 0
	for i, s := range starts {
		if s <= offset {
			line = i
		}
	}
	return line
}

func clampRunes(runes []rune, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(runes) {
		return len(runes)
	}
	return offset
}
