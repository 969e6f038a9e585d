package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertThenDeleteRestores(t *testing.T) {
	contents := []string{"", "a", "hello\nworld", "héllo ✓\n\nend", "\n\n"}
	for _, content := range contents {
		for o := 0; o <= Len(content); o++ {
			inserted, next := InsertChar(content, o, 'x')
			assert.Equal(t, o+1, next)
			assert.Equal(t, Len(content)+1, Len(inserted))

			restored, back := DeleteBefore(inserted, next)
			assert.Equal(t, content, restored, "content %q offset %d", content, o)
			assert.Equal(t, o, back)
		}
	}
}

func TestInsertClampsOffset(t *testing.T) {
	got, off := InsertChar("ab", 10, 'c')
	assert.Equal(t, "abc", got)
	assert.Equal(t, 3, off)

	got, off = InsertChar("ab", -4, 'c')
	assert.Equal(t, "cab", got)
	assert.Equal(t, 1, off)
}

func TestInsertUsesRuneOffsets(t *testing.T) {
	got, off := InsertChar("日本", 1, 'x')
	assert.Equal(t, "日x本", got)
	assert.Equal(t, 2, off)
}

func TestDeleteBeforeAtStartIsNoop(t *testing.T) {
	got, off := DeleteBefore("abc", 0)
	assert.Equal(t, "abc", got)
	assert.Equal(t, 0, off)
}

func TestDeleteBeforeRemovesPreviousRune(t *testing.T) {
	got, off := DeleteBefore("añb", 2)
	assert.Equal(t, "ab", got)
	assert.Equal(t, 1, off)
}

func TestHorizontalMotionClamps(t *testing.T) {
	assert.Equal(t, 0, MoveLeft("ab", 0))
	assert.Equal(t, 1, MoveLeft("ab", 2))
	assert.Equal(t, 2, MoveRight("ab", 2))
	assert.Equal(t, 1, MoveRight("ab", 0))
}

func TestMoveUp(t *testing.T) {
	tests := []struct {
		name    string
		content string
		offset  int
		want    int
	}{
		{"second line keeps column", "ab\ncd", 4, 1},
		{"first line is noop", "ab\ncd", 1, 1},
		{"short previous line clamps to its end", "a\nlonger", 6, 1},
		{"start of line", "ab\ncd", 3, 0},
		{"after trailing newline", "ab\n", 3, 0},
		{"empty previous line", "ab\n\ncd", 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoveUp(tt.content, tt.offset))
		})
	}
}

func TestMoveDown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		offset  int
		want    int
	}{
		{"keeps column", "ab\ncd", 1, 4},
		{"last line is noop", "ab\ncd", 4, 4},
		{"short next line clamps to its end", "longer\na", 5, 8},
		{"middle line clamps before newline", "abc\nd\nefg", 2, 5},
		{"onto trailing empty line", "ab\n", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoveDown(tt.content, tt.offset))
		})
	}
}

func TestPosition(t *testing.T) {
	line, col := Position("ab\ncd", 4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = Position("ab\ncd", 99)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)
}
