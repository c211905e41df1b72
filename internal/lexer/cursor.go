package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ranoc/internal/source"
)

// Cursor представляет собой позицию в исходном тексте
type Cursor struct {
	Src []byte
	Off uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// NewCursor creates a new cursor over src.
func NewCursor(src []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return Cursor{Src: src, Limit: limit}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt returns the byte n positions ahead, or 0 and false past the end.
func (c *Cursor) PeekAt(n uint32) (byte, bool) {
	if c.Off+n >= c.Limit {
		return 0, false
	}
	return c.Src[c.Off+n], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Advance moves the cursor n bytes forward, clamped to Limit.
func (c *Cursor) Advance(n uint32) {
	c.Off = min(c.Off+n, c.Limit)
}

// Rest returns the unread input.
func (c *Cursor) Rest() []byte {
	return c.Src[c.Off:c.Limit]
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// RangeFrom returns a span with the byte range [m, Off) and no line info.
func (c *Cursor) RangeFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off, Len: c.Off - uint32(m)}
}
