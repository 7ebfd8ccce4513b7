package scanner

import (
	"fmt"

	"fortio.org/safecast"

	"ircmsg/internal/source"
)

// Cursor представляет собой позицию в строке протокола.
type Cursor struct {
	Input string
	Off   uint32
	Limit uint32 // exclusive upper bound for Off
}

// NewCursor creates a cursor over the whole input.
func NewCursor(input string) Cursor {
	limit, err := safecast.Conv[uint32](len(input))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return Cursor{
		Input: input,
		Off:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Input[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Input[c.Off], c.Input[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Input[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Input[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// SkipWhile advances past every byte equal to b and reports how many were skipped.
func (c *Cursor) SkipWhile(b byte) uint32 {
	start := c.Off
	for !c.EOF() && c.Input[c.Off] == b {
		c.Off++
	}
	return c.Off - start
}

// SkipUntil advances to the next occurrence of b (or EOF) without consuming it.
func (c *Cursor) SkipUntil(b byte) {
	for !c.EOF() && c.Input[c.Off] != b {
		c.Off++
	}
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
