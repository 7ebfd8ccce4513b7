package scanner

import (
	"ircmsg/internal/source"
)

type presence uint8

const (
	hasTags presence = 1 << iota
	hasSource
	hasTrailing
)

// Scanner holds the regions found in a single line.
// It is a small value type: copying it copies offsets only.
type Scanner struct {
	Tags     source.Span // без ведущего '@'
	Source   source.Span // без ведущего ':'
	Command  source.Span
	Params   source.Span // middle-параметры, включая разделяющие пробелы
	Trailing source.Span // без " :"
	flags    presence
}

func (s Scanner) HasTags() bool     { return s.flags&hasTags != 0 }
func (s Scanner) HasSource() bool   { return s.flags&hasSource != 0 }
func (s Scanner) HasTrailing() bool { return s.flags&hasTrailing != 0 }

// ParamsRegion returns the contiguous params region: the middles span alone,
// or middles through the end of the trailing parameter when one is present.
func (s Scanner) ParamsRegion() source.Span {
	if s.HasTrailing() {
		return s.Params.Cover(s.Trailing)
	}
	return s.Params
}

// Scan performs one pass over input and returns the spans of its regions.
func Scan(input string) Scanner {
	var s Scanner
	c := NewCursor(input)

	// 1) теги: '@' до первого пробела
	if c.Eat('@') {
		m := c.Mark()
		c.SkipUntil(' ')
		s.Tags = c.SpanFrom(m)
		s.flags |= hasTags
		c.SkipWhile(' ')
	}

	// 2) источник: ':' до первого пробела
	if c.Eat(':') {
		m := c.Mark()
		c.SkipUntil(' ')
		s.Source = c.SpanFrom(m)
		s.flags |= hasSource
		c.SkipWhile(' ')
	}

	// 3) команда обязательна, но может оказаться пустой
	m := c.Mark()
	c.SkipUntil(' ')
	s.Command = c.SpanFrom(m)

	// 4) параметры: первый " :" начинает trailing
	m = c.Mark()
	for !c.EOF() {
		if b0, b1, ok := c.Peek2(); ok && b0 == ' ' && b1 == ':' {
			s.Params = c.SpanFrom(m)
			c.Bump()
			c.Bump()
			s.Trailing = source.Span{Start: c.Off, End: c.Limit}
			s.flags |= hasTrailing
			return s
		}
		c.Bump()
	}
	s.Params = c.SpanFrom(m)
	s.Trailing = s.Params.ZeroideToEnd()
	return s
}
