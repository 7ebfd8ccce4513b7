package source

import (
	"fmt"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a line or file.
// It records offsets only, never a pointer into the text it indexes.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Extract returns the substring of input covered by the span.
// The result shares memory with input; no bytes are copied.
func (s Span) Extract(input string) string {
	return input[s.Start:s.End]
}

// Valid reports whether the span fits inside input and both of its
// offsets land on UTF-8 character boundaries.
func (s Span) Valid(input string) bool {
	n := uint64(len(input))
	if s.Start > s.End || uint64(s.End) > n {
		return false
	}
	return onBoundary(input, s.Start) && onBoundary(input, s.End)
}

func onBoundary(input string, off uint32) bool {
	if int(off) == len(input) {
		return true
	}
	return utf8.RuneStart(input[off])
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftLeft сдвигает span влево на n байт.
// Если n больше Start, возвращает исходный span.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		Start: s.Start - n,
		End:   s.End - n,
	}
}

// ShiftRight переносит span из координат строки в координаты файла,
// где n: смещение начала строки.
func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// ZeroideToStart схлопывает span в его начало.
func (s Span) ZeroideToStart() Span {
	return Span{Start: s.Start, End: s.Start}
}

// ZeroideToEnd схлопывает span в его конец.
func (s Span) ZeroideToEnd() Span {
	return Span{Start: s.End, End: s.End}
}

// Location pins a span to a file of a FileSet.
type Location struct {
	File FileID
	Span Span
}

// In attaches the span to file f.
func (s Span) In(f FileID) Location {
	return Location{File: f, Span: s}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d-%d", l.File, l.Span.Start, l.Span.End)
}
