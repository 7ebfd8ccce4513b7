// Package lineio frames byte streams into IRC lines.
//
// Lines end in LF with an optional CR before it; both are stripped. A final
// line without a terminator is still returned.
package lineio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultMaxLineBytes bounds a single line, tags included.
// 8191 bytes of tags plus 512 of message.
const DefaultMaxLineBytes = 8191 + 512

var ErrLineTooLong = errors.New("line too long")

// Line is one framed line. Offset is the byte offset of its first byte in
// the (decoded) stream.
type Line struct {
	Number int
	Offset int64
	Text   string
}

// LineError carries the line a framing error belongs to.
type LineError struct {
	Number int
	Offset int64
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Number, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

type Option func(*Reader)

// WithEncoding decodes the stream from enc to UTF-8. nil means no decoding.
func WithEncoding(enc encoding.Encoding) Option {
	return func(r *Reader) { r.enc = enc }
}

// WithSniffing guesses the encoding from the first bytes of the stream.
func WithSniffing() Option {
	return func(r *Reader) { r.sniff = true }
}

// WithMaxLineBytes sets the longest accepted line, terminator excluded.
func WithMaxLineBytes(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.max = n
		}
	}
}

// Reader splits an io.Reader into lines.
type Reader struct {
	src   io.Reader
	br    *bufio.Reader
	enc   encoding.Encoding
	sniff bool
	max   int

	number int
	offset int64
}

func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{src: src, max: DefaultMaxLineBytes}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) init() {
	if r.br != nil {
		return
	}
	size := max(r.max+2, 4096)
	if r.sniff && r.enc == nil {
		raw := bufio.NewReaderSize(r.src, size)
		r.enc = sniffReader(raw)
		r.src = raw
	}
	if r.enc != nil {
		r.src = transform.NewReader(r.src, r.enc.NewDecoder())
	}
	r.br = bufio.NewReaderSize(r.src, size)
}

// Next returns the next line. At the end of input it returns io.EOF.
// An over-long line is skipped and reported as a *LineError wrapping
// ErrLineTooLong; reading may continue after it.
func (r *Reader) Next() (Line, error) {
	r.init()

	chunk, err := r.br.ReadSlice('\n')
	if len(chunk) == 0 && err == io.EOF {
		return Line{}, io.EOF
	}

	r.number++
	start := r.offset
	r.offset += int64(len(chunk))

	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		n, derr := r.discardLine()
		r.offset += n
		if derr != nil && derr != io.EOF {
			return Line{}, &LineError{Number: r.number, Offset: start, Err: derr}
		}
		return Line{}, &LineError{Number: r.number, Offset: start, Err: ErrLineTooLong}
	case err != nil && err != io.EOF:
		return Line{}, &LineError{Number: r.number, Offset: start, Err: err}
	}

	text := trimEOL(chunk)
	if len(text) > r.max {
		return Line{}, &LineError{Number: r.number, Offset: start, Err: ErrLineTooLong}
	}
	return Line{Number: r.number, Offset: start, Text: string(text)}, nil
}

// discardLine skips input up to and including the next LF.
func (r *Reader) discardLine() (int64, error) {
	var n int64
	for {
		chunk, err := r.br.ReadSlice('\n')
		n += int64(len(chunk))
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return n, err
	}
}

// All yields lines and framing errors until the end of input. Errors other
// than ErrLineTooLong end the sequence.
func (r *Reader) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(line, err) {
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				return
			}
		}
	}
}

// Lines splits in-memory content. Offsets are relative to content, so
// they can be used as span bases inside a source.File.
func Lines(content string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		var (
			number int
			offset int
		)
		for offset < len(content) {
			rest := content[offset:]
			end := strings.IndexByte(rest, '\n')
			next := offset + end + 1
			if end < 0 {
				end = len(rest)
				next = len(content)
			}
			number++
			line := Line{
				Number: number,
				Offset: int64(offset),
				Text:   strings.TrimSuffix(rest[:end], "\r"),
			}
			if !yield(line) {
				return
			}
			offset = next
		}
	}
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}
