package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
	"ircmsg/internal/trace"
)

// StreamFunc receives each line of a stream. err is non-nil for a line
// that could not be framed (for example lineio.ErrLineTooLong); msg is
// then the zero Message. Returning an error stops the stream.
type StreamFunc func(line lineio.Line, msg message.Message, err error) error

// ParseStream reads r line by line and parses every line. It returns the
// first error from fn, a read error or ctx.Err().
func ParseStream(ctx context.Context, r io.Reader, opts Options, fn StreamFunc) error {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse_stream")
	var lines int
	defer func() { span.End(fmt.Sprintf("lines=%d", lines)) }()

	readerOpts := []lineio.Option{lineio.WithMaxLineBytes(opts.MaxLineBytes)}
	if strings.EqualFold(strings.TrimSpace(opts.Encoding), lineio.AutoEncoding) {
		readerOpts = append(readerOpts, lineio.WithSniffing())
	} else {
		enc, err := lineio.LookupEncoding(opts.Encoding)
		if err != nil {
			return err
		}
		readerOpts = append(readerOpts, lineio.WithEncoding(enc))
	}

	for line, err := range lineio.NewReader(r, readerOpts...).All() {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		lines++
		if err != nil {
			if !errors.Is(err, lineio.ErrLineTooLong) {
				return err
			}
			var le *lineio.LineError
			if errors.As(err, &le) {
				line = lineio.Line{Number: le.Number, Offset: le.Offset}
			}
			if ferr := fn(line, message.Message{}, err); ferr != nil {
				return ferr
			}
			continue
		}
		if ferr := fn(line, message.Parse(line.Text), nil); ferr != nil {
			return ferr
		}
	}
	return nil
}
