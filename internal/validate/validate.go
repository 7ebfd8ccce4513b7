// Package validate turns a scanned line into diagnostics.
//
// The scanner accepts anything; this is where protocol expectations live:
// command shape, tag keys, size limits. Checks never stop at the first
// finding, every problem on the line is reported.
package validate

import (
	"fmt"
	"strings"

	"ircmsg/internal/components"
	"ircmsg/internal/diag"
	"ircmsg/internal/message"
	"ircmsg/internal/scanner"
	"ircmsg/internal/source"
)

// Limits are protocol size limits. A zero field disables its check.
type Limits struct {
	MaxLineBytes  int  `toml:"max_line_bytes" env:"MAX_LINE_BYTES"` // без тегов, включая CRLF
	MaxTagBytes   int  `toml:"max_tag_bytes" env:"MAX_TAG_BYTES"`   // включая '@' и пробел
	MaxParams     int  `toml:"max_params" env:"MAX_PARAMS"`
	StrictNumeric bool `toml:"strict_numeric" env:"STRICT_NUMERIC"` // numeric не из трёх цифр: ошибка, а не предупреждение
}

// DefaultLimits returns the limits of RFC 1459 and IRCv3 message-tags.
func DefaultLimits() Limits {
	return Limits{
		MaxLineBytes: 512,
		MaxTagBytes:  8191,
		MaxParams:    15,
	}
}

// Options place the line inside a file so that diagnostics point at
// file coordinates.
type Options struct {
	File   source.FileID
	Base   uint32 // смещение начала строки в файле
	Limits Limits
}

type checker struct {
	msg  message.Message
	sc   scanner.Scanner
	r    diag.Reporter
	opts Options
}

func (c *checker) loc(sp source.Span) source.Location {
	return sp.ShiftRight(c.opts.Base).In(c.opts.File)
}

// Check reports every problem found on msg. It returns the number of
// error-level diagnostics.
func Check(msg message.Message, r diag.Reporter, opts Options) int {
	if r == nil {
		r = diag.NopReporter{}
	}
	counter := &countingReporter{next: r}
	c := &checker{msg: msg, sc: msg.Scanner(), r: counter, opts: opts}

	if msg.Raw() == "" {
		diag.ReportWarning(c.r, diag.LinEmpty, c.loc(source.Span{}), "empty line").Emit()
		return counter.errors
	}

	c.checkBytes()
	c.checkLength()
	c.checkTags()
	c.checkSource()
	c.checkCommand()
	c.checkParams()
	return counter.errors
}

func (c *checker) checkBytes() {
	input := c.msg.Raw()
	if i := strings.IndexAny(input, "\x00\r\n"); i >= 0 {
		at := uint32(i) // #nosec G115 -- bounded by scanner input length
		diag.ReportError(c.r, diag.LinForbiddenByte, c.loc(source.Span{Start: at, End: at + 1}),
			fmt.Sprintf("%s byte inside the line", byteName(input[i]))).Emit()
	}
}

func (c *checker) checkLength() {
	lim := c.opts.Limits
	if lim.MaxLineBytes > 0 {
		// тело строки начинается с ':' источника либо с команды
		body := source.Span{Start: c.sc.Command.Start, End: c.sc.ParamsRegion().End}
		if c.sc.HasSource() {
			body.Start = c.sc.Source.Start - 1
		}
		if n := int(body.Len()) + 2; n > lim.MaxLineBytes {
			diag.ReportError(c.r, diag.LimLineLength, c.loc(body),
				fmt.Sprintf("line is %d bytes with CRLF, limit is %d", n, lim.MaxLineBytes)).Emit()
		}
	}

	if lim.MaxTagBytes > 0 && c.sc.HasTags() {
		if n := int(c.sc.Tags.Len()) + 2; n > lim.MaxTagBytes {
			diag.ReportError(c.r, diag.LimTagsLength, c.loc(c.sc.Tags),
				fmt.Sprintf("tags block is %d bytes, limit is %d", n, lim.MaxTagBytes)).Emit()
		}
	}
}

func (c *checker) checkTags() {
	if !c.sc.HasTags() {
		return
	}
	if c.sc.Tags.Empty() {
		diag.ReportWarning(c.r, diag.SynEmptyTags, c.loc(c.sc.Tags), "'@' without tags").Emit()
		return
	}

	raw := c.sc.Tags.Extract(c.msg.Raw())
	seen := make(map[string]source.Span)
	off := c.sc.Tags.Start
	for _, item := range strings.Split(raw, ";") {
		itemSpan := source.Span{Start: off, End: off + uint32(len(item))} // #nosec G115 -- substring of input
		off = itemSpan.End + 1
		if item == "" {
			continue
		}
		key, _, _ := strings.Cut(item, "=")
		keySpan := source.Span{Start: itemSpan.Start, End: itemSpan.Start + uint32(len(key))} // #nosec G115 -- substring of input

		switch {
		case key == "":
			diag.ReportError(c.r, diag.SynEmptyTagKey, c.loc(itemSpan), "tag without a key").Emit()
			continue
		case !components.ValidTagKey(key):
			diag.ReportWarning(c.r, diag.SynInvalidTagKey, c.loc(keySpan),
				fmt.Sprintf("malformed tag key %q", key)).Emit()
		}

		if prev, dup := seen[key]; dup {
			diag.ReportWarning(c.r, diag.SynDuplicateTag, c.loc(keySpan),
				fmt.Sprintf("tag %q repeated, the last value wins", key)).
				WithNote(c.loc(prev), "first occurrence").
				Emit()
			continue
		}
		seen[key] = keySpan
	}
}

func (c *checker) checkSource() {
	if c.sc.HasSource() && c.sc.Source.Empty() {
		diag.ReportError(c.r, diag.SynEmptySource, c.loc(c.sc.Source), "':' without a source").Emit()
	}
}

func (c *checker) checkCommand() {
	cmd := c.msg.Command()
	span := c.sc.Command
	switch cmd.Kind() {
	case components.CommandEmpty:
		diag.ReportError(c.r, diag.SynEmptyCommand, c.loc(span), "missing command").Emit()
	case components.CommandNamed:
		if !isLetters(cmd.Raw()) {
			diag.ReportError(c.r, diag.SynMalformedCommand, c.loc(span),
				fmt.Sprintf("command %q mixes letters with other characters", cmd.Raw())).Emit()
		}
	case components.CommandNumeric:
		if len(cmd.Raw()) == 3 {
			return
		}
		msg := fmt.Sprintf("numeric %q is not three digits", cmd.Raw())
		if c.opts.Limits.StrictNumeric {
			diag.ReportError(c.r, diag.SynNumericLength, c.loc(span), msg).Emit()
		} else {
			diag.ReportWarning(c.r, diag.SynNumericLength, c.loc(span), msg).Emit()
		}
	}
}

func (c *checker) checkParams() {
	limit := c.opts.Limits.MaxParams
	if limit <= 0 {
		return
	}
	if n := c.msg.Params().Len(); n > limit {
		diag.ReportError(c.r, diag.LimParamCount, c.loc(c.sc.ParamsRegion()),
			fmt.Sprintf("%d parameters, limit is %d", n, limit)).Emit()
	}
}

func byteName(b byte) string {
	switch b {
	case 0:
		return "NUL"
	case '\r':
		return "CR"
	default:
		return "LF"
	}
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i] | 0x20; b < 'a' || b > 'z' {
			return false
		}
	}
	return true
}

// countingReporter forwards diagnostics and counts errors.
type countingReporter struct {
	next   diag.Reporter
	errors int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Location, msg string, notes []diag.Note) {
	if sev >= diag.SevError {
		r.errors++
	}
	r.next.Report(code, sev, primary, msg, notes)
}
