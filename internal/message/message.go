package message

import (
	"fmt"

	"ircmsg/internal/components"
	"ircmsg/internal/scanner"
)

// Message is a parsed IRC line. The zero value is an empty line.
type Message struct {
	input string
	sc    scanner.Scanner
}

// New wraps input with a scanner result produced for that same input.
func New(input string, sc scanner.Scanner) Message {
	return Message{input: input, sc: sc}
}

// Parse scans line and returns its view. line must not contain CR or LF
// terminators. If line was produced by an unsafe []byte→string conversion
// the bytes must stay unchanged for as long as the message or any of its
// views is in use.
func Parse(line string) Message {
	return New(line, scanner.Scan(line))
}

// Tags returns the tags block, if the line has one.
func (m Message) Tags() (components.Tags, bool) {
	if !m.sc.HasTags() {
		return components.Tags{}, false
	}
	return components.NewTags(m.sc.Tags.Extract(m.input)), true
}

// Source returns the prefix, if the line has one.
func (m Message) Source() (components.Source, bool) {
	if !m.sc.HasSource() {
		return components.Source{}, false
	}
	return components.ParseSource(m.sc.Source.Extract(m.input)), true
}

// Command returns the command token. It is always present, possibly empty.
func (m Message) Command() components.Command {
	return components.NewCommand(m.sc.Command.Extract(m.input))
}

// Params returns the parameter list.
func (m Message) Params() components.Params {
	return components.NewParams(
		m.sc.ParamsRegion().Extract(m.input),
		m.sc.Params.Extract(m.input),
		m.sc.Trailing.Extract(m.input),
		m.sc.HasTrailing(),
	)
}

// Scanner exposes the spans the message was built from.
func (m Message) Scanner() scanner.Scanner { return m.sc }

// Raw returns the input the message was parsed from.
func (m Message) Raw() string { return m.input }

// String returns the input byte-for-byte.
func (m Message) String() string { return m.input }

func (m Message) GoString() string {
	return fmt.Sprintf("message.Parse(%q)", m.input)
}
