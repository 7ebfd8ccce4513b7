package message

import (
	"strings"

	"ircmsg/internal/components"
)

type builderTag struct {
	key      string
	value    string
	hasValue bool
}

// Builder assembles an IRC line. Methods record parts and never fail;
// every check happens in Build.
type Builder struct {
	command     string
	tags        []builderTag
	source      string
	hasSource   bool
	params      []string
	trailing    string
	hasTrailing bool
}

func NewBuilder(command string) *Builder {
	return &Builder{command: command}
}

// Tag appends key=value. The value is given unescaped.
func (b *Builder) Tag(key, value string) *Builder {
	b.tags = append(b.tags, builderTag{key: key, value: value, hasValue: true})
	return b
}

// TagFlag appends a tag without a value.
func (b *Builder) TagFlag(key string) *Builder {
	b.tags = append(b.tags, builderTag{key: key})
	return b
}

// Source sets the prefix verbatim (without ':').
func (b *Builder) Source(raw string) *Builder {
	b.source, b.hasSource = raw, true
	return b
}

// SourceUser sets a nick[!user][@host] prefix; empty parts are omitted.
func (b *Builder) SourceUser(nick, user, host string) *Builder {
	var sb strings.Builder
	sb.WriteString(nick)
	if user != "" {
		sb.WriteByte('!')
		sb.WriteString(user)
	}
	if host != "" {
		sb.WriteByte('@')
		sb.WriteString(host)
	}
	return b.Source(sb.String())
}

// Params appends positional parameters. The last one may be written as
// trailing if it has to be.
func (b *Builder) Params(params ...string) *Builder {
	b.params = append(b.params, params...)
	return b
}

// Trailing sets an explicit trailing parameter, written after " :" even
// when it would fit as a middle.
func (b *Builder) Trailing(s string) *Builder {
	b.trailing, b.hasTrailing = s, true
	return b
}

// Build validates the parts and returns the line without CRLF.
func (b *Builder) Build() (string, error) {
	if err := b.check(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(b.sizeHint())

	if len(b.tags) > 0 {
		sb.WriteByte('@')
		for i, t := range b.tags {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(t.key)
			if t.hasValue {
				sb.WriteByte('=')
				sb.WriteString(components.EscapeTagValue(t.value))
			}
		}
		sb.WriteByte(' ')
	}
	if b.hasSource {
		sb.WriteByte(':')
		sb.WriteString(b.source)
		sb.WriteByte(' ')
	}
	sb.WriteString(b.command)
	for _, p := range b.params {
		sb.WriteByte(' ')
		if needsTrailing(p) {
			sb.WriteByte(':')
		}
		sb.WriteString(p)
	}
	if b.hasTrailing {
		sb.WriteString(" :")
		sb.WriteString(b.trailing)
	}
	return sb.String(), nil
}

// Message builds the line and parses it back.
func (b *Builder) Message() (Message, error) {
	line, err := b.Build()
	if err != nil {
		return Message{}, err
	}
	return Parse(line), nil
}

func (b *Builder) check() error {
	switch {
	case b.command == "":
		return buildErr("command", -1, ErrEmptyCommand)
	case hasForbidden(b.command):
		return buildErr("command", -1, ErrForbiddenByte)
	case strings.IndexByte(b.command, ' ') >= 0, b.command[0] == ':', b.command[0] == '@':
		return buildErr("command", -1, ErrInvalidCommand)
	}

	for i, t := range b.tags {
		if !components.ValidTagKey(t.key) {
			return buildErr("tag", i, ErrInvalidTagKey)
		}
		// CR and LF are escaped, NUL is not.
		if strings.IndexByte(t.value, 0) >= 0 {
			return buildErr("tag", i, ErrForbiddenByte)
		}
	}

	if b.hasSource {
		switch {
		case hasForbidden(b.source):
			return buildErr("source", -1, ErrForbiddenByte)
		case b.source == "", strings.IndexByte(b.source, ' ') >= 0:
			return buildErr("source", -1, ErrInvalidSource)
		}
	}

	last := len(b.params) - 1
	for i, p := range b.params {
		if hasForbidden(p) {
			return buildErr("param", i, ErrForbiddenByte)
		}
		if needsTrailing(p) && (i != last || b.hasTrailing) {
			return buildErr("param", i, ErrParamNeedsTrailing)
		}
	}

	if b.hasTrailing && hasForbidden(b.trailing) {
		return buildErr("trailing", -1, ErrForbiddenByte)
	}
	return nil
}

func (b *Builder) sizeHint() int {
	n := len(b.command) + len(b.source) + len(b.trailing) + 4
	for _, t := range b.tags {
		n += len(t.key) + len(t.value) + 2
	}
	for _, p := range b.params {
		n += len(p) + 2
	}
	return n
}

func needsTrailing(p string) bool {
	return p == "" || p[0] == ':' || strings.IndexByte(p, ' ') >= 0
}

func hasForbidden(s string) bool {
	return strings.ContainsAny(s, "\x00\r\n")
}
