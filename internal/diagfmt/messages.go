package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"ircmsg/internal/components"
	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
	"ircmsg/internal/source"
)

// MessageWriter renders parsed lines in one output format.
// Close flushes whatever the format buffers; it does not close the
// underlying writer.
type MessageWriter interface {
	WriteMessage(line lineio.Line, msg message.Message) error
	Close() error
}

// MessageFormats lists the names accepted by NewMessageWriter.
func MessageFormats() []string {
	return []string{"pretty", "json", "yaml", "msgpack", "raw"}
}

// NewMessageWriter returns a writer for format. Color only affects "pretty".
func NewMessageWriter(w io.Writer, format string, colorize bool) (MessageWriter, error) {
	switch format {
	case "", "pretty":
		return &prettyWriter{w: w, p: newPalette(colorize), key: keyColor(colorize)}, nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return &jsonWriter{enc: enc}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	case "msgpack":
		return &msgpackWriter{enc: msgpack.NewEncoder(w)}, nil
	case "raw":
		return &rawWriter{w: w}, nil
	}
	return nil, fmt.Errorf("unknown message format %q (want one of %s)", format, strings.Join(MessageFormats(), ", "))
}

// jsonWriter writes one object per line (NDJSON).
type jsonWriter struct{ enc *json.Encoder }

func (j *jsonWriter) WriteMessage(_ lineio.Line, msg message.Message) error { return j.enc.Encode(msg) }
func (j *jsonWriter) Close() error                                        { return nil }

// yamlWriter writes a stream of documents separated by "---".
type yamlWriter struct{ enc *yaml.Encoder }

func (y *yamlWriter) WriteMessage(_ lineio.Line, msg message.Message) error { return y.enc.Encode(msg) }
func (y *yamlWriter) Close() error                                        { return y.enc.Close() }

// msgpackWriter writes concatenated msgpack values.
type msgpackWriter struct{ enc *msgpack.Encoder }

func (m *msgpackWriter) WriteMessage(_ lineio.Line, msg message.Message) error {
	return m.enc.Encode(msg)
}
func (m *msgpackWriter) Close() error { return nil }

// rawWriter echoes the line, terminated by LF.
type rawWriter struct{ w io.Writer }

func (r *rawWriter) WriteMessage(_ lineio.Line, msg message.Message) error {
	_, err := io.WriteString(r.w, msg.Raw()+"\n")
	return err
}
func (r *rawWriter) Close() error { return nil }

func keyColor(enabled bool) *color.Color {
	c := color.New(color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// prettyWriter prints every region of the line with its byte span.
type prettyWriter struct {
	w   io.Writer
	p   palette
	key *color.Color
}

func (pw *prettyWriter) Close() error { return nil }

func (pw *prettyWriter) WriteMessage(line lineio.Line, msg message.Message) error {
	var b strings.Builder
	sc := msg.Scanner()
	cmd := msg.Command()

	fmt.Fprintf(&b, "%s %d: %s (%s)\n", pw.key.Sprint("line"), line.Number, cmd.Raw(), cmd.Kind())

	if tags, ok := msg.Tags(); ok {
		pw.region(&b, "tags", "@"+tags.Raw(), sc.Tags)
		for tag := range tags.All() {
			var attrs []string
			if tag.IsClientOnly() {
				attrs = append(attrs, "client-only")
			}
			if v := tag.Vendor(); v != "" {
				attrs = append(attrs, "vendor "+v)
			}
			value := "(flag)"
			if tag.HasValue {
				value = "= " + fmt.Sprintf("%q", tag.Unescaped())
			}
			fmt.Fprintf(&b, "    %s %s", tag.Key, value)
			if len(attrs) > 0 {
				fmt.Fprintf(&b, "  [%s]", strings.Join(attrs, ", "))
			}
			b.WriteByte('\n')
		}
	}

	if src, ok := msg.Source(); ok {
		pw.region(&b, "source", src.Raw(), sc.Source)
		switch {
		case src.IsUser():
			fmt.Fprintf(&b, "    nick=%s user=%s host=%s\n", src.Name, src.User, src.Host)
		case src.Name != "":
			fmt.Fprintf(&b, "    server=%s\n", src.Name)
		}
	}

	pw.region(&b, "command", cmd.Raw(), sc.Command)
	if name, ok := cmd.ReplyName(); ok {
		fmt.Fprintf(&b, "    %s\n", name)
	}

	params := msg.Params()
	if !params.IsEmpty() {
		pw.region(&b, "params", params.Raw(), sc.ParamsRegion())
		last := params.Len() - 1
		for i, p := range params.All() {
			fmt.Fprintf(&b, "    [%d] %q", i, p)
			if i == last && params.HasTrailing() {
				b.WriteString(" (trailing)")
			}
			b.WriteByte('\n')
		}
		if text, ok := params.Trailing(); ok {
			if ctcp, ok := components.ParseCTCP(text); ok {
				fmt.Fprintf(&b, "    ctcp %s %q\n", ctcp.Command, ctcp.Args)
			}
		}
	}

	_, err := io.WriteString(pw.w, b.String())
	return err
}

func (pw *prettyWriter) region(b *strings.Builder, name, text string, span source.Span) {
	fmt.Fprintf(b, "  %s %s  %s\n", pw.key.Sprintf("%-8s", name), text, pw.p.code.Sprint(span.String()))
}
