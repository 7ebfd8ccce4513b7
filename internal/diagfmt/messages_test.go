package diagfmt

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
)

func writeAll(t *testing.T, format string, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	mw, err := NewMessageWriter(&buf, format, false)
	if err != nil {
		t.Fatalf("NewMessageWriter(%q): %v", format, err)
	}
	for i, text := range lines {
		if err := mw.WriteMessage(lineio.Line{Number: i + 1, Text: text}, message.Parse(text)); err != nil {
			t.Fatalf("WriteMessage(%q): %v", text, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMessageWriterUnknownFormat(t *testing.T) {
	_, err := NewMessageWriter(&bytes.Buffer{}, "xml", false)
	if err == nil {
		t.Fatal("NewMessageWriter(\"xml\") error = nil")
	}
	assertContains(t, err.Error(), "pretty, json, yaml, msgpack, raw")
}

func TestMessageWriterJSON(t *testing.T) {
	out := writeAll(t, "json", "PING :a<b", ":srv 001 me :Welcome")
	want := `{"command":"PING","params":{"middles":[],"trailing":"a<b"}}` + "\n" +
		`{"source":{"server":"srv"},"command":"001","params":{"middles":["me"],"trailing":"Welcome"}}` + "\n"
	if out != want {
		t.Errorf("json output = %q, want %q", out, want)
	}
}

func TestMessageWriterYAML(t *testing.T) {
	out := writeAll(t, "yaml", "PING x", "PONG y")
	if n := strings.Count(out, "command:"); n != 2 {
		t.Errorf("documents with command = %d, want 2", n)
	}
	assertContains(t, out, "---\n")
}

func TestMessageWriterMsgpack(t *testing.T) {
	out := writeAll(t, "msgpack", "PING x", "@a=b PONG :y")
	dec := msgpack.NewDecoder(strings.NewReader(out))
	var got []string
	for range 2 {
		var m message.Message
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got = append(got, m.Raw())
	}
	if want := []string{"PING x", "@a=b PONG :y"}; !slices.Equal(got, want) {
		t.Errorf("decoded = %q, want %q", got, want)
	}
}

func TestMessageWriterRaw(t *testing.T) {
	if got := writeAll(t, "raw", "PING x", ":a B"); got != "PING x\n:a B\n" {
		t.Errorf("raw output = %q", got)
	}
}

func TestMessageWriterPretty(t *testing.T) {
	out := writeAll(t, "pretty", "@+example.com/k=a\\sb;flag :nick!u@h PRIVMSG #c :\x01ACTION waves\x01")
	assertContains(t, out,
		"line 1: PRIVMSG (named)",
		"tags     @+example.com/k=a\\sb;flag  1-25",
		`+example.com/k = "a b"  [client-only, vendor example.com]`,
		"flag (flag)",
		"nick=nick user=u host=h",
		"command  PRIVMSG",
		`[0] "#c"`,
		`[1] "\x01ACTION waves\x01" (trailing)`,
		`ctcp ACTION "waves"`,
	)
}

func TestMessageWriterPrettyNumeric(t *testing.T) {
	out := writeAll(t, "pretty", ":irc.example 001 me :Welcome")
	assertContains(t, out, "line 1: 001 (numeric)", "server=irc.example", "RPL_WELCOME")
}
