package fuzztests

import (
	"testing"
	"unicode/utf8"

	"ircmsg/internal/message"
)

func FuzzBuild(f *testing.F) {
	f.Add("PRIVMSG", "time", "2024-03-01", "nick!user@host", "#go", "hello world")
	f.Add("TAGMSG", "+draft/reply", "a;b c\\d\r\n", "srv", "#c", "")
	f.Add("001", "x", "", "irc.example.net", "me", ":Welcome")
	f.Add("PING", "", "", "", "", "")
	f.Fuzz(func(t *testing.T, command, tagKey, tagValue, src, middle, trailing string) {
		for _, s := range []string{command, tagKey, tagValue, src, middle, trailing} {
			if !utf8.ValidString(s) {
				t.Skip()
			}
		}

		b := message.NewBuilder(command)
		if tagKey != "" {
			b.Tag(tagKey, tagValue)
		}
		if src != "" {
			b.Source(src)
		}
		b.Params(middle).Trailing(trailing)

		line, err := b.Build()
		if err != nil {
			return
		}

		msg := message.Parse(line)
		if got := msg.Command().Raw(); got != command {
			t.Fatalf("command %q, want %q (line %q)", got, command, line)
		}
		if tagKey != "" {
			tags, ok := msg.Tags()
			if !ok {
				t.Fatalf("tags lost in %q", line)
			}
			tag, ok := tags.Get(tagKey)
			if !ok || tag.Unescaped() != tagValue {
				t.Fatalf("tag %q = %q, want %q (line %q)", tagKey, tag.Unescaped(), tagValue, line)
			}
		}
		if src != "" {
			s, ok := msg.Source()
			if !ok || s.Raw() != src {
				t.Fatalf("source %q, want %q (line %q)", s.Raw(), src, line)
			}
		}
		params := msg.Params()
		if got, _ := params.Get(0); got != middle {
			t.Fatalf("middle %q, want %q (line %q)", got, middle, line)
		}
		if got, ok := params.Trailing(); !ok || got != trailing {
			t.Fatalf("trailing %q, want %q (line %q)", got, trailing, line)
		}
	})
}
