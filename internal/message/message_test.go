package message

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantMessage struct {
	tags     map[string]string // nil means absent
	nick     string
	user     string
	host     string
	server   string
	noSource bool
	command  string
	numeric  bool
	middles  []string
	trailing *string
}

func ptr(s string) *string { return &s }

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name string
		line string
		want wantMessage
	}{
		{
			name: "tags source privmsg",
			line: "@id=234AB :dan!d@localhost PRIVMSG #chan :Hello",
			want: wantMessage{
				tags:     map[string]string{"id": "234AB"},
				nick:     "dan",
				user:     "d",
				host:     "localhost",
				command:  "PRIVMSG",
				middles:  []string{"#chan"},
				trailing: ptr("Hello"),
			},
		},
		{
			name: "server numeric",
			line: ":irc.example.com 001 nick :Welcome",
			want: wantMessage{
				server:   "irc.example.com",
				command:  "001",
				numeric:  true,
				middles:  []string{"nick"},
				trailing: ptr("Welcome"),
			},
		},
		{
			name: "ping",
			line: "PING :123456",
			want: wantMessage{
				noSource: true,
				command:  "PING",
				trailing: ptr("123456"),
			},
		},
		{
			name: "join",
			line: "JOIN #chan1,#chan2",
			want: wantMessage{
				noSource: true,
				command:  "JOIN",
				middles:  []string{"#chan1,#chan2"},
			},
		},
		{
			name: "empty trailing",
			line: "CMD :",
			want: wantMessage{noSource: true, command: "CMD", trailing: ptr("")},
		},
		{
			name: "extra spaces before trailing",
			line: "CMD a  :trail",
			want: wantMessage{noSource: true, command: "CMD", middles: []string{"a"}, trailing: ptr("trail")},
		},
		{
			name: "runs of spaces",
			line: "@a=1   :srv   CMD   x   y",
			want: wantMessage{
				tags:    map[string]string{"a": "1"},
				server:  "srv",
				command: "CMD",
				middles: []string{"x", "y"},
			},
		},
		{
			name: "empty line",
			line: "",
			want: wantMessage{noSource: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Parse(tt.line)
			assert.Equal(t, tt.line, msg.String())

			tags, ok := msg.Tags()
			assert.Equal(t, tt.want.tags != nil, ok)
			for k, v := range tt.want.tags {
				tag, found := tags.Get(k)
				require.True(t, found, "tag %q", k)
				assert.Equal(t, v, tag.Value)
			}

			src, ok := msg.Source()
			assert.Equal(t, !tt.want.noSource, ok)
			if ok {
				if tt.want.server != "" {
					name, isServer := src.Server()
					assert.True(t, isServer)
					assert.Equal(t, tt.want.server, name)
				} else {
					nick, isUser := src.Nick()
					assert.True(t, isUser)
					assert.Equal(t, tt.want.nick, nick)
					assert.Equal(t, tt.want.user, src.User)
					assert.Equal(t, tt.want.host, src.Host)
				}
			}

			cmd := msg.Command()
			assert.Equal(t, tt.want.command, cmd.Raw())
			assert.Equal(t, tt.want.numeric, cmd.IsNumeric())

			params := msg.Params()
			assert.Equal(t, tt.want.middles, slices.Collect(params.Middles()))
			trailing, ok := params.Trailing()
			if tt.want.trailing == nil {
				assert.False(t, ok)
			} else {
				assert.True(t, ok)
				assert.Equal(t, *tt.want.trailing, trailing)
			}
		})
	}
}

func TestParamsRawBridgesTrailing(t *testing.T) {
	msg := Parse(":s CMD a b :c d")
	assert.Equal(t, " a b :c d", msg.Params().Raw())

	msg = Parse("CMD a b")
	assert.Equal(t, " a b", msg.Params().Raw())
}

func TestZeroMessage(t *testing.T) {
	var msg Message
	_, ok := msg.Tags()
	assert.False(t, ok)
	_, ok = msg.Source()
	assert.False(t, ok)
	assert.True(t, msg.Command().IsEmpty())
	assert.True(t, msg.Params().IsEmpty())
	assert.Equal(t, "", msg.String())
}

func TestAccessorsDoNotAllocate(t *testing.T) {
	msg := Parse("@id=1;x :n!u@h PRIVMSG #a #b :hi there")
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = msg.Tags()
		_, _ = msg.Source()
		_ = msg.Command().IsNumeric()
		_, _ = msg.Params().Trailing()
	})
	assert.Zero(t, allocs)
}

func TestGoString(t *testing.T) {
	assert.Equal(t, `message.Parse("PING :x")`, Parse("PING :x").GoString())
}
