package scanner_test

import (
	"testing"

	"ircmsg/internal/scanner"
	"ircmsg/internal/testkit"
)

type regions struct {
	tags, source    string
	hasTags, hasSrc bool
	command, params string
	trailing        string
	hasTrailing     bool
}

func extract(input string, sc scanner.Scanner) regions {
	return regions{
		tags:        sc.Tags.Extract(input),
		source:      sc.Source.Extract(input),
		hasTags:     sc.HasTags(),
		hasSrc:      sc.HasSource(),
		command:     sc.Command.Extract(input),
		params:      sc.Params.Extract(input),
		trailing:    sc.Trailing.Extract(input),
		hasTrailing: sc.HasTrailing(),
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  regions
	}{
		{
			name:  "full line",
			input: "@id=234AB :dan!d@localhost PRIVMSG #chan :Hello",
			want: regions{
				tags: "id=234AB", hasTags: true,
				source: "dan!d@localhost", hasSrc: true,
				command: "PRIVMSG", params: " #chan",
				trailing: "Hello", hasTrailing: true,
			},
		},
		{
			name:  "server numeric",
			input: ":irc.example.com 001 nick :Welcome",
			want: regions{
				source: "irc.example.com", hasSrc: true,
				command: "001", params: " nick",
				trailing: "Welcome", hasTrailing: true,
			},
		},
		{
			name:  "ping",
			input: "PING :123456",
			want:  regions{command: "PING", params: "", trailing: "123456", hasTrailing: true},
		},
		{
			name:  "no trailing",
			input: "JOIN #chan1,#chan2",
			want:  regions{command: "JOIN", params: " #chan1,#chan2"},
		},
		{
			name:  "empty trailing is present",
			input: "CMD a b :",
			want:  regions{command: "CMD", params: " a b", trailing: "", hasTrailing: true},
		},
		{
			name:  "trailing keeps spaces and colons",
			input: "PRIVMSG #c :a :b  c",
			want:  regions{command: "PRIVMSG", params: " #c", trailing: "a :b  c", hasTrailing: true},
		},
		{
			name:  "extra spaces before trailing colon",
			input: "CMD a  :trail",
			want:  regions{command: "CMD", params: " a ", trailing: "trail", hasTrailing: true},
		},
		{
			name:  "runs of spaces between prefix parts",
			input: "@a=b   :src   CMD",
			want: regions{
				tags: "a=b", hasTags: true,
				source: "src", hasSrc: true,
				command: "CMD",
			},
		},
		{
			name:  "middle containing colon is not trailing",
			input: "MODE #c +k a:b",
			want:  regions{command: "MODE", params: " #c +k a:b"},
		},
		{
			name:  "command only",
			input: "QUIT",
			want:  regions{command: "QUIT"},
		},
		{
			name:  "empty line",
			input: "",
			want:  regions{},
		},
		{
			name:  "tags marker only",
			input: "@",
			want:  regions{hasTags: true},
		},
		{
			name:  "source marker only",
			input: ":",
			want:  regions{hasSrc: true},
		},
		{
			name:  "prefix without command",
			input: ":nick!u@h ",
			want:  regions{source: "nick!u@h", hasSrc: true},
		},
		{
			name:  "leading space leaves command empty",
			input: " PING",
			want:  regions{params: " PING"},
		},
		{
			name:  "source not at start after tags is still source",
			input: "@k :s PING :x",
			want: regions{
				tags: "k", hasTags: true,
				source: "s", hasSrc: true,
				command: "PING", trailing: "x", hasTrailing: true,
			},
		},
		{
			name:  "multibyte text",
			input: ":ник PRIVMSG #канал :привет мир",
			want: regions{
				source: "ник", hasSrc: true,
				command: "PRIVMSG", params: " #канал",
				trailing: "привет мир", hasTrailing: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scanner.Scan(tt.input)
			if got := extract(tt.input, sc); got != tt.want {
				t.Errorf("Scan(%q)\n got  %+v\n want %+v", tt.input, got, tt.want)
			}
			if err := testkit.CheckSpanInvariants(tt.input, sc); err != nil {
				t.Errorf("span invariants: %v", err)
			}
		})
	}
}

func TestScanParamsRegion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "PRIVMSG #chan :Hello", want: " #chan :Hello"},
		{input: "PING :x", want: " :x"},
		{input: "JOIN #a", want: " #a"},
		{input: "QUIT", want: ""},
		{input: "CMD a :", want: " a :"},
	}
	for _, tt := range tests {
		sc := scanner.Scan(tt.input)
		if got := sc.ParamsRegion().Extract(tt.input); got != tt.want {
			t.Errorf("ParamsRegion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScanPresence(t *testing.T) {
	tests := []struct {
		input     string
		tags, src bool
	}{
		{input: "@a PING", tags: true},
		{input: ":a PING", src: true},
		{input: "@a :b PING", tags: true, src: true},
		{input: "@a    :b PING", tags: true, src: true},
		{input: "PING :a", tags: false, src: false},
		{input: "PING @a", tags: false, src: false},
	}
	for _, tt := range tests {
		sc := scanner.Scan(tt.input)
		if sc.HasTags() != tt.tags || sc.HasSource() != tt.src {
			t.Errorf("Scan(%q): tags=%v source=%v, want tags=%v source=%v",
				tt.input, sc.HasTags(), sc.HasSource(), tt.tags, tt.src)
		}
	}
}

func TestScanDoesNotAllocate(t *testing.T) {
	line := "@time=2024-01-01T00:00:00Z;msgid=abc :nick!user@host PRIVMSG #chan :hello there"
	allocs := testing.AllocsPerRun(100, func() {
		_ = scanner.Scan(line)
	})
	if allocs != 0 {
		t.Errorf("Scan allocated %.1f times per run, want 0", allocs)
	}
}
