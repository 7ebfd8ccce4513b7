package components

import "testing"

func TestParseSource(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Source
		isUser bool
	}{
		{"server", "irc.example.com", Source{raw: "irc.example.com", Name: "irc.example.com"}, false},
		{"full user", "nick!user@host", Source{raw: "nick!user@host", Name: "nick", User: "user", Host: "host", hasUser: true, hasHost: true}, true},
		{"nick and host", "nick@host", Source{raw: "nick@host", Name: "nick", Host: "host", hasHost: true}, true},
		{"nick and user", "nick!user", Source{raw: "nick!user", Name: "nick", User: "user", hasUser: true}, true},
		{"bang inside host", "nick!u@h!x", Source{raw: "nick!u@h!x", Name: "nick", User: "u", Host: "h!x", hasUser: true, hasHost: true}, true},
		{"empty host", "nick@", Source{raw: "nick@", Name: "nick", hasHost: true}, true},
		{"empty user", "nick!", Source{raw: "nick!", Name: "nick", hasUser: true}, true},
		{"empty", "", Source{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSource(tt.raw)
			if got != tt.want {
				t.Errorf("ParseSource(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
			if got.IsUser() != tt.isUser || got.IsServer() == tt.isUser {
				t.Errorf("ParseSource(%q).IsUser() = %v, want %v", tt.raw, got.IsUser(), tt.isUser)
			}
			if got.HasUser() != tt.want.hasUser || got.HasHost() != tt.want.hasHost {
				t.Errorf("ParseSource(%q) HasUser/HasHost = %v/%v, want %v/%v",
					tt.raw, got.HasUser(), got.HasHost(), tt.want.hasUser, tt.want.hasHost)
			}
			if got.String() != tt.raw {
				t.Errorf("ParseSource(%q).String() = %q", tt.raw, got.String())
			}
		})
	}
}

func TestSourceNickServer(t *testing.T) {
	user := ParseSource("dan!d@localhost")
	if nick, ok := user.Nick(); !ok || nick != "dan" {
		t.Errorf("Nick() = (%q, %v), want (\"dan\", true)", nick, ok)
	}
	if _, ok := user.Server(); ok {
		t.Error("Server() on a user prefix = true, want false")
	}

	server := ParseSource("irc.example.com")
	if name, ok := server.Server(); !ok || name != "irc.example.com" {
		t.Errorf("Server() = (%q, %v), want (\"irc.example.com\", true)", name, ok)
	}
	if _, ok := server.Nick(); ok {
		t.Error("Nick() on a server prefix = true, want false")
	}
}
