package components

import "strings"

// Source is the origin of a message: either a user (nick[!user][@host])
// or a bare server name. All fields are substrings of the raw prefix.
type Source struct {
	raw     string
	Name    string // nickname or server name
	User    string
	Host    string
	hasUser bool
	hasHost bool
}

// ParseSource splits a raw prefix (without the leading ':').
// The user form is recognised by the presence of '!' or '@'; anything
// else is taken as a server name.
func ParseSource(raw string) Source {
	out := Source{raw: raw}
	in := raw

	if hostStart := strings.IndexByte(in, '@'); hostStart != -1 {
		out.Host, out.hasHost = in[hostStart+1:], true
		in = in[:hostStart]
	}
	if userStart := strings.IndexByte(in, '!'); userStart != -1 {
		out.User, out.hasUser = in[userStart+1:], true
		in = in[:userStart]
	}
	out.Name = in
	return out
}

func (s Source) Raw() string { return s.raw }

// IsUser reports whether the prefix is in nick[!user][@host] form.
func (s Source) IsUser() bool {
	return strings.ContainsAny(s.raw, "!@")
}

// HasUser reports whether the prefix carries a '!' user part, even an
// empty one.
func (s Source) HasUser() bool { return s.hasUser }

// HasHost reports whether the prefix carries an '@' host part, even an
// empty one.
func (s Source) HasHost() bool { return s.hasHost }

// IsServer reports whether the prefix is a bare server name.
func (s Source) IsServer() bool {
	return !s.IsUser()
}

// Nick returns the nickname of a user prefix.
func (s Source) Nick() (string, bool) {
	if !s.IsUser() {
		return "", false
	}
	return s.Name, true
}

// Server returns the server name of a server prefix.
func (s Source) Server() (string, bool) {
	if s.IsUser() {
		return "", false
	}
	return s.Name, true
}

func (s Source) String() string { return s.raw }
