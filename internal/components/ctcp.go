package components

import "strings"

const ctcpDelim = 0x01

// CTCP is a client-to-client request carried in a PRIVMSG/NOTICE trailing
// parameter: "\x01COMMAND args\x01". Both fields are substrings of the input.
type CTCP struct {
	Command string
	Args    string
}

// IsCTCP reports whether s is framed as a CTCP message.
func IsCTCP(s string) bool {
	return len(s) > 1 && s[0] == ctcpDelim
}

// ParseCTCP splits a CTCP payload. The closing delimiter is optional,
// as many clients omit it. Command case is left untouched.
func ParseCTCP(s string) (CTCP, bool) {
	if !IsCTCP(s) {
		return CTCP{}, false
	}
	body := s[1:]
	if n := len(body); n > 0 && body[n-1] == ctcpDelim {
		body = body[:n-1]
	}
	cmd, args, _ := strings.Cut(body, " ")
	return CTCP{Command: cmd, Args: args}, true
}

// IsAction reports whether this is a /me action.
func (c CTCP) IsAction() bool {
	return c.Command == "ACTION"
}
