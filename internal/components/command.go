package components

// CommandKind classifies a command token.
type CommandKind uint8

const (
	CommandEmpty CommandKind = iota
	CommandNamed
	CommandNumeric
)

func (k CommandKind) String() string {
	switch k {
	case CommandEmpty:
		return "empty"
	case CommandNamed:
		return "named"
	case CommandNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Well-known command names.
const (
	CmdPass         = "PASS"
	CmdNick         = "NICK"
	CmdUser         = "USER"
	CmdOper         = "OPER"
	CmdQuit         = "QUIT"
	CmdJoin         = "JOIN"
	CmdPart         = "PART"
	CmdTopic        = "TOPIC"
	CmdNames        = "NAMES"
	CmdList         = "LIST"
	CmdInvite       = "INVITE"
	CmdKick         = "KICK"
	CmdMode         = "MODE"
	CmdPrivmsg      = "PRIVMSG"
	CmdNotice       = "NOTICE"
	CmdTagmsg       = "TAGMSG"
	CmdPing         = "PING"
	CmdPong         = "PONG"
	CmdError        = "ERROR"
	CmdAway         = "AWAY"
	CmdWho          = "WHO"
	CmdWhois        = "WHOIS"
	CmdCap          = "CAP"
	CmdAuthenticate = "AUTHENTICATE"
	CmdBatch        = "BATCH"
)

// Command is a view over the command token. It never fails: an empty or
// odd-looking token is still returned verbatim.
type Command struct {
	raw string
}

func NewCommand(raw string) Command {
	return Command{raw: raw}
}

func (c Command) Raw() string    { return c.raw }
func (c Command) String() string { return c.raw }
func (c Command) IsEmpty() bool  { return c.raw == "" }

// Is compares the command against name byte-for-byte.
func (c Command) Is(name string) bool {
	return c.raw == name
}

// Kind classifies the token lexically: all ASCII digits is a numeric reply,
// anything else non-empty is a named command.
func (c Command) Kind() CommandKind {
	if c.raw == "" {
		return CommandEmpty
	}
	for i := 0; i < len(c.raw); i++ {
		if c.raw[i] < '0' || c.raw[i] > '9' {
			return CommandNamed
		}
	}
	return CommandNumeric
}

func (c Command) IsNumeric() bool { return c.Kind() == CommandNumeric }
func (c Command) IsNamed() bool   { return c.Kind() == CommandNamed }

// Numeric returns the reply code of a numeric command.
// Codes too large for an int are reported as not numeric.
func (c Command) Numeric() (int, bool) {
	if !c.IsNumeric() || len(c.raw) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(c.raw); i++ {
		n = n*10 + int(c.raw[i]-'0')
	}
	return n, true
}

// ReplyName returns the conventional name of a known three-digit numeric
// (e.g. RPL_WELCOME for "001").
func (c Command) ReplyName() (string, bool) {
	code, ok := c.Numeric()
	if !ok || len(c.raw) != 3 {
		return "", false
	}
	name, ok := numericNames[code]
	return name, ok
}
