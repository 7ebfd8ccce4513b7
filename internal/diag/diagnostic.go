package diag

import (
	"ircmsg/internal/source"
)

type Note struct {
	Loc source.Location
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
}
