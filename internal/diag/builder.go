package diag

import "ircmsg/internal/source"

func New(sev Severity, code Code, primary source.Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(code Code, primary source.Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(loc source.Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Loc: loc, Msg: msg})
	return d
}
