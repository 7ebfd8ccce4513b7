package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Кадрирование строк и кодировка
	LinInfo          Code = 1000
	LinTooLong       Code = 1001
	LinDecode        Code = 1002
	LinEmpty         Code = 1003
	LinForbiddenByte Code = 1004

	// Структура сообщения
	SynInfo             Code = 2000
	SynEmptyCommand     Code = 2001
	SynMalformedCommand Code = 2002
	SynNumericLength    Code = 2003
	SynEmptyTags        Code = 2004
	SynEmptyTagKey      Code = 2005
	SynInvalidTagKey    Code = 2006
	SynDuplicateTag     Code = 2007
	SynEmptySource      Code = 2008

	// Лимиты протокола
	LimInfo       Code = 3000
	LimLineLength Code = 3001
	LimTagsLength Code = 3002
	LimParamCount Code = 3003

	// I/O
	IOLoadFileError Code = 4001
	IOReadError     Code = 4002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LinInfo:             "Line framing information",
		LinTooLong:          "Line exceeds the reader buffer",
		LinDecode:           "Line could not be decoded",
		LinEmpty:            "Empty line",
		LinForbiddenByte:    "NUL, CR or LF inside a line",
		SynInfo:             "Message structure information",
		SynEmptyCommand:     "Missing command",
		SynMalformedCommand: "Command is neither a word nor a numeric",
		SynNumericLength:    "Numeric reply is not three digits",
		SynEmptyTags:        "Empty tags block",
		SynEmptyTagKey:      "Tag without a key",
		SynInvalidTagKey:    "Malformed tag key",
		SynDuplicateTag:     "Tag key repeated",
		SynEmptySource:      "Empty source prefix",
		LimInfo:             "Protocol limits information",
		LimLineLength:       "Line longer than the protocol limit",
		LimTagsLength:       "Tags block longer than the protocol limit",
		LimParamCount:       "Too many parameters",
		IOLoadFileError:     "I/O load file error",
		IOReadError:         "I/O read error",
		ObsInfo:             "Observability information",
		ObsTimings:          "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LIN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LIM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
