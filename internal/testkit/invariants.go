package testkit

import (
	"fmt"
	"strings"

	"ircmsg/internal/scanner"
	"ircmsg/internal/source"
)

// CheckSpanInvariants runs the span invariants on a scanned line:
//  1. every span is in bounds and on UTF-8 character boundaries
//  2. regions appear in grammar order: tags < source < command < params <= trailing
//  3. presence flags agree with the delimiters found in input
//  4. the params region is the middles span, bridged to trailing when present
func CheckSpanInvariants(input string, sc scanner.Scanner) error {
	spans := []struct {
		name string
		span source.Span
	}{
		{"tags", sc.Tags},
		{"source", sc.Source},
		{"command", sc.Command},
		{"params", sc.Params},
		{"trailing", sc.Trailing},
	}
	for _, s := range spans {
		if !s.span.Valid(input) {
			return fmt.Errorf("%s span %v invalid for input of %d bytes", s.name, s.span, len(input))
		}
	}

	if sc.HasTags() {
		if !strings.HasPrefix(input, "@") {
			return fmt.Errorf("tags reported without leading '@'")
		}
		if sc.Tags.Start != 1 {
			return fmt.Errorf("tags span must start after '@', got %v", sc.Tags)
		}
		if strings.IndexByte(sc.Tags.Extract(input), ' ') >= 0 {
			return fmt.Errorf("tags span contains a space")
		}
	} else if strings.HasPrefix(input, "@") {
		return fmt.Errorf("line starts with '@' but no tags reported")
	}

	if sc.HasSource() {
		if sc.Source.Start == 0 || input[sc.Source.Start-1] != ':' {
			return fmt.Errorf("source span %v not preceded by ':'", sc.Source)
		}
		if sc.HasTags() && sc.Source.Start <= sc.Tags.End {
			return fmt.Errorf("source span %v overlaps tags %v", sc.Source, sc.Tags)
		}
	}

	prev := uint32(0)
	if sc.HasTags() {
		prev = sc.Tags.End
	}
	if sc.HasSource() {
		prev = sc.Source.End
	}
	if sc.Command.Start < prev {
		return fmt.Errorf("command span %v starts before previous region end %d", sc.Command, prev)
	}
	if strings.IndexByte(sc.Command.Extract(input), ' ') >= 0 {
		return fmt.Errorf("command span contains a space")
	}
	if sc.Params.Start != sc.Command.End {
		return fmt.Errorf("params span %v does not follow command %v", sc.Params, sc.Command)
	}

	if sc.HasTrailing() {
		if sc.Trailing.Start < 2 || input[sc.Trailing.Start-2:sc.Trailing.Start] != " :" {
			return fmt.Errorf("trailing span %v not introduced by \" :\"", sc.Trailing)
		}
		if sc.Params.End+2 != sc.Trailing.Start {
			return fmt.Errorf("params %v and trailing %v are not adjacent", sc.Params, sc.Trailing)
		}
		if int(sc.Trailing.End) != len(input) {
			return fmt.Errorf("trailing must run to end of input")
		}
		if strings.Contains(sc.Params.Extract(input), " :") {
			return fmt.Errorf("middles region still contains \" :\"")
		}
	} else {
		if int(sc.Params.End) != len(input) {
			return fmt.Errorf("params must run to end of input without trailing")
		}
	}

	region := sc.ParamsRegion()
	if region.Start != sc.Params.Start {
		return fmt.Errorf("params region %v must start at middles %v", region, sc.Params)
	}
	return nil
}
