package components

import (
	"iter"
	"strings"
)

// Params is a view over the parameter region of a line.
//
// raw is the whole region (middles bridged to trailing when present);
// middles is the part before " :", trailing the part after it.
type Params struct {
	raw         string
	middles     string
	trailing    string
	hasTrailing bool
}

// NewParams wraps the params region. hasTrailing distinguishes an empty
// trailing parameter ("CMD :") from none at all ("CMD").
func NewParams(raw, middles, trailing string, hasTrailing bool) Params {
	return Params{raw: raw, middles: middles, trailing: trailing, hasTrailing: hasTrailing}
}

func (p Params) Raw() string { return p.raw }

// Middles yields the middle parameters split on runs of spaces.
func (p Params) Middles() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := p.middles
		for {
			rest = strings.TrimLeft(rest, " ")
			if rest == "" {
				return
			}
			tok := rest
			if i := strings.IndexByte(rest, ' '); i >= 0 {
				tok, rest = rest[:i], rest[i:]
			} else {
				rest = ""
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Trailing returns the trailing parameter verbatim.
func (p Params) Trailing() (string, bool) {
	return p.trailing, p.hasTrailing
}

// HasTrailing reports whether a trailing parameter is present, even if empty.
func (p Params) HasTrailing() bool { return p.hasTrailing }

// MiddleCount returns the number of middle parameters.
func (p Params) MiddleCount() int {
	n := 0
	for range p.Middles() {
		n++
	}
	return n
}

// Middle returns the i-th middle parameter.
func (p Params) Middle(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	for m := range p.Middles() {
		if i == 0 {
			return m, true
		}
		i--
	}
	return "", false
}

// All yields the middle parameters followed by the trailing one, if any.
func (p Params) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		for m := range p.Middles() {
			if !yield(i, m) {
				return
			}
			i++
		}
		if p.hasTrailing {
			yield(i, p.trailing)
		}
	}
}

// Len returns the total number of parameters, trailing included.
func (p Params) Len() int {
	n := p.MiddleCount()
	if p.hasTrailing {
		n++
	}
	return n
}

// Get returns the i-th parameter counting the trailing one last.
func (p Params) Get(i int) (string, bool) {
	for j, v := range p.All() {
		if j == i {
			return v, true
		}
	}
	return "", false
}

// Last returns the final parameter: the trailing one if present,
// otherwise the last middle.
func (p Params) Last() (string, bool) {
	if p.hasTrailing {
		return p.trailing, true
	}
	var (
		last  string
		found bool
	)
	for m := range p.Middles() {
		last, found = m, true
	}
	return last, found
}

// IsEmpty reports whether there are neither middles nor a trailing parameter.
func (p Params) IsEmpty() bool {
	if p.hasTrailing {
		return false
	}
	for range p.Middles() {
		return false
	}
	return true
}

// AppendTo appends every parameter to dst and returns the extended slice.
// This is the one Params method that may allocate.
func (p Params) AppendTo(dst []string) []string {
	for _, v := range p.All() {
		dst = append(dst, v)
	}
	return dst
}

func (p Params) String() string { return p.raw }
