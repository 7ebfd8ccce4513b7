package components

import (
	"iter"
	"strings"
)

// Tag is one key[=value] entry of an IRCv3 tags block.
// Value is the raw, still escaped text.
type Tag struct {
	Key      string
	Value    string
	HasValue bool
}

// Unescaped returns Value with IRCv3 escapes resolved.
func (t Tag) Unescaped() string {
	return UnescapeTagValue(t.Value)
}

// IsClientOnly reports whether the key carries the client-only '+' prefix.
func (t Tag) IsClientOnly() bool {
	return strings.HasPrefix(t.Key, "+")
}

// Vendor returns the vendor part of a vendored key ("example.com" for
// "+example.com/foo"), or "" for unvendored keys.
func (t Tag) Vendor() string {
	key := strings.TrimPrefix(t.Key, "+")
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return ""
}

// Name returns the key without client-only prefix and vendor.
func (t Tag) Name() string {
	key := strings.TrimPrefix(t.Key, "+")
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// Tags is a view over the tags block of a line, without the leading '@'.
type Tags struct {
	raw string
}

func NewTags(raw string) Tags {
	return Tags{raw: raw}
}

func (t Tags) Raw() string { return t.raw }

// All yields tags in the order they appear. Duplicate keys are yielded as
// many times as they occur; empty entries between ';' are skipped.
func (t Tags) All() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		rest := t.raw
		for len(rest) > 0 {
			var item string
			if i := strings.IndexByte(rest, ';'); i >= 0 {
				item, rest = rest[:i], rest[i+1:]
			} else {
				item, rest = rest, ""
			}
			if item == "" {
				continue
			}
			if !yield(splitTag(item)) {
				return
			}
		}
	}
}

func splitTag(item string) Tag {
	key, value, found := strings.Cut(item, "=")
	return Tag{Key: key, Value: value, HasValue: found}
}

// Len returns the number of tags All would yield.
func (t Tags) Len() int {
	n := 0
	for range t.All() {
		n++
	}
	return n
}

// Get returns the last tag with the given key; later duplicates override earlier ones.
func (t Tags) Get(key string) (Tag, bool) {
	var (
		out   Tag
		found bool
	)
	for tag := range t.All() {
		if tag.Key == key {
			out, found = tag, true
		}
	}
	return out, found
}

// Has reports whether a tag with the given key is present.
func (t Tags) Has(key string) bool {
	for tag := range t.All() {
		if tag.Key == key {
			return true
		}
	}
	return false
}

func (t Tags) String() string { return t.raw }

// ValidTagKey reports whether key has the form ['+'] [vendor '/'] name,
// where vendor and name are made of ASCII letters, digits, '-' and '.'.
func ValidTagKey(key string) bool {
	key = strings.TrimPrefix(key, "+")
	vendor, name, vendored := strings.Cut(key, "/")
	if !vendored {
		name = vendor
	} else if !isKeyText(vendor) {
		return false
	}
	return isKeyText(name)
}

// isKeyText reports whether s is non-empty and made of key characters.
func isKeyText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
