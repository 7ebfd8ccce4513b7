package lineio

import (
	"bufio"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// AutoEncoding asks the reader to sniff the charset from the first bytes.
const AutoEncoding = "auto"

// sniffLen is how much input charset detection looks at.
const sniffLen = 1024

// LookupEncoding resolves a WHATWG encoding label ("latin1", "windows-1251",
// "koi8-r"...). UTF-8 labels and "" return nil: no decoding is needed.
// "auto" also returns nil; callers handle it via Sniff.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", AutoEncoding:
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// Sniff guesses the encoding of content: a BOM wins, then valid UTF-8,
// then whatever charset detection settles on (windows-1252 by default).
func Sniff(content []byte) encoding.Encoding {
	if len(content) > sniffLen {
		content = content[:sniffLen]
	}
	enc, _, certain := charset.DetermineEncoding(content, "text/plain")
	if !certain && utf8.Valid(trimPartialRune(content)) {
		return nil
	}
	if isUTF8(enc) {
		return nil
	}
	return enc
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8 || enc == encoding.Nop
}

// trimPartialRune drops an incomplete UTF-8 sequence cut off at the end.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

func sniffReader(br *bufio.Reader) encoding.Encoding {
	head, _ := br.Peek(sniffLen)
	return Sniff(head)
}

// Decoder returns a transform for FileSet.LoadWith. A nil encoding yields
// a nil function, meaning the bytes are taken as they are.
func Decoder(name string) (func([]byte) ([]byte, error), error) {
	if strings.EqualFold(strings.TrimSpace(name), AutoEncoding) {
		return func(b []byte) ([]byte, error) {
			if utf8.Valid(b) {
				return b, nil
			}
			enc := Sniff(b)
			if enc == nil {
				return b, nil
			}
			return enc.NewDecoder().Bytes(b)
		}, nil
	}
	enc, err := LookupEncoding(name)
	if err != nil || enc == nil {
		return nil, err
	}
	return func(b []byte) ([]byte, error) {
		return enc.NewDecoder().Bytes(b)
	}, nil
}
