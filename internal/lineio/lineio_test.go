package lineio

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func readAll(t *testing.T, r *Reader) ([]Line, []error) {
	t.Helper()
	var (
		lines []Line
		errs  []error
	)
	for line, err := range r.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	return lines, errs
}

func TestReaderFraming(t *testing.T) {
	input := "PING :a\r\nPONG :b\n\nJOIN #x"
	lines, errs := readAll(t, NewReader(strings.NewReader(input)))
	require.Empty(t, errs)
	assert.Equal(t, []Line{
		{Number: 1, Offset: 0, Text: "PING :a"},
		{Number: 2, Offset: 9, Text: "PONG :b"},
		{Number: 3, Offset: 17, Text: ""},
		{Number: 4, Offset: 18, Text: "JOIN #x"},
	}, lines)
}

func TestReaderEOF(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderLineTooLong(t *testing.T) {
	long := strings.Repeat("x", 20)
	input := "PING :a\n" + long + "\nPONG :b\n"
	lines, errs := readAll(t, NewReader(strings.NewReader(input), WithMaxLineBytes(10)))

	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrLineTooLong))
	var le *LineError
	require.True(t, errors.As(errs[0], &le))
	assert.Equal(t, 2, le.Number)
	assert.Equal(t, int64(8), le.Offset)

	require.Len(t, lines, 2)
	assert.Equal(t, "PONG :b", lines[1].Text)
	assert.Equal(t, 3, lines[1].Number)
	assert.Equal(t, int64(29), lines[1].Offset)
}

func TestReaderLineBeyondBuffer(t *testing.T) {
	huge := strings.Repeat("y", 10000)
	input := huge + "\nPING :ok\n"
	lines, errs := readAll(t, NewReader(strings.NewReader(input), WithMaxLineBytes(100)))

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrLineTooLong)
	require.Len(t, lines, 1)
	assert.Equal(t, Line{Number: 2, Offset: 10001, Text: "PING :ok"}, lines[0])
}

func TestReaderDecodes(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("PRIVMSG #a :café\r\n")
	require.NoError(t, err)

	enc, err := LookupEncoding("latin1")
	require.NoError(t, err)
	require.NotNil(t, enc)

	lines, errs := readAll(t, NewReader(strings.NewReader(latin1), WithEncoding(enc)))
	require.Empty(t, errs)
	require.Len(t, lines, 1)
	assert.Equal(t, "PRIVMSG #a :café", lines[0].Text)
}

func TestReaderSniffs(t *testing.T) {
	cp1251, err := charmap.Windows1251.NewEncoder().String("PRIVMSG #a :привет\n")
	require.NoError(t, err)

	lines, errs := readAll(t, NewReader(strings.NewReader(cp1251), WithSniffing()))
	require.Empty(t, errs)
	require.Len(t, lines, 1)
	// без подсказки определяется windows-1252: важно лишь, что вышел валидный UTF-8
	assert.True(t, strings.HasPrefix(lines[0].Text, "PRIVMSG #a :"))
	assert.NotContains(t, lines[0].Text, "�")

	utf := "PRIVMSG #a :привет\n"
	lines, _ = readAll(t, NewReader(strings.NewReader(utf), WithSniffing()))
	require.Len(t, lines, 1)
	assert.Equal(t, "PRIVMSG #a :привет", lines[0].Text)
}

func TestLines(t *testing.T) {
	content := "a\r\nbb\n\nccc"
	got := slices.Collect(Lines(content))
	assert.Equal(t, []Line{
		{Number: 1, Offset: 0, Text: "a"},
		{Number: 2, Offset: 3, Text: "bb"},
		{Number: 3, Offset: 6, Text: ""},
		{Number: 4, Offset: 7, Text: "ccc"},
	}, got)

	assert.Empty(t, slices.Collect(Lines("")))
	assert.Len(t, slices.Collect(Lines("x\n")), 1)
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", "auto"} {
		enc, err := LookupEncoding(name)
		assert.NoError(t, err, name)
		assert.Nil(t, enc, name)
	}
	enc, err := LookupEncoding("windows-1251")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = LookupEncoding("no-such-charset")
	assert.Error(t, err)
}

func TestDecoder(t *testing.T) {
	fn, err := Decoder("")
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = Decoder("koi8-r")
	require.NoError(t, err)
	raw, err := charmap.KOI8R.NewEncoder().Bytes([]byte("тест"))
	require.NoError(t, err)
	out, err := fn(raw)
	require.NoError(t, err)
	assert.Equal(t, "тест", string(out))

	auto, err := Decoder("auto")
	require.NoError(t, err)
	out, err = auto([]byte("уже utf-8"))
	require.NoError(t, err)
	assert.Equal(t, "уже utf-8", string(out))
}
