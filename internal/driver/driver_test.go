package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ircmsg/internal/diag"
	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
	"ircmsg/internal/validate"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", "PING x\n")
	b := writeFile(t, dir, "sub/b.IRC", "PING x\n")
	writeFile(t, dir, "notes.md", "skip me\n")
	writeFile(t, dir, ".git/c.log", "hidden\n")
	explicit := writeFile(t, dir, "explicit.dat", "PING x\n")

	files, err := ExpandPaths([]string{explicit, dir, a, StdinPath}, []string{".log", ".irc"})
	require.NoError(t, err)
	assert.Equal(t, []string{StdinPath, a, explicit, b}, files)
}

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.log", "PING :server\r\n:nick!u@h PRIVMSG #c :hi\r\n")
	bad := writeFile(t, dir, "bad.log", "PING x\n@ 1234 x\n: PRIVMSG #c\n")
	missing := filepath.Join(dir, "missing.log")

	sink := &recordingSink{}
	opts := Options{Jobs: 2, Limits: validate.DefaultLimits(), Progress: sink}
	fs, results, err := CheckPaths(context.Background(), []string{good, bad, missing}, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byPath := make(map[string]FileResult, len(results))
	for _, r := range results {
		byPath[r.Path] = r
	}

	g := byPath[good]
	assert.Equal(t, 2, g.Lines)
	assert.Equal(t, 2, g.Messages)
	assert.Equal(t, map[string]int{"PING": 1, "PRIVMSG": 1}, g.Commands)
	assert.Zero(t, g.Bag.Len())
	require.NotNil(t, g.Timing)
	assert.Equal(t, 2, g.Timing.Phases[0].Lines)

	b := byPath[bad]
	assert.Equal(t, 3, b.Lines)
	require.True(t, b.Bag.HasErrors())
	var numeric *diag.Diagnostic
	for i, d := range b.Bag.Items() {
		if d.Code == diag.SynNumericLength {
			numeric = &b.Bag.Items()[i]
		}
	}
	require.NotNil(t, numeric, "numeric length diagnostic")
	start, _ := fs.Resolve(numeric.Primary)
	assert.Equal(t, uint32(2), start.Line)
	assert.Equal(t, uint32(3), start.Col)

	m := byPath[missing]
	require.Equal(t, 1, m.Bag.Len())
	assert.Equal(t, diag.IOLoadFileError, m.Bag.Items()[0].Code)
	assert.Equal(t, missing, fs.Get(m.FileID).Path)

	lines, messages, errs, _ := Totals(results)
	assert.Equal(t, 5, lines)
	assert.Equal(t, 5, messages)
	assert.Equal(t, 2, errs)

	var done, failed int
	for _, ev := range sink.events {
		switch ev.Status {
		case StatusDone:
			done++
		case StatusError:
			failed++
		}
	}
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, failed)
}

func TestCheckPathsStdinAndTimings(t *testing.T) {
	var phases []string
	opts := Options{
		Stdin:   strings.NewReader("PING a\nPONG b\n"),
		Timings: true,
		OnPhase: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				phases = append(phases, ev.Name)
			}
		},
	}
	fs, results, err := CheckPaths(context.Background(), []string{StdinPath}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, stdinName, fs.Get(results[0].FileID).Path)
	assert.Equal(t, 2, results[0].Messages)
	assert.Equal(t, []string{"expand", "load", "check"}, phases)

	items := results[0].Bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.ObsTimings, items[0].Code)
	require.Len(t, items[0].Notes, 1)
	assert.Contains(t, items[0].Notes[0].Msg, `"kind":"file"`)
}

func TestCheckPathsMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "many.log", strings.Repeat("\n", 10))
	_, results, err := CheckPaths(context.Background(), []string{path}, Options{MaxDiagnostics: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, results[0].Lines)
	assert.Equal(t, 3, results[0].Bag.Len())
}

func TestCheckPathsBadEncoding(t *testing.T) {
	_, _, err := CheckPaths(context.Background(), []string{StdinPath}, Options{Encoding: "no-such-charset"})
	require.Error(t, err)
}

func TestCheckPathsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.log", "PING x\n")
	_, _, err := CheckPaths(ctx, []string{path}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

type cancelingSink struct {
	recordingSink
	cancel context.CancelFunc
}

func (s *cancelingSink) OnEvent(ev Event) {
	s.recordingSink.OnEvent(ev)
	if ev.Stage == StageCheck && ev.Status == StatusWorking {
		s.cancel()
	}
}

func TestCheckPathsCanceledMidCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dir := t.TempDir()
	path := writeFile(t, dir, "big.log", strings.Repeat("PING x\n", 1000))

	sink := &cancelingSink{cancel: cancel}
	_, results, err := CheckPaths(ctx, []string{path}, Options{Jobs: 1, Progress: sink})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Less(t, results[0].Lines, 1000)

	last := sink.events[len(sink.events)-1]
	assert.Equal(t, StageCheck, last.Stage)
	assert.Equal(t, StatusError, last.Status)
	assert.ErrorIs(t, last.Err, context.Canceled)
}

func TestParseStream(t *testing.T) {
	input := "PING a\r\n" + strings.Repeat("x", 40) + "\n:n PRIVMSG #c :hi\n"
	var got []string
	var tooLong int
	err := ParseStream(context.Background(), strings.NewReader(input), Options{MaxLineBytes: 32},
		func(line lineio.Line, msg message.Message, err error) error {
			if err != nil {
				require.ErrorIs(t, err, lineio.ErrLineTooLong)
				assert.Equal(t, 2, line.Number)
				tooLong++
				return nil
			}
			got = append(got, msg.Command().Raw())
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"PING", "PRIVMSG"}, got)
	assert.Equal(t, 1, tooLong)
}

func TestParseStreamStops(t *testing.T) {
	stop := errors.New("stop")
	var n int
	err := ParseStream(context.Background(), strings.NewReader("A\nB\nC\n"), Options{},
		func(lineio.Line, message.Message, error) error {
			n++
			if n == 2 {
				return stop
			}
			return nil
		})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, n)
}

func TestParseStreamLatin1(t *testing.T) {
	var text string
	err := ParseStream(context.Background(), strings.NewReader("PRIVMSG #c :caf\xe9\n"), Options{Encoding: "latin1"},
		func(_ lineio.Line, msg message.Message, _ error) error {
			text, _ = msg.Params().Trailing()
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}
