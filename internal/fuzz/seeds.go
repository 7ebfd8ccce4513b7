package fuzztests

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 8 << 10 // 8 KiB, больше тегов плюс сообщения не бывает
)

var builtinLines = []string{
	"",
	"PING",
	"PING :123456",
	":irc.example.net 001 alice :Welcome",
	"@time=2024-03-01T12:00:00.000Z;msgid=abc :bob!bob@host PRIVMSG #go :hi there",
	"@+draft/reply=x\\:y\\sz;flag :a!b@c TAGMSG #c",
	"CMD a  :trail",
	"CMD   a   b   ",
	"CMD :",
	"@ :",
	": CMD",
	"@a=1;a=2;;=x CMD",
	":nick!user@host PRIVMSG #c :\x01ACTION waves\x01",
	"CMD :日本語 текст",
}

func addLineSeeds(f *testing.F) {
	for _, line := range builtinLines {
		f.Add(line)
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, каждая строка логов становится отдельным seed
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".log", ".irc", ".txt":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		sc := bufio.NewScanner(bytes.NewReader(src))
		sc.Buffer(make([]byte, 0, 4096), maxSeedBytes)
		for sc.Scan() {
			f.Add(string(bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})))
		}
		return nil
	})
	if err != nil {
		return
	}
}
