package source

import (
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID зарезервирован для пустой строки
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID должен возвращать пустую строку, получили: %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("PRIVMSG")
	if id1 == NoStringID {
		t.Error("Intern не должен возвращать NoStringID для непустой строки")
	}
	id2 := interner.Intern("PRIVMSG")
	if id1 != id2 {
		t.Errorf("одинаковые строки должны иметь одинаковые ID: %d != %d", id1, id2)
	}
	id3 := interner.Intern("JOIN")
	if id3 == id1 {
		t.Error("разные строки должны иметь разные ID")
	}

	if interner.Len() != 3 {
		t.Errorf("Len должен быть 3, получили: %d", interner.Len())
	}
	if interner.Count(id1) != 2 || interner.Count(id3) != 1 {
		t.Errorf("unexpected counts: %d, %d", interner.Count(id1), interner.Count(id3))
	}
	if interner.Count(StringID(99)) != 0 {
		t.Error("unknown ID must count as zero")
	}
}

func TestInternerCopiesInput(t *testing.T) {
	interner := NewInterner()
	buf := []byte("NOTICE rest of a long line")
	id := interner.Intern(string(buf[:6]))
	copy(buf, "XXXXXX")

	if s, _ := interner.Lookup(id); s != "NOTICE" {
		t.Errorf("interned string changed with its source: %q", s)
	}
}

func TestInternerCounts(t *testing.T) {
	interner := NewInterner()
	for _, cmd := range []string{"PING", "PRIVMSG", "PING", "001", "PING"} {
		interner.Intern(cmd)
	}
	counts := interner.Counts()
	want := map[string]int{"PING": 3, "PRIVMSG": 1, "001": 1}
	if len(counts) != len(want) {
		t.Fatalf("Counts() = %v, want %v", counts, want)
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("Counts()[%q] = %d, want %d", k, counts[k], v)
		}
	}
}
