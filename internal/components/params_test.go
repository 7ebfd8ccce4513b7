package components

import (
	"slices"
	"testing"
)

func TestParamsMiddles(t *testing.T) {
	tests := []struct {
		name     string
		middles  string
		trailing string
		has      bool
		want     []string
		all      []string
	}{
		{"none", "", "", false, nil, nil},
		{"single", " #chan", "", false, []string{"#chan"}, []string{"#chan"}},
		{"runs of spaces", "  a   b ", "", false, []string{"a", "b"}, []string{"a", "b"}},
		{"with trailing", " #chan", "hello world", true, []string{"#chan"}, []string{"#chan", "hello world"}},
		{"empty trailing", " a", "", true, []string{"a"}, []string{"a", ""}},
		{"only trailing", "", "x", true, nil, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams(tt.middles, tt.middles, tt.trailing, tt.has)
			if got := slices.Collect(p.Middles()); !slices.Equal(got, tt.want) {
				t.Errorf("Middles() = %q, want %q", got, tt.want)
			}
			if got := p.MiddleCount(); got != len(tt.want) {
				t.Errorf("MiddleCount() = %d, want %d", got, len(tt.want))
			}
			if got := p.AppendTo(nil); !slices.Equal(got, tt.all) {
				t.Errorf("AppendTo(nil) = %q, want %q", got, tt.all)
			}
			if got := p.Len(); got != len(tt.all) {
				t.Errorf("Len() = %d, want %d", got, len(tt.all))
			}
			if got := p.IsEmpty(); got != (len(tt.all) == 0) {
				t.Errorf("IsEmpty() = %v, want %v", got, len(tt.all) == 0)
			}
			if tr, ok := p.Trailing(); ok != tt.has || tr != tt.trailing {
				t.Errorf("Trailing() = (%q, %v), want (%q, %v)", tr, ok, tt.trailing, tt.has)
			}
		})
	}
}

func TestParamsIndexing(t *testing.T) {
	p := NewParams(" a b :c d", " a b", "c d", true)

	if m, ok := p.Middle(1); !ok || m != "b" {
		t.Errorf("Middle(1) = (%q, %v), want (\"b\", true)", m, ok)
	}
	for _, i := range []int{2, -1} {
		if _, ok := p.Middle(i); ok {
			t.Errorf("Middle(%d) ok = true, want false", i)
		}
	}

	if v, ok := p.Get(2); !ok || v != "c d" {
		t.Errorf("Get(2) = (%q, %v), want (\"c d\", true)", v, ok)
	}
	if _, ok := p.Get(3); ok {
		t.Error("Get(3) ok = true, want false")
	}

	if last, ok := p.Last(); !ok || last != "c d" {
		t.Errorf("Last() = (%q, %v), want (\"c d\", true)", last, ok)
	}
	if got := p.String(); got != " a b :c d" {
		t.Errorf("String() = %q", got)
	}
}

func TestParamsLastWithoutTrailing(t *testing.T) {
	if last, ok := NewParams(" x y", " x y", "", false).Last(); !ok || last != "y" {
		t.Errorf("Last() = (%q, %v), want (\"y\", true)", last, ok)
	}
	if _, ok := NewParams("", "", "", false).Last(); ok {
		t.Error("Last() on empty params ok = true, want false")
	}
}
