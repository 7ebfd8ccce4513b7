package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeLine, false},
		{LevelDebug, ScopeLine, true},
		{LevelError, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "check", 0)
	file := Begin(tr, ScopeFile, "file:a.log", root.ID())
	Begin(tr, ScopeLine, "line:1", file.ID()).End("")
	file.WithExtra("lines", "3").WithExtra("errors", "0").End("ok")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (line scope filtered):\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ check") {
		t.Errorf("first line = %q, want span begin for check", lines[0])
	}
	if !strings.Contains(lines[2], "← file:a.log (ok) {errors=0, lines=3}") {
		t.Errorf("file end line = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeDriver, "expand", "2 files", 0)
	Point(tr, ScopeFile, "ignored", "", 0)

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("output is not a single JSON object: %v\n%s", err, buf.String())
	}
	if ev["kind"] != "point" || ev["scope"] != "driver" || ev["name"] != "expand" || ev["detail"] != "2 files" {
		t.Errorf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot() len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("Snapshot()[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Errorf("Dump wrote %d lines, want 3", got)
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	Point(m, ScopeDriver, "x", "", 0)
	if buf.Len() == 0 || len(ring.Snapshot()) != 1 {
		t.Errorf("event not fanned out: stream=%q ring=%d", buf.String(), len(ring.Snapshot()))
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("LevelOff tracer is enabled")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("span on disabled tracer is not inert")
	}
}

func TestNewAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "x", "", 0)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("auto format for .ndjson produced %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should yield Nop")
	}
	tr := NewRingTracer(1, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 {
		t.Error("span context not propagated")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "json": FormatNDJSON, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("ParseFormat(chrome) succeeded")
	}
}

func TestStartSpanNests(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := StartSpan(ctx, ScopeDriver, "check_paths")
	fileCtx, file := StartSpan(ctx, ScopeFile, "check_file")
	file.Point(ScopeLine, "line", "1 PING")
	file.End("")
	outer.End("")

	if CurrentSpan(fileCtx).SpanID != file.ID() {
		t.Errorf("CurrentSpan = %d, want %d", CurrentSpan(fileCtx).SpanID, file.ID())
	}
	snap := ring.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("got %d events, want 5", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Errorf("file span parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
	if snap[2].Kind != KindPoint || snap[2].ParentID != file.ID() {
		t.Errorf("line point = %+v", snap[2])
	}
}

func TestStartSpanFiltered(t *testing.T) {
	ctx := WithTracer(context.Background(), NewRingTracer(4, LevelPhase))
	got, span := StartSpan(ctx, ScopeFile, "check_file")
	if span.ID() != 0 || got != ctx {
		t.Error("filtered span changed the context")
	}
	span.Point(ScopeLine, "line", "")
	span.WithExtra("k", "v").End("")
}

func TestRingDroppedAndRingOf(t *testing.T) {
	ring := NewRingTracer(2, LevelPhase)
	for range 5 {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver})
	}
	if ring.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", ring.Dropped())
	}

	m := NewMultiTracer(LevelPhase, NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText), ring)
	if RingOf(m) != ring || RingOf(ring) != ring || RingOf(Nop) != nil {
		t.Error("RingOf did not find the ring")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat started on a disabled tracer")
	}
	ring := NewRingTracer(64, LevelError)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()

	snap := ring.Snapshot()
	if len(snap) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if snap[0].Kind != KindHeartbeat || !strings.HasPrefix(snap[0].Detail, "#1 +") {
		t.Errorf("first heartbeat = %+v", snap[0])
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Format
	}{
		{Config{OutputPath: "out.NDJSON"}, FormatNDJSON},
		{Config{OutputPath: "out.jsonl"}, FormatNDJSON},
		{Config{OutputPath: "-"}, FormatText},
		{Config{OutputPath: "out.json", Format: FormatText}, FormatText},
	}
	for _, tt := range tests {
		if got := tt.cfg.ResolveFormat(); got != tt.want {
			t.Errorf("ResolveFormat(%q) = %v, want %v", tt.cfg.OutputPath, got, tt.want)
		}
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Error("ParseMode(tape) succeeded")
	}
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(Both) = %v, %v", m, err)
	}
}
