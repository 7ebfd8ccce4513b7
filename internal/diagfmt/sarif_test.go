package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ircmsg/internal/diag"
	"ircmsg/internal/source"
)

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("chat.log", []byte("@a=1;a=2 PING\n: X\n"))

	items := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.SynDuplicateTag, source.Span{Start: 5, End: 6}.In(fileID), "repeated").
			WithNote(source.Span{Start: 1, End: 2}.In(fileID), "first occurrence"),
		diag.NewError(diag.SynEmptySource, source.Span{Start: 15, End: 15}.In(fileID), "':' without a source"),
		diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}.In(fileID), "timings"),
	}

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "ircmsg", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "chat.log"}}
	if err := Sarif(&buf, items, fs, meta); err != nil {
		t.Fatal(err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "ircmsg" {
		t.Errorf("tool name = %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %d, want 2 (timings skipped)", len(run.Results))
	}
	if ids := []string{run.Tool.Driver.Rules[0].ID, run.Tool.Driver.Rules[1].ID}; ids[0] != "SYN2007" || ids[1] != "SYN2008" {
		t.Errorf("rules = %v", ids)
	}

	dup := run.Results[0]
	if dup.Level != "warning" || len(dup.Related) != 1 || dup.Related[0].Message.Text != "first occurrence" {
		t.Errorf("duplicate result = %+v", dup)
	}
	region := run.Results[1].Locations[0].Physical.Region
	if run.Results[1].Level != "error" || region.StartLine != 2 || region.StartColumn != 2 {
		t.Errorf("empty source result = %+v", run.Results[1])
	}
}
