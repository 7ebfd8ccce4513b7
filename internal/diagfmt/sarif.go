package diagfmt

import (
	"cmp"
	"encoding/json"
	"io"
	"slices"

	"ircmsg/internal/diag"
	"ircmsg/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Related   []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	Physical sarifPhysical `json:"physicalLocation"`
	Message  *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func makeSarifLocation(fs *source.FileSet, loc source.Location) sarifLocation {
	start, end := fs.Resolve(loc)
	return sarifLocation{
		Physical: sarifPhysical{
			Artifact: sarifArtifact{URI: formatPath(fs, loc.File, PathModeRelative)},
			Region: sarifRegion{
				StartLine:   start.Line,
				StartColumn: start.Col,
				EndLine:     end.Line,
				EndColumn:   end.Col,
				ByteOffset:  loc.Span.Start,
				ByteLength:  loc.Span.Len(),
			},
		},
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Timing diagnostics are left out, they describe the run, not the input.
func Sarif(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	rules := make(map[diag.Code]struct{})
	run.Results = make([]sarifResult, 0, len(items))
	for i := range items {
		d := &items[i]
		if d.Code == diag.ObsTimings {
			continue
		}
		if _, ok := rules[d.Code]; !ok {
			rules[d.Code] = struct{}{}
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:               d.Code.ID(),
				ShortDescription: sarifMessage{Text: d.Code.Title()},
			})
		}
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{makeSarifLocation(fs, d.Primary)},
		}
		for _, note := range d.Notes {
			rel := makeSarifLocation(fs, note.Loc)
			rel.Message = &sarifMessage{Text: note.Msg}
			res.Related = append(res.Related, rel)
		}
		run.Results = append(run.Results, res)
	}
	slices.SortFunc(run.Tool.Driver.Rules, func(a, b sarifRule) int {
		return cmp.Compare(a.ID, b.ID)
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
