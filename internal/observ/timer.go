package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration of one pipeline step and how many lines it handled.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Lines int
	Note  string
}

// Timer tracks the execution time of pipeline phases.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	t.EndLines(idx, 0, note)
}

// EndLines finishes a phase and records how many lines it processed.
func (t *Timer) EndLines(idx, lines int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Lines = lines
	p.Note = note
}

// SetLines records the line count of a phase after it has ended.
func (t *Timer) SetLines(idx, lines int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].Lines = lines
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Lines > 0 {
			fmt.Fprintf(&sb, "  %d lines, %s", p.Lines, FormatRate(p.LinesPerSec))
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name        string  `json:"name"`
	DurationMS  float64 `json:"duration_ms"`
	Lines       int     `json:"lines,omitempty"`
	LinesPerSec float64 `json:"lines_per_sec,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:        phase.Name,
			DurationMS:  durationToMillis(phase.Dur),
			Lines:       phase.Lines,
			LinesPerSec: rate(phase.Lines, phase.Dur),
			Note:        phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Merge appends other's phases, prefixing their names.
func (r *Report) Merge(prefix string, other Report) {
	for _, p := range other.Phases {
		if prefix != "" {
			p.Name = prefix + "/" + p.Name
		}
		r.Phases = append(r.Phases, p)
	}
	r.TotalMS += other.TotalMS
}

// FormatRate renders a lines-per-second figure compactly (1.2M lines/s).
func FormatRate(perSec float64) string {
	switch {
	case perSec >= 1e6:
		return fmt.Sprintf("%.1fM lines/s", perSec/1e6)
	case perSec >= 1e3:
		return fmt.Sprintf("%.1fk lines/s", perSec/1e3)
	default:
		return fmt.Sprintf("%.0f lines/s", perSec)
	}
}

func rate(lines int, d time.Duration) float64 {
	if lines == 0 || d <= 0 {
		return 0
	}
	return float64(lines) / d.Seconds()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
