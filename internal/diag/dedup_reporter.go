package diag

import "ircmsg/internal/source"

type dedupKey struct {
	code Code
	sev  Severity
	at   source.Location
	msg  string
}

// DedupReporter forwards each distinct diagnostic once. Two reports are
// the same when code, severity, primary location and message match; notes
// are not compared.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	if next == nil {
		next = NopReporter{}
	}
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Location, msg string, notes []Note) {
	key := dedupKey{code: code, sev: sev, at: primary, msg: msg}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// Suppressed returns how many repeated reports were dropped.
func (r *DedupReporter) Suppressed() int { return r.suppressed }
