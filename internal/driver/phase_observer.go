package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a driver phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during CheckPaths.
type PhaseObserver func(PhaseEvent)

type phaseRun struct {
	name    string
	started time.Time
	observe PhaseObserver
}

func startPhase(observe PhaseObserver, name string) phaseRun {
	if observe != nil {
		observe(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return phaseRun{name: name, started: time.Now(), observe: observe}
}

func (p phaseRun) end() time.Duration {
	elapsed := time.Since(p.started)
	if p.observe != nil {
		p.observe(PhaseEvent{Name: p.name, Status: PhaseEnd, Elapsed: elapsed})
	}
	return elapsed
}
