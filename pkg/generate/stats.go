package generate

import "sync"

// Stats tracks engine activity counters.
type Stats struct {
	mu             sync.Mutex
	total          int64
	failed         int64
	faultsInjected int64
	hallucinations int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Total          int64 `json:"total"`
	Failed         int64 `json:"failed"`
	FaultsInjected int64 `json:"faultsInjected"`
	Hallucinations int64 `json:"hallucinations"`
}

func (s *Stats) recordCall(failed bool) {
	s.mu.Lock()
	s.total++
	if failed {
		s.failed++
	}
	s.mu.Unlock()
}

func (s *Stats) recordFault() {
	s.mu.Lock()
	s.faultsInjected++
	s.mu.Unlock()
}

func (s *Stats) recordHallucination() {
	s.mu.Lock()
	s.hallucinations++
	s.mu.Unlock()
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Total:          s.total,
		Failed:         s.failed,
		FaultsInjected: s.faultsInjected,
		Hallucinations: s.hallucinations,
	}
}
