package repository

import (
	"fmt"
	"sync"
	"time"
)

// Sequence hands out human-readable display numbers (SRN-2026-0001,
// BID-2026-0001, ...). Monotonic per prefix for the process lifetime,
// unlike timestamp-derived ids which collide under rapid calls.
type Sequence struct {
	mu     sync.Mutex
	counts map[string]int
	now    func() time.Time
}

func NewSequence() *Sequence {
	return &Sequence{counts: map[string]int{}, now: time.Now}
}

func (s *Sequence) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[prefix]++
	return fmt.Sprintf("%s-%d-%04d", prefix, s.now().Year(), s.counts[prefix])
}
