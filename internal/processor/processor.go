// Package processor holds ordered chains of segment transformers.
//
// Processors are registered per phase with a priority. Higher priorities run
// first and equal priorities run in registration order. Registration is
// permanent and running a phase never consumes its processors.
package processor

import (
	"cmp"
	"slices"
	"sync"
)

// Phase names the point of path resolution a processor applies to.
type Phase string

// PhaseSegment runs on every raw segment before it is interpreted.
const PhaseSegment Phase = "segment"

// Processor rewrites a single path segment.
type Processor interface {
	Process(segment string) string
}

// Func adapts an ordinary function to the Processor interface.
type Func func(segment string) string

func (f Func) Process(segment string) string {
	return f(segment)
}

type registration struct {
	processor Processor
	priority  int
}

// Pipeline is the set of processors registered for each phase. The zero value
// is ready to use and a Pipeline is safe for concurrent use.
type Pipeline struct {
	mu     sync.RWMutex
	phases map[Phase][]registration
}

func New() *Pipeline {
	return &Pipeline{}
}

// Add registers proc for phase and returns the pipeline for chaining.
func (p *Pipeline) Add(proc Processor, phase Phase, priority int) *Pipeline {
	if proc == nil {
		return p
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phases == nil {
		p.phases = make(map[Phase][]registration)
	}

	regs := append(p.phases[phase], registration{processor: proc, priority: priority})
	slices.SortStableFunc(regs, func(a, b registration) int {
		return cmp.Compare(b.priority, a.priority)
	})
	p.phases[phase] = regs

	return p
}

// Run feeds segment through every processor of phase in order. Without
// processors the segment is returned unchanged.
func (p *Pipeline) Run(phase Phase, segment string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, reg := range p.phases[phase] {
		segment = reg.processor.Process(segment)
	}

	return segment
}

// Len reports how many processors are registered for phase.
func (p *Pipeline) Len(phase Phase) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.phases[phase])
}
