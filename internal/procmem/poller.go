package procmem

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Poller tracks the peak resident memory of a process by sampling it
// periodically while it runs. It is a fallback for the kernel-maintained
// VmHWM (which can only be read while the process still exists) and lets
// callers observe memory growth mid-run.
//
// Sampling is rate-limited so that polling a million-goroutine target
// does not itself perturb the measurement.
type Poller struct {
	pid     int
	limiter *rate.Limiter

	mu   sync.Mutex
	last Sample
	peak int64
}

// NewPoller creates a poller for pid sampling at most samplesPerSecond
// times per second.
func NewPoller(pid int, samplesPerSecond float64) *Poller {
	if samplesPerSecond <= 0 {
		samplesPerSecond = 10
	}
	return &Poller{
		pid:     pid,
		limiter: rate.NewLimiter(rate.Limit(samplesPerSecond), 1),
	}
}

// Run samples until ctx is cancelled or the process disappears. A read
// failure ends the loop silently: the process exiting mid-poll is the
// normal way a run finishes, not an error.
func (p *Poller) Run(ctx context.Context) {
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}

		s, err := Read(p.pid)
		if err != nil {
			return
		}
		p.record(s)
	}
}

func (p *Poller) record(s Sample) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = s
	if s.PeakKB > p.peak {
		p.peak = s.PeakKB
	}
	if s.RSSKB > p.peak {
		p.peak = s.RSSKB
	}
}

// Peak returns the highest resident figure observed so far, in kilobytes.
func (p *Poller) Peak() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}

// Last returns the most recent sample.
func (p *Poller) Last() Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
