package core

import "time"

// Pacer releases simulation steps at a steady rate independent of the frame
// rate, so the viewer can render at 60 TPS while advancing a few days per second.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewPacer constructs a Pacer targeting the given steps per second.
func NewPacer(perSecond float64) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetRate(perSecond)
	p.accumulator = p.step
	return p
}

// SetRate changes the step rate. Non-positive rates fall back to one step per second.
func (p *Pacer) SetRate(perSecond float64) {
	if perSecond <= 0 {
		perSecond = 1
	}
	p.step = time.Duration(float64(time.Second) / perSecond)
}

// Ready reports whether the simulation should advance by one step.
func (p *Pacer) Ready() bool {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	if p.accumulator >= p.step {
		p.accumulator -= p.step
		return true
	}
	return false
}
