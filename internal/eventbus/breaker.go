package eventbus

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is rejecting publishes
var ErrCircuitOpen = errors.New("event publishing suspended after repeated failures")

// BreakerState is the state of a BreakerPublisher
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // Publishing normally
	BreakerOpen                         // Rejecting without contacting the broker
	BreakerHalfOpen                     // Probing whether the broker recovered
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// BreakerConfig tunes a BreakerPublisher
type BreakerConfig struct {
	FailureThreshold int           // Consecutive failures before opening
	SuccessThreshold int           // Probe successes before closing again
	Cooldown         time.Duration // Time spent open before probing
	OnStateChange    func(from, to BreakerState)
}

// DefaultBreakerConfig returns the settings used by the server
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Cooldown:         30 * time.Second,
	}
}

// BreakerPublisher stops calling an unhealthy publisher until a cooldown passes
type BreakerPublisher struct {
	next Publisher
	cfg  BreakerConfig
	now  func() time.Time

	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time
}

// NewBreakerPublisher wraps next with a circuit breaker
func NewBreakerPublisher(next Publisher, cfg BreakerConfig) *BreakerPublisher {
	return &BreakerPublisher{next: next, cfg: cfg, now: time.Now}
}

// State returns the current breaker state
func (b *BreakerPublisher) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Publish forwards to the wrapped publisher unless the breaker is open
func (b *BreakerPublisher) Publish(subject string, data interface{}) error {
	if !b.allow() {
		return ErrCircuitOpen
	}
	err := b.next.Publish(subject, data)
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

// Close closes the wrapped publisher
func (b *BreakerPublisher) Close() {
	b.next.Close()
}

// transition is a state change to report once the lock is released
type transition struct {
	from, to BreakerState
}

func (b *BreakerPublisher) allow() bool {
	b.mu.Lock()
	var changes []transition
	allowed := true
	if b.state == BreakerOpen {
		if b.now().Sub(b.lastFailure) < b.cfg.Cooldown {
			allowed = false
		} else {
			changes = b.setState(changes, BreakerHalfOpen)
		}
	}
	b.mu.Unlock()

	b.notify(changes)
	return allowed
}

func (b *BreakerPublisher) recordSuccess() {
	b.mu.Lock()
	var changes []transition
	switch b.state {
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			changes = b.setState(changes, BreakerClosed)
			b.failures = 0
			b.successes = 0
		}
	case BreakerClosed:
		b.failures = 0
	}
	b.mu.Unlock()

	b.notify(changes)
}

func (b *BreakerPublisher) recordFailure() {
	b.mu.Lock()
	var changes []transition
	b.failures++
	b.lastFailure = b.now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= b.cfg.FailureThreshold {
			changes = b.setState(changes, BreakerOpen)
		}
	case BreakerHalfOpen:
		b.successes = 0
		changes = b.setState(changes, BreakerOpen)
	}
	b.mu.Unlock()

	b.notify(changes)
}

// setState must be called with b.mu held
func (b *BreakerPublisher) setState(changes []transition, to BreakerState) []transition {
	if b.state != to {
		changes = append(changes, transition{from: b.state, to: to})
	}
	b.state = to
	return changes
}

// notify runs OnStateChange without holding b.mu
func (b *BreakerPublisher) notify(changes []transition) {
	if b.cfg.OnStateChange == nil {
		return
	}
	for _, c := range changes {
		b.cfg.OnStateChange(c.from, c.to)
	}
}
