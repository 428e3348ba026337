// Package typing reveals generated replies one character at a time.
package typing

import (
	"sync"
	"time"
)

// DefaultInterval is the delay between two revealed characters.
const DefaultInterval = 30 * time.Millisecond

// Observer receives every state change of the animator. Calls are made while
// the animator's lock is held, so an observer must not call back into the
// Animator.
type Observer interface {
	// Reveal publishes the visible prefix of the message being typed.
	Reveal(messageID, prefix string, revealed, total int)
	// Idle reports that the animation of messageID ended, completed or not.
	Idle(messageID string)
}

// Animator owns the single animation slot. At most one Run is active at a time.
type Animator struct {
	mu       sync.Mutex
	interval time.Duration
	observer Observer
	active   *Run
}

// Run is the handle of one animation.
type Run struct {
	messageID string
	text      []rune
	stop      chan struct{}
	done      chan struct{}
	completed bool
}

// MessageID returns the id of the message the run is typing.
func (r *Run) MessageID() string { return r.messageID }

// Done is closed once the run's goroutine has exited, after onComplete returned.
func (r *Run) Done() <-chan struct{} { return r.done }

// Completed reports whether the run reached full length. It is only
// meaningful after Done is closed.
func (r *Run) Completed() bool {
	select {
	case <-r.done:
		return r.completed
	default:
		return false
	}
}

func NewAnimator(interval time.Duration, observer Observer) *Animator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Animator{interval: interval, observer: observer}
}

// SetInterval changes the cadence of runs started afterwards.
func (a *Animator) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	a.mu.Lock()
	a.interval = d
	a.mu.Unlock()
}

// Start begins revealing text for messageID. The first character is revealed
// immediately, the rest one per interval. onComplete runs on the animator
// goroutine once the full text is visible; it is never called for a cancelled
// run. An already active run is cancelled first.
func (a *Animator) Start(text, messageID string, onComplete func()) *Run {
	r := &Run{
		messageID: messageID,
		text:      []rune(text),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	a.mu.Lock()
	a.cancelLocked()
	a.active = r
	interval := a.interval
	a.mu.Unlock()

	go a.run(r, interval, onComplete)
	return r
}

// Cancel stops the active run without invoking its onComplete. It reports
// whether a run was active.
func (a *Animator) Cancel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelLocked()
}

// Stop cancels r if it is still the active run. It reports whether r was
// stopped.
func (a *Animator) Stop(r *Run) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active != r {
		return false
	}
	return a.cancelLocked()
}

// Active returns the message id of the run in progress, if any.
func (a *Animator) Active() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return "", false
	}
	return a.active.messageID, true
}

func (a *Animator) cancelLocked() bool {
	r := a.active
	if r == nil {
		return false
	}
	a.active = nil
	close(r.stop)
	if a.observer != nil {
		a.observer.Idle(r.messageID)
	}
	return true
}

func (a *Animator) run(r *Run, interval time.Duration, onComplete func()) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	revealed := 0
	for {
		if !a.tick(r, &revealed) {
			return
		}
		if r.completed {
			break
		}
		select {
		case <-r.stop:
			return
		case <-ticker.C:
		}
	}

	if onComplete != nil {
		onComplete()
	}
}

// tick reveals one more character. It returns false when the run has been
// replaced or cancelled.
func (a *Animator) tick(r *Run, revealed *int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active != r {
		return false
	}

	total := len(r.text)
	if *revealed < total {
		*revealed++
		if a.observer != nil {
			a.observer.Reveal(r.messageID, string(r.text[:*revealed]), *revealed, total)
		}
	}
	if *revealed == total {
		r.completed = true
		a.active = nil
		if a.observer != nil {
			a.observer.Idle(r.messageID)
		}
	}
	return true
}
