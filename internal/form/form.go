// Package form implements the add/edit draft controller shared by every
// entity form in the service: a copy-on-write draft, one latest-wins
// validation stream per field, and a single submit gate in front of the
// repository.
package form

import (
	"context"
	"sync"
	"time"

	"resto-pos-backend/internal/outbox"
)

// DefaultGrace is how long a stream keeps its in-flight validation alive
// after the last watcher detaches, to tolerate rapid re-subscription.
const DefaultGrace = 2 * time.Second

// FallbackErrMessage is used when a repository error carries no text.
const FallbackErrMessage = "something went wrong, please try again"

// Validator computes the error text for one field against the whole
// draft. Empty string means valid. ctx is cancelled when a newer draft
// value supersedes the computation; repo-backed validators (uniqueness
// probes) must honor it.
type Validator[D any] func(ctx context.Context, draft D, excludeID uint) string

type Config[D any] struct {
	// Fields maps field name to its validator. Every registered field is
	// re-checked on Submit.
	Fields map[string]Validator[D]
	// Load fetches the persisted record as a draft, for edit mode.
	Load func(ctx context.Context, id uint) (D, error)
	// Persist stores the validated draft and returns a success message.
	// The id is 0 in create mode, the existing id in edit mode.
	Persist func(ctx context.Context, draft D, id uint) (string, error)
	// Grace overrides DefaultGrace when positive.
	Grace time.Duration
	// LoadErrMessage, when set, replaces the raw error text of a failed
	// edit-mode load in the emitted signal.
	LoadErrMessage string
}

type stream struct {
	gen      uint64
	cancel   context.CancelFunc
	last     string
	computed bool
	watchers map[chan string]struct{}
	cooldown *time.Timer
}

// Controller owns one draft record. All exported methods are safe for
// concurrent use; state mutations are serialized by one mutex so results
// of stale asynchronous work can be discarded by generation check.
type Controller[D any] struct {
	mu       sync.Mutex
	submitMu sync.Mutex

	cfg     Config[D]
	id      uint
	draft   D
	zero    D
	streams map[string]*stream
	out     *outbox.Outbox

	root   context.Context
	cancel context.CancelFunc
	closed bool
}

// New constructs a controller. id 0 means create mode; a non-zero id
// means edit mode and the caller is expected to call Load before
// dispatching field changes.
func New[D any](cfg Config[D], id uint) *Controller[D] {
	if cfg.Grace <= 0 {
		cfg.Grace = DefaultGrace
	}
	root, cancel := context.WithCancel(context.Background())
	c := &Controller[D]{
		cfg:     cfg,
		id:      id,
		streams: make(map[string]*stream, len(cfg.Fields)),
		out:     outbox.New(),
		root:    root,
		cancel:  cancel,
	}
	for name := range cfg.Fields {
		c.streams[name] = &stream{watchers: make(map[chan string]struct{})}
	}
	return c
}

func (c *Controller[D]) ID() uint { return c.id }

func (c *Controller[D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Signals exposes the one-shot success/error outbox.
func (c *Controller[D]) Signals() *outbox.Outbox { return c.out }

// Load pre-populates the draft from the repository in edit mode. A load
// failure (record gone) emits an error signal and leaves the draft at
// its default.
func (c *Controller[D]) Load(ctx context.Context) {
	if c.id == 0 || c.cfg.Load == nil {
		return
	}
	d, err := c.cfg.Load(ctx, c.id)
	if err != nil {
		msg := c.cfg.LoadErrMessage
		if msg == "" {
			msg = err.Error()
		}
		c.out.Publish(outbox.Error(msg))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
	for name := range c.streams {
		c.restart(name)
	}
}

// Set replaces the draft wholesale (copy-on-write) and restarts the
// validation streams of the named fields. A Set never fails.
func (c *Controller[D]) Set(apply func(D) D, fields ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.draft = apply(c.draft)
	for _, name := range fields {
		c.restart(name)
	}
}

// Watch attaches an observer to a field's error stream. The returned
// channel conflates to the latest error text. Detaching the last watcher
// stops recomputation after the grace period.
func (c *Controller[D]) Watch(field string) (<-chan string, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.streams[field]
	if !ok {
		ch := make(chan string, 1)
		close(ch)
		return ch, func() {}
	}
	ch := make(chan string, 1)
	s.watchers[ch] = struct{}{}
	if s.cooldown != nil {
		s.cooldown.Stop()
		s.cooldown = nil
	}
	if s.computed {
		ch <- s.last
	}
	if s.cancel == nil {
		// stream was cold: recompute from the current draft
		c.restart(field)
	}
	detach := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, still := s.watchers[ch]; !still {
			return
		}
		delete(s.watchers, ch)
		if len(s.watchers) > 0 {
			return
		}
		s.cooldown = time.AfterFunc(c.cfg.Grace, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if len(s.watchers) == 0 && s.cancel != nil {
				s.cancel()
				s.cancel = nil
			}
		})
	}
	return ch, detach
}

// Err synchronously validates one field against the current draft.
func (c *Controller[D]) Err(ctx context.Context, field string) string {
	v, ok := c.cfg.Fields[field]
	if !ok {
		return ""
	}
	c.mu.Lock()
	d, id := c.draft, c.id
	c.mu.Unlock()
	return v(ctx, d, id)
}

// Submit re-checks every field against the current draft and, when all
// are clean, persists. It returns the per-field errors that blocked
// submission, or nil when the draft went to the repository (in which
// case the outcome is published on the outbox and a successful submit
// resets the draft to its default).
func (c *Controller[D]) Submit(ctx context.Context) map[string]string {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	c.mu.Lock()
	d, id := c.draft, c.id
	c.mu.Unlock()

	errs := make(map[string]string)
	for name, v := range c.cfg.Fields {
		if msg := v(ctx, d, id); msg != "" {
			errs[name] = msg
		}
	}
	if len(errs) > 0 {
		c.publishFieldErrs(errs)
		return errs
	}

	msg, err := c.cfg.Persist(ctx, d, id)
	if err != nil {
		text := err.Error()
		if text == "" {
			text = FallbackErrMessage
		}
		c.out.Publish(outbox.Error(text))
		return nil
	}

	c.mu.Lock()
	c.draft = c.zero
	for name := range c.streams {
		c.restart(name)
	}
	c.mu.Unlock()

	c.out.Publish(outbox.Success(msg))
	return nil
}

// Close cancels all in-flight work. The controller must not be used
// afterwards.
func (c *Controller[D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancel()
	for _, s := range c.streams {
		if s.cooldown != nil {
			s.cooldown.Stop()
			s.cooldown = nil
		}
		s.cancel = nil
	}
}

// restart begins a new validation generation for a field. Caller holds
// c.mu. Cold streams (no watchers) only bump the generation so any
// in-flight result is discarded.
func (c *Controller[D]) restart(name string) {
	s := c.streams[name]
	if s == nil {
		return
	}
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if c.closed || len(s.watchers) == 0 {
		return
	}
	gen := s.gen
	ctx, cancel := context.WithCancel(c.root)
	s.cancel = cancel
	d, id := c.draft, c.id
	v := c.cfg.Fields[name]
	go func() {
		msg := v(ctx, d, id)
		c.mu.Lock()
		defer c.mu.Unlock()
		if s.gen != gen || ctx.Err() != nil {
			return // a newer draft value superseded this computation
		}
		s.last, s.computed = msg, true
		for ch := range s.watchers {
			conflate(ch, msg)
		}
	}()
}

// publishFieldErrs pushes submit-time validation results into the hot
// streams so attached observers see them without waiting for the next
// field change.
func (c *Controller[D]) publishFieldErrs(errs map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, msg := range errs {
		s := c.streams[name]
		if s == nil {
			continue
		}
		s.last, s.computed = msg, true
		for ch := range s.watchers {
			conflate(ch, msg)
		}
	}
}

// conflate delivers msg to a capacity-1 channel, displacing an unread
// older value instead of blocking.
func conflate(ch chan string, msg string) {
	for {
		select {
		case ch <- msg:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
