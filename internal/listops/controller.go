// Package listops implements the list-settings controller behind every
// searchable multi-select screen: a latest-wins live collection, a
// selection set, and the export/import staging buffers for bulk
// operations.
package listops

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"resto-pos-backend/internal/outbox"
)

const DefaultGrace = 2 * time.Second

type Config[T any] struct {
	// ID extracts the record identifier used by the selection set.
	ID func(T) uint
	// Search lists records matching the given text ("" lists all).
	Search func(ctx context.Context, text string) ([]T, error)
	// Commit bulk-upserts staged records and reports how many were written.
	Commit func(ctx context.Context, items []T) (int, error)
	// Label names the records in user-visible messages ("employees").
	Label string
	// Grace overrides DefaultGrace when positive.
	Grace time.Duration
}

// Controller owns the searchable collection, the selection set and the
// export/import buffers for one list-settings screen. Safe for
// concurrent use.
type Controller[T any] struct {
	mu  sync.Mutex
	cfg Config[T]
	out *outbox.Outbox

	searchOpen bool
	text       string
	gen        uint64
	inflight   context.CancelFunc

	visible   []T
	selected  map[uint]struct{}
	exportBuf []T
	importBuf []T

	watchers map[chan []T]struct{}
	cooldown *time.Timer

	root   context.Context
	cancel context.CancelFunc
	closed bool
}

func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.Grace <= 0 {
		cfg.Grace = DefaultGrace
	}
	if cfg.Label == "" {
		cfg.Label = "items"
	}
	root, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		cfg:      cfg,
		out:      outbox.New(),
		selected: make(map[uint]struct{}),
		watchers: make(map[chan []T]struct{}),
		root:     root,
		cancel:   cancel,
	}
}

func (c *Controller[T]) Signals() *outbox.Outbox { return c.out }

// --- search bar state ---

func (c *Controller[T]) OpenSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchOpen = true
}

// CloseSearch collapses the bar and clears the text, so reopening never
// filters on a stale query.
func (c *Controller[T]) CloseSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchOpen = false
	if c.text != "" {
		c.text = ""
		c.requery()
	}
}

func (c *Controller[T]) SearchOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchOpen
}

func (c *Controller[T]) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetSearchText replaces the query. Results are latest-wins: a result
// computed for an older text is never installed once a newer text is set.
func (c *Controller[T]) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.requery()
}

// requery starts a new query generation. Caller holds c.mu. Work is only
// spawned while the collection has watchers.
func (c *Controller[T]) requery() {
	c.gen++
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	if c.closed || len(c.watchers) == 0 {
		return
	}
	gen := c.gen
	ctx, cancel := context.WithCancel(c.root)
	c.inflight = cancel
	text := c.text
	go func() {
		items, err := c.cfg.Search(ctx, text)
		if err != nil {
			return // stale or failed background refresh; nothing to install
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen || ctx.Err() != nil {
			return
		}
		c.install(items)
	}()
}

// install makes items the visible collection, reconciles the selection
// set and notifies watchers. Caller holds c.mu.
func (c *Controller[T]) install(items []T) {
	c.visible = items
	c.reconcile()
	snap := append([]T(nil), items...)
	for ch := range c.watchers {
		conflate(ch, snap)
	}
}

// reconcile drops selected ids that are neither visible nor staged in
// the import buffer. Caller holds c.mu.
func (c *Controller[T]) reconcile() {
	if len(c.selected) == 0 {
		return
	}
	keep := make(map[uint]struct{}, len(c.visible)+len(c.importBuf))
	for _, it := range c.visible {
		keep[c.cfg.ID(it)] = struct{}{}
	}
	for _, it := range c.importBuf {
		keep[c.cfg.ID(it)] = struct{}{}
	}
	for id := range c.selected {
		if _, ok := keep[id]; !ok {
			delete(c.selected, id)
		}
	}
}

// Refresh runs the query synchronously with the current text and
// installs the result, still honoring latest-wins against concurrent
// SetSearchText calls.
func (c *Controller[T]) Refresh(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	text := c.text
	c.mu.Unlock()

	items, err := c.cfg.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.install(items)
	}
	return append([]T(nil), items...), nil
}

// WatchItems attaches an observer to the live collection. The first
// watcher makes the collection hot; the last detach cools it down after
// the grace period.
func (c *Controller[T]) WatchItems() (<-chan []T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan []T, 1)
	c.watchers[ch] = struct{}{}
	if c.cooldown != nil {
		c.cooldown.Stop()
		c.cooldown = nil
	}
	if c.visible != nil {
		ch <- append([]T(nil), c.visible...)
	}
	if c.inflight == nil {
		c.requery()
	}
	detach := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, still := c.watchers[ch]; !still {
			return
		}
		delete(c.watchers, ch)
		if len(c.watchers) > 0 {
			return
		}
		c.cooldown = time.AfterFunc(c.cfg.Grace, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if len(c.watchers) == 0 && c.inflight != nil {
				c.inflight()
				c.inflight = nil
			}
		})
	}
	return ch, detach
}

func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.visible...)
}

// --- selection ---

func (c *Controller[T]) Toggle(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

func (c *Controller[T]) SelectAllVisible() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.visible {
		c.selected[c.cfg.ID(it)] = struct{}{}
	}
}

func (c *Controller[T]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[uint]struct{})
}

func (c *Controller[T]) Selected() []uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uint, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- export ---

// StageExport snapshots the collection into the export buffer: the whole
// collection when the selection is empty, otherwise exactly the selected
// subset, in collection order.
func (c *Controller[T]) StageExport() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exportBuf = c.subset(c.visible)
	return append([]T(nil), c.exportBuf...)
}

// ExportWith stages and hands the buffer to the writer. The outcome is
// published on the outbox either way; the staged count is returned for
// callers that report it elsewhere.
func (c *Controller[T]) ExportWith(ctx context.Context, write func(ctx context.Context, items []T) error) (int, bool) {
	staged := c.StageExport()
	if err := write(ctx, staged); err != nil {
		c.out.Publish(outbox.Error(err.Error()))
		return 0, false
	}
	c.out.Publish(outbox.Success(fmt.Sprintf("exported %d %s", len(staged), c.cfg.Label)))
	return len(staged), true
}

// --- import ---

// SetImported replaces the import buffer wholesale with the decoded
// list. An empty list clears the buffer without error.
func (c *Controller[T]) SetImported(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.importBuf = append([]T(nil), items...)
	c.reconcile()
}

func (c *Controller[T]) ImportBuffer() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.importBuf...)
}

// CommitImport bulk-upserts the whole import buffer, or the selected
// subset when the selection is non-empty. The buffer is kept so a failed
// commit can be retried; it is discarded with the controller.
func (c *Controller[T]) CommitImport(ctx context.Context) (int, bool) {
	c.mu.Lock()
	subset := c.subset(c.importBuf)
	c.mu.Unlock()

	n, err := c.cfg.Commit(ctx, subset)
	if err != nil {
		text := err.Error()
		if text == "" {
			text = "import failed"
		}
		c.out.Publish(outbox.Error(text))
		return 0, false
	}
	c.out.Publish(outbox.Success(fmt.Sprintf("imported %d %s", n, c.cfg.Label)))
	return n, true
}

// subset filters items by the selection set, or copies all of them when
// nothing is selected. Caller holds c.mu.
func (c *Controller[T]) subset(items []T) []T {
	if len(c.selected) == 0 {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(c.selected))
	for _, it := range items {
		if _, ok := c.selected[c.cfg.ID(it)]; ok {
			out = append(out, it)
		}
	}
	return out
}

func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancel()
	if c.cooldown != nil {
		c.cooldown.Stop()
		c.cooldown = nil
	}
	c.inflight = nil
}

func conflate[T any](ch chan []T, items []T) {
	for {
		select {
		case ch <- items:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
