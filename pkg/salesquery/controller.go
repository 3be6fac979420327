package salesquery

import (
	"sync"
	"time"
)

// RequestFunc receives a state snapshot and the sequence number of the
// request it should issue. Responses must be applied through Apply with
// the same sequence number.
type RequestFunc func(state State, seq uint64)

// Controller serializes UI events into well-ordered requests. Free-text
// search is debounced; every filter or sort change resets the page to 1;
// Reset restores all defaults in one atomic update. Each issued request
// carries a monotonically increasing sequence number so a superseded
// in-flight response can never overwrite a newer one.
type Controller struct {
	mu       sync.Mutex
	state    State
	debounce time.Duration
	timer    *time.Timer
	request  RequestFunc

	seq     uint64
	applied uint64
}

// DefaultDebounce is how long search input must be idle before a request
// is issued.
const DefaultDebounce = 500 * time.Millisecond

// NewController creates a controller with the default state and debounce.
func NewController(request RequestFunc) *Controller {
	return &Controller{
		state:    DefaultState(),
		debounce: DefaultDebounce,
		request:  request,
	}
}

// WithDebounce overrides the search debounce interval.
func (c *Controller) WithDebounce(d time.Duration) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debounce = d
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SetSearch records the raw search text and (re)starts the debounce
// timer. The request fires only after the input has been idle for the
// debounce interval.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Search = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.Page = 1
		c.emitLocked()
	})
}

// Update applies a filter change and issues a request immediately, with
// the page reset to 1.
func (c *Controller) Update(mutate func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mutate(&c.state)
	c.state.Page = 1
	c.emitLocked()
}

// SetSort changes the sort key and direction; the page resets to 1.
func (c *Controller) SetSort(sortBy, sortOrder string) {
	c.Update(func(s *State) {
		s.SortBy = sortBy
		s.SortOrder = sortOrder
	})
}

// SetPage moves to another page without touching filters.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		page = 1
	}
	c.state.Page = page
	c.emitLocked()
}

// Reset restores filters, sort and page to their defaults in one atomic
// update and issues a request.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = DefaultState()
	c.emitLocked()
}

// Apply reports whether the response for seq may be applied to the view.
// Responses older than the newest applied one are discarded, guarding
// against out-of-order completion of in-flight requests.
func (c *Controller) Apply(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		return false
	}
	c.applied = seq
	return true
}

func (c *Controller) emitLocked() {
	c.seq++
	if c.request != nil {
		c.request(c.state.clone(), c.seq)
	}
}
