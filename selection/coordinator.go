// Package selection holds the item currently highlighted across the list and
// map views.
package selection

import "sync"

// Coordinator is last-write-wins shared state: whichever view selects last
// decides the highlighted item. Subscribers hear about every change.
type Coordinator struct {
	mu          sync.RWMutex
	selectedID  string
	subscribers map[int]func(id string)
	nextSubID   int
}

func NewCoordinator() *Coordinator {
	return &Coordinator{subscribers: make(map[int]func(string))}
}

// Select highlights id; an empty id clears the selection.
func (c *Coordinator) Select(id string) {
	c.mu.Lock()
	if c.selectedID == id {
		c.mu.Unlock()
		return
	}
	c.selectedID = id
	subs := make([]func(string), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

func (c *Coordinator) Clear() {
	c.Select("")
}

// Selected returns the highlighted id and whether there is one.
func (c *Coordinator) Selected() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedID, c.selectedID != ""
}

func (c *Coordinator) IsSelected(id string) bool {
	selected, ok := c.Selected()
	return ok && selected == id
}

// Subscribe registers fn for selection changes. The returned func removes it.
func (c *Coordinator) Subscribe(fn func(id string)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}
