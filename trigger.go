package kadmin

import "sync"

// OneShotTrigger is the single-consumer wake-up primitive described in
// spec.md §4.1. Multiple independent asynchronous sources (deadline timer,
// broker-state change, controller-state change, protocol response) may all
// attempt to complete the item it guards; at most one of them wins.
//
// The winning source is whichever call first clears the trigger's item
// pointer under lock; every later attempt observes a nil item and is a
// no-op. Ownership of the RequestItem transfers to the winner at that
// instant (invariant 5, spec.md §3).
type OneShotTrigger struct {
	mu      sync.Mutex
	fired   bool
	item    *RequestItem
	ch      chan<- *RequestItem
	sources map[string]int
}

// newTrigger creates an unarmed trigger; call reenable before any source
// can fire it.
func newTrigger() *OneShotTrigger {
	return &OneShotTrigger{sources: make(map[string]int)}
}

// addSource records that an asynchronous source intends to fire this
// arming. The name is diagnostic only; counts are kept per name and can be
// read back with sourceCount.
func (t *OneShotTrigger) addSource(name string) {
	t.mu.Lock()
	t.sources[name]++
	t.mu.Unlock()
}

// delSource undoes addSource, e.g. when a source decides not to wait after
// all (CONSTRUCT_REQUEST's encode failure path removes "send" immediately).
func (t *OneShotTrigger) delSource(name string) {
	t.mu.Lock()
	if t.sources[name] > 0 {
		t.sources[name]--
	}
	t.mu.Unlock()
}

// reenable re-attaches item and arms the trigger for another round, after
// the driver has consumed a previous fire. Must only be called by the
// driver thread.
func (t *OneShotTrigger) reenable(item *RequestItem, ch chan<- *RequestItem) {
	t.mu.Lock()
	t.fired = false
	t.item = item
	t.ch = ch
	t.mu.Unlock()
}

// disable atomically claims the item pointer back, without posting it
// anywhere. It is used by a winning-side handler that must mutate the item
// (e.g. attach reply_buf) before handing it back to the driver queue. It
// returns nil if another source already won this arming.
func (t *OneShotTrigger) disable() *RequestItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return nil
	}
	t.fired = true
	it := t.item
	t.item = nil
	return it
}

// post delivers a claimed item to the target channel. Callers must have
// obtained item via disable() (directly, or through fire()) first.
func (t *OneShotTrigger) post(item *RequestItem) {
	t.mu.Lock()
	ch := t.ch
	t.mu.Unlock()
	ch <- item
}

// fire attempts to complete the trigger's current arming with err attached
// to the item and reason recorded for diagnostics. It returns true ("won")
// if this call was the first fire since the last arming; all later calls
// return false ("lost") and do nothing. fire is total, thread-safe, and
// never blocks longer than the time to post to the target channel.
func (t *OneShotTrigger) fire(err error, reason string) bool {
	it := t.disable()
	if it == nil {
		return false
	}
	it.err = err
	it.fireReason = reason
	t.post(it)
	return true
}

// sourceCount reports the outstanding registrations for name. The driver
// does not consult it; destroy() decides on the "deadline-timer" source
// from the result of stopping the timer.
func (t *OneShotTrigger) sourceCount(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sources[name]
}
