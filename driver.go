package kadmin

import (
	"time"
)

// Driver is the single-threaded control loop described in spec.md §4.3. It
// owns an MPSC work queue; every RequestItem's lifetime is managed
// exclusively by the driver goroutine. All other goroutines (application,
// broker I/O, timer) interact with an in-flight item only by re-posting it
// through the item's OneShotTrigger.
type Driver struct {
	client Client
	conf   *Config

	workCh chan *RequestItem
	stopCh chan struct{}
	done   chan struct{}

	metrics    MetricsRegistry
	throttleCh chan time.Duration

	describeVersion int16
}

// NewDriver starts the control loop goroutine and returns a handle to it.
// Callers submit RequestItems with submit; the loop runs until Close.
func NewDriver(client Client, conf *Config) *Driver {
	if conf == nil {
		conf = NewConfig()
	}
	d := &Driver{
		client:          client,
		conf:            conf,
		workCh:          make(chan *RequestItem, 256),
		stopCh:          make(chan struct{}),
		done:            make(chan struct{}),
		metrics:         conf.Metrics,
		throttleCh:      make(chan time.Duration, 16),
		describeVersion: 1,
	}
	go d.run()
	return d
}

func (d *Driver) describeConfigsVersion() int16 { return d.describeVersion }

// ThrottleEvents returns the channel throttle hints are forwarded to
// (§4.4 rule 1: "forwarded to the client's main event channel").
func (d *Driver) ThrottleEvents() <-chan time.Duration { return d.throttleCh }

func (d *Driver) forwardThrottle(dur time.Duration) {
	select {
	case d.throttleCh <- dur:
	default:
		// the main event channel is a side channel; a full buffer just
		// drops this new hint rather than stalling the driver.
	}
}

func (d *Driver) run() {
	defer close(d.done)
	for {
		select {
		case item := <-d.workCh:
			d.step(item)
		case <-d.stopCh:
			d.drain()
			return
		}
	}
}

// drain processes whatever is already queued at shutdown time without
// blocking for new arrivals. Each item is stepped as usual: it is destroyed
// silently only if client.Terminating() reports true (§5 cancellation
// mechanism 2); Close itself does not mark the client terminating.
func (d *Driver) drain() {
	for {
		select {
		case item := <-d.workCh:
			d.step(item)
		default:
			return
		}
	}
}

// Close stops the control loop after draining queued work. It does not
// wait for outstanding broker replies or timers in flight, and it does not
// disarm the triggers of items still parked in a wait state; a reply or
// timer fire that arrives for such an item afterwards is posted to the
// work queue, which nothing reads once Close has returned.
func (d *Driver) Close() {
	close(d.stopCh)
	<-d.done
}

// submit hands a freshly built RequestItem to the driver for its first
// delivery. Must only be called before the item has a trigger arming in
// flight.
func (d *Driver) submit(item *RequestItem) {
	item.driver = d
	item.trigger = newTrigger()
	item.state = StateInit
	item.submittedAt = time.Now()
	recordSubmit(d.metrics, item.apiName)
	Logger.Printf("%s %s submitted", item.apiName, item.id)
	d.workCh <- item
}

// step runs the state-machine procedure for one delivery of item (§4.3).
// It never blocks on I/O: each iteration either transitions state and
// loops immediately, or returns, yielding the driver to the next queued
// item.
func (d *Driver) step(item *RequestItem) {
	var resolvedBroker Broker

	for {
		switch {
		case d.client.Terminating():
			d.destroy(item)
			return
		case item.err == errDestroy:
			d.destroy(item)
			return
		case item.err != nil:
			d.publishFailure(item, adminErrorFrom(item.err, item.stateName()))
			d.destroy(item)
			return
		case time.Now().After(item.deadline):
			d.publishFailure(item, newAdminError(ClassTimedOut,
				"request timed out while waiting in state %s", item.stateName()))
			d.destroy(item)
			return
		}

		switch item.state {
		case StateInit:
			d.armDeadline(item)
			if item.brokerID == -1 {
				item.state = StateWaitController
			} else {
				item.state = StateWaitBroker
			}
			continue

		case StateWaitBroker:
			item.trigger.reenable(item, d.workCh)
			item.trigger.addSource("broker-wait")
			broker, ok := d.client.BrokerByID(item.brokerID, item.trigger)
			if !ok {
				return
			}
			item.trigger.delSource("broker-wait")
			resolvedBroker = broker
			item.state = StateConstructRequest
			continue

		case StateWaitController:
			item.trigger.reenable(item, d.workCh)
			item.trigger.addSource("controller-wait")
			broker, ok := d.client.Controller(item.trigger)
			if !ok {
				return
			}
			item.trigger.delSource("controller-wait")
			resolvedBroker = broker
			item.state = StateConstructRequest
			continue

		case StateConstructRequest:
			item.trigger.reenable(item, d.workCh)
			item.trigger.addSource("send")
			if err := item.codec.encode(d, item, resolvedBroker); err != nil {
				item.trigger.delSource("send")
				d.publishFailure(item, wrapAdminError(ClassEncodeFailure, err, "encode failed: %s", err))
				d.destroy(item)
				return
			}
			resolvedBroker = nil // release the broker reference immediately (§5)
			item.state = StateWaitResponse
			return

		case StateWaitResponse:
			ev, aerr := item.codec.decode(item)
			if aerr != nil {
				d.publishFailure(item, aerr)
			} else {
				d.publish(item, ev)
			}
			d.destroy(item)
			return
		}
	}
}

// armDeadline arms the one-shot deadline timer with a "deadline-timer"
// source registration on the trigger (§4.3 INIT). The timer's sole job is
// to force a re-delivery at T_req so a request parked indefinitely in
// WAIT_BROKER/WAIT_CONTROLLER still gets a chance to observe the deadline
// check at the top of step(); the generic precondition does the actual
// TIMED_OUT classification.
func (d *Driver) armDeadline(item *RequestItem) {
	item.trigger.addSource("deadline-timer")
	trigger := item.trigger
	item.timer = time.AfterFunc(time.Until(item.deadline), func() {
		trigger.fire(nil, "deadline-timer")
	})
}

// destroy implements §4.3's destroy semantics: stop the deadline timer,
// and if it had not yet fired, drop its trigger source. The trigger itself
// is left to its own reference counting for any still-pending outside
// waiter; it no longer holds the item once destroy returns.
func (d *Driver) destroy(item *RequestItem) {
	if item.timer != nil {
		if item.timer.Stop() {
			item.trigger.delSource("deadline-timer")
		}
	}
}

func (d *Driver) publish(item *RequestItem, ev Event) {
	recordLatency(d.metrics, item.apiName, time.Since(item.submittedAt))
	Logger.Printf("%s %s completed", item.apiName, item.id)
	item.replyCh <- ev
}

func (d *Driver) publishFailure(item *RequestItem, aerr *AdminError) {
	recordLatency(d.metrics, item.apiName, time.Since(item.submittedAt))
	Logger.Printf("%s %s failed: %s", item.apiName, item.id, aerr)
	item.replyCh <- requestFailureEvent(item, aerr)
}

// adminErrorFrom normalizes an item.err set by an outside source (e.g. a
// broker lookup subsystem reporting permanent unavailability) into the
// AdminError taxonomy, embedding the state name the item was in when the
// error arrived (§4.3's "publish request-level failure with current state
// name embedded").
func adminErrorFrom(err error, state string) *AdminError {
	if ae, ok := err.(*AdminError); ok {
		if ae.Msg == "" {
			ae.Msg = ae.Class.String()
		}
		return wrapAdminError(ae.Class, ae, "%s (while in state %s)", ae.Msg, state)
	}
	return wrapAdminError(ClassBrokerUnavailable, err, "%s (while in state %s)", err, state)
}

// completeFromIO is the shared response-path completion used by every
// per-API codec's encode function: it atomically claims the item back
// from the trigger (discarding the reply if the timer or cancellation
// already won, §5 "Dropped replies"), attaches the parsed reply buffer or
// transport error, and reposts to the driver queue.
func completeFromIO(d *Driver, trigger *OneShotTrigger, buf any, err error) {
	it := trigger.disable()
	if it == nil {
		Logger.Printf("dropped reply: trigger already fired (timer or cancellation won this arming)")
		return
	}
	it.replyBuf = buf
	it.err = err
	trigger.post(it)
}
