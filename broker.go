package kadmin

import (
	"sync"
	"time"
)

// Broker is the narrow seam over a single cluster member's connection.
// The real wire codec and socket I/O are out of scope (spec.md §1); this
// interface is exactly the collaborator the spec assumes: "a function
// that, given a broker handle, enqueues a serialized request and later
// invokes a handler with a parsed reply buffer." Each method is
// non-blocking: it hands the request to the broker's own I/O goroutine and
// returns immediately, invoking cb from that goroutine once a reply (or
// error) is available.
type Broker interface {
	ID() int32

	CreateTopics(req *CreateTopicsRequest, cb func(*CreateTopicsResponse, error))
	DeleteTopics(req *DeleteTopicsRequest, cb func(*DeleteTopicsResponse, error))
	CreatePartitions(req *CreatePartitionsRequest, cb func(*CreatePartitionsResponse, error))
	AlterConfigs(req *AlterConfigsRequest, cb func(*AlterConfigsResponse, error))
	DescribeConfigs(req *DescribeConfigsRequest, cb func(*DescribeConfigsResponse, error))
}

// Client is the narrow seam over metadata discovery, broker connection
// management and controller election tracking (spec.md §1, out of scope).
// Controller/BrokerByID either resolve synchronously (returning ok=true)
// or register waiter as a one-shot waiter against that subsystem's state
// changes and return ok=false; the subsystem is responsible for calling
// waiter.fire(nil, reason) on any later state change, causing the driver
// to re-run WAIT_BROKER/WAIT_CONTROLLER (§4.3).
type Client interface {
	Controller(waiter *OneShotTrigger) (Broker, bool)
	BrokerByID(id int32, waiter *OneShotTrigger) (Broker, bool)
	Terminating() bool
	Config() *Config
}

// --- In-memory fake, used by tests and cmd/kadmin-probe -------------------

// FakeHandler computes a response for a request, standing in for the real
// wire round-trip. Returning (nil, err) simulates a broker-level transport
// failure (e.g. connection reset); the driver surfaces it as a request
// failure with no retry, per spec.md §1 Non-goals.
type FakeHandler func(kind RequestKind, req any) (resp any, err error)

// FakeBroker simulates one cluster member's I/O goroutine.
type FakeBroker struct {
	id      int32
	handler FakeHandler
	delay   time.Duration
}

// NewFakeBroker constructs a fake broker that answers every request via
// handler, optionally after a simulated I/O delay.
func NewFakeBroker(id int32, handler FakeHandler, delay time.Duration) *FakeBroker {
	return &FakeBroker{id: id, handler: handler, delay: delay}
}

func (b *FakeBroker) ID() int32 { return b.id }

func (b *FakeBroker) dispatch(kind RequestKind, req any) (any, error) {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.handler == nil {
		return nil, newAdminError(ClassBrokerUnavailable, "fake broker %d has no handler", b.id)
	}
	return b.handler(kind, req)
}

func (b *FakeBroker) CreateTopics(req *CreateTopicsRequest, cb func(*CreateTopicsResponse, error)) {
	go func() {
		resp, err := b.dispatch(KindCreateTopics, req)
		if err != nil {
			cb(nil, err)
			return
		}
		cb(resp.(*CreateTopicsResponse), nil)
	}()
}

func (b *FakeBroker) DeleteTopics(req *DeleteTopicsRequest, cb func(*DeleteTopicsResponse, error)) {
	go func() {
		resp, err := b.dispatch(KindDeleteTopics, req)
		if err != nil {
			cb(nil, err)
			return
		}
		cb(resp.(*DeleteTopicsResponse), nil)
	}()
}

func (b *FakeBroker) CreatePartitions(req *CreatePartitionsRequest, cb func(*CreatePartitionsResponse, error)) {
	go func() {
		resp, err := b.dispatch(KindCreatePartitions, req)
		if err != nil {
			cb(nil, err)
			return
		}
		cb(resp.(*CreatePartitionsResponse), nil)
	}()
}

func (b *FakeBroker) AlterConfigs(req *AlterConfigsRequest, cb func(*AlterConfigsResponse, error)) {
	go func() {
		resp, err := b.dispatch(KindAlterConfigs, req)
		if err != nil {
			cb(nil, err)
			return
		}
		cb(resp.(*AlterConfigsResponse), nil)
	}()
}

func (b *FakeBroker) DescribeConfigs(req *DescribeConfigsRequest, cb func(*DescribeConfigsResponse, error)) {
	go func() {
		resp, err := b.dispatch(KindDescribeConfigs, req)
		if err != nil {
			cb(nil, err)
			return
		}
		cb(resp.(*DescribeConfigsResponse), nil)
	}()
}

// FakeClient simulates metadata discovery / controller election tracking.
// Brokers only become resolvable after SetBrokerUp or SetControllerUp is
// called for them (or they are never
// resolvable at all, modeling spec.md scenario 4: "broker connection never
// becomes UP").
type FakeClient struct {
	mu           sync.Mutex
	conf         *Config
	brokers      map[int32]*FakeBroker
	up           map[int32]bool
	controllerID int32
	hasController bool
	terminating  bool

	controllerWaiters []*OneShotTrigger
	brokerWaiters     map[int32][]*OneShotTrigger
}

// NewFakeClient constructs an empty fake cluster; add brokers with AddBroker.
func NewFakeClient(conf *Config) *FakeClient {
	if conf == nil {
		conf = NewConfig()
	}
	return &FakeClient{
		conf:          conf,
		brokers:       make(map[int32]*FakeBroker),
		up:            make(map[int32]bool),
		controllerID:  -1,
		brokerWaiters: make(map[int32][]*OneShotTrigger),
	}
}

// AddBroker registers a broker handle without marking it UP.
func (c *FakeClient) AddBroker(b *FakeBroker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brokers[b.ID()] = b
}

// SetControllerUp marks id as the controller and wakes any waiters.
func (c *FakeClient) SetControllerUp(id int32) {
	c.mu.Lock()
	c.controllerID = id
	c.hasController = true
	c.up[id] = true
	waiters := c.controllerWaiters
	c.controllerWaiters = nil
	c.mu.Unlock()

	for _, w := range waiters {
		w.fire(nil, "controller-state-change")
	}
}

// SetBrokerUp marks id as UP and wakes any waiters registered for it.
func (c *FakeClient) SetBrokerUp(id int32) {
	c.mu.Lock()
	c.up[id] = true
	waiters := c.brokerWaiters[id]
	delete(c.brokerWaiters, id)
	c.mu.Unlock()

	for _, w := range waiters {
		w.fire(nil, "broker-state-change")
	}
}

// SetTerminating marks the client as shutting down; the driver checks this
// on every step (§5 cancellation mechanism 2).
func (c *FakeClient) SetTerminating() {
	c.mu.Lock()
	c.terminating = true
	c.mu.Unlock()
}

func (c *FakeClient) Terminating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminating
}

func (c *FakeClient) Config() *Config { return c.conf }

func (c *FakeClient) Controller(waiter *OneShotTrigger) (Broker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasController && c.up[c.controllerID] {
		if b, ok := c.brokers[c.controllerID]; ok {
			return b, true
		}
	}
	c.controllerWaiters = append(c.controllerWaiters, waiter)
	return nil, false
}

func (c *FakeClient) BrokerByID(id int32, waiter *OneShotTrigger) (Broker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.up[id] {
		if b, ok := c.brokers[id]; ok {
			return b, true
		}
	}
	c.brokerWaiters[id] = append(c.brokerWaiters[id], waiter)
	return nil, false
}
