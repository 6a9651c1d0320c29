package kadmin

import (
	"time"

	"github.com/google/uuid"
)

// AdminClient is the application-facing handle for the admin engine (§6).
// It owns a Driver (the control loop) and the narrow Client collaborator
// used to resolve brokers/controller. Submission methods deep-copy their
// inputs and return immediately; completion is always signalled by an
// Event delivered on the caller-supplied reply channel.
type AdminClient struct {
	client Client
	driver *Driver
}

// NewAdminClient wires a Driver on top of client. Call Close to shut the
// control loop down (teacher parity: ClusterAdmin.Close/Consumer.Close
// both require an explicit shutdown call to avoid leaks).
func NewAdminClient(client Client, conf *Config) (*AdminClient, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &AdminClient{client: client, driver: NewDriver(client, conf)}, nil
}

// Close drains the driver's queue and stops its goroutine. You MUST call
// Close on an AdminClient to avoid leaking the control-loop goroutine.
func (c *AdminClient) Close() error {
	c.driver.Close()
	return nil
}

// ThrottleEvents exposes the side channel throttle hints from broker
// responses are forwarded to (§4.4 rule 1).
func (c *AdminClient) ThrottleEvents() <-chan time.Duration { return c.driver.ThrottleEvents() }

func (c *AdminClient) newItem(kind RequestKind, args any, options AdminOptions, cdc codec, replyCh chan<- Event) *RequestItem {
	return &RequestItem{
		id:       uuid.New(),
		kind:     kind,
		args:     args,
		options:  options,
		brokerID: options.Broker(),
		replyCh:  replyCh,
		codec:    cdc,
		deadline: time.Now().Add(options.RequestTimeout(c.driver.conf.Admin.Timeout)),
		apiName:  kind.String(),
	}
}

func deliverImmediateFailure(kind RequestKind, opaque any, aerr *AdminError, replyCh chan<- Event) {
	item := &RequestItem{kind: kind, options: AdminOptions{opaque: opaque, broker: -1}}
	replyCh <- requestFailureEvent(item, aerr)
}

// CreateTopics submits a batch of topic creations (§6). Each NewTopic is
// deep-copied; the caller may free its originals immediately on return.
func (c *AdminClient) CreateTopics(topics []NewTopic, options *AdminOptions, replyCh chan<- Event) {
	if options == nil {
		options = NewAdminOptions(KindCreateTopics)
	}
	copies := make([]NewTopic, len(topics))
	for i := range topics {
		if aerr := topics[i].validate(); aerr != nil {
			deliverImmediateFailure(KindCreateTopics, options.Opaque(), aerr, replyCh)
			return
		}
		copies[i] = topics[i].deepCopy()
	}
	item := c.newItem(KindCreateTopics, copies, options.snapshot(), createTopicsCodec, replyCh)
	c.driver.submit(item)
}

// DeleteTopics submits a batch of topic deletions (§6).
func (c *AdminClient) DeleteTopics(topics []string, options *AdminOptions, replyCh chan<- Event) {
	if options == nil {
		options = NewAdminOptions(KindDeleteTopics)
	}
	for _, t := range topics {
		if t == "" {
			deliverImmediateFailure(KindDeleteTopics, options.Opaque(),
				newAdminError(ClassInvalidArg, "topic name must not be empty"), replyCh)
			return
		}
	}
	copies := append([]string(nil), topics...)
	item := c.newItem(KindDeleteTopics, copies, options.snapshot(), deleteTopicsCodec, replyCh)
	c.driver.submit(item)
}

// CreatePartitions submits a batch of partition-count increases (§6).
func (c *AdminClient) CreatePartitions(specs []NewPartitions, options *AdminOptions, replyCh chan<- Event) {
	if options == nil {
		options = NewAdminOptions(KindCreatePartitions)
	}
	copies := make([]NewPartitions, len(specs))
	for i := range specs {
		if aerr := specs[i].validate(); aerr != nil {
			deliverImmediateFailure(KindCreatePartitions, options.Opaque(), aerr, replyCh)
			return
		}
		copies[i] = specs[i].deepCopy()
	}
	item := c.newItem(KindCreatePartitions, copies, options.snapshot(), createPartitionsCodec, replyCh)
	c.driver.submit(item)
}

// AlterConfigs submits a batch of configuration alterations (§6, §4.5).
func (c *AdminClient) AlterConfigs(resources []ConfigResource, options *AdminOptions, replyCh chan<- Event) {
	if options == nil {
		options = NewAdminOptions(KindAlterConfigs)
	}
	brokerID, aerr := computeBrokerID(options, resources)
	if aerr != nil {
		deliverImmediateFailure(KindAlterConfigs, options.Opaque(), aerr, replyCh)
		return
	}
	copies := deepCopyResources(resources)
	snap := options.snapshot()
	snap.broker = brokerID
	item := c.newItem(KindAlterConfigs, copies, snap, alterConfigsCodec, replyCh)
	c.driver.submit(item)
}

// DescribeConfigs submits a batch of configuration reads (§6, §4.5).
func (c *AdminClient) DescribeConfigs(resources []ConfigResource, options *AdminOptions, replyCh chan<- Event) {
	if options == nil {
		options = NewAdminOptions(KindDescribeConfigs)
	}
	brokerID, aerr := computeBrokerID(options, resources)
	if aerr != nil {
		deliverImmediateFailure(KindDescribeConfigs, options.Opaque(), aerr, replyCh)
		return
	}
	copies := deepCopyResources(resources)
	snap := options.snapshot()
	snap.broker = brokerID
	item := c.newItem(KindDescribeConfigs, copies, snap, describeConfigsCodec, replyCh)
	c.driver.submit(item)
}

// computeBrokerID resolves the target broker for the two config APIs: an
// explicit AdminOptions.broker override always wins; otherwise the
// BROKER-resource scan of §4.5 applies.
func computeBrokerID(options *AdminOptions, resources []ConfigResource) (int32, *AdminError) {
	if options != nil && options.Broker() >= 0 {
		return options.Broker(), nil
	}
	return scanBrokerResources(resources)
}

func deepCopyResources(resources []ConfigResource) []ConfigResource {
	copies := make([]ConfigResource, len(resources))
	for i, r := range resources {
		cp := r
		cp.Config = append([]ConfigEntry(nil), r.Config...)
		copies[i] = cp
	}
	return copies
}
