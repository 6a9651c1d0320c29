package kadmin

import (
	"testing"
	"time"
)

// TestCreateTopicsHappyPath is spec.md §8 scenario 1.
func TestCreateTopicsHappyPath(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		r := req.(*CreateTopicsRequest)
		if _, ok := r.Topics["A"]; !ok {
			t.Fatalf("expected topic A in request")
		}
		return &CreateTopicsResponse{TopicErrors: map[string]TopicError{"A": {Err: ErrNoError}}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, err := NewAdminClient(client, nil)
	if err != nil {
		t.Fatalf("NewAdminClient: %v", err)
	}
	defer admin.Close()

	replyCh := make(chan Event, 1)
	opts := NewAdminOptions(KindCreateTopics)
	_ = opts.SetRequestTimeout(5 * time.Second)
	admin.CreateTopics([]NewTopic{{Topic: "A", PartitionCount: 3, ReplicationFactor: 1}}, opts, replyCh)

	ev := waitEvent(t, replyCh)
	res, ok := ev.(*CreateTopicsResult)
	if !ok {
		t.Fatalf("expected *CreateTopicsResult, got %T", ev)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected request-level error: %v", res.Err())
	}
	if len(res.Topics) != 1 {
		t.Fatalf("expected 1 topic result, got %d", len(res.Topics))
	}
	if res.Topics[0].Topic != "A" || res.Topics[0].Err != nil {
		t.Fatalf("unexpected topic result: %+v", res.Topics[0])
	}
}

// TestCreateTopicsHiddenTimeout is spec.md §8 scenario 3.
func TestCreateTopicsHiddenTimeout(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &CreateTopicsResponse{TopicErrors: map[string]TopicError{"X": {Err: ErrRequestTimedOut}}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	opts := NewAdminOptions(KindCreateTopics)
	_ = opts.SetOperationTimeout(0)
	admin.CreateTopics([]NewTopic{{Topic: "X", PartitionCount: 1, ReplicationFactor: 1}}, opts, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreateTopicsResult)
	if res.Topics[0].Err != nil {
		t.Fatalf("hidden-timeout rule should rewrite REQUEST_TIMED_OUT to success, got %v", res.Topics[0].Err)
	}
}

// TestCreateTopicsPreservesTimeoutWhenOperationTimeoutPositive is the
// hidden-timeout law's other half (§8 Property laws).
func TestCreateTopicsPreservesTimeoutWhenOperationTimeoutPositive(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &CreateTopicsResponse{TopicErrors: map[string]TopicError{"X": {Err: ErrRequestTimedOut}}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	opts := NewAdminOptions(KindCreateTopics)
	_ = opts.SetOperationTimeout(30 * time.Second)
	admin.CreateTopics([]NewTopic{{Topic: "X", PartitionCount: 1, ReplicationFactor: 1}}, opts, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreateTopicsResult)
	if res.Topics[0].Err != ErrRequestTimedOut {
		t.Fatalf("expected REQUEST_TIMED_OUT preserved, got %v", res.Topics[0].Err)
	}
}

func TestCreateTopicsRejectsReplicaAssignmentWithReplicationFactor(t *testing.T) {
	client := NewFakeClient(NewConfig())
	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreateTopics([]NewTopic{{
		Topic:             "bad",
		ReplicationFactor: 2,
		ReplicaAssignment: [][]int32{{1, 2}},
	}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreateTopicsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassInvalidArg {
		t.Fatalf("expected INVALID_ARG, got %v", res.Err())
	}
}

func TestCreateTopicsUnexpectedResponseElementIsParseFailure(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &CreateTopicsResponse{TopicErrors: map[string]TopicError{
			"A": {Err: ErrNoError},
			"Z": {Err: ErrNoError}, // not in request: two elements against one requested fails the arity check
		}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreateTopics([]NewTopic{{Topic: "A", PartitionCount: 1, ReplicationFactor: 1}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreateTopicsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassProtocolParseFailure {
		t.Fatalf("expected protocol parse failure, got %v", res.Err())
	}
}

// TestCreateTopicsForwardsThrottleTime is spec.md's shared throttle rule
// (§4.4): a non-zero ThrottleTime on the response is forwarded to the
// client's side channel, exposed via AdminClient.ThrottleEvents.
func TestCreateTopicsForwardsThrottleTime(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &CreateTopicsResponse{
			ThrottleTime: 250 * time.Millisecond,
			TopicErrors:  map[string]TopicError{"A": {Err: ErrNoError}},
		}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreateTopics([]NewTopic{{Topic: "A", PartitionCount: 1, ReplicationFactor: 1}}, nil, replyCh)
	waitEvent(t, replyCh)

	select {
	case d := <-admin.ThrottleEvents():
		if d != 250*time.Millisecond {
			t.Fatalf("expected 250ms throttle hint, got %s", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a throttle hint on ThrottleEvents()")
	}
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}
