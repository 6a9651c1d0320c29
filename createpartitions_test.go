package kadmin

import "testing"

func TestCreatePartitionsHappyPath(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		r := req.(*CreatePartitionsRequest)
		if _, ok := r.TopicPartitions["A"]; !ok {
			t.Fatalf("expected topic A in request")
		}
		return &CreatePartitionsResponse{TopicPartitionErrors: map[string]TopicError{"A": {Err: ErrNoError}}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreatePartitions([]NewPartitions{{Topic: "A", TotalCount: 5}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res, ok := ev.(*CreatePartitionsResult)
	if !ok {
		t.Fatalf("expected *CreatePartitionsResult, got %T", ev)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected request-level error: %v", res.Err())
	}
	if len(res.Topics) != 1 || res.Topics[0].Topic != "A" || res.Topics[0].Err != nil {
		t.Fatalf("unexpected topic result: %+v", res.Topics)
	}
}

func TestCreatePartitionsRejectsSubCountTotal(t *testing.T) {
	client := NewFakeClient(NewConfig())
	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreatePartitions([]NewPartitions{{Topic: "A", TotalCount: 0}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreatePartitionsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassInvalidArg {
		t.Fatalf("expected INVALID_ARG for total_count < 1, got %v", res.Err())
	}
}

func TestCreatePartitionsIncompleteResponseIsParseFailure(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &CreatePartitionsResponse{TopicPartitionErrors: map[string]TopicError{}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.CreatePartitions([]NewPartitions{{Topic: "A", TotalCount: 3}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*CreatePartitionsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassProtocolParseFailure {
		t.Fatalf("expected protocol parse failure for missing element, got %v", res.Err())
	}
}

func TestCreatePartitionsInputCopyIsIndependent(t *testing.T) {
	client := NewFakeClient(NewConfig())
	var seen *TopicPartitionSpec
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		r := req.(*CreatePartitionsRequest)
		seen = r.TopicPartitions["A"]
		errs := make(map[string]TopicError, len(r.TopicPartitions))
		for name := range r.TopicPartitions {
			errs[name] = TopicError{Err: ErrNoError}
		}
		return &CreatePartitionsResponse{TopicPartitionErrors: errs}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	specs := []NewPartitions{{Topic: "A", TotalCount: 2, ReplicaAssignment: [][]int32{{1, 2}, {2, 3}}}}
	replyCh := make(chan Event, 1)
	admin.CreatePartitions(specs, nil, replyCh)

	// mutate the caller's slice immediately after submission; the engine
	// must already hold its own deep copy (spec.md "deep copy on
	// submission"), so the fake broker must never observe this mutation.
	specs[0].TotalCount = 99
	specs[0].ReplicaAssignment[0][0] = 99

	ev := waitEvent(t, replyCh)
	res := ev.(*CreatePartitionsResult)
	if res.Topics[0].Err != nil {
		t.Fatalf("unexpected topic error: %v", res.Topics[0].Err)
	}
	if seen == nil {
		t.Fatalf("fake broker never observed a request for topic A")
	}
	if seen.Count != 2 {
		t.Fatalf("expected broker to see pre-mutation count 2, got %d", seen.Count)
	}
	if len(seen.Assignment) != 2 || seen.Assignment[0][0] != 1 {
		t.Fatalf("expected broker to see pre-mutation assignment [[1 2] [2 3]], got %v", seen.Assignment)
	}
}
