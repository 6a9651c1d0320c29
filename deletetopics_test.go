package kadmin

import "testing"

// TestDeleteTopicsReorder is spec.md §8 scenario 2: the response arrives in
// a different order than the request, and the decoder must reassemble the
// result into request order.
func TestDeleteTopicsReorder(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &DeleteTopicsResponse{TopicErrorCodes: map[string]KError{
			"B": ErrNoError,
			"A": ErrUnknownTopic,
			"C": ErrNoError,
		}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.DeleteTopics([]string{"A", "B", "C"}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res, ok := ev.(*DeleteTopicsResult)
	if !ok {
		t.Fatalf("expected *DeleteTopicsResult, got %T", ev)
	}
	if len(res.Topics) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res.Topics))
	}
	if res.Topics[0].Topic != "A" || res.Topics[0].Err != ErrUnknownTopic {
		t.Fatalf("slot 0 expected A/UNKNOWN_TOPIC_OR_PART, got %+v", res.Topics[0])
	}
	if res.Topics[1].Topic != "B" || res.Topics[1].Err != nil {
		t.Fatalf("slot 1 expected B/success, got %+v", res.Topics[1])
	}
	if res.Topics[2].Topic != "C" || res.Topics[2].Err != nil {
		t.Fatalf("slot 2 expected C/success, got %+v", res.Topics[2])
	}
}

func TestDeleteTopicsRejectsEmptyTopicName(t *testing.T) {
	client := NewFakeClient(NewConfig())
	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.DeleteTopics([]string{""}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*DeleteTopicsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassInvalidArg {
		t.Fatalf("expected INVALID_ARG, got %v", res.Err())
	}
}

func TestDeleteTopicsInputCopyIsIndependent(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		r := req.(*DeleteTopicsRequest)
		errs := make(map[string]KError, len(r.Topics))
		for _, topic := range r.Topics {
			errs[topic] = ErrNoError
		}
		return &DeleteTopicsResponse{TopicErrorCodes: errs}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	topics := []string{"A", "B"}
	replyCh := make(chan Event, 1)
	admin.DeleteTopics(topics, nil, replyCh)

	// mutate the caller's slice immediately after submission; the engine
	// must already hold its own copy (§6, §8 "input copies are truly
	// independent").
	topics[0] = "MUTATED"

	ev := waitEvent(t, replyCh)
	res := ev.(*DeleteTopicsResult)
	if res.Topics[0].Topic != "A" {
		t.Fatalf("expected engine's copy unaffected by caller mutation, got %q", res.Topics[0].Topic)
	}
}
