package kadmin

import "testing"

// TestAlterConfigsDuplicateResourceIsParseFailure is spec.md §8 scenario 6.
func TestAlterConfigsDuplicateResourceIsParseFailure(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &AlterConfigsResponse{Resources: []ResourceError{
			{Type: ResourceTopic, Name: "A", Err: ErrNoError},
			{Type: ResourceTopic, Name: "A", Err: ErrNoError}, // duplicate
		}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.AlterConfigs([]ConfigResource{{Type: ResourceTopic, Name: "A"}}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*AlterConfigsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassProtocolParseFailure {
		t.Fatalf("expected protocol parse failure for duplicate resource, got %v", res.Err())
	}
}

// TestAlterConfigsTwoBrokerResourcesIsImmediateConflict is spec.md §8
// scenario 7: CONFLICT is delivered immediately, with no request ever sent
// to any broker.
func TestAlterConfigsTwoBrokerResourcesIsImmediateConflict(t *testing.T) {
	client := NewFakeClient(NewConfig())
	dispatched := false
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		dispatched = true
		return &AlterConfigsResponse{}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)
	client.SetBrokerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.AlterConfigs([]ConfigResource{
		{Type: ResourceBroker, Name: "1"},
		{Type: ResourceBroker, Name: "2"},
	}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*AlterConfigsResult)
	aerr, ok := res.Err().(*AdminError)
	if !ok || aerr.Class != ClassConflict {
		t.Fatalf("expected CONFLICT for two BROKER resources, got %v", res.Err())
	}
	if dispatched {
		t.Fatalf("expected no request ever sent to a broker")
	}
}

func TestAlterConfigsUnknownResourceTypeIsSkippedNotParseFailure(t *testing.T) {
	client := NewFakeClient(NewConfig())
	broker := NewFakeBroker(1, func(kind RequestKind, req any) (any, error) {
		return &AlterConfigsResponse{Resources: []ResourceError{
			{Type: ResourceTopic, Name: "A", Err: ErrNoError},
			{Type: ConfigResourceType(99), Name: "ghost", Err: ErrNoError},
		}}, nil
	}, 0)
	client.AddBroker(broker)
	client.SetControllerUp(1)

	admin, _ := NewAdminClient(client, nil)
	defer admin.Close()

	replyCh := make(chan Event, 1)
	admin.AlterConfigs([]ConfigResource{
		{Type: ResourceTopic, Name: "A"},
		{Type: ConfigResourceType(99), Name: "ghost"},
	}, nil, replyCh)

	ev := waitEvent(t, replyCh)
	res := ev.(*AlterConfigsResult)
	if res.Err() != nil {
		t.Fatalf("unexpected request-level error: %v", res.Err())
	}
	if len(res.Resources) != 1 || res.Resources[0].Name != "A" {
		t.Fatalf("expected only the known resource in the result, got %+v", res.Resources)
	}
}
