package kadmin

import "time"

// TopicPartitionSpec is one CreatePartitions wire element.
type TopicPartitionSpec struct {
	Count      int32
	Assignment [][]int32
}

// CreatePartitionsRequest mirrors admin.go's CreatePartitionsRequest shape.
type CreatePartitionsRequest struct {
	TopicPartitions map[string]*TopicPartitionSpec
	ValidateOnly    bool
	TimeoutMs       int32
}

// CreatePartitionsResponse is the parsed reply for CreatePartitions.
type CreatePartitionsResponse struct {
	ThrottleTime         time.Duration
	TopicPartitionErrors map[string]TopicError
}

var createPartitionsCodec = codec{encode: createPartitionsEncode, decode: createPartitionsDecode}

func createPartitionsEncode(d *Driver, item *RequestItem, broker Broker) error {
	specs := item.args.([]NewPartitions)
	req := &CreatePartitionsRequest{
		TopicPartitions: make(map[string]*TopicPartitionSpec, len(specs)),
		ValidateOnly:    item.options.ValidateOnly(),
		TimeoutMs:       int32(item.options.OperationTimeout() / time.Millisecond),
	}
	for _, s := range specs {
		req.TopicPartitions[s.Topic] = &TopicPartitionSpec{Count: s.TotalCount, Assignment: s.ReplicaAssignment}
	}

	trigger := item.trigger
	broker.CreatePartitions(req, func(resp *CreatePartitionsResponse, err error) {
		var buf any
		if err == nil {
			buf = resp
		}
		completeFromIO(d, trigger, buf, err)
	})
	return nil
}

func createPartitionsDecode(item *RequestItem) (Event, *AdminError) {
	resp, ok := item.replyBuf.(*CreatePartitionsResponse)
	if !ok || resp == nil {
		return nil, newAdminError(ClassProtocolParseFailure, "CreatePartitions: missing reply buffer")
	}
	if d := resp.ThrottleTime; d > 0 && item.driver != nil {
		item.driver.forwardThrottle(d)
	}

	specs := item.args.([]NewPartitions)
	names := make([]string, len(specs))
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		names[i] = s.Topic
		index[s.Topic] = i
	}

	if len(resp.TopicPartitionErrors) > len(names) {
		return nil, newAdminError(ClassProtocolParseFailure,
			"CreatePartitions: response has %d elements, request has %d", len(resp.TopicPartitionErrors), len(names))
	}

	results := make([]TopicResult, len(names))
	filled := make([]bool, len(names))

	for name, te := range resp.TopicPartitionErrors {
		i, ok := index[name]
		if !ok || filled[i] {
			return nil, newAdminError(ClassProtocolParseFailure, "CreatePartitions: unexpected or duplicate element %q in response", name)
		}
		filled[i] = true
		results[i] = buildTopicResult(name, te, item.options.OperationTimeout())
	}

	for i, filled := range filled {
		if !filled {
			return nil, newAdminError(ClassProtocolParseFailure, "CreatePartitions: incomplete response, missing element %q", names[i])
		}
	}

	return &CreatePartitionsResult{eventBase: eventBase{opaque: item.options.Opaque()}, Topics: results}, nil
}
