package kadmin

import "time"

// DeleteTopicsRequest mirrors delete_topics_response.go's request half.
type DeleteTopicsRequest struct {
	Topics    []string
	TimeoutMs int32
}

// DeleteTopicsResponse is the parsed reply for DeleteTopics.
type DeleteTopicsResponse struct {
	ThrottleTime    time.Duration
	TopicErrorCodes map[string]KError
}

var deleteTopicsCodec = codec{encode: deleteTopicsEncode, decode: deleteTopicsDecode}

func deleteTopicsEncode(d *Driver, item *RequestItem, broker Broker) error {
	topics := item.args.([]string)
	req := &DeleteTopicsRequest{
		Topics:    append([]string(nil), topics...),
		TimeoutMs: int32(item.options.OperationTimeout() / time.Millisecond),
	}

	trigger := item.trigger
	broker.DeleteTopics(req, func(resp *DeleteTopicsResponse, err error) {
		var buf any
		if err == nil {
			buf = resp
		}
		completeFromIO(d, trigger, buf, err)
	})
	return nil
}

func deleteTopicsDecode(item *RequestItem) (Event, *AdminError) {
	resp, ok := item.replyBuf.(*DeleteTopicsResponse)
	if !ok || resp == nil {
		return nil, newAdminError(ClassProtocolParseFailure, "DeleteTopics: missing reply buffer")
	}
	if d := resp.ThrottleTime; d > 0 && item.driver != nil {
		item.driver.forwardThrottle(d)
	}

	names := item.args.([]string)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	if len(resp.TopicErrorCodes) > len(names) {
		return nil, newAdminError(ClassProtocolParseFailure,
			"DeleteTopics: response has %d elements, request has %d", len(resp.TopicErrorCodes), len(names))
	}

	results := make([]TopicResult, len(names))
	filled := make([]bool, len(names))

	for name, code := range resp.TopicErrorCodes {
		i, ok := index[name]
		if !ok || filled[i] {
			return nil, newAdminError(ClassProtocolParseFailure, "DeleteTopics: unexpected or duplicate element %q in response", name)
		}
		filled[i] = true
		results[i] = buildTopicResult(name, TopicError{Err: code}, item.options.OperationTimeout())
	}

	for i, filled := range filled {
		if !filled {
			return nil, newAdminError(ClassProtocolParseFailure, "DeleteTopics: incomplete response, missing element %q", names[i])
		}
	}

	return &DeleteTopicsResult{eventBase: eventBase{opaque: item.options.Opaque()}, Topics: results}, nil
}
