package kadmin

import "time"

// CreateTopicsRequest is the wire-bound shape handed to a Broker (out of
// scope for the actual byte encoding, per spec.md §1).
type CreateTopicsRequest struct {
	Topics       map[string]*NewTopic
	ValidateOnly bool
	TimeoutMs    int32
}

// TopicError is one element of a topic-keyed response (CreateTopics,
// DeleteTopics, CreatePartitions), mirroring delete_topics_response.go's
// TopicErrorCodes shape but carrying a message alongside the code.
type TopicError struct {
	Err    KError
	ErrMsg string
}

// CreateTopicsResponse is the parsed reply handed back by the broker I/O
// layer (spec.md §1: "invokes a handler with a parsed reply buffer").
type CreateTopicsResponse struct {
	ThrottleTime time.Duration
	TopicErrors  map[string]TopicError
}

var createTopicsCodec = codec{encode: createTopicsEncode, decode: createTopicsDecode}

func createTopicsEncode(d *Driver, item *RequestItem, broker Broker) error {
	topics := item.args.([]NewTopic)
	req := &CreateTopicsRequest{
		Topics:       make(map[string]*NewTopic, len(topics)),
		ValidateOnly: item.options.ValidateOnly(),
		TimeoutMs:    int32(item.options.OperationTimeout() / time.Millisecond),
	}
	for i := range topics {
		req.Topics[topics[i].Topic] = &topics[i]
	}

	trigger := item.trigger
	broker.CreateTopics(req, func(resp *CreateTopicsResponse, err error) {
		var buf any
		if err == nil {
			buf = resp
		}
		completeFromIO(d, trigger, buf, err)
	})
	return nil
}

func createTopicsDecode(item *RequestItem) (Event, *AdminError) {
	resp, ok := item.replyBuf.(*CreateTopicsResponse)
	if !ok || resp == nil {
		return nil, newAdminError(ClassProtocolParseFailure, "CreateTopics: missing reply buffer")
	}
	if d := resp.ThrottleTime; d > 0 && item.driver != nil {
		item.driver.forwardThrottle(d)
	}

	topics := item.args.([]NewTopic)
	names := make([]string, len(topics))
	index := make(map[string]int, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
		index[t.Topic] = i
	}

	if len(resp.TopicErrors) > len(names) {
		return nil, newAdminError(ClassProtocolParseFailure,
			"CreateTopics: response has %d elements, request has %d", len(resp.TopicErrors), len(names))
	}

	results := make([]TopicResult, len(names))
	filled := make([]bool, len(names))

	for name, te := range resp.TopicErrors {
		i, ok := index[name]
		if !ok || filled[i] {
			return nil, newAdminError(ClassProtocolParseFailure, "CreateTopics: unexpected or duplicate element %q in response", name)
		}
		filled[i] = true
		results[i] = buildTopicResult(name, te, item.options.OperationTimeout())
	}

	for i, filled := range filled {
		if !filled {
			return nil, newAdminError(ClassProtocolParseFailure, "CreateTopics: incomplete response, missing element %q", names[i])
		}
	}

	return &CreateTopicsResult{eventBase: eventBase{opaque: item.options.Opaque()}, Topics: results}, nil
}

// buildTopicResult applies the hidden-timeout rewrite (§4.4 rule 4) and the
// canonical-message substitution (§4.4 rule 5), shared across the three
// topic-keyed APIs.
func buildTopicResult(name string, te TopicError, operationTimeout time.Duration) TopicResult {
	code := te.Err
	msg := te.ErrMsg
	if code == ErrRequestTimedOut && operationTimeout <= 0 {
		code = ErrNoError
		msg = ""
	}
	if code == ErrNoError {
		return TopicResult{Topic: name}
	}
	if msg == "" {
		msg = canonicalMessage(code)
	}
	return TopicResult{Topic: name, Err: code, ErrStr: msg}
}
