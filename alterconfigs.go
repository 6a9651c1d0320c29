package kadmin

import (
	"strconv"
	"time"
)

// AlterConfigsRequest mirrors admin.go's AlterConfigsRequest shape.
type AlterConfigsRequest struct {
	Resources    []*ConfigResource
	ValidateOnly bool
	Incremental  bool
}

// ResourceError is one element of a (type,name)-keyed response
// (AlterConfigs, DescribeConfigs).
type ResourceError struct {
	Type    ConfigResourceType
	Name    string
	Err     KError
	ErrMsg  string
	Configs []ConfigEntry // DescribeConfigs only
}

// AlterConfigsResponse is the parsed reply for AlterConfigs.
type AlterConfigsResponse struct {
	ThrottleTime time.Duration
	Resources    []ResourceError
}

var alterConfigsCodec = codec{encode: alterConfigsEncode, decode: alterConfigsDecode}

func alterConfigsEncode(d *Driver, item *RequestItem, broker Broker) error {
	resources := item.args.([]ConfigResource)
	req := &AlterConfigsRequest{
		ValidateOnly: item.options.ValidateOnly(),
		Incremental:  item.options.Incremental(),
	}
	for i := range resources {
		req.Resources = append(req.Resources, &resources[i])
	}

	trigger := item.trigger
	broker.AlterConfigs(req, func(resp *AlterConfigsResponse, err error) {
		var buf any
		if err == nil {
			buf = resp
		}
		completeFromIO(d, trigger, buf, err)
	})
	return nil
}

func alterConfigsDecode(item *RequestItem) (Event, *AdminError) {
	resp, ok := item.replyBuf.(*AlterConfigsResponse)
	if !ok || resp == nil {
		return nil, newAdminError(ClassProtocolParseFailure, "AlterConfigs: missing reply buffer")
	}
	if d := resp.ThrottleTime; d > 0 && item.driver != nil {
		item.driver.forwardThrottle(d)
	}

	resources := item.args.([]ConfigResource)
	results, aerr := reorderResourceResponse("AlterConfigs", resources, resp.Resources, false)
	if aerr != nil {
		return nil, aerr
	}
	return &AlterConfigsResult{eventBase: eventBase{opaque: item.options.Opaque()}, Resources: results}, nil
}

// reorderResourceResponse implements the shared §4.4/§4.5 rules for the two
// resource-keyed APIs: arity check, reordering by (type,name), the unknown
// resource type skip (entries occupy no slot and are not a parse failure),
// and canonical-message substitution. withConfigs also copies describe-side
// metadata (used by DescribeConfigs only).
func reorderResourceResponse(api string, req []ConfigResource, resp []ResourceError, withConfigs bool) ([]ConfigResourceResult, *AdminError) {
	if len(resp) > len(req) {
		return nil, newAdminError(ClassProtocolParseFailure, "%s: response has %d elements, request has %d", api, len(resp), len(req))
	}

	index := make(map[string]int, len(req))
	for i, r := range req {
		index[resourceKey(r.Type, r.Name)] = i
	}

	results := make([]ConfigResourceResult, len(req))
	filled := make([]bool, len(req))

	for _, re := range resp {
		if !knownResourceType(re.Type) {
			Logger.Printf("%s: skipping unknown resource type %d for %q", api, re.Type, re.Name)
			continue
		}
		i, ok := index[resourceKey(re.Type, re.Name)]
		if !ok || filled[i] {
			return nil, newAdminError(ClassProtocolParseFailure, "%s: unexpected or duplicate element (%s,%q) in response", api, re.Type, re.Name)
		}
		filled[i] = true

		msg := re.ErrMsg
		if msg == "" && re.Err != ErrNoError {
			msg = canonicalMessage(re.Err)
		}
		var elErr error
		if re.Err != ErrNoError {
			elErr = re.Err
		}
		result := ConfigResourceResult{Type: re.Type, Name: re.Name, Err: elErr, ErrStr: msg}
		if withConfigs {
			result.Configs = re.Configs
		}
		results[i] = result
	}

	// Slots left unfilled correspond either to an unknown-type skip or a
	// resource the broker never answered; both leave the slot empty so the
	// application detects shortfall by len(Resources) < len(request).
	out := make([]ConfigResourceResult, 0, len(results))
	for i, f := range filled {
		if f {
			out = append(out, results[i])
		}
	}
	return out, nil
}

// scanBrokerResources implements §4.5: routes AlterConfigs/DescribeConfigs
// to the controller unless exactly one BROKER resource is present, in
// which case it routes to that broker id; two or more is a CONFLICT.
func scanBrokerResources(resources []ConfigResource) (brokerID int32, aerr *AdminError) {
	var found []string
	for _, r := range resources {
		if r.Type == ResourceBroker {
			found = append(found, r.Name)
		}
	}
	switch len(found) {
	case 0:
		return -1, nil
	case 1:
		id, err := parseBrokerID(found[0])
		if err != nil {
			return -1, wrapAdminError(ClassInvalidArg, err, "invalid broker id %q: %s", found[0], err)
		}
		return id, nil
	default:
		return -1, newAdminError(ClassConflict, "multiple BROKER resources in a single request: %v", found)
	}
}

// parseBrokerID parses a BROKER resource's name field, reusing the same
// strconv.ParseInt the teacher's admin.go uses for dependsOnSpecificNode
// resources.
func parseBrokerID(name string) (int32, error) {
	id, err := strconv.ParseInt(name, 10, 32)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, newAdminError(ClassInvalidArg, "broker id must be >= 0, got %d", id)
	}
	return int32(id), nil
}
