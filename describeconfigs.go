package kadmin

import "time"

// DescribeConfigsRequest mirrors admin.go's DescribeConfigsRequest shape.
type DescribeConfigsRequest struct {
	Resources []*ConfigResource
	Version   int16 // 0 carries IsDefault; 1 carries an explicit Source and synonyms
}

// DescribeConfigsResponse is the parsed reply for DescribeConfigs.
type DescribeConfigsResponse struct {
	ThrottleTime time.Duration
	Version      int16
	Resources    []ResourceError
}

var describeConfigsCodec = codec{encode: describeConfigsEncode, decode: describeConfigsDecode}

func describeConfigsEncode(d *Driver, item *RequestItem, broker Broker) error {
	resources := item.args.([]ConfigResource)
	req := &DescribeConfigsRequest{Version: d.describeConfigsVersion()}
	for i := range resources {
		req.Resources = append(req.Resources, &resources[i])
	}

	trigger := item.trigger
	broker.DescribeConfigs(req, func(resp *DescribeConfigsResponse, err error) {
		var buf any
		if err == nil {
			buf = resp
		}
		completeFromIO(d, trigger, buf, err)
	})
	return nil
}

func describeConfigsDecode(item *RequestItem) (Event, *AdminError) {
	resp, ok := item.replyBuf.(*DescribeConfigsResponse)
	if !ok || resp == nil {
		return nil, newAdminError(ClassProtocolParseFailure, "DescribeConfigs: missing reply buffer")
	}
	if d := resp.ThrottleTime; d > 0 && item.driver != nil {
		item.driver.forwardThrottle(d)
	}

	for i, re := range resp.Resources {
		normalizeConfigEntrySources(re.Configs, resp.Version)
		if len(re.Configs) > synonymCap {
			// shouldn't happen per-entry, but guard the whole list too
			resp.Resources[i].Configs = re.Configs[:synonymCap]
		}
		for j := range re.Configs {
			if len(re.Configs[j].Synonyms) > synonymCap {
				re.Configs[j].Synonyms = re.Configs[j].Synonyms[:synonymCap]
			}
		}
	}

	resources := item.args.([]ConfigResource)
	results, aerr := reorderResourceResponse("DescribeConfigs", resources, resp.Resources, true)
	if aerr != nil {
		return nil, aerr
	}
	return &DescribeConfigsResult{eventBase: eventBase{opaque: item.options.Opaque()}, Resources: results}, nil
}

// normalizeConfigEntrySources applies the version law (§4.4, §8): v0
// synthesizes Source from IsDefault, v1 synthesizes IsDefault from Source.
// Synonyms only exist in v1.
func normalizeConfigEntrySources(entries []ConfigEntry, version int16) {
	for i := range entries {
		e := &entries[i]
		if version == 0 {
			if e.IsDefault {
				e.Source = SourceDefaultConfig
			}
		} else {
			if e.Source == SourceDefaultConfig {
				e.IsDefault = true
			}
			for j := range e.Synonyms {
				s := &e.Synonyms[j]
				if s.Source == SourceDefaultConfig {
					s.IsDefault = true
				}
			}
		}
	}
}
