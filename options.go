package kadmin

import "time"

// option is a bit in the per-API applicability table (§4.2).
type option int

const (
	optRequestTimeout option = iota
	optOperationTimeout
	optValidateOnly
	optIncremental
	optBroker
	optOpaque
	optCount
)

// applicability mirrors the table in spec.md §4.2: which options each API
// accepts. request_timeout, broker and opaque apply to every API.
var applicability = map[RequestKind][optCount]bool{
	KindCreateTopics: {
		optRequestTimeout: true, optOperationTimeout: true, optValidateOnly: true,
		optIncremental: false, optBroker: true, optOpaque: true,
	},
	KindDeleteTopics: {
		optRequestTimeout: true, optOperationTimeout: true, optValidateOnly: false,
		optIncremental: false, optBroker: true, optOpaque: true,
	},
	KindCreatePartitions: {
		optRequestTimeout: true, optOperationTimeout: true, optValidateOnly: true,
		optIncremental: false, optBroker: true, optOpaque: true,
	},
	KindAlterConfigs: {
		optRequestTimeout: true, optOperationTimeout: false, optValidateOnly: true,
		optIncremental: true, optBroker: true, optOpaque: true,
	},
	KindDescribeConfigs: {
		optRequestTimeout: true, optOperationTimeout: false, optValidateOnly: false,
		optIncremental: false, optBroker: true, optOpaque: true,
	},
}

// AdminOptions is the validated, per-API option bag (§4.2). Construct one
// with NewAdminOptions(kind) so setters know which options are applicable;
// the zero value is usable but rejects every setter.
type AdminOptions struct {
	kind RequestKind
	bound bool

	requestTimeout  time.Duration
	operationTimeout time.Duration
	validateOnly    bool
	incremental     bool
	broker          int32 // -1 means unset / use controller
	opaque          any
}

// NewAdminOptions returns an options bag scoped to kind, with defaults
// matching sarama's zero-value Admin config (no validate-only, controller
// target, request_timeout left at zero so the client default applies).
func NewAdminOptions(kind RequestKind) *AdminOptions {
	return &AdminOptions{
		kind:   kind,
		bound:  true,
		broker: -1,
	}
}

func (o *AdminOptions) applies(opt option) bool {
	if !o.bound {
		return false
	}
	table, ok := applicability[o.kind]
	if !ok {
		return false
	}
	return table[opt]
}

// SetRequestTimeout sets T_req's source duration (0..3_600_000ms); the
// absolute deadline is computed at submission as now+requestTimeout.
func (o *AdminOptions) SetRequestTimeout(d time.Duration) error {
	if !o.applies(optRequestTimeout) {
		return ErrOptionUnsupported
	}
	if d < 0 || d > 3_600_000*time.Millisecond {
		return newAdminError(ClassInvalidArg, "request_timeout out of range: %s", d)
	}
	o.requestTimeout = d
	return nil
}

// SetOperationTimeout sets T_op, the duration sent inside the wire request
// telling the server how long it may spend applying the change. <=0 means
// "hide REQUEST_TIMED_OUT element errors" (§4.4 rule 4).
func (o *AdminOptions) SetOperationTimeout(d time.Duration) error {
	if !o.applies(optOperationTimeout) {
		return ErrOptionUnsupported
	}
	if d < -1*time.Millisecond || d > 3_600_000*time.Millisecond {
		return newAdminError(ClassInvalidArg, "operation_timeout out of range: %s", d)
	}
	o.operationTimeout = d
	return nil
}

// SetValidateOnly requests server-side validation without application.
func (o *AdminOptions) SetValidateOnly(v bool) error {
	if !o.applies(optValidateOnly) {
		return ErrOptionUnsupported
	}
	o.validateOnly = v
	return nil
}

// SetIncremental reserves incremental semantics for AlterConfigs.
func (o *AdminOptions) SetIncremental(v bool) error {
	if !o.applies(optIncremental) {
		return ErrOptionUnsupported
	}
	o.incremental = v
	return nil
}

// SetBroker overrides the target broker; id must be >= 0, or -1 to clear
// the override and fall back to the controller / per-API resource rule.
func (o *AdminOptions) SetBroker(id int32) error {
	if !o.applies(optBroker) {
		return ErrOptionUnsupported
	}
	if id < -1 {
		return newAdminError(ClassInvalidArg, "broker id must be >= -1, got %d", id)
	}
	o.broker = id
	return nil
}

// SetOpaque attaches a caller cookie returned verbatim in the result event.
func (o *AdminOptions) SetOpaque(v any) error {
	if !o.applies(optOpaque) {
		return ErrOptionUnsupported
	}
	o.opaque = v
	return nil
}

// RequestTimeout resolves the effective request_timeout, falling back to
// the client default when unset.
func (o *AdminOptions) RequestTimeout(clientDefault time.Duration) time.Duration {
	if o.requestTimeout > 0 {
		return o.requestTimeout
	}
	return clientDefault
}

func (o *AdminOptions) OperationTimeout() time.Duration { return o.operationTimeout }
func (o *AdminOptions) ValidateOnly() bool               { return o.validateOnly }
func (o *AdminOptions) Incremental() bool                { return o.incremental }
func (o *AdminOptions) Broker() int32                    { return o.broker }
func (o *AdminOptions) Opaque() any                      { return o.opaque }

// snapshot returns a by-value copy, per spec.md invariant that
// RequestItem.options is a snapshot taken at submission (§3).
func (o *AdminOptions) snapshot() AdminOptions {
	if o == nil {
		return AdminOptions{broker: -1}
	}
	return *o
}
