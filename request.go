package kadmin

import (
	"time"

	"github.com/google/uuid"
)

// RequestKind identifies which admin API a RequestItem belongs to (§3).
type RequestKind int

const (
	KindCreateTopics RequestKind = iota
	KindDeleteTopics
	KindCreatePartitions
	KindAlterConfigs
	KindDescribeConfigs
)

func (k RequestKind) String() string {
	switch k {
	case KindCreateTopics:
		return "CreateTopics"
	case KindDeleteTopics:
		return "DeleteTopics"
	case KindCreatePartitions:
		return "CreatePartitions"
	case KindAlterConfigs:
		return "AlterConfigs"
	case KindDescribeConfigs:
		return "DescribeConfigs"
	default:
		return "Unknown"
	}
}

// RequestState is the state-machine position of a RequestItem (§3/§4.3).
// It only ever transitions on the driver thread (invariant 1).
type RequestState int

const (
	StateInit RequestState = iota
	StateWaitBroker
	StateWaitController
	StateConstructRequest
	StateWaitResponse
)

func (s RequestState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateWaitBroker:
		return "WAIT_BROKER"
	case StateWaitController:
		return "WAIT_CONTROLLER"
	case StateConstructRequest:
		return "CONSTRUCT_REQUEST"
	case StateWaitResponse:
		return "WAIT_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// codec is the pair of functions bound to a RequestItem's kind (§3, §4.3).
// encode is invoked from CONSTRUCT_REQUEST; it must not block, and it must
// arrange for the broker I/O layer to eventually fire item.trigger with the
// reply attached. decode is invoked from WAIT_RESPONSE once reply_buf has
// been filled, and produces the typed Event delivered to the application.
type codec struct {
	encode func(d *Driver, item *RequestItem, broker Broker) error
	decode func(item *RequestItem) (Event, *AdminError)
}

// RequestItem is the typed request envelope driven by the Driver (§3).
// Every field except the trigger-guarded reply_buf/err pair is owned
// exclusively by the driver thread once submission completes.
type RequestItem struct {
	id   uuid.UUID
	kind RequestKind
	state RequestState

	args   any // concrete per-API slice, deep-copied at submission
	argLen int

	options AdminOptions

	brokerID int32 // -1 means "use controller"

	replyCh chan<- Event

	trigger *OneShotTrigger

	timer        *time.Timer
	timerStopped bool
	timerFired   bool

	deadline time.Time

	replyBuf any // filled by the I/O thread immediately before re-posting

	err        error
	fireReason string

	codec codec

	submittedAt time.Time
	apiName     string

	driver *Driver
}

func (r *RequestItem) stateName() string { return r.state.String() }
