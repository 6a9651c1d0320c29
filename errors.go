package kadmin

import "fmt"

// KError is a broker-reported element-level error code, forwarded verbatim
// from the wire response. The zero value means no error, mirroring
// sarama's ErrNoError convention.
type KError int16

const (
	ErrNoError          KError = 0
	ErrUnknownTopic     KError = 3
	ErrRequestTimedOut  KError = 7
	ErrNotController    KError = 41
	ErrInvalidTopic     KError = 17
	ErrTopicAlreadyExists KError = 36
	ErrInvalidPartitions KError = 37
	ErrInvalidConfig    KError = 32
	ErrClusterAuthFailed KError = 31
)

var kerrorStrings = map[KError]string{
	ErrNoError:            "no error",
	ErrUnknownTopic:       "unknown topic or partition",
	ErrRequestTimedOut:    "request timed out",
	ErrNotController:      "not controller",
	ErrInvalidTopic:       "invalid topic",
	ErrTopicAlreadyExists: "topic already exists",
	ErrInvalidPartitions:  "invalid partitions",
	ErrInvalidConfig:      "invalid configuration",
	ErrClusterAuthFailed:  "cluster authorization failed",
}

// Error implements the error interface so a KError can be carried directly
// as an element result's Err field, same convention as sarama's KError.
func (e KError) Error() string {
	if s, ok := kerrorStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("kafka server error %d", int16(e))
}

// canonicalMessage substitutes a string for an element error when the
// broker's response omitted or emptied the per-element message (§4.4 rule 5).
func canonicalMessage(code KError) string {
	return code.Error()
}

// ErrorClass distinguishes request-level error kinds for callers that want
// to branch on taxonomy rather than string-match errStr (§7).
type ErrorClass int

const (
	ClassNone ErrorClass = iota
	ClassInvalidArg
	ClassTimedOut
	ClassConflict
	ClassProtocolParseFailure
	ClassDestroy
	ClassBrokerUnavailable
	ClassEncodeFailure
)

// AdminError is the request-level error delivered on an Event when the
// whole request fails (as opposed to an element-level error, which never
// fails the request). errors.Is/As-compatible.
type AdminError struct {
	Class ErrorClass
	Msg   string
	cause error
}

func (e *AdminError) Error() string {
	if e.Msg == "" {
		return e.Class.String()
	}
	return e.Msg
}

func (e *AdminError) Unwrap() error { return e.cause }

func (c ErrorClass) String() string {
	switch c {
	case ClassInvalidArg:
		return "invalid argument"
	case ClassTimedOut:
		return "timed out"
	case ClassConflict:
		return "conflict"
	case ClassProtocolParseFailure:
		return "protocol parse failure"
	case ClassDestroy:
		return "destroyed"
	case ClassBrokerUnavailable:
		return "broker unavailable"
	case ClassEncodeFailure:
		return "encode failure"
	default:
		return "no error"
	}
}

func newAdminError(class ErrorClass, format string, args ...any) *AdminError {
	return &AdminError{Class: class, Msg: fmt.Sprintf(format, args...)}
}

func wrapAdminError(class ErrorClass, cause error, format string, args ...any) *AdminError {
	return &AdminError{Class: class, Msg: fmt.Sprintf(format, args...), cause: cause}
}

// errDestroy is the sentinel that marks an item for silent destruction
// (§7 DESTROY): it must never be surfaced to the application.
var errDestroy = &AdminError{Class: ClassDestroy, Msg: "destroyed"}

// ErrOptionUnsupported is returned by AdminOptions setters when the option
// does not apply to the API the options bag was created for (§4.2).
var ErrOptionUnsupported = fmt.Errorf("option is not supported for this API")
