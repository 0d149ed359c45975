package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest         Code = 100001
	NotFound           Code = 100004
	AlreadyExists      Code = 100006
	Internal           Code = 100007
	Unavailable        Code = 100008
	NotImplemented     Code = 100009
	FailedPrecondition Code = 100012

	// Streak codes
	ClockAnomaly Code = 500001
)

func (c Code) String() string {
	switch c {
	case BadRequest:
		return "bad_request"
	case NotFound:
		return "not_found"
	case AlreadyExists:
		return "already_exists"
	case Internal:
		return "internal"
	case Unavailable:
		return "unavailable"
	case NotImplemented:
		return "not_implemented"
	case FailedPrecondition:
		return "failed_precondition"
	case ClockAnomaly:
		return "clock_anomaly"
	case Unknown.Code:
		return "unknown"
	}

	return "undefined"
}
