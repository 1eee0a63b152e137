package common

// RequestIDHeaderName carries the request id on outbound and inbound HTTP requests.
const RequestIDHeaderName = "X-Request-Id"

const (
	// StatusSuccess is the keyval status for a completed operation.
	StatusSuccess = "SUCCESS"

	// StatusTooLong is the keyval sentinel returned when a key or value exceeds
	// the remote length limit.
	StatusTooLong = "-KEY-OR-VALUE-TOO-LONG-"
)
