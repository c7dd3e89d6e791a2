package models

import "time"

// RequestState tracks one long-running network operation of a report session.
type RequestState string

const (
	RequestIdle      RequestState = "idle"
	RequestInFlight  RequestState = "in_flight"
	RequestSucceeded RequestState = "succeeded"
	RequestFailed    RequestState = "failed"
)

// RequestStatus is the state plus the last failure, if any.
type RequestStatus struct {
	State        RequestState `json:"state"`
	ErrorCode    string       `json:"error_code,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
}

// IdleStatus is the status of an operation that has never run.
func IdleStatus() RequestStatus {
	return RequestStatus{State: RequestIdle}
}
