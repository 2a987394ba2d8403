package models

import "time"

// RequestStatus tracks an UpdateRequest through reconciliation.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestReplayed RequestStatus = "replayed"
)

// UpdateRequest is the replayable record of one mutation issued while
// offline. Verb, Endpoint, ContentType and Body fully determine the request
// sent to the server on replay.
type UpdateRequest struct {
	ID string

	// Seq is assigned when the request is queued.
	Seq int64

	Verb        string
	Endpoint    string
	ContentType string
	Body        []byte

	// Ordering is strictly increasing in issue order.
	Ordering  int64
	CreatedAt time.Time

	Status RequestStatus
}
