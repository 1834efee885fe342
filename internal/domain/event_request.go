package domain

import (
	"context"
	"time"
)

// RequestStatus is the lifecycle state of an EventRequest.
type RequestStatus string

const (
	RequestPending    RequestStatus = "PENDING"
	RequestApproved   RequestStatus = "APPROVED"
	RequestInProgress RequestStatus = "IN_PROGRESS"
	RequestCompleted  RequestStatus = "COMPLETED"
	RequestRejected   RequestStatus = "REJECTED"
	RequestCancelled  RequestStatus = "CANCELLED"
	RequestOnHold     RequestStatus = "ON_HOLD"
)

// AllRequestStatuses lists every valid RequestStatus.
var AllRequestStatuses = []RequestStatus{
	RequestPending,
	RequestApproved,
	RequestInProgress,
	RequestCompleted,
	RequestRejected,
	RequestCancelled,
	RequestOnHold,
}

// ParseRequestStatus reports whether s is exactly one of the RequestStatus values.
// Matching is case-sensitive; "completed" is not COMPLETED.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	if !KindEventRequest.ValidStatus(s) {
		return "", false
	}
	return RequestStatus(s), true
}

// EventRequest is a booking enquiry submitted from the public site.
// swagger:model EventRequest
type EventRequest struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	EventType string        `json:"event_type"`
	Details   *string       `json:"details"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
}

// NewEventRequest returns a PENDING EventRequest. ID is set by the repository on create.
func NewEventRequest(firstName, lastName, email, eventType string, details *string, createdAt time.Time) *EventRequest {
	return &EventRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		EventType: eventType,
		Details:   details,
		Status:    RequestPending,
		CreatedAt: createdAt,
	}
}

// EventRequestInput is the raw public submission, before sanitizing.
type EventRequestInput struct {
	FirstName string `json:"firstName" validate:"notblank,max=50"`
	LastName  string `json:"lastName" validate:"notblank,max=50"`
	Email     string `json:"email" validate:"notblank,simple_email,max=320"`
	EventType string `json:"eventType" validate:"notblank,max=100"`
	Details   string `json:"details" validate:"max=1000"`
}

// EventRequestReceipt is the public-safe view returned after a submission.
// swagger:model EventRequestReceipt
type EventRequestReceipt struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	EventType string        `json:"event_type"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Receipt returns the public-safe projection of the request.
func (e *EventRequest) Receipt() EventRequestReceipt {
	return EventRequestReceipt{
		ID:        e.ID,
		FirstName: e.FirstName,
		EventType: e.EventType,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}

// EventRequestFilter narrows event request reads. Soft-deleted rows are always excluded.
type EventRequestFilter struct {
	Status RequestStatus
	Email  string
	Search string
}

// EventRequestRepository defines the storage operations for event requests.
// Every read excludes soft-deleted rows.
type EventRequestRepository interface {
	Create(ctx context.Context, req *EventRequest) error
	GetByID(ctx context.Context, id int64) (*EventRequest, error)
	FindFirst(ctx context.Context, filter EventRequestFilter) (*EventRequest, error)
	Count(ctx context.Context, filter EventRequestFilter) (int, error)
	List(ctx context.Context, filter EventRequestFilter, params PaginationParams) ([]*EventRequest, error)
	UpdateStatus(ctx context.Context, id int64, status RequestStatus) (*EventRequest, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}
