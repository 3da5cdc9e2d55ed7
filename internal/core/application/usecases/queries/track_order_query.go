// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the public delivery status of an order by its
// tracking code. This is the unauthenticated customer-facing read: the
// response never carries company or courier identities.
type TrackOrderQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query to track an order by its public code.
func NewTrackOrderQuery(trackingCode kernel.TrackingCode) (TrackOrderQuery, error) {
	if err := trackingCode.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}
	return TrackOrderQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingCode returns the code being tracked.
func (q TrackOrderQuery) TrackingCode() kernel.TrackingCode { return q.trackingCode }

// TrackOrderQueryResponse is the public view of an order's progress.
type TrackOrderQueryResponse struct {
	TrackingCode             string
	Status                   string
	Priority                 string
	DeliveryAddress          string
	EstimatedDeliveryMinutes int
	CreatedAt                time.Time
	AcceptedAt               *time.Time
	PickedUpAt               *time.Time
	DeliveredAt              *time.Time
	CancelledAt              *time.Time
}
