package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackOrderQueryHandler serves the public tracking read model straight from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern; only publicly visible columns are selected.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking query. Returns ObjectNotFoundError when no
// order carries the code.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var resp TrackOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_code,
			status,
			priority,
			delivery_address,
			estimated_delivery_minutes,
			created_at,
			accepted_at,
			picked_up_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE tracking_code = ?
	`, query.TrackingCode().String()).Row()

	err := row.Scan(
		&resp.TrackingCode,
		&resp.Status,
		&resp.Priority,
		&resp.DeliveryAddress,
		&resp.EstimatedDeliveryMinutes,
		&resp.CreatedAt,
		&resp.AcceptedAt,
		&resp.PickedUpAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"trackingCode", query.TrackingCode().String())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return resp, nil
}
