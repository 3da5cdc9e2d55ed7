package ratingrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRatingRepository implements RatingRepository using GORM. Ratings are
// insert-only, so there is no Update path here.
type GormRatingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRatingRepository creates a new GORM rating repository.
func NewGormRatingRepository(db *gorm.DB, tracker aggregateTracker) *GormRatingRepository {
	return &GormRatingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rating record to the database. A duplicate
// (orderID, fromType) pair hits the unique index and comes back as a
// ConflictError. Requires TranslateError enabled on the gorm connection.
func (r *GormRatingRepository) Add(ctx context.Context, record *rating.Rating) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("rating", record.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// ExistsForOrder reports whether the given side already rated the order.
func (r *GormRatingRepository) ExistsForOrder(
	ctx context.Context, orderID kernel.UUID, fromType rating.PartyKind,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	if err := fromType.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&RatingDTO{}).
		Where("order_id = ? AND from_type = ?", orderID.Bytes(), fromType.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllForTarget retrieves every rating received by one party, oldest first.
func (r *GormRatingRepository) GetAllForTarget(
	ctx context.Context, toType rating.PartyKind, toID kernel.UUID,
) ([]*rating.Rating, error) {
	if err := toType.Validate(); err != nil {
		return nil, err
	}
	if err := toID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RatingDTO
	err := r.db.WithContext(ctx).
		Where("to_type = ? AND to_id = ?", toType.String(), toID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*rating.Rating, 0, len(dtos))
	for _, dto := range dtos {
		record, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		records = append(records, record)
	}

	return records, nil
}
