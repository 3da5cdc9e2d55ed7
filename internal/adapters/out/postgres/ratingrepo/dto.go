// Package ratingrepo provides data transfer objects and mapping functions
// for rating persistence.
package ratingrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// RatingDTO represents the database structure for persisting rating records.
// The unique index on (order_id, from_type) is the hard backstop of the
// rate-once rule; the application-level pre-check only gives a friendlier
// error on the common path.
type RatingDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_order_side"`

	FromType string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_ratings_order_side"`
	FromID   uuid.UUID `gorm:"type:uuid;not null"`
	ToType   string    `gorm:"type:varchar(16);not null;index:idx_ratings_target"`
	ToID     uuid.UUID `gorm:"type:uuid;not null;index:idx_ratings_target"`

	Score      int            `gorm:"not null"`
	Categories map[string]int `gorm:"serializer:json;type:jsonb"`
	Comment    string

	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for rating entities.
func (RatingDTO) TableName() string {
	return "ratings"
}

// fromDomain converts a rating record to its database representation.
func fromDomain(record *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:      record.ID().Bytes(),
		OrderID: record.OrderID().Bytes(),

		FromType: record.FromType().String(),
		FromID:   record.FromID().Bytes(),
		ToType:   record.ToType().String(),
		ToID:     record.ToID().Bytes(),

		Score:      record.Score(),
		Categories: record.Categories(),
		Comment:    record.Comment(),

		CreatedAt: record.CreatedAt(),
	}
}

// toDomain converts a database DTO to a rating record using RestoreRating.
func toDomain(dto RatingDTO) (*rating.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	fromID, err := kernel.UUIDFromBytes(dto.FromID[:])
	if err != nil {
		return nil, err
	}
	toID, err := kernel.UUIDFromBytes(dto.ToID[:])
	if err != nil {
		return nil, err
	}

	fromType, err := rating.PartyKindFromString(dto.FromType)
	if err != nil {
		return nil, err
	}
	toType, err := rating.PartyKindFromString(dto.ToType)
	if err != nil {
		return nil, err
	}

	return rating.RestoreRating(id, orderID, fromType, fromID, toType, toID,
		dto.Score, dto.Categories, dto.Comment, dto.CreatedAt)
}
