package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/guard"
)

var ErrRatingStatsQueryIsNotConstructed = errors.New(
	"RatingStatsQuery must be created via NewRatingStatsQuery constructor",
)

// RatingStatsQuery retrieves the aggregated rating profile of a company or a
// courier: overall average, score histogram, per-category averages, and the
// trailing 30-day window.
type RatingStatsQuery struct {
	targetType rating.PartyKind
	targetID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRatingStatsQuery creates a query for a party's rating profile.
func NewRatingStatsQuery(targetType rating.PartyKind, targetID kernel.UUID) (RatingStatsQuery, error) {
	if err := errors.Join(targetType.Validate(), targetID.Validate()); err != nil {
		return RatingStatsQuery{}, err
	}
	return RatingStatsQuery{
		targetType: targetType,
		targetID:   targetID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RatingStatsQuery) Validate() error {
	return q.guard.Validate(ErrRatingStatsQueryIsNotConstructed)
}

// TargetType returns the kind of party whose stats are requested.
func (q RatingStatsQuery) TargetType() rating.PartyKind { return q.targetType }

// TargetID returns the party whose stats are requested.
func (q RatingStatsQuery) TargetID() kernel.UUID { return q.targetID }

// RatingStatsQueryResponse is the aggregated rating profile of one party.
type RatingStatsQueryResponse struct {
	TargetType       string
	TargetID         kernel.UUID
	Total            int
	Average          float64
	Histogram        [5]int
	CategoryAverages map[string]float64
	Last30DaysCount  int
	Last30DaysAvg    float64
}
