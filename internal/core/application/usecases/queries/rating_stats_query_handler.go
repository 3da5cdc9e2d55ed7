package queries

import (
	"context"

	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/ports"
)

// RatingStatsQueryHandler computes a party's rating profile from the full set
// of ratings it has received. Aggregation lives in the rating package; the
// handler only loads and reshapes.
type RatingStatsQueryHandler struct {
	ratings ports.RatingRepository
	now     Clock
}

// NewRatingStatsQueryHandler creates a handler for rating profile queries.
func NewRatingStatsQueryHandler(ratings ports.RatingRepository, now Clock) RatingStatsQueryHandler {
	return RatingStatsQueryHandler{ratings: ratings, now: now}
}

// Handle executes the profile query. A party with no ratings gets a zeroed
// profile, not an error.
func (h RatingStatsQueryHandler) Handle(
	ctx context.Context,
	query RatingStatsQuery,
) (RatingStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RatingStatsQueryResponse{}, err
	}

	received, err := h.ratings.GetAllForTarget(ctx, query.TargetType(), query.TargetID())
	if err != nil {
		return RatingStatsQueryResponse{}, err
	}

	stats := rating.StatsFor(received, h.now())

	return RatingStatsQueryResponse{
		TargetType:       query.TargetType().String(),
		TargetID:         query.TargetID(),
		Total:            stats.Total,
		Average:          stats.Average,
		Histogram:        stats.Histogram,
		CategoryAverages: stats.CategoryAverages,
		Last30DaysCount:  stats.Last30Days.Count,
		Last30DaysAvg:    stats.Last30Days.Average,
	}, nil
}
