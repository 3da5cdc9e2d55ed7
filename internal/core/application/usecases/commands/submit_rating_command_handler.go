package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"
)

// ErrOrderAlreadyRated is returned when a side tries to rate the same order
// twice. Retrying an already-applied submission is rejected, not replayed.
var ErrOrderAlreadyRated = errs.NewValueIsInvalidErrorWithCause("rating",
	errors.New("this side has already rated the order"))

// SubmitRatingCommandHandler records one side's rating of a delivered order
// and refreshes the rated party's reputation.
//
// Everything happens in one transaction: the duplicate pre-check, the record
// insert (backed by a unique index on order and side), the order's rating
// slot, and the recomputed reputation on the rated aggregate. The recompute
// reads every rating the target has received; submissions are rare enough
// that the full scan stays the simplest correct approach.
type SubmitRatingCommandHandler struct {
	uowFactory RatingUoWFactory
	now        Clock
}

// NewSubmitRatingCommandHandler creates a handler for rating submission.
func NewSubmitRatingCommandHandler(uowFactory RatingUoWFactory, now Clock) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the rating submission command.
func (h *SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rated, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromID, toID, err := partyIDs(rated, cmd.FromType())
	if err != nil {
		return err
	}

	exists, err := uow.RatingRepository().ExistsForOrder(ctx, rated.ID(), cmd.FromType())
	if err != nil {
		return err
	}
	if exists {
		return ErrOrderAlreadyRated
	}

	now := h.now()
	record, err := rating.NewRating(
		kernel.NewUUID(), rated.ID(),
		cmd.FromType(), fromID,
		cmd.FromType().Opposite(), toID,
		cmd.Score(), cmd.Categories(), cmd.Comment(), now,
	)
	if err != nil {
		return err
	}

	if err = h.rateOrderSlot(rated, cmd); err != nil {
		return err
	}

	if err = uow.RatingRepository().Add(ctx, record); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, rated); err != nil {
		return err
	}

	if err = h.refreshReputation(ctx, uow, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// partyIDs resolves who is rating and who is being rated from the order
// itself. Ratings only exist on delivered orders, so the courier is always
// assigned by now; the status rule itself is enforced by the order's slot.
func partyIDs(rated *order.Order, fromType rating.PartyKind) (kernel.UUID, kernel.UUID, error) {
	if rated.CourierID() == nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order",
			errors.New("order has no courier to rate"))
	}
	if fromType == rating.PartyCompany {
		return rated.CompanyID(), *rated.CourierID(), nil
	}
	return *rated.CourierID(), rated.CompanyID(), nil
}

func (h *SubmitRatingCommandHandler) rateOrderSlot(rated *order.Order, cmd SubmitRatingCommand) error {
	if cmd.FromType() == rating.PartyCompany {
		return rated.RateByCompany(cmd.Score(), cmd.Comment())
	}
	return rated.RateByCourier(cmd.Score(), cmd.Comment())
}

// refreshReputation recomputes the rated party's aggregate from every rating
// it has received, including the one just inserted, and writes it back.
//
// The target row is locked before the ratings are read. A concurrent
// submission to the same target blocks on the lock and recounts after the
// winner commits, so its ratings are included and neither write is lost.
func (h *SubmitRatingCommandHandler) refreshReputation(
	ctx context.Context,
	uow RatingUoW,
	record *rating.Rating,
) error {
	if record.ToType() == rating.PartyCourier {
		target, err := uow.CourierRepository().GetForUpdate(ctx, record.ToID())
		if err != nil {
			return err
		}
		average, count, err := h.recount(ctx, uow, record)
		if err != nil {
			return err
		}
		if err = target.ApplyReputation(courier.Reputation{Average: average, Count: count}); err != nil {
			return err
		}
		return uow.CourierRepository().Update(ctx, target)
	}

	target, err := uow.CompanyRepository().GetForUpdate(ctx, record.ToID())
	if err != nil {
		return err
	}
	average, count, err := h.recount(ctx, uow, record)
	if err != nil {
		return err
	}
	if err = target.ApplyReputation(company.Reputation{Average: average, Count: count}); err != nil {
		return err
	}
	return uow.CompanyRepository().Update(ctx, target)
}

func (h *SubmitRatingCommandHandler) recount(
	ctx context.Context,
	uow RatingUoW,
	record *rating.Rating,
) (float64, int, error) {
	received, err := uow.RatingRepository().GetAllForTarget(ctx, record.ToType(), record.ToID())
	if err != nil {
		return 0, 0, err
	}
	return rating.Average(received), len(received), nil
}
