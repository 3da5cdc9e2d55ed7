package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand represents one side of a delivered order rating the
// other. The rated party is derived from the order, never supplied by the
// caller.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	fromType rating.PartyKind

	score      int
	categories map[string]int
	comment    string

	guard guard.ConstructorGuard
}

// NewSubmitRatingCommand creates a command to rate the other side of a
// delivered order.
func NewSubmitRatingCommand(
	orderID kernel.UUID,
	fromType rating.PartyKind,
	score int,
	categories map[string]int,
	comment string,
) (SubmitRatingCommand, error) {
	cmd := SubmitRatingCommand{
		categories: categories,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFromType(fromType),
		cmd.setScore(score),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

// OrderID returns the delivered order being rated.
func (c SubmitRatingCommand) OrderID() kernel.UUID { return c.orderID }

// FromType returns which side of the order is rating.
func (c SubmitRatingCommand) FromType() rating.PartyKind { return c.fromType }

// Score returns the overall score.
func (c SubmitRatingCommand) Score() int { return c.score }

// Categories returns the optional per-category scores.
func (c SubmitRatingCommand) Categories() map[string]int { return c.categories }

// Comment returns the optional free-form comment.
func (c SubmitRatingCommand) Comment() string { return c.comment }

func (c *SubmitRatingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitRatingCommand) setFromType(fromType rating.PartyKind) error {
	if err := fromType.Validate(); err != nil {
		return err
	}
	c.fromType = fromType
	return nil
}

func (c *SubmitRatingCommand) setScore(score int) error {
	if score < rating.ScoreMin || score > rating.ScoreMax {
		return errs.NewValueIsOutOfRangeError("score", score, rating.ScoreMin, rating.ScoreMax)
	}
	c.score = score
	return nil
}
