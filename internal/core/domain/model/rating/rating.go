package rating

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// ScoreMin is the lowest allowed score, for the overall score and for
	// every per-category score.
	ScoreMin = 1
	// ScoreMax is the highest allowed score.
	ScoreMax = 5
)

// Domain errors for rating operations.
var (
	// ErrRatingIsNotConstructed is returned when using an improperly initialized Rating.
	ErrRatingIsNotConstructed = errors.New(
		"Rating must be created via NewRating or RestoreRating constructor")
	// ErrSamePartyKind is returned when a rating's source and target are the
	// same kind of party.
	ErrSamePartyKind = errs.NewValueIsInvalidErrorWithCause("toType",
		errors.New("a party cannot rate its own kind"))
)

// PartyKind identifies which side of a delivery a rating party is on.
type PartyKind int

const (
	// PartyUnknown represents an invalid or undefined party kind.
	PartyUnknown PartyKind = iota

	// PartyCompany is the business that created the order.
	PartyCompany

	// PartyCourier is the courier that delivered the order.
	PartyCourier
)

func getPartyKindStrings() map[PartyKind]string {
	return map[PartyKind]string{
		PartyUnknown: "unknown",
		PartyCompany: "company",
		PartyCourier: "courier",
	}
}

// PartyKindFromString parses the wire form of a party kind.
func PartyKindFromString(s string) (PartyKind, error) {
	for k, str := range getPartyKindStrings() {
		if str == s && k != PartyUnknown {
			return k, nil
		}
	}
	return PartyUnknown, errs.NewValueIsInvalidErrorWithCause("partyKind",
		fmt.Errorf("%q is not a valid party kind", s))
}

// Validate checks the PartyKind is one of the defined kinds.
func (k PartyKind) Validate() error {
	if k != PartyCompany && k != PartyCourier {
		return errs.NewValueIsInvalidErrorWithCause("partyKind",
			fmt.Errorf("%d is not a valid party kind", k))
	}
	return nil
}

// String returns the wire form of the party kind.
func (k PartyKind) String() string {
	if str, ok := getPartyKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Opposite returns the other party kind.
func (k PartyKind) Opposite() PartyKind {
	switch k {
	case PartyCompany:
		return PartyCourier
	case PartyCourier:
		return PartyCompany
	default:
		return PartyUnknown
	}
}

// Rating is one immutable rating record tied to a delivered order.
// The pair (orderID, fromType) is unique: each side of a delivery rates it
// at most once.
type Rating struct {
	id      kernel.UUID
	orderID kernel.UUID

	fromType PartyKind
	fromID   kernel.UUID
	toType   PartyKind
	toID     kernel.UUID

	score      int
	categories map[string]int
	comment    string

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewRating creates a validated rating record. The source and target must be
// different party kinds, the score and every category score must be within
// 1..5, and categories may be nil.
func NewRating(
	id kernel.UUID,
	orderID kernel.UUID,
	fromType PartyKind,
	fromID kernel.UUID,
	toType PartyKind,
	toID kernel.UUID,
	score int,
	categories map[string]int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		comment:   comment,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setIDs(id, orderID, fromID, toID),
		r.setParties(fromType, toType),
		r.setScore(score),
		r.setCategories(categories),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRating reconstructs a rating record from persistence. Validation is
// identical to NewRating; a record that fails it could never have been
// stored by this code.
func RestoreRating(
	id kernel.UUID,
	orderID kernel.UUID,
	fromType PartyKind,
	fromID kernel.UUID,
	toType PartyKind,
	toID kernel.UUID,
	score int,
	categories map[string]int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	return NewRating(id, orderID, fromType, fromID, toType, toID, score, categories, comment, createdAt)
}

// Validate ensures the Rating was constructed via NewRating or RestoreRating.
func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// IsEqual compares two ratings by identity.
func (r *Rating) IsEqual(other *Rating) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID { return r.id }

// OrderID returns the delivered order this rating refers to.
func (r *Rating) OrderID() kernel.UUID { return r.orderID }

// FromType returns the kind of the rating party.
func (r *Rating) FromType() PartyKind { return r.fromType }

// FromID returns the identity of the rating party.
func (r *Rating) FromID() kernel.UUID { return r.fromID }

// ToType returns the kind of the rated party.
func (r *Rating) ToType() PartyKind { return r.toType }

// ToID returns the identity of the rated party.
func (r *Rating) ToID() kernel.UUID { return r.toID }

// Score returns the overall score, 1..5.
func (r *Rating) Score() int { return r.score }

// Categories returns a copy of the per-category scores, or nil if none were given.
func (r *Rating) Categories() map[string]int {
	if r.categories == nil {
		return nil
	}
	copied := make(map[string]int, len(r.categories))
	for name, score := range r.categories {
		copied[name] = score
	}
	return copied
}

// Comment returns the free-form comment, if any.
func (r *Rating) Comment() string { return r.comment }

// CreatedAt returns when the rating was submitted.
func (r *Rating) CreatedAt() time.Time { return r.createdAt }

func (r *Rating) setIDs(id, orderID, fromID, toID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fromID.Validate(),
		toID.Validate(),
	); err != nil {
		return err
	}
	r.id = id
	r.orderID = orderID
	r.fromID = fromID
	r.toID = toID
	return nil
}

func (r *Rating) setParties(fromType, toType PartyKind) error {
	if err := fromType.Validate(); err != nil {
		return err
	}
	if err := toType.Validate(); err != nil {
		return err
	}
	if fromType == toType {
		return ErrSamePartyKind
	}
	r.fromType = fromType
	r.toType = toType
	return nil
}

func (r *Rating) setScore(score int) error {
	if score < ScoreMin || score > ScoreMax {
		return errs.NewValueIsOutOfRangeError("score", score, ScoreMin, ScoreMax)
	}
	r.score = score
	return nil
}

func (r *Rating) setCategories(categories map[string]int) error {
	if categories == nil {
		return nil
	}
	copied := make(map[string]int, len(categories))
	for name, score := range categories {
		if name == "" {
			return errs.NewValueIsRequiredError("category name")
		}
		if score < ScoreMin || score > ScoreMax {
			return errs.NewValueIsOutOfRangeError("category "+name, score, ScoreMin, ScoreMax)
		}
		copied[name] = score
	}
	r.categories = copied
	return nil
}
