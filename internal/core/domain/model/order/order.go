package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// RatingScoreMin is the lowest allowed rating score.
	RatingScoreMin = 1
	// RatingScoreMax is the highest allowed rating score.
	RatingScoreMax = 5
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrOrderNotDelivered is returned when rating an order that has not
	// reached the delivered state.
	ErrOrderNotDelivered = errs.NewValueIsInvalidErrorWithCause("order",
		errors.New("only delivered orders can be rated"))
	// ErrOrderAlreadyRated is returned when a party tries to rate the same
	// order twice. The first rating stands; the second is rejected.
	ErrOrderAlreadyRated = errs.NewValueIsInvalidErrorWithCause("rating",
		errors.New("order has already been rated by this party"))
)

// Waypoint is an immutable address plus coordinates pair used for the pickup
// and delivery ends of an order.
type Waypoint struct {
	address      string
	point        kernel.GeoPoint
	instructions string
}

// NewWaypoint creates a Waypoint with a required address and validated
// coordinates. Instructions are optional.
func NewWaypoint(address string, point kernel.GeoPoint, instructions string) (Waypoint, error) {
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}
	if err := point.Validate(); err != nil {
		return Waypoint{}, err
	}
	return Waypoint{address: address, point: point, instructions: instructions}, nil
}

// Address returns the street address of the waypoint.
func (w Waypoint) Address() string { return w.address }

// Point returns the coordinates of the waypoint.
func (w Waypoint) Point() kernel.GeoPoint { return w.point }

// Instructions returns the free-form handling instructions, if any.
func (w Waypoint) Instructions() string { return w.instructions }

// Validate checks the waypoint carries an address and constructed coordinates.
func (w Waypoint) Validate() error {
	if w.address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return w.point.Validate()
}

// StatusUpdate is one immutable entry of the order's audit trail. Entries are
// appended in commit order and never mutated or removed.
type StatusUpdate struct {
	At      time.Time
	From    Status
	To      Status
	ActorID kernel.UUID
	Notes   string
}

// Details carries the caller-supplied attributes of a new order. Everything
// here is immutable after creation; the lifecycle fields (status, courier,
// timestamps, ratings) live on the aggregate and change only through its
// methods.
type Details struct {
	CustomerName             string
	CustomerPhone            string
	Pickup                   Waypoint
	Delivery                 Waypoint
	TotalValue               float64
	DeliveryFee              float64
	Priority                 Priority
	EstimatedDeliveryMinutes int
	Notes                    string
}

// Order is the aggregate root owning the delivery job lifecycle. It is the
// only component permitted to mutate order status; all transitions go through
// the table in status.go and are recorded in the audit trail.
//
// Invariants:
//   - status only ever follows the allowed-transition table
//   - courierID is set exactly once, at acceptance, and never cleared
//   - each per-transition timestamp is set at most once
//   - the updates trail is append-only
//   - each rating slot is settable once, independently, and only when delivered
type Order struct {
	id           kernel.UUID
	companyID    kernel.UUID
	courierID    *kernel.UUID
	trackingCode kernel.TrackingCode

	details Details
	status  Status

	createdAt   time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	updates []StatusUpdate

	cancellationReason string

	companyScore   *int
	companyComment string
	courierScore   *int
	courierComment string

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order for a company. A fresh tracking code is
// generated and the order starts with an empty audit trail.
//
// Validation mirrors the inbound contract: customer name of at least two
// characters, a phone number, both waypoints constructed, a positive total
// value, a non-negative fee and delivery estimate, and a known priority.
func NewOrder(id kernel.UUID, companyID kernel.UUID, details Details, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:       Pending,
		trackingCode: kernel.NewTrackingCode(),
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCompanyID(companyID),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flattened persisted state of an order, used by
// RestoreOrder to rebuild the aggregate from storage.
type Snapshot struct {
	ID                 kernel.UUID
	CompanyID          kernel.UUID
	CourierID          *kernel.UUID
	TrackingCode       kernel.TrackingCode
	Details            Details
	Status             Status
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	Updates            []StatusUpdate
	CancellationReason string
	CompanyScore       *int
	CompanyComment     string
	CourierScore       *int
	CourierComment     string
}

// RestoreOrder reconstructs an order aggregate from persistence. Unlike
// NewOrder it accepts any lifecycle state, but still validates identity,
// details, status, and the status/courier consistency rule: an order at or
// past acceptance must carry a courier, a pending one must not.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:             s.Status,
		trackingCode:       s.TrackingCode,
		createdAt:          s.CreatedAt,
		acceptedAt:         s.AcceptedAt,
		pickedUpAt:         s.PickedUpAt,
		deliveredAt:        s.DeliveredAt,
		cancelledAt:        s.CancelledAt,
		updates:            s.Updates,
		cancellationReason: s.CancellationReason,
		companyScore:       s.CompanyScore,
		companyComment:     s.CompanyComment,
		courierScore:       s.CourierScore,
		courierComment:     s.CourierComment,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCompanyID(s.CompanyID),
		o.setDetails(s.Details),
		s.Status.Validate(),
		s.TrackingCode.Validate(),
	); err != nil {
		return nil, err
	}

	if s.CourierID != nil {
		if err := s.CourierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = s.CourierID
	}

	if err := o.validateCourierConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CompanyID returns the identity of the company that created the order.
func (o *Order) CompanyID() kernel.UUID { return o.companyID }

// CourierID returns the assigned courier's identity, or nil before acceptance.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// TrackingCode returns the public tracking code.
func (o *Order) TrackingCode() kernel.TrackingCode { return o.trackingCode }

// Details returns the immutable creation attributes of the order.
func (o *Order) Details() Details { return o.details }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Priority returns the ranking priority set at creation.
func (o *Order) Priority() Priority { return o.details.Priority }

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AcceptedAt returns when the order was accepted, or nil.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// PickedUpAt returns when the order was collected, or nil.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CancellationReason returns the caller-supplied reason, if cancelled.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// Updates returns a copy of the append-only audit trail in commit order.
func (o *Order) Updates() []StatusUpdate {
	updates := make([]StatusUpdate, len(o.updates))
	copy(updates, o.updates)
	return updates
}

// CompanyScore returns the company's rating of the courier for this order, or nil.
func (o *Order) CompanyScore() *int { return o.companyScore }

// CompanyComment returns the comment attached to the company's rating.
func (o *Order) CompanyComment() string { return o.companyComment }

// CourierScore returns the courier's rating of the company for this order, or nil.
func (o *Order) CourierScore() *int { return o.courierScore }

// CourierComment returns the comment attached to the courier's rating.
func (o *Order) CourierComment() string { return o.courierComment }

// CanBeAccepted reports whether the order is still open for acceptance.
func (o *Order) CanBeAccepted() bool {
	return o.status == Pending
}

// CanBeCancelled reports whether the order may still be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.status == Pending || o.status == Accepted
}

// Accept moves the order from pending to accepted and records the courier.
// The courier identity is set here exactly once; the transition table makes
// a second acceptance unreachable.
func (o *Order) Accept(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return errs.NewConflictError("order", o.id.String())
	}

	if err := o.transitionTo(Accepted, courierID, now, ""); err != nil {
		return err
	}

	o.courierID = &courierID
	return nil
}

// TransitionTo advances the order to target on behalf of actorID, appending
// an audit entry and stamping the matching timestamp on first entry into the
// target state. Transitions not in the table fail with InvalidTransitionError
// and leave the order untouched. Acceptance and cancellation have dedicated
// methods because they carry extra state.
func (o *Order) TransitionTo(target Status, actorID kernel.UUID, now time.Time, notes string) error {
	if target == Accepted || target == Cancelled {
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}
	return o.transitionTo(target, actorID, now, notes)
}

// Cancel moves the order to cancelled and records the reason. Only pending
// and accepted orders can be cancelled.
func (o *Order) Cancel(actorID kernel.UUID, reason string, now time.Time) error {
	if err := o.transitionTo(Cancelled, actorID, now, reason); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// ActualDeliveryTime returns the whole minutes between acceptance and
// delivery, or nil if either instant is unset.
func (o *Order) ActualDeliveryTime() *int {
	if o.acceptedAt == nil || o.deliveredAt == nil {
		return nil
	}
	minutes := int(o.deliveredAt.Sub(*o.acceptedAt).Round(time.Minute) / time.Minute)
	return &minutes
}

// IsOnTime reports whether the actual delivery time met the estimate, or nil
// when the actual delivery time is undefined.
func (o *Order) IsOnTime() *bool {
	actual := o.ActualDeliveryTime()
	if actual == nil {
		return nil
	}
	onTime := *actual <= o.details.EstimatedDeliveryMinutes
	return &onTime
}

// RateByCompany attaches the company's one-time rating of the courier.
// Only delivered orders can be rated, and the slot is independent of the
// courier's own rating slot.
func (o *Order) RateByCompany(score int, comment string) error {
	if err := o.validateRating(score, o.companyScore); err != nil {
		return err
	}
	o.companyScore = &score
	o.companyComment = comment
	return nil
}

// RateByCourier attaches the courier's one-time rating of the company.
func (o *Order) RateByCourier(score int, comment string) error {
	if err := o.validateRating(score, o.courierScore); err != nil {
		return err
	}
	o.courierScore = &score
	o.courierComment = comment
	return nil
}

func (o *Order) validateRating(score int, slot *int) error {
	if o.status != Delivered {
		return ErrOrderNotDelivered
	}
	if slot != nil {
		return ErrOrderAlreadyRated
	}
	if score < RatingScoreMin || score > RatingScoreMax {
		return errs.NewValueIsOutOfRangeError("score", score, RatingScoreMin, RatingScoreMax)
	}
	return nil
}

func (o *Order) transitionTo(target Status, actorID kernel.UUID, now time.Time, notes string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.updates = append(o.updates, StatusUpdate{
		At:      now,
		From:    o.status,
		To:      newStatus,
		ActorID: actorID,
		Notes:   notes,
	})
	o.status = newStatus
	o.stampTimestamp(newStatus, now)
	return nil
}

// stampTimestamp sets the per-transition timestamp the first time its state
// is entered. The transition table makes re-entry unreachable; the nil check
// keeps the set-at-most-once invariant explicit.
func (o *Order) stampTimestamp(target Status, now time.Time) {
	switch target {
	case Accepted:
		if o.acceptedAt == nil {
			o.acceptedAt = &now
		}
	case PickedUp:
		if o.pickedUpAt == nil {
			o.pickedUpAt = &now
		}
	case Delivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	case Cancelled:
		if o.cancelledAt == nil {
			o.cancelledAt = &now
		}
	default:
	}
}

func (o *Order) validateCourierConsistency() error {
	hasCourier := o.courierID != nil
	cancelledBeforeAccept := o.status == Cancelled && o.acceptedAt == nil
	if !hasCourier && o.status != Pending && !cancelledBeforeAccept {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("%s order must have a courier", o.status))
	}
	if hasCourier && o.status == Pending {
		return errs.NewValueIsInvalidErrorWithCause("order",
			errors.New("pending order must not have a courier"))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	o.companyID = id
	return nil
}

func (o *Order) setDetails(d Details) error {
	if len(d.CustomerName) < 2 {
		return errs.NewValueIsRequiredError("customerName")
	}
	if d.CustomerPhone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}
	if err := d.Pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	if err := d.Delivery.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery", err)
	}
	if d.TotalValue <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalValue",
			fmt.Errorf("%g is not greater than 0", d.TotalValue))
	}
	if d.DeliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%g is negative", d.DeliveryFee))
	}
	if d.EstimatedDeliveryMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryTime",
			fmt.Errorf("%d is negative", d.EstimatedDeliveryMinutes))
	}
	if err := d.Priority.Validate(); err != nil {
		return err
	}
	o.details = d
	return nil
}
