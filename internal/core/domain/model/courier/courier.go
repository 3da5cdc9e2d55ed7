package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// RatingMin is the lowest possible aggregate rating value.
	RatingMin = 0
	// RatingMax is the highest possible aggregate rating value.
	RatingMax = 5
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New(
		"Courier must be created via NewCourier or RestoreCourier constructor")
	// ErrCourierNotVerified is returned when an unverified courier tries to
	// change its availability.
	ErrCourierNotVerified = errs.NewForbiddenError("courier",
		"only verified couriers can change availability")
)

// Reputation is the aggregated rating state maintained on the courier by the
// rating flow. Average is a mean rounded to one decimal; Count is the number
// of ratings that produced it.
type Reputation struct {
	Average float64
	Count   int
}

// DeliveryCounters are the lifetime delivery statistics of the courier,
// updated as one combined write when an order reaches delivered.
type DeliveryCounters struct {
	Total      int
	Successful int
	OnTime     int
}

// Courier is the aggregate root for a delivery courier.
//
// Eligibility to take orders is a single pure decision (IsEligibleAt)
// combining three flags with the weekly schedule:
//   - isActive: the account exists and is not suspended
//   - isAvailable: the courier has switched themselves on for work
//   - isVerified: an administrator confirmed the courier's documents
//
// An unverified courier can exist and be edited but can neither go available
// nor receive orders.
type Courier struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle VehicleType

	isActive    bool
	isAvailable bool
	isVerified  bool

	workingHours WeekSchedule

	location          *kernel.GeoPoint
	locationUpdatedAt *time.Time

	reputation Reputation
	counters   DeliveryCounters

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a new courier profile. New couriers start active but
// unavailable and unverified; they become eligible only after verification
// and an explicit availability switch.
func NewCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicle VehicleType,
	workingHours WeekSchedule,
	createdAt time.Time,
) (*Courier, error) {
	c := &Courier{
		isActive:     true,
		workingHours: workingHours,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Snapshot is the flattened persisted state of a courier, used by
// RestoreCourier to rebuild the aggregate from storage.
type Snapshot struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	Vehicle           VehicleType
	IsActive          bool
	IsAvailable       bool
	IsVerified        bool
	WorkingHours      WeekSchedule
	Location          *kernel.GeoPoint
	LocationUpdatedAt *time.Time
	Reputation        Reputation
	Counters          DeliveryCounters
	CreatedAt         time.Time
}

// RestoreCourier reconstructs a courier aggregate from persistence.
func RestoreCourier(s Snapshot) (*Courier, error) {
	c := &Courier{
		isActive:          s.IsActive,
		isAvailable:       s.IsAvailable,
		isVerified:        s.IsVerified,
		workingHours:      s.WorkingHours,
		locationUpdatedAt: s.LocationUpdatedAt,
		createdAt:         s.CreatedAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(s.ID),
		c.setName(s.Name),
		c.setPhone(s.Phone),
		c.setVehicle(s.Vehicle),
		c.setReputation(s.Reputation),
		c.setCounters(s.Counters),
	); err != nil {
		return nil, err
	}

	if s.Location != nil {
		if err := s.Location.Validate(); err != nil {
			return nil, err
		}
		c.location = s.Location
	}

	return c, nil
}

// Validate ensures the Courier was constructed via NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's contact phone.
func (c *Courier) Phone() string { return c.phone }

// Vehicle returns the courier's vehicle type.
func (c *Courier) Vehicle() VehicleType { return c.vehicle }

// IsActive reports whether the courier account is active.
func (c *Courier) IsActive() bool { return c.isActive }

// IsAvailable reports whether the courier has switched themselves on for work.
func (c *Courier) IsAvailable() bool { return c.isAvailable }

// IsVerified reports whether an administrator verified the courier.
func (c *Courier) IsVerified() bool { return c.isVerified }

// WorkingHours returns the courier's weekly schedule.
func (c *Courier) WorkingHours() WeekSchedule { return c.workingHours }

// Location returns the last reported position, or nil if never reported.
func (c *Courier) Location() *kernel.GeoPoint { return c.location }

// LocationUpdatedAt returns when the position was last reported, or nil.
func (c *Courier) LocationUpdatedAt() *time.Time { return c.locationUpdatedAt }

// Reputation returns the aggregated rating state.
func (c *Courier) Reputation() Reputation { return c.reputation }

// Counters returns the lifetime delivery counters.
func (c *Courier) Counters() DeliveryCounters { return c.counters }

// CreatedAt returns when the courier profile was created.
func (c *Courier) CreatedAt() time.Time { return c.createdAt }

// IsEligibleAt reports whether the courier may take orders at the given
// instant: active, available, verified, and inside the working window of
// now's weekday. The window is inclusive on both ends, so a courier working
// until 18:00 is still eligible at exactly 18:00.
func (c *Courier) IsEligibleAt(now time.Time) bool {
	if !c.isActive || !c.isAvailable || !c.isVerified {
		return false
	}
	return c.workingHours.Covers(now)
}

// SetAvailability switches the courier on or off for work. Only verified
// couriers may change availability.
func (c *Courier) SetAvailability(available bool) error {
	if !c.isVerified {
		return ErrCourierNotVerified
	}
	c.isAvailable = available
	return nil
}

// Verify marks the courier as verified by an administrator.
func (c *Courier) Verify() {
	c.isVerified = true
}

// Deactivate suspends the courier account and switches it off for work.
func (c *Courier) Deactivate() {
	c.isActive = false
	c.isAvailable = false
}

// UpdateLocation records a new reported position with its own timestamp.
func (c *Courier) UpdateLocation(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.location = &point
	c.locationUpdatedAt = &now
	return nil
}

// SetWorkingHours replaces the weekly schedule.
func (c *Courier) SetWorkingHours(schedule WeekSchedule) {
	c.workingHours = schedule
}

// RecordDelivery updates the lifetime counters for one completed order.
// The three values change together so readers never observe a partial update.
func (c *Courier) RecordDelivery(successful, onTime bool) {
	c.counters.Total++
	if successful {
		c.counters.Successful++
	}
	if onTime {
		c.counters.OnTime++
	}
}

// ApplyReputation overwrites the aggregated rating state. The rating flow
// recomputes the full aggregate on every submission and writes it here.
func (c *Courier) ApplyReputation(r Reputation) error {
	return c.setReputation(r)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setVehicle(vehicle VehicleType) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *Courier) setReputation(r Reputation) error {
	if r.Average < RatingMin || r.Average > RatingMax {
		return errs.NewValueIsOutOfRangeError("averageRating", r.Average, RatingMin, RatingMax)
	}
	if r.Count < 0 {
		return errs.NewValueIsOutOfRangeError("ratingCount", r.Count, 0, int(^uint(0)>>1))
	}
	c.reputation = r
	return nil
}

func (c *Courier) setCounters(counters DeliveryCounters) error {
	if counters.Total < 0 || counters.Successful < 0 || counters.OnTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCounters",
			errors.New("counters must be non-negative"))
	}
	if counters.Successful > counters.Total || counters.OnTime > counters.Total {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCounters",
			errors.New("successful and on-time counts cannot exceed the total"))
	}
	c.counters = counters
	return nil
}
