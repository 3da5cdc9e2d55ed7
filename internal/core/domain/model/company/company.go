package company

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for company operations.
var (
	// ErrNameIsRequired is returned when attempting to create a company without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAddressIsRequired is returned when attempting to create a company without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrCompanyIsNotConstructed is returned when using an improperly initialized Company.
	ErrCompanyIsNotConstructed = errors.New(
		"Company must be created via NewCompany or RestoreCompany constructor")
)

// Reputation is the aggregated rating state maintained on the company by the
// rating flow. Couriers rate companies the same way companies rate couriers.
type Reputation struct {
	Average float64
	Count   int
}

// DeliveryConfig holds the company's delivery defaults. CreateOrder falls
// back to DeliveryFee and AverageDeliveryMinutes when the request leaves
// them unset.
type DeliveryConfig struct {
	MaxDeliveryRadiusKm      float64
	DeliveryFee              float64
	AverageDeliveryMinutes   int
	AcceptsScheduledDelivery bool
}

// ConfigPatch is a partial update of DeliveryConfig. Nil fields are left
// unchanged. There is deliberately no way to express any other company
// attribute through a patch.
type ConfigPatch struct {
	MaxDeliveryRadiusKm      *float64
	DeliveryFee              *float64
	AverageDeliveryMinutes   *int
	AcceptsScheduledDelivery *bool
}

// Company is the aggregate root for a business that creates orders.
type Company struct {
	id      kernel.UUID
	name    string
	phone   string
	address string

	location kernel.GeoPoint

	isActive bool
	config   DeliveryConfig

	reputation Reputation

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCompany creates a new active company with the given delivery defaults.
func NewCompany(
	id kernel.UUID,
	name string,
	phone string,
	address string,
	location kernel.GeoPoint,
	config DeliveryConfig,
	createdAt time.Time,
) (*Company, error) {
	c := &Company{
		isActive:  true,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setAddress(address, location),
		c.setConfig(config),
	); err != nil {
		return nil, err
	}

	c.phone = phone
	return c, nil
}

// Snapshot is the flattened persisted state of a company, used by
// RestoreCompany to rebuild the aggregate from storage.
type Snapshot struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	Address    string
	Location   kernel.GeoPoint
	IsActive   bool
	Config     DeliveryConfig
	Reputation Reputation
	CreatedAt  time.Time
}

// RestoreCompany reconstructs a company aggregate from persistence.
func RestoreCompany(s Snapshot) (*Company, error) {
	c := &Company{
		isActive:  s.IsActive,
		createdAt: s.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(s.ID),
		c.setName(s.Name),
		c.setAddress(s.Address, s.Location),
		c.setConfig(s.Config),
		c.setReputation(s.Reputation),
	); err != nil {
		return nil, err
	}

	c.phone = s.Phone
	return c, nil
}

// Validate ensures the Company was constructed via NewCompany or RestoreCompany.
func (c *Company) Validate() error {
	if c == nil {
		return ErrCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrCompanyIsNotConstructed)
}

// IsEqual compares two companies by identity.
func (c *Company) IsEqual(other *Company) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the company's unique identifier.
func (c *Company) ID() kernel.UUID { return c.id }

// Name returns the company's display name.
func (c *Company) Name() string { return c.name }

// Phone returns the company's contact phone.
func (c *Company) Phone() string { return c.phone }

// Address returns the company's street address.
func (c *Company) Address() string { return c.address }

// Location returns the company's coordinates, used as the pickup reference
// when matching couriers to its orders.
func (c *Company) Location() kernel.GeoPoint { return c.location }

// IsActive reports whether the company account is active.
func (c *Company) IsActive() bool { return c.isActive }

// Config returns the company's delivery defaults.
func (c *Company) Config() DeliveryConfig { return c.config }

// Reputation returns the aggregated rating state.
func (c *Company) Reputation() Reputation { return c.reputation }

// CreatedAt returns when the company was created.
func (c *Company) CreatedAt() time.Time { return c.createdAt }

// Deactivate suspends the company account.
func (c *Company) Deactivate() {
	c.isActive = false
}

// ApplyConfigPatch applies the non-nil fields of the patch to the delivery
// configuration, validating the result as a whole. On error the stored
// configuration is unchanged.
func (c *Company) ApplyConfigPatch(patch ConfigPatch) error {
	next := c.config
	if patch.MaxDeliveryRadiusKm != nil {
		next.MaxDeliveryRadiusKm = *patch.MaxDeliveryRadiusKm
	}
	if patch.DeliveryFee != nil {
		next.DeliveryFee = *patch.DeliveryFee
	}
	if patch.AverageDeliveryMinutes != nil {
		next.AverageDeliveryMinutes = *patch.AverageDeliveryMinutes
	}
	if patch.AcceptsScheduledDelivery != nil {
		next.AcceptsScheduledDelivery = *patch.AcceptsScheduledDelivery
	}
	return c.setConfig(next)
}

// ApplyReputation overwrites the aggregated rating state. The rating flow
// recomputes the full aggregate on every submission and writes it here.
func (c *Company) ApplyReputation(r Reputation) error {
	return c.setReputation(r)
}

func (c *Company) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Company) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Company) setAddress(address string, location kernel.GeoPoint) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.address = address
	c.location = location
	return nil
}

func (c *Company) setConfig(config DeliveryConfig) error {
	if config.MaxDeliveryRadiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxDeliveryRadius",
			fmt.Errorf("%g is not greater than 0", config.MaxDeliveryRadiusKm))
	}
	if config.DeliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%g is negative", config.DeliveryFee))
	}
	if config.AverageDeliveryMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("averageDeliveryTime",
			fmt.Errorf("%d is not greater than 0", config.AverageDeliveryMinutes))
	}
	c.config = config
	return nil
}

func (c *Company) setReputation(r Reputation) error {
	if r.Average < 0 || r.Average > 5 {
		return errs.NewValueIsOutOfRangeError("averageRating", r.Average, 0, 5)
	}
	if r.Count < 0 {
		return errs.NewValueIsOutOfRangeError("ratingCount", r.Count, 0, int(^uint(0)>>1))
	}
	c.reputation = r
	return nil
}
