package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateCompanyConfigCommandIsNotConstructed = errors.New(
		"UpdateCompanyConfigCommand must be created via NewUpdateCompanyConfigCommand constructor",
	)
	ErrEmptyConfigPatch = errors.New("config patch must change at least one field")
)

// UpdateCompanyConfigCommand represents a company changing its delivery
// defaults. The patch is typed: fields outside the delivery configuration
// cannot be expressed, let alone merged.
type UpdateCompanyConfigCommand struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID
	patch     company.ConfigPatch

	guard guard.ConstructorGuard
}

// NewUpdateCompanyConfigCommand creates a command to patch delivery defaults.
// At least one patch field must be set.
func NewUpdateCompanyConfigCommand(companyID kernel.UUID, patch company.ConfigPatch) (UpdateCompanyConfigCommand, error) {
	cmd := UpdateCompanyConfigCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCompanyID(companyID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateCompanyConfigCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCompanyConfigCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCompanyConfigCommandIsNotConstructed)
}

// CompanyID returns the company being reconfigured.
func (c UpdateCompanyConfigCommand) CompanyID() kernel.UUID { return c.companyID }

// Patch returns the typed config patch.
func (c UpdateCompanyConfigCommand) Patch() company.ConfigPatch { return c.patch }

func (c *UpdateCompanyConfigCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	c.companyID = companyID
	return nil
}

func (c *UpdateCompanyConfigCommand) setPatch(patch company.ConfigPatch) error {
	if patch.MaxDeliveryRadiusKm == nil &&
		patch.DeliveryFee == nil &&
		patch.AverageDeliveryMinutes == nil &&
		patch.AcceptsScheduledDelivery == nil {
		return ErrEmptyConfigPatch
	}
	c.patch = patch
	return nil
}
