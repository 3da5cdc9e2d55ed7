// Package companyrepo provides data transfer objects and mapping functions
// for company persistence.
package companyrepo

import (
	"time"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CompanyDTO represents the database structure for persisting company
// aggregates.
type CompanyDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32)"`
	Address string    `gorm:"type:varchar(512);not null"`

	Lat float64
	Lng float64

	IsActive bool `gorm:"not null"`

	Config ConfigDTO `gorm:"embedded;embeddedPrefix:config_"`

	RatingAverage float64 `gorm:"not null"`
	RatingCount   int     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for company entities.
func (CompanyDTO) TableName() string {
	return "companies"
}

// ConfigDTO represents the embedded delivery defaults within the company table.
type ConfigDTO struct {
	MaxDeliveryRadiusKm      float64
	DeliveryFee              float64
	AverageDeliveryMinutes   int
	AcceptsScheduledDelivery bool
}

// fromDomain converts a company domain aggregate to its database representation.
func fromDomain(aggregate *company.Company) CompanyDTO {
	config := aggregate.Config()
	return CompanyDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Phone:   aggregate.Phone(),
		Address: aggregate.Address(),

		Lat: aggregate.Location().Lat(),
		Lng: aggregate.Location().Lng(),

		IsActive: aggregate.IsActive(),

		Config: ConfigDTO{
			MaxDeliveryRadiusKm:      config.MaxDeliveryRadiusKm,
			DeliveryFee:              config.DeliveryFee,
			AverageDeliveryMinutes:   config.AverageDeliveryMinutes,
			AcceptsScheduledDelivery: config.AcceptsScheduledDelivery,
		},

		RatingAverage: aggregate.Reputation().Average,
		RatingCount:   aggregate.Reputation().Count,

		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a company domain aggregate using
// RestoreCompany.
func toDomain(dto CompanyDTO) (*company.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return company.RestoreCompany(company.Snapshot{
		ID:       id,
		Name:     dto.Name,
		Phone:    dto.Phone,
		Address:  dto.Address,
		Location: location,
		IsActive: dto.IsActive,
		Config: company.DeliveryConfig{
			MaxDeliveryRadiusKm:      dto.Config.MaxDeliveryRadiusKm,
			DeliveryFee:              dto.Config.DeliveryFee,
			AverageDeliveryMinutes:   dto.Config.AverageDeliveryMinutes,
			AcceptsScheduledDelivery: dto.Config.AcceptsScheduledDelivery,
		},
		Reputation: company.Reputation{
			Average: dto.RatingAverage,
			Count:   dto.RatingCount,
		},
		CreatedAt: dto.CreatedAt,
	})
}
