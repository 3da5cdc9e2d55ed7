// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The weekly schedule is stored as a JSON column; the eligibility
// flags are indexed together since the availability scan filters on them.
type CourierDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32);not null"`
	Vehicle string    `gorm:"type:varchar(16);not null"`

	IsActive    bool `gorm:"not null;index:idx_couriers_eligibility"`
	IsAvailable bool `gorm:"not null;index:idx_couriers_eligibility"`
	IsVerified  bool `gorm:"not null;index:idx_couriers_eligibility"`

	WorkingHours []DayWindowDTO `gorm:"serializer:json;type:jsonb"`

	LocationLat       *float64
	LocationLng       *float64
	LocationUpdatedAt *time.Time

	RatingAverage float64 `gorm:"not null"`
	RatingCount   int     `gorm:"not null"`

	DeliveriesTotal      int `gorm:"not null"`
	DeliveriesSuccessful int `gorm:"not null"`
	DeliveriesOnTime     int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// DayWindowDTO is one weekday's working window in the JSON schedule column.
// Day follows time.Weekday numbering (Sunday = 0).
type DayWindowDTO struct {
	Day    int    `json:"day"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"active"`
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	days := aggregate.WorkingHours().Days()
	windows := make([]DayWindowDTO, 0, len(days))
	for day, window := range days {
		windows = append(windows, DayWindowDTO{
			Day:    int(day),
			Start:  window.Start(),
			End:    window.End(),
			Active: window.IsActive(),
		})
	}

	dto := CourierDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Phone:   aggregate.Phone(),
		Vehicle: aggregate.Vehicle().String(),

		IsActive:    aggregate.IsActive(),
		IsAvailable: aggregate.IsAvailable(),
		IsVerified:  aggregate.IsVerified(),

		WorkingHours: windows,

		LocationUpdatedAt: aggregate.LocationUpdatedAt(),

		RatingAverage: aggregate.Reputation().Average,
		RatingCount:   aggregate.Reputation().Count,

		DeliveriesTotal:      aggregate.Counters().Total,
		DeliveriesSuccessful: aggregate.Counters().Successful,
		DeliveriesOnTime:     aggregate.Counters().OnTime,

		CreatedAt: aggregate.CreatedAt(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Lat()
		lng := location.Lng()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := courier.VehicleTypeFromString(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	days := make(map[time.Weekday]courier.DayWindow, len(dto.WorkingHours))
	for _, w := range dto.WorkingHours {
		window, windowErr := courier.NewDayWindow(w.Start, w.End, w.Active)
		if windowErr != nil {
			return nil, windowErr
		}
		days[time.Weekday(w.Day)] = window
	}
	schedule, err := courier.NewWeekSchedule(days)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(courier.Snapshot{
		ID:                id,
		Name:              dto.Name,
		Phone:             dto.Phone,
		Vehicle:           vehicle,
		IsActive:          dto.IsActive,
		IsAvailable:       dto.IsAvailable,
		IsVerified:        dto.IsVerified,
		WorkingHours:      schedule,
		Location:          location,
		LocationUpdatedAt: dto.LocationUpdatedAt,
		Reputation: courier.Reputation{
			Average: dto.RatingAverage,
			Count:   dto.RatingCount,
		},
		Counters: courier.DeliveryCounters{
			Total:      dto.DeliveriesTotal,
			Successful: dto.DeliveriesSuccessful,
			OnTime:     dto.DeliveriesOnTime,
		},
		CreatedAt: dto.CreatedAt,
	})
}
