// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The tracking code carries a unique index for the public tracking read, and
// status is indexed for the pending-order and courier-history scans.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	TrackingCode string     `gorm:"type:varchar(16);not null;uniqueIndex"`
	Status       string     `gorm:"type:varchar(16);not null;index"`
	Priority     string     `gorm:"type:varchar(16);not null"`

	CustomerName  string `gorm:"type:varchar(255);not null"`
	CustomerPhone string `gorm:"type:varchar(32);not null"`

	Pickup   WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery WaypointDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	TotalValue               float64
	DeliveryFee              float64
	EstimatedDeliveryMinutes int
	Notes                    string

	CreatedAt   time.Time `gorm:"not null"`
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	Updates            []StatusUpdateDTO `gorm:"serializer:json;type:jsonb"`
	CancellationReason string

	CompanyScore   *int
	CompanyComment string
	CourierScore   *int
	CourierComment string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// WaypointDTO represents one embedded address plus coordinates pair.
type WaypointDTO struct {
	Address      string `gorm:"type:varchar(512);not null"`
	Lat          float64
	Lng          float64
	Instructions string
}

// StatusUpdateDTO is one audit trail entry, stored as part of the JSON
// updates column.
type StatusUpdateDTO struct {
	At      time.Time `json:"at"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	ActorID uuid.UUID `json:"actorId"`
	Notes   string    `json:"notes,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	details := aggregate.Details()
	updates := aggregate.Updates()
	updateDTOs := make([]StatusUpdateDTO, 0, len(updates))
	for _, u := range updates {
		updateDTOs = append(updateDTOs, StatusUpdateDTO{
			At:      u.At,
			From:    u.From.String(),
			To:      u.To.String(),
			ActorID: u.ActorID.Bytes(),
			Notes:   u.Notes,
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CompanyID:    aggregate.CompanyID().Bytes(),
		CourierID:    courierID,
		TrackingCode: aggregate.TrackingCode().String(),
		Status:       aggregate.Status().String(),
		Priority:     aggregate.Priority().String(),

		CustomerName:  details.CustomerName,
		CustomerPhone: details.CustomerPhone,
		Pickup:        waypointFromDomain(details.Pickup),
		Delivery:      waypointFromDomain(details.Delivery),

		TotalValue:               details.TotalValue,
		DeliveryFee:              details.DeliveryFee,
		EstimatedDeliveryMinutes: details.EstimatedDeliveryMinutes,
		Notes:                    details.Notes,

		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CancelledAt: aggregate.CancelledAt(),

		Updates:            updateDTOs,
		CancellationReason: aggregate.CancellationReason(),

		CompanyScore:   aggregate.CompanyScore(),
		CompanyComment: aggregate.CompanyComment(),
		CourierScore:   aggregate.CourierScore(),
		CourierComment: aggregate.CourierComment(),
	}
}

func waypointFromDomain(wp order.Waypoint) WaypointDTO {
	return WaypointDTO{
		Address:      wp.Address(),
		Lat:          wp.Point().Lat(),
		Lng:          wp.Point().Lng(),
		Instructions: wp.Instructions(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-validates identity and status/courier consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := waypointToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	updates := make([]order.StatusUpdate, 0, len(dto.Updates))
	for _, u := range dto.Updates {
		from, fromErr := order.StatusFromString(u.From)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := order.StatusFromString(u.To)
		if toErr != nil {
			return nil, toErr
		}
		actorID, actorErr := kernel.UUIDFromBytes(u.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		updates = append(updates, order.StatusUpdate{
			At:      u.At,
			From:    from,
			To:      to,
			ActorID: actorID,
			Notes:   u.Notes,
		})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		CompanyID:    companyID,
		CourierID:    courierID,
		TrackingCode: kernel.TrackingCode(dto.TrackingCode),
		Details: order.Details{
			CustomerName:             dto.CustomerName,
			CustomerPhone:            dto.CustomerPhone,
			Pickup:                   pickup,
			Delivery:                 delivery,
			TotalValue:               dto.TotalValue,
			DeliveryFee:              dto.DeliveryFee,
			Priority:                 priority,
			EstimatedDeliveryMinutes: dto.EstimatedDeliveryMinutes,
			Notes:                    dto.Notes,
		},
		Status:             status,
		CreatedAt:          dto.CreatedAt,
		AcceptedAt:         dto.AcceptedAt,
		PickedUpAt:         dto.PickedUpAt,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
		Updates:            updates,
		CancellationReason: dto.CancellationReason,
		CompanyScore:       dto.CompanyScore,
		CompanyComment:     dto.CompanyComment,
		CourierScore:       dto.CourierScore,
		CourierComment:     dto.CourierComment,
	})
}

func waypointToDomain(dto WaypointDTO) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(dto.Address, point, dto.Instructions)
}
