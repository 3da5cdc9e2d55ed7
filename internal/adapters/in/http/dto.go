package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
)

// WaypointRequest is one end of a delivery in the order creation body.
type WaypointRequest struct {
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Instructions string  `json:"instructions,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone"`
	Pickup           WaypointRequest `json:"pickup"`
	Delivery         WaypointRequest `json:"delivery"`
	TotalValue       float64         `json:"totalValue"`
	DeliveryFee      *float64        `json:"deliveryFee,omitempty"`
	Priority         string          `json:"priority,omitempty"`
	EstimatedMinutes *int            `json:"estimatedMinutes,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// CreateOrderResponse returns the server-assigned order identity.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// SubmitRatingRequest is the body of POST /api/v1/orders/:id/ratings.
type SubmitRatingRequest struct {
	Score      int            `json:"score"`
	Categories map[string]int `json:"categories,omitempty"`
	Comment    string         `json:"comment,omitempty"`
}

// SetAvailabilityRequest is the body of PUT /api/v1/couriers/availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// UpdateLocationRequest is the body of PUT /api/v1/couriers/location.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateCompanyConfigRequest is the body of PATCH /api/v1/companies/config.
// Absent fields keep their current values.
type UpdateCompanyConfigRequest struct {
	MaxDeliveryRadiusKm      *float64 `json:"maxDeliveryRadiusKm,omitempty"`
	DeliveryFee              *float64 `json:"deliveryFee,omitempty"`
	AverageDeliveryMinutes   *int     `json:"averageDeliveryMinutes,omitempty"`
	AcceptsScheduledDelivery *bool    `json:"acceptsScheduledDelivery,omitempty"`
}

// TrackOrderResponse is the public, identity-free view of an order.
type TrackOrderResponse struct {
	TrackingCode     string     `json:"trackingCode"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DeliveryAddress  string     `json:"deliveryAddress"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	CreatedAt        time.Time  `json:"createdAt"`
	AcceptedAt       *time.Time `json:"acceptedAt,omitempty"`
	PickedUpAt       *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
}

// EligibleOrderResponse is one entry of the courier's order feed.
type EligibleOrderResponse struct {
	ID               string    `json:"id"`
	TrackingCode     string    `json:"trackingCode"`
	Priority         string    `json:"priority"`
	PickupAddress    string    `json:"pickupAddress"`
	DeliveryAddress  string    `json:"deliveryAddress"`
	DeliveryFee      float64   `json:"deliveryFee"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	PickupDistanceKm *float64  `json:"pickupDistanceKm,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AvailableCourierResponse is one entry of an order's courier ranking.
type AvailableCourierResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Vehicle              string   `json:"vehicle"`
	RatingAverage        float64  `json:"ratingAverage"`
	RatingCount          int      `json:"ratingCount"`
	SuccessfulDeliveries int      `json:"successfulDeliveries"`
	PickupDistanceKm     *float64 `json:"pickupDistanceKm,omitempty"`
}

// RatingStatsResponse is the aggregated rating profile of one party.
type RatingStatsResponse struct {
	TargetType       string             `json:"targetType"`
	TargetID         string             `json:"targetId"`
	Total            int                `json:"total"`
	Average          float64            `json:"average"`
	Histogram        [5]int             `json:"histogram"`
	CategoryAverages map[string]float64 `json:"categoryAverages,omitempty"`
	Last30DaysCount  int                `json:"last30DaysCount"`
	Last30DaysAvg    float64            `json:"last30DaysAvg"`
}

// CourierStatsResponse is a courier's delivery performance summary.
type CourierStatsResponse struct {
	CourierID              string  `json:"courierId"`
	TotalOrders            int     `json:"totalOrders"`
	ActiveOrders           int     `json:"activeOrders"`
	Delivered              int     `json:"delivered"`
	Cancelled              int     `json:"cancelled"`
	DeliveredLast30        int     `json:"deliveredLast30"`
	TotalEarnings          float64 `json:"totalEarnings"`
	SuccessRate            float64 `json:"successRate"`
	OnTimeRate             float64 `json:"onTimeRate"`
	AvgDeliveryTimeMinutes float64 `json:"avgDeliveryTimeMinutes"`
}

func toTrackOrderResponse(r queries.TrackOrderQueryResponse) TrackOrderResponse {
	return TrackOrderResponse{
		TrackingCode:     r.TrackingCode,
		Status:           r.Status,
		Priority:         r.Priority,
		DeliveryAddress:  r.DeliveryAddress,
		EstimatedMinutes: r.EstimatedDeliveryMinutes,
		CreatedAt:        r.CreatedAt,
		AcceptedAt:       r.AcceptedAt,
		PickedUpAt:       r.PickedUpAt,
		DeliveredAt:      r.DeliveredAt,
		CancelledAt:      r.CancelledAt,
	}
}

func toEligibleOrderResponses(rs []queries.ListEligibleOrdersQueryResponse) []EligibleOrderResponse {
	out := make([]EligibleOrderResponse, len(rs))
	for i, r := range rs {
		out[i] = EligibleOrderResponse{
			ID:               r.ID.String(),
			TrackingCode:     r.TrackingCode,
			Priority:         r.Priority,
			PickupAddress:    r.PickupAddress,
			DeliveryAddress:  r.DeliveryAddress,
			DeliveryFee:      r.DeliveryFee,
			EstimatedMinutes: r.EstimatedMinutes,
			PickupDistanceKm: r.PickupDistanceKm,
			CreatedAt:        r.CreatedAt,
		}
	}
	return out
}

func toAvailableCourierResponses(rs []queries.ListAvailableCouriersQueryResponse) []AvailableCourierResponse {
	out := make([]AvailableCourierResponse, len(rs))
	for i, r := range rs {
		out[i] = AvailableCourierResponse{
			ID:                   r.ID.String(),
			Name:                 r.Name,
			Vehicle:              r.Vehicle,
			RatingAverage:        r.RatingAverage,
			RatingCount:          r.RatingCount,
			SuccessfulDeliveries: r.SuccessfulDeliveries,
			PickupDistanceKm:     r.PickupDistanceKm,
		}
	}
	return out
}
